package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// WebSearchTool searches the web using the Tavily Search API.
type WebSearchTool struct {
	BaseTool
	apiKey     string
	baseURL    string
	maxResults int
	client     *http.Client
}

// tavilySearchRequest is the request body for the Tavily search endpoint.
type tavilySearchRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

// tavilySearchResponse is the subset of the Tavily response we use.
type tavilySearchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// DefaultSearchURL is the Tavily search endpoint.
const DefaultSearchURL = "https://api.tavily.com/search"

// NewWebSearchTool creates a new WebSearchTool with the given API key and max results.
func NewWebSearchTool(apiKey string, maxResults int) *WebSearchTool {
	if maxResults <= 0 {
		maxResults = 2
	}
	if maxResults > 10 {
		maxResults = 10
	}

	parameters := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Search query",
			},
		},
		"required": []string{"query"},
	}

	return &WebSearchTool{
		BaseTool: NewBaseTool(
			"web_search",
			"Search the web using the Tavily Search API. Returns results with title, URL, and a content snippet.",
			parameters,
		),
		apiKey:     apiKey,
		baseURL:    DefaultSearchURL,
		maxResults: maxResults,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetBaseURL overrides the search endpoint. Used by tests.
func (t *WebSearchTool) SetBaseURL(baseURL string) {
	t.baseURL = baseURL
}

// Execute performs the web search with the given parameters.
func (t *WebSearchTool) Execute(ctx context.Context, params map[string]interface{}) (string, error) {
	if t.apiKey == "" {
		return "", errors.New("web_search: Tavily API key not configured (set TAVILY_API_KEY environment variable)")
	}

	query, err := GetStringParam(params, "query")
	if err != nil {
		return "", fmt.Errorf("web_search: %w", err)
	}
	if strings.TrimSpace(query) == "" {
		return "", errors.New("web_search: query cannot be empty")
	}

	reqBody, err := json.Marshal(tavilySearchRequest{
		APIKey:     t.apiKey,
		Query:      query,
		MaxResults: t.maxResults,
	})
	if err != nil {
		return "", fmt.Errorf("web_search: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("web_search: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("web_search: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("web_search: API returned status %d: %s", resp.StatusCode, string(body))
	}

	var searchResp tavilySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return "", fmt.Errorf("web_search: failed to parse response: %w", err)
	}

	if len(searchResp.Results) == 0 {
		return "No results found for the query.", nil
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Search results for %q:\n\n", query))
	for i, r := range searchResp.Results {
		result.WriteString(fmt.Sprintf("%d. %s\n", i+1, r.Title))
		result.WriteString(fmt.Sprintf("   URL: %s\n", r.URL))
		if r.Content != "" {
			result.WriteString(fmt.Sprintf("   %s\n", r.Content))
		}
		result.WriteString("\n")
	}

	return result.String(), nil
}

// WebFetchTool fetches a web page and extracts its readable text.
type WebFetchTool struct {
	BaseTool
	maxChars int
	client   *http.Client
}

// NewWebFetchTool creates a new WebFetchTool with the given max characters limit.
func NewWebFetchTool(maxChars int) *WebFetchTool {
	if maxChars <= 0 {
		maxChars = 50000
	}

	parameters := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "URL to fetch (http or https only)",
			},
		},
		"required": []string{"url"},
	}

	return &WebFetchTool{
		BaseTool: NewBaseTool(
			"web_fetch",
			"Fetch a web page and return its readable text content. Useful for reading documentation or articles found via web_search.",
			parameters,
		),
		maxChars: maxChars,
		client: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return errors.New("too many redirects (max 5)")
				}
				return nil
			},
		},
	}
}

// Execute fetches the page and extracts its text.
func (t *WebFetchTool) Execute(ctx context.Context, params map[string]interface{}) (string, error) {
	rawURL, err := GetStringParam(params, "url")
	if err != nil {
		return "", fmt.Errorf("web_fetch: %w", err)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("web_fetch: invalid URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", errors.New("web_fetch: only http and https URLs are supported")
	}

	// SSRF protection: block requests to internal/private network addresses
	if isInternalURL(rawURL) {
		return "", errors.New("web_fetch: access to internal/private network addresses is blocked")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("web_fetch: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; reasonpy/1.0)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("web_fetch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("web_fetch: HTTP error %d: %s", resp.StatusCode, resp.Status)
	}

	var title, content string
	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/html") || strings.Contains(contentType, "application/xhtml") {
		content, title, err = extractHTMLText(resp.Body)
		if err != nil {
			return "", fmt.Errorf("web_fetch: failed to extract content: %w", err)
		}
	} else {
		body, err := io.ReadAll(io.LimitReader(resp.Body, int64(t.maxChars)))
		if err != nil {
			return "", fmt.Errorf("web_fetch: failed to read response: %w", err)
		}
		content = string(body)
	}

	truncated := len(content) > t.maxChars
	content = truncateText(content, t.maxChars)

	var output strings.Builder
	output.WriteString(fmt.Sprintf("URL: %s\n", rawURL))
	if finalURL := resp.Request.URL.String(); finalURL != rawURL {
		output.WriteString(fmt.Sprintf("Redirected to: %s\n", finalURL))
	}
	if title != "" {
		output.WriteString(fmt.Sprintf("Title: %s\n", title))
	}
	output.WriteString("\n")
	output.WriteString(content)
	if truncated {
		output.WriteString("\n\n[Content truncated]")
	}

	return output.String(), nil
}

// extractHTMLText extracts the readable text of an HTML page using goquery.
func extractHTMLText(r io.Reader) (content string, title string, err error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", "", err
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())

	// Strip non-content elements before extracting text.
	doc.Find("script, style, nav, footer, header, aside, noscript, iframe, form").Remove()

	// Prefer the page's main content container when one exists.
	var contentEl *goquery.Selection
	for _, selector := range []string{"article", "main", "[role=main]", "#content", ".content", "body"} {
		if selection := doc.Find(selector); selection.Length() > 0 {
			contentEl = selection.First()
			break
		}
	}
	if contentEl == nil {
		contentEl = doc.Find("body")
	}

	return cleanText(contentEl.Text()), title, nil
}

// cleanText collapses runs of whitespace into single spaces.
func cleanText(text string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(text), " "))
}

// truncateText truncates text to the specified maximum length, preferring a
// sentence or word boundary.
func truncateText(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}
	truncated := text[:maxChars]
	if lastPeriod := strings.LastIndex(truncated, ". "); lastPeriod > maxChars/2 {
		return truncated[:lastPeriod+1]
	}
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > maxChars/2 {
		return truncated[:lastSpace] + "..."
	}
	return truncated + "..."
}

// isInternalURL checks whether a URL targets an internal or private network
// address. It returns true if the resolved IP is loopback, private, link-local,
// or a known cloud metadata address (169.254.169.254).
func isInternalURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return true
	}

	hostname := parsed.Hostname()
	if hostname == "" {
		return true
	}

	ips, err := net.LookupIP(hostname)
	if err != nil {
		// If DNS resolution fails, allow the request — it will fail at HTTP
		// level with a clearer error.
		return false
	}

	cloudMetadataIP := net.ParseIP("169.254.169.254")

	for _, ip := range ips {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			return true
		}
		if ip.Equal(cloudMetadataIP) {
			return true
		}
	}

	return false
}

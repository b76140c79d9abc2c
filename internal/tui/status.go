package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/reasonpy/reasonpy/internal/config"
)

// Status display styles.
var (
	statusTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205")).
				MarginBottom(1).
				Padding(0, 1)

	statusBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Width(60)

	statusSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				MarginTop(1)

	statusLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Width(20)

	statusValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255"))

	statusEnabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")).
				Bold(true)

	statusDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	statusWarningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214"))

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true)
)

// ShowStatus displays the current configuration status.
func ShowStatus(cfg *config.Config) error {
	var sb strings.Builder

	title := statusTitleStyle.Render("reasonpy Configuration Status")
	sb.WriteString(title)
	sb.WriteString("\n\n")

	sb.WriteString(statusSectionStyle.Render("Provider"))
	sb.WriteString("\n")
	sb.WriteString(renderProviderStatus(cfg))
	sb.WriteString("\n")

	sb.WriteString(statusSectionStyle.Render("Tools"))
	sb.WriteString("\n")
	sb.WriteString(renderToolsStatus(cfg))
	sb.WriteString("\n")

	sb.WriteString(statusSectionStyle.Render("Sandbox"))
	sb.WriteString("\n")
	sb.WriteString(renderSandboxStatus(cfg))

	content := statusBoxStyle.Render(sb.String())
	fmt.Println(content)

	return nil
}

// renderProviderStatus renders the provider configuration status.
func renderProviderStatus(cfg *config.Config) string {
	var sb strings.Builder

	apiKey := cfg.Providers.OpenAI.APIKey
	if apiKey == "" {
		sb.WriteString(renderStatusRow("Status", statusErrorStyle.Render("No provider configured")))
		sb.WriteString(renderStatusRow("", statusWarningStyle.Render("Run 'reasonpy setup' to configure")))
		return sb.String()
	}

	sb.WriteString(renderStatusRow("Active", statusEnabledStyle.Render("OPENAI")))
	sb.WriteString(renderStatusRow("Model", statusValueStyle.Render(cfg.Agent.Model)))
	sb.WriteString(renderStatusRow("API Key", statusValueStyle.Render(maskAPIKey(apiKey))))
	if base := cfg.Providers.OpenAI.APIBase; base != "" && base != "https://api.openai.com/v1" {
		sb.WriteString(renderStatusRow("API Base", statusValueStyle.Render(base)))
	}

	return sb.String()
}

// renderToolsStatus renders the tools configuration status.
func renderToolsStatus(cfg *config.Config) string {
	var sb strings.Builder

	if cfg.Tools.Search.APIKey != "" {
		sb.WriteString(renderStatusRow("Web Search", statusEnabledStyle.Render("enabled")))
		sb.WriteString(renderStatusRow("  Max Results", statusValueStyle.Render(fmt.Sprintf("%d", cfg.Tools.Search.MaxResults))))
	} else {
		sb.WriteString(renderStatusRow("Web Search", statusDisabledStyle.Render("disabled")))
	}

	sb.WriteString(renderStatusRow("Python", statusEnabledStyle.Render(cfg.Tools.Python.Bin)))
	sb.WriteString(renderStatusRow("  Timeout", statusValueStyle.Render(fmt.Sprintf("%ds", cfg.Tools.Python.TimeoutSeconds))))
	sb.WriteString(renderStatusRow("  Artifacts", statusValueStyle.Render(cfg.ArtifactsPath())))

	return sb.String()
}

// renderSandboxStatus renders the sandbox configuration status.
func renderSandboxStatus(cfg *config.Config) string {
	var sb strings.Builder

	switch {
	case cfg.Sandbox.Backend == "docker":
		sb.WriteString(renderStatusRow("Backend", statusEnabledStyle.Render("docker")))
		if cfg.Sandbox.Image != "" {
			sb.WriteString(renderStatusRow("  Image", statusValueStyle.Render(cfg.Sandbox.Image)))
		}
	case cfg.Sandbox.APIKey != "":
		sb.WriteString(renderStatusRow("Backend", statusEnabledStyle.Render("remote")))
		sb.WriteString(renderStatusRow("  API Key", statusValueStyle.Render(maskAPIKey(cfg.Sandbox.APIKey))))
	default:
		sb.WriteString(renderStatusRow("Backend", statusDisabledStyle.Render("unavailable")))
		sb.WriteString(renderStatusRow("", statusWarningStyle.Render("Set E2B_API_KEY to enable sandboxed runs")))
	}

	return sb.String()
}

// renderStatusRow renders a label-value row.
func renderStatusRow(label, value string) string {
	if label == "" {
		return fmt.Sprintf("  %s\n", value)
	}
	return fmt.Sprintf("  %s %s\n",
		statusLabelStyle.Render(label+":"),
		value,
	)
}

// maskAPIKey masks an API key for display.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

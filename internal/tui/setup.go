// Package tui provides interactive terminal user interface components for reasonpy.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/reasonpy/reasonpy/internal/config"
)

// ModelOptions lists the selectable OpenAI models.
var ModelOptions = []string{
	"gpt-4o-mini",
	"gpt-4o",
	"o3-mini",
}

// Styles for the setup wizard.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginBottom(1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

// SetupState holds the state of the setup wizard.
type SetupState struct {
	APIKey       string
	Model        string
	SearchAPIKey string
	SandboxKey   string
	Confirmed    bool
}

// RunSetup runs the interactive setup wizard.
// Returns the configured Config or error.
func RunSetup() (*config.Config, error) {
	state := &SetupState{Model: "gpt-4o-mini"}

	if err := runWelcomeStep(state); err != nil {
		return nil, fmt.Errorf("welcome step failed: %w", err)
	}

	if err := runModelStep(state); err != nil {
		return nil, fmt.Errorf("model step failed: %w", err)
	}

	if err := runToolKeysStep(state); err != nil {
		return nil, fmt.Errorf("tool keys step failed: %w", err)
	}

	if err := runConfirmationStep(state); err != nil {
		return nil, fmt.Errorf("confirmation step failed: %w", err)
	}

	if !state.Confirmed {
		return nil, fmt.Errorf("setup cancelled by user")
	}

	cfg := buildConfigFromState(state)

	if err := config.SaveConfig(cfg, ""); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println(successStyle.Render("\n✓ Configuration saved successfully!"))
	fmt.Println(subtitleStyle.Render("Config file: " + config.GetConfigPath()))
	fmt.Println()

	return cfg, nil
}

// runWelcomeStep displays the welcome message and prompts for the OpenAI key.
func runWelcomeStep(state *SetupState) error {
	welcome := boxStyle.Render(
		titleStyle.Render("Welcome to reasonpy Setup") + "\n\n" +
			"This wizard will help you configure the Python execution agent.\n" +
			"You can always edit the configuration later at:\n" +
			subtitleStyle.Render(config.GetConfigPath()),
	)
	fmt.Println(welcome)
	fmt.Println()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter your OpenAI API key").
				Description("Your API key will be stored locally and never shared").
				Placeholder("sk-...").
				EchoMode(huh.EchoModePassword).
				Value(&state.APIKey).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("API key is required")
					}
					return nil
				}),
		),
	)

	return form.Run()
}

// runModelStep allows the user to select a model.
func runModelStep(state *SetupState) error {
	options := make([]huh.Option[string], len(ModelOptions))
	for i, m := range ModelOptions {
		options[i] = huh.NewOption(m, m)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select model").
				Description("Choose the AI model to use").
				Options(options...).
				Value(&state.Model),
		),
	)

	return form.Run()
}

// runToolKeysStep prompts for the optional web search and sandbox keys.
func runToolKeysStep(state *SetupState) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tavily API key (optional)").
				Description("Enables the web_search tool. Leave empty to skip.").
				Placeholder("tvly-...").
				EchoMode(huh.EchoModePassword).
				Value(&state.SearchAPIKey),
			huh.NewInput().
				Title("Sandbox API key (optional)").
				Description("Enables sandboxed execution via 'reasonpy run --sandbox'. Leave empty to skip.").
				EchoMode(huh.EchoModePassword).
				Value(&state.SandboxKey),
		),
	)

	return form.Run()
}

// runConfirmationStep shows a summary and asks for confirmation.
func runConfirmationStep(state *SetupState) error {
	summary := fmt.Sprintf(
		"Model:      %s\nWeb search: %s\nSandbox:    %s",
		state.Model,
		enabledLabel(state.SearchAPIKey != ""),
		enabledLabel(state.SandboxKey != ""),
	)
	fmt.Println(boxStyle.Render(titleStyle.Render("Configuration Summary") + "\n\n" + summary))

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save this configuration?").
				Affirmative("Save").
				Negative("Cancel").
				Value(&state.Confirmed),
		),
	)

	return form.Run()
}

func enabledLabel(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}

// buildConfigFromState converts wizard answers into a Config.
func buildConfigFromState(state *SetupState) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Providers.OpenAI.APIKey = strings.TrimSpace(state.APIKey)
	cfg.Agent.Model = state.Model
	cfg.Tools.Search.APIKey = strings.TrimSpace(state.SearchAPIKey)
	cfg.Sandbox.APIKey = strings.TrimSpace(state.SandboxKey)
	return cfg
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// Example queries demonstrating agent capabilities per environment.
var (
	LocalExamples = []string{
		"Calculate the first 10 Fibonacci numbers",
		"Create a simple bar chart showing the months of the year and a random value for each",
		"Find and plot the population of the top 5 most populous countries",
	}

	SandboxExamples = []string{
		"Install pandas and calculate basic statistics on a sample dataset",
		"Install yfinance and get the last 7 days of Apple stock prices",
		"Install matplotlib, numpy and create a sine wave visualization",
	}
)

const customQueryOption = "__custom__"

// PickExample runs an interactive picker: execution environment first, then
// an example query or a custom one. Returns the environment name ("local" or
// "sandbox") and the chosen query.
func PickExample(sandboxAvailable bool) (env string, query string, err error) {
	env = "local"
	if sandboxAvailable {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Select an execution environment").
					Options(
						huh.NewOption("Local Python interpreter", "local"),
						huh.NewOption("Isolated sandbox", "sandbox"),
					).
					Value(&env),
			),
		)
		if err := form.Run(); err != nil {
			return "", "", err
		}
	}

	examples := LocalExamples
	if env == "sandbox" {
		examples = SandboxExamples
	}

	options := make([]huh.Option[string], 0, len(examples)+1)
	for _, q := range examples {
		options = append(options, huh.NewOption(q, q))
	}
	options = append(options, huh.NewOption("Enter your own query", customQueryOption))

	var choice string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select a query to run").
				Options(options...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		return "", "", err
	}

	if choice != customQueryOption {
		return env, choice, nil
	}

	var custom string
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter your query").
				Value(&custom).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("query cannot be empty")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", "", err
	}

	return env, strings.TrimSpace(custom), nil
}

package cmd

import (
	"fmt"

	"github.com/reasonpy/reasonpy/internal/tui"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Run interactive setup wizard",
	Long:  "Run the interactive setup wizard to configure reasonpy with your LLM provider and tool API keys.",
	RunE:  runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	if _, err := tui.RunSetup(); err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}

	fmt.Println("You can now:")
	fmt.Println("  - Chat with the agent:     reasonpy run")
	fmt.Println("  - Use the sandbox:         reasonpy run --sandbox")
	fmt.Println("  - Try an example query:    reasonpy examples")
	fmt.Println("  - View full status:        reasonpy status")

	return nil
}

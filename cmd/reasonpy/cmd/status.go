package cmd

import (
	"fmt"

	"github.com/reasonpy/reasonpy/internal/config"
	"github.com/reasonpy/reasonpy/internal/tui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration status",
	Long:  "Display the current reasonpy configuration status including provider, tools, and sandbox.",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	return tui.ShowStatus(cfg)
}

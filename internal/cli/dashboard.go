package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/j-veylop/pstats/internal/dashboard"
	"github.com/j-veylop/pstats/internal/logger"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive stats dashboard",
	Long: `Open a terminal dashboard showing live stats for every accessible site.

The dashboard refreshes automatically, supports switching sites (j/k) and
periods ([/]), and reloads its configuration when the loaded .env file
changes.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	logger.SetVerbose(flagVerbose)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	watcher, err := dashboard.NewConfigWatcher(cfg.EnvFile)
	if err != nil {
		logger.Warn("env file watching disabled", "error", err)
	}

	model := dashboard.New(newClient(cfg), cfg, watcher)
	defer func() {
		if err := model.Close(); err != nil {
			logger.Error("failed to close dashboard", "error", err)
		}
	}()

	// The TUI owns the terminal, keep log lines off it.
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}

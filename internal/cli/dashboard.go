package cli

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/neochoon/agenthud-sub001/internal/logging"
	"github.com/neochoon/agenthud-sub001/internal/tui/dashboard"
	"github.com/neochoon/agenthud-sub001/internal/tui/theme"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Start the dashboard (the default command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard()
		},
	}
}

// runDashboard guards the terminal, routes logs away from it, pins the
// theme, and hands the screen to the dashboard until quit.
func runDashboard() error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errors.New(`agenthud needs an interactive terminal (try "agenthud report" for one-shot output)`)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	closeLogs, err := logging.Setup(logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		TUI:   true,
	})
	if err != nil {
		return err
	}
	defer closeLogs()

	theme.SetCurrent(theme.Load(cfg.Theme))
	return dashboard.Run(cfg)
}

// Package cli wires the agenthud commands. The root command starts the
// dashboard; everything else is a one-shot subcommand around the same
// config and test-report machinery.
package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/neochoon/agenthud-sub001/internal/config"
)

var (
	cfgFile   string
	themeName string
	logLevel  string
	logFile   string

	// Build information - set by goreleaser via ldflags
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "agenthud",
	Short: "Terminal dashboard for agent-driven coding sessions",
	Long: `agenthud is a live terminal dashboard for projects where a coding
agent does the typing. It keeps the project tree, git state, test
results, agent activity, and sibling agent sessions on screen, each
panel refreshing on its own schedule.

Quick Start:
  agenthud                        # start the dashboard in the current project
  agenthud init                   # write a commented agenthud.yaml
  agenthud report                 # one-shot test report, exit 1 on failures

Panels marked "manual" refresh on their hotkey or on "r" (refresh all);
the tests panel also refreshes whenever the results file changes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

// Execute runs the CLI and reports the process exit error, if any.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadConfig resolves the effective config: --config wins, then the
// project file, then the user file, then built-in defaults. Flag overrides
// are applied on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	return cfg, nil
}

func goVersion() string {
	return runtime.Version()
}

func goPlatform() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}

func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), Version)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "agenthud version %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit:    %s\n", Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:     %s\n", Date)
			fmt.Fprintf(cmd.OutOrStdout(), "  go:        %s\n", goVersion())
			fmt.Fprintf(cmd.OutOrStdout(), "  platform:  %s\n", goPlatform())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")
	return cmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default agenthud.yaml, then ~/.config/agenthud/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "color theme: auto, dark, light, plain")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path (dashboard default: state dir)")

	rootCmd.AddCommand(
		newDashboardCmd(),
		newReportCmd(),
		newInitCmd(),
		newVersionCmd(),
	)
}

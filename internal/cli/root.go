// Package cli implements the llmbar CLI commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/watchfire-io/llmbar/internal/config"
	"github.com/watchfire-io/llmbar/internal/daemon/notify"
	"github.com/watchfire-io/llmbar/internal/models"
)

// Global flag values; empty/zero means "use settings".
var (
	flagStatePath string
	flagSignal    int
	flagFormat    string
	flagDebug     bool
)

// settings is resolved once per invocation in PersistentPreRunE.
var settings *models.Settings

var rootCmd = &cobra.Command{
	Use:   "llmbar",
	Short: "Show coding agent activity in your status bar",
	Long: `llmbar relays Claude Code activity (thinking, tool use, token usage and
cost) to Waybar or a system tray icon.

Hook commands (event, statusline) are called by Claude Code; install them with
"llmbar install-hooks".`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStatePath, "state-path", "", "State file path (env LLM_BRIDGE_STATE_PATH)")
	rootCmd.PersistentFlags().IntVar(&flagSignal, "signal", 0, "Refresh signal offset from SIGRTMIN (env LLM_BRIDGE_SIGNAL)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "Status text format (env LLM_BRIDGE_FORMAT)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug details to stderr")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(installHooksCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(statuslineCmd)
	rootCmd.AddCommand(syncUsageCmd)
	rootCmd.AddCommand(uninstallHooksCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(watchCmd)
}

func loadSettings(cmd *cobra.Command, args []string) error {
	s, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if flagStatePath != "" {
		s.StatePath = flagStatePath
	}
	if flagSignal != 0 {
		s.Signal = flagSignal
	}
	if flagFormat != "" {
		s.Format = flagFormat
	}
	config.Debug = flagDebug
	notify.Debug = flagDebug
	settings = s
	return nil
}

// newNotifier returns the notifier for the configured UI process.
func newNotifier() notify.Notifier {
	return notify.NewSignalNotifier(settings.UIProcess, settings.Signal)
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/watchfire-io/llmbar/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live view of active sessions",
	Long: `Show every live Claude Code session in the terminal, refreshed once a
second from the per-session state files. Press q to quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(settings.SessionsDir)
	},
}

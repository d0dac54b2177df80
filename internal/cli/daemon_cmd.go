package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/llmbar/internal/config"
	"github.com/watchfire-io/llmbar/internal/models"
)

var (
	daemonAggregate bool
	daemonTray      bool
	daemonLogFile   string
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the llmbard daemon",
	Long: `Manage the llmbard daemon process.

The relay daemon listens on the socket and coalesces hook events. With
--aggregate the daemon merges per-session state files instead; --tray adds a
system tray icon to the aggregator.`,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	Args:  cobra.NoArgs,
	RunE:  runDaemonStatus,
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon",
	Args:  cobra.NoArgs,
	RunE:  runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	Args:  cobra.NoArgs,
	RunE:  runDaemonStop,
}

func init() {
	daemonCmd.PersistentFlags().BoolVar(&daemonAggregate, "aggregate", false, "Act on the session aggregator instead of the relay")
	daemonStartCmd.Flags().BoolVar(&daemonTray, "tray", false, "Show a system tray icon (implies --aggregate)")
	daemonStartCmd.Flags().StringVar(&daemonLogFile, "log-file", "", "Daemon log file (default: none)")

	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonStopCmd)
}

func daemonMode() models.DaemonMode {
	if daemonAggregate || daemonTray {
		return models.DaemonModeAggregate
	}
	return models.DaemonModeRelay
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	mode := daemonMode()
	running, info, err := config.IsDaemonRunning(mode)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running && info != nil {
		fmt.Printf("Daemon is already running in %s mode (PID %d).\n", mode, info.PID)
		return nil
	}

	fmt.Printf("Starting %s daemon...", mode)
	info, err = startDaemon(settings, DaemonStartOptions{
		Mode:    mode,
		Tray:    daemonTray,
		LogFile: daemonLogFile,
		Debug:   flagDebug,
	})
	if err != nil {
		fmt.Println()
		return err
	}

	fmt.Printf(" %s (PID %d).\n", styleSuccess.Render("started"), info.PID)
	return nil
}

func runDaemonStatus(cmd *cobra.Command, args []string) error {
	modes := []models.DaemonMode{models.DaemonModeRelay, models.DaemonModeAggregate}
	if daemonAggregate {
		modes = modes[1:]
	}

	for _, mode := range modes {
		running, info, err := config.IsDaemonRunning(mode)
		if err != nil {
			return fmt.Errorf("failed to check daemon status: %w", err)
		}
		if !running || info == nil {
			fmt.Printf("%s daemon is %s.\n", mode, styleHint.Render("not running"))
			continue
		}

		fmt.Printf("%s daemon is %s.\n", mode, styleSuccess.Render("running"))
		fmt.Printf("  %s %d\n", styleLabel.Render("PID:     "), info.PID)
		fmt.Printf("  %s %s\n", styleLabel.Render("Uptime:  "), time.Since(info.StartedAt).Truncate(time.Second))
		fmt.Printf("  %s %s\n", styleLabel.Render("State:   "), info.StatePath)
		if info.SocketPath != "" {
			fmt.Printf("  %s %s\n", styleLabel.Render("Socket:  "), info.SocketPath)
		}
		if info.SessionsDir != "" {
			fmt.Printf("  %s %s\n", styleLabel.Render("Sessions:"), info.SessionsDir)
		}
	}
	return nil
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	mode := daemonMode()
	stopped, err := stopDaemon(mode)
	if err != nil {
		return err
	}
	if !stopped {
		fmt.Printf("%s daemon is not running.\n", mode)
		return nil
	}
	fmt.Printf("%s daemon stopped.\n", mode)
	return nil
}

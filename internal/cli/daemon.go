package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/watchfire-io/llmbar/internal/config"
	"github.com/watchfire-io/llmbar/internal/models"
)

const daemonBinary = "llmbard"

// Startup and shutdown are polled every daemonPollInterval for up to
// daemonPollTimeout.
const (
	daemonPollInterval = 100 * time.Millisecond
	daemonPollTimeout  = 5 * time.Second
)

// DaemonStartOptions selects how llmbard is launched.
type DaemonStartOptions struct {
	Mode    models.DaemonMode
	Tray    bool
	LogFile string
	Debug   bool
}

// Args returns the llmbard command-line arguments for o.
func (o DaemonStartOptions) Args(s *models.Settings) []string {
	var args []string
	if o.Mode == models.DaemonModeAggregate {
		args = append(args, "-aggregate")
		if o.Tray {
			args = append(args, "-tray")
		}
	}
	if s.SocketPath != "" {
		args = append(args, "-socket", s.SocketPath)
	}
	if s.SessionsDir != "" {
		args = append(args, "-sessions-dir", s.SessionsDir)
	}
	if s.StatePath != "" {
		args = append(args, "-state-path", s.StatePath)
	}
	if s.Format != "" {
		args = append(args, "-format", s.Format)
	}
	if s.Signal != 0 {
		args = append(args, "-signal", fmt.Sprint(s.Signal))
	}
	if o.LogFile != "" {
		args = append(args, "-log-file", o.LogFile)
	}
	if o.Debug {
		args = append(args, "-debug")
	}
	return args
}

// startDaemon launches llmbard detached from the terminal and waits for it to
// register its info file.
func startDaemon(s *models.Settings, o DaemonStartOptions) (*models.DaemonInfo, error) {
	daemonPath, err := findDaemonBinary()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(daemonPath, o.Args(s)...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start daemon: %w", err)
	}
	_ = cmd.Process.Release()

	deadline := time.Now().Add(daemonPollTimeout)
	for time.Now().Before(deadline) {
		time.Sleep(daemonPollInterval)
		running, info, err := config.IsDaemonRunning(o.Mode)
		if err == nil && running {
			return info, nil
		}
	}
	return nil, errors.New("daemon failed to start within timeout")
}

// stopDaemon sends SIGTERM to the daemon for mode and waits for it to exit.
func stopDaemon(mode models.DaemonMode) (bool, error) {
	running, info, err := config.IsDaemonRunning(mode)
	if err != nil {
		return false, fmt.Errorf("failed to check daemon status: %w", err)
	}
	if !running || info == nil {
		return false, nil
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		return false, fmt.Errorf("failed to find daemon process: %w", err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return false, fmt.Errorf("failed to send stop signal: %w", err)
	}

	deadline := time.Now().Add(daemonPollTimeout)
	for time.Now().Before(deadline) {
		time.Sleep(daemonPollInterval)
		if !config.ProcessAlive(info.PID) {
			_ = config.RemoveDaemonInfo(mode)
			return true, nil
		}
	}
	return false, errors.New("daemon did not stop within timeout")
}

// findDaemonBinary locates llmbard on PATH or next to the running executable.
func findDaemonBinary() (string, error) {
	if path, err := exec.LookPath(daemonBinary); err == nil {
		return path, nil
	}

	if execPath, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(execPath), daemonBinary)
		if _, err := os.Stat(sibling); err == nil {
			return sibling, nil
		}
	}

	if _, err := os.Stat("./build/" + daemonBinary); err == nil {
		return "./build/" + daemonBinary, nil
	}

	return "", fmt.Errorf("%s not found. Install or build it first", daemonBinary)
}

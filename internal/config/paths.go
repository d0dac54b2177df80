// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"

	"github.com/watchfire-io/llmbar/internal/models"
)

const (
	// AppDirName is the name of the llmbar directory under $XDG_CONFIG_HOME.
	AppDirName = "llmbar"

	// fallbackRuntimeDir is used when $XDG_RUNTIME_DIR is unset.
	fallbackRuntimeDir = "/tmp"
)

// File names
const (
	StateFileName    = "llm_state.json"
	SessionsDirName  = "llm_sessions"
	SocketFileName   = "llm-bridge.sock"
	SettingsFileName = "settings.yaml"
)

// RuntimeDir returns $XDG_RUNTIME_DIR, or /tmp when it is unset.
func RuntimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	return fallbackRuntimeDir
}

// DefaultStatePath returns the path of the canonical state file.
func DefaultStatePath() string {
	return filepath.Join(RuntimeDir(), StateFileName)
}

// DefaultSessionsDir returns the directory holding per-session state files.
func DefaultSessionsDir() string {
	return filepath.Join(RuntimeDir(), SessionsDirName)
}

// DefaultSocketPath returns the path of the daemon's datagram socket.
func DefaultSocketPath() string {
	return filepath.Join(RuntimeDir(), SocketFileName)
}

// ConfigDir returns the path to the llmbar config directory
// ($XDG_CONFIG_HOME/llmbar, or ~/.config/llmbar).
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppDirName), nil
}

// SettingsFile returns the path to the settings.yaml file.
func SettingsFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// DaemonInfoFile returns the path of the info file for a daemon mode.
func DaemonInfoFile(mode models.DaemonMode) string {
	return filepath.Join(RuntimeDir(), "llmbard-"+string(mode)+".yaml")
}

// DaemonLockFile returns the path of the single-instance lock for a daemon mode.
func DaemonLockFile(mode models.DaemonMode) string {
	return filepath.Join(RuntimeDir(), "llmbard-"+string(mode)+".lock")
}

// DefaultTranscriptDir returns the directory Claude Code keeps transcripts in.
func DefaultTranscriptDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claude", "projects"), nil
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

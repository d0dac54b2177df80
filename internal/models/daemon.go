package models

import "time"

// DaemonMode distinguishes the two long-running llmbard roles.
type DaemonMode string

const (
	DaemonModeRelay     DaemonMode = "relay"     // socket daemon
	DaemonModeAggregate DaemonMode = "aggregate" // session aggregator
)

// DaemonInfo describes a running llmbard process.
// This corresponds to $XDG_RUNTIME_DIR/llmbard-<mode>.yaml.
type DaemonInfo struct {
	Version     int        `yaml:"version"`
	Mode        DaemonMode `yaml:"mode"`
	PID         int        `yaml:"pid"`
	SocketPath  string     `yaml:"socket_path,omitempty"`
	SessionsDir string     `yaml:"sessions_dir,omitempty"`
	StatePath   string     `yaml:"state_path"`
	StartedAt   time.Time  `yaml:"started_at"`
}

// NewDaemonInfo creates daemon info for the current process.
func NewDaemonInfo(mode DaemonMode, pid int, statePath string) *DaemonInfo {
	return &DaemonInfo{
		Version:   1,
		Mode:      mode,
		PID:       pid,
		StatePath: statePath,
		StartedAt: time.Now().UTC(),
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/gofrs/flock"

	"github.com/watchfire-io/llmbar/internal/models"
)

// ErrDaemonRunning is returned by AcquireDaemonLock when another daemon of the
// same mode holds the lock.
var ErrDaemonRunning = errors.New("daemon already running")

// LoadDaemonInfo loads the info file for mode.
// Returns nil if the file doesn't exist.
func LoadDaemonInfo(mode models.DaemonMode) (*models.DaemonInfo, error) {
	path := DaemonInfoFile(mode)
	if !FileExists(path) {
		return nil, nil
	}

	var info models.DaemonInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveDaemonInfo writes the info file for info.Mode.
func SaveDaemonInfo(info *models.DaemonInfo) error {
	return SaveYAML(DaemonInfoFile(info.Mode), info)
}

// RemoveDaemonInfo removes the info file for mode.
func RemoveDaemonInfo(mode models.DaemonMode) error {
	path := DaemonInfoFile(mode)
	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}

// IsDaemonRunning checks if the daemon process for mode is still running.
// Returns true if the info file exists and the PID is alive.
func IsDaemonRunning(mode models.DaemonMode) (bool, *models.DaemonInfo, error) {
	info, err := LoadDaemonInfo(mode)
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	if !ProcessAlive(info.PID) {
		// Process doesn't exist, clean up stale file
		_ = RemoveDaemonInfo(mode)
		return false, info, nil
	}
	return true, info, nil
}

// ProcessAlive reports whether pid exists, using signal 0.
func ProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

// DaemonLock is a held single-instance lock.
type DaemonLock struct {
	lock *flock.Flock
}

// AcquireDaemonLock takes the advisory lock for mode without blocking.
// It returns ErrDaemonRunning when another process already holds it.
func AcquireDaemonLock(mode models.DaemonMode) (*DaemonLock, error) {
	path := DaemonLockFile(mode)
	if err := EnsureDir(RuntimeDir()); err != nil {
		return nil, fmt.Errorf("failed to create runtime dir: %w", err)
	}

	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}
	if !locked {
		return nil, ErrDaemonRunning
	}
	return &DaemonLock{lock: fl}, nil
}

// Release drops the lock.
func (l *DaemonLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}

package config

import (
	"errors"
	"os"
	"testing"

	"github.com/watchfire-io/llmbar/internal/models"
)

func TestDaemonInfoLifecycle(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	running, info, err := IsDaemonRunning(models.DaemonModeRelay)
	if err != nil || running || info != nil {
		t.Fatalf("IsDaemonRunning() before save = %v, %v, %v", running, info, err)
	}

	want := models.NewDaemonInfo(models.DaemonModeRelay, os.Getpid(), "/run/state.json")
	want.SocketPath = "/run/llm-bridge.sock"
	if err := SaveDaemonInfo(want); err != nil {
		t.Fatalf("SaveDaemonInfo() error = %v", err)
	}

	running, info, err = IsDaemonRunning(models.DaemonModeRelay)
	if err != nil {
		t.Fatalf("IsDaemonRunning() error = %v", err)
	}
	if !running || info.PID != want.PID || info.SocketPath != want.SocketPath {
		t.Errorf("IsDaemonRunning() = %v, %+v", running, info)
	}

	if running, _, _ := IsDaemonRunning(models.DaemonModeAggregate); running {
		t.Error("aggregate mode reported running from relay info")
	}

	if err := RemoveDaemonInfo(models.DaemonModeRelay); err != nil {
		t.Fatalf("RemoveDaemonInfo() error = %v", err)
	}
	if FileExists(DaemonInfoFile(models.DaemonModeRelay)) {
		t.Error("info file still exists after remove")
	}
}

func TestIsDaemonRunningRemovesStaleInfo(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	// PIDs this large are never allocated on Linux.
	if err := SaveDaemonInfo(models.NewDaemonInfo(models.DaemonModeAggregate, 1<<30, "")); err != nil {
		t.Fatal(err)
	}

	running, info, err := IsDaemonRunning(models.DaemonModeAggregate)
	if err != nil || running || info == nil {
		t.Fatalf("IsDaemonRunning() = %v, %v, %v, want false with info", running, info, err)
	}
	if FileExists(DaemonInfoFile(models.DaemonModeAggregate)) {
		t.Error("stale info file was not removed")
	}
}

func TestAcquireDaemonLock(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	first, err := AcquireDaemonLock(models.DaemonModeRelay)
	if err != nil {
		t.Fatalf("AcquireDaemonLock() error = %v", err)
	}

	if _, err := AcquireDaemonLock(models.DaemonModeRelay); !errors.Is(err, ErrDaemonRunning) {
		t.Errorf("second AcquireDaemonLock() error = %v, want ErrDaemonRunning", err)
	}

	other, err := AcquireDaemonLock(models.DaemonModeAggregate)
	if err != nil {
		t.Fatalf("AcquireDaemonLock(aggregate) error = %v", err)
	}
	defer other.Release()

	if err := first.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	again, err := AcquireDaemonLock(models.DaemonModeRelay)
	if err != nil {
		t.Fatalf("AcquireDaemonLock() after release error = %v", err)
	}
	again.Release()
}

package aggregator

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/watchfire-io/llmbar/internal/config"
	"github.com/watchfire-io/llmbar/internal/models"
)

func TestWatchRecomputesOnChange(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "sessions")
	out := filepath.Join(root, "state.json")

	var notified atomic.Int32
	a := New(Options{
		SessionsDir: dir,
		OutputPath:  out,
		Notifier:    notifyFunc(func() { notified.Add(1) }),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Watch(ctx) }()

	waitFor(t, func() bool { return notified.Load() >= 1 })
	if got := config.LoadState(out, time.Now()); got.Text != "Idle" {
		t.Errorf("initial Text = %q, want Idle", got.Text)
	}

	s := models.NewDisplayState()
	s.SessionID = "live"
	s.SetPhase(models.ToolUsePhase("Edit"), time.Now())
	if err := config.WriteSessionState(dir, s); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		return config.LoadState(out, time.Now()).Class == "active"
	})

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch() did not return after cancel")
	}
}

func TestWatchFailsWithoutDir(t *testing.T) {
	a := New(Options{
		SessionsDir: "/proc/llmbar-no-such/sessions",
		OutputPath:  filepath.Join(t.TempDir(), "state.json"),
	})
	if err := a.Watch(context.Background()); err == nil {
		t.Error("Watch() error = nil, want setup failure")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met within 3s")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSweepRewritesOutput(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "sessions")
	out := filepath.Join(root, "state.json")
	writeSession(t, dir, "a", "/a", "Edit", 1, 10*time.Second)

	now := testNow
	notified := 0
	a := New(Options{
		SessionsDir: dir,
		OutputPath:  out,
		Now:         func() time.Time { return now },
		Notifier:    notifyFunc(func() { notified++ }),
	})
	a.Update()
	if got := config.LoadState(out, now); got.Class != ClassActive {
		t.Fatalf("Class = %q before sweep, want active", got.Class)
	}

	if n := a.Sweep(); n != 0 {
		t.Errorf("Sweep() on fresh session = %d, want 0", n)
	}
	if notified != 1 {
		t.Errorf("notified = %d after no-op sweep, want 1", notified)
	}

	// The session stops writing and ages past StaleTimeout.
	now = now.Add(400 * time.Second)
	if n := a.Sweep(); n != 1 {
		t.Fatalf("Sweep() = %d, want 1", n)
	}

	got := config.LoadState(out, now)
	if got.Class != ClassIdle || got.Text != models.ActivityIdle || got.Cost != 0 {
		t.Errorf("output after sweep = %q/%q/%v, want Idle/idle/0", got.Text, got.Class, got.Cost)
	}
	if notified != 2 {
		t.Errorf("notified = %d, want 2", notified)
	}
}

func TestWatchRecomputesOnRemove(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "sessions")
	out := filepath.Join(root, "state.json")

	s := models.NewDisplayState()
	s.SessionID = "gone"
	s.SetPhase(models.ToolUsePhase("Bash"), time.Now())
	if err := config.WriteSessionState(dir, s); err != nil {
		t.Fatal(err)
	}

	a := New(Options{SessionsDir: dir, OutputPath: out})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- a.Watch(ctx) }()

	waitFor(t, func() bool {
		return config.LoadState(out, time.Now()).Class == ClassActive
	})

	if err := os.Remove(config.SessionFile(dir, "gone")); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool {
		return config.LoadState(out, time.Now()).Class == ClassIdle
	})

	cancel()
	<-done
}

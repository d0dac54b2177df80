package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/watchfire-io/llmbar/internal/config"
	"github.com/watchfire-io/llmbar/internal/daemon/socket"
	"github.com/watchfire-io/llmbar/internal/models"
)

// useTestSettings points the package settings at a temp dir with no daemon
// listening and no status bar to signal.
func useTestSettings(t *testing.T) *models.Settings {
	t.Helper()
	dir := t.TempDir()
	s := models.NewSettings()
	s.StatePath = filepath.Join(dir, "state.json")
	s.SessionsDir = filepath.Join(dir, "sessions")
	s.SocketPath = filepath.Join(dir, "llm-bridge.sock")
	s.UIProcess = "llmbar-test-no-such-process"

	prev := settings
	settings = s
	t.Cleanup(func() { settings = prev })
	return s
}

func TestDeliverWithoutDaemon(t *testing.T) {
	s := useTestSettings(t)
	p := &HookPayload{SessionID: "sess-1", Cwd: "/work"}

	if err := deliver(s, EventMessages(socket.EventToolStart, "Bash", "", "", p)...); err != nil {
		t.Fatalf("deliver() error = %v", err)
	}

	state, err := config.ReadState(s.StatePath, time.Now())
	if err != nil {
		t.Fatalf("ReadState() error = %v", err)
	}
	if state.Activity != "Bash" || state.Class != models.ClassToolActive {
		t.Errorf("state = %q/%q, want Bash/tool-active", state.Activity, state.Class)
	}
	if state.SessionID != "sess-1" || state.Cwd != "/work" {
		t.Errorf("session = %q %q", state.SessionID, state.Cwd)
	}
	if state.Text == "" {
		t.Error("Text not recomputed")
	}

	session, err := config.ReadState(config.SessionFile(s.SessionsDir, "sess-1"), time.Now())
	if err != nil {
		t.Fatalf("session file: %v", err)
	}
	if session.Activity != "Bash" {
		t.Errorf("session Activity = %q, want Bash", session.Activity)
	}
}

func TestApplyDirectKeepsUsage(t *testing.T) {
	s := useTestSettings(t)
	now := time.Now()

	status := socket.Status([]byte(`{"model":{"display_name":"Opus"},"cost":{"total_cost_usd":1.5}}`))
	if err := applyDirect(s, []socket.Message{status}, now); err != nil {
		t.Fatal(err)
	}
	if err := applyDirect(s, []socket.Message{socket.Event(socket.EventStop, "")}, now); err != nil {
		t.Fatal(err)
	}

	state := config.LoadState(s.StatePath, now)
	if state.Model != "Opus" || state.Cost != 1.5 {
		t.Errorf("usage lost: model %q cost %v", state.Model, state.Cost)
	}
	if state.Activity != models.ActivityIdle {
		t.Errorf("Activity = %q, want Idle", state.Activity)
	}
}

func TestApplyMessagesIgnoresUnknown(t *testing.T) {
	state := models.NewDisplayState()
	applyMessages(state, []socket.Message{
		socket.Event("bogus", "x"),
		socket.Status([]byte("not json")),
	}, time.Now())

	if state.Activity != models.ActivityIdle || state.Model != "" {
		t.Errorf("state changed: %+v", state)
	}
}

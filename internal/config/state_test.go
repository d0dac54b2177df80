package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/watchfire-io/llmbar/internal/models"
)

func TestWriteStateAtomicRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "state.json")
	now := time.Unix(1_700_000_000, 0)

	state := models.NewDisplayState()
	state.Model = "Opus 4.5"
	state.Cost = 1.25
	state.InputTokens = 42
	state.SessionID = "abc"
	state.SetPhase(models.ToolUsePhase("Read"), now)
	state.Refresh(models.DefaultFormat)

	if err := WriteStateAtomic(path, state); err != nil {
		t.Fatalf("WriteStateAtomic() error = %v", err)
	}

	got, err := ReadState(path, now.Add(10*time.Second))
	if err != nil {
		t.Fatalf("ReadState() error = %v", err)
	}
	if *got != *state {
		t.Errorf("ReadState() = %+v, want %+v", got, state)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the state file", len(entries))
	}
}

func TestReadStateForcesIdleWhenStale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	then := time.Unix(1_700_000_000, 0)

	state := models.NewDisplayState()
	state.SetPhase(models.ThinkingPhase(), then)
	if err := WriteStateAtomic(path, state); err != nil {
		t.Fatal(err)
	}

	got, err := ReadState(path, then.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("ReadState() error = %v", err)
	}
	if got.Activity != "Idle" || got.Class != "idle" || got.Alt != "idle" {
		t.Errorf("stale state = (%q, %q, %q), want Idle/idle/idle", got.Activity, got.Class, got.Alt)
	}
	if got.LastActivityTime != then.Unix() {
		t.Errorf("LastActivityTime = %d, want %d", got.LastActivityTime, then.Unix())
	}
}

func TestReadStatePartialDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(`{"model":"Sonnet"}`), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadState(path, time.Now())
	if err != nil {
		t.Fatalf("ReadState() error = %v", err)
	}
	if got.Model != "Sonnet" || got.Activity != "Idle" || got.Class != "idle" {
		t.Errorf("ReadState() = %+v, want defaults plus model", got)
	}
}

func TestLoadStateFallsBack(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(garbage, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "missing.json")},
		{"undecodable", garbage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadState(tt.path, time.Now()); err == nil {
				t.Errorf("ReadState(%q) error = nil, want error", tt.path)
			}
			got := LoadState(tt.path, time.Now())
			if *got != *models.NewDisplayState() {
				t.Errorf("LoadState(%q) = %+v, want default", tt.path, got)
			}
		})
	}
}

func TestWriteSessionState(t *testing.T) {
	dir := t.TempDir()

	if err := WriteSessionState(dir, models.NewDisplayState()); err != nil {
		t.Fatalf("WriteSessionState() without id error = %v", err)
	}
	files, _ := ListSessionFiles(dir)
	if len(files) != 0 {
		t.Fatalf("state without session id was written: %v", files)
	}

	state := models.NewDisplayState()
	state.SessionID = "s1"
	if err := WriteSessionState(dir, state); err != nil {
		t.Fatalf("WriteSessionState() error = %v", err)
	}
	if !FileExists(SessionFile(dir, "s1")) {
		t.Errorf("session file %s not written", SessionFile(dir, "s1"))
	}

	if got := SessionFile(dir, "../escape"); filepath.Dir(got) != dir {
		t.Errorf("SessionFile escaped dir: %s", got)
	}
}

func TestListSessionFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.json", "b.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := ListSessionFiles(dir)
	if err != nil {
		t.Fatalf("ListSessionFiles() error = %v", err)
	}
	if len(files) != 2 {
		t.Errorf("ListSessionFiles() = %v, want 2 json files", files)
	}

	files, err = ListSessionFiles(filepath.Join(dir, "missing"))
	if err != nil || files != nil {
		t.Errorf("ListSessionFiles(missing) = %v, %v, want nil, nil", files, err)
	}
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/watchfire-io/llmbar/internal/models"
)

// WriteStateAtomic writes state as JSON to path. The document is written to a
// uniquely named temp file in the same directory, synced, then renamed over
// path, so readers always see a complete object.
func WriteStateAtomic(path string, state *models.DisplayState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	return writeFileAtomic(path, data)
}

// ReadState reads the state at path and applies the activity timeout as of
// now. Missing or undecodable files are errors. Fields absent from the
// document keep their default values.
func ReadState(path string, now time.Time) (*models.DisplayState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state %s: %w", path, err)
	}

	state := models.NewDisplayState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to parse state %s: %w", path, err)
	}
	state.CheckActivityTimeout(now)
	return state, nil
}

// LoadState is ReadState that returns the default state on any error.
func LoadState(path string, now time.Time) *models.DisplayState {
	state, err := ReadState(path, now)
	if err != nil {
		return models.NewDisplayState()
	}
	return state
}

// SessionFile returns the path of the per-session state file.
func SessionFile(dir, sessionID string) string {
	return filepath.Join(dir, filepath.Base(sessionID)+".json")
}

// WriteSessionState writes state to its per-session file in dir. States
// without a session id are not written.
func WriteSessionState(dir string, state *models.DisplayState) error {
	if state.SessionID == "" {
		return nil
	}
	return WriteStateAtomic(SessionFile(dir, state.SessionID), state)
}

// ListSessionFiles returns the *.json files in dir. A missing dir yields none.
func ListSessionFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sessions dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

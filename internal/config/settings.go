package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/watchfire-io/llmbar/internal/models"
)

// Environment variables that override the settings file.
const (
	EnvStatePath     = "LLM_BRIDGE_STATE_PATH"
	EnvSignal        = "LLM_BRIDGE_SIGNAL"
	EnvFormat        = "LLM_BRIDGE_FORMAT"
	EnvSessionsDir   = "LLM_BRIDGE_SESSIONS_DIR"
	EnvSocketPath    = "LLM_BRIDGE_SOCKET_PATH"
	EnvTranscriptDir = "LLM_BRIDGE_TRANSCRIPT_DIR"
	EnvUIProcess     = "LLM_BRIDGE_UI_PROCESS"
)

// LoadSettings loads settings.yaml, applies environment overrides and fills
// every empty path with its default. A missing file yields defaults.
func LoadSettings() (*models.Settings, error) {
	path, err := SettingsFile()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFrom(path)
}

// LoadSettingsFrom is LoadSettings with an explicit settings file path.
func LoadSettingsFrom(path string) (*models.Settings, error) {
	s, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(s, os.LookupEnv); err != nil {
		return nil, err
	}
	ApplyDefaults(s)
	return s, nil
}

// SaveSettings saves settings to settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := SettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}

// ApplyEnv overrides fields of s from the LLM_BRIDGE_* variables.
func ApplyEnv(s *models.Settings, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str(EnvStatePath, &s.StatePath)
	str(EnvFormat, &s.Format)
	str(EnvSessionsDir, &s.SessionsDir)
	str(EnvSocketPath, &s.SocketPath)
	str(EnvTranscriptDir, &s.TranscriptDir)
	str(EnvUIProcess, &s.UIProcess)

	if v, ok := lookup(EnvSignal); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvSignal, v, err)
		}
		s.Signal = n
	}
	return nil
}

// ApplyDefaults fills empty fields with the built-in defaults.
func ApplyDefaults(s *models.Settings) {
	if s.StatePath == "" {
		s.StatePath = DefaultStatePath()
	}
	if s.SessionsDir == "" {
		s.SessionsDir = DefaultSessionsDir()
	}
	if s.SocketPath == "" {
		s.SocketPath = DefaultSocketPath()
	}
	if s.TranscriptDir == "" {
		if dir, err := DefaultTranscriptDir(); err == nil {
			s.TranscriptDir = dir
		}
	}
	if s.Format == "" {
		s.Format = models.DefaultFormat
	}
	if s.Signal == 0 {
		s.Signal = models.DefaultSignal
	}
	if s.UIProcess == "" {
		s.UIProcess = models.DefaultUIProcess
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/watchfire-io/llmbar/internal/models"
)

func TestLoadYAMLOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		content    *string
		wantFormat string
		wantSignal int
	}{
		{"missing file", nil, models.DefaultFormat, models.DefaultSignal},
		{"empty file", ptr(""), models.DefaultFormat, models.DefaultSignal},
		{"partial file keeps defaults", ptr("signal: 4\n"), models.DefaultFormat, 4},
		{"full override", ptr("format: \"{model}\"\nsignal: 2\n"), "{model}", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.yaml")
			if tt.content != nil {
				if err := os.WriteFile(path, []byte(*tt.content), 0644); err != nil {
					t.Fatal(err)
				}
			}

			s, err := LoadYAMLOrDefault(path, models.NewSettings)
			if err != nil {
				t.Fatalf("LoadYAMLOrDefault() error = %v", err)
			}
			if s.Format != tt.wantFormat || s.Signal != tt.wantSignal {
				t.Errorf("got format %q signal %d, want %q %d", s.Format, s.Signal, tt.wantFormat, tt.wantSignal)
			}
			if s.UIProcess != models.DefaultUIProcess {
				t.Errorf("UIProcess = %q, want default", s.UIProcess)
			}
		})
	}
}

func TestLoadYAMLInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("signal: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadYAMLOrDefault(path, models.NewSettings); err == nil {
		t.Error("LoadYAMLOrDefault() error = nil, want parse error")
	}
}

func TestSaveYAMLLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "settings.yaml")

	s := models.NewSettings()
	s.Signal = 3
	if err := SaveYAML(path, s); err != nil {
		t.Fatalf("SaveYAML() error = %v", err)
	}

	got, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		t.Fatalf("LoadYAMLOrDefault() error = %v", err)
	}
	if got.Signal != 3 {
		t.Errorf("Signal = %d, want 3", got.Signal)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only settings.yaml", len(entries))
	}
}

func ptr(s string) *string { return &s }

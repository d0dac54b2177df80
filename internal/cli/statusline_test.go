package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/watchfire-io/llmbar/internal/daemon/server"
	"github.com/watchfire-io/llmbar/internal/models"
)

func TestParseStatusline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"display name", `{"model":{"id":"claude-opus-4-5","display_name":"Opus 4.5"},"cost":{"total_cost_usd":1.234}}`, "Opus 4.5 | $1.23"},
		{"id only", `{"model":{"id":"claude-sonnet"}}`, "claude-sonnet | $0.00"},
		{"empty object", `{}`, "Claude | $0.00"},
		{"garbage", `not json`, "Claude | $0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, line := ParseStatusline([]byte(tt.input))
			if line != tt.want {
				t.Errorf("line = %q, want %q", line, tt.want)
			}
			if p == nil || p.Model == nil {
				t.Error("payload or model is nil")
			}
		})
	}
}

func writeTranscript(t *testing.T, in, out uint64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "t.jsonl")
	line := fmt.Sprintf(`{"type":"assistant","message":{"usage":{"input_tokens":%d,"output_tokens":%d}}}`, in, out)
	if err := os.WriteFile(path, []byte(line+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEnrichFromTranscript(t *testing.T) {
	path := writeTranscript(t, 1_000_000, 0)

	t.Run("estimate fills missing cost", func(t *testing.T) {
		p := &server.StatusPayload{TranscriptPath: path}
		EnrichFromTranscript(p)

		s := models.NewDisplayState()
		p.Apply(s)
		if s.InputTokens != 1_000_000 {
			t.Errorf("InputTokens = %d", s.InputTokens)
		}
		if s.Cost != 3 {
			t.Errorf("Cost = %v, want 3", s.Cost)
		}
	})

	t.Run("reported cost wins", func(t *testing.T) {
		reported := 0.5
		p := &server.StatusPayload{TranscriptPath: path, Cost: &server.StatusCost{TotalCostUSD: &reported}}
		EnrichFromTranscript(p)
		if *p.Cost.TotalCostUSD != 0.5 {
			t.Errorf("cost = %v, want reported 0.5", *p.Cost.TotalCostUSD)
		}
	})

	t.Run("zero cost replaced", func(t *testing.T) {
		zero := 0.0
		p := &server.StatusPayload{TranscriptPath: path, Cost: &server.StatusCost{TotalCostUSD: &zero}}
		EnrichFromTranscript(p)
		if *p.Cost.TotalCostUSD != 3 {
			t.Errorf("cost = %v, want estimate 3", *p.Cost.TotalCostUSD)
		}
	})

	t.Run("missing transcript", func(t *testing.T) {
		p := &server.StatusPayload{TranscriptPath: filepath.Join(t.TempDir(), "none.jsonl")}
		EnrichFromTranscript(p)
		if p.ContextWindow != nil || p.Cost != nil {
			t.Errorf("payload changed: %+v", p)
		}
	})
}

func TestUsageStatus(t *testing.T) {
	m := models.UsageMetrics{InputTokens: 1, OutputTokens: 2, CacheRead: 3, CacheWrite: 4, EstimatedCost: 0.01}
	s := models.NewDisplayState()
	s.Model = "kept"
	UsageStatus(m).Apply(s)

	if s.InputTokens != 1 || s.OutputTokens != 2 || s.CacheRead != 3 || s.CacheWrite != 4 || s.Cost != 0.01 {
		t.Errorf("usage not applied: %+v", s)
	}
	if s.Model != "kept" {
		t.Errorf("Model = %q, want untouched", s.Model)
	}
}

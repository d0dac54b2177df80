package models

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestNewDisplayState(t *testing.T) {
	s := NewDisplayState()
	if s.Model != "" || s.Cost != 0 || s.InputTokens != 0 || s.OutputTokens != 0 {
		t.Errorf("default state has usage set: %+v", s)
	}
	if s.Activity != "Idle" || s.Text != "Idle" || s.Class != "idle" || s.Alt != "idle" {
		t.Errorf("default presentation = (%q, %q, %q, %q), want Idle/Idle/idle/idle", s.Activity, s.Text, s.Class, s.Alt)
	}
	if s.Percentage != 0 {
		t.Errorf("Percentage = %d, want 0", s.Percentage)
	}
}

func TestPhasePresentation(t *testing.T) {
	tests := []struct {
		name     string
		phase    Phase
		activity string
		class    string
		alt      string
	}{
		{"idle", IdlePhase(), "Idle", "idle", "idle"},
		{"thinking", ThinkingPhase(), "Thinking", "thinking", "active"},
		{"tool", ToolUsePhase("Read"), "Read", "tool-active", "active"},
		{"error", ErrorPhase("Connection failed"), "Error: Connection failed", "error", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FromPhase(tt.phase, nil)
			if s.Activity != tt.activity || s.Class != tt.class || s.Alt != tt.alt {
				t.Errorf("FromPhase = (%q, %q, %q), want (%q, %q, %q)",
					s.Activity, s.Class, s.Alt, tt.activity, tt.class, tt.alt)
			}
			if s.Text != tt.activity {
				t.Errorf("Text = %q, want %q", s.Text, tt.activity)
			}
			if s.Tooltip != "" {
				t.Errorf("Tooltip = %q, want empty without usage", s.Tooltip)
			}
		})
	}
}

func TestFromPhaseWithUsage(t *testing.T) {
	usage := UsageMetrics{
		InputTokens:   1000,
		OutputTokens:  500,
		CacheRead:     2000,
		CacheWrite:    100,
		EstimatedCost: 0.25,
	}

	s := FromPhase(ThinkingPhase(), &usage)

	if s.InputTokens != 1000 || s.OutputTokens != 500 || s.CacheRead != 2000 || s.CacheWrite != 100 {
		t.Errorf("usage not copied: %+v", s)
	}
	if s.Cost != 0.25 {
		t.Errorf("Cost = %v, want 0.25", s.Cost)
	}
	if !strings.Contains(s.Tooltip, "Tokens: 1000 in / 500 out") {
		t.Errorf("Tooltip = %q, missing token line", s.Tooltip)
	}
}

func TestTruncateToolName(t *testing.T) {
	tests := []struct {
		name string
		tool string
		want string
	}{
		{"short", "Read", "Read"},
		{"exactly limit", strings.Repeat("a", 20), strings.Repeat("a", 20)},
		{"25 ascii", "abcdefghijklmnopqrstuvwxy", "abcdefghijklmnopq..."},
		{"multibyte", strings.Repeat("é", 25), strings.Repeat("é", 17) + "..."},
		{"emoji", strings.Repeat("🔧", 21), strings.Repeat("🔧", 17) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateToolName(tt.tool)
			if got != tt.want {
				t.Errorf("TruncateToolName(%q) = %q, want %q", tt.tool, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("TruncateToolName(%q) produced invalid UTF-8", tt.tool)
			}
		})
	}

	if got := TruncateToolName("abcdefghijklmnopqrstuvwxy"); len(got) != 20 {
		t.Errorf("truncated length = %d, want 20", len(got))
	}
}

func TestSetPhaseKeepsUsage(t *testing.T) {
	s := &DisplayState{Model: "Opus 4.5", Cost: 1.5, InputTokens: 10}
	at := time.Unix(1_700_000_000, 0)

	s.SetPhase(ToolUsePhase("Bash"), at)

	if s.Activity != "Bash" || s.Class != "tool-active" || s.Alt != "active" {
		t.Errorf("presentation = (%q, %q, %q)", s.Activity, s.Class, s.Alt)
	}
	if s.LastActivityTime != at.Unix() {
		t.Errorf("LastActivityTime = %d, want %d", s.LastActivityTime, at.Unix())
	}
	if s.Model != "Opus 4.5" || s.Cost != 1.5 || s.InputTokens != 10 {
		t.Errorf("usage fields changed: %+v", s)
	}
}

func TestCheckActivityTimeout(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name      string
		activity  string
		last      int64
		wantReset bool
		wantAct   string
	}{
		{"already idle", "Idle", 1000, false, "Idle"},
		{"no timestamp", "Thinking", 0, false, "Thinking"},
		{"recent", "Read", now.Unix() - 30, false, "Read"},
		{"exactly timeout", "Read", now.Unix() - 60, false, "Read"},
		{"old", "Edit", now.Unix() - 120, true, "Idle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &DisplayState{
				Activity:         tt.activity,
				Class:            "tool-active",
				Alt:              "active",
				LastActivityTime: tt.last,
			}
			if got := s.CheckActivityTimeout(now); got != tt.wantReset {
				t.Errorf("CheckActivityTimeout() = %v, want %v", got, tt.wantReset)
			}
			if s.Activity != tt.wantAct {
				t.Errorf("Activity = %q, want %q", s.Activity, tt.wantAct)
			}
			if tt.wantReset && (s.Class != "idle" || s.Alt != "idle") {
				t.Errorf("class/alt = %q/%q, want idle/idle", s.Class, s.Alt)
			}
		})
	}
}

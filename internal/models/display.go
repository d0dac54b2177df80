// Package models contains shared data structures used across the application.
package models

import (
	"time"
	"unicode/utf8"
)

// Activity values with fixed meaning. Any other activity is a tool name or an
// "Error: ..." string.
const (
	ActivityIdle     = "Idle"
	ActivityThinking = "Thinking"
)

// Presentation classes written to the "class" and "alt" fields.
const (
	ClassIdle       = "idle"
	ClassThinking   = "thinking"
	ClassToolActive = "tool-active"
	ClassError      = "error"
	AltIdle         = "idle"
	AltActive       = "active"
	AltError        = "error"
)

// ActivityTimeout is how long a non-idle activity survives without a fresh
// event before a reader reports it as idle.
const ActivityTimeout = 60 * time.Second

// Tool names longer than MaxToolNameLen runes are cut to TruncatedToolNameLen
// runes plus an ellipsis.
const (
	MaxToolNameLen       = 20
	TruncatedToolNameLen = 17
)

// DisplayState is the record of one session's activity, usage and computed
// presentation. It is the JSON document the status bar reads.
type DisplayState struct {
	Model            string  `json:"model"`
	Activity         string  `json:"activity"`
	Cost             float64 `json:"cost"`
	InputTokens      uint64  `json:"input_tokens"`
	OutputTokens     uint64  `json:"output_tokens"`
	CacheRead        uint64  `json:"cache_read"`
	CacheWrite       uint64  `json:"cache_write"`
	LastActivityTime int64   `json:"last_activity_time"` // Unix seconds, 0 = never
	SessionID        string  `json:"session_id"`
	Cwd              string  `json:"cwd"`

	// Computed from the fields above.
	Text       string `json:"text"`
	Tooltip    string `json:"tooltip"`
	Class      string `json:"class"`
	Alt        string `json:"alt"`
	Percentage uint8  `json:"percentage"`
}

// NewDisplayState returns the default idle state.
func NewDisplayState() *DisplayState {
	return &DisplayState{
		Activity: ActivityIdle,
		Text:     ActivityIdle,
		Class:    ClassIdle,
		Alt:      AltIdle,
	}
}

// UsageMetrics is a cumulative token/cost snapshot for one session.
type UsageMetrics struct {
	InputTokens   uint64  `json:"input_tokens"`
	OutputTokens  uint64  `json:"output_tokens"`
	CacheRead     uint64  `json:"cache_read"`
	CacheWrite    uint64  `json:"cache_write"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// PhaseKind classifies what the agent is doing.
type PhaseKind int

const (
	PhaseIdle PhaseKind = iota
	PhaseThinking
	PhaseToolUse
	PhaseError
)

// Phase is an agent phase transition. Detail carries the tool name for
// PhaseToolUse and the message for PhaseError.
type Phase struct {
	Kind   PhaseKind
	Detail string
}

// IdlePhase returns the idle phase.
func IdlePhase() Phase { return Phase{Kind: PhaseIdle} }

// ThinkingPhase returns the thinking phase.
func ThinkingPhase() Phase { return Phase{Kind: PhaseThinking} }

// ToolUsePhase returns a tool-use phase for the given tool.
func ToolUsePhase(tool string) Phase { return Phase{Kind: PhaseToolUse, Detail: tool} }

// ErrorPhase returns an error phase carrying message.
func ErrorPhase(message string) Phase { return Phase{Kind: PhaseError, Detail: message} }

// Presentation returns the activity, class and alt values for the phase.
func (p Phase) Presentation() (activity, class, alt string) {
	switch p.Kind {
	case PhaseThinking:
		return ActivityThinking, ClassThinking, AltActive
	case PhaseToolUse:
		return TruncateToolName(p.Detail), ClassToolActive, AltActive
	case PhaseError:
		return "Error: " + p.Detail, ClassError, AltError
	default:
		return ActivityIdle, ClassIdle, AltIdle
	}
}

// TruncateToolName shortens long tool names by rune count so multi-byte
// characters are never split.
func TruncateToolName(tool string) string {
	if utf8.RuneCountInString(tool) <= MaxToolNameLen {
		return tool
	}
	n := 0
	for i := range tool {
		if n == TruncatedToolNameLen {
			return tool[:i] + "..."
		}
		n++
	}
	return tool
}

// FromPhase builds a fresh state for phase. Text defaults to the activity.
// When usage is non-nil the usage fields and tooltip are filled in too.
func FromPhase(p Phase, usage *UsageMetrics) *DisplayState {
	s := NewDisplayState()
	s.Activity, s.Class, s.Alt = p.Presentation()
	s.Text = s.Activity
	if usage != nil {
		s.SetUsage(*usage)
	}
	return s
}

// SetPhase applies a phase transition and stamps the activity time.
// Usage fields are left untouched.
func (s *DisplayState) SetPhase(p Phase, at time.Time) {
	s.Activity, s.Class, s.Alt = p.Presentation()
	s.LastActivityTime = at.Unix()
}

// SetUsage overwrites the usage fields with u and refreshes the tooltip.
func (s *DisplayState) SetUsage(u UsageMetrics) {
	s.InputTokens = u.InputTokens
	s.OutputTokens = u.OutputTokens
	s.CacheRead = u.CacheRead
	s.CacheWrite = u.CacheWrite
	s.Cost = u.EstimatedCost
	s.Tooltip = s.ComputeTooltip()
}

// Refresh recomputes the text and tooltip from the current fields.
func (s *DisplayState) Refresh(format string) {
	s.Text = s.ComputeText(format)
	s.Tooltip = s.ComputeTooltip()
}

// IsIdle reports whether the state shows no agent activity.
func (s *DisplayState) IsIdle() bool {
	return s.Activity == ActivityIdle
}

// CheckActivityTimeout resets a non-idle activity to idle when its last
// activity is older than ActivityTimeout. It reports whether it reset.
func (s *DisplayState) CheckActivityTimeout(now time.Time) bool {
	if s.Activity == ActivityIdle || s.LastActivityTime == 0 {
		return false
	}
	if now.Unix()-s.LastActivityTime <= int64(ActivityTimeout/time.Second) {
		return false
	}
	s.Activity = ActivityIdle
	s.Class = ClassIdle
	s.Alt = AltIdle
	return true
}

// Age returns the time since the last activity, or false if it was never set.
func (s *DisplayState) Age(now time.Time) (time.Duration, bool) {
	if s.LastActivityTime == 0 {
		return 0, false
	}
	return time.Duration(now.Unix()-s.LastActivityTime) * time.Second, true
}

package server

import (
	"encoding/json"

	"github.com/watchfire-io/llmbar/internal/models"
)

// defaultModelName is shown when a status payload names no model.
const defaultModelName = "Claude"

// StatusPayload is the subset of the Claude Code statusLine document the
// daemon consumes. Pointer fields distinguish absent from zero.
type StatusPayload struct {
	SessionID      *string        `json:"session_id"`
	Cwd            *string        `json:"cwd"`
	TranscriptPath string         `json:"transcript_path,omitempty"`
	Model          *StatusModel   `json:"model"`
	Cost           *StatusCost    `json:"cost"`
	ContextWindow  *ContextWindow `json:"context_window"`
}

// StatusModel identifies the model in use.
type StatusModel struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Name returns the display name, falling back to the id and then a default.
func (m *StatusModel) Name() string {
	switch {
	case m.DisplayName != "":
		return m.DisplayName
	case m.ID != "":
		return m.ID
	default:
		return defaultModelName
	}
}

// StatusCost carries the running session cost.
type StatusCost struct {
	TotalCostUSD *float64 `json:"total_cost_usd"`
}

// ContextWindow carries the latest token usage.
type ContextWindow struct {
	CurrentUsage *CurrentUsage `json:"current_usage"`
}

// CurrentUsage is a token-usage snapshot.
type CurrentUsage struct {
	InputTokens              *uint64 `json:"input_tokens"`
	OutputTokens             *uint64 `json:"output_tokens"`
	CacheCreationInputTokens *uint64 `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     *uint64 `json:"cache_read_input_tokens"`
}

// ParseStatus decodes a statusLine payload.
func ParseStatus(data []byte) (*StatusPayload, error) {
	var p StatusPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Apply copies the fields present in p onto s. Absent fields are untouched.
func (p *StatusPayload) Apply(s *models.DisplayState) {
	if p.SessionID != nil {
		s.SessionID = *p.SessionID
	}
	if p.Cwd != nil {
		s.Cwd = *p.Cwd
	}
	if p.Model != nil {
		s.Model = p.Model.Name()
	}
	if p.Cost != nil && p.Cost.TotalCostUSD != nil {
		s.Cost = *p.Cost.TotalCostUSD
	}
	if p.ContextWindow == nil || p.ContextWindow.CurrentUsage == nil {
		return
	}
	u := p.ContextWindow.CurrentUsage
	if u.InputTokens != nil {
		s.InputTokens = *u.InputTokens
	}
	if u.OutputTokens != nil {
		s.OutputTokens = *u.OutputTokens
	}
	if u.CacheCreationInputTokens != nil {
		s.CacheWrite = *u.CacheCreationInputTokens
	}
	if u.CacheReadInputTokens != nil {
		s.CacheRead = *u.CacheReadInputTokens
	}
}

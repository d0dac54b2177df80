package tui

import (
	"time"

	"github.com/watchfire-io/llmbar/internal/daemon/aggregator"
)

// SessionsLoadedMsg carries a fresh aggregate of the live sessions.
type SessionsLoadedMsg struct {
	Aggregate aggregator.AggregateState
	At        time.Time
}

// TickMsg is the periodic refresh tick.
type TickMsg struct{}

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/watchfire-io/llmbar/internal/daemon/aggregator"
)

// RefreshInterval is how often the session files are re-read.
const RefreshInterval = time.Second

func loadSessionsCmd(dir, home string) tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		live := aggregator.Collect(dir, now)
		return SessionsLoadedMsg{Aggregate: aggregator.Merge(live, home), At: now}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(RefreshInterval, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

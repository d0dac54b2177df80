package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/llmbar/internal/daemon/aggregator"
)

// Model is the root Bubbletea model for the watch view.
type Model struct {
	sessionsDir string
	home        string

	agg      aggregator.AggregateState
	loaded   bool
	loadedAt time.Time

	// UI state
	selected int
	showHelp bool
	width    int
	height   int
}

// NewModel creates the watch model for sessionsDir. home shortens session
// paths in the view.
func NewModel(sessionsDir, home string) Model {
	return Model{
		sessionsDir: sessionsDir,
		home:        home,
		agg:         aggregator.DefaultAggregate(),
	}
}

// Init loads the sessions and starts the refresh tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadSessionsCmd(m.sessionsDir, m.home), tickCmd())
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		return m, tea.Batch(loadSessionsCmd(m.sessionsDir, m.home), tickCmd())

	case SessionsLoadedMsg:
		m.agg = msg.Aggregate
		m.loaded = true
		m.loadedAt = msg.At
		m.clampSelection()
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, keys.Help, keys.Close) {
			m.showHelp = false
			return m, nil
		}
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.showHelp = true
	case key.Matches(msg, keys.Up):
		m.selected--
		m.clampSelection()
	case key.Matches(msg, keys.Down):
		m.selected++
		m.clampSelection()
	case key.Matches(msg, keys.Refresh):
		return m, loadSessionsCmd(m.sessionsDir, m.home)
	}
	return m, nil
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.agg.Live) {
		m.selected = len(m.agg.Live) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// Selected returns the index of the highlighted session.
func (m Model) Selected() int {
	return m.selected
}

// View renders the watch view.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := renderHeader(m.agg, m.width)
	status := renderStatusBar(m.loadedAt, m.width)

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(status)
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	var body string
	if !m.loaded {
		body = sectionHeaderStyle.Render("Reading sessions...")
	} else {
		body = renderSessions(m.agg.Live, m.selected, m.home, m.width-2)
		if detail := renderDetail(m.agg.Live, m.selected, m.width-2); detail != "" {
			body += "\n\n" + detail
		}
	}
	body = panelStyle.
		Width(m.width - 2).
		Height(bodyHeight - 2).
		Render(clipLines(body, bodyHeight-2))

	view := lipgloss.JoinVertical(lipgloss.Left, header, body, status)
	if m.showHelp {
		view = renderOverlay(view, renderHelp(m.width), m.width, m.height)
	}
	return view
}

// clipLines keeps the first n lines of s.
func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if n > 0 && len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

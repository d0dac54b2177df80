package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/watchfire-io/llmbar/internal/daemon/aggregator"
	"github.com/watchfire-io/llmbar/internal/models"
)

func renderHeader(agg aggregator.AggregateState, width int) string {
	dot := sessionIdleStyle.Render("○")
	if agg.AnyActive {
		dot = sessionToolStyle.Render("●")
	}
	left := fmt.Sprintf(" %s  %s", dot, headerStyle.Render("llmbar"))
	right := labelStyle.Render(agg.Summary()) + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderSessions lists live sessions, one per line, highlighting selected.
func renderSessions(live []models.DisplayState, selected int, home string, width int) string {
	if len(live) == 0 {
		return sessionIdleStyle.Render("No active sessions")
	}

	lines := make([]string, 0, len(live)+1)
	lines = append(lines, sectionHeaderStyle.Render(fmt.Sprintf("Sessions (%d)", len(live))))
	for i, s := range live {
		name := aggregator.ShortenHome(s.Cwd, home)
		if name == "" {
			name = s.SessionID
		}
		row := fmt.Sprintf(" %s %-24s %s", s.Icon(), s.Activity, name)
		row = ansi.Truncate(row, width-10, "…")
		cost := costStyle.Render("$" + models.FormatCost(s.Cost, 2))

		gap := width - lipgloss.Width(row) - lipgloss.Width(cost) - 1
		if gap < 1 {
			gap = 1
		}
		line := activityStyle(s.Class).Render(row) + strings.Repeat(" ", gap) + cost
		if i == selected {
			line = selectedItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderDetail shows usage for the selected session.
func renderDetail(live []models.DisplayState, selected, width int) string {
	if selected < 0 || selected >= len(live) {
		return ""
	}
	s := live[selected]

	row := func(label, value string) string {
		return ansi.Truncate(labelStyle.Render(fmt.Sprintf("%-10s", label))+valueStyle.Render(value), width, "…")
	}
	lines := []string{sectionHeaderStyle.Render("Details")}
	if s.Model != "" {
		lines = append(lines, row("Model", s.Model))
	}
	lines = append(lines,
		row("Session", s.SessionID),
		row("Tokens", fmt.Sprintf("%d in / %d out", s.InputTokens, s.OutputTokens)),
		row("Cache", fmt.Sprintf("%d read / %d write", s.CacheRead, s.CacheWrite)),
		row("Cost", "$"+models.FormatCost(s.Cost, 4)),
	)
	return strings.Join(lines, "\n")
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpKey struct {
	key  string
	desc string
}

var helpKeys = []helpKey{
	{"j/k ↑/↓", "Select session"},
	{"r", "Refresh now"},
	{"?", "Toggle help"},
	{"q / Ctrl+c", "Quit"},
}

// renderHelp renders the help overlay content.
func renderHelp(width int) string {
	maxWidth := 48
	if width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	sections := []string{overlayTitleStyle.Render("Keyboard Shortcuts"), ""}
	for _, k := range helpKeys {
		keyCol := lipgloss.NewStyle().
			Width(14).
			Foreground(colorWhite).
			Bold(true).
			Render(k.key)
		descCol := lipgloss.NewStyle().
			Foreground(colorDim).
			Render(k.desc)
		sections = append(sections, "  "+keyCol+descCol)
	}
	sections = append(sections, "", lipgloss.NewStyle().Foreground(colorDim).Render("Sessions refresh every second."))
	sections = append(sections, lipgloss.NewStyle().Foreground(colorDim).Render("Press Esc or ? to close"))

	return overlayStyle.Width(maxWidth).Render(strings.Join(sections, "\n"))
}

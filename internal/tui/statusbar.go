package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(loadedAt time.Time, width int) string {
	var hints []string
	for _, b := range keys.shortHelp() {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	left := " " + strings.Join(hints, "  ")

	right := ""
	if !loadedAt.IsZero() {
		right = "updated " + loadedAt.Format("15:04:05") + " "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

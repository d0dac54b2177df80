package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/llmbar/internal/models"
)

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Layout styles.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "235", Dark: "236"})

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim)
)

// Session row styles, keyed by presentation class.
var (
	sessionIdleStyle     = lipgloss.NewStyle().Foreground(colorDim)
	sessionThinkingStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	sessionToolStyle     = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	sessionErrorStyle    = lipgloss.NewStyle().Foreground(colorRed).Bold(true)

	sectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite)

	selectedItemStyle = lipgloss.NewStyle().
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})

	costStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	labelStyle = lipgloss.NewStyle().Foreground(colorDim)
	valueStyle = lipgloss.NewStyle().Foreground(colorWhite)
)

// Overlay styles.
var (
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWhite).
			Padding(1, 2)

	overlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite)

	overlayDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// activityStyle picks the row style for a session class.
func activityStyle(class string) lipgloss.Style {
	switch class {
	case models.ClassThinking:
		return sessionThinkingStyle
	case models.ClassToolActive:
		return sessionToolStyle
	case models.ClassError:
		return sessionErrorStyle
	default:
		return sessionIdleStyle
	}
}

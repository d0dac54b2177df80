package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/llmbar/internal/models"
)

// Terminal palette shared by the status and daemon commands.
var (
	fgPlain  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	fgMuted  = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	fgOK     = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	fgFail   = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	fgWarn   = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	fgAccent = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

var (
	styleBrand   = lipgloss.NewStyle().Bold(true).Foreground(fgAccent)
	styleVersion = lipgloss.NewStyle().Foreground(fgOK)
	styleLabel   = lipgloss.NewStyle().Foreground(fgMuted)
	styleValue   = lipgloss.NewStyle().Foreground(fgPlain)
	styleSuccess = lipgloss.NewStyle().Foreground(fgOK)
	styleWarning = lipgloss.NewStyle().Bold(true).Foreground(fgWarn)
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(fgFail)
	styleHint    = lipgloss.NewStyle().Foreground(fgMuted)
	styleCommand = lipgloss.NewStyle().Bold(true).Foreground(fgPlain)
)

// activityStyle colors an activity by its presentation class.
func activityStyle(class string) lipgloss.Style {
	switch class {
	case models.ClassThinking:
		return lipgloss.NewStyle().Bold(true).Foreground(fgAccent)
	case models.ClassToolActive:
		return styleSuccess.Bold(true)
	case models.ClassError:
		return styleError
	default:
		return styleValue
	}
}

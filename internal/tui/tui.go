// Package tui implements the live terminal view of llmbar sessions.
package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the sessions under sessionsDir until the user quits.
func Run(sessionsDir string) error {
	home, _ := os.UserHomeDir()
	p := tea.NewProgram(NewModel(sessionsDir, home), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

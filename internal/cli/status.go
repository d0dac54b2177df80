package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/watchfire-io/llmbar/internal/config"
	"github.com/watchfire-io/llmbar/internal/models"
)

var statusPretty bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current state as Waybar JSON",
	Long: `Print the current state file as a Waybar custom-module JSON object.

With --pretty (or when stdout is a terminal and --json is not given) a
readable summary is printed instead.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusPretty, "pretty", false, "Print a human-readable summary")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Always print JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	state := config.LoadState(settings.StatePath, time.Now())

	pretty := statusPretty || (!statusJSON && term.IsTerminal(int(os.Stdout.Fd())))
	if pretty {
		fmt.Print(RenderStatus(state, settings.StatePath))
		return nil
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// RenderStatus formats state for a terminal.
func RenderStatus(s *models.DisplayState, path string) string {
	activity := activityStyle(s.Class)

	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s\n", styleLabel.Render(fmt.Sprintf("%-9s", label)), value)
	}

	out := fmt.Sprintf("%s %s\n", styleBrand.Render("llmbar"), styleHint.Render(path))
	out += row("Activity", activity.Render(s.Icon()+" "+s.Activity))
	if s.Model != "" {
		out += row("Model", styleValue.Render(s.Model))
	}
	out += row("Cost", styleValue.Render("$"+models.FormatCost(s.Cost, 4)))
	if s.InputTokens > 0 || s.OutputTokens > 0 {
		out += row("Tokens", styleValue.Render(fmt.Sprintf("%d in / %d out", s.InputTokens, s.OutputTokens)))
	}
	if s.CacheRead > 0 || s.CacheWrite > 0 {
		out += row("Cache", styleValue.Render(fmt.Sprintf("%d read / %d write", s.CacheRead, s.CacheWrite)))
	}
	if s.Cwd != "" {
		out += row("Cwd", styleValue.Render(s.Cwd))
	}
	if age, ok := s.Age(time.Now()); ok {
		out += row("Updated", styleHint.Render(age.Truncate(time.Second).String()+" ago"))
	}
	if s.Text != "" {
		out += "\n" + lipgloss.NewStyle().Padding(0, 2).Render(styleCommand.Render(s.Text)) + "\n"
	}
	return out
}

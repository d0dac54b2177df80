package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/llmbar/internal/config"
	"github.com/watchfire-io/llmbar/internal/daemon/notify"
	"github.com/watchfire-io/llmbar/internal/models"
)

var configureCmd = &cobra.Command{
	Use:     "configure",
	Aliases: []string{"config"},
	Short:   "Configure llmbar settings",
	Long: `Configure llmbar settings interactively.

This allows you to modify:
  - Status text format
  - Refresh signal offset
  - Status bar process name

Press Enter to keep the current value for any setting. Environment
overrides are not written to the settings file.`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
}

func runConfigure(cmd *cobra.Command, args []string) error {
	path, err := config.SettingsFile()
	if err != nil {
		return fmt.Errorf("failed to resolve settings path: %w", err)
	}

	// The file as stored, without environment overrides or filled-in paths.
	stored, err := config.LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	changed, err := promptSettings(bufio.NewReader(os.Stdin), os.Stdout, stored)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Println("\nNo changes made.")
		return nil
	}

	if err := config.SaveYAML(path, stored); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Printf("\nSettings saved to %s.\n", styleHint.Render(path))
	return nil
}

// promptSettings asks for each editable setting and updates s in place.
func promptSettings(reader *bufio.Reader, w io.Writer, s *models.Settings) (bool, error) {
	changed := false

	format := orDefault(s.Format, models.DefaultFormat)
	if v := promptString(reader, w, "Status format", format); v != format {
		s.Format = v
		changed = true
	}

	signal := s.Signal
	if signal == 0 {
		signal = models.DefaultSignal
	}
	v := promptString(reader, w, "Signal offset (SIGRTMIN+N)", strconv.Itoa(signal))
	n, err := strconv.Atoi(v)
	if err != nil {
		return false, fmt.Errorf("invalid signal offset: %s", v)
	}
	if _, ok := notify.RealtimeSignal(n); !ok {
		return false, fmt.Errorf("signal offset %d is outside the real-time signal range", n)
	}
	if n != signal {
		s.Signal = n
		changed = true
	}

	process := orDefault(s.UIProcess, models.DefaultUIProcess)
	if v := promptString(reader, w, "Status bar process", process); v != process {
		s.UIProcess = v
		changed = true
	}

	return changed, nil
}

// promptString prompts for a value showing the current one. An empty answer
// keeps current.
func promptString(reader *bufio.Reader, w io.Writer, prompt, current string) string {
	fmt.Fprintf(w, "%s [%s]: ", prompt, current)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(response)
	if response == "" {
		return current
	}
	return response
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

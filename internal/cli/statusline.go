package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/watchfire-io/llmbar/internal/config"
	"github.com/watchfire-io/llmbar/internal/daemon/server"
	"github.com/watchfire-io/llmbar/internal/daemon/socket"
	"github.com/watchfire-io/llmbar/internal/models"
	"github.com/watchfire-io/llmbar/internal/usage"
)

var statuslineCmd = &cobra.Command{
	Use:   "statusline",
	Short: "Claude Code statusLine command (reads JSON from stdin)",
	Long: `Read the JSON document Claude Code pipes to its statusLine command, print
a one-line status for Claude Code, and forward model, cost and token usage
to the status bar.`,
	Args: cobra.NoArgs,
	RunE: runStatusline,
}

func runStatusline(cmd *cobra.Command, args []string) error {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintln(os.Stderr, styleError.Render("statusline expects JSON piped from Claude Code's statusLine hook."))
		fmt.Fprintln(os.Stderr, styleHint.Render("To install the hook, run:"), styleCommand.Render("llmbar install-hooks"))
		return errors.New("no input provided")
	}

	data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), socket.MaxDatagram))
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	p, line := ParseStatusline(data)
	fmt.Fprintln(cmd.OutOrStdout(), line)

	EnrichFromTranscript(p)

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	return deliver(settings, socket.Status(payload))
}

// ParseStatusline decodes the statusLine document and returns the line to
// show in Claude Code. Undecodable input yields an empty payload.
func ParseStatusline(data []byte) (*server.StatusPayload, string) {
	p, err := server.ParseStatus(data)
	if err != nil {
		config.Debugf("[statusline] bad input: %v", err)
		p = &server.StatusPayload{}
	}
	if p.Model == nil {
		p.Model = &server.StatusModel{}
	}

	cost := 0.0
	if p.Cost != nil && p.Cost.TotalCostUSD != nil {
		cost = *p.Cost.TotalCostUSD
	}
	return p, fmt.Sprintf("%s | $%s", p.Model.Name(), models.FormatCost(cost, 2))
}

// EnrichFromTranscript fills token counts from the transcript tail when the
// payload names one. The reported cost wins over the estimate unless it is
// missing or zero.
func EnrichFromTranscript(p *server.StatusPayload) {
	if p.TranscriptPath == "" || !config.FileExists(p.TranscriptPath) {
		return
	}
	m, err := usage.FromTranscript(p.TranscriptPath)
	if err != nil {
		config.Debugf("[statusline] transcript: %v", err)
		return
	}

	est := UsageStatus(m)
	p.ContextWindow = est.ContextWindow
	if p.Cost == nil || p.Cost.TotalCostUSD == nil || *p.Cost.TotalCostUSD == 0 {
		p.Cost = est.Cost
	}
}

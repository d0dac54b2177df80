package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/llmbar/internal/daemon/server"
	"github.com/watchfire-io/llmbar/internal/daemon/socket"
	"github.com/watchfire-io/llmbar/internal/models"
	"github.com/watchfire-io/llmbar/internal/usage"
)

var syncUsageLogPath string

var syncUsageCmd = &cobra.Command{
	Use:   "sync-usage",
	Short: "Update token usage and cost from a transcript",
	Long: `Parse the tail of a Claude Code transcript (JSONL), sum its token usage,
estimate the cost and push the result to the status bar.`,
	Args: cobra.NoArgs,
	RunE: runSyncUsage,
}

func init() {
	syncUsageCmd.Flags().StringVar(&syncUsageLogPath, "log-path", "", "Transcript file to read")
	_ = syncUsageCmd.MarkFlagRequired("log-path")
}

func runSyncUsage(cmd *cobra.Command, args []string) error {
	m, err := usage.FromTranscript(syncUsageLogPath)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(UsageStatus(m))
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	return deliver(settings, socket.Status(payload))
}

// UsageStatus converts transcript usage into a status payload carrying only
// token counts and cost.
func UsageStatus(m models.UsageMetrics) *server.StatusPayload {
	return &server.StatusPayload{
		Cost: &server.StatusCost{TotalCostUSD: &m.EstimatedCost},
		ContextWindow: &server.ContextWindow{CurrentUsage: &server.CurrentUsage{
			InputTokens:              &m.InputTokens,
			OutputTokens:             &m.OutputTokens,
			CacheReadInputTokens:     &m.CacheRead,
			CacheCreationInputTokens: &m.CacheWrite,
		}},
	}
}

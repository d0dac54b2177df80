package usage

import (
	"github.com/watchfire-io/llmbar/internal/models"
)

// Prices in USD per million tokens.
const (
	InputPrice      = 3.0
	OutputPrice     = 15.0
	CacheReadPrice  = 0.30
	CacheWritePrice = 3.75
)

// CalculateCost sums records and estimates their cost.
func CalculateCost(records []TokenUsage) models.UsageMetrics {
	var m models.UsageMetrics
	for _, r := range records {
		m.InputTokens += r.InputTokens
		m.OutputTokens += r.OutputTokens
		m.CacheRead += r.CacheReadInputTokens
		m.CacheWrite += r.CacheCreationInputTokens
	}

	m.EstimatedCost = float64(m.InputTokens)*InputPrice/1e6 +
		float64(m.OutputTokens)*OutputPrice/1e6 +
		float64(m.CacheRead)*CacheReadPrice/1e6 +
		float64(m.CacheWrite)*CacheWritePrice/1e6
	return m
}

// FromTranscript parses the tail of a transcript and prices it.
func FromTranscript(path string) (models.UsageMetrics, error) {
	records, err := ParseTranscriptTail(path, DefaultTailLines)
	if err != nil {
		return models.UsageMetrics{}, err
	}
	return CalculateCost(records), nil
}

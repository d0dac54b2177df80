// Package usage reads token usage from Claude Code transcripts and prices it.
package usage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultTailLines is how many trailing transcript lines ParseTranscriptTail
// looks at by default.
const DefaultTailLines = 100

// MaxLineBytes bounds how much of one transcript line is kept. Longer lines
// are read through and treated as blank.
const MaxLineBytes = 4 * 1024 * 1024

// TokenUsage is one message.usage record.
type TokenUsage struct {
	InputTokens              uint64 `json:"input_tokens"`
	OutputTokens             uint64 `json:"output_tokens"`
	CacheReadInputTokens     uint64 `json:"cache_read_input_tokens"`
	CacheCreationInputTokens uint64 `json:"cache_creation_input_tokens"`
}

type transcriptEntry struct {
	Type    string `json:"type"`
	Message *struct {
		Usage *TokenUsage `json:"usage"`
	} `json:"message"`
}

var patUsage = []byte(`"usage"`)

// ParseTranscriptTail returns the usage records in the last maxLines lines of
// the JSONL transcript at path. Lines that fail to parse are skipped.
func ParseTranscriptTail(path string, maxLines int) ([]TokenUsage, error) {
	if maxLines <= 0 {
		maxLines = DefaultTailLines
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	// Ring of the last maxLines lines.
	ring := make([][]byte, maxLines)
	count := 0

	r := bufio.NewReaderSize(f, 256*1024)
	var cur []byte
	tooLong := false
	for {
		frag, isPrefix, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read transcript %s: %w", path, err)
		}
		if !tooLong {
			if len(cur)+len(frag) > MaxLineBytes {
				tooLong = true
				cur = cur[:0]
			} else {
				cur = append(cur, frag...)
			}
		}
		if isPrefix {
			continue
		}

		slot := ring[count%maxLines]
		ring[count%maxLines] = append(slot[:0], cur...)
		count++
		cur = cur[:0]
		tooLong = false
	}

	n := min(count, maxLines)
	var usages []TokenUsage
	for i := count - n; i < count; i++ {
		line := bytes.TrimSpace(ring[i%maxLines])
		if len(line) == 0 || !bytes.Contains(line, patUsage) {
			continue
		}
		var entry transcriptEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		if entry.Message != nil && entry.Message.Usage != nil {
			usages = append(usages, *entry.Message.Usage)
		}
	}
	return usages, nil
}

package models

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultFormat is the text template used when none is configured.
const DefaultFormat = "{activity} | ${cost:.2}"

// Nerd Font glyphs for activities.
const (
	IconThinking = "\U000f0517"
	IconFile     = "\U000f0214"
	IconPencil   = "\U000f03eb"
	IconTerminal = "\U000f018d"
	IconSearch   = "\U000f0349"
	IconSleep    = "\U000f04b2"
	IconTool     = "\U000f0327"
)

// defaultCostPrecision is used for a bare {cost} placeholder.
const defaultCostPrecision = 4

// maxCostPrecision bounds N in {cost:.N}.
const maxCostPrecision = 6

// ActivityIcon returns the glyph for an activity; unknown tools get IconTool.
func ActivityIcon(activity string) string {
	switch activity {
	case "Thinking", "Thinking...", "Task":
		return IconThinking
	case "Read":
		return IconFile
	case "Edit", "Write":
		return IconPencil
	case "Bash":
		return IconTerminal
	case "Grep", "Glob":
		return IconSearch
	case ActivityIdle:
		return IconSleep
	default:
		return IconTool
	}
}

// Icon returns the glyph for the state's current activity.
func (s *DisplayState) Icon() string {
	return ActivityIcon(s.Activity)
}

// ComputeText renders format, replacing recognized placeholders:
//
//	{model} {activity} {icon} {cost} {cost:.N} (N in 0..6)
//	{tokens} {input_tokens} {output_tokens} {cache_read} {cache_write}
//
// Rendering is a single pass, so substituted values are never rescanned.
// Anything else in braces is copied verbatim.
func (s *DisplayState) ComputeText(format string) string {
	var b strings.Builder
	b.Grow(len(format))

	rest := format
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:open])
		rest = rest[open:]

		end := strings.IndexByte(rest, '}')
		if end < 0 {
			b.WriteString(rest)
			return b.String()
		}
		if v, ok := s.placeholder(rest[1:end]); ok {
			b.WriteString(v)
			rest = rest[end+1:]
			continue
		}
		// Unknown: emit the brace alone so an inner "{...}" still matches.
		b.WriteByte('{')
		rest = rest[1:]
	}
}

func (s *DisplayState) placeholder(name string) (string, bool) {
	switch name {
	case "model":
		return s.Model, true
	case "activity":
		return s.Activity, true
	case "icon":
		return s.Icon(), true
	case "cost":
		return FormatCost(s.Cost, defaultCostPrecision), true
	case "tokens":
		return strconv.FormatUint(s.InputTokens+s.OutputTokens, 10), true
	case "input_tokens":
		return strconv.FormatUint(s.InputTokens, 10), true
	case "output_tokens":
		return strconv.FormatUint(s.OutputTokens, 10), true
	case "cache_read":
		return strconv.FormatUint(s.CacheRead, 10), true
	case "cache_write":
		return strconv.FormatUint(s.CacheWrite, 10), true
	}

	if p, ok := strings.CutPrefix(name, "cost:."); ok && len(p) == 1 {
		n := int(p[0] - '0')
		if n >= 0 && n <= maxCostPrecision {
			return FormatCost(s.Cost, n), true
		}
	}
	return "", false
}

// FormatCost renders cost with a fixed number of decimals.
func FormatCost(cost float64, precision int) string {
	return strconv.FormatFloat(cost, 'f', precision, 64)
}

// ComputeTooltip returns a multi-line summary holding only the fields that
// are set, in the order model, activity, tokens, cache, cost.
func (s *DisplayState) ComputeTooltip() string {
	var lines []string

	if s.Model != "" {
		lines = append(lines, "Model: "+s.Model)
	}
	if s.Activity != "" {
		lines = append(lines, "Activity: "+s.Activity)
	}
	if s.InputTokens > 0 || s.OutputTokens > 0 {
		lines = append(lines, fmt.Sprintf("Tokens: %d in / %d out", s.InputTokens, s.OutputTokens))
	}
	if s.CacheRead > 0 || s.CacheWrite > 0 {
		lines = append(lines, fmt.Sprintf("Cache: %d read / %d write", s.CacheRead, s.CacheWrite))
	}
	if s.Cost > 0 {
		lines = append(lines, "Cost: $"+FormatCost(s.Cost, defaultCostPrecision))
	}

	return strings.Join(lines, "\n")
}

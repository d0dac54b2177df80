// Package aggregator merges per-session state files into one summary.
package aggregator

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/watchfire-io/llmbar/internal/config"
	"github.com/watchfire-io/llmbar/internal/models"
)

// StaleTimeout is the age after which a session is dropped and its file
// deleted.
const StaleTimeout = 300 * time.Second

// Aggregate class/alt values.
const (
	ClassActive = "active"
	ClassIdle   = "idle"
)

// Activity order of the merged text. Other non-idle activities are counted
// under the default tool icon after these.
var activityOrder = []string{"Thinking", "Read", "Edit", "Write", "Bash", "Grep", "Glob", "Task"}

// AggregateState is the merged view of all live sessions.
type AggregateState struct {
	Text      string
	Tooltip   string
	Class     string
	Alt       string
	Sessions  int
	TotalCost float64
	AnyActive bool

	// Live sessions sorted by cwd, then session id.
	Live []models.DisplayState
}

// DefaultAggregate is the aggregate with no live sessions.
func DefaultAggregate() AggregateState {
	return AggregateState{
		Text:  models.ActivityIdle,
		Class: ClassIdle,
		Alt:   ClassIdle,
	}
}

// Collect reads every session file in dir and returns the live ones: those
// with a last activity time set and younger than StaleTimeout. Unreadable
// files are skipped.
func Collect(dir string, now time.Time) []models.DisplayState {
	files, err := config.ListSessionFiles(dir)
	if err != nil {
		return nil
	}

	var live []models.DisplayState
	for _, path := range files {
		s, err := config.ReadState(path, now)
		if err != nil {
			continue
		}
		if !isLive(s, now) {
			continue
		}
		live = append(live, *s)
	}

	sort.Slice(live, func(i, j int) bool {
		if live[i].Cwd != live[j].Cwd {
			return live[i].Cwd < live[j].Cwd
		}
		return live[i].SessionID < live[j].SessionID
	})
	return live
}

func isLive(s *models.DisplayState, now time.Time) bool {
	age, ok := s.Age(now)
	return ok && age < StaleTimeout
}

// Merge builds the aggregate of already-collected live sessions.
func Merge(live []models.DisplayState, home string) AggregateState {
	if len(live) == 0 {
		return DefaultAggregate()
	}

	agg := AggregateState{
		Sessions: len(live),
		Live:     live,
	}

	counts := make(map[string]int)
	other := 0
	for _, s := range live {
		agg.TotalCost += s.Cost
		if s.IsIdle() {
			continue
		}
		agg.AnyActive = true
		if isOrdered(s.Activity) {
			counts[s.Activity]++
		} else {
			other++
		}
	}

	total := "$" + models.FormatCost(agg.TotalCost, 2)
	if agg.AnyActive {
		var parts []string
		for _, a := range activityOrder {
			if n := counts[a]; n > 0 {
				parts = append(parts, fmt.Sprintf("%d %s", n, models.ActivityIcon(a)))
			}
		}
		if other > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", other, models.IconTool))
		}
		agg.Text = strings.Join(parts, " ") + " | " + total
		agg.Class, agg.Alt = ClassActive, ClassActive
	} else {
		agg.Text = models.IconSleep + " Idle | " + total
		agg.Class, agg.Alt = ClassIdle, ClassIdle
	}

	lines := []string{fmt.Sprintf("%d active sessions | %s total", agg.Sessions, total), ""}
	for _, s := range live {
		lines = append(lines, fmt.Sprintf("%s: %s - %s ($%s)",
			ShortenHome(s.Cwd, home), s.Model, s.Activity, models.FormatCost(s.Cost, 2)))
	}
	agg.Tooltip = strings.Join(lines, "\n")

	return agg
}

func isOrdered(activity string) bool {
	for _, a := range activityOrder {
		if a == activity {
			return true
		}
	}
	return false
}

// ShortenHome replaces a leading home directory with "~".
func ShortenHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(path, home+"/"); ok {
		return "~/" + rest
	}
	return path
}

// ToDisplayState converts the aggregate into the document the status bar
// reads.
func (a AggregateState) ToDisplayState() *models.DisplayState {
	s := models.NewDisplayState()
	s.Text = a.Text
	s.Tooltip = a.Tooltip
	s.Class = a.Class
	s.Alt = a.Alt
	s.Cost = a.TotalCost
	return s
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// ActiveCount returns the number of live sessions that are not idle.
func (a AggregateState) ActiveCount() int {
	n := 0
	for _, s := range a.Live {
		if !s.IsIdle() {
			n++
		}
	}
	return n
}

// Summary is a one-line overview of the aggregate.
func (a AggregateState) Summary() string {
	return fmt.Sprintf("%d sessions, %d active | $%s", a.Sessions, a.ActiveCount(), models.FormatCost(a.TotalCost, 2))
}

// SessionLabel is a short label for one live session.
func SessionLabel(s models.DisplayState) string {
	marker := "○"
	if !s.IsIdle() {
		marker = "●"
	}
	name := s.Cwd
	if name == "" {
		name = s.SessionID
	}
	return fmt.Sprintf("%s %s %s: %s ($%s)", marker, s.Icon(), name, s.Activity, models.FormatCost(s.Cost, 2))
}

package aggregator

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/watchfire-io/llmbar/internal/config"
	"github.com/watchfire-io/llmbar/internal/daemon/notify"
	"github.com/watchfire-io/llmbar/internal/daemon/watcher"
)

// Timing of the watch loop.
const (
	// WatchTimeout bounds how long the loop waits for a change before
	// running cleanup on its own.
	WatchTimeout = 60 * time.Second
	// SettleDelay lets a burst of session writes land before recomputing.
	SettleDelay = 50 * time.Millisecond
)

// Options configures an Aggregator.
type Options struct {
	SessionsDir string
	OutputPath  string

	Notifier notify.Notifier
	// OnUpdate, if set, receives every aggregate that was written.
	OnUpdate func(AggregateState)
	Now      func() time.Time
	// Home is substituted with "~" in tooltips; defaults to the user's home.
	Home string
}

// Aggregator merges the session directory into the output file.
type Aggregator struct {
	opts Options
}

// New creates an aggregator.
func New(opts Options) *Aggregator {
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Home == "" {
		opts.Home = homeDir()
	}
	return &Aggregator{opts: opts}
}

// Aggregate computes the current aggregate from disk.
func (a *Aggregator) Aggregate() AggregateState {
	return Merge(Collect(a.opts.SessionsDir, a.opts.Now()), a.opts.Home)
}

// CleanupStale deletes session files older than StaleTimeout and returns how
// many were removed. Files without a last activity time are kept.
func (a *Aggregator) CleanupStale() int {
	files, err := config.ListSessionFiles(a.opts.SessionsDir)
	if err != nil {
		log.Printf("[aggregator] cleanup: %v", err)
		return 0
	}

	now := a.opts.Now()
	removed := 0
	for _, path := range files {
		s, err := config.ReadState(path, now)
		if err != nil {
			continue
		}
		age, ok := s.Age(now)
		if !ok || age <= StaleTimeout {
			continue
		}
		if err := os.Remove(path); err != nil {
			if !os.IsNotExist(err) {
				log.Printf("[aggregator] failed to remove %s: %v", path, err)
			}
			continue
		}
		config.Debugf("[aggregator] removed stale session %s", path)
		removed++
	}
	return removed
}

// Sweep removes stale session files and, when any were removed, rewrites the
// output so the status bar stops showing them.
func (a *Aggregator) Sweep() int {
	n := a.CleanupStale()
	if n > 0 {
		log.Printf("[aggregator] removed %d stale sessions", n)
		a.Update()
	}
	return n
}

// WriteAggregate writes agg to the output file.
func (a *Aggregator) WriteAggregate(agg AggregateState) error {
	return config.WriteStateAtomic(a.opts.OutputPath, agg.ToDisplayState())
}

// Update recomputes, writes and notifies.
func (a *Aggregator) Update() {
	agg := a.Aggregate()
	if err := a.WriteAggregate(agg); err != nil {
		log.Printf("[aggregator] failed to write aggregate: %v", err)
		return
	}
	a.opts.Notifier.Notify()
	if a.opts.OnUpdate != nil {
		a.opts.OnUpdate(agg)
	}
}

// Watch keeps the output file in sync with the session directory until ctx
// is cancelled. It fails only if the directory or watcher cannot be set up.
func (a *Aggregator) Watch(ctx context.Context) error {
	if err := config.EnsureDir(a.opts.SessionsDir); err != nil {
		return fmt.Errorf("failed to create sessions dir: %w", err)
	}

	w, err := watcher.New(a.opts.SessionsDir)
	if err != nil {
		return err
	}
	w.Verbose = config.Debug
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	a.Update()

	timer := time.NewTimer(WatchTimeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-w.Changes():
			if !sleepCtx(ctx, SettleDelay) {
				return nil
			}
			drain(w.Changes())
			a.CleanupStale()
			a.Update()

		case <-timer.C:
			a.Sweep()
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(WatchTimeout)
	}
}

func drain(ch <-chan struct{}) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

package server

import (
	"log"
	"time"

	"github.com/watchfire-io/llmbar/internal/config"
	"github.com/watchfire-io/llmbar/internal/daemon/notify"
	"github.com/watchfire-io/llmbar/internal/daemon/socket"
	"github.com/watchfire-io/llmbar/internal/models"
)

// Timing of the daemon loop.
const (
	// QuietWindow is how long events must pause before a signal fires.
	QuietWindow = 16 * time.Millisecond
	// MaxWindow caps how long a burst can postpone a signal.
	MaxWindow = 50 * time.Millisecond
	// FlushInterval is the minimum spacing of disk writes.
	FlushInterval = 100 * time.Millisecond
	// PollQuantum is the socket read deadline per loop iteration.
	PollQuantum = time.Millisecond
)

// unknownTool names a tool-start event that carried no tool.
const unknownTool = "unknown"

// Options configures a Daemon.
type Options struct {
	SocketPath  string
	StatePath   string
	SessionsDir string
	Format      string

	Notifier notify.Notifier
	Now      func() time.Time
}

// Daemon owns one display state and decides when to repaint the UI and
// when to persist. All methods must be called from a single goroutine.
type Daemon struct {
	opts     Options
	state    *models.DisplayState
	notifier notify.Notifier
	now      func() time.Time

	dirty          bool
	pendingSignal  bool
	lastEventTime  time.Time
	firstEventTime time.Time // zero when no burst is open
	lastDiskWrite  time.Time

	signals int
	flushes int
}

// New creates a daemon whose initial state is loaded from opts.StatePath.
func New(opts Options) *Daemon {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop
	}
	if opts.Format == "" {
		opts.Format = models.DefaultFormat
	}

	return &Daemon{
		opts:     opts,
		state:    config.LoadState(opts.StatePath, opts.Now()),
		notifier: opts.Notifier,
		now:      opts.Now,
	}
}

// State returns a copy of the in-memory state.
func (d *Daemon) State() models.DisplayState {
	return *d.state
}

// Stats returns how many signals and flushes the daemon has performed.
func (d *Daemon) Stats() (signals, flushes int) {
	return d.signals, d.flushes
}

// HandleMessage applies one decoded message. It reports whether the message
// changed the state; dropped messages leave all bookkeeping untouched.
func (d *Daemon) HandleMessage(m socket.Message) bool {
	now := d.now()

	switch m.Kind {
	case socket.KindEvent:
		phase, ok := PhaseForEvent(m.EventType, m.Detail)
		if !ok {
			config.Debugf("[daemon] ignoring event %q", m.EventType)
			return false
		}
		d.state.SetPhase(phase, now)
		d.state.Text = d.state.ComputeText(d.opts.Format)

	case socket.KindStatus:
		p, err := ParseStatus(m.Payload)
		if err != nil {
			config.Debugf("[daemon] dropping status payload: %v", err)
			return false
		}
		p.Apply(d.state)
		d.state.Refresh(d.opts.Format)

	default:
		return false
	}

	d.dirty = true
	d.pendingSignal = true
	d.lastEventTime = now
	if d.firstEventTime.IsZero() {
		d.firstEventTime = now
	}
	return true
}

// PhaseForEvent maps a hook event to a phase transition.
func PhaseForEvent(eventType, detail string) (models.Phase, bool) {
	switch eventType {
	case socket.EventSubmit, socket.EventToolEnd:
		return models.ThinkingPhase(), true
	case socket.EventToolStart:
		if detail == "" {
			detail = unknownTool
		}
		return models.ToolUsePhase(detail), true
	case socket.EventStop:
		return models.IdlePhase(), true
	case socket.EventError:
		return models.ErrorPhase(detail), true
	default:
		return models.Phase{}, false
	}
}

// ShouldSignal reports whether a pending repaint is due: events have been
// quiet for QuietWindow, or the burst has lasted MaxWindow.
func (d *Daemon) ShouldSignal(now time.Time) bool {
	if !d.pendingSignal {
		return false
	}
	return now.Sub(d.lastEventTime) >= QuietWindow ||
		now.Sub(d.firstEventTime) >= MaxWindow
}

// Signal notifies the UI and closes the current burst.
func (d *Daemon) Signal() {
	d.notifier.Notify()
	d.pendingSignal = false
	d.firstEventTime = time.Time{}
	d.signals++
}

// ShouldFlush reports whether the state is dirty and FlushInterval has
// passed since the last write.
func (d *Daemon) ShouldFlush(now time.Time) bool {
	return d.dirty && now.Sub(d.lastDiskWrite) >= FlushInterval
}

// Flush writes the session file and the canonical state file. Write errors
// are logged and the state stays dirty so the next tick retries.
func (d *Daemon) Flush(now time.Time) {
	d.lastDiskWrite = now

	if d.opts.SessionsDir != "" {
		if err := config.WriteSessionState(d.opts.SessionsDir, d.state); err != nil {
			log.Printf("[daemon] failed to write session state: %v", err)
		}
	}
	if err := config.WriteStateAtomic(d.opts.StatePath, d.state); err != nil {
		log.Printf("[daemon] failed to write state: %v", err)
		return
	}
	d.dirty = false
	d.flushes++
}

// Tick services both timers.
func (d *Daemon) Tick() {
	now := d.now()
	if d.ShouldSignal(now) {
		d.Signal()
	}
	if d.ShouldFlush(now) {
		d.Flush(now)
	}
}

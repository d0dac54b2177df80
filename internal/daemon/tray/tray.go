package tray

import (
	"fmt"
	"log"
	"os/exec"
	"sync"

	"github.com/getlantern/systray"

	"github.com/watchfire-io/llmbar/internal/daemon/aggregator"
)

const maxSessionSlots = 10

var (
	ctrl    Controller
	onStart func()
	onExit  func()

	mu      sync.Mutex
	ready   bool
	pending *aggregator.AggregateState

	summaryItem    *systray.MenuItem
	sessionSlots   [maxSessionSlots]*systray.MenuItem
	noSessionsItem *systray.MenuItem
	openStateItem  *systray.MenuItem
	quitItem       *systray.MenuItem
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called when the tray is ready (start the aggregator here).
// onExitFn is called when the tray exits (cleanup here).
func Run(c Controller, onStartFn, onExitFn func()) {
	ctrl = c
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetTemplateIcon(iconData, iconData)
	systray.SetTitle("")
	systray.SetTooltip("llmbar")

	header := systray.AddMenuItem("llmbar", "")
	header.Disable()

	summaryItem = systray.AddMenuItem("Starting...", "")
	summaryItem.Disable()

	systray.AddSeparator()

	// Pre-allocate session slots (hidden by default)
	for i := 0; i < maxSessionSlots; i++ {
		sessionSlots[i] = systray.AddMenuItem("", "")
		sessionSlots[i].Disable()
		sessionSlots[i].Hide()
	}

	noSessionsItem = systray.AddMenuItem("No active sessions", "")
	noSessionsItem.Disable()

	systray.AddSeparator()

	openStateItem = systray.AddMenuItem("Open State File", "Open the aggregate state file")
	quitItem = systray.AddMenuItem("Quit", "Stop the llmbar aggregator")

	mu.Lock()
	ready = true
	last := pending
	pending = nil
	mu.Unlock()
	if last != nil {
		apply(*last)
	}

	if onStart != nil {
		onStart()
	}

	go handleClicks()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-openStateItem.ClickedCh:
			if ctrl == nil {
				continue
			}
			if err := exec.Command("xdg-open", ctrl.StatePath()).Start(); err != nil {
				log.Printf("[tray] failed to open state file: %v", err)
			}

		case <-quitItem.ClickedCh:
			if ctrl != nil {
				ctrl.RequestShutdown()
			}
			return
		}
	}
}

// Update shows agg in the tray. Calls made before the tray is ready are
// kept and applied once it is.
func Update(agg aggregator.AggregateState) {
	mu.Lock()
	if !ready {
		pending = &agg
		mu.Unlock()
		return
	}
	mu.Unlock()
	apply(agg)
}

func apply(agg aggregator.AggregateState) {
	systray.SetTitle(agg.Text)
	systray.SetTooltip(Tooltip(agg))
	summaryItem.SetTitle(agg.Summary())

	for i := 0; i < maxSessionSlots; i++ {
		sessionSlots[i].Hide()
	}

	if len(agg.Live) == 0 {
		noSessionsItem.Show()
		return
	}
	noSessionsItem.Hide()
	for i, s := range agg.Live {
		if i >= maxSessionSlots {
			break
		}
		sessionSlots[i].SetTitle(aggregator.SessionLabel(s))
		sessionSlots[i].Show()
	}
}

// Tooltip is the hover text for agg.
func Tooltip(agg aggregator.AggregateState) string {
	if agg.Tooltip == "" {
		return "llmbar: no active sessions"
	}
	return agg.Tooltip
}

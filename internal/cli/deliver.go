package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/watchfire-io/llmbar/internal/config"
	"github.com/watchfire-io/llmbar/internal/daemon/server"
	"github.com/watchfire-io/llmbar/internal/daemon/socket"
	"github.com/watchfire-io/llmbar/internal/models"
)

// deliver sends msgs to the daemon. When no daemon is listening the
// remaining messages are applied to the state files directly.
func deliver(s *models.Settings, msgs ...socket.Message) error {
	for i, m := range msgs {
		sent, err := socket.Send(s.SocketPath, m)
		if err != nil {
			config.Debugf("[cli] send failed, applying directly: %v", err)
		}
		if err != nil || !sent {
			return applyDirect(s, msgs[i:], time.Now())
		}
	}
	return nil
}

// applyDirect performs the daemon's state update in-process: read the state
// file, apply msgs, write the session and state files, then notify.
func applyDirect(s *models.Settings, msgs []socket.Message, now time.Time) error {
	state := config.LoadState(s.StatePath, now)
	applyMessages(state, msgs, now)
	state.Refresh(s.Format)

	if err := config.WriteSessionState(s.SessionsDir, state); err != nil {
		log.Printf("[cli] failed to write session state: %v", err)
	}
	if err := config.WriteStateAtomic(s.StatePath, state); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	newNotifier().Notify()
	return nil
}

func applyMessages(state *models.DisplayState, msgs []socket.Message, now time.Time) {
	for _, m := range msgs {
		switch m.Kind {
		case socket.KindEvent:
			if phase, ok := server.PhaseForEvent(m.EventType, m.Detail); ok {
				state.SetPhase(phase, now)
			}
		case socket.KindStatus:
			if p, err := server.ParseStatus(m.Payload); err == nil {
				p.Apply(state)
			}
		}
	}
}

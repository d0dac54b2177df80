// Package server implements the event-to-display daemon loop.
package server

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/watchfire-io/llmbar/internal/config"
	"github.com/watchfire-io/llmbar/internal/daemon/socket"
)

// Run binds the socket and processes messages until ctx is cancelled. On
// cancellation it flushes and signals any outstanding change, then removes
// the socket. Only a bind failure is returned.
func (d *Daemon) Run(ctx context.Context) error {
	conn, err := socket.Listen(d.opts.SocketPath)
	if err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}
	defer func() {
		conn.Close()
		_ = os.Remove(d.opts.SocketPath)
	}()

	log.Printf("[daemon] listening on %s", d.opts.SocketPath)

	buf := make([]byte, socket.MaxDatagram)
	for {
		select {
		case <-ctx.Done():
			d.shutdown()
			return nil
		default:
		}

		_ = conn.SetReadDeadline(time.Now().Add(PollQuantum))
		n, _, err := conn.ReadFromUnix(buf)
		switch {
		case err == nil:
			if m, ok := socket.Decode(buf[:n]); ok {
				d.HandleMessage(m)
			} else {
				config.Debugf("[daemon] dropping %d-byte datagram", n)
			}
		case socket.IsTimeout(err):
			// No message this quantum.
		default:
			log.Printf("[daemon] read error: %v", err)
			time.Sleep(PollQuantum)
		}

		d.Tick()
	}
}

func (d *Daemon) shutdown() {
	now := d.now()
	if d.dirty {
		d.Flush(now)
	}
	if d.pendingSignal {
		d.Signal()
	}
	log.Printf("[daemon] stopped")
}

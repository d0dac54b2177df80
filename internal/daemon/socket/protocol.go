// Package socket implements the datagram protocol between hook clients and
// the daemon.
package socket

import (
	"strings"
)

// MaxDatagram bounds a single message.
const MaxDatagram = 64 * 1024

// Message prefixes.
const (
	eventPrefix  = "EVENT:"
	statusPrefix = "STATUS:"
)

// Event types understood by the daemon.
const (
	EventSubmit    = "submit"
	EventToolStart = "tool-start"
	EventToolEnd   = "tool-end"
	EventStop      = "stop"
	EventError     = "error"
)

// Kind distinguishes event messages from status payloads.
type Kind int

const (
	KindEvent Kind = iota + 1
	KindStatus
)

// Message is one decoded datagram.
type Message struct {
	Kind Kind

	// Event messages.
	EventType string
	Detail    string // tool name, or error message; may contain ':'

	// Status messages: raw statusline JSON.
	Payload []byte
}

// Event returns an event message.
func Event(eventType, detail string) Message {
	return Message{Kind: KindEvent, EventType: eventType, Detail: detail}
}

// Status returns a status message carrying payload.
func Status(payload []byte) Message {
	return Message{Kind: KindStatus, Payload: payload}
}

// Encode renders m in wire form.
func (m Message) Encode() []byte {
	switch m.Kind {
	case KindEvent:
		s := eventPrefix + m.EventType
		if m.Detail != "" {
			s += ":" + m.Detail
		}
		return []byte(s)
	case KindStatus:
		return append([]byte(statusPrefix), m.Payload...)
	default:
		return nil
	}
}

// Decode parses a datagram. It reports false for anything that is not an
// EVENT: or STATUS: message.
func Decode(data []byte) (Message, bool) {
	s := string(data)

	if rest, ok := strings.CutPrefix(s, eventPrefix); ok {
		eventType, detail, _ := strings.Cut(rest, ":")
		return Event(eventType, detail), true
	}
	if rest, ok := strings.CutPrefix(s, statusPrefix); ok {
		return Status([]byte(rest)), true
	}
	return Message{}, false
}

package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/watchfire-io/llmbar/internal/daemon/socket"
)

func TestParseHookPayload(t *testing.T) {
	t.Run("blank", func(t *testing.T) {
		p, err := ParseHookPayload([]byte("  \n"))
		if err != nil || p == nil || p.SessionID != "" {
			t.Errorf("ParseHookPayload(blank) = %+v, %v", p, err)
		}
	})

	t.Run("fields", func(t *testing.T) {
		p, err := ParseHookPayload([]byte(`{"session_id":"s1","cwd":"/w","tool_name":"Bash","hook_event_name":"PreToolUse","extra":1}`))
		if err != nil {
			t.Fatalf("ParseHookPayload() error = %v", err)
		}
		if p.SessionID != "s1" || p.Cwd != "/w" || p.ToolName != "Bash" || p.HookEventName != "PreToolUse" {
			t.Errorf("payload = %+v", p)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := ParseHookPayload([]byte("{nope")); err == nil {
			t.Error("ParseHookPayload() error = nil, want error")
		}
	})
}

func TestReadHookPayloadStdin(t *testing.T) {
	p, err := readHookPayload("-", strings.NewReader(`{"tool_name":"Read"}`))
	if err != nil {
		t.Fatalf("readHookPayload() error = %v", err)
	}
	if p.ToolName != "Read" {
		t.Errorf("ToolName = %q, want Read", p.ToolName)
	}

	p, err = readHookPayload("", strings.NewReader(`{"tool_name":"Read"}`))
	if err != nil || p.ToolName != "" {
		t.Errorf("readHookPayload(\"\") read stdin: %+v, %v", p, err)
	}
}

func TestEventMessages(t *testing.T) {
	tests := []struct {
		name       string
		typ        string
		tool       string
		message    string
		sessionID  string
		payload    HookPayload
		wantMeta   map[string]string
		wantDetail string
	}{
		{
			name:       "tool from payload",
			typ:        socket.EventToolStart,
			payload:    HookPayload{ToolName: "Grep", SessionID: "abc", Cwd: "/src"},
			wantMeta:   map[string]string{"session_id": "abc", "cwd": "/src"},
			wantDetail: "Grep",
		},
		{
			name:       "flag wins over payload",
			typ:        socket.EventToolStart,
			tool:       "Edit",
			sessionID:  "flag",
			payload:    HookPayload{ToolName: "Grep", SessionID: "abc"},
			wantMeta:   map[string]string{"session_id": "flag"},
			wantDetail: "Edit",
		},
		{
			name: "submit without session",
			typ:  socket.EventSubmit,
		},
		{
			name:       "error message from payload",
			typ:        socket.EventError,
			payload:    HookPayload{Error: "rate limited"},
			wantDetail: "rate limited",
		},
		{
			name:       "error without message",
			typ:        socket.EventError,
			wantDetail: "unknown error",
		},
		{
			name:     "stop ignores tool",
			typ:      socket.EventStop,
			tool:     "Bash",
			payload:  HookPayload{Cwd: "/w"},
			wantMeta: map[string]string{"cwd": "/w"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.payload
			msgs := EventMessages(tt.typ, tt.tool, tt.message, tt.sessionID, &p)

			wantLen := 1
			if tt.wantMeta != nil {
				wantLen = 2
			}
			if len(msgs) != wantLen {
				t.Fatalf("got %d messages, want %d", len(msgs), wantLen)
			}

			if tt.wantMeta != nil {
				if msgs[0].Kind != socket.KindStatus {
					t.Fatalf("first message kind = %v, want status", msgs[0].Kind)
				}
				var meta map[string]string
				if err := json.Unmarshal(msgs[0].Payload, &meta); err != nil {
					t.Fatalf("meta payload: %v", err)
				}
				if len(meta) != len(tt.wantMeta) {
					t.Errorf("meta = %v, want %v", meta, tt.wantMeta)
				}
				for k, v := range tt.wantMeta {
					if meta[k] != v {
						t.Errorf("meta[%q] = %q, want %q", k, meta[k], v)
					}
				}
			}

			ev := msgs[len(msgs)-1]
			if ev.Kind != socket.KindEvent || ev.EventType != tt.typ {
				t.Errorf("event = %+v, want type %q", ev, tt.typ)
			}
			if ev.Detail != tt.wantDetail {
				t.Errorf("Detail = %q, want %q", ev.Detail, tt.wantDetail)
			}
		})
	}
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/llmbar/internal/daemon/socket"
)

var (
	eventType      string
	eventTool      string
	eventMessage   string
	eventPayload   string
	eventSessionID string
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Report an agent hook event",
	Long: `Report an agent hook event to the daemon, or update the state file
directly when no daemon is running.

Event types: submit, tool-start, tool-end, stop, error.

--payload takes the Claude Code hook JSON; "-" reads it from stdin. The
payload supplies tool_name, session_id, cwd and error when the flags don't.`,
	Args: cobra.NoArgs,
	RunE: runEvent,
}

func init() {
	eventCmd.Flags().StringVar(&eventType, "type", "", "Event type (required)")
	eventCmd.Flags().StringVar(&eventTool, "tool", "", "Tool name for tool-start")
	eventCmd.Flags().StringVar(&eventMessage, "message", "", "Error message for error events")
	eventCmd.Flags().StringVar(&eventPayload, "payload", "", `Hook payload JSON, or "-" for stdin`)
	eventCmd.Flags().StringVar(&eventSessionID, "session-id", "", "Session id")
	_ = eventCmd.MarkFlagRequired("type")
}

// HookPayload is the JSON Claude Code passes to hook commands.
type HookPayload struct {
	SessionID      string `json:"session_id"`
	Cwd            string `json:"cwd"`
	HookEventName  string `json:"hook_event_name"`
	ToolName       string `json:"tool_name"`
	Prompt         string `json:"prompt"`
	Error          string `json:"error"`
	TranscriptPath string `json:"transcript_path"`
}

// ParseHookPayload decodes a hook payload. Blank input yields an empty payload.
func ParseHookPayload(data []byte) (*HookPayload, error) {
	var p HookPayload
	if strings.TrimSpace(string(data)) == "" {
		return &p, nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse hook payload: %w", err)
	}
	return &p, nil
}

func runEvent(cmd *cobra.Command, args []string) error {
	switch eventType {
	case socket.EventSubmit, socket.EventToolStart, socket.EventToolEnd, socket.EventStop, socket.EventError:
	default:
		return fmt.Errorf("unknown event type %q", eventType)
	}

	payload, err := readHookPayload(eventPayload, cmd.InOrStdin())
	if err != nil {
		// A broken payload must not break the agent; report the event anyway.
		fmt.Fprintln(os.Stderr, styleWarning.Render("warning:"), err)
		payload = &HookPayload{}
	}

	msgs := EventMessages(eventType, eventTool, eventMessage, eventSessionID, payload)
	return deliver(settings, msgs...)
}

func readHookPayload(flag string, stdin io.Reader) (*HookPayload, error) {
	switch flag {
	case "":
		return &HookPayload{}, nil
	case "-":
		data, err := io.ReadAll(io.LimitReader(stdin, socket.MaxDatagram))
		if err != nil {
			return nil, fmt.Errorf("failed to read payload: %w", err)
		}
		return ParseHookPayload(data)
	default:
		return ParseHookPayload([]byte(flag))
	}
}

// EventMessages builds the wire messages for one hook event. Session
// metadata travels as a status message ahead of the event.
func EventMessages(typ, tool, message, sessionID string, p *HookPayload) []socket.Message {
	if tool == "" {
		tool = p.ToolName
	}
	if message == "" {
		message = p.Error
	}
	if sessionID == "" {
		sessionID = p.SessionID
	}

	var msgs []socket.Message
	if meta := sessionMeta(sessionID, p.Cwd); meta != nil {
		msgs = append(msgs, socket.Status(meta))
	}

	detail := ""
	switch typ {
	case socket.EventToolStart:
		detail = tool
	case socket.EventError:
		detail = message
		if detail == "" {
			detail = "unknown error"
		}
	}
	return append(msgs, socket.Event(typ, detail))
}

func sessionMeta(sessionID, cwd string) []byte {
	meta := map[string]string{}
	if sessionID != "" {
		meta["session_id"] = sessionID
	}
	if cwd != "" {
		meta["cwd"] = cwd
	}
	if len(meta) == 0 {
		return nil
	}
	data, _ := json.Marshal(meta)
	return data
}

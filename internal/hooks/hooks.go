// Package hooks installs and removes the llmbar hooks in Claude Code's
// settings.json.
package hooks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Hook events llmbar registers, with the event type each one reports.
var hookEvents = []struct {
	Name      string
	Matcher   string
	EventType string
}{
	{"UserPromptSubmit", "", "submit"},
	{"PreToolUse", "*", "tool-start"},
	{"PostToolUse", "*", "tool-end"},
	{"Stop", "", "stop"},
}

// SettingsPath returns ~/.claude/settings.json.
func SettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claude", "settings.json"), nil
}

// Result describes what Install or Uninstall did (or would do).
type Result struct {
	Path              string
	Document          []byte
	RemovedHooks      bool
	RemovedStatusLine bool
	Changed           bool
}

// Install adds llmbar hooks and the statusLine command to the settings file
// at path, replacing any llmbar entries already there. With dryRun the file
// is left untouched and the resulting document is returned.
func Install(path, bin string, dryRun bool) (*Result, error) {
	settings, err := load(path)
	if err != nil {
		return nil, err
	}

	hooks, _ := settings["hooks"].(map[string]any)
	if hooks == nil {
		hooks = map[string]any{}
	}
	for _, ev := range hookEvents {
		existing, _ := hooks[ev.Name].([]any)
		existing = withoutOurs(existing)
		existing = append(existing, map[string]any{
			"matcher": ev.Matcher,
			"hooks": []any{map[string]any{
				"type":    "command",
				"command": fmt.Sprintf("%s event --type %s --payload -", bin, ev.EventType),
			}},
		})
		hooks[ev.Name] = existing
	}
	settings["hooks"] = hooks

	settings["statusLine"] = map[string]any{
		"type":    "command",
		"command": bin + " statusline",
		"padding": 0,
	}

	return finish(path, settings, &Result{Changed: true}, dryRun)
}

// Uninstall removes llmbar hooks and statusLine from the settings file at
// path, dropping containers left empty. A missing file is not an error.
func Uninstall(path string, dryRun bool) (*Result, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Result{Path: path}, nil
	}

	settings, err := load(path)
	if err != nil {
		return nil, err
	}
	res := &Result{}

	if hooks, ok := settings["hooks"].(map[string]any); ok {
		for name, v := range hooks {
			arr, ok := v.([]any)
			if !ok {
				continue
			}
			kept := withoutOurs(arr)
			if len(kept) < len(arr) {
				res.RemovedHooks = true
			}
			if len(kept) == 0 {
				delete(hooks, name)
			} else {
				hooks[name] = kept
			}
		}
		if len(hooks) == 0 {
			delete(settings, "hooks")
		}
	}

	if sl, ok := settings["statusLine"].(map[string]any); ok {
		if cmd, _ := sl["command"].(string); isOurs(cmd) {
			delete(settings, "statusLine")
			res.RemovedStatusLine = true
		}
	}

	res.Changed = res.RemovedHooks || res.RemovedStatusLine
	if !res.Changed {
		res.Path = path
		return res, nil
	}
	return finish(path, settings, res, dryRun)
}

func load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if settings == nil {
		return nil, fmt.Errorf("settings in %s is not an object", path)
	}
	return settings, nil
}

func finish(path string, settings map[string]any, res *Result, dryRun bool) (*Result, error) {
	out, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	res.Path = path
	res.Document = out

	if dryRun {
		return res, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, append(out, '\n'), 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return res, nil
}

// withoutOurs drops hook groups containing an llmbar command.
func withoutOurs(groups []any) []any {
	kept := make([]any, 0, len(groups))
	for _, g := range groups {
		if !groupIsOurs(g) {
			kept = append(kept, g)
		}
	}
	return kept
}

func groupIsOurs(g any) bool {
	group, ok := g.(map[string]any)
	if !ok {
		return false
	}
	hooks, _ := group["hooks"].([]any)
	for _, h := range hooks {
		hook, ok := h.(map[string]any)
		if !ok {
			continue
		}
		if cmd, _ := hook["command"].(string); isOurs(cmd) {
			return true
		}
	}
	return false
}

func isOurs(cmd string) bool {
	return strings.Contains(cmd, "llmbar event") || strings.Contains(cmd, "llmbar statusline")
}

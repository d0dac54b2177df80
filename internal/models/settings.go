package models

// Settings represents user configuration.
// This corresponds to $XDG_CONFIG_HOME/llmbar/settings.yaml. Empty fields
// fall back to the built-in defaults.
type Settings struct {
	Version       int    `yaml:"version"`
	StatePath     string `yaml:"state_path,omitempty"`
	SessionsDir   string `yaml:"sessions_dir,omitempty"`
	SocketPath    string `yaml:"socket_path,omitempty"`
	TranscriptDir string `yaml:"transcript_dir,omitempty"`
	Format        string `yaml:"format,omitempty"`
	Signal        int    `yaml:"signal"`     // offset added to SIGRTMIN
	UIProcess     string `yaml:"ui_process"` // exact executable name to signal
}

// Default values for Settings.
const (
	DefaultSignal    = 8
	DefaultUIProcess = "waybar"
)

// NewSettings creates settings with default values. Paths are resolved by
// the config package since they depend on the environment.
func NewSettings() *Settings {
	return &Settings{
		Version:   1,
		Format:    DefaultFormat,
		Signal:    DefaultSignal,
		UIProcess: DefaultUIProcess,
	}
}

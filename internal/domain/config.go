package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string      `toml:"-"`
	Tasks    TasksConfig   `toml:"tasks"`
	Log      LogConfig     `toml:"log"`
	Shell    ShellConfig   `toml:"shell"`
	Display  DisplayConfig `toml:"display"`
}

// TasksConfig holds settings for task storage from [tasks] section.
type TasksConfig struct {
	File      string        `toml:"file"`       // Path to the tasks file
	OnCorrupt CorruptPolicy `toml:"on_corrupt"` // What to do with an unreadable tasks file
}

// LogConfig holds settings for logging from [log] section.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	File  string `toml:"file"`  // Log file path ("" = default location, "-" = disabled)
}

// ShellConfig holds settings for the interactive shell from [shell] section.
type ShellConfig struct {
	Prompt string `toml:"prompt"`
}

// DisplayConfig holds settings for list rendering from [display] section.
type DisplayConfig struct {
	Emoji bool `toml:"emoji"` // Show status emoji in lists
}

// CorruptPolicy controls how an unparseable tasks file is handled on load.
type CorruptPolicy string

const (
	CorruptEmpty  CorruptPolicy = "empty"  // Start with an empty list and leave the file alone
	CorruptBackup CorruptPolicy = "backup" // Move the file aside, then start empty
	CorruptFail   CorruptPolicy = "fail"   // Refuse to start
)

// IsValid returns true if the policy is a known value.
func (p CorruptPolicy) IsValid() bool {
	switch p {
	case CorruptEmpty, CorruptBackup, CorruptFail:
		return true
	default:
		return false
	}
}

// ParseCorruptPolicy converts a string into a CorruptPolicy.
func ParseCorruptPolicy(s string) (CorruptPolicy, error) {
	p := CorruptPolicy(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q (expected empty, backup or fail)", ErrInvalidCorruptOpt, s)
	}
	return p, nil
}

// Default configuration values.
const (
	DefaultTasksFile     = "tasks.json"
	DefaultLogLevel      = "info"
	DefaultPrompt        = "(task) "
	DefaultCorruptPolicy = CorruptBackup
	LogDisabled          = "-"
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Tasks: TasksConfig{
			File:      DefaultTasksFile,
			OnCorrupt: DefaultCorruptPolicy,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Shell: ShellConfig{
			Prompt: DefaultPrompt,
		},
		Display: DisplayConfig{
			Emoji: true,
		},
	}
}

// RenderConfigTemplate renders the commented config template with the given values.
func RenderConfigTemplate(cfg *Config) string {
	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		// Should never happen with valid data
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}

	return buf.String()
}

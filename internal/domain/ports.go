package domain

import (
	"io"
	"time"
)

// TaskRepository manages task persistence.
// Implementations keep tasks in insertion order and guarantee unique IDs.
type TaskRepository interface {
	// Get retrieves a task by ID. Returns nil if not found.
	Get(id int) (*Task, error)

	// List retrieves tasks matching the filter, in store order.
	List(filter TaskFilter) ([]*Task, error)

	// Save creates or updates a task and persists the whole collection.
	Save(task *Task) error

	// Delete removes a task by ID and persists the whole collection.
	Delete(id int) error

	// NextID returns the next available task ID.
	NextID() (int, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Logger records operational events.
// A taskID of 0 means the entry is not tied to a task.
type Logger interface {
	Debug(taskID int, category, msg string)
	Info(taskID int, category, msg string)
	Warn(taskID int, category, msg string)
	Error(taskID int, category, msg string)
}

// NopLogger discards all log entries.
type NopLogger struct{}

func (NopLogger) Debug(int, string, string) {}
func (NopLogger) Info(int, string, string)  {}
func (NopLogger) Warn(int, string, string)  {}
func (NopLogger) Error(int, string, string) {}

// ConfigLoader loads configuration.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults, global, local, explicit file).
	Load() (*Config, error)
}

// ConfigInfo describes a configuration file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager inspects and creates configuration files.
type ConfigManager interface {
	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// GetLocalConfigInfo returns information about the local config file.
	GetLocalConfigInfo() ConfigInfo

	// InitGlobalConfig writes the config template to the global location.
	InitGlobalConfig() error

	// InitLocalConfig writes the config template to the local location.
	InitLocalConfig() error
}

// Exporter writes tasks to w in a specific format.
type Exporter interface {
	Export(w io.Writer, tasks []*Task, generatedAt time.Time) error
}

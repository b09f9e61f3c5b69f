// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/task-cli/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// MockTaskRepository is a test double for domain.TaskRepository.
// Tasks are kept in insertion order like the real store.
// Fields are ordered to minimize memory padding.
type MockTaskRepository struct {
	Tasks     []*domain.Task
	SaveErr   error
	GetErr    error
	ListErr   error
	DeleteErr error
	NextIDErr error
	SaveCalls int
}

// NewMockTaskRepository creates a new, empty MockTaskRepository.
func NewMockTaskRepository(tasks ...*domain.Task) *MockTaskRepository {
	return &MockTaskRepository{Tasks: tasks}
}

// Get retrieves a copy of a task by ID.
func (m *MockTaskRepository) Get(id int) (*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if i := m.indexOf(id); i >= 0 {
		return m.Tasks[i].Clone(), nil
	}
	return nil, nil
}

// List returns copies of tasks matching the filter, in insertion order.
func (m *MockTaskRepository) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	tasks := make([]*domain.Task, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		if filter.Matches(t) {
			tasks = append(tasks, t.Clone())
		}
	}
	return tasks, nil
}

// Save replaces or appends a task.
func (m *MockTaskRepository) Save(task *domain.Task) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if i := m.indexOf(task.ID); i >= 0 {
		m.Tasks[i] = task.Clone()
		return nil
	}
	m.Tasks = append(m.Tasks, task.Clone())
	return nil
}

// Delete removes a task by ID.
func (m *MockTaskRepository) Delete(id int) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if i := m.indexOf(id); i >= 0 {
		m.Tasks = slices.Delete(m.Tasks, i, i+1)
	}
	return nil
}

// NextID returns one more than the largest stored ID.
func (m *MockTaskRepository) NextID() (int, error) {
	if m.NextIDErr != nil {
		return 0, m.NextIDErr
	}
	return domain.NextID(m.Tasks), nil
}

// Find returns the stored task with the given ID without copying.
func (m *MockTaskRepository) Find(id int) *domain.Task {
	if i := m.indexOf(id); i >= 0 {
		return m.Tasks[i]
	}
	return nil
}

func (m *MockTaskRepository) indexOf(id int) int {
	return slices.IndexFunc(m.Tasks, func(t *domain.Task) bool {
		return t.ID == id
	})
}

// MockLogger records log entries in memory.
type MockLogger struct {
	Entries []string
	mu      sync.Mutex
}

// NewMockLogger creates a new MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) record(level string, taskID int, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, fmt.Sprintf("[%s] [%d] [%s] %s", level, taskID, category, msg))
}

// Debug records a debug entry.
func (m *MockLogger) Debug(taskID int, category, msg string) {
	m.record("DEBUG", taskID, category, msg)
}

// Info records an info entry.
func (m *MockLogger) Info(taskID int, category, msg string) {
	m.record("INFO", taskID, category, msg)
}

// Warn records a warning entry.
func (m *MockLogger) Warn(taskID int, category, msg string) {
	m.record("WARN", taskID, category, msg)
}

// Error records an error entry.
func (m *MockLogger) Error(taskID int, category, msg string) {
	m.record("ERROR", taskID, category, msg)
}

// Contains reports whether an entry with the given level and category was recorded.
func (m *MockLogger) Contains(level, category string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Entries {
		if strings.HasPrefix(e, "["+level+"]") && strings.Contains(e, "["+category+"]") {
			return true
		}
	}
	return false
}

// MockExporter is a test double for domain.Exporter.
type MockExporter struct {
	Err   error
	Tasks []*domain.Task
	Calls int
}

// Export records the tasks and writes their IDs.
func (m *MockExporter) Export(w io.Writer, tasks []*domain.Task, _ time.Time) error {
	m.Calls++
	m.Tasks = tasks
	if m.Err != nil {
		return m.Err
	}
	for _, t := range tasks {
		if _, err := fmt.Fprintf(w, "%d\n", t.ID); err != nil {
			return err
		}
	}
	return nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// NewMockConfigLoader creates a loader that returns the default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{Config: domain.NewDefaultConfig()}
}

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitGlobalErr    error
	InitLocalErr     error
	GlobalConfigInfo domain.ConfigInfo
	LocalConfigInfo  domain.ConfigInfo
	InitGlobalCalled bool
	InitLocalCalled  bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{}
}

// GetGlobalConfigInfo returns the configured global info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// GetLocalConfigInfo returns the configured local info.
func (m *MockConfigManager) GetLocalConfigInfo() domain.ConfigInfo {
	return m.LocalConfigInfo
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig() error {
	m.InitGlobalCalled = true
	return m.InitGlobalErr
}

// InitLocalConfig records the call.
func (m *MockConfigManager) InitLocalConfig() error {
	m.InitLocalCalled = true
	return m.InitLocalErr
}

// Ensure mocks implement their interfaces.
var (
	_ domain.Clock          = (*MockClock)(nil)
	_ domain.TaskRepository = (*MockTaskRepository)(nil)
	_ domain.Logger         = (*MockLogger)(nil)
	_ domain.Exporter       = (*MockExporter)(nil)
	_ domain.ConfigLoader   = (*MockConfigLoader)(nil)
	_ domain.ConfigManager  = (*MockConfigManager)(nil)
)

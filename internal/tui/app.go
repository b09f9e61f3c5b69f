package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/task-cli/internal/app"
	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/usecase"
)

// Model is the main bubbletea model for the TUI.
// Fields are ordered to minimize memory padding.
type Model struct {
	// Pointers (8 bytes each)
	container *app.Container
	filter    *domain.Status // nil shows every task
	err       error

	// Slices (24 bytes each)
	tasks []*domain.Task

	// Structs
	keys   KeyMap
	styles Styles
	help   help.Model
	input  textinput.Model

	// Strings
	notice string

	// Ints
	mode          Mode
	cursor        int
	total         int
	width         int
	height        int
	confirmTaskID int
}

// New creates a new TUI model backed by the container's use cases.
func New(c *app.Container) *Model {
	input := textinput.New()
	input.Placeholder = "Task description"
	input.CharLimit = 500

	return &Model{
		container: c,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		help:      help.New(),
		input:     input,
		mode:      ModeNormal,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.loadTasks()
}

// SelectedTask returns the task under the cursor, or nil when the list is empty.
func (m *Model) SelectedTask() *domain.Task {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return nil
	}
	return m.tasks[m.cursor]
}

// Mode returns the current UI mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// loadTasks returns a command that loads tasks matching the current filter.
func (m *Model) loadTasks() tea.Cmd {
	filter := m.filter
	return func() tea.Msg {
		out, err := m.container.ListTasksUseCase().Execute(
			context.Background(),
			usecase.ListTasksInput{Status: filter},
		)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTasksLoaded{Tasks: out.Tasks, Total: out.Total}
	}
}

// addTask returns a command that creates a task.
func (m *Model) addTask(description string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.AddTaskUseCase().Execute(
			context.Background(),
			usecase.AddTaskInput{Description: description},
		)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskChanged{Notice: fmt.Sprintf("Task added successfully (ID: %d)", out.Task.ID)}
	}
}

// updateTask returns a command that replaces a task description.
func (m *Model) updateTask(taskID int, description string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.container.UpdateTaskUseCase().Execute(
			context.Background(),
			usecase.UpdateTaskInput{TaskID: taskID, Description: description},
		)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskChanged{Notice: fmt.Sprintf("Task %d updated successfully", taskID)}
	}
}

// setStatus returns a command that changes a task status.
func (m *Model) setStatus(taskID int, status domain.Status) tea.Cmd {
	return func() tea.Msg {
		_, err := m.container.SetStatusUseCase().Execute(
			context.Background(),
			usecase.SetStatusInput{TaskID: taskID, Status: status},
		)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskChanged{Notice: fmt.Sprintf("Task %d marked as %s", taskID, status)}
	}
}

// deleteTask returns a command that removes a task.
func (m *Model) deleteTask(taskID int) tea.Cmd {
	return func() tea.Msg {
		_, err := m.container.DeleteTaskUseCase().Execute(
			context.Background(),
			usecase.DeleteTaskInput{TaskID: taskID},
		)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskChanged{Notice: fmt.Sprintf("Task %d deleted successfully", taskID)}
	}
}

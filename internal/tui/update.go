package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/task-cli/internal/domain"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-20, 20)
		return m, nil

	case MsgTasksLoaded:
		m.tasks = msg.Tasks
		m.total = msg.Total
		m.clampCursor()
		return m, nil

	case MsgTaskChanged:
		m.notice = msg.Notice
		m.err = nil
		m.mode = ModeNormal
		m.confirmTaskID = 0
		return m, m.loadTasks()

	case MsgError:
		m.err = msg.Err
		m.notice = ""
		m.mode = ModeNormal
		m.confirmTaskID = 0
		return m, nil
	}

	if m.mode.IsInputMode() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeAdd, ModeEdit:
		return m.handleInputMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeNormal:
		return m.handleNormalMode(msg)
	}
	return m, nil
}

func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.Filter):
		m.filter = nextFilter(m.filter)
		m.cursor = 0
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.Add):
		m.mode = ModeAdd
		m.input.Reset()
		return m, m.input.Focus()
	}

	task := m.SelectedTask()
	if task == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Edit):
		m.mode = ModeEdit
		m.input.SetValue(task.Description)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Todo):
		return m, m.setStatus(task.ID, domain.StatusTodo)

	case key.Matches(msg, m.keys.Progress):
		return m, m.setStatus(task.ID, domain.StatusInProgress)

	case key.Matches(msg, m.keys.Done):
		return m, m.setStatus(task.ID, domain.StatusDone)

	case key.Matches(msg, m.keys.Cycle):
		return m, m.setStatus(task.ID, task.Status.Next())

	case key.Matches(msg, m.keys.Delete):
		m.mode = ModeConfirm
		m.confirmTaskID = task.ID
		return m, nil
	}
	return m, nil
}

func (m *Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		m.input.Reset()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		description := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.input.Blur()
		m.input.Reset()
		m.mode = ModeNormal
		if mode == ModeEdit {
			task := m.SelectedTask()
			if task == nil {
				return m, nil
			}
			return m, m.updateTask(task.ID, description)
		}
		return m, m.addTask(description)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	taskID := m.confirmTaskID
	m.mode = ModeNormal
	m.confirmTaskID = 0
	if key.Matches(msg, m.keys.Confirm) {
		return m, m.deleteTask(taskID)
	}
	return m, nil
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// nextFilter cycles all -> todo -> in-progress -> done -> all.
func nextFilter(current *domain.Status) *domain.Status {
	statuses := domain.AllStatuses()
	if current == nil {
		s := statuses[0]
		return &s
	}
	for i, s := range statuses {
		if s == *current && i+1 < len(statuses) {
			next := statuses[i+1]
			return &next
		}
	}
	return nil
}

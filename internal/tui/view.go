package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/runoshun/task-cli/internal/domain"
)

// View renders the model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewTaskList())
	b.WriteString("\n")

	switch m.mode {
	case ModeAdd, ModeEdit:
		b.WriteString("\n")
		b.WriteString(m.viewInput())
		b.WriteString("\n")
	case ModeConfirm:
		b.WriteString("\n")
		b.WriteString(m.styles.ConfirmTitle.Render(fmt.Sprintf("Delete task %d? (y/N)", m.confirmTaskID)))
		b.WriteString("\n")
	case ModeNormal:
	}

	if line := m.viewStatusLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return m.styles.App.Render(b.String())
}

func (m *Model) viewHeader() string {
	title := m.styles.Header.Render("📑 Task List")
	filter := "all"
	if m.filter != nil {
		filter = string(*m.filter)
	}
	counts := fmt.Sprintf("%d of %d · filter: %s", len(m.tasks), m.total, filter)
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", m.styles.Filter.Render(counts))
}

func (m *Model) viewTaskList() string {
	if len(m.tasks) == 0 {
		if m.filter != nil {
			return m.styles.Empty.Render("📝 No tasks found with status: " + string(*m.filter))
		}
		return m.styles.Empty.Render("📝 No tasks found")
	}

	now := m.container.Clock.Now()
	emoji := m.container.AppConfig.Display.Emoji
	rows := make([]string, 0, len(m.tasks))
	for i, task := range m.tasks {
		rows = append(rows, m.viewTaskRow(task, i == m.cursor, now, emoji))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) viewTaskRow(task *domain.Task, selected bool, now time.Time, emoji bool) string {
	label := task.Status.Display()
	if emoji {
		label = task.Status.Emoji() + " " + label
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.TaskID.Render(fmt.Sprintf("#%d", task.ID)),
		m.styles.StatusStyle(task.Status).Render(label),
		task.Description,
		"  ",
		m.styles.Updated.Render(humanize.RelTime(task.UpdatedAt, now, "ago", "from now")),
	)

	if selected {
		return m.styles.RowSelected.Render("> ") + row
	}
	return m.styles.Row.Render(row)
}

func (m *Model) viewInput() string {
	prompt := "New task: "
	if m.mode == ModeEdit {
		if task := m.SelectedTask(); task != nil {
			prompt = fmt.Sprintf("Edit task %d: ", task.ID)
		}
	}
	return m.styles.InputPrompt.Render(prompt) + m.input.View()
}

func (m *Model) viewStatusLine() string {
	if m.err != nil {
		return m.styles.ErrorMsg.Render("Error: " + m.err.Error())
	}
	if m.notice != "" {
		return m.styles.Notice.Render(m.notice)
	}
	return ""
}

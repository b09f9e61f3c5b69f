package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/runoshun/task-cli/internal/domain"
)

// renderTaskList prints tasks as a table.
// total is the size of the unfiltered store and picks the empty-state message.
func renderTaskList(w io.Writer, tasks []*domain.Task, total int, filter *domain.Status, now time.Time, emoji bool) {
	if total == 0 {
		_, _ = fmt.Fprintln(w, "📝 No tasks found")
		return
	}
	if len(tasks) == 0 {
		status := ""
		if filter != nil {
			status = string(*filter)
		}
		_, _ = fmt.Fprintf(w, "📝 No tasks found with status: %s\n", status)
		return
	}

	// Styles are bound to w so a non-terminal writer gets plain text.
	r := lipgloss.NewRenderer(w)
	headerStyle := r.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Faint(true)).
		Headers("ID", "STATUS", "DESCRIPTION", "UPDATED").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, task := range tasks {
		t.Row(
			strconv.Itoa(task.ID),
			statusLabel(task.Status, emoji),
			task.Description,
			humanize.RelTime(task.UpdatedAt, now, "ago", "from now"),
		)
	}

	_, _ = fmt.Fprintln(w, "\n📑 Task List:")
	_, _ = fmt.Fprintln(w, t.Render())
}

// statusLabel returns the status, prefixed with its emoji when enabled.
func statusLabel(s domain.Status, emoji bool) string {
	if !emoji || s.Emoji() == "" {
		return string(s)
	}
	return s.Emoji() + " " + string(s)
}

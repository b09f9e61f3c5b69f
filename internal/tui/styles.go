package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/task-cli/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Error   lipgloss.Color
	Success lipgloss.Color

	// Status colors
	Todo       lipgloss.Color
	InProgress lipgloss.Color
	Done       lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"), // Purple
	Muted:   lipgloss.Color("#636E72"), // Gray
	Error:   lipgloss.Color("#D63031"), // Red
	Success: lipgloss.Color("#00B894"), // Green

	Todo:       lipgloss.Color("#74B9FF"), // Light blue
	InProgress: lipgloss.Color("#FDCB6E"), // Yellow
	Done:       lipgloss.Color("#00B894"), // Green
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Header       lipgloss.Style
	Filter       lipgloss.Style
	Row          lipgloss.Style
	RowSelected  lipgloss.Style
	TaskID       lipgloss.Style
	Updated      lipgloss.Style
	Empty        lipgloss.Style
	InputPrompt  lipgloss.Style
	Notice       lipgloss.Style
	ErrorMsg     lipgloss.Style
	ConfirmTitle lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App:          lipgloss.NewStyle().Padding(1, 2),
		Header:       lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary),
		Filter:       lipgloss.NewStyle().Foreground(Colors.Muted),
		Row:          lipgloss.NewStyle().PaddingLeft(2),
		RowSelected:  lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary),
		TaskID:       lipgloss.NewStyle().Width(5).Foreground(Colors.Muted),
		Updated:      lipgloss.NewStyle().Foreground(Colors.Muted),
		Empty:        lipgloss.NewStyle().Foreground(Colors.Muted).Italic(true),
		InputPrompt:  lipgloss.NewStyle().Bold(true),
		Notice:       lipgloss.NewStyle().Foreground(Colors.Success),
		ErrorMsg:     lipgloss.NewStyle().Foreground(Colors.Error),
		ConfirmTitle: lipgloss.NewStyle().Bold(true).Foreground(Colors.Error),
	}
}

// StatusStyle returns the style for a status label.
func (s Styles) StatusStyle(status domain.Status) lipgloss.Style {
	base := lipgloss.NewStyle().Width(16)
	switch status {
	case domain.StatusTodo:
		return base.Foreground(Colors.Todo)
	case domain.StatusInProgress:
		return base.Foreground(Colors.InProgress)
	case domain.StatusDone:
		return base.Foreground(Colors.Done)
	default:
		return base
	}
}

// Package tui provides the full-screen terminal user interface for task-cli.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal  Mode = iota // Default navigation mode
	ModeAdd                 // Description input for a new task
	ModeEdit                // Description input for the selected task
	ModeConfirm             // Delete confirmation
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeAdd:
		return "add"
	case ModeEdit:
		return "edit"
	case ModeConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	return m == ModeAdd || m == ModeEdit
}

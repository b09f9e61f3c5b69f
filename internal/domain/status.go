package domain

import "fmt"

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "todo"        // Created, not started
	StatusInProgress Status = "in-progress" // Being worked on
	StatusDone       Status = "done"        // Finished
)

// AllStatuses returns all valid status values in canonical order.
func AllStatuses() []Status {
	return []Status{
		StatusTodo,
		StatusInProgress,
		StatusDone,
	}
}

// ParseStatus converts a string into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q (expected todo, in-progress or done)", ErrInvalidStatus, s)
	}
	return st, nil
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// Emoji returns the list marker for the status.
func (s Status) Emoji() string {
	switch s {
	case StatusTodo:
		return "📋"
	case StatusInProgress:
		return "🔄"
	case StatusDone:
		return "✅"
	default:
		return ""
	}
}

// Next returns the status that follows s in the todo → in-progress → done cycle.
func (s Status) Next() Status {
	switch s {
	case StatusTodo:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	default:
		return StatusTodo
	}
}

package tui

import "github.com/runoshun/task-cli/internal/domain"

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTasksLoaded is sent when tasks are loaded from the repository.
type MsgTasksLoaded struct {
	Tasks []*domain.Task
	Total int // Store size before filtering
}

func (MsgTasksLoaded) sealed() {}

// MsgTaskChanged is sent after a successful add, update, status change or delete.
type MsgTaskChanged struct {
	Notice string
}

func (MsgTaskChanged) sealed() {}

// MsgError is sent when a use case fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

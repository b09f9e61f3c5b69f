// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/task-cli/internal/domain"
)

// AddTaskInput contains the parameters for creating a new task.
type AddTaskInput struct {
	Description string // Task description (required)
}

// AddTaskOutput contains the result of creating a new task.
type AddTaskOutput struct {
	Task *domain.Task // The created task
}

// AddTask is the use case for creating a new task.
type AddTask struct {
	tasks  domain.TaskRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewAddTask creates a new AddTask use case.
func NewAddTask(tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger) *AddTask {
	return &AddTask{
		tasks:  tasks,
		clock:  clock,
		logger: orNop(logger),
	}
}

// Execute creates a new task with status todo.
func (uc *AddTask) Execute(_ context.Context, in AddTaskInput) (*AddTaskOutput, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, domain.ErrEmptyDescription
	}

	id, err := uc.tasks.NextID()
	if err != nil {
		return nil, fmt.Errorf("generate task ID: %w", err)
	}

	now := uc.clock.Now()
	task := &domain.Task{
		ID:          id,
		Description: description,
		Status:      domain.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	uc.logger.Info(id, "task", fmt.Sprintf("created: %q", description))

	return &AddTaskOutput{Task: task}, nil
}

// orNop substitutes a discarding logger for nil.
func orNop(logger domain.Logger) domain.Logger {
	if logger == nil {
		return domain.NopLogger{}
	}
	return logger
}

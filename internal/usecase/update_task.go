package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/task-cli/internal/domain"
)

// UpdateTaskInput contains the parameters for changing a task description.
type UpdateTaskInput struct {
	Description string // New description (required)
	TaskID      int    // Task ID to update
}

// UpdateTaskOutput contains the result of updating a task.
type UpdateTaskOutput struct {
	Task *domain.Task // The updated task
}

// UpdateTask is the use case for changing a task's description.
type UpdateTask struct {
	tasks  domain.TaskRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewUpdateTask creates a new UpdateTask use case.
func NewUpdateTask(tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger) *UpdateTask {
	return &UpdateTask{
		tasks:  tasks,
		clock:  clock,
		logger: orNop(logger),
	}
}

// Execute replaces the description and refreshes UpdatedAt.
// Returns domain.ErrTaskNotFound without touching the store if the task does not exist.
func (uc *UpdateTask) Execute(_ context.Context, in UpdateTaskInput) (*UpdateTaskOutput, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, domain.ErrEmptyDescription
	}

	task, err := getTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}

	task.Description = description
	task.Touch(uc.clock.Now())

	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	uc.logger.Info(task.ID, "task", fmt.Sprintf("description updated: %q", description))

	return &UpdateTaskOutput{Task: task}, nil
}

// getTask loads a task and maps a missing task to domain.ErrTaskNotFound.
func getTask(tasks domain.TaskRepository, id int) (*domain.Task, error) {
	task, err := tasks.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, fmt.Errorf("%w (ID: %d)", domain.ErrTaskNotFound, id)
	}
	return task, nil
}

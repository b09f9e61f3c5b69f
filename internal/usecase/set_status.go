package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/task-cli/internal/domain"
)

// SetStatusInput contains the parameters for changing a task's status.
type SetStatusInput struct {
	Status domain.Status // Target status
	TaskID int           // Task ID
}

// SetStatusOutput contains the result of changing a task's status.
type SetStatusOutput struct {
	Task *domain.Task // The updated task
}

// SetStatus is the use case for marking a task todo, in-progress or done.
// Any status may be set from any other; re-setting the current status still refreshes UpdatedAt.
type SetStatus struct {
	tasks  domain.TaskRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewSetStatus creates a new SetStatus use case.
func NewSetStatus(tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger) *SetStatus {
	return &SetStatus{
		tasks:  tasks,
		clock:  clock,
		logger: orNop(logger),
	}
}

// Execute sets the status of the task.
func (uc *SetStatus) Execute(_ context.Context, in SetStatusInput) (*SetStatusOutput, error) {
	if !in.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
	}

	task, err := getTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}

	from := task.Status
	task.Status = in.Status
	task.Touch(uc.clock.Now())

	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	uc.logger.Info(task.ID, "status", fmt.Sprintf("%s -> %s", from, in.Status))

	return &SetStatusOutput{Task: task}, nil
}

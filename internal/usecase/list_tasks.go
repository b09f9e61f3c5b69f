package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/task-cli/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Status *domain.Status // Filter by status (nil = all tasks)
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks []*domain.Task // Matching tasks in store order
	Total int            // Number of tasks in the store, before filtering
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	tasks domain.TaskRepository
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskRepository) *ListTasks {
	return &ListTasks{
		tasks: tasks,
	}
}

// Execute lists tasks matching the given input criteria. It never writes.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	if in.Status != nil && !in.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, *in.Status)
	}

	all, err := uc.tasks.List(domain.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	filter := domain.TaskFilter{Status: in.Status}
	tasks := make([]*domain.Task, 0, len(all))
	for _, t := range all {
		if filter.Matches(t) {
			tasks = append(tasks, t)
		}
	}

	return &ListTasksOutput{Tasks: tasks, Total: len(all)}, nil
}

package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/runoshun/task-cli/internal/domain"
)

// ExportTasksInput contains the parameters for exporting tasks.
type ExportTasksInput struct {
	Writer io.Writer      // Destination
	Status *domain.Status // Filter by status (nil = all tasks)
	Format string         // Exporter name, e.g. "json", "yaml", "pdf"
}

// ExportTasksOutput contains the result of exporting tasks.
type ExportTasksOutput struct {
	Count int // Number of exported tasks
}

// ExportTasks writes the task list in a report format.
type ExportTasks struct {
	list      *ListTasks
	exporters map[string]domain.Exporter
	clock     domain.Clock
}

// NewExportTasks creates a new ExportTasks use case.
func NewExportTasks(tasks domain.TaskRepository, exporters map[string]domain.Exporter, clock domain.Clock) *ExportTasks {
	return &ExportTasks{
		list:      NewListTasks(tasks),
		exporters: exporters,
		clock:     clock,
	}
}

// Execute exports the matching tasks.
func (uc *ExportTasks) Execute(ctx context.Context, in ExportTasksInput) (*ExportTasksOutput, error) {
	exporter, ok := uc.exporters[in.Format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, in.Format)
	}

	out, err := uc.list.Execute(ctx, ListTasksInput{Status: in.Status})
	if err != nil {
		return nil, err
	}

	if err := exporter.Export(in.Writer, out.Tasks, uc.clock.Now()); err != nil {
		return nil, fmt.Errorf("export %s: %w", in.Format, err)
	}

	return &ExportTasksOutput{Count: len(out.Tasks)}, nil
}

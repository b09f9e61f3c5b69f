package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/runoshun/task-cli/internal/app"
	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/usecase"
	"github.com/spf13/cobra"
)

// markStatuses maps the one-shot mark commands to their target status.
var markStatuses = map[string]domain.Status{
	"mark-in-progress": domain.StatusInProgress,
	"mark-done":        domain.StatusDone,
	"mark-todo":        domain.StatusTodo,
}

// newAddCommand creates the add command.
func newAddCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   `add "<description>"`,
		Short: "Add a new task",
		Long: `Add a new task with status 'todo'.

Examples:
  task-cli add "Buy groceries"
  task-cli add -- "-5 degrees check"`,
		Args: cobra.ArbitraryArgs,
		RunE: withArgs(1, 1, func(cmd *cobra.Command, args []string) error {
			if err := openStore(cmd, c); err != nil {
				return err
			}
			return addTask(cmd.Context(), c, cmd.OutOrStdout(), args[0])
		}),
	}
}

// newUpdateCommand creates the update command.
func newUpdateCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   `update <id> "<description>"`,
		Short: "Change a task description",
		Args:  cobra.ArbitraryArgs,
		RunE: withArgs(2, 2, func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			if err := openStore(cmd, c); err != nil {
				return err
			}
			return updateTask(cmd.Context(), c, cmd.OutOrStdout(), id, args[1])
		}),
	}
	// Everything after the ID is positional, so descriptions may start with a dash.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// newDeleteCommand creates the delete command.
func newDeleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ArbitraryArgs,
		RunE: withArgs(1, 1, func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			if err := openStore(cmd, c); err != nil {
				return err
			}
			return deleteTask(cmd.Context(), c, cmd.OutOrStdout(), id)
		}),
	}
}

// newMarkCommand creates one of the mark-* commands.
func newMarkCommand(c *app.Container, name string) *cobra.Command {
	status := markStatuses[name]
	return &cobra.Command{
		Use:   name + " <id>",
		Short: fmt.Sprintf("Mark a task as %s", status),
		Args:  cobra.ArbitraryArgs,
		RunE: withArgs(1, 1, func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			if err := openStore(cmd, c); err != nil {
				return err
			}
			return setStatus(cmd.Context(), c, cmd.OutOrStdout(), id, status)
		}),
	}
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list [done|todo|in-progress]",
		Short: "List tasks",
		Long: `List tasks in the order they were added, optionally filtered by status.

Examples:
  task-cli list
  task-cli list in-progress`,
		Args: cobra.ArbitraryArgs,
		RunE: withArgs(0, 1, func(cmd *cobra.Command, args []string) error {
			var filter *domain.Status
			if len(args) == 1 {
				status, err := domain.ParseStatus(args[0])
				if err != nil {
					printUsage(cmd.OutOrStdout())
					return nil
				}
				filter = &status
			}
			if err := openStore(cmd, c); err != nil {
				return err
			}
			return listTasks(cmd.Context(), c, cmd.OutOrStdout(), filter)
		}),
	}
}

// parseTaskID parses a task ID string (accepts "1" or "#1").
func parseTaskID(s string) (int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q (please provide a positive number)", domain.ErrInvalidTaskID, s)
	}
	return id, nil
}

// The helpers below are shared by the one-shot commands and the shell.

func addTask(ctx context.Context, c *app.Container, w io.Writer, description string) error {
	out, err := c.AddTaskUseCase().Execute(ctx, usecase.AddTaskInput{Description: description})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Task added successfully (ID: %d)\n", out.Task.ID)
	return nil
}

func updateTask(ctx context.Context, c *app.Container, w io.Writer, id int, description string) error {
	if _, err := c.UpdateTaskUseCase().Execute(ctx, usecase.UpdateTaskInput{TaskID: id, Description: description}); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Task %d updated successfully\n", id)
	return nil
}

func deleteTask(ctx context.Context, c *app.Container, w io.Writer, id int) error {
	if _, err := c.DeleteTaskUseCase().Execute(ctx, usecase.DeleteTaskInput{TaskID: id}); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Task %d deleted successfully\n", id)
	return nil
}

func setStatus(ctx context.Context, c *app.Container, w io.Writer, id int, status domain.Status) error {
	if _, err := c.SetStatusUseCase().Execute(ctx, usecase.SetStatusInput{TaskID: id, Status: status}); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Task %d marked as %s\n", id, status)
	return nil
}

func listTasks(ctx context.Context, c *app.Container, w io.Writer, filter *domain.Status) error {
	out, err := c.ListTasksUseCase().Execute(ctx, usecase.ListTasksInput{Status: filter})
	if err != nil {
		return err
	}
	renderTaskList(w, out.Tasks, out.Total, filter, c.Clock.Now(), c.AppConfig.Display.Emoji)
	return nil
}

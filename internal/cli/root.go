// Package cli provides the command-line interface for task-cli.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/runoshun/task-cli/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupTask  = "task"
	groupSetup = "setup"
)

// annotationConfig marks commands that must run even when the config files are broken.
const annotationConfig = "config"

var configAnnotation = map[string]string{annotationConfig: "true"}

// runShellFunc is a function variable for the interactive shell, allowing it to be mocked in tests.
var runShellFunc = runShell

// usageText is printed for unknown commands and wrong argument counts.
const usageText = `
Usage:
    task-cli add "task description"
    task-cli update <id> "new description"
    task-cli delete <id>
    task-cli mark-in-progress <id>
    task-cli mark-done <id>
    task-cli mark-todo <id>
    task-cli list [done|todo|in-progress]
    task-cli export [status] [--format json|yaml|csv|pdf] [--output FILE]
    task-cli shell | tui | config

Run "task-cli" without arguments for the interactive shell.
Use -- before a description that starts with a dash:
    task-cli add -- "-5 degrees check"
`

// printUsage writes the usage summary. Usage is advisory, so it never fails a command.
func printUsage(w io.Writer) {
	_, _ = fmt.Fprint(w, usageText)
}

// withArgs runs fn when len(args) is within [minArgs, maxArgs], otherwise prints usage.
// fn opens the tasks file itself, after any further argument checks.
func withArgs(minArgs, maxArgs int, fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < minArgs || len(args) > maxArgs {
			printUsage(cmd.OutOrStdout())
			return nil
		}
		return fn(cmd, args)
	}
}

// NewRootCommand creates the root command for task-cli.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var opts app.LoadOptions

	root := &cobra.Command{
		Use:   "task-cli",
		Short: "Personal task tracker",
		Long: `task-cli records tasks with a description and a status
(todo, in-progress, done) in a local JSON file.

Run a single command, or start without arguments for the interactive shell.`,
		Version: version,
		// Unknown commands reach RunE, which prints usage.
		Args: cobra.ArbitraryArgs,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}

			if err := c.Load(opts); err != nil {
				if cmd.Annotations[annotationConfig] != "true" {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
			}

			printWarnings(cmd, c)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				printUsage(cmd.OutOrStdout())
				return nil
			}
			if err := openStore(cmd, c); err != nil {
				return err
			}
			return runShellFunc(cmd.Context(), c, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	root.PersistentFlags().StringVar(&opts.File, "file", "", "Tasks file (overrides $TASK_CLI_FILE and tasks.file)")
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Extra config file merged after the global and local ones")

	root.AddGroup(
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	for _, cmd := range []*cobra.Command{
		newAddCommand(c),
		newUpdateCommand(c),
		newDeleteCommand(c),
		newMarkCommand(c, "mark-in-progress"),
		newMarkCommand(c, "mark-done"),
		newMarkCommand(c, "mark-todo"),
		newListCommand(c),
		newExportCommand(c),
		newShellCommand(c),
		newTUICommand(c),
	} {
		cmd.GroupID = groupTask
		root.AddCommand(cmd)
	}

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup
	root.AddCommand(configCmd)

	return root
}

// newShellCommand creates the shell command, the explicit form of running without arguments.
func newShellCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Args:  cobra.ArbitraryArgs,
		RunE: withArgs(0, 0, func(cmd *cobra.Command, _ []string) error {
			if err := openStore(cmd, c); err != nil {
				return err
			}
			return runShellFunc(cmd.Context(), c, cmd.InOrStdin(), cmd.OutOrStdout())
		}),
	}
}

// openStore opens the tasks file once arguments are known to be valid,
// so usage errors never trigger corrupt-file recovery.
func openStore(cmd *cobra.Command, c *app.Container) error {
	if err := c.OpenTasks(); err != nil {
		return err
	}
	printWarnings(cmd, c)
	return nil
}

// printWarnings reports pending config and store warnings on stderr.
func printWarnings(cmd *cobra.Command, c *app.Container) {
	for _, w := range c.TakeWarnings() {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}
}

// runShell runs the interactive shell until quit or end of input.
func runShell(ctx context.Context, c *app.Container, in io.Reader, out io.Writer) error {
	return newShell(c, in, out).Run(ctx)
}

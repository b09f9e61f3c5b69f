package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/shlex"
	"github.com/runoshun/task-cli/internal/app"
	"github.com/runoshun/task-cli/internal/domain"
)

const shellIntro = `
    🗒️  Welcome to Task Manager! 🗒️
    Type 'help' to list commands.
    Type 'quit' to exit.
`

const shellGoodbye = "\nGoodbye! 👋"

// maxLineBytes bounds a single input line.
const maxLineBytes = 1024 * 1024

var (
	errQuit        = errors.New("quit") // Ends the read loop
	errLineTooLong = errors.New("line too long")
)

// argError is reported to the user without ending the loop.
type argError string

func (e argError) Error() string { return string(e) }

const errInvalidID = argError("Please provide a valid task ID")

// shellCommand is one entry of the shell dispatch table.
// Fields are ordered to minimize memory padding.
type shellCommand struct {
	run        func(ctx context.Context, s *shell, args []string) error
	usage      string
	help       string
	arityError string // Printed when the argument count or an ID is invalid
	minArgs    int
	maxArgs    int // -1 = unbounded
}

// shell reads command lines and dispatches them against one loaded store.
type shell struct {
	c        *app.Container
	in       io.Reader
	out      io.Writer
	commands map[string]*shellCommand
	prompt   string
}

func newShell(c *app.Container, in io.Reader, out io.Writer) *shell {
	prompt := c.AppConfig.Shell.Prompt
	if prompt == "" {
		prompt = domain.DefaultPrompt
	}
	s := &shell{c: c, in: in, out: out, prompt: prompt}
	s.commands = shellCommands()
	return s
}

// idCommand builds a single-ID command such as delete or done.
func idCommand(usage, help string, fn func(ctx context.Context, s *shell, id int) error) *shellCommand {
	return &shellCommand{
		usage:      usage,
		help:       help,
		arityError: string(errInvalidID),
		minArgs:    1,
		maxArgs:    1,
		run: func(ctx context.Context, s *shell, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return errInvalidID
			}
			return fn(ctx, s, id)
		},
	}
}

func markCommand(status domain.Status, usage string) *shellCommand {
	return idCommand(usage, "Mark a task as "+string(status)+".", func(ctx context.Context, s *shell, id int) error {
		return setStatus(ctx, s.c, s.out, id, status)
	})
}

func shellCommands() map[string]*shellCommand {
	quit := &shellCommand{
		usage:   "quit",
		help:    "Exit the task manager (also: exit, q).",
		maxArgs: -1,
		run: func(context.Context, *shell, []string) error {
			return errQuit
		},
	}

	return map[string]*shellCommand{
		"add": {
			usage:      `add "task description"`,
			help:       "Add a new task. Words are joined with single spaces.",
			arityError: "Please provide a task description",
			minArgs:    1,
			maxArgs:    -1,
			run: func(ctx context.Context, s *shell, args []string) error {
				return addTask(ctx, s.c, s.out, strings.Join(args, " "))
			},
		},
		"update": {
			usage:      `update <id> "new description"`,
			help:       "Update a task description.",
			arityError: "Please provide task ID and new description",
			minArgs:    2,
			maxArgs:    2,
			run: func(ctx context.Context, s *shell, args []string) error {
				id, err := parseTaskID(args[0])
				if err != nil {
					return errInvalidID
				}
				return updateTask(ctx, s.c, s.out, id, args[1])
			},
		},
		"delete": idCommand("delete <id>", "Delete a task.", func(ctx context.Context, s *shell, id int) error {
			return deleteTask(ctx, s.c, s.out, id)
		}),
		"progress": markCommand(domain.StatusInProgress, "progress <id>"),
		"done":     markCommand(domain.StatusDone, "done <id>"),
		"todo":     markCommand(domain.StatusTodo, "todo <id>"),
		"list": {
			usage:      "list [done|todo|in-progress]",
			help:       "List tasks, optionally filtered by status.",
			arityError: "Invalid status filter",
			maxArgs:    1,
			run: func(ctx context.Context, s *shell, args []string) error {
				var filter *domain.Status
				if len(args) == 1 {
					status, err := domain.ParseStatus(args[0])
					if err != nil {
						return argError("Invalid status filter")
					}
					filter = &status
				}
				return listTasks(ctx, s.c, s.out, filter)
			},
		},
		"help": {
			usage:      "help [command]",
			help:       "List commands, or show help for one command.",
			arityError: "Too many arguments",
			maxArgs:    1,
			run: func(_ context.Context, s *shell, args []string) error {
				s.printHelp(args)
				return nil
			},
		},
		"quit": quit,
		"exit": quit,
		"q":    quit,
	}
}

// Run prints the intro and processes lines until quit or end of input.
// Only failures that leave the store unusable, such as write errors, are returned.
func (s *shell) Run(ctx context.Context) error {
	_, _ = fmt.Fprint(s.out, shellIntro)

	reader := bufio.NewReader(s.in)
	for {
		_, _ = fmt.Fprint(s.out, s.prompt)
		line, err := readLine(reader)
		switch {
		case errors.Is(err, io.EOF):
			_, _ = fmt.Fprintln(s.out)
			_, _ = fmt.Fprintln(s.out, shellGoodbye)
			return nil
		case errors.Is(err, errLineTooLong):
			s.printError(fmt.Sprintf("Input line too long (limit %d bytes)", maxLineBytes))
			continue
		case err != nil:
			return fmt.Errorf("read input: %w", err)
		}

		err = s.Execute(ctx, line)
		if errors.Is(err, errQuit) {
			_, _ = fmt.Fprintln(s.out, shellGoodbye)
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// readLine reads one line without its line ending.
// A line longer than maxLineBytes is consumed in full and reported as errLineTooLong.
func readLine(r *bufio.Reader) (string, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && (len(buf) > 0 || tooLong) {
				break
			}
			return "", err
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", errLineTooLong
	}
	return string(buf), nil
}

// Execute dispatches one input line. Recoverable errors are printed and nil is returned.
func (s *shell) Execute(ctx context.Context, line string) error {
	fields, err := shlex.Split(line)
	if err != nil {
		s.printError("Invalid arguments")
		return nil
	}
	if len(fields) == 0 {
		return nil
	}

	name, args := fields[0], fields[1:]
	cmd, ok := s.commands[name]
	if !ok {
		s.printError(fmt.Sprintf("Unknown command: %s (type 'help' to list commands)", name))
		return nil
	}

	if len(args) < cmd.minArgs || (cmd.maxArgs >= 0 && len(args) > cmd.maxArgs) {
		s.printError(cmd.arityError)
		_, _ = fmt.Fprintf(s.out, "Usage: %s\n", cmd.usage)
		return nil
	}

	err = cmd.run(ctx, s, args)
	var ae argError
	switch {
	case err == nil, errors.Is(err, errQuit):
		return err
	case errors.As(err, &ae):
		s.printError(string(ae))
		return nil
	case isRecoverable(err):
		s.printError(err.Error())
		return nil
	default:
		return err
	}
}

// isRecoverable reports whether err leaves the store intact.
func isRecoverable(err error) bool {
	for _, target := range []error{
		domain.ErrTaskNotFound,
		domain.ErrEmptyDescription,
		domain.ErrInvalidTaskID,
		domain.ErrInvalidStatus,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *shell) printError(msg string) {
	_, _ = fmt.Fprintf(s.out, "Error: %s\n", msg)
}

func (s *shell) printHelp(args []string) {
	if len(args) == 1 {
		cmd, ok := s.commands[args[0]]
		if !ok {
			s.printError(fmt.Sprintf("Unknown command: %s", args[0]))
			return
		}
		_, _ = fmt.Fprintf(s.out, "%s\n    Usage: %s\n", cmd.help, cmd.usage)
		return
	}

	names := make([]string, 0, len(s.commands))
	for name, cmd := range s.commands {
		// Aliases share the quit entry; list it once.
		if cmd.usage == "quit" && name != "quit" {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)

	_, _ = fmt.Fprintln(s.out, "\nCommands (type help <command>):")
	for _, name := range names {
		_, _ = fmt.Fprintf(s.out, "  %-32s %s\n", s.commands[name].usage, s.commands[name].help)
	}
	_, _ = fmt.Fprintln(s.out)
}

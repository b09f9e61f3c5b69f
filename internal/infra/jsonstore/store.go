// Package jsonstore provides a JSON file-based implementation of TaskRepository.
//
// The whole task list is read once when the store is opened and kept in
// memory. Every mutation rewrites the complete file through a temporary file
// and a rename, so readers never observe a partially written list.
// There is no locking: one process at a time is assumed to own the file.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/runoshun/task-cli/internal/domain"
)

// Options configures how a Store is opened.
type Options struct {
	Clock     domain.Clock         // Used to name corrupt-file backups (default: RealClock)
	Logger    domain.Logger        // Receives recovery and write-failure events (default: discard)
	OnCorrupt domain.CorruptPolicy // Handling of an unreadable file (default: backup)
}

// Store implements domain.TaskRepository using a JSON file.
// Fields are ordered to minimize memory padding.
type Store struct {
	clock    domain.Clock
	logger   domain.Logger
	path     string
	tasks    []*domain.Task
	warnings []string
}

// Open loads the tasks file at path and returns a Store holding its contents.
// A missing file yields an empty store; the file is created on first write.
func Open(path string, opts Options) (*Store, error) {
	if opts.Clock == nil {
		opts.Clock = domain.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = domain.NopLogger{}
	}
	if opts.OnCorrupt == "" {
		opts.OnCorrupt = domain.DefaultCorruptPolicy
	}

	s := &Store{
		path:   path,
		clock:  opts.Clock,
		logger: opts.Logger,
	}

	tasks, err := Load(path)
	if err != nil {
		if !errors.Is(err, domain.ErrCorruptStore) {
			return nil, err
		}
		if err := s.recover(err, opts.OnCorrupt); err != nil {
			return nil, err
		}
		tasks = []*domain.Task{}
	}
	s.tasks = tasks
	s.logger.Debug(0, "store", fmt.Sprintf("loaded %d task(s) from %s", len(tasks), path))

	return s, nil
}

// recover applies the corrupt-file policy after loadErr.
func (s *Store) recover(loadErr error, policy domain.CorruptPolicy) error {
	var warning string
	switch policy {
	case domain.CorruptFail:
		s.logger.Error(0, "store", loadErr.Error())
		return fmt.Errorf("%w (set tasks.on_corrupt to \"backup\" or \"empty\" to start over)", loadErr)
	case domain.CorruptEmpty:
		warning = fmt.Sprintf("%v; starting with an empty task list", loadErr)
	default:
		backup := domain.CorruptBackupPath(s.path, s.clock.Now())
		if err := os.Rename(s.path, backup); err != nil {
			return fmt.Errorf("back up corrupt tasks file: %w", err)
		}
		warning = fmt.Sprintf("%v; moved it to %s and started with an empty task list", loadErr, backup)
	}
	s.logger.Warn(0, "store", warning)
	s.warnings = append(s.warnings, warning)
	return nil
}

// Path returns the tasks file path.
func (s *Store) Path() string {
	return s.path
}

// Warnings returns notices produced while opening the store.
func (s *Store) Warnings() []string {
	return slices.Clone(s.warnings)
}

// Get retrieves a copy of the task with the given ID, or nil if absent.
func (s *Store) Get(id int) (*domain.Task, error) {
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i].Clone(), nil
	}
	return nil, nil
}

// List returns copies of the tasks matching the filter, in store order.
func (s *Store) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter.Matches(t) {
			tasks = append(tasks, t.Clone())
		}
	}
	return tasks, nil
}

// Save replaces the task with the same ID in place, or appends it,
// then rewrites the file. The in-memory list is unchanged if the write fails.
func (s *Store) Save(task *domain.Task) error {
	if task == nil {
		return errors.New("save: nil task")
	}
	if task.ID <= 0 {
		return fmt.Errorf("save: %w: %d", domain.ErrInvalidTaskID, task.ID)
	}

	next := slices.Clone(s.tasks)
	if i := s.indexOf(task.ID); i >= 0 {
		next[i] = task.Clone()
	} else {
		next = append(next, task.Clone())
	}
	return s.commit(next)
}

// Delete removes the task with the given ID and rewrites the file.
// Deleting an absent ID is a no-op.
func (s *Store) Delete(id int) error {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	next := slices.Delete(slices.Clone(s.tasks), i, i+1)
	return s.commit(next)
}

// NextID returns one more than the largest ID currently stored, or 1 if empty.
func (s *Store) NextID() (int, error) {
	return domain.NextID(s.tasks), nil
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.tasks, func(t *domain.Task) bool {
		return t.ID == id
	})
}

func (s *Store) commit(next []*domain.Task) error {
	if err := WriteFile(s.path, next); err != nil {
		s.logger.Error(0, "store", err.Error())
		return err
	}
	s.tasks = next
	return nil
}

// Load reads the tasks file at path.
// A missing file yields an empty list. Content that is not a valid task list
// yields an error wrapping domain.ErrCorruptStore.
func Load(path string) ([]*domain.Task, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*domain.Task{}, nil
		}
		return nil, fmt.Errorf("read tasks file: %w", err)
	}

	tasks, err := decode(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrCorruptStore, path, err)
	}
	return tasks, nil
}

// WriteFile serializes tasks as an indented JSON array and replaces the file at path.
func WriteFile(path string, tasks []*domain.Task) error {
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	content, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	content = append(content, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Ensure Store implements TaskRepository.
var _ domain.TaskRepository = (*Store)(nil)

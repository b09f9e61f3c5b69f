// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/infra/config"
	"github.com/runoshun/task-cli/internal/infra/export"
	"github.com/runoshun/task-cli/internal/infra/jsonstore"
	"github.com/runoshun/task-cli/internal/infra/logging"
	"github.com/runoshun/task-cli/internal/usecase"
)

// Paths holds the resolved file locations.
type Paths struct {
	WorkDir   string // Working directory; relative paths resolve against it
	TasksFile string // Path to the tasks file
	LogFile   string // Path to the log file ("" when disabled)
}

// LoadOptions carries command-line overrides applied on top of the config files.
type LoadOptions struct {
	File       string // --file, takes precedence over TASK_CLI_FILE and tasks.file
	ConfigPath string // --config, merged after the global and local config files
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks         domain.TaskRepository
	Clock         domain.Clock
	Logger        domain.Logger
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Exporters     map[string]domain.Exporter

	// Pointer fields
	AppConfig *domain.Config
	logger    *logging.Logger

	Warnings []string
	Paths    Paths
	loaded   bool
}

// New creates a Container rooted at workDir.
// Configuration and the task store are not read until Load and OpenTasks are called.
func New(workDir string) *Container {
	return &Container{
		Clock:         domain.RealClock{},
		Logger:        domain.NopLogger{},
		ConfigManager: config.NewManager(workDir),
		Exporters:     export.Exporters(),
		AppConfig:     domain.NewDefaultConfig(),
		Paths:         Paths{WorkDir: workDir},
	}
}

// NewWithDeps creates a new Container with custom dependencies for testing.
// The returned container is already loaded; Load and OpenTasks are no-ops.
func NewWithDeps(tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger, cfg *domain.Config) *Container {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}
	return &Container{
		Tasks:     tasks,
		Clock:     clock,
		Logger:    logger,
		Exporters: export.Exporters(),
		AppConfig: cfg,
		loaded:    true,
	}
}

// Load reads the merged configuration, resolves paths and sets up the file logger.
func (c *Container) Load(opts LoadOptions) error {
	if c.loaded {
		return nil
	}

	if c.ConfigLoader == nil {
		c.ConfigLoader = config.NewLoader(c.Paths.WorkDir, opts.ConfigPath)
	}
	cfg, err := c.ConfigLoader.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.AppConfig = cfg
	c.Warnings = append(c.Warnings, cfg.Warnings...)

	c.Paths.TasksFile = resolveTasksFile(c.Paths.WorkDir, opts.File, os.Getenv(domain.TasksFileEnv), cfg.Tasks.File)
	c.Paths.LogFile = resolveLogFile(c.Paths.WorkDir, cfg.Log.File)

	c.logger = logging.New(c.Paths.LogFile, logging.ParseLevel(cfg.Log.Level), c.Clock)
	c.Logger = c.logger
	c.loaded = true
	return nil
}

// OpenTasks opens the tasks file once, applying the configured corrupt-file policy.
// Recovery notices are appended to Warnings.
func (c *Container) OpenTasks() error {
	if c.Tasks != nil {
		return nil
	}
	store, err := jsonstore.Open(c.Paths.TasksFile, jsonstore.Options{
		Clock:     c.Clock,
		Logger:    c.Logger,
		OnCorrupt: c.AppConfig.Tasks.OnCorrupt,
	})
	if err != nil {
		return err
	}
	c.Tasks = store
	c.Warnings = append(c.Warnings, store.Warnings()...)
	return nil
}

// TakeWarnings returns pending warnings and clears them.
func (c *Container) TakeWarnings() []string {
	w := slices.Clone(c.Warnings)
	c.Warnings = nil
	return w
}

// Close releases the log file.
func (c *Container) Close() error {
	if c.logger == nil {
		return nil
	}
	return c.logger.Close()
}

// resolveTasksFile picks the first non-empty of flag, env and configured, relative to workDir.
func resolveTasksFile(workDir, flag, env, configured string) string {
	path := configured
	if env != "" {
		path = env
	}
	if flag != "" {
		path = flag
	}
	if path == "" {
		path = domain.DefaultTasksFile
	}
	return domain.ResolvePath(workDir, path)
}

// resolveLogFile maps the [log] file setting to a path, or "" when disabled.
func resolveLogFile(workDir, configured string) string {
	switch configured {
	case domain.LogDisabled:
		return ""
	case "":
		stateHome := os.Getenv("XDG_STATE_HOME")
		if stateHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			stateHome = filepath.Join(home, ".local", "state")
		}
		return domain.DefaultLogPath(stateHome)
	default:
		return domain.ResolvePath(workDir, configured)
	}
}

// UseCase factory methods

// AddTaskUseCase returns a new AddTask use case.
func (c *Container) AddTaskUseCase() *usecase.AddTask {
	return usecase.NewAddTask(c.Tasks, c.Clock, c.Logger)
}

// UpdateTaskUseCase returns a new UpdateTask use case.
func (c *Container) UpdateTaskUseCase() *usecase.UpdateTask {
	return usecase.NewUpdateTask(c.Tasks, c.Clock, c.Logger)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Tasks, c.Logger)
}

// SetStatusUseCase returns a new SetStatus use case.
func (c *Container) SetStatusUseCase() *usecase.SetStatus {
	return usecase.NewSetStatus(c.Tasks, c.Clock, c.Logger)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks)
}

// ExportTasksUseCase returns a new ExportTasks use case.
func (c *Container) ExportTasksUseCase() *usecase.ExportTasks {
	return usecase.NewExportTasks(c.Tasks, c.Exporters, c.Clock)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}

// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/task-cli/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	workDir       string // Directory holding the local .task-cli.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/task-cli)
	explicitPath  string // File passed with --config, applied last
}

// NewLoader creates a new Loader.
func NewLoader(workDir, explicitPath string) *Loader {
	return &Loader{
		workDir:       workDir,
		globalConfDir: defaultGlobalConfigDir(),
		explicitPath:  explicitPath,
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(workDir, globalConfDir, explicitPath string) *Loader {
	return &Loader{
		workDir:       workDir,
		globalConfDir: globalConfDir,
		explicitPath:  explicitPath,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration.
// Merge order: default <- global <- local <- explicit (later takes precedence).
// Missing global and local files are skipped; a missing explicit file is an error.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	var sources []string
	if l.globalConfDir != "" {
		sources = append(sources, filepath.Join(l.globalConfDir, domain.ConfigFileName))
	}
	if l.workDir != "" {
		sources = append(sources, domain.LocalConfigPath(l.workDir))
	}

	for _, path := range sources {
		raw, err := readRaw(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		applyRaw(cfg, raw, path)
	}

	if l.explicitPath != "" {
		raw, err := readRaw(l.explicitPath)
		if err != nil {
			return nil, err
		}
		applyRaw(cfg, raw, l.explicitPath)
	}

	return cfg, nil
}

// readRaw parses a TOML file into a generic map.
func readRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return raw, nil
}

// applyRaw overlays the known keys of raw onto cfg and appends warnings for the rest.
func applyRaw(cfg *domain.Config, raw map[string]any, source string) {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf("%s: ", source)+fmt.Sprintf(format, args...))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warn("unknown key: %s", section)
			continue
		}

		switch section {
		case "tasks":
			for k, v := range m {
				switch k {
				case "file":
					if s, ok := v.(string); ok && s != "" {
						cfg.Tasks.File = s
					} else {
						warn("[tasks] file must be a non-empty string")
					}
				case "on_corrupt":
					s, _ := v.(string)
					policy, err := domain.ParseCorruptPolicy(s)
					if err != nil {
						warn("%v, using %q", err, cfg.Tasks.OnCorrupt)
						continue
					}
					cfg.Tasks.OnCorrupt = policy
				default:
					warn("unknown key in [tasks]: %s", k)
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					s, _ := v.(string)
					if !isLogLevel(s) {
						warn("invalid log level %q, using %q", s, cfg.Log.Level)
						continue
					}
					cfg.Log.Level = s
				case "file":
					if s, ok := v.(string); ok {
						cfg.Log.File = s
					}
				default:
					warn("unknown key in [log]: %s", k)
				}
			}
		case "display":
			for k, v := range m {
				switch k {
				case "emoji":
					if b, ok := v.(bool); ok {
						cfg.Display.Emoji = b
					} else {
						warn("[display] emoji must be true or false")
					}
				default:
					warn("unknown key in [display]: %s", k)
				}
			}
		case "shell":
			for k, v := range m {
				switch k {
				case "prompt":
					if s, ok := v.(string); ok {
						cfg.Shell.Prompt = s
					}
				default:
					warn("unknown key in [shell]: %s", k)
				}
			}
		default:
			warn("unknown section: %s", section)
		}
	}

	sort.Strings(warnings)
	cfg.Warnings = append(cfg.Warnings, warnings...)
}

func isLogLevel(s string) bool {
	switch s {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/runoshun/task-cli/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	workDir       string // Directory holding the local .task-cli.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/task-cli)
}

// NewManager creates a new Manager.
func NewManager(workDir string) *Manager {
	return &Manager{
		workDir:       workDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(workDir, globalConfDir string) *Manager {
	return &Manager{
		workDir:       workDir,
		globalConfDir: globalConfDir,
	}
}

// GetLocalConfigInfo returns information about the local config file.
func (m *Manager) GetLocalConfigInfo() domain.ConfigInfo {
	return readInfo(domain.LocalConfigPath(m.workDir))
}

// GetGlobalConfigInfo returns information about the global config file.
func (m *Manager) GetGlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return readInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

func readInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{Path: path}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitLocalConfig creates the local config file with the default template.
func (m *Manager) InitLocalConfig() error {
	return writeTemplate(domain.LocalConfigPath(m.workDir))
}

// InitGlobalConfig creates the global config file with the default template.
func (m *Manager) InitGlobalConfig() error {
	if m.globalConfDir == "" {
		return errors.New("global config directory not available")
	}
	if err := os.MkdirAll(m.globalConfDir, 0o700); err != nil {
		return err
	}
	return writeTemplate(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

// writeTemplate writes the rendered default template unless path already exists.
func writeTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return domain.ErrConfigExists
	}
	content := domain.RenderConfigTemplate(domain.NewDefaultConfig())
	return os.WriteFile(path, []byte(content), 0o600)
}

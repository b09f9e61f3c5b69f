package domain

import (
	"path/filepath"
	"time"
)

// File and directory names.
const (
	AppDirName          = "task-cli"       // Directory name under XDG config/state homes
	ConfigFileName      = "config.toml"    // Global config file name
	LocalConfigFileName = ".task-cli.toml" // Config file name in the working directory
	LogFileName         = "task-cli.log"   // Log file name
	TasksFileEnv        = "TASK_CLI_FILE"  // Environment override for the tasks file
)

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// LocalConfigPath returns the config path inside dir.
func LocalConfigPath(dir string) string {
	return filepath.Join(dir, LocalConfigFileName)
}

// DefaultLogPath returns the log file path under the state home.
// stateHome is typically XDG_STATE_HOME or ~/.local/state (resolved by caller).
func DefaultLogPath(stateHome string) string {
	return filepath.Join(stateHome, AppDirName, LogFileName)
}

// CorruptBackupPath returns the path an unreadable tasks file is moved to.
// Format: <path>.corrupt-20060102-150405
func CorruptBackupPath(path string, now time.Time) string {
	return path + ".corrupt-" + now.Format("20060102-150405")
}

// ResolvePath makes p absolute relative to dir. Absolute paths are returned cleaned.
func ResolvePath(dir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, p)
}

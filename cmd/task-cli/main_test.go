package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/runoshun/task-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test in an isolated directory with its own config and state homes.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("TASK_CLI_FILE", "")
	return dir
}

func TestRun_AddAndList(t *testing.T) {
	dir := chdirTemp(t)
	var stdout, stderr bytes.Buffer

	require.NoError(t, run([]string{"add", "Buy groceries"}, nil, &stdout, &stderr))
	assert.Equal(t, "Task added successfully (ID: 1)\n", stdout.String())
	assert.FileExists(t, filepath.Join(dir, "tasks.json"))

	stdout.Reset()
	require.NoError(t, run([]string{"list"}, nil, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Buy groceries")
	assert.Empty(t, stderr.String())
}

func TestRun_Shell(t *testing.T) {
	chdirTemp(t)
	var stdout, stderr bytes.Buffer

	err := run(nil, strings.NewReader("add Write report\nlist\nquit\n"), &stdout, &stderr)

	require.NoError(t, err)
	out := stdout.String()
	assert.Contains(t, out, "Welcome to Task Manager!")
	assert.Contains(t, out, "Task added successfully (ID: 1)")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "Goodbye! 👋")
}

func TestRun_NotFound(t *testing.T) {
	chdirTemp(t)
	var stdout, stderr bytes.Buffer

	err := run([]string{"delete", "5"}, nil, &stdout, &stderr)

	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Equal(t, "Error: task not found (ID: 5)", formatError(err))
}

func TestRun_CorruptFileFailPolicy(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("{not json"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".task-cli.toml"), []byte("[tasks]\non_corrupt = \"fail\"\n"), 0o600))
	var stdout, stderr bytes.Buffer

	err := run([]string{"list"}, nil, &stdout, &stderr)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCorruptStore))
	data, readErr := os.ReadFile(filepath.Join(dir, "tasks.json"))
	require.NoError(t, readErr)
	assert.Equal(t, "{not json", string(data))
}

func TestRun_Version(t *testing.T) {
	chdirTemp(t)
	var stdout bytes.Buffer

	require.NoError(t, run([]string{"--version"}, nil, &stdout, &bytes.Buffer{}))
	assert.Contains(t, stdout.String(), "dev")
}

package jsonstore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	store, err := Open(path, Options{})
	require.NoError(t, err)
	return store
}

func newTask(id int, desc string, status domain.Status) *domain.Task {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Minute)
	return &domain.Task{
		ID:          id,
		Description: desc,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestOpen_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")

	store, err := Open(path, Options{})
	require.NoError(t, err)

	tasks, err := store.List(domain.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Empty(t, store.Warnings())

	// Opening must not create the file
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStore_NextID(t *testing.T) {
	store := newTestStore(t)

	id, err := store.NextID()
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	require.NoError(t, store.Save(newTask(1, "a", domain.StatusTodo)))
	require.NoError(t, store.Save(newTask(2, "b", domain.StatusTodo)))
	require.NoError(t, store.Save(newTask(4, "c", domain.StatusTodo)))

	id, err = store.NextID()
	require.NoError(t, err)
	assert.Equal(t, 5, id)
}

func TestStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	task := newTask(1, "write spec", domain.StatusTodo)

	require.NoError(t, store.Save(task))

	got, err := store.Get(1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, task.Description, got.Description)
	assert.Equal(t, task.Status, got.Status)
	assert.True(t, task.CreatedAt.Equal(got.CreatedAt))

	// Returned task is a copy
	got.Description = "mutated"
	again, _ := store.Get(1)
	assert.Equal(t, "write spec", again.Description)
}

func TestStore_GetNotFound(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Get(999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_SaveReplacesInPlace(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(newTask(1, "first", domain.StatusTodo)))
	require.NoError(t, store.Save(newTask(2, "second", domain.StatusTodo)))
	require.NoError(t, store.Save(newTask(3, "third", domain.StatusTodo)))

	updated := newTask(2, "second (edited)", domain.StatusDone)
	require.NoError(t, store.Save(updated))

	tasks, err := store.List(domain.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []int{1, 2, 3}, ids(tasks))
	assert.Equal(t, "second (edited)", tasks[1].Description)
	assert.Equal(t, domain.StatusDone, tasks[1].Status)
}

func TestStore_SaveRejectsInvalidID(t *testing.T) {
	store := newTestStore(t)

	err := store.Save(newTask(0, "no id", domain.StatusTodo))
	assert.True(t, errors.Is(err, domain.ErrInvalidTaskID))
	assert.Error(t, store.Save(nil))
}

func TestStore_ListPreservesInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(newTask(3, "c", domain.StatusDone)))
	require.NoError(t, store.Save(newTask(1, "a", domain.StatusTodo)))
	require.NoError(t, store.Save(newTask(2, "b", domain.StatusDone)))

	all, err := store.List(domain.TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, ids(all))

	done := domain.StatusDone
	filtered, err := store.List(domain.TaskFilter{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, ids(filtered))

	inProgress := domain.StatusInProgress
	none, err := store.List(domain.TaskFilter{Status: &inProgress})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(newTask(1, "a", domain.StatusTodo)))
	require.NoError(t, store.Save(newTask(2, "b", domain.StatusTodo)))

	require.NoError(t, store.Delete(1))

	got, err := store.Get(1)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Absent ID is a no-op
	require.NoError(t, store.Delete(1))

	tasks, _ := store.List(domain.TaskFilter{})
	assert.Equal(t, []int{2}, ids(tasks))
}

func TestStore_PersistsEveryMutation(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(newTask(1, "a", domain.StatusTodo)))
	require.NoError(t, store.Save(newTask(2, "b", domain.StatusTodo)))
	require.NoError(t, store.Delete(1))

	reopened, err := Open(store.Path(), Options{})
	require.NoError(t, err)
	tasks, _ := reopened.List(domain.TaskFilter{})
	assert.Equal(t, []int{2}, ids(tasks))
}

func TestStore_SaveFailureKeepsMemoryUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	store, err := Open(path, Options{})
	require.NoError(t, err)
	require.NoError(t, store.Save(newTask(1, "a", domain.StatusTodo)))

	// A directory at the temp path makes the write fail
	require.NoError(t, os.Mkdir(path+".tmp", 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(path+".tmp", "block"), nil, 0o600))

	err = store.Save(newTask(2, "b", domain.StatusTodo))
	require.Error(t, err)

	tasks, _ := store.List(domain.TaskFilter{})
	assert.Equal(t, []int{1}, ids(tasks))
}

func TestWriteFileAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.json")
	want := []*domain.Task{
		newTask(1, "write spec", domain.StatusDone),
		newTask(3, "review \"quoted\" text", domain.StatusInProgress),
		newTask(2, "ship it", domain.StatusTodo),
	}
	want[0].UpdatedAt = want[0].UpdatedAt.Add(90 * time.Second)

	require.NoError(t, WriteFile(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Description, got[i].Description)
		assert.Equal(t, want[i].Status, got[i].Status)
		assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt))
		assert.True(t, want[i].UpdatedAt.Equal(got[i].UpdatedAt))
	}

	// No temp file is left behind
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFile_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, WriteFile(path, []*domain.Task{newTask(1, "a", domain.StatusTodo)}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[
  {
    "id": 1,
    "description": "a",
    "status": "todo",
    "createdAt": "2025-01-01T12:01:00Z",
    "updatedAt": "2025-01-01T12:01:00Z"
  }
]
`, string(content))
}

func TestWriteFile_EmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, WriteFile(path, nil))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(content))
}

func TestLoad_LegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	legacy := `[
  {
    "id": 1,
    "description": "from python",
    "status": "in-progress",
    "createdAt": "2024-05-01T10:00:00.000001",
    "updatedAt": "2024-05-02T11:30:00.500000"
  }
]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	tasks, err := Load(path)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "from python", tasks[0].Description)
	assert.Equal(t, domain.StatusInProgress, tasks[0].Status)
	assert.Equal(t, 2024, tasks[0].CreatedAt.Year())
}

func TestLoad_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errLike string
	}{
		{"empty file", "", "parse JSON"},
		{"not json", "this is not json", "parse JSON"},
		{"object instead of array", `{"tasks": []}`, ""},
		{"bad status", `[{"id":1,"description":"a","status":"closed","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}]`, "[0].status"},
		{"missing id", `[{"description":"a","status":"todo","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}]`, ""},
		{"string id", `[{"id":"1","description":"a","status":"todo","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}]`, "[0].id"},
		{"bad timestamp", `[{"id":1,"description":"a","status":"todo","createdAt":"soon","updatedAt":"2025-01-01T00:00:00Z"}]`, "createdAt"},
		{"trailing garbage", `[] []`, "decode tasks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			tasks, err := Load(path)
			require.Error(t, err)
			assert.Nil(t, tasks)
			assert.True(t, errors.Is(err, domain.ErrCorruptStore), "error = %v", err)
			if tt.errLike != "" {
				assert.Contains(t, err.Error(), tt.errLike)
			}
		})
	}
}

func TestLoad_DuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	content := `[
  {"id":1,"description":"a","status":"todo","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"},
  {"id":1,"description":"b","status":"todo","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := Load(path)
	assert.True(t, errors.Is(err, domain.ErrCorruptStore))
	assert.True(t, errors.Is(err, domain.ErrDuplicateTaskID))
}

func TestOpen_CorruptPolicies(t *testing.T) {
	const garbage = "{ not json"
	clock := &testutil.MockClock{NowTime: time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC)}

	t.Run("empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.json")
		require.NoError(t, os.WriteFile(path, []byte(garbage), 0o600))
		logger := testutil.NewMockLogger()

		store, err := Open(path, Options{OnCorrupt: domain.CorruptEmpty, Logger: logger})
		require.NoError(t, err)

		tasks, _ := store.List(domain.TaskFilter{})
		assert.Empty(t, tasks)
		require.Len(t, store.Warnings(), 1)
		assert.Contains(t, store.Warnings()[0], "empty task list")
		assert.True(t, logger.Contains("WARN", "store"))

		// File is left as it was until the next write
		content, _ := os.ReadFile(path)
		assert.Equal(t, garbage, string(content))
	})

	t.Run("backup", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.json")
		require.NoError(t, os.WriteFile(path, []byte(garbage), 0o600))

		store, err := Open(path, Options{OnCorrupt: domain.CorruptBackup, Clock: clock})
		require.NoError(t, err)

		tasks, _ := store.List(domain.TaskFilter{})
		assert.Empty(t, tasks)

		backup := path + ".corrupt-20250607-080910"
		content, err := os.ReadFile(backup)
		require.NoError(t, err)
		assert.Equal(t, garbage, string(content))
		require.Len(t, store.Warnings(), 1)
		assert.True(t, strings.Contains(store.Warnings()[0], backup))

		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("default is backup", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.json")
		require.NoError(t, os.WriteFile(path, []byte(garbage), 0o600))

		_, err := Open(path, Options{Clock: clock})
		require.NoError(t, err)

		_, err = os.Stat(path + ".corrupt-20250607-080910")
		assert.NoError(t, err)
	})

	t.Run("fail", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.json")
		require.NoError(t, os.WriteFile(path, []byte(garbage), 0o600))

		store, err := Open(path, Options{OnCorrupt: domain.CorruptFail})
		assert.Nil(t, store)
		assert.True(t, errors.Is(err, domain.ErrCorruptStore))

		content, _ := os.ReadFile(path)
		assert.Equal(t, garbage, string(content))
	})
}

func TestStore_EndToEndScenario(t *testing.T) {
	store := newTestStore(t)

	task := newTask(1, "write spec", domain.StatusTodo)
	require.NoError(t, store.Save(task))

	task.Status = domain.StatusInProgress
	task.UpdatedAt = task.UpdatedAt.Add(time.Minute)
	require.NoError(t, store.Save(task))

	done := domain.StatusDone
	doneTasks, _ := store.List(domain.TaskFilter{Status: &done})
	assert.Empty(t, doneTasks)

	require.NoError(t, store.Delete(1))
	all, _ := store.List(domain.TaskFilter{})
	assert.Empty(t, all)

	got, _ := store.Get(1)
	assert.Nil(t, got)
}

func TestJSONPointerToPath(t *testing.T) {
	assert.Equal(t, "", jsonPointerToPath(""))
	assert.Equal(t, "[0].status", jsonPointerToPath("/0/status"))
	assert.Equal(t, "[2]", jsonPointerToPath("#/2"))
	assert.Equal(t, "a/b", jsonPointerToPath("/a~1b"))
}

func ids(tasks []*domain.Task) []int {
	out := make([]int, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

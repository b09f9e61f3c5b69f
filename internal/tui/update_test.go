package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/task-cli/internal/app"
	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, tasks ...*domain.Task) (*Model, *testutil.MockTaskRepository) {
	t.Helper()
	repo := testutil.NewMockTaskRepository(tasks...)
	clock := &testutil.MockClock{NowTime: time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)}
	c := app.NewWithDeps(repo, clock, nil, nil)
	m := New(c)
	m.Update(m.Init()())
	return m, repo
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and runs the resulting action command through Update.
func press(t *testing.T, m *Model, msg tea.KeyMsg) tea.Msg {
	t.Helper()
	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	result := cmd()
	_, reload := m.Update(result)
	if reload != nil {
		m.Update(reload())
	}
	return result
}

func sampleTasks() []*domain.Task {
	created := time.Date(2025, 2, 3, 8, 0, 0, 0, time.UTC)
	return []*domain.Task{
		{ID: 1, Description: "first", Status: domain.StatusTodo, CreatedAt: created, UpdatedAt: created},
		{ID: 2, Description: "second", Status: domain.StatusInProgress, CreatedAt: created, UpdatedAt: created},
		{ID: 3, Description: "third", Status: domain.StatusDone, CreatedAt: created, UpdatedAt: created},
	}
}

func TestInit_LoadsTasks(t *testing.T) {
	m, _ := newTestModel(t, sampleTasks()...)

	require.Len(t, m.tasks, 3)
	assert.Equal(t, 3, m.total)
	assert.Equal(t, 1, m.SelectedTask().ID)
}

func TestUpdate_Navigation(t *testing.T) {
	m, _ := newTestModel(t, sampleTasks()...)

	m.Update(runes("j"))
	m.Update(runes("j"))
	m.Update(runes("j"))
	assert.Equal(t, 3, m.SelectedTask().ID, "cursor stops at the last task")

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 2, m.SelectedTask().ID)

	m.Update(runes("k"))
	m.Update(runes("k"))
	assert.Equal(t, 1, m.SelectedTask().ID, "cursor stops at the first task")
}

func TestUpdate_AddTask(t *testing.T) {
	m, repo := newTestModel(t)

	m.Update(runes("a"))
	assert.Equal(t, ModeAdd, m.Mode())

	m.Update(runes("buy milk"))
	msg := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, MsgTaskChanged{Notice: "Task added successfully (ID: 1)"}, msg)
	assert.Equal(t, ModeNormal, m.Mode())
	require.NotNil(t, repo.Find(1))
	assert.Equal(t, "buy milk", repo.Find(1).Description)
	assert.Len(t, m.tasks, 1)
}

func TestUpdate_AddTask_EmptyDescription(t *testing.T) {
	m, repo := newTestModel(t)

	m.Update(runes("a"))
	msg := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	errMsg, ok := msg.(MsgError)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, domain.ErrEmptyDescription)
	assert.Equal(t, errMsg.Err, m.err)
	assert.Empty(t, repo.Tasks)
}

func TestUpdate_AddTask_Escape(t *testing.T) {
	m, repo := newTestModel(t)

	m.Update(runes("a"))
	m.Update(runes("draft"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.Equal(t, ModeNormal, m.Mode())
	assert.Empty(t, m.input.Value())
	assert.Empty(t, repo.Tasks)
}

func TestUpdate_EditTask(t *testing.T) {
	m, repo := newTestModel(t, sampleTasks()...)

	m.Update(runes("j"))
	m.Update(runes("e"))
	assert.Equal(t, ModeEdit, m.Mode())
	assert.Equal(t, "second", m.input.Value())

	m.Update(runes(" draft"))
	msg := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, MsgTaskChanged{Notice: "Task 2 updated successfully"}, msg)
	assert.Equal(t, "second draft", repo.Find(2).Description)
}

func TestUpdate_SetStatus(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want domain.Status
	}{
		{"done", "d", domain.StatusDone},
		{"in progress", "p", domain.StatusInProgress},
		{"todo", "t", domain.StatusTodo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, repo := newTestModel(t, sampleTasks()...)
			m.Update(runes("j"))
			m.Update(runes("j"))

			msg := press(t, m, runes(tt.key))

			assert.Equal(t, MsgTaskChanged{Notice: "Task 3 marked as " + string(tt.want)}, msg)
			assert.Equal(t, tt.want, repo.Find(3).Status)
		})
	}
}

func TestUpdate_CycleStatus(t *testing.T) {
	m, repo := newTestModel(t, sampleTasks()...)

	press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, domain.StatusInProgress, repo.Find(1).Status)

	press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, domain.StatusDone, repo.Find(1).Status)
}

func TestUpdate_DeleteTask_Confirm(t *testing.T) {
	m, repo := newTestModel(t, sampleTasks()...)

	m.Update(runes("x"))
	assert.Equal(t, ModeConfirm, m.Mode())
	assert.Equal(t, 1, m.confirmTaskID)

	msg := press(t, m, runes("y"))

	assert.Equal(t, MsgTaskChanged{Notice: "Task 1 deleted successfully"}, msg)
	assert.Nil(t, repo.Find(1))
	assert.Len(t, m.tasks, 2)
	assert.Equal(t, 2, m.SelectedTask().ID)
}

func TestUpdate_DeleteTask_Cancel(t *testing.T) {
	m, repo := newTestModel(t, sampleTasks()...)

	m.Update(runes("x"))
	_, cmd := m.Update(runes("n"))

	assert.Nil(t, cmd)
	assert.Equal(t, ModeNormal, m.Mode())
	assert.NotNil(t, repo.Find(1))
}

func TestUpdate_DeleteLastTask_ClampsCursor(t *testing.T) {
	m, _ := newTestModel(t, sampleTasks()...)
	m.Update(runes("j"))
	m.Update(runes("j"))

	m.Update(runes("x"))
	press(t, m, runes("y"))

	require.Len(t, m.tasks, 2)
	assert.Equal(t, 2, m.SelectedTask().ID)
}

func TestUpdate_Filter(t *testing.T) {
	m, _ := newTestModel(t, sampleTasks()...)

	want := []struct {
		filter *domain.Status
		ids    []int
	}{
		{statusPtr(domain.StatusTodo), []int{1}},
		{statusPtr(domain.StatusInProgress), []int{2}},
		{statusPtr(domain.StatusDone), []int{3}},
		{nil, []int{1, 2, 3}},
	}

	for _, w := range want {
		_, cmd := m.Update(runes("f"))
		require.NotNil(t, cmd)
		m.Update(cmd())

		assert.Equal(t, w.filter, m.filter)
		ids := make([]int, 0, len(m.tasks))
		for _, task := range m.tasks {
			ids = append(ids, task.ID)
		}
		assert.Equal(t, w.ids, ids)
		assert.Equal(t, 3, m.total)
	}
}

func TestUpdate_ActionsIgnoredWithoutTasks(t *testing.T) {
	m, _ := newTestModel(t)

	for _, k := range []string{"e", "d", "p", "t", "x"} {
		_, cmd := m.Update(runes(k))
		assert.Nil(t, cmd, k)
		assert.Equal(t, ModeNormal, m.Mode(), k)
	}
}

func TestUpdate_MsgError_ResetsMode(t *testing.T) {
	m, _ := newTestModel(t, sampleTasks()...)
	m.Update(runes("x"))

	m.Update(MsgError{Err: domain.ErrTaskNotFound})

	assert.Equal(t, ModeNormal, m.Mode())
	assert.Zero(t, m.confirmTaskID)
	assert.ErrorIs(t, m.err, domain.ErrTaskNotFound)
}

func TestUpdate_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(runes("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_QuitKeyTypedInInput(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(runes("a"))

	m.Update(runes("q"))

	assert.Equal(t, ModeAdd, m.Mode())
	assert.Equal(t, "q", m.input.Value())
}

func TestNextFilter(t *testing.T) {
	f := nextFilter(nil)
	require.NotNil(t, f)
	assert.Equal(t, domain.StatusTodo, *f)
	f = nextFilter(f)
	assert.Equal(t, domain.StatusInProgress, *f)
	f = nextFilter(f)
	assert.Equal(t, domain.StatusDone, *f)
	assert.Nil(t, nextFilter(f))
}

func statusPtr(s domain.Status) *domain.Status {
	return &s
}

package taskform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todo/internal/model"
)

func TestParseDueDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	got, err := parseDueDate("", now)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseDueDate(" Today ", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *got)

	got, err = parseDueDate("tomorrow", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), *got)

	got, err = parseDueDate("2026-12-24", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC), *got)

	_, err = parseDueDate("next week", now)
	assert.Error(t, err)
}

func TestStartEditCopiesTask(t *testing.T) {
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	task := model.Task{
		ID:       "t1",
		ListID:   "l1",
		Title:    "Pay rent",
		Priority: model.PriorityHigh,
		Status:   model.TaskStatusOpen,
		DueDate:  &due,
	}

	m := New(80, 24)
	m.StartEdit(task)

	assert.Equal(t, "Pay rent", m.fb.title)
	assert.Equal(t, "2026-05-01", m.fb.dueDate)
	assert.Equal(t, "l1", m.fb.listID)
	assert.Contains(t, m.View(), "Edit Task")
}

func TestSubmitBuildsMessages(t *testing.T) {
	m := New(80, 24)
	m.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	m.StartCreate("l1")
	m.fb.title = "  Buy milk "
	m.fb.dueDate = "tomorrow"
	m.fb.priority = model.PriorityLow

	msg, ok := m.handleSubmit()().(TaskCreatedMsg)
	require.True(t, ok)
	assert.Equal(t, "Buy milk", msg.Task.Title)
	assert.Equal(t, "l1", msg.Task.ListID)
	assert.Equal(t, model.PriorityLow, msg.Task.Priority)
	require.NotNil(t, msg.Task.DueDate)
	assert.Equal(t, 11, msg.Task.DueDate.Day())

	m.StartEdit(model.Task{ID: "t1", ListID: "l1", Title: "x", Status: model.TaskStatusOpen})
	m.fb.status = model.TaskStatusComplete
	upd, ok := m.handleSubmit()().(TaskUpdatedMsg)
	require.True(t, ok)
	assert.Equal(t, "t1", upd.Task.ID)
	assert.Equal(t, model.TaskStatusComplete, upd.Task.Status)
}

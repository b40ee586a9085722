package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/notification"
	"github.com/nhle/todo/internal/store"
)

// loadingText is shown while task lists are read from the store.
const loadingText = "Loading your task lists…"

// undoLabel names the secondary action of removal notifications.
const undoLabel = "Undo"

// taskSavedMsg is sent after a task is created, updated or toggled.
type taskSavedMsg struct{ err error }

// taskDeletedMsg is sent after a removal was committed to the store.
type taskDeletedMsg struct {
	id  string
	err error
}

// taskRestoredMsg is sent when a task removal is undone.
type taskRestoredMsg struct{ id string }

// listDeletedMsg is sent after a task list removal was committed.
type listDeletedMsg struct {
	id  string
	err error
}

// listRestoredMsg is sent when a task list removal is undone.
type listRestoredMsg struct{ id string }

func newLoadingNotification() *notification.Notification {
	n := notification.New(loadingText, 0)
	n.SetReady(false)
	return n
}

// createTask persists a new task.
func (m *Model) createTask(task model.Task) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_, err := s.CreateTask(context.Background(), task)
		return taskSavedMsg{err: err}
	}
}

// updateTask persists an edited task.
func (m *Model) updateTask(task model.Task) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return taskSavedMsg{err: s.UpdateTask(context.Background(), task)}
	}
}

// toggleTask flips a task between open and complete.
func (m *Model) toggleTask(task model.Task) tea.Cmd {
	s := m.store
	status := model.TaskStatusComplete
	if task.Complete() {
		status = model.TaskStatusOpen
	}
	return func() tea.Msg {
		return taskSavedMsg{err: s.SetTaskStatus(context.Background(), task.ID, status)}
	}
}

func deleteTask(s store.Store, id string) tea.Cmd {
	return func() tea.Msg {
		return taskDeletedMsg{id: id, err: s.DeleteTask(context.Background(), id)}
	}
}

func deleteTaskList(s store.Store, id string) tea.Cmd {
	return func() tea.Msg {
		return listDeletedMsg{id: id, err: s.DeleteTaskList(context.Background(), id)}
	}
}

// removeTask hides task and queues a notification that deletes it from the
// store once it is dismissed or times out. Undo brings it back.
func (m *Model) removeTask(task model.Task) tea.Cmd {
	m.taskList.Hide(task.ID)
	m.log.Info().Str("task_id", task.ID).Msg("task removal pending")

	text := fmt.Sprintf("Task “%s” removed", task.DisplayTitle())
	n := notification.New(text, m.cfg.NotificationTimeout())

	post := m.notice.Post
	s := m.store
	id := task.ID
	n.SetPrimaryAction(func(*notification.Notification, any) {
		post(deleteTask(s, id))
	}, nil)
	n.SetSecondaryAction(undoLabel, func(*notification.Notification, any) {
		post(func() tea.Msg { return taskRestoredMsg{id: id} })
	}, nil)

	return m.notice.Notify(n)
}

// removeList hides list the same way removeTask does. If it was shown, the
// first remaining list takes its place.
func (m *Model) removeList(list model.TaskList) tea.Cmd {
	m.listMgr.Hide(list.ID)
	lists := m.listMgr.Lists()
	m.taskForm.SetLists(lists)
	m.log.Info().Str("list_id", list.ID).Msg("task list removal pending")

	var show tea.Cmd
	if m.taskList.ListID() == list.ID && len(lists) > 0 {
		show = m.taskList.SetList(lists[0])
	}

	text := fmt.Sprintf("Task list “%s” removed", list.Name)
	n := notification.New(text, m.cfg.NotificationTimeout())

	post := m.notice.Post
	s := m.store
	id := list.ID
	n.SetPrimaryAction(func(*notification.Notification, any) {
		post(deleteTaskList(s, id))
	}, nil)
	n.SetSecondaryAction(undoLabel, func(*notification.Notification, any) {
		post(func() tea.Msg { return listRestoredMsg{id: id} })
	}, nil)

	return tea.Batch(show, m.notice.Notify(n))
}

func (m Model) handleTaskDeleted(msg taskDeletedMsg) (Model, tea.Cmd) {
	if msg.err != nil && !errors.Is(msg.err, store.ErrNotFound) {
		m.taskList.Unhide(msg.id)
		return m, m.notifyError("Could not remove the task", msg.err)
	}
	m.taskList.Forget(msg.id)
	m.log.Info().Str("task_id", msg.id).Msg("task removed")
	return m, m.taskList.LoadTasks()
}

func (m Model) handleListDeleted(msg listDeletedMsg) (Model, tea.Cmd) {
	if msg.err != nil && !errors.Is(msg.err, store.ErrNotFound) {
		m.listMgr.Unhide(msg.id)
		m.taskForm.SetLists(m.listMgr.Lists())
		return m, m.notifyError("Could not remove the task list", msg.err)
	}
	m.listMgr.Forget(msg.id)
	m.log.Info().Str("list_id", msg.id).Msg("task list removed")
	return m, m.listMgr.Load()
}

// notifyError shows text in the banner. Error notifications have no
// primary action, so they simply expire.
func (m Model) notifyError(text string, err error) tea.Cmd {
	m.log.Error().Err(err).Msg(text)
	return m.notice.Notify(notification.New(text, m.cfg.NotificationTimeout()))
}

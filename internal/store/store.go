package store

import (
	"context"
	"errors"

	"github.com/nhle/todo/internal/model"
)

// ErrNotFound is returned when a task or task list does not exist.
var ErrNotFound = errors.New("not found")

// TaskFilter controls filtering and sorting for task queries.
type TaskFilter struct {
	ListID   *string // list UUID or nil (all lists)
	Status   *string // "open", "complete", or nil (all)
	Priority *int    // 1-4 or nil (all)
	Query    *string // search title + description
	SortBy   string  // "sort_order", "priority", "due_date", "created_at", "updated_at", "title"
	SortDesc bool
	Limit    int
}

// Store defines the persistence interface for tasks and task lists.
type Store interface {
	// === Task CRUD ===

	CreateTask(ctx context.Context, task model.Task) (model.Task, error)
	UpdateTask(ctx context.Context, task model.Task) error
	DeleteTask(ctx context.Context, id string) error
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)
	GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	SetTaskStatus(ctx context.Context, id, status string) error

	// === Task list CRUD ===

	CreateTaskList(ctx context.Context, list model.TaskList) (model.TaskList, error)
	UpdateTaskList(ctx context.Context, list model.TaskList) error
	DeleteTaskList(ctx context.Context, id string) error
	GetTaskListByID(ctx context.Context, id string) (*model.TaskList, error)
	GetTaskLists(ctx context.Context) ([]model.TaskList, error)

	Close() error
}

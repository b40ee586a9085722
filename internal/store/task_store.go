package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/todo/internal/model"
)

const taskColumns = `id, list_id, title, description, status, priority,
	due_date, sort_order, created_at, completed_at, updated_at`

// CreateTask inserts a new task and returns it with generated fields set.
// Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateTask(ctx context.Context, task model.Task) (model.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return model.Task{}, fmt.Errorf("task title must not be empty")
	}
	if task.ListID == "" {
		return model.Task{}, fmt.Errorf("task %q has no list", task.Title)
	}
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Status == "" {
		task.Status = model.TaskStatusOpen
	}
	if task.Status == model.TaskStatusComplete && task.CompletedAt == nil {
		task.CompletedAt = &now
	}
	if task.Priority < model.PriorityHigh || task.Priority > model.PriorityNone {
		task.Priority = model.PriorityNone
	}

	// Default sort_order to max+1 within the list.
	if task.SortOrder == 0 {
		var maxOrder int
		err := s.db.GetContext(ctx, &maxOrder,
			"SELECT COALESCE(MAX(sort_order), 0) FROM tasks WHERE list_id = ?", task.ListID)
		if err != nil {
			return model.Task{}, fmt.Errorf("getting max sort_order: %w", err)
		}
		task.SortOrder = maxOrder + 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.ListID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.SortOrder, task.CreatedAt, task.CompletedAt, task.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("creating task: %w", err)
	}
	return task, nil
}

// UpdateTask updates an existing task by ID.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task model.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("task title must not be empty")
	}

	now := time.Now().UTC()
	task.UpdatedAt = now

	// Auto-manage completed_at based on status.
	if task.Status == model.TaskStatusComplete && task.CompletedAt == nil {
		task.CompletedAt = &now
	} else if task.Status == model.TaskStatusOpen {
		task.CompletedAt = nil
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			list_id = ?, title = ?, description = ?, status = ?, priority = ?,
			due_date = ?, sort_order = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`,
		task.ListID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.SortOrder, task.CompletedAt, task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task %s: %w", task.ID, err)
	}
	return expectRow(result, "task", task.ID)
}

// SetTaskStatus marks a task open or complete.
func (s *SQLiteStore) SetTaskStatus(ctx context.Context, id, status string) error {
	var completedAt *time.Time
	now := time.Now().UTC()
	switch status {
	case model.TaskStatusComplete:
		completedAt = &now
	case model.TaskStatusOpen:
	default:
		return fmt.Errorf("invalid task status %q", status)
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET status = ?, completed_at = ?, updated_at = ? WHERE id = ?",
		status, completedAt, now, id,
	)
	if err != nil {
		return fmt.Errorf("setting status of task %s: %w", id, err)
	}
	return expectRow(result, "task", id)
}

// DeleteTask removes a task by ID.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	return expectRow(result, "task", id)
}

// GetTaskByID retrieves a single task by ID.
func (s *SQLiteStore) GetTaskByID(ctx context.Context, id string) (*model.Task, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}
	return &task, nil
}

// GetTasks retrieves tasks matching the filter.
func (s *SQLiteStore) GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	query, args := buildTaskQuery(filter)

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// buildTaskQuery constructs the SQL query and args for a TaskFilter.
func buildTaskQuery(filter TaskFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.ListID != nil {
		conditions = append(conditions, "list_id = ?")
		args = append(args, *filter.ListID)
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, *filter.Priority)
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions, "(title LIKE ? OR description LIKE ?)")
		q := "%" + *filter.Query + "%"
		args = append(args, q, q)
	}

	query := "SELECT " + taskColumns + " FROM tasks"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	sortBy := "sort_order"
	allowed := map[string]string{
		"sort_order": "sort_order",
		"priority":   "priority",
		"due_date":   "due_date IS NULL, due_date",
		"created_at": "created_at",
		"updated_at": "updated_at",
		"title":      "title COLLATE NOCASE",
	}
	if col, ok := allowed[filter.SortBy]; ok {
		sortBy = col
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, id", sortBy, direction)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	return query, args
}

// scanTask scans a task row from sqlx.Row or sqlx.Rows.
func scanTask(row interface{ Scan(dest ...interface{}) error }) (model.Task, error) {
	var (
		task        model.Task
		dueDate     *time.Time
		completedAt *time.Time
	)

	err := row.Scan(
		&task.ID, &task.ListID, &task.Title, &task.Description, &task.Status, &task.Priority,
		&dueDate, &task.SortOrder, &task.CreatedAt, &completedAt, &task.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	task.DueDate = dueDate
	task.CompletedAt = completedAt
	return task, nil
}

// expectRow turns a zero-row result into ErrNotFound.
func expectRow(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %s: %w", kind, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}

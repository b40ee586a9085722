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

// CreateTaskList inserts a new task list and returns it with generated
// fields set.
func (s *SQLiteStore) CreateTaskList(ctx context.Context, list model.TaskList) (model.TaskList, error) {
	if strings.TrimSpace(list.Name) == "" {
		return model.TaskList{}, fmt.Errorf("task list name must not be empty")
	}
	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	list.CreatedAt = now
	list.UpdatedAt = now

	if list.SortOrder == 0 {
		var maxOrder int
		if err := s.db.GetContext(ctx, &maxOrder,
			"SELECT COALESCE(MAX(sort_order), 0) FROM task_lists"); err != nil {
			return model.TaskList{}, fmt.Errorf("getting max sort_order: %w", err)
		}
		list.SortOrder = maxOrder + 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO task_lists (id, name, color, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		list.ID, list.Name, list.Color, list.SortOrder, list.CreatedAt, list.UpdatedAt,
	)
	if err != nil {
		return model.TaskList{}, fmt.Errorf("creating task list: %w", err)
	}
	return list, nil
}

// UpdateTaskList renames or recolors an existing task list.
func (s *SQLiteStore) UpdateTaskList(ctx context.Context, list model.TaskList) error {
	if strings.TrimSpace(list.Name) == "" {
		return fmt.Errorf("task list name must not be empty")
	}
	list.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE task_lists SET name = ?, color = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`,
		list.Name, list.Color, list.SortOrder, list.UpdatedAt, list.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task list %s: %w", list.ID, err)
	}
	return expectRow(result, "task list", list.ID)
}

// DeleteTaskList removes a task list together with its tasks.
func (s *SQLiteStore) DeleteTaskList(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM task_lists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task list %s: %w", id, err)
	}
	return expectRow(result, "task list", id)
}

// GetTaskListByID retrieves a single task list by ID.
func (s *SQLiteStore) GetTaskListByID(ctx context.Context, id string) (*model.TaskList, error) {
	var list model.TaskList
	err := s.db.QueryRowxContext(ctx,
		"SELECT id, name, color, sort_order, created_at, updated_at FROM task_lists WHERE id = ?", id,
	).Scan(&list.ID, &list.Name, &list.Color, &list.SortOrder, &list.CreatedAt, &list.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task list %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting task list %s: %w", id, err)
	}
	return &list, nil
}

// GetTaskLists retrieves all task lists with their task counts.
func (s *SQLiteStore) GetTaskLists(ctx context.Context) ([]model.TaskList, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT l.id, l.name, l.color, l.sort_order, l.created_at, l.updated_at,
			COUNT(t.id) AS task_count,
			COALESCE(SUM(CASE WHEN t.status = 'open' THEN 1 ELSE 0 END), 0) AS open_count
		FROM task_lists l
		LEFT JOIN tasks t ON t.list_id = l.id
		GROUP BY l.id
		ORDER BY l.sort_order, l.name`)
	if err != nil {
		return nil, fmt.Errorf("querying task lists: %w", err)
	}
	defer rows.Close()

	var lists []model.TaskList
	for rows.Next() {
		var l model.TaskList
		err := rows.Scan(
			&l.ID, &l.Name, &l.Color, &l.SortOrder, &l.CreatedAt, &l.UpdatedAt,
			&l.TaskCount, &l.OpenCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task list row: %w", err)
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

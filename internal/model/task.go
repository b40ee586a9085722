package model

import (
	"strings"
	"time"
)

// Task status constants.
const (
	TaskStatusOpen     = "open"
	TaskStatusComplete = "complete"
)

// Priority constants (lower number = higher priority).
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
	PriorityNone   = 4
)

// PriorityLabel returns a short label for a priority value.
func PriorityLabel(p int) string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "none"
	}
}

// Task is a single to-do item belonging to a task list.
type Task struct {
	ID          string     `json:"id" db:"id"`
	ListID      string     `json:"list_id" db:"list_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Status      string     `json:"status" db:"status"`
	Priority    int        `json:"priority" db:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	SortOrder   int        `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Complete reports whether the task is done.
func (t Task) Complete() bool {
	return t.Status == TaskStatusComplete
}

// Overdue reports whether the task is open and its due date is before the
// day containing now.
func (t Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || t.Complete() {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return t.DueDate.Before(today)
}

// DisplayTitle returns the title, or a placeholder for blank titles.
func (t Task) DisplayTitle() string {
	if s := strings.TrimSpace(t.Title); s != "" {
		return s
	}
	return "(untitled)"
}

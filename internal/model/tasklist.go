package model

import "time"

// DefaultListName is the list created with a fresh database.
const DefaultListName = "Personal"

// TaskList is a named, colored container of tasks.
type TaskList struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// TaskCount and OpenCount are populated by list queries.
	TaskCount int `json:"task_count,omitempty" db:"task_count"`
	OpenCount int `json:"open_count,omitempty" db:"open_count"`
}

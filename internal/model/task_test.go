package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	earlierToday := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)

	assert.False(t, Task{}.Overdue(now))
	assert.True(t, Task{Status: TaskStatusOpen, DueDate: &yesterday}.Overdue(now))
	assert.False(t, Task{Status: TaskStatusComplete, DueDate: &yesterday}.Overdue(now))
	assert.False(t, Task{Status: TaskStatusOpen, DueDate: &earlierToday}.Overdue(now))
}

func TestTaskDisplayTitle(t *testing.T) {
	assert.Equal(t, "Buy milk", Task{Title: "  Buy milk "}.DisplayTitle())
	assert.Equal(t, "(untitled)", Task{Title: "   "}.DisplayTitle())
}

func TestPriorityLabel(t *testing.T) {
	assert.Equal(t, "high", PriorityLabel(PriorityHigh))
	assert.Equal(t, "low", PriorityLabel(PriorityLow))
	assert.Equal(t, "none", PriorityLabel(0))
}

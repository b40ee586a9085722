// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// SeedList creates a task list named name.
func SeedList(t *testing.T, s store.Store, name string) model.TaskList {
	t.Helper()

	l, err := s.CreateTaskList(context.Background(), model.TaskList{Name: name})
	if err != nil {
		t.Fatalf("seeding list %q: %v", name, err)
	}
	return l
}

// SeedTask creates an open task titled title in listID.
func SeedTask(t *testing.T, s store.Store, listID, title string) model.Task {
	t.Helper()

	task, err := s.CreateTask(context.Background(), model.Task{ListID: listID, Title: title})
	if err != nil {
		t.Fatalf("seeding task %q: %v", title, err)
	}
	return task
}

package tasklist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// ItemDelegate implements list.ItemDelegate for rendering task rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	fmt.Fprint(w, renderTask(ti.Task, index == m.Index(), time.Now()))
}

func renderTask(t model.Task, selected bool, now time.Time) string {
	prefix := "○"
	if t.Complete() {
		prefix = "✓"
	}

	parts := []string{prefix}
	if t.Priority != model.PriorityNone && t.Priority != 0 {
		parts = append(parts, theme.PriorityStyle(t.Priority).Render(priorityLabel(t.Priority)))
	}
	parts = append(parts, t.DisplayTitle())

	if t.DueDate != nil {
		parts = append(parts, theme.HelpStyle.Render(dueLabel(*t.DueDate, now)))
	}
	if t.Overdue(now) {
		parts = append(parts, theme.ErrorStyle.Render("overdue"))
	}

	line := strings.Join(parts, " ")
	if t.Complete() {
		line = theme.DoneStyle.Render(line)
	}

	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// dueLabel returns a human-friendly due date relative to now.
func dueLabel(due, now time.Time) string {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	dy, dm, dd := due.In(now.Location()).Date()
	day := time.Date(dy, dm, dd, 0, 0, 0, 0, now.Location())

	switch days := int(day.Sub(today).Hours() / 24); {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 1 && days < 7:
		return day.Format("Monday")
	default:
		return day.Format("Jan 02")
	}
}

// priorityLabel returns a short label for the given priority level.
func priorityLabel(p int) string {
	switch p {
	case model.PriorityHigh:
		return "!!!"
	case model.PriorityMedium:
		return "!!"
	case model.PriorityLow:
		return "!"
	default:
		return ""
	}
}

package taskform

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/theme"
)

// TaskCreatedMsg is sent when the user submits the form in create mode.
type TaskCreatedMsg struct {
	Task model.Task
}

// TaskUpdatedMsg is sent when the user submits the form in edit mode.
type TaskUpdatedMsg struct {
	Task model.Task
}

// CancelMsg is sent when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	priority    int
	dueDate     string
	status      string
	listID      string
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editTask model.Task
	lists    []model.TaskList
	now      func() time.Time
	width    int
	height   int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{priority: model.PriorityNone, status: model.TaskStatusOpen},
		now:    time.Now,
		width:  width,
		height: height,
	}
}

// SetLists sets the task lists offered by the list selector.
func (m *Model) SetLists(lists []model.TaskList) {
	m.lists = lists
}

// StartCreate initializes the form for creating a new task in listID.
func (m *Model) StartCreate(listID string) tea.Cmd {
	m.editMode = false
	m.editTask = model.Task{}
	m.fb.title = ""
	m.fb.description = ""
	m.fb.priority = model.PriorityNone
	m.fb.dueDate = ""
	m.fb.status = model.TaskStatusOpen
	m.fb.listID = listID
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task.
func (m *Model) StartEdit(task model.Task) tea.Cmd {
	m.editMode = true
	m.editTask = task
	m.fb.title = task.Title
	m.fb.description = task.Description
	m.fb.priority = task.Priority
	m.fb.status = task.Status
	m.fb.listID = task.ListID
	if task.DueDate != nil {
		m.fb.dueDate = task.DueDate.Format("2006-01-02")
	} else {
		m.fb.dueDate = ""
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Notes").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewSelect[int]().
			Title("Priority").
			Options(
				huh.NewOption("None", model.PriorityNone),
				huh.NewOption("Low", model.PriorityLow),
				huh.NewOption("Medium", model.PriorityMedium),
				huh.NewOption("High", model.PriorityHigh),
			).
			Value(&m.fb.priority),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD, today or tomorrow (optional)").
			Value(&m.fb.dueDate).
			Validate(func(s string) error {
				_, err := parseDueDate(s, m.now())
				return err
			}),
	}
	if f := m.listField(); f != nil {
		fields = append(fields, f)
	}
	if m.editMode {
		fields = append(fields,
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Open", model.TaskStatusOpen),
					huh.NewOption("Complete", model.TaskStatusComplete),
				).
				Value(&m.fb.status),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) listField() huh.Field {
	if len(m.lists) < 2 {
		return nil
	}
	opts := make([]huh.Option[string], len(m.lists))
	for i, l := range m.lists {
		opts[i] = huh.NewOption(l.Name, l.ID)
	}
	return huh.NewSelect[string]().
		Title("List").
		Options(opts...).
		Value(&m.fb.listID)
}

func (m Model) handleSubmit() tea.Cmd {
	task := m.editTask
	task.Title = strings.TrimSpace(m.fb.title)
	task.Description = m.fb.description
	task.Priority = m.fb.priority
	task.Status = m.fb.status
	task.ListID = m.fb.listID
	task.DueDate, _ = parseDueDate(m.fb.dueDate, m.now())

	if m.editMode {
		return func() tea.Msg { return TaskUpdatedMsg{Task: task} }
	}
	return func() tea.Msg { return TaskCreatedMsg{Task: task} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

// parseDueDate accepts an empty string, "today", "tomorrow" or a
// YYYY-MM-DD date. Dates are midnight in now's location.
func parseDueDate(s string, now time.Time) (*time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	y, mo, d := now.Date()
	today := time.Date(y, mo, d, 0, 0, 0, 0, now.Location())

	switch s {
	case "":
		return nil, nil
	case "today":
		return &today, nil
	case "tomorrow":
		t := today.AddDate(0, 0, 1)
		return &t, nil
	}

	t, err := time.ParseInLocation("2006-01-02", s, now.Location())
	if err != nil {
		return nil, fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return &t, nil
}

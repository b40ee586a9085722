package tasklist

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo/internal/keys"
	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/store"
	"github.com/nhle/todo/internal/theme"
)

// TasksLoadedMsg is sent when tasks have been loaded from the store.
type TasksLoadedMsg struct {
	ListID string
	Tasks  []model.Task
	Err    error
}

// sortModes defines the available sort modes cycled by Tab.
var sortModes = []string{
	"sort_order",
	"priority",
	"due_date",
	"title",
	"created_at",
}

// Model is the task list view of a single task list.
type Model struct {
	list          list.Model
	store         store.Store
	keys          *keys.KeyMap
	filter        store.TaskFilter
	listName      string
	tasks         []model.Task
	hidden        map[string]bool
	showCompleted bool
	sortIndex     int
	searchMode    bool
	searchInput   textinput.Model
	width         int
	height        int
}

// New creates a new task list model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.SetShowTitle(true)
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle
	l.SetStatusBarItemName("task", "tasks")

	si := textinput.New()
	si.Placeholder = "search tasks..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		store:       s,
		keys:        k,
		filter:      store.TaskFilter{SortBy: sortModes[0]},
		hidden:      make(map[string]bool),
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// SetList switches the view to the given task list and returns the command
// loading its tasks.
func (m *Model) SetList(l model.TaskList) tea.Cmd {
	id := l.ID
	m.filter.ListID = &id
	m.listName = l.Name
	m.list.Title = l.Name
	m.list.ResetSelected()
	return m.LoadTasks()
}

// ListID returns the shown task list, or "" before one is set.
func (m Model) ListID() string {
	if m.filter.ListID == nil {
		return ""
	}
	return *m.filter.ListID
}

// SetShowCompleted chooses whether completed tasks are listed.
func (m *Model) SetShowCompleted(show bool) {
	m.showCompleted = show
	m.refresh()
}

// ShowCompleted reports whether completed tasks are listed.
func (m Model) ShowCompleted() bool { return m.showCompleted }

// Searching reports whether the search input has focus.
func (m Model) Searching() bool { return m.searchMode }

// SortMode returns the current sort column.
func (m Model) SortMode() string { return m.filter.SortBy }

// Hide removes a task from the view without touching the store. It is used
// while a removal can still be undone.
func (m *Model) Hide(id string) {
	m.hidden[id] = true
	m.refresh()
}

// Unhide brings back a task hidden with Hide.
func (m *Model) Unhide(id string) {
	delete(m.hidden, id)
	m.refresh()
}

// Forget drops a hidden id once the task is gone from the store.
func (m *Model) Forget(id string) {
	delete(m.hidden, id)
}

// Hidden reports whether id is hidden pending removal.
func (m Model) Hidden(id string) bool { return m.hidden[id] }

// SelectedTask returns the task under the cursor.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// Tasks returns the tasks currently listed.
func (m Model) Tasks() []model.Task {
	items := m.list.Items()
	out := make([]model.Task, 0, len(items))
	for _, it := range items {
		if ti, ok := it.(TaskItem); ok {
			out = append(out, ti.Task)
		}
	}
	return out
}

// OpenCount returns the number of open, visible tasks.
func (m Model) OpenCount() int {
	n := 0
	for _, t := range m.tasks {
		if !t.Complete() && !m.hidden[t.ID] {
			n++
		}
	}
	return n
}

// Init returns a command that loads the tasks of the current list.
func (m Model) Init() tea.Cmd {
	return m.LoadTasks()
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TasksLoadedMsg:
		if msg.Err != nil || msg.ListID != m.ListID() {
			return m, nil
		}
		m.tasks = msg.Tasks
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		query := m.searchInput.Value()
		if query != "" {
			m.filter.Query = &query
		} else {
			m.filter.Query = nil
		}
		return m, m.LoadTasks()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filter.Query = nil
		return m, m.LoadTasks()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.ShowCompleted):
		m.showCompleted = !m.showCompleted
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.CycleSort):
		m.sortIndex = (m.sortIndex + 1) % len(sortModes)
		m.filter.SortBy = sortModes[m.sortIndex]
		return m, m.LoadTasks()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// refresh rebuilds the list items from the loaded tasks.
func (m *Model) refresh() {
	items := make([]list.Item, 0, len(m.tasks))
	for _, t := range m.tasks {
		if m.hidden[t.ID] {
			continue
		}
		if t.Complete() && !m.showCompleted {
			continue
		}
		items = append(items, TaskItem{Task: t})
	}
	m.list.SetItems(items)
}

// View renders the task list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no tasks are listed.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.filter.Query != nil {
		return style.Render("No matching tasks.\nPress / to change the search.")
	}
	if m.ListID() == "" {
		return style.Render("No task list selected.\n\nPress l to manage lists.")
	}

	return style.Render("No tasks.\n\nPress n to add one.")
}

// LoadTasks returns a tea.Cmd that queries the store with the current filter.
func (m Model) LoadTasks() tea.Cmd {
	if m.filter.ListID == nil {
		return nil
	}
	filter := m.filter
	s := m.store
	return func() tea.Msg {
		tasks, err := s.GetTasks(context.Background(), filter)
		return TasksLoadedMsg{ListID: *filter.ListID, Tasks: tasks, Err: err}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}

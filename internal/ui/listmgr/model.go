package listmgr

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo/internal/keys"
	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/store"
	"github.com/nhle/todo/internal/theme"
)

// CloseMsg signals the parent to close the list manager.
type CloseMsg struct{}

// SelectMsg asks the parent to show the tasks of List.
type SelectMsg struct {
	List model.TaskList
}

// RemoveMsg asks the parent to remove List. The parent decides when the
// removal is committed.
type RemoveMsg struct {
	List model.TaskList
}

// ChangedMsg signals that a list was created or updated.
type ChangedMsg struct {
	Err error
}

// ListsLoadedMsg carries the task lists read from the store.
type ListsLoadedMsg struct {
	Lists []model.TaskList
	Err   error
}

type mode int

const (
	modeList mode = iota
	modeForm
)

type formBindings struct {
	name  string
	color string
}

// Model is the Bubble Tea model for task list management.
type Model struct {
	mode        mode
	store       store.Store
	keys        *keys.KeyMap
	lists       []model.TaskList
	hidden      map[string]bool
	selectedIdx int
	editing     model.TaskList
	isNew       bool
	form        *huh.Form
	fb          *formBindings
	statusMsg   string
	width       int
	height      int
}

// New creates a new list manager model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	return Model{
		mode:   modeList,
		store:  s,
		keys:   k,
		hidden: make(map[string]bool),
		fb:     &formBindings{},
		width:  width, height: height,
	}
}

// Init loads lists from the store.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load returns a command reading all task lists.
func (m Model) Load() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		lists, err := s.GetTaskLists(context.Background())
		return ListsLoadedMsg{Lists: lists, Err: err}
	}
}

// SetLists replaces the lists shown.
func (m *Model) SetLists(lists []model.TaskList) {
	m.lists = lists
	m.clampSelection()
}

// Lists returns the lists that are not hidden pending removal.
func (m Model) Lists() []model.TaskList {
	out := make([]model.TaskList, 0, len(m.lists))
	for _, l := range m.lists {
		if !m.hidden[l.ID] {
			out = append(out, l)
		}
	}
	return out
}

// Hide removes a list from view while its removal can be undone.
func (m *Model) Hide(id string) {
	m.hidden[id] = true
	m.clampSelection()
}

// Unhide brings back a list hidden with Hide.
func (m *Model) Unhide(id string) {
	delete(m.hidden, id)
}

// Forget drops a hidden id once the list is gone from the store.
func (m *Model) Forget(id string) {
	delete(m.hidden, id)
}

// Editing reports whether the form is open.
func (m Model) Editing() bool { return m.mode == modeForm }

func (m *Model) clampSelection() {
	n := len(m.Lists())
	if m.selectedIdx >= n {
		m.selectedIdx = n - 1
	}
	if m.selectedIdx < 0 {
		m.selectedIdx = 0
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ListsLoadedMsg:
		if msg.Err == nil {
			m.SetLists(msg.Lists)
		}
		return m, nil

	case listSavedMsg:
		m.mode = modeList
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.statusMsg = "List saved"
		}
		err := msg.err
		return m, tea.Batch(m.Load(), func() tea.Msg { return ChangedMsg{Err: err} })

	case tea.KeyMsg:
		if m.mode == modeForm {
			return m.updateForm(msg)
		}
		return m.handleListKey(msg)
	}

	if m.mode == modeForm {
		return m.updateForm(msg)
	}
	return m, nil
}

type listSavedMsg struct{ err error }

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	visible := m.Lists()

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Down):
		if len(visible) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(visible)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(visible) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(visible) - 1
			}
		}
		return m, nil

	case msg.String() == "enter":
		if len(visible) == 0 {
			return m, nil
		}
		l := visible[m.selectedIdx]
		return m, func() tea.Msg { return SelectMsg{List: l} }

	case key.Matches(msg, m.keys.New):
		m.isNew = true
		m.editing = model.TaskList{}
		m.fb.name = ""
		m.fb.color = theme.ListColors[len(m.lists)%len(theme.ListColors)]
		m.statusMsg = ""
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()

	case msg.String() == "e":
		if len(visible) == 0 {
			return m, nil
		}
		l := visible[m.selectedIdx]
		m.isNew = false
		m.editing = l
		m.fb.name = l.Name
		m.fb.color = l.Color
		m.statusMsg = ""
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		if len(visible) == 0 {
			return m, nil
		}
		if len(visible) == 1 {
			m.statusMsg = "The last task list cannot be removed"
			return m, nil
		}
		l := visible[m.selectedIdx]
		return m, func() tea.Msg { return RemoveMsg{List: l} }
	}
	return m, nil
}

func (m Model) buildForm() *huh.Form {
	opts := make([]huh.Option[string], 0, len(theme.ListColors)+1)
	for _, c := range theme.ListColors {
		opts = append(opts, huh.NewOption(theme.ListColorStyle(c).Render("●")+" "+c, c))
	}
	if m.fb.color != "" && !contains(theme.ListColors, m.fb.color) {
		opts = append(opts, huh.NewOption(theme.ListColorStyle(m.fb.color).Render("●")+" "+m.fb.color, m.fb.color))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Task list name").
				Value(&m.fb.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Color").
				Options(opts...).
				Value(&m.fb.color),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m, m.saveList()
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

// View renders the list manager.
func (m Model) View() string {
	if m.mode == modeForm {
		if m.form == nil {
			return ""
		}
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).MarginBottom(1)
	b.WriteString(titleStyle.Render("Task Lists"))
	b.WriteString("\n\n")

	visible := m.Lists()
	if len(visible) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)
		b.WriteString(emptyStyle.Render("No task lists yet. Press 'n' to create one."))
	} else {
		for i, l := range visible {
			label := fmt.Sprintf("%s  %s", theme.ListColorStyle(l.Color).Render("●"), l.Name)
			if l.OpenCount > 0 {
				label += lipgloss.NewStyle().Foreground(theme.ColorGray).Render(fmt.Sprintf("  %d", l.OpenCount))
			}

			if i == m.selectedIdx {
				b.WriteString(theme.SelectedItemStyle.Render(label))
			} else {
				b.WriteString(theme.ListItemStyle.Render(label))
			}
			b.WriteString("\n")
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorYellow).Italic(true).Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorGray).Render(
		"enter open | n new | e edit | d remove | esc back",
	))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
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

func (m Model) saveList() tea.Cmd {
	s := m.store
	l := m.editing
	l.Name = strings.TrimSpace(m.fb.name)
	l.Color = m.fb.color
	isNew := m.isNew
	return func() tea.Msg {
		if isNew {
			_, err := s.CreateTaskList(context.Background(), l)
			return listSavedMsg{err: err}
		}
		return listSavedMsg{err: s.UpdateTaskList(context.Background(), l)}
	}
}

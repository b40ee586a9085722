package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo/internal/keys"
	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/theme"
)

// BackMsg signals the parent to navigate back to the task list.
type BackMsg struct{}

// EditMsg asks the parent to open the form for Task.
type EditMsg struct {
	Task model.Task
}

// RemoveMsg asks the parent to remove Task.
type RemoveMsg struct {
	Task model.Task
}

// Model is the task detail view component.
type Model struct {
	task     *model.Task
	listName string
	viewport viewport.Model
	keys     *keys.KeyMap
	now      func() time.Time
	width    int
	height   int
}

// New creates a new detail view model.
func New(keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     keys,
		now:      time.Now,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(msg, m.keys.Edit):
			if m.task != nil {
				t := *m.task
				return m, func() tea.Msg { return EditMsg{Task: t} }
			}

		case key.Matches(msg, m.keys.Delete):
			if m.task != nil {
				t := *m.task
				return m, func() tea.Msg { return RemoveMsg{Task: t} }
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.task == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No task selected")
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.task == nil {
		return ""
	}

	task := m.task
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(task.DisplayTitle()))

	statusBadge := theme.StatusStyle(task.Status).Render(task.Status)
	priBadge := theme.PriorityStyle(task.Priority).Render(
		model.PriorityLabel(task.Priority) + " priority",
	)
	sections = append(sections, lipgloss.JoinHorizontal(
		lipgloss.Top, statusBadge, "  ", priBadge,
	))
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	row := func(label, value string, style lipgloss.Style) {
		sections = append(sections, fmt.Sprintf("%-11s %s",
			metaStyle.Render(label+":"), style.Render(value)))
	}

	if m.listName != "" {
		row("List", m.listName, valStyle)
	}
	if task.DueDate != nil {
		style := valStyle
		if task.Overdue(m.now()) {
			style = theme.ErrorStyle
		}
		row("Due", task.DueDate.Format("Mon, Jan 2 2006"), style)
	}
	if !task.CreatedAt.IsZero() {
		row("Created", task.CreatedAt.Format("2006-01-02 15:04"), valStyle)
	}
	if task.CompletedAt != nil {
		row("Completed", task.CompletedAt.Format("2006-01-02 15:04"), valStyle)
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-4, 80), 0)))
	sections = append(sections, "", separator, "")

	notesHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	sections = append(sections, notesHeaderStyle.Render("Notes"))

	body := task.Description
	if strings.TrimSpace(body) == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No notes")
	}
	sections = append(sections, body)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetTask updates the task being displayed and re-renders the content.
func (m *Model) SetTask(task model.Task, listName string) {
	m.task = &task
	m.listName = listName
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// Task returns the task shown, if any.
func (m Model) Task() (model.Task, bool) {
	if m.task == nil {
		return model.Task{}, false
	}
	return *m.task, true
}

// Clear forgets the shown task.
func (m *Model) Clear() {
	m.task = nil
	m.viewport.SetContent("")
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.task != nil {
		m.viewport.SetContent(m.renderContent())
	}
}

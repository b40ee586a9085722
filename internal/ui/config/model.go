package config

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	appconfig "github.com/nhle/todo/internal/config"
	"github.com/nhle/todo/internal/notification"
	"github.com/nhle/todo/internal/theme"
)

// DoneMsg signals the settings view should close without changes.
type DoneMsg struct{}

// SavedMsg carries the edited configuration. Err is set when writing the
// file failed; Config is still the edited value.
type SavedMsg struct {
	Config *appconfig.AppConfig
	Err    error
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	timeoutMS     string
	showCompleted bool
	logLevel      string
}

// Model is the Bubble Tea model for the settings form.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	path    string
	current appconfig.AppConfig
	width   int
	height  int
}

// New creates a settings view that writes to path. An empty path keeps
// changes in memory only.
func New(path string, width, height int) Model {
	return Model{
		fb:     &formBindings{},
		path:   path,
		width:  width,
		height: height,
	}
}

// Start opens the form pre-filled from cfg.
func (m *Model) Start(cfg appconfig.AppConfig) tea.Cmd {
	m.current = cfg
	m.fb.timeoutMS = strconv.Itoa(cfg.Notifications.TimeoutMS)
	m.fb.showCompleted = cfg.Display.ShowCompleted
	m.fb.logLevel = cfg.Log.Level
	if m.fb.logLevel == "" {
		m.fb.logLevel = "info"
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the settings form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		return m, m.save()
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return DoneMsg{} }
	}

	return m, cmd
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Notification timeout (ms)").
				Description("How long a removal can be undone. 0 keeps it until dismissed.").
				Value(&m.fb.timeoutMS).
				Validate(validateTimeout),
			huh.NewConfirm().
				Title("Show completed tasks").
				Value(&m.fb.showCompleted),
			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error", "error"),
				).
				Value(&m.fb.logLevel),
		),
	).WithWidth(m.formWidth()).WithShowHelp(true)
}

func validateTimeout(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a number of milliseconds")
	}
	if n < 0 || n > int(notification.MaxTimeout.Milliseconds()) {
		return fmt.Errorf("must be between 0 and %d", notification.MaxTimeout.Milliseconds())
	}
	return nil
}

// apply returns the current configuration with the form values applied.
func (m Model) apply() *appconfig.AppConfig {
	cfg := m.current
	if n, err := strconv.Atoi(strings.TrimSpace(m.fb.timeoutMS)); err == nil {
		cfg.Notifications.TimeoutMS = n
	}
	cfg.Display.ShowCompleted = m.fb.showCompleted
	cfg.Log.Level = m.fb.logLevel
	return &cfg
}

func (m Model) save() tea.Cmd {
	cfg := m.apply()
	path := m.path
	return func() tea.Msg {
		if path == "" {
			return SavedMsg{Config: cfg}
		}
		return SavedMsg{Config: cfg, Err: appconfig.Save(path, cfg)}
	}
}

// View renders the settings form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	parts := []string{titleStyle.Render("Settings"), m.form.View()}
	if m.path != "" {
		parts = append(parts, theme.HelpStyle.Render("Saved to "+m.path))
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the settings view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(m.formWidth())
	}
}

func (m Model) formWidth() int {
	w := m.width - 8
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo/internal/theme"
)

// Command names understood by the application.
const (
	Quit          = "quit"
	Refresh       = "refresh"
	New           = "new"
	Lists         = "lists"
	Undo          = "undo"
	Dismiss       = "dismiss"
	DismissAll    = "dismiss-all"
	ShowCompleted = "completed"
	Settings      = "settings"
	Help          = "help"
)

// Names lists every command, used for completion.
var Names = []string{Quit, Refresh, New, Lists, Undo, Dismiss, DismissAll, ShowCompleted, Settings, Help}

var aliases = map[string]string{
	"q":    Quit,
	"exit": Quit,
	"r":    Refresh,
	"n":    New,
	"u":    Undo,
	"?":    Help,
}

// CommandMsg is emitted when the user executes a command.
type CommandMsg struct {
	Name string
	Args []string
}

// CloseMsg is emitted when the palette is dismissed without a command.
type CloseMsg struct{}

// Parse splits input into a command name and arguments, resolving aliases.
func Parse(input string) (CommandMsg, bool) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return CommandMsg{}, false
	}
	name := strings.ToLower(fields[0])
	if full, ok := aliases[name]; ok {
		name = full
	}
	return CommandMsg{Name: name, Args: fields[1:]}, true
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// NewModel creates a new command palette model.
func NewModel(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Names)
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			cmd, ok := Parse(m.input.Value())
			m.input.Reset()
			if !ok {
				return m, func() tea.Msg { return CloseMsg{} }
			}
			return m, func() tea.Msg { return cmd }
		case "esc":
			m.input.Reset()
			return m, func() tea.Msg { return CloseMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Command Palette")
	input := m.input.View()
	hint := theme.HelpStyle.Render(strings.Join(Names, "  "))

	content := lipgloss.JoinVertical(lipgloss.Left, title, input, hint)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Package notice is the Bubble Tea surface for in-app notifications. It
// owns a notification.Presenter and renders its current notification as a
// one-line banner above the status bar.
package notice

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/nhle/todo/internal/keys"
	"github.com/nhle/todo/internal/notification"
	"github.com/nhle/todo/internal/theme"
)

// Option configures a Model.
type Option func(*config)

type config struct {
	log  zerolog.Logger
	keys *keys.KeyMap
}

// WithLogger sets the logger passed to the Presenter.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithKeyMap sets the bindings shown next to the notification.
func WithKeyMap(k *keys.KeyMap) Option {
	return func(c *config) { c.keys = k }
}

// state lives on the heap so the Presenter's Surface stays valid across
// Bubble Tea model copies.
type state struct {
	presenter *notification.Presenter
	sched     *scheduler
	outbox    []tea.Cmd

	visible   bool
	text      string
	hasAction bool
	action    string
	ready     bool
	wantSpin  bool
}

func (st *state) post(cmd tea.Cmd) {
	if cmd != nil {
		st.outbox = append(st.outbox, cmd)
	}
}

// Reveal implements notification.Surface.
func (st *state) Reveal(n *notification.Notification) {
	st.visible = true
	st.text = n.Text()
	st.setSecondary(n)
	st.setReady(n.Ready())
}

// Sync implements notification.Surface.
func (st *state) Sync(n *notification.Notification, p notification.Property) {
	switch p {
	case notification.PropText:
		st.text = n.Text()
	case notification.PropHasSecondaryAction, notification.PropSecondaryActionName:
		st.setSecondary(n)
	case notification.PropReady:
		st.setReady(n.Ready())
	}
}

// Hide implements notification.Surface.
func (st *state) Hide() {
	st.visible = false
	st.text = ""
	st.hasAction = false
	st.action = ""
	st.ready = true
}

func (st *state) setReady(ready bool) {
	if st.ready && !ready {
		st.wantSpin = true
	}
	st.ready = ready
}

func (st *state) setSecondary(n *notification.Notification) {
	st.hasAction = n.HasSecondaryAction()
	st.action = ""
	if st.hasAction {
		st.action = n.SecondaryActionName()
	}
}

// Model is the Bubble Tea model for the notification banner.
type Model struct {
	st      *state
	spinner spinner.Model
	keys    *keys.KeyMap
	width   int
}

// New creates an idle notification surface.
func New(opts ...Option) Model {
	cfg := config{log: zerolog.Nop(), keys: keys.DefaultKeyMap()}
	for _, opt := range opts {
		opt(&cfg)
	}

	st := &state{ready: true}
	st.sched = newScheduler(st.post)
	st.presenter = notification.NewPresenter(st, st.sched, notification.WithLogger(cfg.log))

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	return Model{st: st, spinner: sp, keys: cfg.keys}
}

// Presenter returns the queue behind the surface.
func (m Model) Presenter() *notification.Presenter { return m.st.presenter }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles timer and spinner ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerFiredMsg:
		if msg.sched != m.st.sched {
			return m, nil
		}
		m.st.sched.fire(msg.id)
		return m, m.flush()

	case spinner.TickMsg:
		if m.st.ready || !m.st.visible {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Notify enqueues n.
func (m Model) Notify(n *notification.Notification) tea.Cmd {
	m.st.presenter.Notify(n)
	return m.flush()
}

// Cancel withdraws n without running its actions.
func (m Model) Cancel(n *notification.Notification) tea.Cmd {
	m.st.presenter.Cancel(n)
	return m.flush()
}

// Dismiss closes the current notification, running its primary action.
func (m Model) Dismiss() tea.Cmd {
	m.st.presenter.Dismiss()
	return m.flush()
}

// ActivateSecondary runs the current notification's secondary action.
func (m Model) ActivateSecondary() tea.Cmd {
	m.st.presenter.ActivateSecondary()
	return m.flush()
}

// DismissAll runs the primary action of everything pending.
func (m Model) DismissAll() tea.Cmd {
	m.st.presenter.DismissAll()
	return m.flush()
}

// Post queues cmd to be returned by the current Update. Actions use it to
// schedule I/O.
func (m Model) Post(cmd tea.Cmd) { m.st.post(cmd) }

// Visible reports whether a notification is shown.
func (m Model) Visible() bool { return m.st.visible }

// HasSecondary reports whether the shown notification offers a secondary
// action.
func (m Model) HasSecondary() bool { return m.st.visible && m.st.hasAction }

// Text returns the text of the shown notification.
func (m Model) Text() string { return m.st.text }

// SetWidth sets the rendering width.
func (m *Model) SetWidth(w int) { m.width = w }

// Height returns the number of lines View occupies.
func (m Model) Height() int {
	if !m.st.visible {
		return 0
	}
	return lipgloss.Height(m.View())
}

func (m Model) flush() tea.Cmd {
	cmds := m.st.outbox
	m.st.outbox = nil
	if m.st.wantSpin {
		m.st.wantSpin = false
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// View renders the banner, or nothing when idle.
func (m Model) View() string {
	if !m.st.visible {
		return ""
	}

	var b strings.Builder
	if !m.st.ready {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
	}
	b.WriteString(m.st.text)

	var hints []string
	if m.st.hasAction {
		label := m.st.action
		if label == "" {
			label = m.keys.Undo.Help().Desc
		}
		hints = append(hints, theme.NoticeActionStyle.Render(
			"["+m.keys.Undo.Help().Key+"] "+label))
	}
	hints = append(hints, theme.HelpStyle.Render("["+m.keys.Dismiss.Help().Key+"] close"))

	line := b.String() + "  " + strings.Join(hints, "  ")
	style := theme.NoticeStyle
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	return style.Render(line)
}

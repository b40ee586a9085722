package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nhle/todo/internal/config"
	"github.com/nhle/todo/internal/keys"
	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/notification"
	"github.com/nhle/todo/internal/store"
	"github.com/nhle/todo/internal/ui"
	"github.com/nhle/todo/internal/ui/command"
	configview "github.com/nhle/todo/internal/ui/config"
	"github.com/nhle/todo/internal/ui/detail"
	helpview "github.com/nhle/todo/internal/ui/help"
	"github.com/nhle/todo/internal/ui/listmgr"
	"github.com/nhle/todo/internal/ui/notice"
	"github.com/nhle/todo/internal/ui/taskform"
	"github.com/nhle/todo/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewTasks ViewState = iota
	ViewForm
	ViewLists
	ViewHelp
	ViewCommand
	ViewDetail
	ViewSettings
)

// Option configures a Model.
type Option func(*options)

type options struct {
	configPath string
}

// WithConfigPath sets the file the settings view writes to. Without it,
// settings changes last for the session only.
func WithConfigPath(path string) Option {
	return func(o *options) { o.configPath = path }
}

// Model is the root Bubble Tea model that manages view routing,
// layout, the notification banner and access to the persistence layer.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        store.Store
	cfg          *config.AppConfig
	log          zerolog.Logger
	keys         *keys.KeyMap

	taskList    tasklist.Model
	taskForm    taskform.Model
	listMgr     listmgr.Model
	helpView    helpview.Model
	commandView command.Model
	detailView  detail.Model
	configView  configview.Model
	notice      notice.Model

	// loading is the notification shown while task lists load.
	loading *notification.Notification
	ready   bool
}

// New creates a new root application model backed by s.
func New(s store.Store, cfg *config.AppConfig, log zerolog.Logger, opts ...Option) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	k := keys.DefaultKeyMap()

	tl := tasklist.New(s, k, 80, 24)
	tl.SetShowCompleted(cfg.Display.ShowCompleted)

	return Model{
		currentView: ViewTasks,
		layout:      ui.NewLayout(80, 24),
		store:       s,
		cfg:         cfg,
		log:         log,
		keys:        k,
		taskList:    tl,
		taskForm:    taskform.New(80, 24),
		listMgr:     listmgr.New(s, k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.NewModel(80, 24),
		detailView:  detail.New(k, 80, 24),
		configView:  configview.New(o.configPath, 80, 24),
		notice:      notice.New(notice.WithLogger(log), notice.WithKeyMap(k)),
		loading:     newLoadingNotification(),
	}
}

// Init shows the loading notification and starts reading task lists.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.notice.Notify(m.loading),
		m.listMgr.Load(),
	)
}

// Update handles messages and dispatches to the active view. The layout
// is recomputed afterwards since the notification banner may have
// appeared or gone.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncNoticeHeight()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.layout.NoticeHeight = m.notice.Height()
		m.ready = true
		m.resize()
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case listmgr.ListsLoadedMsg:
		return m.handleListsLoaded(msg)

	case tasklist.TasksLoadedMsg:
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		if msg.Err != nil {
			return m, tea.Batch(cmd, m.notifyError("Could not load tasks", msg.Err))
		}
		return m, cmd

	case listmgr.SelectMsg:
		m.currentView = ViewTasks
		cmd := m.taskList.SetList(msg.List)
		return m, cmd

	case listmgr.CloseMsg:
		m.currentView = ViewTasks
		return m, nil

	case listmgr.RemoveMsg:
		cmd := m.removeList(msg.List)
		return m, cmd

	case listmgr.ChangedMsg:
		if msg.Err != nil {
			return m, m.notifyError("Could not save the task list", msg.Err)
		}
		return m, nil

	case taskform.TaskCreatedMsg:
		m.currentView = ViewTasks
		return m, m.createTask(msg.Task)

	case taskform.TaskUpdatedMsg:
		m.currentView = ViewTasks
		return m, m.updateTask(msg.Task)

	case taskform.CancelMsg:
		m.currentView = ViewTasks
		return m, nil

	case taskSavedMsg:
		if msg.err != nil {
			return m, tea.Batch(m.taskList.LoadTasks(), m.notifyError("Could not save the task", msg.err))
		}
		return m, m.taskList.LoadTasks()

	case taskDeletedMsg:
		return m.handleTaskDeleted(msg)

	case taskRestoredMsg:
		m.taskList.Unhide(msg.id)
		m.log.Info().Str("task_id", msg.id).Msg("task removal undone")
		return m, nil

	case listDeletedMsg:
		return m.handleListDeleted(msg)

	case listRestoredMsg:
		m.listMgr.Unhide(msg.id)
		m.taskForm.SetLists(m.listMgr.Lists())
		m.log.Info().Str("list_id", msg.id).Msg("task list removal undone")
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(msg)

	case command.CloseMsg:
		m.currentView = m.previousView
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewTasks
		m.detailView.Clear()
		return m, nil

	case detail.EditMsg:
		m.currentView = ViewForm
		m.detailView.Clear()
		cmd := m.taskForm.StartEdit(msg.Task)
		return m, cmd

	case detail.RemoveMsg:
		m.currentView = ViewTasks
		m.detailView.Clear()
		cmd := m.removeTask(msg.Task)
		return m, cmd

	case configview.DoneMsg:
		m.currentView = ViewTasks
		return m, nil

	case configview.SavedMsg:
		return m.applySettings(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Timer and spinner ticks for the banner, then the active view.
	var noticeCmd tea.Cmd
	m.notice, noticeCmd = m.notice.Update(msg)
	next, cmd := m.updateActiveView(msg)
	return next, tea.Batch(noticeCmd, cmd)
}

// handleKey routes key presses. Views that capture text input get every
// key except ctrl+c.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	switch m.currentView {
	case ViewForm, ViewCommand, ViewSettings:
		return m.updateActiveView(msg)

	case ViewDetail:
		if cmd, ok := m.handleNoticeKey(msg); ok {
			return m, cmd
		}
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		return m.updateActiveView(msg)

	case ViewHelp:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Back):
			m.currentView = m.previousView
		}
		return m, nil

	case ViewLists:
		if m.listMgr.Editing() {
			return m.updateActiveView(msg)
		}
		if cmd, ok := m.handleNoticeKey(msg); ok {
			return m, cmd
		}
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		return m.updateActiveView(msg)
	}

	if m.taskList.Searching() {
		return m.updateActiveView(msg)
	}
	if cmd, ok := m.handleNoticeKey(msg); ok {
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		cmd := m.commandView.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.New):
		return m.startCreate()

	case key.Matches(msg, m.keys.Edit):
		task, ok := m.taskList.SelectedTask()
		if !ok {
			return m, nil
		}
		m.currentView = ViewForm
		cmd := m.taskForm.StartEdit(task)
		return m, cmd

	case key.Matches(msg, m.keys.Details):
		task, ok := m.taskList.SelectedTask()
		if !ok {
			return m, nil
		}
		m.openDetail(task)
		return m, nil

	case key.Matches(msg, m.keys.Settings):
		m.currentView = ViewSettings
		cmd := m.configView.Start(*m.cfg)
		return m, cmd

	case key.Matches(msg, m.keys.Toggle):
		task, ok := m.taskList.SelectedTask()
		if !ok {
			return m, nil
		}
		return m, m.toggleTask(task)

	case key.Matches(msg, m.keys.Delete):
		task, ok := m.taskList.SelectedTask()
		if !ok {
			return m, nil
		}
		cmd := m.removeTask(task)
		return m, cmd

	case key.Matches(msg, m.keys.Lists):
		m.currentView = ViewLists
		return m, nil

	case key.Matches(msg, m.keys.NextList):
		cmd := m.stepList(1)
		return m, cmd

	case key.Matches(msg, m.keys.PrevList):
		cmd := m.stepList(-1)
		return m, cmd

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.refresh()
		return m, cmd
	}

	return m.updateActiveView(msg)
}

// handleNoticeKey handles the banner keys while a notification is shown.
func (m Model) handleNoticeKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !m.notice.Visible() {
		return nil, false
	}
	switch {
	case key.Matches(msg, m.keys.Undo) && m.notice.HasSecondary():
		return m.notice.ActivateSecondary(), true
	case key.Matches(msg, m.keys.Dismiss):
		return m.notice.Dismiss(), true
	}
	return nil, false
}

// quit commits every pending notification before exiting.
func (m Model) quit() (Model, tea.Cmd) {
	m.log.Info().
		Int("pending", m.notice.Presenter().Len()).
		Bool("showing", m.notice.Visible()).
		Msg("quitting")
	return m, tea.Sequence(m.notice.DismissAll(), tea.Quit)
}

func (m Model) startCreate() (Model, tea.Cmd) {
	listID := m.taskList.ListID()
	if listID == "" {
		return m, nil
	}
	m.currentView = ViewForm
	cmd := m.taskForm.StartCreate(listID)
	return m, cmd
}

// refresh reloads task lists behind a loading notification.
func (m *Model) refresh() tea.Cmd {
	var cancel tea.Cmd
	if m.loading != nil {
		cancel = m.notice.Cancel(m.loading)
	}
	m.loading = newLoadingNotification()
	return tea.Batch(cancel, m.notice.Notify(m.loading), m.listMgr.Load())
}

func (m Model) handleListsLoaded(msg listmgr.ListsLoadedMsg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.loading != nil {
		cmds = append(cmds, m.notice.Cancel(m.loading))
		m.loading = nil
	}
	if msg.Err != nil {
		cmds = append(cmds, m.notifyError("Could not load task lists", msg.Err))
		return m, tea.Batch(cmds...)
	}

	m.listMgr.SetLists(msg.Lists)
	lists := m.listMgr.Lists()
	m.taskForm.SetLists(lists)
	m.log.Debug().Int("lists", len(lists)).Msg("task lists loaded")

	if l, ok := findList(lists, m.taskList.ListID()); ok {
		cmds = append(cmds, m.taskList.SetList(l))
	} else if len(lists) > 0 {
		cmds = append(cmds, m.taskList.SetList(lists[0]))
	}
	return m, tea.Batch(cmds...)
}

// stepList shows the list delta positions away from the current one.
func (m *Model) stepList(delta int) tea.Cmd {
	lists := m.listMgr.Lists()
	if len(lists) == 0 {
		return nil
	}
	idx := 0
	for i, l := range lists {
		if l.ID == m.taskList.ListID() {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(lists)) % len(lists)
	return m.taskList.SetList(lists[idx])
}

func findList(lists []model.TaskList, id string) (model.TaskList, bool) {
	for _, l := range lists {
		if l.ID == id {
			return l, true
		}
	}
	return model.TaskList{}, false
}

// resize propagates the layout to every sub-view.
func (m *Model) resize() {
	w := m.layout.ContentWidth()
	h := m.layout.ContentHeight()
	m.taskList.SetSize(w, h)
	m.taskForm.SetSize(w, h)
	m.listMgr.SetSize(w, h)
	m.helpView.SetSize(w, h)
	m.commandView.SetSize(w, h)
	m.detailView.SetSize(w, h)
	m.configView.SetSize(w, h)
	m.notice.SetWidth(w)
}

func (m *Model) syncNoticeHeight() {
	if !m.ready {
		return
	}
	if h := m.notice.Height(); h != m.layout.NoticeHeight {
		m.layout.NoticeHeight = h
		m.resize()
	}
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewForm:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewLists:
		m.listMgr, cmd = m.listMgr.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewSettings:
		m.configView, cmd = m.configView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.headerTitle(), m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, m.notice.View(), statusBar)
}

func (m Model) headerTitle() string {
	if l, ok := findList(m.listMgr.Lists(), m.taskList.ListID()); ok {
		return "To Do · " + l.Name
	}
	return "To Do"
}

func (m Model) headerStatus() string {
	return fmt.Sprintf("%d open", m.taskList.OpenCount())
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewTasks:
		return m.taskList.View()
	case ViewForm:
		return m.taskForm.View()
	case ViewLists:
		return m.listMgr.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewSettings:
		return m.configView.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewForm, ViewSettings:
		return "enter submit | esc cancel"
	case ViewDetail:
		return "e edit | d remove | j/k scroll | esc back"
	case ViewLists:
		return "n new | e edit | d remove | enter show | esc back"
	}
	if m.notice.HasSecondary() {
		return "u undo | X close | q quit"
	}
	return "q quit | ? help | n new | x done | d remove | i details | / search | l lists | s settings"
}

func (m *Model) openDetail(task model.Task) {
	name := ""
	if l, ok := findList(m.listMgr.Lists(), task.ListID); ok {
		name = l.Name
	}
	m.detailView.SetTask(task, name)
	m.currentView = ViewDetail
}

// applySettings adopts the configuration edited in the settings view.
func (m Model) applySettings(msg configview.SavedMsg) (Model, tea.Cmd) {
	m.currentView = ViewTasks
	m.cfg = msg.Config
	m.taskList.SetShowCompleted(msg.Config.Display.ShowCompleted)
	m.log.Info().
		Int("timeout_ms", msg.Config.Notifications.TimeoutMS).
		Bool("show_completed", msg.Config.Display.ShowCompleted).
		Msg("settings changed")
	if msg.Err != nil {
		return m, m.notifyError("Could not save settings", msg.Err)
	}
	return m, nil
}

package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todo/internal/ui/command"
)

// executeCommand handles a command from the command palette.
func (m Model) executeCommand(msg command.CommandMsg) (Model, tea.Cmd) {
	switch msg.Name {
	case command.Quit:
		return m.quit()
	case command.Refresh:
		cmd := m.refresh()
		return m, cmd
	case command.New:
		return m.startCreate()
	case command.Lists:
		m.currentView = ViewLists
		return m, nil
	case command.Undo:
		if !m.notice.HasSecondary() {
			return m, nil
		}
		return m, m.notice.ActivateSecondary()
	case command.Dismiss:
		return m, m.notice.Dismiss()
	case command.DismissAll:
		return m, m.notice.DismissAll()
	case command.ShowCompleted:
		m.taskList.SetShowCompleted(!m.taskList.ShowCompleted())
		return m, nil
	case command.Settings:
		m.currentView = ViewSettings
		cmd := m.configView.Start(*m.cfg)
		return m, cmd
	case command.Help:
		m.previousView = ViewTasks
		m.currentView = ViewHelp
		return m, nil
	default:
		m.log.Debug().Str("command", msg.Name).Msg("unknown command")
		return m, nil
	}
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/outbreak/internal/logging"
)

// sessionScreen is the screen a session is currently showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenViewer
	screenOutcomes
)

// SessionModel manages the full flow of one SSH session: menu, viewer and
// outcomes board, returning to the menu from either.
type SessionModel struct {
	opts     ViewerOptions
	width    int
	height   int
	screen   sessionScreen
	menu     MenuModel
	viewer   Model
	outcomes OutcomesModel
	notice   string
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts ViewerOptions, width, height int) SessionModel {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return SessionModel{
		opts:   opts,
		width:  width,
		height: height,
		menu:   NewMenuModel(width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenViewer:
		return m.updateViewer(msg)
	case screenOutcomes:
		return m.updateOutcomes(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsOutcomes():
		m.outcomes = NewOutcomesModel(m.opts.Store, m.width, m.height)
		m.screen = screenOutcomes
		return m, m.outcomes.Init()

	case m.menu.Selected() != nil:
		id := m.menu.Selected().ID
		ctrl, err := m.opts.Controller(id)
		if err != nil {
			m.opts.Logger.Warn("could not open scenario", "scenario", id, "error", err)
			m.notice = err.Error()
			m.menu = NewMenuModel(m.width, m.height)
			return m, nil
		}
		m.notice = ""
		m.viewer = NewModel(ctrl, m.width, m.height)
		m.screen = screenViewer
		return m, m.viewer.Init()
	}

	return m, cmd
}

// updateViewer handles updates when a scenario is being watched.
func (m SessionModel) updateViewer(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.viewer.Update(msg)
	if viewer, ok := next.(Model); ok {
		m.viewer = viewer
	}

	if m.viewer.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.viewer.BackToMenu() {
		// The menu drops the pending tick, which ends the viewer's tick loop.
		m.backToMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

// updateOutcomes handles updates when the outcomes board is open.
func (m SessionModel) updateOutcomes(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.outcomes.Update(msg)
	if outcomes, ok := next.(OutcomesModel); ok {
		m.outcomes = outcomes
	}

	if m.outcomes.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.outcomes.IsGoingBack() {
		m.backToMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m *SessionModel) backToMenu() {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.width, m.height)
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenViewer:
		return m.viewer.View()
	case screenOutcomes:
		return m.outcomes.View()
	}

	if m.notice != "" {
		return m.menu.View() + "\n" + centerText(helpStyle.Render(m.notice), m.width)
	}
	return m.menu.View()
}

// Screen names the active screen, for tests and logging.
func (m SessionModel) Screen() string {
	switch m.screen {
	case screenViewer:
		return "viewer"
	case screenOutcomes:
		return "outcomes"
	default:
		return "menu"
	}
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/outbreak/internal/core"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for watching one outbreak.
type Model struct {
	ctrl       *Controller
	screen     *core.Screen
	keys       ViewerKeyMap
	help       help.Model
	lastTick   time.Time
	quitting   bool
	backToMenu bool
}

// NewModel creates a viewer model of the given size around ctrl.
func NewModel(ctrl *Controller, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		ctrl:   ctrl,
		screen: core.NewScreen(width, height-1),
		keys:   DefaultViewerKeyMap(),
		help:   h,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.ctrl.TickRate())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height-1)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a := m.keys.Action(msg); a {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
		return m, nil
	case core.ActionScreenshot:
		m.saveScreenshot()
	default:
		m.ctrl.Apply(a)
	}
	return m, nil
}

// handleTick feeds the wall time since the previous tick to the controller
// and schedules the next tick at the current pace.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.lastTick.IsZero() {
		m.ctrl.Advance(now.Sub(m.lastTick))
	}
	m.lastTick = now
	return m, tickCmd(m.ctrl.TickRate())
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	DrawViewer(m.screen, m.ctrl)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".outbreak", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_t%d_%s.txt", m.ctrl.Scenario(), m.ctrl.TickCount(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, the run continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	DrawViewer(m.screen, m.ctrl)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Controller returns the model's controller.
func (m Model) Controller() *Controller {
	return m.ctrl
}

// Run starts a standalone viewer program. Back and quit both end it; the
// returned flag tells them apart.
func Run(ctrl *Controller, width, height int) (backToMenu bool, err error) {
	p := tea.NewProgram(
		standalone{NewModel(ctrl, width, height)},
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	s, ok := final.(standalone)
	if !ok {
		return false, nil
	}
	return s.BackToMenu(), nil
}

// standalone ends the program on back, where a session returns to its menu.
type standalone struct {
	Model
}

func (s standalone) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := s.Model.Update(msg)
	if m, ok := next.(Model); ok {
		s.Model = m
	}
	if s.BackToMenu() {
		return s, tea.Quit
	}
	return s, cmd
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/outbreak/internal/registry"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("202"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDescStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the scenario picker.
type MenuModel struct {
	items        []registry.ScenarioInfo
	cursor       int
	width        int
	height       int
	keys         MenuKeyMap
	help         help.Model
	quitting     bool
	selected     *registry.ScenarioInfo // Set when user picks a scenario
	openOutcomes bool
}

// NewMenuModel creates a new menu model over the registered scenarios.
func NewMenuModel(width, height int) MenuModel {
	h := help.New()
	h.Width = width
	return MenuModel{
		items:  registry.List(),
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
		help:   h,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
// Choosing an entry only records it; the owner decides what happens next.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case key.Matches(msg, m.keys.Outcomes):
		m.openOutcomes = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("O U T B R E A K"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a scenario", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-10s %s", item.ID, item.Title)
		if i == m.cursor {
			line = menuCursorStyle.Render(fmt.Sprintf("> %-10s %s", item.ID, item.Title))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(menuDescStyle.Render(m.items[m.cursor].Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen scenario, or nil if none was chosen.
func (m MenuModel) Selected() *registry.ScenarioInfo {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsOutcomes returns true if user requested the outcomes board.
func (m MenuModel) WantsOutcomes() bool {
	return m.openOutcomes
}

// Size returns the last known terminal size.
func (m MenuModel) Size() (width, height int) {
	return m.width, m.height
}

// centerText centers text within given width. Styled text is measured
// without its escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	ScenarioID    string
	Width, Height int
	WantsOutcomes bool
	Quit          bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(width, height int) (MenuResult, error) {
	p := tea.NewProgram(
		menuProgram{NewMenuModel(width, height)},
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return MenuResult{Width: width, Height: height}, err
	}

	mp, ok := final.(menuProgram)
	if !ok {
		return MenuResult{Width: width, Height: height, Quit: true}, nil
	}
	m := mp.MenuModel

	result := MenuResult{}
	result.Width, result.Height = m.Size()

	switch {
	case m.WantsOutcomes():
		result.WantsOutcomes = true
	case m.Selected() != nil:
		result.ScenarioID = m.Selected().ID
	default:
		result.Quit = true
	}
	return result, nil
}

// menuProgram ends the program as soon as the menu has an answer.
type menuProgram struct {
	MenuModel
}

func (p menuProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := p.MenuModel.Update(msg)
	if m, ok := next.(MenuModel); ok {
		p.MenuModel = m
	}
	if p.IsQuitting() || p.WantsOutcomes() || p.Selected() != nil {
		return p, tea.Quit
	}
	return p, cmd
}

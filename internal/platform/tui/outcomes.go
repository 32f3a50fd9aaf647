package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/outbreak/internal/registry"
	"github.com/vovakirdan/outbreak/internal/storage"
)

// Outcomes board layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show scenario sidebar
	sidebarWidth       = 20  // Width of scenario sidebar
	maxOutcomes        = 100 // Max outcomes to load per scenario
)

// OutcomesKeyMap defines the key bindings for the outcomes board.
type OutcomesKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	NextScenario key.Binding
	PrevScenario key.Binding
	Back         key.Binding
	Quit         key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k OutcomesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScenario, k.PrevScenario, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k OutcomesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextScenario, k.PrevScenario},
		{k.Back, k.Quit},
	}
}

// DefaultOutcomesKeyMap returns default key bindings.
func DefaultOutcomesKeyMap() OutcomesKeyMap {
	return OutcomesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextScenario: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next scenario"),
		),
		PrevScenario: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev scenario"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// OutcomesModel is the Bubble Tea model for browsing stored outcomes.
type OutcomesModel struct {
	scenarios   []registry.ScenarioInfo
	cursor      int
	store       *storage.Store
	outcomes    []storage.Outcome
	stats       *storage.ScenarioStats
	table       table.Model
	help        help.Model
	keys        OutcomesKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewOutcomesModel creates a new outcomes board. Runs stored without a
// preset are listed under a trailing "custom" entry.
func NewOutcomesModel(store *storage.Store, width, height int) OutcomesModel {
	scenarios := append(registry.List(), registry.ScenarioInfo{
		ID:    registry.CustomScenario,
		Title: "Custom",
	})

	h := help.New()
	h.ShowAll = false

	m := OutcomesModel{
		scenarios:   scenarios,
		store:       store,
		keys:        DefaultOutcomesKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.loadOutcomes()

	return m
}

// createTable creates a new table with columns sized to the terminal.
func (m *OutcomesModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 14},
		{Title: "Seed", Width: 20},
		{Title: "Ticks", Width: 7},
		{Title: "Peak", Width: 6},
		{Title: "Dead", Width: 6},
		{Title: "Recov", Width: 6},
		{Title: "CFR", Width: 7},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	// Narrow terminals lose the seed column first.
	if tableWidth < 80 {
		columns[1].Width = max(tableWidth-60, 6)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, stats, help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// current returns the selected scenario id.
func (m *OutcomesModel) current() string {
	if len(m.scenarios) == 0 {
		return ""
	}
	return m.scenarios[m.cursor].ID
}

// loadOutcomes loads rows and stats for the selected scenario.
func (m *OutcomesModel) loadOutcomes() {
	m.outcomes, m.stats = nil, nil
	if m.store != nil && len(m.scenarios) > 0 {
		if outcomes, err := m.store.OutcomesForScenario(m.current(), maxOutcomes); err == nil {
			m.outcomes = outcomes
		}
		if stats, err := m.store.GetScenarioStats(m.current()); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current outcomes.
func (m *OutcomesModel) updateTableRows() {
	m.table.SetRows(outcomeRows(m.outcomes))
	m.table.GotoTop()
}

// outcomeRows formats outcomes for the table.
func outcomeRows(outcomes []storage.Outcome) []table.Row {
	rows := make([]table.Row, len(outcomes))
	for i, o := range outcomes {
		rows[i] = table.Row{
			humanize.Time(o.CreatedAt),
			fmt.Sprintf("%d", o.Seed),
			humanize.Comma(int64(o.Ticks)),
			fmt.Sprintf("%d", o.PeakInfected),
			fmt.Sprintf("%d", o.Final.Dead),
			fmt.Sprintf("%d", o.Final.Recovered),
			fmt.Sprintf("%.1f%%", o.CaseFatality()*100),
		}
	}
	return rows
}

// Init initializes the outcomes model.
func (m OutcomesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the outcomes board.
func (m OutcomesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextScenario):
			if len(m.scenarios) > 0 {
				m.cursor = (m.cursor + 1) % len(m.scenarios)
				m.loadOutcomes()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevScenario):
			if len(m.scenarios) > 0 {
				m.cursor = (m.cursor - 1 + len(m.scenarios)) % len(m.scenarios)
				m.loadOutcomes()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the outcomes board.
func (m OutcomesModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "OUTCOMES"
	if len(m.scenarios) > 0 {
		title = fmt.Sprintf("OUTCOMES - %s", m.scenarios[m.cursor].Title)
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes all stored runs of the scenario.
func (m OutcomesModel) statsLine() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return "no runs recorded"
	}
	return fmt.Sprintf("%s runs  CFR %.1f%%  attack rate %.1f%%  avg peak %.0f  last %s",
		humanize.Comma(int64(m.stats.Runs)),
		m.stats.CaseFatality()*100,
		m.stats.AttackRate()*100,
		m.stats.AvgPeak,
		humanize.Time(m.stats.LastRun),
	)
}

// renderWideLayout renders the board with a scenario sidebar.
func (m OutcomesModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Scenarios\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, s := range m.scenarios {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := s.Title
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders the board with the scenario name above the table.
func (m OutcomesModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.scenarios) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.scenarios[m.cursor].Title), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m OutcomesModel) renderTableContent() string {
	if len(m.outcomes) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No outcomes recorded yet.\nWatch an outbreak to the end to record one!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m OutcomesModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m OutcomesModel) IsQuitting() bool {
	return m.quitting
}

// RunOutcomes runs the outcomes board.
// Returns true if user wants to go back to menu, false if quitting.
func RunOutcomes(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		outcomesProgram{NewOutcomesModel(store, width, height)},
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}

	op, ok := final.(outcomesProgram)
	if !ok {
		return false, nil
	}
	return op.IsGoingBack(), nil
}

// outcomesProgram ends the program on back or quit.
type outcomesProgram struct {
	OutcomesModel
}

func (p outcomesProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := p.OutcomesModel.Update(msg)
	if m, ok := next.(OutcomesModel); ok {
		p.OutcomesModel = m
	}
	if p.IsGoingBack() || p.IsQuitting() {
		return p, tea.Quit
	}
	return p, cmd
}

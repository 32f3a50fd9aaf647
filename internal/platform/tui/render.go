package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/outbreak/internal/core"
	"github.com/vovakirdan/outbreak/internal/epidemic"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("202")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:        lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDarkGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
}

// statusGlyph is how one status is drawn. Higher layers win when several
// agents share a cell.
type statusGlyph struct {
	r     rune
	color core.Color
	layer int
}

var statusGlyphs = map[epidemic.StatusKind]statusGlyph{
	epidemic.Dead:        {'×', core.ColorDarkGray, 0},
	epidemic.Recovered:   {'●', core.ColorBlue, 1},
	epidemic.Susceptible: {'○', core.ColorBrightWhite, 2},
	epidemic.Infected:    {'●', core.ColorRed, 3},
}

// Minimum screen size the viewer lays itself out in.
const (
	minViewerW = 32
	minViewerH = 10
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// worldRect is the framed area the population is drawn in: everything
// between the title row and the three HUD rows.
func worldRect(s *core.Screen) core.Rect {
	return core.NewRect(0, 1, s.Width(), s.Height()-4)
}

// DrawViewer renders the controller's current state into s.
func DrawViewer(s *core.Screen, c *Controller) {
	s.Clear()
	if s.Width() < minViewerW || s.Height() < minViewerH {
		s.DrawTextCentered(s.Height()/2, "terminal too small")
		return
	}

	drawTitle(s, c)

	frame := worldRect(s)
	s.DrawBox(frame, core.ColorGray)
	world := c.Config().Population
	drawPopulation(s, c.Snapshot(), core.Viewport{
		WorldW: world.Width,
		WorldH: world.Height,
		Cells:  frame.Inset(1),
	})

	counts := c.Counts()
	drawCounts(s, frame.Bottom(), counts)
	drawCountsBar(s, frame.Bottom()+1, counts)
	drawParams(s, frame.Bottom()+2, c)
}

func drawTitle(s *core.Screen, c *Controller) {
	s.DrawTextColor(1, 0, "OUTBREAK", core.ColorRed)
	s.DrawTextColor(10, 0, c.Scenario(), core.ColorGray)

	state := c.State().String()
	if c.Paused() {
		state = "paused"
	}
	right := fmt.Sprintf("tick %d  %s  %s", c.TickCount(), state, c.Pace())
	s.DrawText(s.Width()-len(right)-1, 0, right)
}

func drawPopulation(s *core.Screen, pop epidemic.Population, vp core.Viewport) {
	layers := make(map[[2]int]int, len(pop))
	for _, a := range pop {
		x, y, ok := vp.Project(a.Pos.X, a.Pos.Y)
		if !ok {
			continue
		}
		g := statusGlyphs[a.Status.Kind]
		cell := [2]int{x, y}
		if prev, drawn := layers[cell]; drawn && prev > g.layer {
			continue
		}
		layers[cell] = g.layer
		s.SetCell(x, y, g.r, g.color)
	}
}

func drawCounts(s *core.Screen, y int, counts epidemic.Counts) {
	x := 1
	for _, part := range []struct {
		label string
		n     int
		kind  epidemic.StatusKind
	}{
		{"Susceptible", counts.Susceptible, epidemic.Susceptible},
		{"Infected", counts.Infected, epidemic.Infected},
		{"Recovered", counts.Recovered, epidemic.Recovered},
		{"Dead", counts.Dead, epidemic.Dead},
	} {
		g := statusGlyphs[part.kind]
		text := fmt.Sprintf("%c %s %d", g.r, part.label, part.n)
		s.DrawTextColor(x, y, text, g.color)
		x += len([]rune(text)) + 3
	}
}

// drawCountsBar draws a stacked bar of the population by status. Segment
// ends are rounded from cumulative totals so the bar always fills the row.
func drawCountsBar(s *core.Screen, y int, counts epidemic.Counts) {
	width := s.Width() - 2
	total := counts.Total()
	if total == 0 || width <= 0 {
		return
	}
	x, cum := 1, 0
	for _, part := range []struct {
		n    int
		kind epidemic.StatusKind
	}{
		{counts.Infected, epidemic.Infected},
		{counts.Susceptible, epidemic.Susceptible},
		{counts.Recovered, epidemic.Recovered},
		{counts.Dead, epidemic.Dead},
	} {
		cum += part.n
		end := 1 + cum*width/total
		s.DrawHBar(x, y, end-x, '█', statusGlyphs[part.kind].color)
		x = end
	}
}

func drawParams(s *core.Screen, y int, c *Controller) {
	idle := c.State() == epidemic.StateIdle
	x := 1
	for _, p := range c.Params() {
		color := core.ColorGray
		marker := " "
		if idle {
			color = core.ColorDefault
			if p.Selected {
				color = core.ColorYellow
				marker = ">"
			}
		}
		text := fmt.Sprintf("%s%s %s", marker, p.Label, p.Value)
		s.DrawTextColor(x, y, text, color)
		x += len([]rune(text)) + 2
	}
	if n := c.Notice(); n != "" {
		s.DrawTextColor(max(x, s.Width()-len(n)-1), y, n, core.ColorCyan)
	}
}

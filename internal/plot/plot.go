// Package plot renders epidemic curves to PNG.
package plot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/vovakirdan/outbreak/internal/runner"
)

// Status colours, shared with the terminal viewer's palette.
var (
	ColorSusceptible = drawing.Color{R: 90, G: 160, B: 230, A: 255}
	ColorInfected    = drawing.Color{R: 230, G: 70, B: 60, A: 255}
	ColorRecovered   = drawing.Color{R: 90, G: 200, B: 110, A: 255}
	ColorDead        = drawing.Color{R: 120, G: 120, B: 120, A: 255}
)

// Options control the chart.
type Options struct {
	Title  string
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 1024
	}
	if o.Height <= 0 {
		o.Height = 512
	}
	return o
}

// Curve renders one run's S/I/R/D counts over ticks as a PNG.
func Curve(w io.Writer, curve []runner.Sample, opts Options) error {
	if len(curve) < 2 {
		return fmt.Errorf("plot: need at least 2 samples, got %d", len(curve))
	}
	opts = opts.withDefaults()

	xs := make([]float64, len(curve))
	s := make([]float64, len(curve))
	i := make([]float64, len(curve))
	r := make([]float64, len(curve))
	d := make([]float64, len(curve))
	for n, sample := range curve {
		xs[n] = float64(sample.Tick)
		s[n] = float64(sample.Counts.Susceptible)
		i[n] = float64(sample.Counts.Infected)
		r[n] = float64(sample.Counts.Recovered)
		d[n] = float64(sample.Counts.Dead)
	}

	series := func(name string, ys []float64, c drawing.Color) chart.ContinuousSeries {
		return chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: c, StrokeWidth: 3.0},
		}
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "tick",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "agents",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		Series: []chart.Series{
			series("Susceptible", s, ColorSusceptible),
			series("Infected", i, ColorInfected),
			series("Recovered", r, ColorRecovered),
			series("Dead", d, ColorDead),
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("plot: cannot render chart: %w", err)
	}
	return nil
}

// CurveFile renders to path, creating parent directories.
func CurveFile(path string, curve []runner.Sample, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("plot: cannot create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plot: cannot create %s: %w", path, err)
	}
	if err := Curve(f, curve, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/outbreak/internal/plot"
	"github.com/vovakirdan/outbreak/internal/registry"
	"github.com/vovakirdan/outbreak/internal/runner"
)

var (
	flagPlotOut    string
	flagPlotWidth  int
	flagPlotHeight int
)

var plotCmd = &cobra.Command{
	Use:   "plot [scenario]",
	Short: "Render the epidemic curve of one run to PNG",
	Long: `Run one outbreak headless and draw susceptible, infected, recovered
and dead counts per tick. The curve is kept in memory only; it is never
stored in the database.

Examples:
  outbreak plot
  outbreak plot measles --seed 3 --out measles.png
  outbreak plot lockdown --width 1600 --height 800`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlot,
}

func init() {
	plotCmd.Flags().StringVarP(&flagPlotOut, "out", "o", "", "Output PNG path (default <scenario>_curve.png)")
	plotCmd.Flags().IntVar(&flagPlotWidth, "width", 1024, "Image width in pixels")
	plotCmd.Flags().IntVar(&flagPlotHeight, "height", 512, "Image height in pixels")
	plotCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 0, "Tick cap (0 = config viewer.max_ticks)")
}

func runPlot(_ *cobra.Command, args []string) {
	scenario := scenarioArg(args)
	cfg := resolveConfig(scenario)
	logger := newLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := runner.Run(ctx, cfg, runner.Options{
		Scenario: scenario,
		Seed:     flagSeed,
		MaxTicks: flagMaxTicks,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	name := scenario
	if name == "" {
		name = registry.CustomScenario
	}
	out := flagPlotOut
	if out == "" {
		out = name + "_curve.png"
	}

	err = plot.CurveFile(out, res.Curve, plot.Options{
		Title:  fmt.Sprintf("%s, seed %d", name, res.Seed),
		Width:  flagPlotWidth,
		Height: flagPlotHeight,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("curve written", "path", out, "ticks", res.Ticks, "peak", res.PeakInfected)
	fmt.Println(out)
}

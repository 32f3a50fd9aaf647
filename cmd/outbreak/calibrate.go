package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/outbreak/internal/registry"
	"github.com/vovakirdan/outbreak/internal/runner"
)

var (
	flagRuns    int
	flagWorkers int
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate [scenario]",
	Short: "Sweep many seeds and compare the case fatality ratio",
	Long: `Run the scenario once per seed (--seed, --seed+1, ...) on a pool of
workers and compare the pooled case fatality ratio with the value the
per-tick death hazard predicts.

Examples:
  outbreak calibrate
  outbreak calibrate plague --runs 500
  outbreak calibrate flu --seed 100 --workers 4`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCalibrate,
}

func init() {
	calibrateCmd.Flags().IntVar(&flagRuns, "runs", 100, "Number of seeds to run")
	calibrateCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Parallel runs (0 = number of CPUs)")
	calibrateCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 0, "Tick cap per run (0 = config viewer.max_ticks)")
}

func runCalibrate(_ *cobra.Command, args []string) {
	scenario := scenarioArg(args)
	cfg := resolveConfig(scenario)
	logger := newLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := runner.Sweep(ctx, cfg, runner.SweepOptions{
		Scenario: scenario,
		Runs:     flagRuns,
		BaseSeed: flagSeed,
		MaxTicks: flagMaxTicks,
		Workers:  flagWorkers,
		Logger:   logger,
		Progress: func(done, total int) {
			if done%max(total/10, 1) == 0 || done == total {
				logger.Debug("sweep progress", "done", done, "total", total)
			}
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	name := scenario
	if name == "" {
		name = registry.CustomScenario
	}
	fmt.Printf("Calibration - %s (%s runs)\n", name, humanize.Comma(int64(len(report.Results))))
	fmt.Println()
	fmt.Printf("  %-16s %s\n", "Infections", humanize.Comma(int64(report.Infections)))
	fmt.Printf("  %-16s %s\n", "Deaths", humanize.Comma(int64(report.Deaths)))
	fmt.Printf("  %-16s %s\n", "Recoveries", humanize.Comma(int64(report.Recoveries)))
	fmt.Printf("  %-16s %.2f%%\n", "Attack rate", report.MeanAttackRate*100)
	fmt.Printf("  %-16s %.1f\n", "Mean ticks", report.MeanTicks)
	fmt.Println()
	fmt.Printf("  %-16s %.2f%% ± %.2f%%\n", "Fatality", report.CaseFatality*100, report.StdErr*100)
	fmt.Printf("  %-16s %.2f%%\n", "Expected", report.ExpectedCFR*100)
	if report.StdErr > 0 {
		z := (report.CaseFatality - report.ExpectedCFR) / report.StdErr
		verdict := "within"
		if math.Abs(z) > 3 {
			verdict = "OUTSIDE"
		}
		fmt.Printf("  %-16s %+.2f (%s 3 standard errors)\n", "z", z, verdict)
	}
}

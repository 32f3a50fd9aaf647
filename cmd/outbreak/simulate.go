package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/outbreak/internal/registry"
	"github.com/vovakirdan/outbreak/internal/runner"
)

var (
	flagMaxTicks int
	flagNoSave   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [scenario]",
	Short: "Run an outbreak headless and print the final tallies",
	Long: `Run one outbreak without a terminal viewer until nobody is infected
or the tick cap is reached, then print the final counts. The outcome is
recorded in the database unless --no-save is given.

Examples:
  outbreak simulate
  outbreak simulate measles --seed 7
  outbreak simulate plague --max-ticks 2000 --no-save`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 0, "Tick cap (0 = config viewer.max_ticks)")
	simulateCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the outcome")
}

func runSimulate(_ *cobra.Command, args []string) {
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

	printResult(res)

	if flagNoSave {
		return
	}
	store := openStore(logger)
	if store == nil {
		return
	}
	defer store.Close()

	o := res.Outcome()
	if o.Scenario == "" {
		o.Scenario = registry.CustomScenario
	}
	saved, err := store.SaveOutcome(o)
	if err != nil {
		logger.Warn("could not save outcome", "error", err)
		return
	}
	fmt.Printf("\nRecorded as %s\n", saved.RunID)
}

func printResult(res runner.Result) {
	name := res.Scenario
	if name == "" {
		name = registry.CustomScenario
	}
	p := res.Params

	fmt.Printf("Outbreak - %s (seed %d)\n", name, res.Seed)
	fmt.Printf("  mortality %g%%  virality %g%%  length %d ticks  distancing %g%%\n",
		p.Mortality, p.Virality, p.LengthOfInfection, p.SocialDistancing)
	fmt.Println()

	end := "died out"
	if !res.Extinct {
		end = "still spreading (tick cap reached)"
	}
	fmt.Printf("  %-12s %s ticks, %s\n", "Duration", humanize.Comma(int64(res.Ticks)), end)
	fmt.Printf("  %-12s %s\n", "Population", humanize.Comma(int64(res.Population)))
	fmt.Printf("  %-12s %d at tick %d\n", "Peak", res.PeakInfected, res.PeakTick)
	fmt.Printf("  %-12s %d\n", "Susceptible", res.Final.Susceptible)
	fmt.Printf("  %-12s %d\n", "Infected", res.Final.Infected)
	fmt.Printf("  %-12s %d\n", "Recovered", res.Final.Recovered)
	fmt.Printf("  %-12s %d\n", "Dead", res.Final.Dead)

	o := res.Outcome()
	fmt.Printf("  %-12s %.1f%%\n", "Attack rate", o.AttackRate()*100)
	fmt.Printf("  %-12s %.1f%%\n", "Fatality", o.CaseFatality()*100)
}

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/outbreak/internal/platform/tui"
	"github.com/vovakirdan/outbreak/internal/storage"
)

var (
	flagOutcomesLimit int
	flagOutcomesClear bool
	flagOutcomesBoard bool
)

var outcomesCmd = &cobra.Command{
	Use:   "outcomes [scenario]",
	Short: "Show recorded outcomes",
	Long: `Display the most recent recorded runs, for one scenario or for all,
followed by per-scenario statistics.

Examples:
  outbreak outcomes
  outbreak outcomes flu --limit 50
  outbreak outcomes --board
  outbreak outcomes plague --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runOutcomes,
}

func init() {
	outcomesCmd.Flags().IntVar(&flagOutcomesLimit, "limit", 10, "Number of runs to show")
	outcomesCmd.Flags().BoolVar(&flagOutcomesClear, "clear", false, "Delete the scenario's recorded outcomes")
	outcomesCmd.Flags().BoolVar(&flagOutcomesBoard, "board", false, "Open the interactive outcomes board")
}

func runOutcomes(_ *cobra.Command, args []string) {
	scenario := ""
	if len(args) > 0 {
		scenario = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening outcomes database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagOutcomesBoard {
		width, height := terminalSize()
		if _, err := tui.RunOutcomes(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if flagOutcomesClear {
		if scenario == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a scenario")
			return
		}
		if err := store.ClearOutcomes(scenario); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared outcomes for %s\n", scenario)
		return
	}

	var outcomes []storage.Outcome
	if scenario == "" {
		outcomes, err = store.RecentOutcomes(flagOutcomesLimit)
	} else {
		outcomes, err = store.OutcomesForScenario(scenario, flagOutcomesLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving outcomes: %v\n", err)
		return
	}

	if len(outcomes) == 0 {
		fmt.Println("No outcomes recorded yet.")
		fmt.Println()
		fmt.Println("Run 'outbreak simulate' or watch a run to the end to record one.")
		return
	}

	fmt.Printf("  %-10s  %-14s  %8s  %6s  %6s  %6s  %7s  %s\n",
		"Scenario", "When", "Ticks", "Peak", "Dead", "Recov", "CFR", "Run")
	fmt.Printf("  %-10s  %-14s  %8s  %6s  %6s  %6s  %7s  %s\n",
		"--------", "----", "-----", "----", "----", "-----", "---", "---")
	for _, o := range outcomes {
		fmt.Printf("  %-10s  %-14s  %8s  %6d  %6d  %6d  %6.1f%%  %s\n",
			o.Scenario,
			humanize.Time(o.CreatedAt),
			humanize.Comma(int64(o.Ticks)),
			o.PeakInfected,
			o.Final.Dead,
			o.Final.Recovered,
			o.CaseFatality()*100,
			o.RunID,
		)
	}

	all, err := store.GetAllScenarioStats()
	if err != nil || len(all) == 0 {
		return
	}
	ids := make([]string, 0, len(all))
	for id := range all {
		if scenario == "" || id == scenario {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	fmt.Println()
	for _, id := range ids {
		st := all[id]
		fmt.Printf("%s: %s runs, fatality %.1f%%, attack rate %.1f%%, avg %.0f ticks, last %s\n",
			id,
			humanize.Comma(int64(st.Runs)),
			st.CaseFatality()*100,
			st.AttackRate()*100,
			st.AvgTicks,
			humanize.Time(st.LastRun),
		)
	}
}

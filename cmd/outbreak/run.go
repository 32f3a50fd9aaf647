package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/outbreak/internal/platform/tui"
)

var runCmd = &cobra.Command{
	Use:   "run [scenario]",
	Short: "Watch an outbreak",
	Long: `Start the viewer for the given scenario, or for the loaded
configuration when no scenario is named.

Parameters can be changed while the population is idle. Once the run is
started they are locked until restart.

Controls:
  Enter        - Start the outbreak
  Space/P      - Pause/resume
  R            - New population (back to idle)
  Tab/Up/Down  - Select parameter (idle only)
  +/-/Left/Right - Change parameter (idle only)
  F            - Cycle pace (slow, normal, fast)
  Ctrl+S       - Save a screenshot to ~/.outbreak/screenshots
  Q/Ctrl+C     - Quit

Examples:
  outbreak run
  outbreak run measles
  outbreak run lockdown --tps 30
  outbreak run --config ./my-outbreak.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func runRun(_ *cobra.Command, args []string) {
	scenario := scenarioArg(args)
	logger, closeLog := viewerLogger()
	defer closeLog()

	store := openStore(logger)
	opts := viewerOptions(store, logger)

	ctrl, err := opts.Controller(scenario)
	if err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := terminalSize()
	_, runErr := tui.Run(ctrl, width, height)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", runErr)
		os.Exit(1)
	}
}

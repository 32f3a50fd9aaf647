package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/outbreak/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start outbreak with a scenario picker menu",
	Long: `Start outbreak in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to open a scenario.
Leaving the viewer with Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Open scenario
  Tab/O        - Recorded outcomes
  Q            - Quit

Examples:
  outbreak menu
  outbreak menu --tps 30
  outbreak menu --db ./outbreak.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := viewerLogger()
	defer closeLog()
	store := openStore(logger)
	opts := viewerOptions(store, logger)

	width, height := terminalSize()

	for {
		menuResult, err := tui.RunMenu(width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		width, height = menuResult.Width, menuResult.Height

		if menuResult.Quit {
			break
		}

		if menuResult.WantsOutcomes {
			goBack, obErr := tui.RunOutcomes(store, width, height)
			if obErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", obErr)
			}
			if goBack {
				continue
			}
			break
		}

		ctrl, err := opts.Controller(menuResult.ScenarioID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		goBack, err := tui.Run(ctrl, width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		}
		if !goBack {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}

// outbreak is a terminal epidemic simulator: a population of agents wanders
// a shared space while an infection spreads by proximity.
//
// Usage:
//
//	outbreak list                  - List scenario presets
//	outbreak run [scenario]        - Watch an outbreak in the terminal
//	outbreak menu                  - Pick scenarios interactively
//	outbreak simulate [scenario]   - Run headless to extinction and print the tallies
//	outbreak calibrate [scenario]  - Sweep seeds and compare the case fatality ratio
//	outbreak plot [scenario]       - Render the epidemic curve of one run to PNG
//	outbreak outcomes [scenario]   - Show recorded outcomes
//	outbreak serve                 - Start SSH server for remote viewing
//
// Global flags:
//
//	--tps <rate>        - Ticks per second in the viewer (default: config pace)
//	--seed <value>      - RNG seed for reproducible runs
//	--db <path>         - Database path (default: ~/.outbreak/outbreak.db)
//	--config <path>     - Custom outbreak YAML
//	--log-level <name>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/outbreak/internal/config"
	"github.com/vovakirdan/outbreak/internal/logging"
	"github.com/vovakirdan/outbreak/internal/platform/tui"
	"github.com/vovakirdan/outbreak/internal/registry"
	"github.com/vovakirdan/outbreak/internal/storage"

	// Import scenarios to register them
	_ "github.com/vovakirdan/outbreak/internal/scenarios"
)

var (
	// Global flags
	flagTPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "outbreak",
	Short: "Outbreak - watch an epidemic spread in your terminal",
	Long: `Outbreak simulates an infection spreading through a population of
wandering agents. Each tick agents move, infected agents may pass the
disease to whoever they touch, and the sick either recover or die.

Available commands:
  list       - Show scenario presets
  run        - Watch an outbreak
  menu       - Interactive scenario picker
  simulate   - Headless run with final tallies
  calibrate  - Multi-seed sweep of the case fatality ratio
  plot       - Epidemic curve as PNG
  outcomes   - Recorded outcomes
  serve      - Start SSH server for remote viewing

Examples:
  outbreak list
  outbreak run measles
  outbreak simulate flu --seed 7
  outbreak calibrate plague --runs 200
  outbreak serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagTPS, "tps", 0, "Viewer ticks per second (0 = config pace)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.outbreak/outbreak.db", "Path to outcomes database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom outbreak config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(calibrateCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(outcomesCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger returns the CLI logger at the --log-level.
func newLogger() *log.Logger {
	return logging.Stderr("outbreak", flagLogLevel)
}

// viewerLogger returns a logger for the local viewer. The terminal belongs
// to Bubble Tea while it runs, so records go to ~/.outbreak/outbreak.log.
// The returned func closes the file.
func viewerLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return logging.Discard(), func() {}
	}
	dir := filepath.Join(home, ".outbreak")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return logging.Discard(), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "outbreak.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return logging.Discard(), func() {}
	}
	logger, err := logging.New(f, "outbreak", flagLogLevel)
	if err != nil {
		logger, _ = logging.New(f, "outbreak", "")
	}
	return logger, func() { f.Close() }
}

// scenarioArg returns the optional scenario argument, exiting on an
// unknown id.
func scenarioArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	id := args[0]
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'outbreak list' to see available scenarios.")
		os.Exit(1)
	}
	return id
}

// resolveConfig loads --config and applies the scenario, exiting on error.
func resolveConfig(scenario string) config.OutbreakConfig {
	cfg, err := registry.Resolve(scenario, flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openStore opens the outcomes database. Viewing works without it, so a
// failure is only a warning.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open outcomes database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// viewerOptions collects the global flags every viewer shares.
func viewerOptions(store *storage.Store, logger *log.Logger) tui.ViewerOptions {
	return tui.ViewerOptions{
		ConfigPath: flagConfig,
		Seed:       flagSeed,
		TickRate:   flagTPS,
		Store:      store,
		Logger:     logger,
	}
}

// terminalSize returns the size of stdout, or 80x24 if it is not a terminal.
func terminalSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// engines is the command-line harness of the engines mod: it simulates
// engine tile entities headless, previews their animation rig in the
// terminal, serves that preview over SSH and streams telemetry to
// websocket observers.
//
// Usage:
//
//	engines list                      - List engine kinds
//	engines simulate <kind>           - Run a bench headless and print telemetry
//	engines geometry <side> [stage]   - Print the rig layout of a side
//	engines preview [kind]            - Live preview in the terminal
//	engines serve                     - Start the SSH preview server
//	engines observe [kind...]         - Run benches behind a websocket observer
//	engines history [kind]            - Show recorded runs
//	engines snapshot save|load <file> - Write or restore world snapshots
//
// Global flags:
//
//	--config <path>   - Engine configuration YAML
//	--db <path>       - History database (default from config)
//	--tick-rate <hz>  - Override the configured tick rate
//	--verbose         - Debug logging
package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bc-engines/internal/config"
	"github.com/vovakirdan/bc-engines/internal/sandbox"
	"github.com/vovakirdan/bc-engines/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagTickRate int
	flagVerbose  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "engines",
	Short: "Engine tile entities: simulation, preview and telemetry",
	Long: `engines drives the engine tile entities of the mod against an
in-memory host: heat and power simulation, piston travel, energy delivery
and the multi-part animation rig.

Available commands:
  list      - Show all engine kinds
  simulate  - Run an engine bench headless
  geometry  - Print the rig layout for a connection side
  preview   - Live terminal preview
  serve     - SSH preview server
  observe   - Websocket telemetry server
  history   - Recorded runs
  snapshot  - Save and load world snapshots

Examples:
  engines list
  engines simulate iron --ticks 400 --fuel 200
  engines geometry 4 orange
  engines preview redstone --side 5
  engines serve
  engines history creative`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to history database (default from config)")
	rootCmd.PersistentFlags().IntVar(&flagTickRate, "tick-rate", 0, "Ticks per second (0 = from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(geometryCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(observeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "engines",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig loads the configuration and applies the global overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if flagTickRate > 0 {
		cfg.Runtime.TickRate = flagTickRate
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	return cfg
}

func newSandbox(cfg config.Config, logger *log.Logger) *sandbox.Sandbox {
	sb, err := sandbox.New(cfg, logger)
	if err != nil {
		fail("%v", err)
	}
	return sb
}

func openStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fail("opening history database: %v", err)
	}
	return store
}

// requireKind exits unless kind is installed in the sandbox.
func requireKind(sb *sandbox.Sandbox, kind string) {
	if _, ok := sb.Mod.Engine(kind); !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown engine kind %q\n", kind)
		fmt.Fprintln(os.Stderr, "Run 'engines list' to see available kinds.")
		os.Exit(1)
	}
}

// splitAddr splits host:port into its parts.
func splitAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port %q", portStr)
	}
	return host, port, nil
}

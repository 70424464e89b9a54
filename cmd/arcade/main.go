// arcade is a terminal arcade built on a generic 2D engine: a handful of
// descriptor-driven games, a headless simulator and replay tooling.
//
// Usage:
//
//	arcade list                      - List available games
//	arcade play <game>               - Play a game
//	arcade menu                      - Start menu to pick games interactively
//	arcade simulate <game>           - Run a game headless under an autopilot
//	arcade replay record|verify|list - Record and verify deterministic replays
//	arcade stats                     - Show per-game replay statistics
//	arcade embeds [slug]             - List externally hosted games
//
// Global flags:
//
//	--fps <rate>        - Repaint rate (default: 60)
//	--tick-rate <rate>  - Simulation ticks per second (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set replay database path (default: ~/.arcade/replays.db)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-arcade/internal/registry"
	"github.com/vovakirdan/neon-arcade/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/neon-arcade/internal/games/arena"
	_ "github.com/vovakirdan/neon-arcade/internal/games/asteroids"
	_ "github.com/vovakirdan/neon-arcade/internal/games/breakout"
	_ "github.com/vovakirdan/neon-arcade/internal/games/dino"
	_ "github.com/vovakirdan/neon-arcade/internal/games/flappy"
	_ "github.com/vovakirdan/neon-arcade/internal/games/invaders"
)

var (
	// Global flags
	flagFPS        int
	flagTickRate   int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevel      string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Neon Arcade - retro action games in your terminal",
	Long: `Neon Arcade runs small arcade games on one fixed-timestep engine.

Available commands:
  list      - Show all available games
  play      - Play a specific game directly
  menu      - Interactive game picker menu
  simulate  - Run a game headless under an autopilot
  replay    - Record, verify and list deterministic replays
  stats     - Replay statistics per game
  embeds    - Externally hosted games linked from the portal

Examples:
  arcade list
  arcade play arena
  arcade play breakout --level castle
  arcade menu
  arcade simulate invaders --ticks 3600
  arcade replay verify`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Repaint rate (frames per second)")
	pf.IntVar(&flagTickRate, "tick-rate", 60, "Simulation ticks per second")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to replay database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLevel, "level", "", "Named level for games that ship several")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file (interactive commands log nowhere otherwise)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(embedsCmd)
}

// gameOptions builds factory options from the global flags.
func gameOptions(level string) registry.Options {
	return registry.Options{
		ConfigPath: flagConfig,
		Preset:     flagDifficulty,
		Level:      level,
	}
}

// requireGame exits with a hint when id is not registered.
func requireGame(id string) {
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}
}

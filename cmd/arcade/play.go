package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/engine"
	"github.com/vovakirdan/neon-arcade/internal/platform/tui"
	"github.com/vovakirdan/neon-arcade/internal/registry"
	"github.com/vovakirdan/neon-arcade/internal/replay"
	"github.com/vovakirdan/neon-arcade/internal/storage"
)

var flagRecord bool

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls (defaults, per-game configs may rebind):
  Arrows/WASD - Move
  Space       - Fire / start
  Mouse       - Aim and fire where supported
  Enter       - Start / restart
  P/Esc       - Pause
  Ctrl+S      - Screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Games with named levels show a level picker unless --level is given.

Examples:
  arcade play arena
  arcade play asteroids --difficulty hard
  arcade play breakout --level fortress
  arcade play invaders --record
  arcade play arena --config ./my-arena.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the session as a replay")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]
	requireGame(gameID)

	logger, closeLog, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	info, _ := registry.Lookup(gameID)
	session := tui.NewSession()
	if err := playGame(cmd.Context(), info, terminalConfig(), session, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if best := session.Best(gameID); best > 0 {
		fmt.Printf("%s best: %d\n", info.Title, best)
	}
}

// terminalConfig sizes the surface to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagTickRate,
		Seed:     flagSeed,
	}
}

// playGame runs one interactive session. Games with named levels get a
// level picker first unless --level was given; backing out of it is not an
// error.
func playGame(ctx context.Context, info registry.Info, cfg core.RuntimeConfig, session *tui.Session, logger *log.Logger) error {
	level := flagLevel
	if level == "" && len(info.Levels) > 0 {
		picked, ok, err := tui.RunLevelMenu(info, cfg)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		level = picked
	}

	opts := gameOptions(level)
	opts.Logger = logger
	game, err := registry.Create(info.ID, opts)
	if err != nil {
		return err
	}

	// A recorded session needs a known seed.
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	var rec *replay.Recorder
	tuiOpts := tui.Options{FPS: flagFPS, Session: session, Logger: logger}
	if flagRecord {
		tuiOpts.WrapInput = func(src engine.InputSource) engine.InputSource {
			rec = replay.NewRecorder(src)
			return rec
		}
	}

	logger.Info("play", "game", info.ID, "level", level, "seed", cfg.Seed)
	if err := tui.Run(game, cfg, tuiOpts); err != nil {
		return fmt.Errorf("running %s: %w", info.ID, err)
	}
	if rec == nil {
		return nil
	}
	return saveRecording(ctx, game, replay.Trace{
		Game:       info.ID,
		ConfigPath: opts.ConfigPath,
		Preset:     opts.Preset,
		Level:      level,
		Seed:       cfg.Seed,
		TickRate:   cfg.TickRate,
		Frames:     rec.Frames(),
	}, logger)
}

// saveRecording stores an interactive session as a replay.
func saveRecording(ctx context.Context, game registry.Game, trace replay.Trace, logger *log.Logger) error {
	fg, ok := game.(replay.Fingerprinted)
	if !ok {
		return fmt.Errorf("%s cannot be recorded", trace.Game)
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveReplay(ctx, replay.ToReplay(trace, fg.Snapshot()))
	if err != nil {
		return err
	}
	logger.Info("replay saved", "id", id, "ticks", len(trace.Frames))
	fmt.Printf("Replay saved: %s (%d ticks)\n", id, len(trace.Frames))
	return nil
}

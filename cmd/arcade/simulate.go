package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/engine"
	"github.com/vovakirdan/neon-arcade/internal/registry"
	"github.com/vovakirdan/neon-arcade/internal/replay"
	"github.com/vovakirdan/neon-arcade/internal/storage"
)

var (
	flagSimTicks    int
	flagSimDuration time.Duration
	flagSimRender   bool
	flagSimSave     bool
	flagSimWidth    int
	flagSimHeight   int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <game>",
	Short: "Run a game headless under an autopilot",
	Long: `Run a game without a terminal UI. A seeded autopilot supplies input.

By default the simulation runs --ticks ticks as fast as possible. With
--duration it runs in real time on the fixed-timestep loop instead, stopping
after the duration or after --ticks ticks, whichever comes first.

Examples:
  arcade simulate arena --ticks 3600 --seed 7
  arcade simulate invaders --duration 5s --render
  arcade simulate breakout --level castle --save`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.IntVar(&flagSimTicks, "ticks", 3600, "Number of ticks to simulate (0 = until --duration ends)")
	f.DurationVar(&flagSimDuration, "duration", 0, "Run in real time for this long")
	f.BoolVar(&flagSimRender, "render", false, "Print the final frame")
	f.BoolVar(&flagSimSave, "save", false, "Store the run as a replay")
	f.IntVar(&flagSimWidth, "width", 80, "Render width in cells")
	f.IntVar(&flagSimHeight, "height", 24, "Render height in cells")
}

func runSimulate(cmd *cobra.Command, args []string) {
	gameID := args[0]
	requireGame(gameID)

	logger, closeLog, err := newLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	trace := replay.Trace{
		Game:       gameID,
		ConfigPath: flagConfig,
		Preset:     flagDifficulty,
		Level:      flagLevel,
		Seed:       seed,
		TickRate:   flagTickRate,
	}

	opts := trace.Options()
	opts.Logger = logger
	g, err := registry.Create(gameID, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	game, ok := g.(replay.Fingerprinted)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %s cannot be simulated\n", gameID)
		os.Exit(1)
	}
	game.Reset(core.RuntimeConfig{ScreenW: flagSimWidth, ScreenH: flagSimHeight, TickRate: flagTickRate, Seed: seed})

	d := game.Descriptor()
	rec := replay.NewRecorder(replay.NewAutopilot(seed, d.Width, d.Height))

	start := time.Now()
	if flagSimDuration > 0 {
		if err := runRealtime(cmd.Context(), game, rec); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		for range flagSimTicks {
			game.Step(rec.Snapshot())
		}
	}
	trace.Frames = rec.Frames()

	snap := game.Snapshot()
	st := game.State()
	logger.Info("simulation done",
		"game", gameID,
		"ticks", len(trace.Frames),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	fmt.Printf("Game:        %s\n", game.Title())
	fmt.Printf("Seed:        %d\n", seed)
	fmt.Printf("Ticks:       %d\n", len(trace.Frames))
	fmt.Printf("Phase:       %s\n", st.Phase)
	fmt.Printf("Score:       %d (best %d)\n", st.Score, st.BestScore)
	fmt.Printf("Wave:        %d\n", st.Wave)
	fmt.Printf("Health:      %d/%d\n", st.Health, st.MaxHealth)
	fmt.Printf("Entities:    %d\n", len(snap.Entities))
	fmt.Printf("Fingerprint: %016x\n", snap.Hash())

	if flagSimRender {
		screen := core.NewScreen(flagSimWidth, flagSimHeight)
		game.Render(screen)
		fmt.Println()
		fmt.Println(screen.String())
	}

	if flagSimSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		id, err := store.SaveReplay(cmd.Context(), replay.ToReplay(trace, snap))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error saving replay: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Replay:      %s\n", id)
	}
}

// runRealtime drives game from the fixed-timestep loop until the duration
// ends, the tick budget is spent or the user interrupts.
func runRealtime(ctx context.Context, game engine.Stepper, input engine.InputSource) error {
	ctx, cancel := context.WithTimeout(ctx, flagSimDuration)
	defer cancel()

	fps := flagFPS
	if fps <= 0 {
		fps = 60
	}
	loop := engine.NewLoop(game, input, flagTickRate)
	err := loop.Run(ctx, time.Second/time.Duration(fps), func() {
		if flagSimTicks > 0 && loop.Ticks() >= uint64(flagSimTicks) {
			loop.Stop()
		}
	})
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-arcade/internal/replay"
	"github.com/vovakirdan/neon-arcade/internal/storage"
)

var (
	flagReplayTicks   int
	flagReplayYAML    string
	flagReplayWorkers int
	flagReplayGame    string
	flagReplayLimit   int
	flagReplayOut     string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Record and verify deterministic replays",
	Long: `A replay is a game, a seed and one input frame per tick, stored with the
fingerprint of the final state. Verifying re-runs the input and compares
fingerprints, so any change that breaks determinism shows up as a mismatch.

Examples:
  arcade replay record arena --ticks 1800 --seed 3
  arcade replay list
  arcade replay verify
  arcade replay export <id> --out arena.yaml`,
}

var replayRecordCmd = &cobra.Command{
	Use:   "record <game>",
	Short: "Record an autopilot run as a replay",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayRecord,
}

var replayVerifyCmd = &cobra.Command{
	Use:   "verify [id...]",
	Short: "Re-run stored replays and compare fingerprints",
	Run:   runReplayVerify,
}

var replayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored replays",
	Args:  cobra.NoArgs,
	Run:   runReplayList,
}

var replayExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a replay as YAML",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayExport,
}

var replayDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored replay",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayDelete,
}

func init() {
	replayRecordCmd.Flags().IntVar(&flagReplayTicks, "ticks", 1800, "Number of ticks to record")
	replayRecordCmd.Flags().StringVar(&flagReplayYAML, "yaml", "", "Also write the trace as YAML to this file")
	replayVerifyCmd.Flags().IntVar(&flagReplayWorkers, "workers", 0, "Parallel verifications (0 = GOMAXPROCS)")
	replayVerifyCmd.Flags().StringVar(&flagReplayGame, "game", "", "Only verify replays of this game")
	replayListCmd.Flags().StringVar(&flagReplayGame, "game", "", "Only list replays of this game")
	replayListCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Maximum number of replays (0 = all)")
	replayExportCmd.Flags().StringVar(&flagReplayOut, "out", "", "Output file (default: stdout)")

	replayCmd.AddCommand(replayRecordCmd, replayVerifyCmd, replayListCmd, replayExportCmd, replayDeleteCmd)
}

// openStore opens the replay database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runReplayRecord(cmd *cobra.Command, args []string) {
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
	trace, snap, err := replay.Record(replay.Trace{
		Game:       gameID,
		ConfigPath: flagConfig,
		Preset:     flagDifficulty,
		Level:      flagLevel,
		Seed:       seed,
		TickRate:   flagTickRate,
	}, nil, flagReplayTicks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	defer store.Close()
	id, err := store.SaveReplay(cmd.Context(), replay.ToReplay(trace, snap))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving replay: %v\n", err)
		os.Exit(1)
	}
	logger.Info("replay recorded", "id", id, "game", gameID, "seed", seed, "ticks", len(trace.Frames))

	if flagReplayYAML != "" {
		if err := writeTraceFile(flagReplayYAML, trace); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Recorded %s: %s, seed %d, %d ticks, score %d, fingerprint %016x\n",
		id, gameID, seed, len(trace.Frames), snap.Score, snap.Hash())
}

func runReplayVerify(cmd *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStore()
	defer store.Close()
	ctx := cmd.Context()

	var replays []storage.Replay
	if len(args) > 0 {
		for _, id := range args {
			r, err := store.Replay(ctx, id)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			replays = append(replays, r)
		}
	} else {
		replays, err = store.Replays(ctx, flagReplayGame, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println("Run 'arcade replay record <game>' to record one.")
		return
	}

	start := time.Now()
	outcomes, err := replay.VerifyAll(ctx, replays, flagReplayWorkers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Verification interrupted: %v\n", err)
		os.Exit(1)
	}
	for _, o := range outcomes {
		if o.OK() {
			fmt.Printf("  ok    %s  %-10s %016x\n", o.ID, o.Game, o.Got)
			continue
		}
		fmt.Printf("  FAIL  %s  %-10s %v\n", o.ID, o.Game, o.Err)
	}

	failed := replay.Failed(outcomes)
	logger.Info("verify done", "replays", len(outcomes), "failed", failed, "elapsed", time.Since(start).Round(time.Millisecond))
	fmt.Printf("\n%d verified, %d failed\n", len(outcomes)-failed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func runReplayList(cmd *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	replays, err := store.Replays(cmd.Context(), flagReplayGame, flagReplayLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		return
	}

	fmt.Printf("  %-36s  %-10s  %7s  %6s  %-7s  %s\n", "ID", "Game", "Ticks", "Score", "Phase", "Recorded")
	fmt.Printf("  %-36s  %-10s  %7s  %6s  %-7s  %s\n", "--", "----", "-----", "-----", "-----", "--------")
	for _, r := range replays {
		fmt.Printf("  %-36s  %-10s  %7d  %6d  %-7s  %s\n",
			r.ID, r.GameID, r.Ticks, r.Score, r.Phase, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func runReplayExport(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	r, err := store.Replay(cmd.Context(), args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	trace, err := replay.FromReplay(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagReplayOut == "" {
		if err := replay.WriteYAML(os.Stdout, trace); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if err := writeTraceFile(flagReplayOut, trace); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runReplayDelete(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if err := store.DeleteReplay(cmd.Context(), args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted %s\n", args[0])
}

func writeTraceFile(path string, trace replay.Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	if err := replay.WriteYAML(f, trace); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

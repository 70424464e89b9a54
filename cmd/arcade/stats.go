package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-arcade/internal/registry"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show replay statistics per game",
	Long: `Display how many replays each game has, the best recorded score and
the total number of recorded ticks.

Examples:
  arcade stats
  arcade stats --db ./replays.db`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func runStats(cmd *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	stats, err := store.Stats(cmd.Context())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}
	if len(stats) == 0 {
		fmt.Println("No replays recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %7s  %6s  %9s  %s\n", "Game", "Replays", "Best", "Ticks", "Last")
	fmt.Printf("  %-16s  %7s  %6s  %9s  %s\n", "----", "-------", "----", "-----", "----")
	for _, s := range stats {
		title := s.GameID
		if info, ok := registry.Lookup(s.GameID); ok {
			title = info.Title
		}
		last := "-"
		if !s.LastRecorded.IsZero() {
			last = s.LastRecorded.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-16s  %7d  %6d  %9d  %s\n", title, s.Replays, s.BestScore, s.TotalTicks, last)
	}
}

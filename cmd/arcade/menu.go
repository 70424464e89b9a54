package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, you return to the menu to play again.
The best score of each game this session is shown in the table.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Esc/Q        - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --difficulty hard`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	session := tui.NewSession()
	cfg := terminalConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(session, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config
		if menuResult.Quit {
			break
		}

		// Fresh seed for each game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := playGame(cmd.Context(), menuResult.Game, cfg, session, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	ranked := session.Ranked()
	if len(ranked) == 0 {
		return
	}
	fmt.Println("Session best:")
	for _, id := range ranked {
		fmt.Printf("  %-12s %6d  (%d plays)\n", id, session.Best(id), session.Plays(id))
	}
}

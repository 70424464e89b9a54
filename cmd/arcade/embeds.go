package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-arcade/internal/catalog"
	"github.com/vovakirdan/neon-arcade/internal/platform/tui"
)

var embedsCmd = &cobra.Command{
	Use:   "embeds [slug]",
	Short: "List externally hosted games",
	Long: `Show the catalog of third-party games the portal links to. These run in
a browser; the arcade only lists them.

Examples:
  arcade embeds
  arcade embeds slope`,
	Args: cobra.MaximumNArgs(1),
	Run:  runEmbeds,
}

func runEmbeds(_ *cobra.Command, args []string) {
	if len(args) == 1 {
		e, err := catalog.Lookup(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'arcade embeds' to see the catalog.")
			os.Exit(1)
		}
		fmt.Printf("%s\n%s\n\n%s\n", tui.Colorize(e.Title, e.Color), e.Description, e.URL)
		return
	}

	entries, err := catalog.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	maxSlug := 4
	for _, e := range entries {
		maxSlug = max(maxSlug, len(e.Slug))
	}
	fmt.Printf("  %-*s  %-16s  %s\n", maxSlug, "Slug", "Title", "URL")
	fmt.Printf("  %-*s  %-16s  %s\n", maxSlug, "----", "-----", "---")
	for _, e := range entries {
		title := tui.Colorize(fmt.Sprintf("%-16s", e.Title), e.Color)
		fmt.Printf("  %-*s  %s  %s\n", maxSlug, e.Slug, title, e.URL)
	}
}

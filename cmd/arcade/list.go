package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcadeloop/internal/registry"
	"github.com/vovakirdan/arcadeloop/internal/score"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every game registered in the arcade with its one-line description.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title"
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "About")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----")

	for _, g := range games {
		blurb := g.Blurb
		if score.OrderFor(g.ID) == score.LowerIsBetter {
			blurb += " (timed, lower is better)"
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, blurb)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}

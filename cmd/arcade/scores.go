package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcadeloop/internal/platform/tui"
	"github.com/vovakirdan/arcadeloop/internal/registry"
	"github.com/vovakirdan/arcadeloop/internal/score"
	"github.com/vovakirdan/arcadeloop/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top high scores for one game, or for every game when no
game is given. Time trials list the fastest runs first.

Examples:
  arcade scores
  arcade scores flappy_turd
  arcade scores speed_roll --limit 3`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show per game")
}

func runScores(_ *cobra.Command, args []string) {
	games := registry.List()
	if len(args) == 1 {
		info, ok := registry.Info(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
			os.Exit(1)
		}
		games = []registry.GameInfo{info}
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	if store == nil {
		fmt.Println("Scores are kept in memory (--db \"\"); nothing is stored.")
		return
	}
	defer store.Close()

	for i, g := range games {
		if i > 0 {
			fmt.Println()
		}
		if err := printScores(store, g); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			return
		}
	}
}

func printScores(store *storage.Store, g registry.GameInfo) error {
	ctx, cancel := context.WithTimeout(context.Background(), score.DefaultTimeout)
	defer cancel()

	scores, err := store.TopScores(ctx, g.ID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", g.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", g.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-10s  %s\n", "Rank", "Player", "Score", "When")
	fmt.Printf("  %-4s  %-16s  %-10s  %s\n", "----", "------", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-16s  %-10s  %s\n",
			i+1, entry.UserID, tui.FormatScore(g.ID, entry.Score), humanize.Time(entry.CreatedAt))
	}

	best, err := store.HighScore(ctx, flagUser, g.ID)
	if err != nil {
		return err
	}
	fmt.Println()
	if best == 0 {
		fmt.Printf("%s has no record yet.\n", flagUser)
	} else {
		fmt.Printf("Best for %s: %s\n", flagUser, tui.FormatScore(g.ID, best))
	}
	return nil
}

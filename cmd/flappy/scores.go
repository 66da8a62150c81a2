package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-sim/internal/registry"
	"github.com/vovakirdan/flappy-sim/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show best runs for a variant",
	Long: `Display the best runs and overall statistics for a variant.

Examples:
  flappy scores flappy
  flappy scores flappy-halt --limit 20`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'flappy list' to see available variants.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("Best runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'flappy play %s' to record the first run!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-6s  %-14s  %-8s  %-8s  %s\n", "Rank", "Score", "Reason", "Ticks", "Run", "Date")
	fmt.Printf("  %-4s  %-6s  %-14s  %-8s  %-8s  %s\n", "----", "-----", "------", "-----", "---", "----")

	for i, run := range runs {
		reason := run.Reason
		if reason == "" {
			reason = "-"
		}
		fmt.Printf("  %-4d  %-6d  %-14s  %-8d  %-8s  %s\n",
			i+1, run.Score, reason, run.Ticks, shortRunID(run.RunID), run.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(gameID)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.1f  Ticks played: %d\n",
		stats.RunsCount, stats.HighScore, stats.AvgScore, stats.TotalTicks)
}

// shortRunID keeps the first uuid group.
func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/quickdoor/internal/quickdoor"
	"github.com/vovakirdan/quickdoor/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the stored best score and the top recorded sessions.

Examples:
  quickdoor scores
  quickdoor scores --limit 25`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to show")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// The engine owns the stored-best format
	engine := quickdoor.New(quickdoor.Options{Config: cfg, Store: store})
	best := engine.Snapshot().Best
	engine.Close()

	if err := printScores(os.Stdout, store, best, flagLimit, playerName()); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
	}
}

// printScores writes the best score, the top table and the player's own record.
func printScores(w io.Writer, store *storage.Store, best, limit int, player string) error {
	scores, err := store.TopScores(limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "High Scores - Quick Door")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %d\n", best)
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'quickdoor play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-16s  %-8s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-16s  %-8s  %s\n", "----", "------", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-4d  %-16s  %-8d  %s\n", i+1, entry.Player, entry.Score, dateStr)
	}

	if high, err := store.HighScore(player); err == nil && high > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s's high score: %d\n", player, high)
		if stats, err := store.Stats(player); err == nil {
			fmt.Fprintf(w, "%d games, average %.1f\n", stats.GamesCount, stats.AvgScore)
		}
	}
	return nil
}

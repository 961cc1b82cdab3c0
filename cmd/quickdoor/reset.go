package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/quickdoor/internal/quickdoor"
	"github.com/vovakirdan/quickdoor/internal/storage"
)

var flagHistory bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the best score",
	Long: `Forget the stored best score. With --history the player's
recorded sessions are removed from the high score table as well.

Examples:
  quickdoor reset
  quickdoor reset --history --player alice`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagHistory, "history", false, "Also clear the player's recorded sessions")
}

func runReset(_ *cobra.Command, _ []string) {
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

	engine := quickdoor.New(quickdoor.Options{Config: cfg, Store: store})
	engine.ResetBest()
	engine.Close()
	fmt.Println("Best score reset.")

	if flagHistory {
		if err := store.ClearScores(playerName()); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared recorded sessions of %s.\n", playerName())
	}
}

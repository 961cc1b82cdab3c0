package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/quickdoor/internal/core"
	"github.com/vovakirdan/quickdoor/internal/platform/tui"
	"github.com/vovakirdan/quickdoor/internal/quickdoor"
	"github.com/vovakirdan/quickdoor/internal/storage"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Quick Door",
	Long: `Start a local Quick Door session.

Controls:
  Space/Enter   - Start/Stop
  1-4 or h/j/k/l - Hit door 1-4 (mouse clicks work too)
  R             - Reset best score
  Tab           - Show high scores
  Q/Ctrl+C      - Quit

Difficulty options:
  normal - Doors start open for 1200ms
  hard   - Doors start open for 900ms
  expert - Doors start open for 600ms

Examples:
  quickdoor play
  quickdoor play --difficulty hard
  quickdoor play --config ./my-quickdoor.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: normal, hard, expert")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	rc := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.Player = playerName()

	rc.Seed = flagSeed
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}

	opts := quickdoor.Options{
		Config: cfg,
		Rand:   rand.New(rand.NewSource(rc.Seed)),
		Logger: logger,
	}

	// Open score storage; the game still works without it
	var book tui.ScoreBook
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		opts.Store = storage.NewMemory()
	} else {
		opts.Store = store
		book = store
	}

	engine := quickdoor.New(opts)

	runErr := tui.Run(engine, book, logger, rc)

	// Covers a program that ended without the quit key
	tui.FinishSession(engine, book, rc.Player, logger)
	engine.Close()

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

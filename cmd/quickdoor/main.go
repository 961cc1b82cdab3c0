// quickdoor is a terminal reaction game: hit the door that opens before it closes again.
//
// Usage:
//
//	quickdoor play           - Play in this terminal
//	quickdoor serve          - Start SSH server for remote play
//	quickdoor scores         - Show the best score and the high score table
//	quickdoor reset          - Forget the stored best score
//
// Global flags:
//
//	--seed <value>    - Set RNG seed for reproducible door choices
//	--db <path>       - Set database path (default: ~/.quickdoor/quickdoor.db)
//	--config <path>   - Load a custom config YAML
//	--log-file <path> - Write debug logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
	flagPlayer  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quickdoor",
	Short: "Quick Door - a reaction game for your terminal",
	Long: `Quick Door shows four doors. One of them opens for a short moment:
hit it before it closes. Every hit speeds the game up, every miss
speeds it up a little less.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - View high scores
  reset    - Reset the best score

Examples:
  quickdoor play
  quickdoor play --difficulty hard
  quickdoor serve --ssh :2222
  quickdoor scores --limit 20`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name for the score table (default: $USER)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(resetCmd)
}

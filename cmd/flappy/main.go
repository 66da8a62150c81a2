// flappy runs a deterministic flappy-bird simulation in the terminal.
//
// Usage:
//
//	flappy list              - List available variants
//	flappy play [variant]    - Play a variant (default "flappy")
//	flappy menu              - Start menu to pick variants interactively
//	flappy serve             - Start SSH server for remote play
//	flappy scores <variant>  - Show best runs for a variant
//	flappy sim               - Run a scripted headless simulation
//	flappy config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--db <path>     - Set database path (default: ~/.flappy/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/flappy-sim/internal/games/flappy"
)

var (
	// Global flags
	flagFPS    int
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - a deterministic flappy-bird simulation for your terminal",
	Long: `Flappy runs a fixed-step flappy-bird simulation and renders it in
the terminal.

Available commands:
  list     - Show all available variants
  play     - Play a variant directly
  menu     - Interactive variant picker menu
  serve    - Start SSH server for remote play
  scores   - View best runs
  sim      - Run a scripted headless simulation
  config   - Print the effective configuration

Examples:
  flappy list
  flappy play
  flappy play flappy-halt --difficulty hard
  flappy menu
  flappy serve --ssh :2222
  flappy sim --ticks 600 --jump-every 20
  flappy scores flappy`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

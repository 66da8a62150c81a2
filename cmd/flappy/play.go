package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-sim/internal/core"
	"github.com/vovakirdan/flappy-sim/internal/games/flappy"
	"github.com/vovakirdan/flappy-sim/internal/platform/tui"
	"github.com/vovakirdan/flappy-sim/internal/registry"
	"github.com/vovakirdan/flappy-sim/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant (default "flappy").

Variants:
  flappy       - Restart immediately after every crash
  flappy-halt  - Stop on a crash and wait for R or Enter

Controls:
  Space/Up/W   - Jump
  P            - Pause
  R/Enter      - Restart (flappy-halt, after game over)
  Esc/B        - Back (while paused or stopped)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Default pipe speed and gap
  normal - 30% of the configured scaling
  hard   - 70% of the configured scaling
  fixed  - Keep the config file's initial level

Examples:
  flappy play
  flappy play flappy-halt
  flappy play --difficulty hard
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// terminalConfig builds the runtime config from the current terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}

// applyGameFlags passes --config and --difficulty to the flappy package
// before a game is created.
func applyGameFlags() {
	flappy.SetConfigPath(flagConfig)
	flappy.SetDifficultyPreset(flagDifficulty)
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := flappy.IDReset
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if variant exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'flappy list' to see available variants.")
		os.Exit(1)
	}

	applyGameFlags()
	cfg := terminalConfig()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	var saver tui.RunSaver
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - the game still works
	} else {
		saver = store
	}

	runErr := tui.Run(game, saver, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-sim/internal/core"
	"github.com/vovakirdan/flappy-sim/internal/games/flappy"
	"github.com/vovakirdan/flappy-sim/internal/registry"
	"github.com/vovakirdan/flappy-sim/internal/storage"
)

var (
	flagSimTicks     int
	flagSimJumpEvery int
	flagSimVariant   string
	flagSimSave      bool
	flagSimVerbose   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a scripted headless simulation",
	Long: `Run the simulation without a terminal UI using a fixed jump schedule.

The same flags always produce the same runs, so this is useful for
checking a config file or comparing difficulty presets.

Examples:
  flappy sim
  flappy sim --ticks 3600 --jump-every 18
  flappy sim --variant flappy-halt --difficulty hard --verbose
  flappy sim --config ./my-flappy.yaml --save`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 1800, "Number of ticks to simulate")
	simCmd.Flags().IntVar(&flagSimJumpEvery, "jump-every", 20, "Jump every N ticks (0 = never)")
	simCmd.Flags().StringVar(&flagSimVariant, "variant", flappy.IDReset, "Variant to simulate")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save finished runs to the scores database")
	simCmd.Flags().BoolVar(&flagSimVerbose, "verbose", false, "Log simulation events")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSim(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "sim"})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	flappy.SetLogger(logger)

	if !registry.Exists(flagSimVariant) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", flagSimVariant)
		os.Exit(1)
	}

	applyGameFlags()
	game, err := registry.Create(flagSimVariant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	runtime := core.DefaultConfig()
	runtime.TickRate = flagFPS

	result := flappy.Replay(game, runtime, flappy.Script{
		Ticks:     flagSimTicks,
		JumpEvery: flagSimJumpEvery,
	})

	fmt.Printf("Simulated %d ticks of %s at %d fps\n", result.Ticks, game.Title(), runtime.TickRate)
	fmt.Println()

	if len(result.Runs) == 0 {
		fmt.Println("No run ended.")
	} else {
		fmt.Printf("  %-4s  %-6s  %-14s  %-8s  %s\n", "Run", "Score", "Reason", "Ticks", "ID")
		fmt.Printf("  %-4s  %-6s  %-14s  %-8s  %s\n", "---", "-----", "------", "-----", "--")
		for i, run := range result.Runs {
			fmt.Printf("  %-4d  %-6d  %-14s  %-8d  %s\n", i+1, run.Score, run.Reason, run.Ticks, run.RunID)
		}
	}

	fmt.Println()
	fmt.Printf("Best: %d  Current score: %d  Game over: %v\n",
		result.BestScore(), result.Final.Score, result.Final.GameOver)

	if flagSimSave && len(result.Runs) > 0 {
		saveSimRuns(logger, game.ID(), result.Runs)
	}
}

func saveSimRuns(logger *log.Logger, gameID string, runs []core.RunSummary) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Error("could not open scores database", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	saved := 0
	for _, run := range runs {
		_, err := store.SaveRun(storage.RunRecord{
			RunID:  run.RunID,
			GameID: gameID,
			Score:  run.Score,
			Reason: run.Reason,
			Ticks:  run.Ticks,
		})
		if err != nil {
			logger.Warn("could not save run", "run", run.RunID, "err", err)
			continue
		}
		saved++
	}
	fmt.Printf("Saved %d of %d runs to %s\n", saved, len(runs), flagDBPath)
}

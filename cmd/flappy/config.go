package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/flappy-sim/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a new game would use, as YAML.

The file is resolved in this order: --config, ~/.flappy/flappy.yaml,
./configs/flappy.yaml, then the built-in defaults. A --difficulty preset
is applied on top.

Examples:
  flappy config
  flappy config --difficulty hard
  flappy config --defaults > ~/.flappy/flappy.yaml`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults file")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if preset := config.ParseDifficultyPreset(flagDifficulty); preset != "" {
		config.ApplyFlappyPreset(&cfg, preset)
	}

	simCfg, err := cfg.SimConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)

	// Derived values the simulation uses after difficulty scaling.
	fmt.Printf("# effective gap: %g, speed: %g, spawn period: %gs\n",
		simCfg.PipeGap, simCfg.PipeSpeed, simCfg.SpawnPeriod())
}

package config

import (
	"math"

	"github.com/vovakirdan/flappy-sim/internal/core"
)

// Difficulty turns a difficulty level into concrete pipe tuning.
// The level is fixed for the whole session, so pipe speed stays constant
// between resets.
type Difficulty struct {
	cfg   ScalingConfig
	level float64
}

// NewDifficulty creates a difficulty from its config.
func NewDifficulty(cfg DifficultyConfig) Difficulty {
	return Difficulty{
		cfg:   cfg.Scaling,
		level: core.ClampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// Level returns the difficulty level in [0, 1].
func (d Difficulty) Level() float64 {
	return d.level
}

// Speed scales the base pipe speed from base to base * (1 + speedMultiplier).
func (d Difficulty) Speed(baseSpeed float64) float64 {
	return baseSpeed * (1.0 + d.level*d.cfg.SpeedMultiplier)
}

// Gap shrinks the base gap by up to gapReduction, never below the
// configured minimum. A base gap already under the minimum is left alone.
func (d Difficulty) Gap(baseGap float64) float64 {
	result := baseGap - d.level*d.cfg.GapReduction
	if floor := math.Min(d.cfg.MinGap, baseGap); result < floor {
		result = floor
	}
	return result
}

// ApplyFlappyPreset modifies the config based on a difficulty preset.
// The fixed preset keeps the level from the file.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

// Package config provides YAML-based game configuration loading and
// difficulty presets for the flappy simulation.
package config

import (
	"fmt"

	"github.com/vovakirdan/flappy-sim/internal/sim"
)

// FlappyConfig contains all configuration for the Flappy Bird game.
type FlappyConfig struct {
	World      FlappyWorld      `yaml:"world"`
	Physics    FlappyPhysics    `yaml:"physics"`
	Pipes      FlappyPipes      `yaml:"pipes"`
	Player     FlappyPlayer     `yaml:"player"`
	Session    FlappySession    `yaml:"session"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FlappyWorld defines the playable area in world units.
type FlappyWorld struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FlappyPhysics defines physics parameters for Flappy Bird.
type FlappyPhysics struct {
	Gravity   float64 `yaml:"gravity"`    // units/s^2, negative is down
	JumpBoost float64 `yaml:"jump_boost"` // units/s added per jump
}

// FlappyPipes defines obstacle parameters for Flappy Bird.
type FlappyPipes struct {
	Gap        float64 `yaml:"gap"`
	Speed      float64 `yaml:"speed"`
	HalfWidth  float64 `yaml:"half_width"`
	SpawnCount int     `yaml:"spawn_count"`
	StartX     float64 `yaml:"start_x"`
	EndX       float64 `yaml:"end_x"`
}

// FlappyPlayer defines player parameters for Flappy Bird.
type FlappyPlayer struct {
	X          float64 `yaml:"x"`
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
}

// FlappySession defines what the host does around the simulation.
type FlappySession struct {
	OnGameOver  string `yaml:"on_game_over"`  // "reset" or "halt"
	Collider    string `yaml:"collider"`      // "obstacle" or "legacy"
	ScoreOnPass bool   `yaml:"score_on_pass"` // award a point per pipe passed
}

// GameOverMode selects the host's reaction to a terminal condition.
type GameOverMode string

const (
	GameOverReset GameOverMode = "reset"
	GameOverHalt  GameOverMode = "halt"
)

// ParseGameOverMode validates an on_game_over value. Empty means reset.
func ParseGameOverMode(s string) (GameOverMode, error) {
	switch GameOverMode(s) {
	case "", GameOverReset:
		return GameOverReset, nil
	case GameOverHalt:
		return GameOverHalt, nil
	default:
		return "", fmt.Errorf("config: unknown on_game_over %q (want reset or halt)", s)
	}
}

// ParseCollider validates a collider value. Empty means obstacle.
func ParseCollider(s string) (sim.Collider, error) {
	switch s {
	case "", "obstacle":
		return sim.ColliderObstacle, nil
	case "legacy":
		return sim.ColliderLegacy, nil
	default:
		return 0, fmt.Errorf("config: unknown collider %q (want obstacle or legacy)", s)
	}
}

// DifficultyConfig defines the difficulty level and its scaling.
type DifficultyConfig struct {
	InitialLevel float64       `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Scaling      ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes at level 1.0.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to the speed factor
	GapReduction    float64 `yaml:"gap_reduction"`    // Subtracted from the gap
	MinGap          float64 `yaml:"min_gap"`          // Floor for the reduced gap
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset maps a CLI value to a preset. Empty and unknown
// values return "" so the config file's own level is kept.
func ParseDifficultyPreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// SimConfig converts the YAML configuration into a validated simulation
// config, with difficulty applied once.
func (c FlappyConfig) SimConfig() (sim.Config, error) {
	collider, err := ParseCollider(c.Session.Collider)
	if err != nil {
		return sim.Config{}, err
	}

	d := NewDifficulty(c.Difficulty)
	cfg := sim.Config{
		WorldWidth:       c.World.Width,
		WorldHeight:      c.World.Height,
		Gravity:          c.Physics.Gravity,
		JumpBoost:        c.Physics.JumpBoost,
		PlayerX:          c.Player.X,
		PlayerHalfWidth:  c.Player.HalfWidth,
		PlayerHalfHeight: c.Player.HalfHeight,
		PipeGap:          d.Gap(c.Pipes.Gap),
		PipeSpeed:        d.Speed(c.Pipes.Speed),
		PipeHalfWidth:    c.Pipes.HalfWidth,
		SpawnCount:       c.Pipes.SpawnCount,
		PipeStartX:       c.Pipes.StartX,
		PipeEndX:         c.Pipes.EndX,
		Collider:         collider,
	}
	if err := cfg.Validate(); err != nil {
		return sim.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks every section, including the derived simulation config.
func (c FlappyConfig) Validate() error {
	if _, err := ParseGameOverMode(c.Session.OnGameOver); err != nil {
		return err
	}
	_, err := c.SimConfig()
	return err
}

package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default Flappy Bird configuration. It
// matches defaults/flappy.yaml and sim.DefaultConfig.
func DefaultFlappyConfig() FlappyConfig {
	const (
		width     = 640.0
		height    = 360.0
		pipeHalfW = 50.0
	)
	return FlappyConfig{
		World: FlappyWorld{
			Width:  width,
			Height: height,
		},
		Physics: FlappyPhysics{
			Gravity:   -height / 8,
			JumpBoost: height / 8,
		},
		Pipes: FlappyPipes{
			Gap:        150,
			Speed:      100,
			HalfWidth:  pipeHalfW,
			SpawnCount: 3,
			StartX:     -width / 6,
			EndX:       width/2 + pipeHalfW,
		},
		Player: FlappyPlayer{
			X:          -width / 4,
			HalfWidth:  50,
			HalfHeight: 25,
		},
		Session: FlappySession{
			OnGameOver:  string(GameOverReset),
			Collider:    "obstacle",
			ScoreOnPass: true,
		},
		Difficulty: DifficultyConfig{
			InitialLevel: 0.0,
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				GapReduction:    40,
				MinGap:          90,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}

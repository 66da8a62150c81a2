// Package sim is the deterministic flappy simulation core.
//
// World coordinates are centred on the origin with y pointing up. The host
// drives a Session in three phases: construction (initial spawn), one Step
// per fixed tick, and Jump for every input edge received between ticks.
// SpawnOne is called by the host's periodic timer (see SpawnTimer).
package sim

import (
	"fmt"

	"github.com/vovakirdan/flappy-sim/internal/core"
)

// Collider selects the bounding box used for pipe collision.
type Collider int

const (
	// ColliderObstacle uses each pipe's own half extents.
	ColliderObstacle Collider = iota
	// ColliderLegacy rebuilds every box from the configured pipe constants
	// (2*PipeHalfWidth by PipeHeight at the world edges) the way the first
	// implementation did. Same geometry as ColliderObstacle for pairs built
	// from the config.
	ColliderLegacy
)

// String returns the config name of the collider.
func (c Collider) String() string {
	switch c {
	case ColliderObstacle:
		return "obstacle"
	case ColliderLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// Config holds every tunable of a session. All lengths are world units,
// speeds are units per second and accelerations units per second squared.
type Config struct {
	WorldWidth  float64
	WorldHeight float64

	Gravity   float64 // Must be negative (downward)
	JumpBoost float64 // Velocity added per jump edge

	PlayerX          float64 // Fixed horizontal position
	PlayerHalfWidth  float64
	PlayerHalfHeight float64 // Also the collision circle radius

	PipeGap       float64 // Vertical gap between top and bottom pipe
	PipeSpeed     float64
	PipeHalfWidth float64
	SpawnCount    int     // Pairs in the initial burst
	PipeStartX    float64 // Centre of the first pair in the initial burst
	PipeEndX      float64 // Centre of the last pair in the initial burst

	Collider Collider
}

// DefaultConfig returns the reference tuning: a 640x360 world where one
// jump cancels a second of gravity.
func DefaultConfig() Config {
	const (
		width     = 640.0
		height    = 360.0
		pipeHalfW = 50.0
	)
	return Config{
		WorldWidth:       width,
		WorldHeight:      height,
		Gravity:          -height / 8,
		JumpBoost:        height / 8,
		PlayerX:          -width / 4,
		PlayerHalfWidth:  50,
		PlayerHalfHeight: 25,
		PipeGap:          150,
		PipeSpeed:        100,
		PipeHalfWidth:    pipeHalfW,
		SpawnCount:       3,
		PipeStartX:       -width / 6,
		PipeEndX:         width/2 + pipeHalfW,
		Collider:         ColliderObstacle,
	}
}

// PipeHeight returns the height of each pipe of a pair.
func (c Config) PipeHeight() float64 {
	return c.WorldHeight - c.PipeGap
}

// SpawnPeriod returns the interval in seconds between periodic spawns,
// chosen so the cadence matches the initial spacing.
func (c Config) SpawnPeriod() float64 {
	return c.WorldWidth / (c.PipeSpeed * float64(c.SpawnCount))
}

// SpawnX returns the centre x of a periodically spawned pair, just past the
// right edge of the world.
func (c Config) SpawnX() float64 {
	return c.WorldWidth/2 + c.PipeHalfWidth
}

// Bounds returns the playable rectangle.
func (c Config) Bounds() Bounds {
	return Bounds{Width: c.WorldWidth, Height: c.WorldHeight}
}

// Validate checks that the configuration describes a playable world.
func (c Config) Validate() error {
	floats := []struct {
		name string
		v    float64
	}{
		{"world_width", c.WorldWidth},
		{"world_height", c.WorldHeight},
		{"gravity", c.Gravity},
		{"jump_boost", c.JumpBoost},
		{"player_x", c.PlayerX},
		{"player_half_width", c.PlayerHalfWidth},
		{"player_half_height", c.PlayerHalfHeight},
		{"pipe_gap", c.PipeGap},
		{"pipe_speed", c.PipeSpeed},
		{"pipe_half_width", c.PipeHalfWidth},
		{"pipe_start_x", c.PipeStartX},
		{"pipe_end_x", c.PipeEndX},
	}
	for _, f := range floats {
		if !core.IsFinite(f.v) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, f.name)
		}
	}

	switch {
	case c.WorldWidth <= 0 || c.WorldHeight <= 0:
		return fmt.Errorf("%w: world size %gx%g must be positive", ErrInvalidConfig, c.WorldWidth, c.WorldHeight)
	case c.Gravity >= 0:
		return fmt.Errorf("%w: gravity %g must be negative", ErrInvalidConfig, c.Gravity)
	case c.JumpBoost <= 0:
		return fmt.Errorf("%w: jump boost %g must be positive", ErrInvalidConfig, c.JumpBoost)
	case c.PlayerHalfWidth <= 0 || c.PlayerHalfHeight <= 0:
		return fmt.Errorf("%w: player extents must be positive", ErrInvalidConfig)
	case c.PipeGap <= 0 || c.PipeGap > c.WorldHeight:
		return fmt.Errorf("%w: pipe gap %g must be in (0, %g]", ErrInvalidConfig, c.PipeGap, c.WorldHeight)
	case c.PipeSpeed <= 0:
		return fmt.Errorf("%w: pipe speed %g must be positive", ErrInvalidConfig, c.PipeSpeed)
	case c.PipeHalfWidth <= 0:
		return fmt.Errorf("%w: pipe half width %g must be positive", ErrInvalidConfig, c.PipeHalfWidth)
	case c.PlayerX < -c.WorldWidth/2 || c.PlayerX > c.WorldWidth/2:
		return fmt.Errorf("%w: player x %g is outside the world", ErrInvalidConfig, c.PlayerX)
	case c.PipeStartX > c.PipeEndX:
		return fmt.Errorf("%w: pipe start x %g is after end x %g", ErrInvalidConfig, c.PipeStartX, c.PipeEndX)
	case c.SpawnCount < 1:
		return fmt.Errorf("%w: spawn count %d must be at least 1", ErrInvalidConfig, c.SpawnCount)
	case c.Collider != ColliderObstacle && c.Collider != ColliderLegacy:
		return fmt.Errorf("%w: unknown collider %d", ErrInvalidConfig, c.Collider)
	}
	return nil
}

// Bounds is the playable area, centred on the origin.
type Bounds struct {
	Width  float64
	Height float64
}

// Left returns the x-coordinate of the left edge.
func (b Bounds) Left() float64 { return -b.Width / 2 }

// Right returns the x-coordinate of the right edge.
func (b Bounds) Right() float64 { return b.Width / 2 }

// Top returns the y-coordinate of the top edge.
func (b Bounds) Top() float64 { return b.Height / 2 }

// Bottom returns the y-coordinate of the bottom edge.
func (b Bounds) Bottom() float64 { return -b.Height / 2 }

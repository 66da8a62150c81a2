package sim

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	if cfg.Gravity != -45 || cfg.JumpBoost != 45 {
		t.Errorf("gravity/boost = %v/%v, expected -45/45", cfg.Gravity, cfg.JumpBoost)
	}
	if cfg.PlayerX != -160 {
		t.Errorf("PlayerX = %v, expected -160", cfg.PlayerX)
	}
	if cfg.SpawnX() != 370 || cfg.PipeEndX != 370 {
		t.Errorf("SpawnX = %v, PipeEndX = %v, expected 370", cfg.SpawnX(), cfg.PipeEndX)
	}
	if got, want := cfg.SpawnPeriod(), 640.0/300.0; got != want {
		t.Errorf("SpawnPeriod() = %v, expected %v", got, want)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.WorldWidth = 0 }},
		{"upward gravity", func(c *Config) { c.Gravity = 1 }},
		{"zero gravity", func(c *Config) { c.Gravity = 0 }},
		{"no boost", func(c *Config) { c.JumpBoost = 0 }},
		{"gap taller than world", func(c *Config) { c.PipeGap = 400 }},
		{"zero gap", func(c *Config) { c.PipeGap = 0 }},
		{"stopped pipes", func(c *Config) { c.PipeSpeed = 0 }},
		{"no pipe width", func(c *Config) { c.PipeHalfWidth = 0 }},
		{"no spawns", func(c *Config) { c.SpawnCount = 0 }},
		{"flat player", func(c *Config) { c.PlayerHalfHeight = 0 }},
		{"nan speed", func(c *Config) { c.PipeSpeed = math.NaN() }},
		{"infinite start", func(c *Config) { c.PipeStartX = math.Inf(-1) }},
		{"unknown collider", func(c *Config) { c.Collider = Collider(9) }},
		{"player left of world", func(c *Config) { c.PlayerX = -321 }},
		{"player right of world", func(c *Config) { c.PlayerX = 321 }},
		{"burst start after end", func(c *Config) { c.PipeStartX, c.PipeEndX = 200, 100 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestSpawnTimer(t *testing.T) {
	timer := NewSpawnTimer(0.5)

	steps := []struct {
		name     string
		dt       float64
		expected int
	}{
		{"half period", 0.25, 0},
		{"one period", 0.25, 1},
		{"two and a half periods", 1.25, 2},
		{"remainder carried over", 0.25, 1},
		{"zero step", 0, 0},
	}
	for _, step := range steps {
		n, err := timer.Advance(step.dt)
		if err != nil {
			t.Fatalf("%s: Advance(%v) failed: %v", step.name, step.dt, err)
		}
		if n != step.expected {
			t.Errorf("%s: Advance(%v) = %d, expected %d", step.name, step.dt, n, step.expected)
		}
	}

	timer.Advance(0.25)
	timer.Reset()
	if n, _ := timer.Advance(0.25); n != 0 {
		t.Errorf("Reset should drop the partial period, got %d fires", n)
	}

	if n, _ := NewSpawnTimer(0).Advance(10); n != 0 {
		t.Errorf("zero period should never fire, got %d", n)
	}
}

func TestSpawnTimerRejectsInvalidDt(t *testing.T) {
	for _, dt := range []float64{math.Inf(1), math.Inf(-1), math.NaN(), -0.1} {
		timer := NewSpawnTimer(1)
		timer.Advance(0.5)

		n, err := timer.Advance(dt)
		if !errors.Is(err, ErrInvalidArgument) || n != 0 {
			t.Errorf("Advance(%v) = %d, %v, expected ErrInvalidArgument", dt, n, err)
		}
		// The rejected step leaves the accumulated time alone.
		if n, err := timer.Advance(0.5); err != nil || n != 1 {
			t.Errorf("after Advance(%v): Advance(0.5) = %d, %v, expected 1 fire", dt, n, err)
		}
	}
}

func TestSpawnTimerHugeStepReturns(t *testing.T) {
	timer := NewSpawnTimer(1)
	n, err := timer.Advance(1e300)
	if err != nil {
		t.Fatalf("Advance(1e300) failed: %v", err)
	}
	if n != maxFiresPerAdvance {
		t.Errorf("Advance(1e300) = %d, expected the cap %d", n, maxFiresPerAdvance)
	}
	if timer.elapsed < 0 || timer.elapsed >= timer.Period() {
		t.Errorf("remainder %v outside [0, period)", timer.elapsed)
	}
}

func TestConfigValidateNamesFirstBadField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gravity = math.NaN()
	cfg.PipeSpeed = math.Inf(1)
	cfg.PipeEndX = math.NaN()

	for i := 0; i < 20; i++ {
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "gravity is not finite") {
			t.Fatalf("Validate() = %v, expected the gravity field every time", err)
		}
	}
}

func TestConfigValidateAllowsEdgeValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PlayerX = -cfg.WorldWidth / 2
	cfg.PipeStartX = cfg.PipeEndX
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, expected player on the edge and a single burst point to be fine", err)
	}
}

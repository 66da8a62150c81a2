package sim

import (
	"errors"
	"math"
	"testing"
)

// calmConfig keeps the player alive for long runs: gravity is negligible
// and the pipes have zero height, so nothing can be hit.
func calmConfig() Config {
	cfg := DefaultConfig()
	cfg.Gravity = -1e-9
	cfg.PipeGap = cfg.WorldHeight
	return cfg
}

func newSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func TestExampleJumpScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gravity = -90
	cfg.JumpBoost = 90

	s := newSession(t, cfg)
	s.Jump()
	res, err := s.Step(0.1)
	if err != nil {
		t.Fatalf("Step() failed: %v", err)
	}

	p := s.Player()
	if p.Y != 9.0 {
		t.Errorf("Y = %v, expected 9.0", p.Y)
	}
	if p.VY != 81.0 {
		t.Errorf("VY = %v, expected 81.0", p.VY)
	}
	if res.State != StateActive {
		t.Errorf("State = %v, expected active", res.State)
	}
	if res.Tick != 1 {
		t.Errorf("Tick = %d, expected 1", res.Tick)
	}
}

func TestStepIntegratesWithPreviousVelocity(t *testing.T) {
	cfg := calmConfig()
	cfg.Gravity = -40
	s := newSession(t, cfg)

	dts := []float64{0.25, 0.1, 1.0 / 60, 0}
	for _, dt := range dts {
		before := s.Player()
		if _, err := s.Step(dt); err != nil {
			t.Fatalf("Step(%v) failed: %v", dt, err)
		}
		after := s.Player()

		wantY := before.Y + before.VY*dt
		wantVY := before.VY + cfg.Gravity*dt
		if after.Y != wantY || after.VY != wantVY {
			t.Errorf("Step(%v): got y=%v v=%v, expected y=%v v=%v", dt, after.Y, after.VY, wantY, wantVY)
		}
	}
}

func TestFallingIsMonotonic(t *testing.T) {
	s := newSession(t, DefaultConfig())

	prev := s.Player().Y
	for i := 0; i < 10000; i++ {
		res, err := s.Step(1.0 / 60)
		if err != nil {
			t.Fatalf("Step() failed: %v", err)
		}
		p := s.Player()
		if p.VY < 0 && p.Y > prev {
			t.Fatalf("tick %d: player rose from %v to %v while falling", i, prev, p.Y)
		}
		prev = p.Y
		if res.State == StateGameOver {
			return
		}
	}
	t.Fatal("a player without input should eventually lose")
}

func TestJumpEdgesAccumulate(t *testing.T) {
	tests := []struct {
		name  string
		jumps int
	}{
		{"no jump", 0},
		{"single jump", 1},
		{"three jumps", 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := calmConfig()
			s := newSession(t, cfg)
			for i := 0; i < tc.jumps; i++ {
				s.Jump()
			}
			if _, err := s.Step(0); err != nil {
				t.Fatalf("Step() failed: %v", err)
			}
			want := float64(tc.jumps) * cfg.JumpBoost
			if got := s.Player().VY; got != want {
				t.Errorf("VY = %v, expected %v", got, want)
			}

			// Edges are consumed by the step that applied them.
			if _, err := s.Step(0); err != nil {
				t.Fatalf("Step() failed: %v", err)
			}
			if got := s.Player().VY; got != want {
				t.Errorf("VY after second step = %v, expected %v", got, want)
			}
		})
	}
}

func TestStepRejectsInvalidDt(t *testing.T) {
	for _, dt := range []float64{-0.01, math.NaN(), math.Inf(1), math.Inf(-1)} {
		s := newSession(t, DefaultConfig())
		s.Jump()
		_, err := s.Step(dt)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Step(%v) error = %v, expected ErrInvalidArgument", dt, err)
		}
		if s.Tick() != 0 || s.Player().VY != 0 {
			t.Errorf("Step(%v) must not mutate state on error", dt)
		}
	}
}

func TestPipesScrollBySpeedTimesDt(t *testing.T) {
	cfg := calmConfig()
	s := newSession(t, cfg)

	const dt = 0.125
	for i := 0; i < 5; i++ {
		before := s.Pipes()
		if _, err := s.Step(dt); err != nil {
			t.Fatalf("Step() failed: %v", err)
		}
		after := s.Pipes()
		if len(after) != len(before) {
			t.Fatalf("pipe count changed from %d to %d", len(before), len(after))
		}
		for j := range after {
			want := before[j].CenterX - cfg.PipeSpeed*dt
			if after[j].CenterX != want {
				t.Errorf("pipe %d x = %v, expected %v", j, after[j].CenterX, want)
			}
		}
	}
}

func TestPipeRetiredOncePastLeftEdge(t *testing.T) {
	cfg := calmConfig()
	s := newSession(t, cfg)

	const dt = 0.125
	first := s.Pipes()[0]
	left := s.Bounds().Left()
	retiredCount := 0

	for i := 0; i < 200; i++ {
		p, err := s.Pipe(first.Handle)
		alive := err == nil
		var expectRetire bool
		if alive {
			expectRetire = p.CenterX-cfg.PipeSpeed*dt+p.HalfWidth < left
		}

		res, err := s.Step(dt)
		if err != nil {
			t.Fatalf("Step() failed: %v", err)
		}

		got := false
		for _, h := range res.Retired {
			if h == first.Handle {
				got = true
				retiredCount++
			}
		}
		if got != expectRetire {
			t.Fatalf("step %d: retired=%v, expected %v", i, got, expectRetire)
		}
	}

	if retiredCount != 1 {
		t.Errorf("first pipe retired %d times, expected exactly once", retiredCount)
	}
	if _, err := s.Pipe(first.Handle); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Pipe(retired) error = %v, expected ErrStaleHandle", err)
	}
	for _, p := range s.Pipes() {
		if p.Handle == first.Handle {
			t.Error("retired pipe reappeared")
		}
	}
}

func TestPeriodicSpawnAddsOnePairPerPeriod(t *testing.T) {
	cfg := calmConfig()
	cfg.WorldWidth = 600
	cfg.PipeStartX = -100
	cfg.PipeEndX = 350
	s := newSession(t, cfg)

	if cfg.SpawnPeriod() != 2 {
		t.Fatalf("SpawnPeriod() = %v, expected 2", cfg.SpawnPeriod())
	}

	timer := NewSpawnTimer(cfg.SpawnPeriod())
	initial := s.PipeCount()
	for i := 0; i < 40; i++ { // 40 * 0.25s = 5 periods
		n, err := timer.Advance(0.25)
		if err != nil {
			t.Fatalf("Advance() failed: %v", err)
		}
		for ; n > 0; n-- {
			h := s.SpawnOne()
			p, err := s.Pipe(h)
			if err != nil {
				t.Fatalf("spawned handle not live: %v", err)
			}
			if p.CenterX != cfg.SpawnX() {
				t.Errorf("spawned at x=%v, expected %v", p.CenterX, cfg.SpawnX())
			}
		}
	}

	if got := s.PipeCount(); got != initial+5 {
		t.Errorf("PipeCount() = %d, expected %d", got, initial+5)
	}
}

func TestGameOverIsTerminalUntilReset(t *testing.T) {
	s := newSession(t, DefaultConfig())

	var res StepResult
	var err error
	for res.State != StateGameOver {
		res, err = s.Step(1.0 / 60)
		if err != nil {
			t.Fatalf("Step() failed: %v", err)
		}
	}
	if res.Violation == ViolationNone {
		t.Fatal("game over should carry a violation")
	}

	tick := s.Tick()
	pipes := s.Pipes()
	player := s.Player()
	s.Jump()
	if h := s.SpawnOne(); !h.IsZero() {
		t.Error("SpawnOne during game over should not spawn")
	}

	res, err = s.Step(1.0 / 60)
	if err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	if res.State != StateGameOver || s.Tick() != tick || s.Player() != player {
		t.Error("Step during game over must not change the world")
	}
	if len(s.Pipes()) != len(pipes) || s.Pipes()[0] != pipes[0] {
		t.Error("pipes moved during game over")
	}
}

func TestResetRestoresInitialWorld(t *testing.T) {
	cfg := DefaultConfig()
	s := newSession(t, cfg)
	initial := s.Pipes()

	s.IncrementScore()
	s.IncrementScore()
	for s.State() != StateGameOver {
		if _, err := s.Step(1.0 / 60); err != nil {
			t.Fatalf("Step() failed: %v", err)
		}
	}

	s.Reset()

	if s.State() != StateActive || s.Violation() != ViolationNone {
		t.Errorf("after Reset state=%v violation=%v", s.State(), s.Violation())
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", s.Score())
	}
	p := s.Player()
	if p.Y != 0 || p.VY != 0 || p.X != cfg.PlayerX {
		t.Errorf("player = %+v, expected at (%v, 0) at rest", p, cfg.PlayerX)
	}
	if s.Tick() != 0 || s.Elapsed() != 0 {
		t.Error("Reset should clear tick counters")
	}

	pipes := s.Pipes()
	if len(pipes) != len(initial) {
		t.Fatalf("pipe count = %d, expected %d", len(pipes), len(initial))
	}
	for i := range pipes {
		if pipes[i].CenterX != initial[i].CenterX {
			t.Errorf("pipe %d x = %v, expected %v", i, pipes[i].CenterX, initial[i].CenterX)
		}
	}
	for _, old := range initial {
		if _, err := s.Pipe(old.Handle); !errors.Is(err, ErrStaleHandle) {
			t.Errorf("handle %s from before reset should be stale", old.Handle)
		}
	}
}

func TestResetDropsPendingJumps(t *testing.T) {
	s := newSession(t, calmConfig())
	s.Jump()
	s.Reset()
	if _, err := s.Step(0); err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	if s.Player().VY != 0 {
		t.Errorf("VY = %v, jump before reset should be dropped", s.Player().VY)
	}
}

func TestSpawnInitial(t *testing.T) {
	cfg := calmConfig()
	cfg.PipeStartX = -100
	cfg.PipeEndX = 300
	s := newSession(t, cfg)

	want := []float64{-100, 100, 300}
	pipes := s.Pipes()
	if len(pipes) != len(want) {
		t.Fatalf("got %d pipes, expected %d", len(pipes), len(want))
	}
	for i, p := range pipes {
		if p.CenterX != want[i] {
			t.Errorf("pipe %d x = %v, expected %v", i, p.CenterX, want[i])
		}
	}

	if err := s.SpawnInitial(1); err != nil {
		t.Fatalf("SpawnInitial(1) failed: %v", err)
	}
	if pipes := s.Pipes(); len(pipes) != 1 || pipes[0].CenterX != -100 {
		t.Errorf("SpawnInitial(1) = %+v, expected one pair at -100", pipes)
	}

	if err := s.SpawnInitial(0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SpawnInitial(0) error = %v, expected ErrInvalidArgument", err)
	}
}

func TestPipeZeroHandleIsStale(t *testing.T) {
	s := newSession(t, DefaultConfig())
	if _, err := s.Pipe(Handle{}); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Pipe(zero) error = %v, expected ErrStaleHandle", err)
	}
	if _, err := s.Pipe(Handle{Index: 99, Generation: 1}); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Pipe(out of range) error = %v, expected ErrStaleHandle", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gravity = 10
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New() error = %v, expected ErrInvalidConfig", err)
	}
}

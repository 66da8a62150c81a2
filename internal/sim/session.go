package sim

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-sim/internal/core"
)

// State is the session lifecycle state.
type State int

const (
	StateActive State = iota
	StateGameOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// StepResult reports what happened during one Step.
type StepResult struct {
	State     State
	Score     int
	Tick      int
	Violation Violation // Set on the tick the session ended, and after
	Retired   []Handle  // Pairs retired during this step
}

// Option configures a Session.
type Option func(*Session)

// WithLogger routes the session's debug events to logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session owns the whole world state: player, pipe pairs, score and
// lifecycle. It is not safe for concurrent use; the host calls it from a
// single loop.
type Session struct {
	cfg       Config
	body      Body
	pipes     *pipeArena
	score     int
	state     State
	violation Violation
	pending   int // jump edges waiting for the next Step
	tick      int
	elapsed   float64
	logger    *log.Logger
}

// New validates cfg and returns a session with the initial pipe burst
// already spawned.
func New(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:    cfg,
		pipes:  newPipeArena(cfg.SpawnCount + 2),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.spawnInitial(cfg.SpawnCount)
	return s, nil
}

// Step advances the world by dt seconds: pending jumps, gravity, pipe
// scrolling and retirement, then the bounds and collision checks. Once the
// session is over Step changes nothing until Reset.
func (s *Session) Step(dt float64) (StepResult, error) {
	if dt < 0 || !core.IsFinite(dt) {
		return s.result(nil), fmt.Errorf("%w: dt %v must be finite and non-negative", ErrInvalidArgument, dt)
	}
	if s.state == StateGameOver {
		return s.result(nil), nil
	}

	s.tick++
	s.elapsed += dt

	if s.pending > 0 {
		s.body = Impulse(s.body, s.cfg.JumpBoost, s.pending)
		s.pending = 0
	}
	s.body = Integrate(s.body, s.cfg.Gravity, dt)

	retired := s.pipes.scroll(s.cfg.PipeSpeed*dt, s.cfg.Bounds().Left())
	for _, h := range retired {
		s.logger.Debug("retired pipes", "handle", h, "tick", s.tick)
	}

	if v := Detect(s.Player(), s.pipes.pairs(), s.cfg); v != ViolationNone {
		s.gameOver(v)
	}

	return s.result(retired), nil
}

func (s *Session) gameOver(v Violation) {
	if s.state == StateGameOver {
		return
	}
	s.state = StateGameOver
	s.violation = v
	s.logger.Debug("game over", "reason", v, "score", s.score, "tick", s.tick, "y", s.body.Y)
}

func (s *Session) result(retired []Handle) StepResult {
	return StepResult{
		State:     s.state,
		Score:     s.score,
		Tick:      s.tick,
		Violation: s.violation,
		Retired:   retired,
	}
}

// Jump registers one impulse edge, applied on the next Step. Edges received
// while the session is over are dropped.
func (s *Session) Jump() {
	if s.state == StateGameOver {
		return
	}
	s.pending++
}

// SpawnInitial replaces all pipe pairs with n pairs spread evenly over the
// configured start and end positions.
func (s *Session) SpawnInitial(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: spawn count %d must be at least 1", ErrInvalidArgument, n)
	}
	s.spawnInitial(n)
	return nil
}

func (s *Session) spawnInitial(n int) {
	s.pipes.retireAll()
	for _, x := range initialPositions(s.cfg.PipeStartX, s.cfg.PipeEndX, n) {
		s.spawnAt(x)
	}
}

// SpawnOne adds a single pair just past the right edge of the world. It is
// meant to be called by the host's periodic timer. While the session is over
// nothing is spawned and the zero handle is returned.
func (s *Session) SpawnOne() Handle {
	if s.state == StateGameOver {
		return Handle{}
	}
	return s.spawnAt(s.cfg.SpawnX())
}

func (s *Session) spawnAt(x float64) Handle {
	h := s.pipes.insert(newPair(s.cfg, x))
	s.logger.Debug("spawning pipes", "x", x, "handle", h)
	return h
}

// Reset returns the world to its initial state: player centred with no
// velocity, a fresh initial burst of pipes, score zero and state active.
func (s *Session) Reset() {
	s.body = Body{}
	s.pending = 0
	s.score = 0
	s.tick = 0
	s.elapsed = 0
	s.state = StateActive
	s.violation = ViolationNone
	s.spawnInitial(s.cfg.SpawnCount)
	s.logger.Debug("session reset")
}

// IncrementScore adds one point. Deciding when a point is earned is left to
// the host.
func (s *Session) IncrementScore() {
	s.score++
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Bounds returns the playable area.
func (s *Session) Bounds() Bounds {
	return s.cfg.Bounds()
}

// Player returns the player's current position and extents.
func (s *Session) Player() Player {
	return Player{
		X:          s.cfg.PlayerX,
		Y:          s.body.Y,
		VY:         s.body.VY,
		HalfWidth:  s.cfg.PlayerHalfWidth,
		HalfHeight: s.cfg.PlayerHalfHeight,
	}
}

// Pipes returns a copy of the live pipe pairs, oldest first.
func (s *Session) Pipes() []PipePair {
	return s.pipes.pairs()
}

// PipeCount returns the number of live pipe pairs.
func (s *Session) PipeCount() int {
	return s.pipes.count()
}

// Pipe looks up a live pair by handle.
func (s *Session) Pipe(h Handle) (PipePair, error) {
	p, ok := s.pipes.get(h)
	if !ok {
		return PipePair{}, fmt.Errorf("%w: %s", ErrStaleHandle, h)
	}
	return p, nil
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Violation returns why the session ended, or ViolationNone while active.
func (s *Session) Violation() Violation {
	return s.violation
}

// Tick returns the number of steps taken since the last reset.
func (s *Session) Tick() int {
	return s.tick
}

// Elapsed returns the simulated seconds since the last reset.
func (s *Session) Elapsed() float64 {
	return s.elapsed
}

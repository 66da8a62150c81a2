// Package flappy hosts the flappy simulation as a registry game.
// It turns fixed ticks and input frames into Session calls, runs the spawn
// timer, awards points for passed pipes, and applies the game over policy.
package flappy

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/flappy-sim/internal/config"
	"github.com/vovakirdan/flappy-sim/internal/core"
	"github.com/vovakirdan/flappy-sim/internal/registry"
	"github.com/vovakirdan/flappy-sim/internal/sim"
)

// Variant IDs.
const (
	IDReset = "flappy"
	IDHalt  = "flappy-halt"
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// level from the config file.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParseDifficultyPreset(preset)
}

// SetLogger routes simulation debug events to l. Nil restores the discard
// logger.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements registry.Game on top of sim.Session.
type Game struct {
	id   string
	mode config.GameOverMode

	fixed   *config.FlappyConfig // used instead of loading from disk when set
	cfg     config.FlappyConfig
	runtime core.RuntimeConfig

	session *sim.Session
	timer   *sim.SpawnTimer
	passed  map[sim.Handle]struct{} // pairs already scored
	view    Viewport

	runID  string
	runs   int // finished runs since Reset
	paused bool
}

// New creates the reset-on-game-over variant. The policy from the config
// file's session.on_game_over applies.
func New() *Game {
	return &Game{id: IDReset}
}

// NewHalt creates the variant that stops on game over until restarted.
func NewHalt() *Game {
	return &Game{id: IDHalt, mode: config.GameOverHalt}
}

// NewWithConfig creates a game that uses cfg instead of loading one.
func NewWithConfig(cfg config.FlappyConfig) *Game {
	return &Game{id: IDReset, fixed: &cfg}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this variant.
func (g *Game) Title() string {
	if g.id == IDHalt {
		return "Flappy Bird (halt)"
	}
	return "Flappy Bird"
}

// Reset loads the configuration and starts a fresh run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()

	simCfg, err := g.cfg.SimConfig()
	if err != nil {
		logger.Warn("invalid flappy config, using defaults", "err", err)
		g.cfg = config.DefaultFlappyConfig()
		simCfg = sim.DefaultConfig()
	}

	mode, err := config.ParseGameOverMode(g.cfg.Session.OnGameOver)
	if err != nil {
		mode = config.GameOverReset
	}
	if g.id == IDHalt {
		mode = config.GameOverHalt
	}
	g.mode = mode

	session, err := sim.New(simCfg, sim.WithLogger(logger))
	if err != nil {
		logger.Warn("cannot start flappy session, using defaults", "err", err)
		simCfg = sim.DefaultConfig()
		if session, err = sim.New(simCfg, sim.WithLogger(logger)); err != nil {
			logger.Error("cannot start flappy session", "err", err)
			g.session = nil
			return
		}
	}
	g.session = session
	g.timer = sim.NewSpawnTimer(simCfg.SpawnPeriod())
	g.view = NewViewport(simCfg.Bounds(), runtime.ScreenW, runtime.ScreenH-hudRows, hudRows)
	g.runs = 0
	g.paused = false
	g.startRun()
}

func (g *Game) loadConfig() config.FlappyConfig {
	if g.fixed != nil {
		return *g.fixed
	}

	cfg, err := config.LoadFlappy(configPath)
	if err != nil {
		logger.Warn("failed to load flappy config", "path", configPath, "err", err)
		cfg = config.DefaultFlappyConfig()
	}
	if difficultyPreset != "" {
		config.ApplyFlappyPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// startRun clears per-run host state and assigns a new run ID.
func (g *Game) startRun() {
	g.timer.Reset()
	g.passed = make(map[sim.Handle]struct{})
	g.runID = uuid.NewString()
	logger.Debug("run started", "run", g.runID, "game", g.id)
}

// restart resets the session for the next run.
func (g *Game) restart() {
	g.session.Reset()
	g.startRun()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{}
	}
	if g.session.State() == sim.StateGameOver {
		// Only reachable in halt mode.
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.restart()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	for i := 0; i < in.Count(core.ActionJump); i++ {
		g.session.Jump()
	}

	dt := g.runtime.TickSeconds()
	res, err := g.session.Step(dt)
	if err != nil {
		logger.Error("step failed", "err", err)
		return core.StepResult{State: g.State()}
	}

	for _, h := range res.Retired {
		delete(g.passed, h)
	}

	if res.State == sim.StateGameOver {
		summary := g.endRun(res)
		return core.StepResult{State: g.State(), RunEnded: summary}
	}

	fires, err := g.timer.Advance(dt)
	if err != nil {
		logger.Error("spawn timer rejected step", "err", err)
	}
	for ; fires > 0; fires-- {
		g.session.SpawnOne()
	}

	if g.cfg.Session.ScoreOnPass {
		g.scorePassed()
	}

	return core.StepResult{State: g.State()}
}

// scorePassed awards one point for every pair whose trailing edge has moved
// past the player's leading edge.
func (g *Game) scorePassed() {
	p := g.session.Player()
	left := p.X - p.HalfWidth
	for _, pair := range g.session.Pipes() {
		if _, ok := g.passed[pair.Handle]; ok {
			continue
		}
		if pair.Right() < left {
			g.passed[pair.Handle] = struct{}{}
			g.session.IncrementScore()
		}
	}
}

// endRun reports a finished run and applies the game over policy.
func (g *Game) endRun(res sim.StepResult) *core.RunSummary {
	g.runs++
	summary := &core.RunSummary{
		RunID:  g.runID,
		Score:  res.Score,
		Reason: res.Violation.String(),
		Ticks:  res.Tick,
	}
	logger.Info("run ended",
		"run", summary.RunID,
		"game", g.id,
		"score", summary.Score,
		"reason", summary.Reason,
		"ticks", summary.Ticks,
	)

	if g.mode == config.GameOverReset {
		g.restart()
	}
	return summary
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.State() == sim.StateGameOver,
		Paused:   g.paused,
	}
}

// Session exposes the underlying simulation for inspection.
func (g *Game) Session() *sim.Session {
	return g.session
}

// RunID returns the identifier of the current run.
func (g *Game) RunID() string {
	return g.runID
}

// Runs returns the number of runs finished since the last Reset.
func (g *Game) Runs() int {
	return g.runs
}

// Mode returns the game over policy in effect.
func (g *Game) Mode() config.GameOverMode {
	return g.mode
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          IDReset,
		Title:       "Flappy Bird",
		Description: "Restarts right away after a crash",
	}, func() registry.Game {
		return New()
	})
	registry.Register(registry.GameInfo{
		ID:          IDHalt,
		Title:       "Flappy Bird (halt)",
		Description: "Stops on a crash until you restart",
	}, func() registry.Game {
		return NewHalt()
	})
}

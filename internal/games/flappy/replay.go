package flappy

import (
	"github.com/vovakirdan/flappy-sim/internal/core"
	"github.com/vovakirdan/flappy-sim/internal/registry"
)

// Script is a deterministic input schedule for a headless run.
type Script struct {
	Ticks     int   // Number of ticks to run
	JumpEvery int   // Jump on every Nth tick, starting at tick 0; 0 disables
	JumpAt    []int // Extra ticks with one jump each
}

// ReplayResult summarises a headless run.
type ReplayResult struct {
	Ticks int
	Runs  []core.RunSummary
	Final core.GameState
}

// BestScore returns the highest score among finished runs.
func (r ReplayResult) BestScore() int {
	best := 0
	for _, run := range r.Runs {
		best = core.Max(best, run.Score)
	}
	return best
}

// Replay resets g and drives it through the script. When a halting variant
// stops, the next tick sends a restart so the schedule keeps going.
func Replay(g registry.Game, runtime core.RuntimeConfig, s Script) ReplayResult {
	g.Reset(runtime)

	extra := make(map[int]int, len(s.JumpAt))
	for _, t := range s.JumpAt {
		extra[t]++
	}

	var result ReplayResult
	in := core.NewInputFrame()
	for tick := 0; tick < s.Ticks; tick++ {
		in.Clear()
		if s.JumpEvery > 0 && tick%s.JumpEvery == 0 {
			in.Set(core.ActionJump)
		}
		for i := 0; i < extra[tick]; i++ {
			in.Set(core.ActionJump)
		}
		if g.State().GameOver {
			in.Set(core.ActionRestart)
		}

		res := g.Step(in)
		result.Ticks++
		if res.RunEnded != nil {
			result.Runs = append(result.Runs, *res.RunEnded)
		}
	}
	result.Final = g.State()
	return result
}

package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-sim/internal/core"
	"github.com/vovakirdan/flappy-sim/internal/storage"
)

// scriptedGame ends a run on the tick given by endAt.
type scriptedGame struct {
	ticks  int
	endAt  int
	jumps  int
	over   bool
	resets int
}

func (g *scriptedGame) ID() string { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }
func (g *scriptedGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *scriptedGame) State() core.GameState { return core.GameState{Score: g.ticks, GameOver: g.over} }
func (g *scriptedGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "scripted") }

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.jumps += in.Count(core.ActionJump)
	if g.over {
		return core.StepResult{State: g.State()}
	}
	g.ticks++
	if g.ticks == g.endAt {
		g.over = true
		return core.StepResult{
			State:    g.State(),
			RunEnded: &core.RunSummary{RunID: "run-1", Score: g.ticks, Reason: "collision", Ticks: g.ticks},
		}
	}
	return core.StepResult{State: g.State()}
}

type fakeSaver struct {
	saved []storage.RunRecord
	err   error
}

func (f *fakeSaver) SaveRun(rec storage.RunRecord) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, rec)
	return int64(len(f.saved)), nil
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestModelSavesFinishedRun(t *testing.T) {
	game := &scriptedGame{endAt: 3}
	saver := &fakeSaver{}
	m := NewModel(game, saver, core.DefaultConfig())
	m.Init()

	for i := 0; i < 5; i++ {
		m = update(t, m, TickMsg{})
	}

	if len(saver.saved) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(saver.saved))
	}
	rec := saver.saved[0]
	if rec.RunID != "run-1" || rec.GameID != "scripted" || rec.Score != 3 || rec.Reason != "collision" || rec.Ticks != 3 {
		t.Errorf("saved record = %+v", rec)
	}
	if m.LastRun() == nil || m.LastRun().RunID != "run-1" {
		t.Errorf("LastRun() = %+v", m.LastRun())
	}
}

func TestModelReportsSaveError(t *testing.T) {
	game := &scriptedGame{endAt: 1}
	m := NewModel(game, &fakeSaver{err: errors.New("disk full")}, core.DefaultConfig())
	m.Init()

	m = update(t, m, TickMsg{})
	if m.SaveErr() == nil {
		t.Error("expected the save error to be kept")
	}
}

func TestModelForwardsJumpsOncePerTick(t *testing.T) {
	game := &scriptedGame{endAt: 100}
	m := NewModel(game, nil, core.DefaultConfig())
	m.Init()

	m = update(t, m, runeKey(' '))
	m = update(t, m, runeKey(' '))
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if game.jumps != 2 {
		t.Errorf("game saw %d jumps, expected 2", game.jumps)
	}
}

func TestModelBackToMenuOnlyWhenStopped(t *testing.T) {
	game := &scriptedGame{endAt: 1}
	m := NewModel(game, nil, core.DefaultConfig())
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("esc during play should not leave the game")
	}

	m = update(t, m, TickMsg{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc after game over should return to the menu")
	}
}

func TestModelQuitAndView(t *testing.T) {
	m := NewModel(&scriptedGame{endAt: 10}, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 3})
	m.Init()

	if !strings.Contains(m.View(), "scripted") {
		t.Errorf("View() = %q", m.View())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.IsQuitting() || m.View() != "" {
		t.Error("ctrl+c should quit and blank the view")
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(3, 1, 'x', core.ColorGreen)

	out := RenderScreen(s)
	if !strings.Contains(out, "ab") || !strings.Contains(out, "x") {
		t.Errorf("RenderScreen() = %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected one line break, got %q", out)
	}
}

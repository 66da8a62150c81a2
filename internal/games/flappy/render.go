package flappy

import (
	"fmt"

	"github.com/vovakirdan/flappy-sim/internal/core"
	"github.com/vovakirdan/flappy-sim/internal/sim"
)

// Rows reserved above the play field.
const hudRows = 1

// Visual characters for rendering
const (
	PlayerChar    = '●'
	PlayerBeak    = '▶'
	PipeChar      = '█'
	PipeCapTop    = '▀'
	PipeCapBottom = '▄'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	// The screen may have been resized since Reset.
	if g.view.Cols() != dst.Width() || g.view.Rows() != dst.Height()-hudRows {
		g.view = NewViewport(g.session.Bounds(), dst.Width(), dst.Height()-hudRows, hudRows)
	}

	for _, p := range g.session.Pipes() {
		g.drawPipe(dst, p)
	}
	g.drawPlayer(dst, g.session.Player())
	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.session.State() == sim.StateGameOver {
		reason := g.session.Violation().String()
		g.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("%s  |  Score: %d  |  Press R to restart", reason, g.session.Score()))
	}
}

// drawPipe renders both pipes of a pair with caps facing the gap.
func (g *Game) drawPipe(dst *core.Screen, p sim.PipePair) {
	top := g.view.Project(p.TopBox())
	bottom := g.view.Project(p.BottomBox())

	dst.DrawRect(top, PipeChar, core.ColorGreen)
	dst.DrawRect(bottom, PipeChar, core.ColorGreen)

	if top.H > 0 {
		dst.DrawHLine(top.X, top.Bottom()-1, top.W, PipeCapTop, core.ColorBrightGreen)
	}
	if bottom.H > 0 {
		dst.DrawHLine(bottom.X, bottom.Y, bottom.W, PipeCapBottom, core.ColorBrightGreen)
	}
}

// drawPlayer renders the bird over its bounding box.
func (g *Game) drawPlayer(dst *core.Screen, p sim.Player) {
	box := core.NewAABB(core.V(p.X, p.Y), 2*p.HalfWidth, 2*p.HalfHeight)
	r := g.view.Project(box)
	if r.W == 0 || r.H == 0 {
		x, y := g.view.Point(core.V(p.X, p.Y))
		dst.SetColored(x, y, PlayerChar, core.ColorYellow)
		return
	}

	dst.DrawRect(r, PlayerChar, core.ColorYellow)
	dst.SetColored(r.Right()-1, r.Y+r.H/2, PlayerBeak, core.ColorBrightRed)
}

func (g *Game) drawHUD(dst *core.Screen) {
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", g.session.Score()), core.ColorWhite)

	right := fmt.Sprintf("%s  run %s", g.Title(), shortID(g.runID))
	dst.DrawTextColored(dst.Width()-len([]rune(right))-1, 0, right, core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorCyan)

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightRed)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

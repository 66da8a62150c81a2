package flappy

import (
	"math"

	"github.com/vovakirdan/flappy-sim/internal/core"
	"github.com/vovakirdan/flappy-sim/internal/sim"
)

// Viewport maps world units (origin at the centre, y up) onto a block of
// screen cells (origin at the top-left, y down).
type Viewport struct {
	bounds sim.Bounds
	cols   int
	rows   int
	top    int // first screen row of the play field
}

// NewViewport fits bounds into cols x rows cells starting at screen row top.
func NewViewport(bounds sim.Bounds, cols, rows, top int) Viewport {
	return Viewport{
		bounds: bounds,
		cols:   core.Max(cols, 1),
		rows:   core.Max(rows, 1),
		top:    top,
	}
}

// Cols returns the play field width in cells.
func (v Viewport) Cols() int { return v.cols }

// Rows returns the play field height in cells.
func (v Viewport) Rows() int { return v.rows }

// Top returns the first screen row of the play field.
func (v Viewport) Top() int { return v.top }

// Col returns the screen column containing world x.
func (v Viewport) Col(x float64) int {
	return int(math.Floor(float64(v.cols) * (x - v.bounds.Left()) / v.bounds.Width))
}

// Row returns the screen row containing world y.
func (v Viewport) Row(y float64) int {
	return v.top + int(math.Floor(float64(v.rows)*(v.bounds.Top()-y)/v.bounds.Height))
}

// Point projects a world position to a screen cell.
func (v Viewport) Point(p core.Vec2) (int, int) {
	return v.Col(p.X), v.Row(p.Y)
}

// Project returns the screen cells covered by a world box, clipped to the
// play field.
func (v Viewport) Project(b core.AABB) core.Rect {
	x0, x1 := v.Col(b.Min().X), v.Col(b.Max().X)
	y0, y1 := v.Row(b.Max().Y), v.Row(b.Min().Y)

	x0 = core.Clamp(x0, 0, v.cols)
	x1 = core.Clamp(x1, 0, v.cols)
	y0 = core.Clamp(y0, v.top, v.top+v.rows)
	y1 = core.Clamp(y1, v.top, v.top+v.rows)

	return core.NewRect(x0, y0, core.Max(x1-x0, 0), core.Max(y1-y0, 0))
}

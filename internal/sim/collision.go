package sim

import "github.com/vovakirdan/flappy-sim/internal/core"

// Violation is the rule a player broke to end a session.
type Violation int

const (
	ViolationNone Violation = iota
	ViolationOutOfBounds
	ViolationCollision
)

// String returns a stable name used in logs and storage.
func (v Violation) String() string {
	switch v {
	case ViolationNone:
		return "none"
	case ViolationOutOfBounds:
		return "out_of_bounds"
	case ViolationCollision:
		return "collision"
	default:
		return "unknown"
	}
}

// Player is a read-only view of the player for presentation and tests.
type Player struct {
	X          float64
	Y          float64
	VY         float64
	HalfWidth  float64
	HalfHeight float64
}

// Collider returns the bounding circle used against pipes.
func (p Player) Collider() core.Circle {
	return core.Circle{Center: core.V(p.X, p.Y), Radius: p.HalfHeight}
}

// OutOfBounds reports whether the player's vertical extent leaves the
// world. Touching an edge exactly is still in bounds.
func OutOfBounds(p Player, b Bounds) bool {
	bottom := p.Y - p.HalfHeight
	top := p.Y + p.HalfHeight
	return bottom < b.Bottom() || top > b.Top()
}

// pipeBoxes returns the top and bottom boxes tested for a pair.
func pipeBoxes(pair PipePair, cfg Config) (core.AABB, core.AABB) {
	if cfg.Collider == ColliderLegacy {
		// Rebuilt from the config at the pair's x, ignoring the pair's own extents.
		w, h := 2*cfg.PipeHalfWidth, cfg.PipeHeight()
		b := cfg.Bounds()
		top := core.NewAABB(core.V(pair.CenterX, b.Top()), w, h)
		bottom := core.NewAABB(core.V(pair.CenterX, b.Bottom()), w, h)
		return top, bottom
	}
	return pair.TopBox(), pair.BottomBox()
}

// HitsPipe tests the player's circle against every pair and returns the
// first pair hit.
func HitsPipe(p Player, pairs []PipePair, cfg Config) (Handle, bool) {
	circle := p.Collider()
	for _, pair := range pairs {
		top, bottom := pipeBoxes(pair, cfg)
		if core.CircleIntersectsAABB(circle, top) || core.CircleIntersectsAABB(circle, bottom) {
			return pair.Handle, true
		}
	}
	return Handle{}, false
}

// Detect runs the bounds check and then the pipe check.
func Detect(p Player, pairs []PipePair, cfg Config) Violation {
	if OutOfBounds(p, cfg.Bounds()) {
		return ViolationOutOfBounds
	}
	if _, hit := HitsPipe(p, pairs, cfg); hit {
		return ViolationCollision
	}
	return ViolationNone
}

// Package core provides fundamental types and utilities shared by the
// simulation and the terminal host. It has no external dependencies so that
// game logic stays pure and testable.
package core

import "math"

// Rect is an integer cell rectangle used for screen drawing.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Vec2 is a point or offset in world units.
type Vec2 struct {
	X, Y float64
}

// V creates a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// AABB is an axis-aligned box described by its center and half extents.
type AABB struct {
	Center Vec2
	Half   Vec2
}

// NewAABB builds a box from a center point and full width and height.
func NewAABB(center Vec2, width, height float64) AABB {
	return AABB{Center: center, Half: Vec2{X: width / 2, Y: height / 2}}
}

// Min returns the bottom-left corner.
func (b AABB) Min() Vec2 {
	return Vec2{X: b.Center.X - b.Half.X, Y: b.Center.Y - b.Half.Y}
}

// Max returns the top-right corner.
func (b AABB) Max() Vec2 {
	return Vec2{X: b.Center.X + b.Half.X, Y: b.Center.Y + b.Half.Y}
}

// ClosestPoint returns the point inside the box nearest to p.
func (b AABB) ClosestPoint(p Vec2) Vec2 {
	lo, hi := b.Min(), b.Max()
	return Vec2{X: ClampF(p.X, lo.X, hi.X), Y: ClampF(p.Y, lo.Y, hi.Y)}
}

// Circle is a bounding circle in world units.
type Circle struct {
	Center Vec2
	Radius float64
}

// CircleIntersectsAABB reports whether c and b overlap. Touching counts as
// an intersection.
func CircleIntersectsAABB(c Circle, b AABB) bool {
	p := b.ClosestPoint(c.Center)
	dx := c.Center.X - p.X
	dy := c.Center.Y - p.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

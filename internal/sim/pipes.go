package sim

import (
	"fmt"

	"github.com/vovakirdan/flappy-sim/internal/core"
)

// Handle identifies a live pipe pair. A slot's generation is bumped when its
// pair retires, so handles held past retirement are detected as stale. The
// zero Handle never refers to a live pair.
type Handle struct {
	Index      uint32
	Generation uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return h == Handle{}
}

// String formats the handle as index:generation.
func (h Handle) String() string {
	return fmt.Sprintf("%d:%d", h.Index, h.Generation)
}

// PipePair is a top and bottom pipe sharing one horizontal position.
type PipePair struct {
	Handle    Handle
	CenterX   float64
	HalfWidth float64
	Height    float64 // Height of each pipe
	TopY      float64 // Centre y of the top pipe
	BottomY   float64 // Centre y of the bottom pipe
}

// Right returns the x-coordinate of the trailing (right) edge.
func (p PipePair) Right() float64 {
	return p.CenterX + p.HalfWidth
}

// Left returns the x-coordinate of the leading (left) edge.
func (p PipePair) Left() float64 {
	return p.CenterX - p.HalfWidth
}

// TopBox returns the bounding box of the top pipe.
func (p PipePair) TopBox() core.AABB {
	return core.NewAABB(core.V(p.CenterX, p.TopY), 2*p.HalfWidth, p.Height)
}

// BottomBox returns the bounding box of the bottom pipe.
func (p PipePair) BottomBox() core.AABB {
	return core.NewAABB(core.V(p.CenterX, p.BottomY), 2*p.HalfWidth, p.Height)
}

type pipeSlot struct {
	pair       PipePair
	generation uint32
	live       bool
}

// pipeArena stores pipe pairs in reusable slots and remembers spawn order.
type pipeArena struct {
	slots []pipeSlot
	free  []uint32
	order []uint32 // live slot indices, oldest first
}

func newPipeArena(capacity int) *pipeArena {
	return &pipeArena{
		slots: make([]pipeSlot, 0, capacity),
		order: make([]uint32, 0, capacity),
	}
}

// insert stores p in a free slot and returns its handle.
func (a *pipeArena) insert(p PipePair) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, pipeSlot{generation: 1})
	}

	slot := &a.slots[idx]
	p.Handle = Handle{Index: idx, Generation: slot.generation}
	slot.pair = p
	slot.live = true
	a.order = append(a.order, idx)
	return p.Handle
}

// retire frees the slot at idx. It does not touch the order list.
func (a *pipeArena) retire(idx uint32) Handle {
	slot := &a.slots[idx]
	h := slot.pair.Handle
	slot.live = false
	slot.generation++
	slot.pair = PipePair{}
	a.free = append(a.free, idx)
	return h
}

func (a *pipeArena) get(h Handle) (PipePair, bool) {
	if int(h.Index) >= len(a.slots) {
		return PipePair{}, false
	}
	slot := a.slots[h.Index]
	if !slot.live || slot.generation != h.Generation {
		return PipePair{}, false
	}
	return slot.pair, true
}

// scroll moves every pair left by dx and retires pairs whose right edge is
// left of minX. Retired handles are returned oldest first.
func (a *pipeArena) scroll(dx, minX float64) []Handle {
	var retired []Handle
	kept := a.order[:0]
	for _, idx := range a.order {
		slot := &a.slots[idx]
		slot.pair.CenterX -= dx
		if slot.pair.Right() < minX {
			retired = append(retired, a.retire(idx))
			continue
		}
		kept = append(kept, idx)
	}
	a.order = kept
	return retired
}

func (a *pipeArena) retireAll() {
	for _, idx := range a.order {
		a.retire(idx)
	}
	a.order = a.order[:0]
}

func (a *pipeArena) count() int {
	return len(a.order)
}

// pairs returns a copy of the live pairs in spawn order.
func (a *pipeArena) pairs() []PipePair {
	out := make([]PipePair, len(a.order))
	for i, idx := range a.order {
		out[i] = a.slots[idx].pair
	}
	return out
}

// newPair builds a pair centred at x using the configured geometry.
func newPair(cfg Config, x float64) PipePair {
	return PipePair{
		CenterX:   x,
		HalfWidth: cfg.PipeHalfWidth,
		Height:    cfg.PipeHeight(),
		TopY:      cfg.WorldHeight / 2,
		BottomY:   -cfg.WorldHeight / 2,
	}
}

// initialPositions interpolates n centres evenly over [start, end], both
// ends included. A single pair sits at start.
func initialPositions(start, end float64, n int) []float64 {
	xs := make([]float64, n)
	if n == 1 {
		xs[0] = start
		return xs
	}
	for i := range xs {
		xs[i] = start + (end-start)*float64(i)/float64(n-1)
	}
	return xs
}

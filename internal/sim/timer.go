package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/flappy-sim/internal/core"
)

// maxFiresPerAdvance caps the fires reported for one oversized step.
const maxFiresPerAdvance = 1 << 20

// SpawnTimer is a repeating timer for the host's periodic spawn calls.
// Advance accumulates elapsed time and reports how many whole periods
// completed, keeping the remainder for the next call.
type SpawnTimer struct {
	period  float64
	elapsed float64
}

// NewSpawnTimer creates a timer with the given period in seconds.
func NewSpawnTimer(period float64) *SpawnTimer {
	return &SpawnTimer{period: period}
}

// Period returns the timer period in seconds.
func (t *SpawnTimer) Period() float64 {
	return t.period
}

// Advance adds dt seconds and returns the number of times the timer fired.
// A non-positive period never fires. Negative or non-finite dt is rejected
// and leaves the timer unchanged.
func (t *SpawnTimer) Advance(dt float64) (int, error) {
	if dt < 0 || !core.IsFinite(dt) {
		return 0, fmt.Errorf("%w: dt %v", ErrInvalidArgument, dt)
	}
	if t.period <= 0 || dt == 0 {
		return 0, nil
	}
	t.elapsed += dt
	if t.elapsed < t.period {
		return 0, nil
	}
	periods := math.Floor(t.elapsed / t.period)
	t.elapsed = math.Mod(t.elapsed, t.period)
	if periods > maxFiresPerAdvance {
		periods = maxFiresPerAdvance
	}
	return int(periods), nil
}

// Reset restarts the current period.
func (t *SpawnTimer) Reset() {
	t.elapsed = 0
}

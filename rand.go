package pso

import (
	"math/rand"
	"time"
)

// Source supplies independent uniform draws in [0,1).  *math/rand.Rand
// satisfies it.  A Source is owned by a single swarm and is not safe for
// concurrent use unless the implementation says otherwise.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded generator.  A zero seed picks a time-based
// seed; use any other value for reproducible runs.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// maxFloat64 is the largest value rand.Float64 can return.
const maxFloat64 = 1 - 0x1p-53

// uniformClosed draws from [lo, hi].  The unit draw is stretched so that
// the largest value a [0,1) generator produces lands exactly on hi.
func uniformClosed(src Source, lo, hi float64) float64 {
	u := src.Float64() / maxFloat64
	if u > 1 {
		u = 1
	}
	return lo + u*(hi-lo)
}

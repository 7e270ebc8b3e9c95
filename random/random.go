// Package random supplies the non-deterministic-looking but rewindable
// values used to fill RAM and registers at reset, when the configured
// RAMInitPattern calls for it. Real hardware powers up with RAM in a
// pattern-dependent, not-quite-random state; the core models this with a
// seeded PRNG rather than all-zeroes, so that programs relying on the
// "undefined" startup state behave the way they do on real machines.
package random

import "math/rand"

// Coords is the minimal clock position needed to seed the generator so that
// two instances fed the same coordinate sequence produce the same stream —
// useful for rewind/deterministic replay.
type Coords interface {
	// Cycle returns the master cycle count associated with the current
	// request for a random value.
	Cycle() uint64
}

// Random produces pseudo-random bytes seeded from the clock, so that a
// rewind-and-replay reproduces the exact same sequence of "random" startup
// values.
type Random struct {
	coords Coords

	// ZeroSeed forces the generator to behave deterministically regardless
	// of clock position — used by regression tests that need the same
	// initial state on every run.
	ZeroSeed bool

	rng *rand.Rand
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(coords Coords) *Random {
	return &Random{
		coords: coords,
		rng:    rand.New(rand.NewSource(1)),
	}
}

func (r *Random) seed() int64 {
	if r.ZeroSeed || r.coords == nil {
		return 1
	}
	return int64(r.coords.Cycle()) + 1
}

// NoRewind returns a random value in [0, n) without reseeding — successive
// calls advance the underlying stream, so the result is not rewindable to a
// specific clock position (appropriate for a single reset sequence that
// consumes several values in a row).
func (r *Random) NoRewind(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}

// Rewindable returns a random value in [0, n) that depends only on the
// current clock position (or the ZeroSeed override), so that rewinding the
// emulation to the same cycle and asking again reproduces the same value.
func (r *Random) Rewindable(n int) int {
	if n <= 0 {
		return 0
	}
	src := rand.New(rand.NewSource(r.seed()))
	return src.Intn(n)
}

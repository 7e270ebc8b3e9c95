// Package instance defines the parts of the emulation that are specific to
// one running machine but are not the machine itself: configuration,
// deterministic randomness, and the master cycle counter those draw on.
// Keeping them here, rather than on the machine type directly, is what lets
// a host run more than one machine in the same process without the two
// interfering with each other's RAM-init noise.
package instance

import (
	"github.com/sixtyfour/core64/config"
	"github.com/sixtyfour/core64/random"
)

// Coords is the running total of system cycles since power-on. It is the
// clock random.Random seeds from, and the cycle count hardware/dmadebug
// logs.
type Coords struct {
	cycle uint64
}

// Cycle implements random.Coords.
func (c *Coords) Cycle() uint64 {
	return c.cycle
}

// Tick advances the master cycle counter by one system cycle.
func (c *Coords) Tick() {
	c.cycle++
}

// Instance holds the per-machine configuration, clock, and RNG.
type Instance struct {
	Config *config.Machine
	Coords *Coords
	Random *random.Random
}

// NewInstance creates an Instance from the given configuration. The
// configuration is validated before anything else is built.
func NewInstance(cfg config.Machine) (*Instance, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	coords := &Coords{}

	ins := &Instance{
		Config: &cfg,
		Coords: coords,
		Random: random.NewRandom(coords),
	}

	return ins, nil
}

// Normalise forces deterministic RAM-init noise, for regression tests that
// require byte-identical runs.
func (ins *Instance) Normalise() {
	ins.Random.ZeroSeed = true
}

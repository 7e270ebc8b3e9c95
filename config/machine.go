// Package config defines the host-facing configuration object for the
// emulation core. Unlike the teacher's reflective, disk-persisted
// preferences tree, Machine is a plain struct the host fills in once (or
// mutates between Reset calls); nothing here is read from or written to
// disk — that framing belongs to the host, not the core.
package config

import (
	"github.com/sixtyfour/core64/errors"
	"github.com/sixtyfour/core64/hardware/clocks"
)

// GlueLogic identifies the discrete logic revision responsible for VIC bank
// transitions on CIA2 port A writes.
type GlueLogic int

const (
	Discrete GlueLogic = iota
	CustomIC
)

// RAMInitPattern selects the byte pattern used to fill RAM at a hard reset.
// C64_pattern_40 and C64_pattern_80 name the two commonly documented
// power-on patterns (alternating runs of 40 and 80 bytes of $00/$ff).
// hardware/memory does not read this setting: it always fills RAM with
// $00 or $FF per byte at random.
type RAMInitPattern int

const (
	C64PatternRandom RAMInitPattern = iota
	C64Pattern40
	C64Pattern80
)

// PowerGridFrequency names the mains frequency (50/60 Hz) and whether it
// is unregulated. TicksPerSecond and Unstable report those two facts; the
// orchestrator ticks the CIA TOD clocks once per video frame and does not
// read this setting, so no tick jitter is injected.
type PowerGridFrequency int

const (
	Stable50 PowerGridFrequency = iota
	Unstable50
	Stable60
	Unstable60
)

// TicksPerSecond is the nominal TOD tick rate for the power grid frequency.
func (f PowerGridFrequency) TicksPerSecond() int {
	switch f {
	case Stable50, Unstable50:
		return 50
	default:
		return 60
	}
}

// Unstable reports whether this frequency should inject tick jitter.
func (f PowerGridFrequency) Unstable() bool {
	return f == Unstable50 || f == Unstable60
}

// DriveType identifies the floppy drive model attached to the IEC bus. The
// core only implements the 1541; other values are accepted so that a host
// can report a configuration error rather than the core silently treating
// every drive as a 1541.
type DriveType int

const (
	Drive1541 DriveType = iota
	Drive1541II
	Drive1571
	Drive1581
)

// Supported reports whether this core can run the given drive type.
func (d DriveType) Supported() bool {
	return d == Drive1541 || d == Drive1541II
}

// DriveConfig is the per-drive portion of Machine.
type DriveConfig struct {
	Type       DriveType
	Connected  bool
	SwitchedOn bool
}

// CheatFlags are debug/cheat toggles that alter otherwise-accurate behaviour.
type CheatFlags struct {
	CheckSSCollisions bool // sprite-sprite collision detection
	CheckSBCollisions bool // sprite-background collision detection
	HideSprites       bool
}

// Machine is the core's configuration object, per spec.md §6.
type Machine struct {
	VideoStandard      clocks.Standard
	GlueLogic          GlueLogic
	RAMInitPattern     RAMInitPattern
	PowerGridFrequency PowerGridFrequency
	Drives             [2]DriveConfig
	Cheats             CheatFlags

	// DMADebug enables the live instrumentation endpoint described in
	// SPEC_FULL.md's DOMAIN STACK section.
	DMADebug bool
}

// Default returns a Machine configured as a PAL C64 with one connected,
// switched-on 1541 drive and no cheats.
func Default() Machine {
	return Machine{
		VideoStandard:      clocks.PAL_6569_R3,
		GlueLogic:          CustomIC,
		RAMInitPattern:     C64PatternRandom,
		PowerGridFrequency: Stable50,
		Drives: [2]DriveConfig{
			{Type: Drive1541, Connected: true, SwitchedOn: true},
			{Type: Drive1541, Connected: false, SwitchedOn: false},
		},
	}
}

// Validate reports a configuration error (spec.md §7) if the Machine holds
// an option the core cannot run with. It never mutates m.
func (m Machine) Validate() error {
	for i, d := range m.Drives {
		if d.Connected && !d.Type.Supported() {
			return errors.Errorf(errors.UnknownDriveType, d.Type)
		}
		_ = i
	}
	return nil
}

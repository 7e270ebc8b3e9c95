// Package clocks defines the constant values that describe the speed and
// per-scanline cycle layout of the six VIC-II revisions named by the core's
// configuration object.
//
// Values taken from the C64 community's well-known timing references (the
// same line/cycle counts documented in VICE's and VirtualC64's timing
// tables): PAL machines run 63 cycles per line across 312 lines; NTSC
// machines run 65 (the older 6567R56A: 64) cycles per line across 263
// (6567R56A: 262) lines.
package clocks

// Standard identifies a VIC-II revision. Revisions differ not only in
// cycles-per-line but in a handful of well-defined behaviour bits (grey-dot
// bug, delayed light-pen IRQs, D011 mid-cycle visibility) — see
// hardware/vic.Revision for the dispatch table those bits drive.
type Standard int

const (
	PAL_6569_R1 Standard = iota
	PAL_6569_R3
	PAL_8565
	NTSC_6567
	NTSC_6567_R56A
	NTSC_8562
)

func (s Standard) String() string {
	switch s {
	case PAL_6569_R1:
		return "PAL 6569R1"
	case PAL_6569_R3:
		return "PAL 6569R3"
	case PAL_8565:
		return "PAL 8565"
	case NTSC_6567:
		return "NTSC 6567"
	case NTSC_6567_R56A:
		return "NTSC 6567R56A"
	case NTSC_8562:
		return "NTSC 8562"
	}
	return "unknown video standard"
}

// IsPAL reports whether the standard belongs to the PAL family.
func (s Standard) IsPAL() bool {
	switch s {
	case PAL_6569_R1, PAL_6569_R3, PAL_8565:
		return true
	}
	return false
}

// CyclesPerLine is the number of cycles (= number of raster-cycle handlers)
// in one scanline for this video standard.
func (s Standard) CyclesPerLine() int {
	if s.IsPAL() {
		return 63
	}
	if s == NTSC_6567_R56A {
		return 64
	}
	return 65
}

// LinesPerFrame is the number of scanlines, 0..LinesPerFrame-1, in one frame.
func (s Standard) LinesPerFrame() int {
	if s.IsPAL() {
		return 312
	}
	if s == NTSC_6567_R56A {
		return 262
	}
	return 263
}

// FirstDMADelayLine is the raster line (0x30 = 48) at which DEN is latched
// for bad-line generation for the remainder of the frame. Identical across
// all six revisions.
const FirstDMADelayLine = 0x30

// ColourClocksPerCPUCycle is the number of VIC-II dot-clock "colour cycles"
// that elapse per CPU/system cycle: the VIC-II always runs at 8 pixels per
// cycle (1 cycle = 8 pixel clocks), regardless of PAL/NTSC.
const ColourClocksPerCPUCycle = 8

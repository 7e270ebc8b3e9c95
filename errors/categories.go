package errors

// Category patterns for the four error kinds the core distinguishes. Each is
// used with Errorf to build a concrete error, and with Is/Has to test for it.
//
// Configuration errors (missing ROM, unsupported cartridge variant, invalid
// option) are surfaced on the offending API call; core state is left
// unchanged.
const (
	MissingROM           = "missing %s ROM"
	UnsupportedCartridge = "unsupported cartridge variant: %s"
	InvalidOption        = "invalid option: %s"
	UnknownDriveType     = "unknown drive type: %v"
)

// Decode errors occur while loading disk images or cartridges (wrong magic,
// truncated data, unknown chip type). Partial state is discarded.
const (
	BadMagic         = "bad magic number: %s"
	TruncatedImage   = "truncated disk image: %s"
	UnknownChipType  = "unknown cartridge chip type: %v"
	UnrecognisedSize = "unrecognised cartridge size (%d bytes)"
	InvalidGCRCodeword = "invalid GCR codeword at offset %d"
)

// Runtime assertions are invariant violations. They are fatal: the core
// halts and reports which invariant failed.
const (
	InvariantViolation  = "invariant violation: %s"
	UnknownMemorySource = "unknown memory source for address $%04x"
	VMLIOutOfRange      = "vmli out of range: %d"
)

// UnpokeableAddress names a poke to an address that cannot be written
// directly. No Poke implementation in this core returns it: pokes to ROM
// fall through to the underlying RAM, matching real hardware.
const UnpokeableAddress = "cannot poke address $%04x directly"

// Debug events are not failures: hardware/debugger's Run returns one of
// these, wrapped with Errorf, to tell its caller why it stopped stepping.
// Is/Has let a REPL distinguish "a breakpoint fired" from a real error
// without a type switch.
const (
	BreakpointHit = "breakpoint hit at $%04x"
	WatchHit      = "watch on $%04x changed %02x -> %02x"
)

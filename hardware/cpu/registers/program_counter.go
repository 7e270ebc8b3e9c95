package registers

import "fmt"

// ProgramCounter is the 6510's 16-bit PC register.
type ProgramCounter struct {
	value uint16
}

// NewProgramCounter creates a PC register with the given initial value.
func NewProgramCounter(val uint16) ProgramCounter {
	return ProgramCounter{value: val}
}

func (pc ProgramCounter) Label() string { return "PC" }

func (pc ProgramCounter) String() string { return fmt.Sprintf("%04x", pc.value) }

// Value returns the current PC value.
func (pc ProgramCounter) Value() uint16 { return pc.value }

// Address is an alias for Value, for use where an address is expected.
func (pc ProgramCounter) Address() uint16 { return pc.value }

// Load sets the PC to val.
func (pc *ProgramCounter) Load(val uint16) { pc.value = val }

// Add adds val to the PC, wrapping at 64K, and reports whether the addition
// wrapped.
func (pc *ProgramCounter) Add(val uint16) (carry bool) {
	v := pc.value
	pc.value += val
	return pc.value < v
}

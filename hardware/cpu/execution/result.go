// Package execution records the per-instruction outcome of the CPU's
// cycle-by-cycle decode/execute loop: which opcode ran, how many bytes and
// cycles it consumed, and whether it tripped one of the 6510's documented
// addressing-mode quirks.
package execution

import "github.com/sixtyfour/core64/hardware/cpu/instructions"

// Result is updated cycle-by-cycle as ExecuteInstruction runs. A Result
// whose Final field is false is incomplete: still-zero fields should not be
// trusted until the instruction has finished.
type Result struct {
	Defn *instructions.Definition

	ByteCount int
	Address   uint16

	InstructionData uint16

	Cycles    int
	PageFault bool
	Bug       Bug
	Error     string

	BranchSuccess bool

	Final bool
}

// Reset clears the Result for the start of a new instruction.
func (r *Result) Reset() {
	r.Defn = nil
	r.ByteCount = 0
	r.Address = 0
	r.InstructionData = 0
	r.Cycles = 0
	r.PageFault = false
	r.Bug = NoBug
	r.Error = ""
	r.BranchSuccess = false
	r.Final = false
}

package instructions_test

import (
	"testing"

	"github.com/sixtyfour/core64/hardware/cpu/instructions"
	"github.com/sixtyfour/core64/internal/ctest"
)

func TestDefinitionsComplete(t *testing.T) {
	ctest.ExpectEquality(t, 256, len(instructions.Definitions))
	for i, def := range instructions.Definitions {
		ctest.ExpectEquality(t, uint8(i), def.OpCode)
	}
}

func TestBRKIsInterrupt(t *testing.T) {
	def := instructions.Definitions[0x00]
	ctest.ExpectEquality(t, instructions.BRK, def.Operator)
	ctest.ExpectEquality(t, instructions.Interrupt, def.Effect)
}

func TestUndocumentedOpcodesFlagged(t *testing.T) {
	def := instructions.Definitions[0xA3] // LAX (ind,X)
	ctest.ExpectEquality(t, instructions.LAX, def.Operator)
	ctest.ExpectSuccess(t, def.Undocumented)
}

func TestBranchDetection(t *testing.T) {
	def := instructions.Definitions[0xD0] // BNE
	ctest.ExpectSuccess(t, def.IsBranch())

	def = instructions.Definitions[0x4C] // JMP absolute
	ctest.ExpectFailure(t, def.IsBranch())
}

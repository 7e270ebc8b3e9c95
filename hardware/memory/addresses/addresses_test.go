package addresses_test

import (
	"testing"

	"github.com/sixtyfour/core64/hardware/memory/addresses"
	"github.com/sixtyfour/core64/internal/ctest"
)

func TestIOWindowsAreContiguous(t *testing.T) {
	ctest.ExpectEquality(t, addresses.SIDBase, addresses.VICEnd)
	ctest.ExpectEquality(t, addresses.ColorRAMBase, addresses.SIDEnd)
	ctest.ExpectEquality(t, addresses.CIA1Base, addresses.ColorRAMEnd)
	ctest.ExpectEquality(t, addresses.CIA2Base, addresses.CIA1End)
	ctest.ExpectEquality(t, addresses.IO1Base, addresses.CIA2End)
	ctest.ExpectEquality(t, addresses.IO2Base, addresses.IO1End)
	ctest.ExpectEquality(t, uint16(0xE000), addresses.IO2End)
}

func TestVectorsInTopOfKernalWindow(t *testing.T) {
	ctest.ExpectSuccess(t, addresses.VectorNMI >= addresses.KernalROMBase)
	ctest.ExpectSuccess(t, addresses.VectorIRQ >= addresses.KernalROMBase)
}

func TestProcPortDefaults(t *testing.T) {
	ctest.ExpectEquality(t, uint8(0x37), addresses.ProcPortDefaultData)
	ctest.ExpectSuccess(t, addresses.ProcPortDefaultData&addresses.ProcPortLORAM != 0)
	ctest.ExpectSuccess(t, addresses.ProcPortDefaultData&addresses.ProcPortHIRAM != 0)
	ctest.ExpectSuccess(t, addresses.ProcPortDefaultData&addresses.ProcPortCHAREN != 0)
}

package memory_test

import (
	"testing"

	"github.com/sixtyfour/core64/config"
	"github.com/sixtyfour/core64/hardware/instance"
	"github.com/sixtyfour/core64/hardware/memory"
	"github.com/sixtyfour/core64/hardware/memory/addresses"
	"github.com/sixtyfour/core64/internal/ctest"
)

func newTestMemory(t *testing.T) *memory.Memory {
	t.Helper()
	ins, err := instance.NewInstance(config.Default())
	ctest.ExpectSuccess(t, err)
	ins.Normalise()
	return memory.NewMemory(ins)
}

func TestProcessorPortReadWrite(t *testing.T) {
	m := newTestMemory(t)
	ctest.ExpectEquality(t, addresses.ProcPortDefaultData, mustRead(t, m, 0x0001))

	ctest.ExpectSuccess(t, m.Write(0x0001, 0x35))
	ctest.ExpectEquality(t, uint8(0x35), mustRead(t, m, 0x0001))
}

func TestRAMReadWrite(t *testing.T) {
	m := newTestMemory(t)
	ctest.ExpectSuccess(t, m.Write(0x0400, 0x42))
	ctest.ExpectEquality(t, uint8(0x42), mustRead(t, m, 0x0400))
}

func TestKernalVisibleByDefault(t *testing.T) {
	m := newTestMemory(t)
	err := m.LoadKernalROM(make([]byte, addresses.KernalROMSize))
	ctest.ExpectSuccess(t, err)
	// a freshly loaded, zeroed kernal ROM should read back as zero, not the
	// RAM underneath it (which was randomised at power-on).
	ctest.ExpectEquality(t, uint8(0x00), mustRead(t, m, addresses.KernalROMBase))
}

func TestWritingROMBankWritesThroughToRAM(t *testing.T) {
	m := newTestMemory(t)
	ctest.ExpectSuccess(t, m.Write(addresses.KernalROMBase, 0x99))
	ctest.ExpectSuccess(t, m.Write(0x0001, 0x35)) // HIRAM low, bank becomes RAM
	ctest.ExpectEquality(t, uint8(0x99), mustRead(t, m, addresses.KernalROMBase))
}

func TestColorRAMLowNibbleOnly(t *testing.T) {
	m := newTestMemory(t)
	ctest.ExpectSuccess(t, m.Write(addresses.ColorRAMBase, 0xAF))
	got := mustRead(t, m, addresses.ColorRAMBase)
	ctest.ExpectEquality(t, uint8(0x0F), got&0x0F)
}

func TestOpenIOWithoutAttachedChipsReturnsOpenBus(t *testing.T) {
	m := newTestMemory(t)
	ctest.ExpectEquality(t, memory.OpenBusValue, mustRead(t, m, addresses.VICBase))
}

func TestPeekAgreesWithReadOutsideIO(t *testing.T) {
	m := newTestMemory(t)
	ctest.ExpectSuccess(t, m.Write(0x0400, 0x77))
	peeked, err := m.Peek(0x0400)
	ctest.ExpectSuccess(t, err)
	ctest.ExpectEquality(t, mustRead(t, m, 0x0400), peeked)
}

func TestPokeWritesThroughROM(t *testing.T) {
	m := newTestMemory(t)
	ctest.ExpectSuccess(t, m.Poke(addresses.KernalROMBase, 0x55))
	ctest.ExpectSuccess(t, m.Write(0x0001, 0x35)) // bank to RAM to observe the poke
	ctest.ExpectEquality(t, uint8(0x55), mustRead(t, m, addresses.KernalROMBase))
}

func mustRead(t *testing.T, m *memory.Memory, addr uint16) uint8 {
	t.Helper()
	v, err := m.Read(addr)
	ctest.ExpectSuccess(t, err)
	return v
}

package cpu_test

import (
	"testing"

	"github.com/sixtyfour/core64/hardware/cpu"
	"github.com/sixtyfour/core64/internal/ctest"
)

// flatMemory is a minimal bus.CPUBus for exercising the CPU in isolation.
type flatMemory struct {
	ram [65536]uint8
}

func (m *flatMemory) Read(address uint16) (uint8, error)  { return m.ram[address], nil }
func (m *flatMemory) Write(address uint16, data uint8) error {
	m.ram[address] = data
	return nil
}

func newTestCPU(t *testing.T) (*cpu.CPU, *flatMemory) {
	t.Helper()
	mem := &flatMemory{}
	mc := cpu.NewCPU(nil, mem)
	mc.Reset()
	mc.LastResult.Final = true
	return mc, mem
}

func run(t *testing.T, mc *cpu.CPU) {
	t.Helper()
	ctest.ExpectSuccess(t, mc.ExecuteInstruction(cpu.NilCycleCallback))
}

func TestLDAImmediateSetsAccumulatorAndFlags(t *testing.T) {
	mc, mem := newTestCPU(t)
	mc.LoadPC(0x1000)
	mem.ram[0x1000] = 0xa9 // LDA #$00
	mem.ram[0x1001] = 0x00
	run(t, mc)
	ctest.ExpectEquality(t, uint8(0x00), mc.A.Value())
	ctest.ExpectSuccess(t, mc.Status.Zero)
	ctest.ExpectFailure(t, mc.Status.Sign)
	ctest.ExpectEquality(t, 2, mc.LastResult.Cycles)
}

func TestSTAAbsoluteWritesMemory(t *testing.T) {
	mc, mem := newTestCPU(t)
	mc.LoadPC(0x1000)
	mem.ram[0x1000] = 0xa9 // LDA #$42
	mem.ram[0x1001] = 0x42
	run(t, mc)
	mc.LastResult.Final = true

	mem.ram[0x1002] = 0x8d // STA $2000
	mem.ram[0x1003] = 0x00
	mem.ram[0x1004] = 0x20
	run(t, mc)
	ctest.ExpectEquality(t, uint8(0x42), mem.ram[0x2000])
	ctest.ExpectEquality(t, 4, mc.LastResult.Cycles)
}

func TestADCSetsCarryOnOverflow(t *testing.T) {
	mc, mem := newTestCPU(t)
	mc.A.Load(0xff)
	mc.Status.Carry = false
	mc.LoadPC(0x1000)
	mem.ram[0x1000] = 0x69 // ADC #$01
	mem.ram[0x1001] = 0x01
	run(t, mc)
	ctest.ExpectEquality(t, uint8(0x00), mc.A.Value())
	ctest.ExpectSuccess(t, mc.Status.Carry)
	ctest.ExpectSuccess(t, mc.Status.Zero)
}

func TestADCDecimalMode(t *testing.T) {
	mc, mem := newTestCPU(t)
	mc.A.Load(0x09)
	mc.Status.DecimalMode = true
	mc.Status.Carry = false
	mc.LoadPC(0x1000)
	mem.ram[0x1000] = 0x69 // ADC #$01
	mem.ram[0x1001] = 0x01
	run(t, mc)
	ctest.ExpectEquality(t, uint8(0x10), mc.A.Value())
}

func TestBranchTakenCrossesPageAddsCycle(t *testing.T) {
	mc, mem := newTestCPU(t)
	mc.LoadPC(0x10fd)
	mc.Status.Zero = true
	mem.ram[0x10fd] = 0xf0 // BEQ +4
	mem.ram[0x10fe] = 0x04
	run(t, mc)
	ctest.ExpectEquality(t, uint16(0x1103), mc.PC.Address())
	ctest.ExpectSuccess(t, mc.LastResult.PageFault)
	ctest.ExpectEquality(t, 4, mc.LastResult.Cycles)
}

func TestJSRThenRTSRoundTrips(t *testing.T) {
	mc, mem := newTestCPU(t)
	mc.SP.Load(0xff)
	mc.LoadPC(0x1000)
	mem.ram[0x1000] = 0x20 // JSR $2000
	mem.ram[0x1001] = 0x00
	mem.ram[0x1002] = 0x20
	mem.ram[0x2000] = 0x60 // RTS
	run(t, mc)
	ctest.ExpectEquality(t, uint16(0x2000), mc.PC.Address())
	mc.LastResult.Final = true
	run(t, mc)
	ctest.ExpectEquality(t, uint16(0x1003), mc.PC.Address())
}

func TestIndexedIndirectZeroPageWrapBug(t *testing.T) {
	mc, mem := newTestCPU(t)
	mc.X.Load(0x01)
	mc.LoadPC(0x1000)
	mem.ram[0x1000] = 0xa1 // LDA ($ff,X)
	mem.ram[0x1001] = 0xff
	mem.ram[0x0000] = 0x34 // pointer wraps to $0000/$0001
	mem.ram[0x0001] = 0x12
	mem.ram[0x1234] = 0x77
	run(t, mc)
	ctest.ExpectEquality(t, uint8(0x77), mc.A.Value())
}

func TestAccumulatorShiftDoesNotTouchMemory(t *testing.T) {
	mc, mem := newTestCPU(t)
	mc.A.Load(0x81)
	mc.LoadPC(0x1000)
	mem.ram[0x1000] = 0x0a // ASL A
	run(t, mc)
	ctest.ExpectEquality(t, uint8(0x02), mc.A.Value())
	ctest.ExpectSuccess(t, mc.Status.Carry)
	ctest.ExpectEquality(t, 2, mc.LastResult.Cycles)
}

func TestBRKAndRTIRoundTrip(t *testing.T) {
	mc, mem := newTestCPU(t)
	mc.SP.Load(0xff)
	mc.LoadPC(0x1000)
	mem.ram[0xfffe] = 0x00 // IRQ/BRK vector -> $3000
	mem.ram[0xffff] = 0x30
	mem.ram[0x1000] = 0x00 // BRK
	run(t, mc)
	ctest.ExpectEquality(t, uint16(0x3000), mc.PC.Address())
	ctest.ExpectSuccess(t, mc.Status.InterruptDisable)

	mc.LastResult.Final = true
	mem.ram[0x3000] = 0x40 // RTI
	run(t, mc)
	ctest.ExpectEquality(t, uint16(0x1002), mc.PC.Address())
}

func TestJAMKillsTheCPU(t *testing.T) {
	mc, mem := newTestCPU(t)
	mc.LoadPC(0x1000)
	mem.ram[0x1000] = 0x02 // JAM
	run(t, mc)
	ctest.ExpectSuccess(t, mc.Killed)

	pc := mc.PC.Address()
	run(t, mc)
	ctest.ExpectEquality(t, pc, mc.PC.Address())
}

func TestRequestIRQServicedWhenNotMasked(t *testing.T) {
	mc, mem := newTestCPU(t)
	mc.SP.Load(0xff)
	mc.LoadPC(0x1000)
	mem.ram[0xfffe] = 0x00 // IRQ vector -> $4000
	mem.ram[0xffff] = 0x40
	mem.ram[0x1000] = 0xea // NOP, to prove LastResult.Final gates re-entry
	run(t, mc)
	mc.LastResult.Final = true

	mc.RequestIRQ()
	run(t, mc)
	ctest.ExpectEquality(t, uint16(0x4000), mc.PC.Address())
}

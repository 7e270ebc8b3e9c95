package debugger

import (
	"testing"

	"github.com/sixtyfour/core64/config"
	"github.com/sixtyfour/core64/errors"
	"github.com/sixtyfour/core64/hardware"
	"github.com/sixtyfour/core64/hardware/memory/addresses"
)

func blankKernalWithResetLoop() []byte {
	rom := make([]byte, addresses.KernalROMSize)
	rom[0x1FFC] = 0x00
	rom[0x1FFD] = 0xE0
	rom[0x0000] = 0x4C // JMP $E000
	rom[0x0001] = 0x00
	rom[0x0002] = 0xE0
	return rom
}

func newTestComputer(t *testing.T) *hardware.Computer {
	t.Helper()
	cfg := config.Default()
	cfg.Drives[0].Connected = false
	c, err := hardware.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Mem.LoadKernalROM(blankKernalWithResetLoop()); err != nil {
		t.Fatalf("LoadKernalROM: %v", err)
	}
	if err := c.Mem.LoadBasicROM(make([]byte, addresses.BasicROMSize)); err != nil {
		t.Fatalf("LoadBasicROM: %v", err)
	}
	if err := c.Mem.LoadCharROM(make([]byte, addresses.CharROMSize)); err != nil {
		t.Fatalf("LoadCharROM: %v", err)
	}
	if err := c.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return c
}

func TestBreakpointHaltsRunAtTargetPC(t *testing.T) {
	d := New(newTestComputer(t), 0)
	d.Breakpoints.Set(0xE000)

	err := d.Run(0)
	if !errors.Has(err, errors.BreakpointHit) {
		t.Fatalf("Run error = %v, want a BreakpointHit", err)
	}
}

func TestRunStopsAfterStepCountWithNoBreakpoint(t *testing.T) {
	d := New(newTestComputer(t), 0)
	if err := d.Run(10); err != nil {
		t.Fatalf("Run(10) with no breakpoint = %v, want nil", err)
	}
}

func TestWatchFiresWhenMemoryChanges(t *testing.T) {
	c := newTestComputer(t)
	d := New(c, 0)
	if err := c.Mem.Write(0x0400, 0x00); err != nil {
		t.Fatalf("seed write: %v", err)
	}
	if err := d.Watches.Add(c.Mem, 0x0400); err != nil {
		t.Fatalf("Watches.Add: %v", err)
	}

	if err := c.Mem.Write(0x0400, 0x42); err != nil {
		t.Fatalf("write: %v", err)
	}

	err := d.StepInstruction()
	if !errors.Has(err, errors.WatchHit) {
		t.Fatalf("StepInstruction error = %v, want a WatchHit", err)
	}
}

func TestTraceRecordsProgramCounterAcrossSteps(t *testing.T) {
	c := newTestComputer(t)
	d := New(c, 4)

	for i := 0; i < 6; i++ {
		if err := d.StepInstruction(); err != nil {
			t.Fatalf("StepInstruction %d: %v", i, err)
		}
	}

	entries := d.Trace.Entries()
	if len(entries) != 4 {
		t.Fatalf("trace holds %d entries, want 4 (ring buffer capacity)", len(entries))
	}
	for _, e := range entries {
		if e.PC != 0xE000 {
			t.Fatalf("trace entry PC = %#04x, want $E000 (tight loop)", e.PC)
		}
	}
}

func TestDisassembleDecodesJmpAbsolute(t *testing.T) {
	c := newTestComputer(t)
	d := New(c, 0)

	listing, err := d.Disassemble(0xE000, 1)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if len(listing) != 1 {
		t.Fatalf("got %d instructions, want 1", len(listing))
	}
	if listing[0].Defn.Operator.String() != "JMP" {
		t.Fatalf("operator = %s, want JMP", listing[0].Defn.Operator.String())
	}
	if listing[0].Operand != "$e000" {
		t.Fatalf("operand = %q, want $e000", listing[0].Operand)
	}
}

func TestBreakpointsSetClearList(t *testing.T) {
	bp := NewBreakpoints()
	bp.Set(0x1000)
	bp.Set(0x0800)
	if got := bp.List(); len(got) != 2 || got[0] != 0x0800 || got[1] != 0x1000 {
		t.Fatalf("List() = %v, want sorted [0x0800, 0x1000]", got)
	}
	bp.Clear(0x0800)
	if bp.Check(0x0800) {
		t.Fatalf("0x0800 should no longer be armed after Clear")
	}
	if !bp.Check(0x1000) {
		t.Fatalf("0x1000 should still be armed")
	}
}

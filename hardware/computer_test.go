package hardware

import (
	"testing"

	"github.com/sixtyfour/core64/config"
	"github.com/sixtyfour/core64/hardware/memory/addresses"
)

func blankKernalWithResetLoop() []byte {
	rom := make([]byte, addresses.KernalROMSize)
	// Reset vector ($FFFC/$FFFD) points at $E000, the first byte of the
	// Kernal ROM image, where a tight JMP loop sits.
	rom[0x1FFC] = 0x00
	rom[0x1FFD] = 0xE0
	rom[0x0000] = 0x4C // JMP $E000
	rom[0x0001] = 0x00
	rom[0x0002] = 0xE0
	return rom
}

func newTestComputer(t *testing.T) *Computer {
	t.Helper()
	cfg := config.Default()
	cfg.Drives[0].Connected = false
	c, err := New(cfg)
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

func TestResetLoadsPCFromKernalVector(t *testing.T) {
	c := newTestComputer(t)
	if c.CPU.PC.Address() != 0xE000 {
		t.Fatalf("PC = %#04x, want $E000", c.CPU.PC.Address())
	}
}

func TestStepRunsTheLoopWithoutError(t *testing.T) {
	c := newTestComputer(t)
	for i := 0; i < 50; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	if c.CPU.PC.Address() != 0xE000 {
		t.Fatalf("PC drifted out of the loop: %#04x", c.CPU.PC.Address())
	}
}

func TestCIA1SensesKeyboardThroughMemoryMap(t *testing.T) {
	c := newTestComputer(t)
	c.Ports.Keyboard.Press(0, 0)

	if err := c.Mem.Write(addresses.CIA1Base+uint16(addresses.DDRA), 0xFF); err != nil {
		t.Fatalf("write DDRA: %v", err)
	}
	if err := c.Mem.Write(addresses.CIA1Base+uint16(addresses.PRA), 0xFE); err != nil { // select column 0
		t.Fatalf("write PRA: %v", err)
	}
	pb, err := c.Mem.Read(addresses.CIA1Base + uint16(addresses.PRB))
	if err != nil {
		t.Fatalf("read PRB: %v", err)
	}
	if pb&0x01 != 0 {
		t.Fatalf("row 0 should read pressed through CIA1, got PRB=%#02x", pb)
	}
}

func TestVICBanksThroughCIA2(t *testing.T) {
	c := newTestComputer(t)
	if err := c.Mem.Write(0x0400, 0xAB); err != nil {
		t.Fatalf("write RAM: %v", err)
	}
	if got := c.Mem.VICRead(3, 0x0400); got != 0xAB {
		t.Fatalf("VICRead bank 3 offset $0400 = %#02x, want $ab", got)
	}
}

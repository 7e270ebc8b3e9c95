package cartridge

import "github.com/sixtyfour/core64/errors"

const (
	freezerBankSize = 8192
	freezerBanks    = 4
	freezerRAMSize  = 8192
)

// freezer models an Action-Replay-style freezer cartridge: 4 banks of 8 KiB
// ROM mapped through IO1's bank register, 8 KiB of battery-backed RAM at
// Lo, and a freeze button. Pressing the button forces ultimax mode (so the
// cartridge's own ROM is visible regardless of what the running program
// last selected) and raises an NMI request; the CPU's next NMI
// acknowledgement (Cartridge.NotifyNMI) clears the forced mode, handing
// control back to whatever bank the freezer's own ROM routine selects.
type freezer struct {
	rom [][]uint8
	ram [freezerRAMSize]uint8

	bank uint8

	// disabled mirrors the freezer's own software-disable latch: its ROM
	// routine writes to the control register to release the cartridge
	// once it has finished running, after which GAME/EXROM float high
	// until the freeze button is pressed again.
	disabled bool

	// forcedUltimax is true for the span between a freeze-button press and
	// the CPU's next NMI acknowledgement.
	forcedUltimax bool

	// nmiPending is true once the button has been pressed and stays true
	// until the CPU's NMI acknowledgement is reported via NotifyNMI.
	nmiPending bool
}

func newFreezer(rom []byte) (*freezer, error) {
	if len(rom) != freezerBankSize*freezerBanks {
		return nil, errors.Errorf(errors.UnrecognisedSize, len(rom))
	}
	f := &freezer{
		rom:      splitBanks(rom, freezerBankSize),
		disabled: true,
	}
	return f, nil
}

func (f *freezer) readLo(addr uint16) (uint8, error) {
	if f.disabled {
		return f.ram[addr%freezerRAMSize], nil
	}
	return f.rom[f.bank][addr%freezerBankSize], nil
}

func (f *freezer) writeLo(addr uint16, data uint8) error {
	if f.disabled {
		f.ram[addr%freezerRAMSize] = data
	}
	return nil
}

func (f *freezer) readHi(addr uint16) (uint8, error) {
	if f.forcedUltimax {
		return f.rom[f.bank][addr%freezerBankSize], nil
	}
	return 0xFF, nil
}

func (f *freezer) writeHi(addr uint16, data uint8) error { return nil }

// readIO1/writeIO1 address the freezer's bank/mode register. Bit pattern
// follows Action Replay's own convention: bits 0-1 select the ROM bank,
// bit 3 disables the cartridge (mapping RAM at Lo and floating GAME/EXROM
// high), matching the real hardware's "exit" register.
func (f *freezer) readIO1(addr uint16) (uint8, error) { return 0xFF, nil }

func (f *freezer) writeIO1(addr uint16, data uint8) error {
	f.bank = data & 0x03 % freezerBanks
	f.disabled = data&0x08 != 0
	if f.disabled {
		f.forcedUltimax = false
	}
	return nil
}

func (f *freezer) readIO2(addr uint16) (uint8, error)     { return 0xFF, nil }
func (f *freezer) writeIO2(addr uint16, data uint8) error { return nil }

func (f *freezer) gameExrom() (game, exrom bool) {
	if f.forcedUltimax {
		return false, true
	}
	if f.disabled {
		return true, true
	}
	return true, false
}

func (f *freezer) numBanks() int    { return len(f.rom) }
func (f *freezer) currentBank() int { return int(f.bank) }

// pressFreezeButton asserts the cartridge's freeze line: it re-enables the
// ROM at bank 0, forces ultimax mode so the freezer's own entry routine is
// visible no matter what the running program had mapped, and raises an
// NMI request for the orchestrator to deliver.
func (f *freezer) pressFreezeButton() {
	f.disabled = false
	f.bank = 0
	f.forcedUltimax = true
	f.nmiPending = true
}

// nmiWillTrigger is called once the CPU has acknowledged the NMI the
// button raised. The forced ultimax window ends here; the freezer's own
// ROM routine (now running) decides when to disable itself again via the
// control register.
func (f *freezer) nmiWillTrigger() {
	f.nmiPending = false
	f.forcedUltimax = false
}

// NMIPending reports whether the freeze button has raised an NMI request
// the orchestrator has not yet delivered to the CPU.
func (f *freezer) NMIPending() bool { return f.nmiPending }

package cartridge

// normal is an unswitched cartridge: either an 8 KiB image mapped only at
// ROML ($8000-$9FFF, EXROM asserted so BASIC stays visible at $A000-$BFFF),
// or a 16 KiB image mapped at both ROML and ROMH ($8000-$9FFF and
// $A000-$BFFF, EXROM and GAME both asserted so BASIC is banked out). Most
// early cartridges (and almost all 8K ones) use this format; there is
// nothing to bank-switch.
type normal struct {
	rom  []uint8
	is8k bool
}

func newNormal(data []byte, is8k bool) *normal {
	rom := make([]uint8, len(data))
	copy(rom, data)
	return &normal{rom: rom, is8k: is8k}
}

func (c *normal) readLo(addr uint16) (uint8, error) {
	if int(addr) >= len(c.rom) {
		return 0xFF, nil
	}
	return c.rom[addr], nil
}

func (c *normal) writeLo(addr uint16, data uint8) error { return nil }

func (c *normal) readHi(addr uint16) (uint8, error) {
	if c.is8k {
		return 0xFF, nil
	}
	off := 0x2000 + int(addr)
	if off >= len(c.rom) {
		return 0xFF, nil
	}
	return c.rom[off], nil
}

func (c *normal) writeHi(addr uint16, data uint8) error { return nil }

func (c *normal) readIO1(addr uint16) (uint8, error)      { return 0xFF, nil }
func (c *normal) writeIO1(addr uint16, data uint8) error  { return nil }
func (c *normal) readIO2(addr uint16) (uint8, error)      { return 0xFF, nil }
func (c *normal) writeIO2(addr uint16, data uint8) error  { return nil }

func (c *normal) gameExrom() (game, exrom bool) {
	if c.is8k {
		return true, false
	}
	return false, false
}

func (c *normal) numBanks() int   { return 1 }
func (c *normal) currentBank() int { return 0 }

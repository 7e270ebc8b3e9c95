package cartridge

// ultimax asserts GAME low and EXROM high: RAM disappears from every bank
// except $0000-$0FFF (and the processor port within it), ROML takes
// $8000-$9FFF and ROMH takes $E000-$FFFF — including the CPU's own reset
// and interrupt vectors, so an ultimax cartridge's ROMH image must supply
// them. Used by the small number of titles (mostly early Expert
// Cartridge-style utilities) that want total control of the address space.
type ultimax struct {
	lo, hi []uint8
}

func newUltimax(lo, hi []byte) *ultimax {
	u := &ultimax{lo: make([]uint8, len(lo)), hi: make([]uint8, len(hi))}
	copy(u.lo, lo)
	copy(u.hi, hi)
	return u
}

func (c *ultimax) readLo(addr uint16) (uint8, error) {
	if int(addr) >= len(c.lo) {
		return 0xFF, nil
	}
	return c.lo[addr], nil
}

func (c *ultimax) writeLo(addr uint16, data uint8) error { return nil }

func (c *ultimax) readHi(addr uint16) (uint8, error) {
	if int(addr) >= len(c.hi) {
		return 0xFF, nil
	}
	return c.hi[addr], nil
}

func (c *ultimax) writeHi(addr uint16, data uint8) error { return nil }

func (c *ultimax) readIO1(addr uint16) (uint8, error)      { return 0xFF, nil }
func (c *ultimax) writeIO1(addr uint16, data uint8) error  { return nil }
func (c *ultimax) readIO2(addr uint16) (uint8, error)      { return 0xFF, nil }
func (c *ultimax) writeIO2(addr uint16, data uint8) error  { return nil }

func (c *ultimax) gameExrom() (game, exrom bool) { return false, true }

func (c *ultimax) numBanks() int   { return 1 }
func (c *ultimax) currentBank() int { return 0 }

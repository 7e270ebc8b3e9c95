package cartridge

import "github.com/sixtyfour/core64/errors"

const (
	easyFlashBankSize  = 8192
	easyFlashBankCount = 64
)

// easyFlash models the EasyFlash cartridge: 64 banks of 8 KiB ROML plus 64
// banks of 8 KiB ROMH (flash memory in real hardware, here a fixed image —
// this core does not emulate flash programming), a bank-select register
// and a software-controlled GAME/EXROM register at $DE00/$DE02, and 256
// bytes of battery-backed RAM at $DF00-$DFFF.
type easyFlash struct {
	lo, hi [][]uint8
	bank   int

	// control mirrors $DE02: bit0 clears EXROM, bit1 clears GAME, bit7
	// drives the cartridge's status LED (not modelled further).
	control uint8

	ram [256]uint8
}

func newEasyFlash(lo, hi []byte) (*easyFlash, error) {
	if len(lo)%easyFlashBankSize != 0 || len(hi)%easyFlashBankSize != 0 {
		return nil, errors.Errorf(errors.UnrecognisedSize, len(lo)+len(hi))
	}
	e := &easyFlash{
		lo:      splitBanks(lo, easyFlashBankSize),
		hi:      splitBanks(hi, easyFlashBankSize),
		control: 0x03, // power-on default: 16K mode (GAME and EXROM both asserted low)
	}
	return e, nil
}

func splitBanks(data []byte, size int) [][]uint8 {
	n := len(data) / size
	banks := make([][]uint8, n)
	for i := 0; i < n; i++ {
		b := make([]uint8, size)
		copy(b, data[i*size:(i+1)*size])
		banks[i] = b
	}
	return banks
}

func (c *easyFlash) readLo(addr uint16) (uint8, error) {
	if c.bank >= len(c.lo) {
		return 0xFF, nil
	}
	return c.lo[c.bank][addr%easyFlashBankSize], nil
}

func (c *easyFlash) writeLo(addr uint16, data uint8) error { return nil }

func (c *easyFlash) readHi(addr uint16) (uint8, error) {
	if c.bank >= len(c.hi) {
		return 0xFF, nil
	}
	return c.hi[c.bank][addr%easyFlashBankSize], nil
}

func (c *easyFlash) writeHi(addr uint16, data uint8) error { return nil }

func (c *easyFlash) readIO1(addr uint16) (uint8, error) {
	switch addr {
	case 0x00:
		return uint8(c.bank), nil
	case 0x02:
		return c.control, nil
	}
	return 0xFF, nil
}

func (c *easyFlash) writeIO1(addr uint16, data uint8) error {
	switch addr {
	case 0x00:
		c.bank = int(data) % easyFlashBankCount
	case 0x02:
		c.control = data
	}
	return nil
}

func (c *easyFlash) readIO2(addr uint16) (uint8, error) {
	if int(addr) >= len(c.ram) {
		return 0xFF, nil
	}
	return c.ram[addr], nil
}

func (c *easyFlash) writeIO2(addr uint16, data uint8) error {
	if int(addr) < len(c.ram) {
		c.ram[addr] = data
	}
	return nil
}

func (c *easyFlash) gameExrom() (game, exrom bool) {
	return c.control&0x02 == 0, c.control&0x01 == 0
}

func (c *easyFlash) numBanks() int   { return len(c.lo) }
func (c *easyFlash) currentBank() int { return c.bank }

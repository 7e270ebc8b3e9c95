package cartridge

// ejected is the mapper used when no cartridge is plugged in. GAME and
// EXROM both read high (pulled up by the expansion port's own resistors
// when nothing is inserted), so the memory map sees its default,
// all-ROM-and-RAM-visible configuration.
type ejected struct{}

func (ejected) readLo(addr uint16) (uint8, error)      { return 0xFF, nil }
func (ejected) writeLo(addr uint16, data uint8) error  { return nil }
func (ejected) readHi(addr uint16) (uint8, error)      { return 0xFF, nil }
func (ejected) writeHi(addr uint16, data uint8) error  { return nil }
func (ejected) readIO1(addr uint16) (uint8, error)     { return 0xFF, nil }
func (ejected) writeIO1(addr uint16, data uint8) error { return nil }
func (ejected) readIO2(addr uint16) (uint8, error)     { return 0xFF, nil }
func (ejected) writeIO2(addr uint16, data uint8) error { return nil }
func (ejected) gameExrom() (game, exrom bool)          { return true, true }
func (ejected) numBanks() int                          { return 0 }
func (ejected) currentBank() int                       { return 0 }

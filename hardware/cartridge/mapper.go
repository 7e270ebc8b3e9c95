// Package cartridge implements the expansion-port side of bank switching:
// the memory map's CartLo/CartHi/IO1/IO2 windows are all backed by whatever
// mapper is currently plugged in, and the mapper alone decides what GAME
// and EXROM say about the rest of the map.
package cartridge

import "github.com/sixtyfour/core64/errors"

// mapper is implemented by each cartridge format this core understands. All
// addresses are pre-normalised to the window they arrived through: Lo
// addresses count from $8000, Hi addresses from $A000 (16K/8K carts) or
// $E000 (ultimax), IO1/IO2 addresses from $DE00/$DF00.
type mapper interface {
	readLo(addr uint16) (uint8, error)
	writeLo(addr uint16, data uint8) error
	readHi(addr uint16) (uint8, error)
	writeHi(addr uint16, data uint8) error
	readIO1(addr uint16) (uint8, error)
	writeIO1(addr uint16, data uint8) error
	readIO2(addr uint16) (uint8, error)
	writeIO2(addr uint16, data uint8) error
	gameExrom() (game, exrom bool)
	numBanks() int
	currentBank() int
}

// Kind identifies a cartridge format.
type Kind int

const (
	None Kind = iota
	Normal8K
	Normal16K
	Ultimax
	EasyFlash
	Freezer
)

// nmiTrigger is implemented by cartridge variants that react to the CPU
// acknowledging an NMI (spec.md §4.7's "NMI-will-trigger hook"): freezer
// carts like Action Replay force ultimax mode on the next cycle so their
// own ROM banks in regardless of what the running program last selected.
type nmiTrigger interface {
	nmiWillTrigger()
}

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Normal8K:
		return "8K"
	case Normal16K:
		return "16K"
	case Ultimax:
		return "ultimax"
	case EasyFlash:
		return "EasyFlash"
	case Freezer:
		return "freezer"
	}
	return "unknown cartridge kind"
}

// Cartridge wraps the active mapper and is what hardware/memory.Memory's
// AttachCartridge expects. It also carries identifying information the
// debugger and UI want (label, filename) that has no bearing on emulation.
type Cartridge struct {
	Kind     Kind
	Filename string

	mapper mapper
}

// NewFromImage fingerprints a raw ROM image by size and builds the
// matching mapper. EasyFlash images (which carry their own .crt-style
// chip layout) should be constructed with NewEasyFlash instead; this
// constructor only handles flat binary dumps.
func NewFromImage(filename string, data []byte) (*Cartridge, error) {
	switch len(data) {
	case 8192:
		return &Cartridge{Kind: Normal8K, Filename: filename, mapper: newNormal(data, true)}, nil
	case 16384:
		return &Cartridge{Kind: Normal16K, Filename: filename, mapper: newNormal(data, false)}, nil
	default:
		return nil, errors.Errorf(errors.UnrecognisedSize, len(data))
	}
}

// NewUltimax builds an ultimax-mode cartridge from separate Lo and Hi
// images, each up to 8 KiB.
func NewUltimax(filename string, lo, hi []byte) *Cartridge {
	return &Cartridge{Kind: Ultimax, Filename: filename, mapper: newUltimax(lo, hi)}
}

// NewEasyFlash builds a 64-bank EasyFlash cartridge from its Lo and Hi ROM
// images (each 64 banks of 8 KiB, concatenated).
func NewEasyFlash(filename string, lo, hi []byte) (*Cartridge, error) {
	m, err := newEasyFlash(lo, hi)
	if err != nil {
		return nil, err
	}
	return &Cartridge{Kind: EasyFlash, Filename: filename, mapper: m}, nil
}

// NewFreezer builds an Action-Replay-style freezer cartridge: 32 KiB of
// ROM in 4 banks of 8 KiB, 8 KiB of battery-backed RAM, a bank/mode
// register at IO1, and a freeze button that pulls NMI and forces ultimax
// mode until NotifyNMI reports the CPU's acknowledgement.
func NewFreezer(filename string, rom []byte) (*Cartridge, error) {
	m, err := newFreezer(rom)
	if err != nil {
		return nil, err
	}
	return &Cartridge{Kind: Freezer, Filename: filename, mapper: m}, nil
}

// Eject replaces the active mapper with one that asserts neither GAME nor
// EXROM and returns open bus for every window — equivalent to no cartridge
// being present, without hardware/memory.Memory needing a nil check.
func Eject() *Cartridge {
	return &Cartridge{Kind: None, Filename: "", mapper: ejected{}}
}

func (c *Cartridge) ReadLo(addr uint16) (uint8, error)       { return c.mapper.readLo(addr) }
func (c *Cartridge) WriteLo(addr uint16, data uint8) error   { return c.mapper.writeLo(addr, data) }
func (c *Cartridge) ReadHi(addr uint16) (uint8, error)       { return c.mapper.readHi(addr) }
func (c *Cartridge) WriteHi(addr uint16, data uint8) error   { return c.mapper.writeHi(addr, data) }
func (c *Cartridge) ReadIO1(addr uint16) (uint8, error)      { return c.mapper.readIO1(addr) }
func (c *Cartridge) WriteIO1(addr uint16, data uint8) error  { return c.mapper.writeIO1(addr, data) }
func (c *Cartridge) ReadIO2(addr uint16) (uint8, error)      { return c.mapper.readIO2(addr) }
func (c *Cartridge) WriteIO2(addr uint16, data uint8) error  { return c.mapper.writeIO2(addr, data) }
func (c *Cartridge) GameExrom() (game, exrom bool)           { return c.mapper.gameExrom() }
func (c *Cartridge) NumBanks() int                           { return c.mapper.numBanks() }
func (c *Cartridge) CurrentBank() int                        { return c.mapper.currentBank() }

// NotifyNMI tells the active mapper that the CPU has just acknowledged an
// NMI. Only freezer-style mappers care; every other mapper is a no-op.
func (c *Cartridge) NotifyNMI() {
	if hook, ok := c.mapper.(nmiTrigger); ok {
		hook.nmiWillTrigger()
	}
}

// FreezeButton presses the cartridge's physical freeze button, if it has
// one. Mappers without a freeze button ignore the call.
func (c *Cartridge) FreezeButton() {
	if f, ok := c.mapper.(interface{ pressFreezeButton() }); ok {
		f.pressFreezeButton()
	}
}

// NMIPending reports whether the cartridge has an outstanding NMI request
// the orchestrator has not yet delivered to the CPU. Mappers that never
// raise NMI (everything but freezer carts) always report false.
func (c *Cartridge) NMIPending() bool {
	if p, ok := c.mapper.(interface{ NMIPending() bool }); ok {
		return p.NMIPending()
	}
	return false
}

func (c *Cartridge) String() string {
	if c.Kind == None {
		return "no cartridge"
	}
	return c.Filename + " [" + c.Kind.String() + "]"
}

// Package memorymap resolves a 16-bit CPU address to the memory area that
// currently backs it. The C64's PLA watches five lines — LORAM, HIRAM,
// CHAREN (from the 6510's own I/O port) and GAME, EXROM (from the
// expansion port) — and re-routes sixteen 4 KiB banks between RAM, the two
// internal ROMs, I/O space, and cartridge ROM every time one of those lines
// changes. This package is that PLA: a table built once at init() time and
// indexed by the five-bit config on every address decode.
package memorymap

import "fmt"

// Source identifies which memory area backs a given bank under the current
// configuration.
type Source int

const (
	RAM Source = iota
	BasicROM
	CharROM
	KernalROM
	IO
	CartLo
	CartHi
	OpenBus
	ProcPort
)

func (s Source) String() string {
	switch s {
	case RAM:
		return "RAM"
	case BasicROM:
		return "BASIC_ROM"
	case CharROM:
		return "CHAR_ROM"
	case KernalROM:
		return "KERNAL_ROM"
	case IO:
		return "IO"
	case CartLo:
		return "CART_LO"
	case CartHi:
		return "CART_HI"
	case OpenBus:
		return "OPEN_BUS"
	case ProcPort:
		return "PROC_PORT"
	}
	return "unknown memory source"
}

// Config is the five-bit PLA input. LORAM/HIRAM/CHAREN come from the
// processor port at $00/$01; GAME/EXROM come from the expansion port.
type Config struct {
	LORAM  bool
	HIRAM  bool
	CHAREN bool
	GAME   bool
	EXROM  bool
}

// index packs the config into the 0..31 table index the spec's invariant
// refers to: bit4=EXROM bit3=GAME bit2=CHAREN bit1=HIRAM bit0=LORAM.
func (c Config) index() int {
	i := 0
	if c.LORAM {
		i |= 0x01
	}
	if c.HIRAM {
		i |= 0x02
	}
	if c.CHAREN {
		i |= 0x04
	}
	if c.GAME {
		i |= 0x08
	}
	if c.EXROM {
		i |= 0x10
	}
	return i
}

// table[config][bank] gives the memory source for reads. Writes use the
// same table except that ROM banks (BasicROM/CharROM/KernalROM) redirect to
// the RAM underneath them — the CPU can always write through a ROM shadow.
var table [32][16]Source

func init() {
	for i := 0; i < 32; i++ {
		c := Config{
			LORAM:  i&0x01 != 0,
			HIRAM:  i&0x02 != 0,
			CHAREN: i&0x04 != 0,
			GAME:   i&0x08 != 0,
			EXROM:  i&0x10 != 0,
		}
		table[i] = decode(c)
	}
}

// decode implements the C64 PLA equations bank by bank. Banks are 4 KiB
// slices of the address space: bank n covers $n000-$nFFF.
func decode(c Config) [16]Source {
	var t [16]Source

	// $0000-$7FFF: always RAM, except ultimax mode (GAME=0, EXROM=1) opens
	// the bus for $1000-$7FFF.
	ultimax := !c.GAME && c.EXROM
	for b := 0; b <= 7; b++ {
		if ultimax && b >= 1 {
			t[b] = OpenBus
		} else {
			t[b] = RAM
		}
	}
	// bank 0 is always tagged PROC_PORT: addresses $0000/$0001 are
	// intercepted by the processor port regardless of configuration, and
	// every other address in the bank falls through to RAM.
	t[0] = ProcPort

	cart8k := c.GAME && !c.EXROM
	cart16k := !c.GAME && !c.EXROM

	// $8000-$9FFF
	switch {
	case ultimax, cart16k, cart8k:
		t[8], t[9] = CartLo, CartLo
	default:
		t[8], t[9] = RAM, RAM
	}

	// $A000-$BFFF
	switch {
	case ultimax:
		t[10], t[11] = OpenBus, OpenBus
	case cart16k:
		t[10], t[11] = CartHi, CartHi
	case c.LORAM && c.HIRAM:
		t[10], t[11] = BasicROM, BasicROM
	default:
		t[10], t[11] = RAM, RAM
	}

	// $C000-$CFFF
	if ultimax {
		t[12] = OpenBus
	} else {
		t[12] = RAM
	}

	// $D000-$DFFF
	switch {
	case ultimax:
		t[13] = IO
	case !c.HIRAM && !c.LORAM:
		t[13] = RAM
	case !c.CHAREN:
		t[13] = CharROM
	default:
		t[13] = IO
	}

	// $E000-$FFFF
	switch {
	case ultimax, cart16k:
		t[14], t[15] = CartHi, CartHi
	case c.HIRAM:
		t[14], t[15] = KernalROM, KernalROM
	default:
		t[14], t[15] = RAM, RAM
	}

	return t
}

// Map holds the currently-active bank tables, recomputed whenever
// Recompute is called with a new Config.
type Map struct {
	cfg      Config
	peekSrc  [16]Source
	pokeDst  [16]Source
}

// NewMap builds a Map for the power-on configuration: both ROMs and I/O
// visible, no cartridge asserting either line.
func NewMap() *Map {
	m := &Map{}
	m.Recompute(Config{LORAM: true, HIRAM: true, CHAREN: true, GAME: true, EXROM: true})
	return m
}

// Recompute re-derives peekSrc/pokeDst from the table. Called whenever
// LORAM, HIRAM, CHAREN, GAME or EXROM changes.
func (m *Map) Recompute(cfg Config) {
	m.cfg = cfg
	m.peekSrc = table[cfg.index()]

	m.pokeDst = table[cfg.index()]
	for b, src := range m.pokeDst {
		switch src {
		case BasicROM, CharROM, KernalROM:
			m.pokeDst[b] = RAM
		}
	}
}

// Config returns the configuration the map was last recomputed with.
func (m *Map) Config() Config {
	return m.cfg
}

// Bank returns the 4 KiB bank index (0..15) an address falls in.
func Bank(address uint16) int {
	return int(address >> 12)
}

// PeekSource returns the memory area a read from address currently
// resolves to.
func (m *Map) PeekSource(address uint16) Source {
	return m.peekSrc[Bank(address)]
}

// PokeSource returns the memory area a write to address currently resolves
// to.
func (m *Map) PokeSource(address uint16) Source {
	return m.pokeDst[Bank(address)]
}

// Summary renders the current bank assignment, one contiguous run per
// line, in the style used by the core's regression tests.
func (m *Map) Summary() string {
	s := ""
	start := 0
	for b := 1; b <= 16; b++ {
		if b == 16 || m.peekSrc[b] != m.peekSrc[start] {
			lo := uint32(start) << 12
			hi := uint32(b)<<12 - 1
			s += fmt.Sprintf("%04x -> %04x\t%s\n", lo, hi, m.peekSrc[start])
			start = b
		}
	}
	return s
}

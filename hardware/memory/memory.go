// Package memory is the CPU's view of the C64's 64 KiB address space: a
// single Memory value owns the RAM array, the three internal ROM images,
// the processor port, colour RAM, and the memorymap.Map that decides which
// of those currently backs a given bank. I/O chips and the cartridge are
// attached after construction, once they exist, via the Attach* methods —
// Memory dispatches into whichever of them owns the addressed sub-range and
// falls back to open-bus behaviour for anything left unattached.
package memory

import (
	"github.com/sixtyfour/core64/errors"
	"github.com/sixtyfour/core64/hardware/instance"
	"github.com/sixtyfour/core64/hardware/memory/addresses"
	"github.com/sixtyfour/core64/hardware/memory/memorymap"
)

// ioDevice is implemented by each chip mapped into the $D000-$DFFF window.
// offset is the address normalised to the device's own register range
// (0-based), matching the normalise-before-dispatch convention used
// throughout this core's bus implementations.
type ioDevice interface {
	Read(offset uint16) (uint8, error)
	Write(offset uint16, data uint8) error
}

// peekableIODevice is implemented by devices whose reads have side effects
// (acknowledging interrupts, clearing latches) and which therefore need a
// separate, side-effect-free path for the debugger.
type peekableIODevice interface {
	Peek(offset uint16) (uint8, error)
}

// dataBusLatch is implemented by the VIC-II: every access it makes to its
// own memory area updates a latch that colour RAM's unconnected upper
// nibble floats to when the CPU reads it.
type dataBusLatch interface {
	LastVICDataBus() uint8
}

// cartridgePort is implemented by the attached cartridge, if any. All four
// windows (CartLo, CartHi, and the two I/O windows used by bank-switching
// logic) go through the one mapper, each with addresses normalised to that
// window's own base.
type cartridgePort interface {
	ReadLo(addr uint16) (uint8, error)
	WriteLo(addr uint16, data uint8) error
	ReadHi(addr uint16) (uint8, error)
	WriteHi(addr uint16, data uint8) error
	ReadIO1(addr uint16) (uint8, error)
	WriteIO1(addr uint16, data uint8) error
	ReadIO2(addr uint16) (uint8, error)
	WriteIO2(addr uint16, data uint8) error
	// GameExrom reports the current state of the cartridge's GAME/EXROM
	// lines, consulted whenever the processor port changes so the memory
	// map's PLA input stays current.
	GameExrom() (game, exrom bool)
}

// OpenBusValue is returned by reads that fall through to nothing: no RAM,
// no ROM, no attached chip. Real hardware floats to whatever value was last
// driven on the bus; this core models that as a fixed constant rather than
// tracking bus capacitance.
const OpenBusValue = uint8(0xFF)

// Memory is the CPU's address space.
type Memory struct {
	ins *instance.Instance

	ram        [65536]uint8
	basicROM   [addresses.BasicROMSize]uint8
	kernalROM  [addresses.KernalROMSize]uint8
	charROM    [addresses.CharROMSize]uint8
	colorRAM   [1024]uint8 // low nibble only

	procPortDirection uint8
	procPortData      uint8

	pla *memorymap.Map

	vic   ioDevice
	sid   ioDevice
	cia1  ioDevice
	cia2  ioDevice
	latch dataBusLatch
	cart  cartridgePort
}

// NewMemory is the preferred method of initialisation for Memory. Each RAM
// byte is set to $00 or $FF at random from the instance's random
// generator; the instance's RAMInitPattern setting is not consulted, so
// C64Pattern40 and C64Pattern80 give the same kind of fill as
// C64PatternRandom.
func NewMemory(ins *instance.Instance) *Memory {
	m := &Memory{
		ins:               ins,
		pla:               memorymap.NewMap(),
		procPortDirection: addresses.ProcPortDirectionDefault,
		procPortData:      addresses.ProcPortDefaultData,
	}
	m.initRAM()
	return m
}

func (m *Memory) initRAM() {
	if m.ins == nil {
		return
	}
	for i := range m.ram {
		if m.ins.Random.NoRewind(2) == 1 {
			m.ram[i] = 0xFF
		}
	}
}

// AttachVIC, AttachSID, AttachCIA1, AttachCIA2 wire a built chip into the
// I/O dispatch. Called once by the root orchestrator during power-on.
func (m *Memory) AttachVIC(vic ioDevice, latch dataBusLatch) { m.vic = vic; m.latch = latch }
func (m *Memory) AttachSID(sid ioDevice)                     { m.sid = sid }
func (m *Memory) AttachCIA1(cia ioDevice)                    { m.cia1 = cia }
func (m *Memory) AttachCIA2(cia ioDevice)                    { m.cia2 = cia }

// AttachCartridge wires a cartridge mapper into CartLo/CartHi/IO1/IO2
// dispatch and immediately recomputes the bank configuration, since
// GAME/EXROM are PLA inputs.
func (m *Memory) AttachCartridge(cart cartridgePort) {
	m.cart = cart
	m.recomputeBanking()
}

// DetachCartridge removes the cartridge mapper (on eject) and recomputes
// banking with GAME/EXROM both pulled high (no cartridge asserting either
// line).
func (m *Memory) DetachCartridge() {
	m.cart = nil
	m.recomputeBanking()
}

func (m *Memory) gameExrom() (game, exrom bool) {
	if m.cart == nil {
		return true, true
	}
	return m.cart.GameExrom()
}

func (m *Memory) recomputeBanking() {
	game, exrom := m.gameExrom()
	m.pla.Recompute(memorymap.Config{
		LORAM:  m.procPortData&addresses.ProcPortLORAM != 0,
		HIRAM:  m.procPortData&addresses.ProcPortHIRAM != 0,
		CHAREN: m.procPortData&addresses.ProcPortCHAREN != 0,
		GAME:   game,
		EXROM:  exrom,
	})
}

// LoadBasicROM, LoadKernalROM, LoadCharROM copy a ROM image into place.
// Called once during power-on after the host reads the image from disk.
func (m *Memory) LoadBasicROM(data []byte) error  { return loadROM(m.basicROM[:], data, "basic") }
func (m *Memory) LoadKernalROM(data []byte) error { return loadROM(m.kernalROM[:], data, "kernal") }
func (m *Memory) LoadCharROM(data []byte) error   { return loadROM(m.charROM[:], data, "char") }

func loadROM(dst []uint8, src []byte, name string) error {
	if len(src) != len(dst) {
		return errors.Errorf(errors.MissingROM, name)
	}
	copy(dst, src)
	return nil
}

// Read implements bus.CPUBus. It is the side-effecting path: reading a
// chip's register range may acknowledge interrupts or clear latches.
func (m *Memory) Read(address uint16) (uint8, error) {
	if address == addresses.ProcPortDirection {
		return m.procPortDirection, nil
	}
	if address == addresses.ProcPortData {
		return m.procPortData, nil
	}

	switch m.pla.PeekSource(address) {
	case memorymap.RAM, memorymap.ProcPort:
		return m.ram[address], nil
	case memorymap.BasicROM:
		return m.basicROM[address-addresses.BasicROMBase], nil
	case memorymap.KernalROM:
		return m.kernalROM[address-addresses.KernalROMBase], nil
	case memorymap.CharROM:
		return m.charROM[address-addresses.CharROMBase], nil
	case memorymap.CartLo:
		return m.readCart(m.cart.ReadLo, address-0x8000)
	case memorymap.CartHi:
		if address >= 0xE000 {
			return m.readCart(m.cart.ReadHi, address-0xE000)
		}
		return m.readCart(m.cart.ReadHi, address-0xA000)
	case memorymap.OpenBus:
		return OpenBusValue, nil
	case memorymap.IO:
		return m.readIO(address)
	}
	return OpenBusValue, errors.Errorf(errors.UnknownMemorySource, address)
}

func (m *Memory) readCart(fn func(uint16) (uint8, error), addr uint16) (uint8, error) {
	if m.cart == nil {
		return OpenBusValue, nil
	}
	return fn(addr)
}

func (m *Memory) readIO(address uint16) (uint8, error) {
	switch {
	case address < addresses.VICEnd:
		return m.readDevice(m.vic, (address-addresses.VICBase)%addresses.VICMirrorPeriod)
	case address < addresses.SIDEnd:
		return m.readDevice(m.sid, (address-addresses.SIDBase)%addresses.SIDMirrorPeriod)
	case address < addresses.ColorRAMEnd:
		return m.readColorRAM(address), nil
	case address < addresses.CIA1End:
		return m.readDevice(m.cia1, (address-addresses.CIA1Base)%addresses.CIAMirrorPeriod)
	case address < addresses.CIA2End:
		return m.readDevice(m.cia2, (address-addresses.CIA2Base)%addresses.CIAMirrorPeriod)
	case address < addresses.IO1End:
		if m.cart == nil {
			return OpenBusValue, nil
		}
		return m.cart.ReadIO1(address - addresses.IO1Base)
	default:
		if m.cart == nil {
			return OpenBusValue, nil
		}
		return m.cart.ReadIO2(address - addresses.IO2Base)
	}
}

func (m *Memory) readDevice(d ioDevice, offset uint16) (uint8, error) {
	if d == nil {
		return OpenBusValue, nil
	}
	return d.Read(offset)
}

func (m *Memory) readColorRAM(address uint16) uint8 {
	nibble := m.colorRAM[address-addresses.ColorRAMBase]
	high := uint8(0xF0)
	if m.latch != nil {
		high = m.latch.LastVICDataBus() & 0xF0
	}
	return high | nibble
}

// Write implements bus.CPUBus.
func (m *Memory) Write(address uint16, data uint8) error {
	if address == addresses.ProcPortDirection {
		m.procPortDirection = data
		m.recomputeBanking()
		return nil
	}
	if address == addresses.ProcPortData {
		m.procPortData = data
		m.recomputeBanking()
		return nil
	}

	switch m.pla.PokeSource(address) {
	case memorymap.RAM, memorymap.ProcPort:
		m.ram[address] = data
		return nil
	case memorymap.CartLo:
		return m.writeCart(m.cart.WriteLo, address-0x8000, data)
	case memorymap.CartHi:
		if address >= 0xE000 {
			return m.writeCart(m.cart.WriteHi, address-0xE000, data)
		}
		return m.writeCart(m.cart.WriteHi, address-0xA000, data)
	case memorymap.OpenBus:
		return nil
	case memorymap.IO:
		return m.writeIO(address, data)
	}
	return errors.Errorf(errors.UnknownMemorySource, address)
}

func (m *Memory) writeCart(fn func(uint16, uint8) error, addr uint16, data uint8) error {
	if m.cart == nil {
		return nil
	}
	return fn(addr, data)
}

func (m *Memory) writeIO(address uint16, data uint8) error {
	switch {
	case address < addresses.VICEnd:
		return m.writeDevice(m.vic, (address-addresses.VICBase)%addresses.VICMirrorPeriod, data)
	case address < addresses.SIDEnd:
		return m.writeDevice(m.sid, (address-addresses.SIDBase)%addresses.SIDMirrorPeriod, data)
	case address < addresses.ColorRAMEnd:
		m.colorRAM[address-addresses.ColorRAMBase] = data & 0x0F
		return nil
	case address < addresses.CIA1End:
		return m.writeDevice(m.cia1, (address-addresses.CIA1Base)%addresses.CIAMirrorPeriod, data)
	case address < addresses.CIA2End:
		return m.writeDevice(m.cia2, (address-addresses.CIA2Base)%addresses.CIAMirrorPeriod, data)
	case address < addresses.IO1End:
		if m.cart == nil {
			return nil
		}
		return m.cart.WriteIO1(address-addresses.IO1Base, data)
	default:
		if m.cart == nil {
			return nil
		}
		return m.cart.WriteIO2(address-addresses.IO2Base, data)
	}
}

func (m *Memory) writeDevice(d ioDevice, offset uint16, data uint8) error {
	if d == nil {
		return nil
	}
	return d.Write(offset, data)
}

// Peek implements bus.DebuggerBus: a side-effect-free read. Devices that
// implement peekableIODevice get their own non-destructive path; everything
// else (RAM, ROM, colour RAM) has no read side effects to begin with, so
// Peek and Read already agree.
func (m *Memory) Peek(address uint16) (uint8, error) {
	if address == addresses.ProcPortDirection {
		return m.procPortDirection, nil
	}
	if address == addresses.ProcPortData {
		return m.procPortData, nil
	}

	src := m.pla.PeekSource(address)
	if src != memorymap.IO {
		return m.Read(address)
	}

	var d ioDevice
	var offset uint16
	switch {
	case address < addresses.VICEnd:
		d, offset = m.vic, (address-addresses.VICBase)%addresses.VICMirrorPeriod
	case address < addresses.SIDEnd:
		d, offset = m.sid, (address-addresses.SIDBase)%addresses.SIDMirrorPeriod
	case address < addresses.ColorRAMEnd:
		return m.readColorRAM(address), nil
	case address < addresses.CIA1End:
		d, offset = m.cia1, (address-addresses.CIA1Base)%addresses.CIAMirrorPeriod
	case address < addresses.CIA2End:
		d, offset = m.cia2, (address-addresses.CIA2Base)%addresses.CIAMirrorPeriod
	default:
		return m.Read(address)
	}
	if d == nil {
		return OpenBusValue, nil
	}
	if p, ok := d.(peekableIODevice); ok {
		return p.Peek(offset)
	}
	return d.Read(offset)
}

// Poke implements bus.DebuggerBus: writes through read-only memory straight
// into the RAM underneath it, bypassing bank-switch side effects.
func (m *Memory) Poke(address uint16, data uint8) error {
	if address == addresses.ProcPortDirection || address == addresses.ProcPortData {
		return m.Write(address, data)
	}
	switch m.pla.PeekSource(address) {
	case memorymap.BasicROM, memorymap.KernalROM, memorymap.CharROM, memorymap.RAM, memorymap.ProcPort:
		m.ram[address] = data
		return nil
	default:
		return m.Write(address, data)
	}
}

// Config returns the memory map's currently active bank configuration.
func (m *Memory) Config() memorymap.Config {
	return m.pla.Config()
}

// VICRead answers the VIC-II's own view of memory (hardware/vic.Bus): a
// 16 KiB window selected by CIA 2 port A's bottom two bits (bank, 0-3,
// counting down from $C000 as bank 0), with character ROM overlaid on the
// bank-relative $1000-$1FFF window in banks 0 and 2 only. The VIC never
// sees the CPU's processor-port banking or any attached cartridge; it
// always reads straight through to RAM or character ROM.
func (m *Memory) VICRead(bank uint8, address uint16) uint8 {
	base := uint32(3-bank&0x03) * 0x4000
	abs := uint16(base) + address&0x3FFF
	if bank&0x01 == 0 && address&0x3000 == 0x1000 {
		return m.charROM[address&0x0FFF]
	}
	return m.ram[abs]
}

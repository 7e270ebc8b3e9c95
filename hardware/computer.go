// Package hardware ties together every chip package under hardware/ into
// one running machine. It is the only package that imports all of them:
// each chip package stays ignorant of its siblings, wired together here
// through the small Bus/Ports/IRQLine interfaces each one exports.
package hardware

import (
	"github.com/sixtyfour/core64/config"
	"github.com/sixtyfour/core64/hardware/cartridge"
	"github.com/sixtyfour/core64/hardware/cia"
	"github.com/sixtyfour/core64/hardware/controlports"
	"github.com/sixtyfour/core64/hardware/cpu"
	"github.com/sixtyfour/core64/hardware/drive"
	"github.com/sixtyfour/core64/hardware/iec"
	"github.com/sixtyfour/core64/hardware/instance"
	"github.com/sixtyfour/core64/hardware/memory"
	"github.com/sixtyfour/core64/hardware/memory/addresses"
	"github.com/sixtyfour/core64/hardware/sid"
	"github.com/sixtyfour/core64/hardware/vic"
)

// Computer is one running C64: the CPU, its memory map, the three
// custom chips, the IEC bus, up to two attached 1541 drives, the control
// ports, and the cartridge currently plugged into the expansion port.
type Computer struct {
	Instance *instance.Instance

	CPU    *cpu.CPU
	Mem    *memory.Memory
	VIC    *vic.VIC
	CIA1   *cia.CIA
	CIA2   *cia.CIA
	SID    *sid.SID
	Ports  *controlports.ControlPorts
	IEC    *iec.Bus
	Drives [iec.MaxDrives]*drive.Drive

	cart *cartridge.Cartridge

	cia2Sense *cia2Sense
}

// New builds an unpowered Computer from cfg. BASIC/Kernal/character ROM
// images must be loaded separately (Mem.LoadKernalROM/LoadBasicROM/
// LoadCharROM), and drive ROM images through LoadDriveROM, before Reset.
func New(cfg config.Machine) (*Computer, error) {
	ins, err := instance.NewInstance(cfg)
	if err != nil {
		return nil, err
	}

	c := &Computer{Instance: ins}

	c.Mem = memory.NewMemory(ins)
	c.CPU = cpu.NewCPU(ins, c.Mem)

	c.IEC = iec.NewBus()
	c.Ports = controlports.NewControlPorts(c.CPU)

	sense := &controlports.CIA1Sense{Ports: c.Ports}
	c.CIA1 = cia.New("CIA1", c.CPU, sense)
	sense.CIA = c.CIA1

	c.cia2Sense = &cia2Sense{iec: c.IEC}
	c.CIA2 = cia.New("CIA2", cia2NMI{c.CPU}, c.cia2Sense)

	c.VIC = vic.New(vic.NewRevision(cfg.VideoStandard), vicBus{c}, c.CPU, cfg.Cheats)

	c.SID = sid.New(c.Ports)

	c.Mem.AttachVIC(c.VIC, c.VIC)
	c.Mem.AttachSID(c.SID)
	c.Mem.AttachCIA1(c.CIA1)
	c.Mem.AttachCIA2(c.CIA2)

	return c, nil
}

// LoadDriveROM creates drive unit n (0 or 1) with the given 16 KiB VC1541
// ROM image and attaches it to the IEC bus.
func (c *Computer) LoadDriveROM(unit int, rom []byte) error {
	d, err := drive.New(unit, c.IEC, rom)
	if err != nil {
		return err
	}
	c.Drives[unit] = d
	return nil
}

// AttachCartridge plugs a cartridge into the expansion port and
// immediately recomputes memory banking, since GAME/EXROM are PLA inputs.
func (c *Computer) AttachCartridge(cart *cartridge.Cartridge) {
	c.cart = cart
	c.Mem.AttachCartridge(cart)
}

// DetachCartridge removes the cartridge, if any.
func (c *Computer) DetachCartridge() {
	c.cart = nil
	c.Mem.DetachCartridge()
}

// Cartridge returns the currently attached cartridge, or nil.
func (c *Computer) Cartridge() *cartridge.Cartridge { return c.cart }

// Reset performs a hard reset: CPU registers, and the PC loaded from the
// currently banked-in reset vector.
func (c *Computer) Reset() error {
	c.CPU.Reset()
	return c.CPU.LoadPCIndirect(addresses.VectorReset)
}

// Step executes one unit of CPU forward progress: a full instruction when
// the CPU is not held, or a single stolen cycle when the VIC-II is in the
// middle of a badline or sprite DMA window. Every chip in the machine is
// advanced exactly one system cycle for each bus cycle the CPU spends
// inside this call, via the cycle callback below.
func (c *Computer) Step() error {
	if err := c.CPU.ExecuteInstruction(c.onCycle); err != nil {
		return err
	}
	c.drainFrameEvents()
	return nil
}

// onCycle is invoked once per system bus cycle from inside CPU.
// ExecuteInstruction. It advances every other chip by exactly one cycle,
// in the order real signal propagation would settle them: the IEC bus
// first (so CIA 2/drives see a consistent level this cycle), then the
// custom chips, then the attached drives' own CPUs.
func (c *Computer) onCycle() error {
	c.Instance.Coords.Tick()

	c.IEC.Update()
	pa2, err := c.CIA2.Peek(0x00) // PRA
	if err != nil {
		return err
	}
	c.cia2Sense.driveFromPA(pa2)

	holdCPU := c.VIC.Cycle()
	c.CPU.RdyFlg = !holdCPU

	c.CIA1.Tick()
	c.CIA2.Tick()

	for _, d := range c.Drives {
		if d == nil {
			continue
		}
		if err := d.Step(); err != nil {
			return err
		}
	}

	return nil
}

// Frame-rate ticks (TOD clocks, the drive insertion FSM) are driven once
// per video frame rather than once per cycle; the VIC-II's frame-wrap
// events tell the orchestrator when that boundary has passed.
func (c *Computer) drainFrameEvents() {
	for range c.VIC.DrainFrameEvents() {
		c.CIA1.TickTOD()
		c.CIA2.TickTOD()
		for _, d := range c.Drives {
			if d != nil {
				d.Frame()
			}
		}
	}
}

// vicBus implements hardware/vic.Bus by delegating to Memory's own,
// CPU-independent view of RAM/character ROM, banked by CIA 2 PA0-1.
type vicBus struct{ c *Computer }

func (b vicBus) VICRead(address uint16) uint8 {
	pa, _ := b.c.CIA2.Peek(0x00)
	return b.c.Mem.VICRead(pa&0x03, address)
}

// cia2NMI routes CIA 2's interrupt output (normally wired to the FLAG line
// from the user port, used for an RS-232 framing IRQ on real hardware)
// onto the CPU's NMI input, matching spec.md §4.5's "CIA 2 drives the
// CPU's NMI line".
type cia2NMI struct{ cpu *cpu.CPU }

func (n cia2NMI) RequestIRQ() { n.cpu.TriggerNMI() }
func (n cia2NMI) ReleaseIRQ() {}

// cia2Sense implements hardware/cia.Ports for CIA 2's port A: the IEC
// bus's CPU-side driver (ATN/CLK/DATA out on bits 3-5, CLK/DATA in on
// bits 6-7) and the VIC bank select on bits 0-1, which has no external
// pull and simply reflects back whatever the CPU wrote.
type cia2Sense struct{ iec *iec.Bus }

// driveFromPA pushes this cycle's port A output onto the IEC bus's
// CPU-side pull-downs; called once per cycle by Computer.onCycle since
// the real 6526 drives these lines continuously, not only on a CPU read.
func (s *cia2Sense) driveFromPA(pa uint8) {
	s.iec.DriveCPU(pa&0x08 == 0, pa&0x10 == 0, pa&0x20 == 0)
}

func (s *cia2Sense) SenseA(output uint8) uint8 {
	v := output
	if !s.iec.CLK() {
		v &^= 0x40
	}
	if !s.iec.DATA() {
		v &^= 0x80
	}
	return v
}

func (s *cia2Sense) SenseB(output uint8) uint8 { return output }

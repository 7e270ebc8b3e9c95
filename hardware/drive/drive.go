// Package drive implements the 1541 floppy drive: a second 6502 CPU, two
// 6522 VIAs, and the GCR disk-head model, per spec.md §4.9. It shares no
// memory with the host; the only link to the rest of the machine is the
// IEC bus (hardware/iec) VIA 1 drives and senses.
package drive

import (
	"github.com/sixtyfour/core64/errors"
	"github.com/sixtyfour/core64/hardware/cpu"
	"github.com/sixtyfour/core64/hardware/future"
	"github.com/sixtyfour/core64/hardware/iec"
	"github.com/sixtyfour/core64/hardware/via"
)

// InsertionState models the light barrier's four-state FSM (spec.md
// §4.9): InsertDisk and EjectDisk move to the partial state at once, and
// the matching full state follows framesPerInsertionStep frames later.
type InsertionState int

const (
	FullyEjected InsertionState = iota
	PartiallyInserted
	FullyInserted
	PartiallyEjected
)

func (s InsertionState) String() string {
	switch s {
	case FullyEjected:
		return "fully ejected"
	case PartiallyInserted:
		return "partially inserted"
	case FullyInserted:
		return "fully inserted"
	case PartiallyEjected:
		return "partially ejected"
	}
	return "unknown"
}

// framesPerInsertionStep is the physical delay the light barrier FSM
// models between each of its states.
const framesPerInsertionStep = 17

// ram is 2 KiB, mirrored through $0000-$17FF by the drive's incomplete
// address decoding (real hardware quirk, not a simplification: the 1541's
// PCB genuinely only decodes address lines A0-A10 for RAM).
const ramSize = 0x0800

// Drive is one 1541 unit.
type Drive struct {
	number int
	bus    *iec.Bus

	cpu  *cpu.CPU
	via1 *via.VIA
	via2 *via.VIA

	ram [ramSize]uint8
	rom [0x4000]uint8

	insertion     InsertionState
	insertTicker  *future.Ticker
	disk          *Disk
	pendingDisk   *Disk

	halftrack int
	bitOffset int

	lastPhase     uint8
	motorOn       bool
	ledOn         bool
	bitClockCount int
	uf4           uint8
	readShift     uint16
	sync          bool
	byteCounter   int
	headByte      uint8
}

// New creates a drive addressed as unit number (0 or 1, matching
// hardware/iec.MaxDrives) and wires it to bus. rom must be the 16 KiB
// VC1541 ROM image.
func New(number int, bus *iec.Bus, rom []byte) (*Drive, error) {
	if len(rom) != 0x4000 {
		return nil, errors.Errorf(errors.UnrecognisedSize, len(rom))
	}
	d := &Drive{
		number:    number,
		bus:       bus,
		halftrack: 1,
		insertTicker: future.NewTicker("drive insertion"),
	}
	copy(d.rom[:], rom)
	d.via1 = via.New("VIA1", driveIRQ{d}, via1Ports{d})
	d.via2 = via.New("VIA2", driveIRQ{d}, via2Ports{d})
	d.cpu = cpu.NewCPU(nil, d)
	d.cpu.Reset()
	if err := d.cpu.LoadPCIndirect(0xFFFC); err != nil {
		return nil, err
	}
	return d, nil
}

// driveIRQ routes both VIAs' interrupt lines onto the drive's own CPU,
// matching the real 1541 where both 6522s share the 6502's single IRQ
// input.
type driveIRQ struct{ d *Drive }

func (r driveIRQ) RequestIRQ() { r.d.cpu.RequestIRQ() }
func (r driveIRQ) ReleaseIRQ() { r.d.cpu.ReleaseIRQ() }

// via1Ports senses the IEC bus lines and the unit's device-address straps
// for VIA 1's port B, per spec.md §4.8's bit layout: {ATN in, device_addr
// [1:0], ATN_ACK_out, CLK_out, CLK_in, DATA_out, DATA_in}. Only the input
// bits (ATN in, device_addr, CLK in, DATA in) matter here; the output bits
// are driven by the VIA's own output latch and read back through it.
type via1Ports struct{ d *Drive }

func (p via1Ports) SenseA() uint8 { return 0xFF }

func (p via1Ports) SenseB() uint8 {
	var b uint8
	if p.d.bus.ATN() {
		b |= 0x80
	}
	if p.d.bus.CLK() {
		b |= 0x04
	}
	if p.d.bus.DATA() {
		b |= 0x01
	}
	// device_addr bits (6:5) and the two output bits float high when
	// sensed as inputs; only devices 0 and 1 are modelled (spec.md's
	// MaxDrives), encoded directly from the unit number.
	b |= uint8(p.d.number&0x03) << 5
	return b | 0x12 // bits 4 (ATN_ACK) and 1 (DATA_out) read high when undriven
}

// via2Ports senses the write-protect tab and SYNC-detect line for VIA 2's
// port B, and supplies the byte most recently latched off the disk for
// port A.
type via2Ports struct{ d *Drive }

func (p via2Ports) SenseA() uint8 { return p.d.headByte }

func (p via2Ports) SenseB() uint8 {
	var b uint8 = 0xFF
	if p.d.disk == nil || p.d.disk.WriteProtect {
		b &^= 0x10
	}
	if p.d.sync {
		b &^= 0x80
	}
	return b
}

// Read implements bus.CPUBus for the drive's own, host-isolated address
// space: 2 KiB RAM (mirrored through $17FF by incomplete address
// decoding), VIA 1 at $1800-$1BFF, VIA 2 at $1C00-$1FFF, 16 KiB ROM at
// $C000-$FFFF. Everything else is open bus.
func (d *Drive) Read(addr uint16) (uint8, error) {
	switch {
	case addr < 0x1800:
		return d.ram[addr%ramSize], nil
	case addr < 0x1C00:
		return d.via1.Read(addr - 0x1800), nil
	case addr < 0x2000:
		return d.via2.Read(addr - 0x1C00), nil
	case addr >= 0xC000:
		return d.rom[addr-0xC000], nil
	}
	return 0xFF, nil
}

// Write implements bus.CPUBus.
func (d *Drive) Write(addr uint16, data uint8) error {
	switch {
	case addr < 0x1800:
		d.ram[addr%ramSize] = data
	case addr < 0x1C00:
		d.via1.Write(addr-0x1800, data)
	case addr < 0x2000:
		d.via2.Write(addr-0x1C00, data)
	}
	return nil
}

// Peek/Poke implement bus.DebuggerBus without any of Read/Write's
// side effects (VIA IFR-clear-on-access, mainly).
func (d *Drive) Peek(addr uint16) (uint8, error) {
	switch {
	case addr < 0x1800:
		return d.ram[addr%ramSize], nil
	case addr < 0x1C00:
		return d.via1.Peek(addr - 0x1800), nil
	case addr < 0x2000:
		return d.via2.Peek(addr - 0x1C00), nil
	case addr >= 0xC000:
		return d.rom[addr-0xC000], nil
	}
	return 0xFF, nil
}

func (d *Drive) Poke(addr uint16, data uint8) error {
	return d.Write(addr, data)
}

// Step executes one full instruction on the drive's CPU, advancing both
// VIAs and the disk head's bit clock once per bus cycle exactly as the
// main machine advances the VIC-II and CIAs from the 6510's own cycle
// callback.
func (d *Drive) Step() error {
	return d.cpu.ExecuteInstruction(d.onCycle)
}

func (d *Drive) onCycle() error {
	d.via1.Tick()
	d.via2.Tick()
	d.updateStepper()
	d.updateMotorAndLED()
	d.tickBitClock()
	d.driveIEC()
	return nil
}

// driveIEC reflects VIA 1 port B's output bits onto the IEC bus for this
// unit. CLK_out and DATA_out pull their line low when the corresponding
// output-latch bit reads 0 on a pin configured as an output; DATA is also
// pulled low by the ATN_ACK mechanism while ATN is asserted, letting the
// drive's hardware auto-acknowledge ATN without ROM intervention.
func (d *Drive) driveIEC() {
	ddrb := d.via1.DDRB()
	pb := d.via1.PB()

	clkOut := ddrb&0x08 != 0 && pb&0x08 == 0
	dataOut := ddrb&0x02 != 0 && pb&0x02 == 0
	atnAckOut := ddrb&0x10 != 0 && pb&0x10 == 0

	dataPull := dataOut || (!d.bus.ATN() && atnAckOut)
	d.bus.DriveDrive(d.number, false, clkOut, dataPull)
}

// updateStepper advances the head by one half-track whenever VIA 2's
// stepper-phase bits (port B, bits 0-1) move to an adjacent phase in the
// 6522's standard four-phase stepper sequence (0, 1, 3, 2).
func (d *Drive) updateStepper() {
	phase := d.via2.PB() & 0x03
	if phase == d.lastPhase {
		return
	}
	sequence := [4]uint8{0, 1, 3, 2}
	prevIdx, curIdx := -1, -1
	for i, p := range sequence {
		if p == d.lastPhase {
			prevIdx = i
		}
		if p == phase {
			curIdx = i
		}
	}
	d.lastPhase = phase
	if prevIdx < 0 || curIdx < 0 {
		return
	}
	switch (curIdx - prevIdx + 4) % 4 {
	case 1:
		d.stepHead(1)
	case 3:
		d.stepHead(-1)
	}
}

func (d *Drive) stepHead(delta int) {
	next := d.halftrack + delta
	if next < 1 {
		next = 1
	}
	if next > HalfTracks {
		next = HalfTracks
	}
	if next != d.halftrack {
		d.halftrack = next
		d.bitOffset = 0
	}
}

// updateMotorAndLED reads VIA 2 port B bits 2 (motor) and 3 (LED) directly;
// these are plain output bits with no further logic attached to them.
func (d *Drive) updateMotorAndLED() {
	pb := d.via2.PB()
	d.motorOn = pb&0x04 != 0
	d.ledOn = pb&0x08 != 0
}

// LED reports the drive's activity LED state, for a host status display.
func (d *Drive) LED() bool { return d.ledOn }

// Halftrack reports the head's current half-track position (1..84).
func (d *Drive) Halftrack() int { return d.halftrack }

// cyclesPerBit is the drive-cycle cadence of the bit-cell carry described
// in spec.md §4.9. The real drive's divisor varies by speed zone (13-16
// cycles); this core keeps the spec's literal four-cycle cadence uniform
// across zones, a deliberate simplification documented in DESIGN.md.
const cyclesPerBit = 4

// tickBitClock implements spec.md §4.9's bit clock: every four drive
// cycles, shift a bit in from the head, run the UF4 clock-recovery
// counter, and drive the SYNC/byte-ready state machine. Writing to the
// disk is not modelled.
func (d *Drive) tickBitClock() {
	if !d.motorOn {
		return
	}
	d.bitClockCount++
	if d.bitClockCount < cyclesPerBit {
		return
	}
	d.bitClockCount = 0

	bit := d.readHeadBit()
	d.readShift = d.readShift<<1 | uint16(bit)

	d.uf4 = (d.uf4 + 1) & 0x03
	if bit == 1 {
		d.uf4 = 0
	}

	d.sync = d.readShift&0x03FF == 0x03FF
	if d.uf4 != 0 {
		return
	}
	if !d.sync {
		d.byteCounter = 0
		return
	}
	d.byteCounter++
	if d.byteCounter < 7 {
		return
	}
	d.byteCounter = 0
	d.headByte = uint8(d.readShift)
	d.via2.LatchA(d.headByte)
	if !d.via2.CA2ManualLow() {
		d.via2.PulseCA1()
	}
}

// readHeadBit returns the next bit under the head, advancing the head's
// rotational position. Only a fully inserted disk produces meaningful
// data (spec.md §4.9); an ejected or half-inserted drive reads flux-less
// zeros, same as a spinning drive with no disk.
func (d *Drive) readHeadBit() uint8 {
	if d.insertion != FullyInserted || d.disk == nil {
		return 0
	}
	buf := d.disk.HalfTracks[d.halftrack-1]
	if len(buf) == 0 {
		return 0
	}
	byteIdx := (d.bitOffset / 8) % len(buf)
	bitIdx := 7 - d.bitOffset%8
	bit := (buf[byteIdx] >> uint(bitIdx)) & 1
	d.bitOffset = (d.bitOffset + 1) % (len(buf) * 8)
	return bit
}

// InsertDisk begins the insertion lifecycle for disk. It fails if a disk
// is already inserted or mid-exchange.
func (d *Drive) InsertDisk(disk *Disk) error {
	if d.insertion != FullyEjected {
		return errors.Errorf(errors.InvalidOption, "drive is not fully ejected")
	}
	d.pendingDisk = disk
	d.insertion = PartiallyInserted
	d.insertTicker.Schedule(framesPerInsertionStep-1, func() {
		d.disk = d.pendingDisk
		d.insertion = FullyInserted
	}, "disk insertion")
	return nil
}

// EjectDisk begins the ejection lifecycle. It fails unless a disk is
// fully inserted.
func (d *Drive) EjectDisk() error {
	if d.insertion != FullyInserted {
		return errors.Errorf(errors.InvalidOption, "drive is not fully inserted")
	}
	d.insertion = PartiallyEjected
	d.insertTicker.Schedule(framesPerInsertionStep-1, func() {
		d.disk = nil
		d.pendingDisk = nil
		d.insertion = FullyEjected
	}, "disk ejection")
	return nil
}

// Frame advances the insertion FSM by one video frame. The host calls
// this once per frame (from the VIC-II's vertical blank), regardless of
// whether an exchange is in progress — Tick reports a non-fired error
// when the schedule is empty, which Frame discards.
func (d *Drive) Frame() {
	_ = d.insertTicker.Tick()
}

// Insertion reports the current light-barrier state.
func (d *Drive) Insertion() InsertionState { return d.insertion }

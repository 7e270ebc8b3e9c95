// Package via implements the 6522 Versatile Interface Adapter used twice
// over in the 1541 drive (spec.md §4.9): VIA 1 drives the IEC lines on its
// port B, VIA 2 drives the stepper motor, LED, and read/write head. Both
// instances share this one register model; only their port wiring differs,
// which is the drive package's concern, not this one's.
package via

// IRQLine is the interrupt sink a VIA asserts against — the drive CPU's
// IRQ input, shared between both VIA instances the way the C64's two CIAs
// share the 6510's IRQ line.
type IRQLine interface {
	RequestIRQ()
	ReleaseIRQ()
}

// Ports lets an external component (the drive's head model, the IEC bus)
// drive the bits of port A/B that this VIA's DDR marks as inputs, without
// this package importing either.
type Ports interface {
	SenseA() uint8
	SenseB() uint8
}

type nullPorts struct{}

func (nullPorts) SenseA() uint8 { return 0xFF }
func (nullPorts) SenseB() uint8 { return 0xFF }

// VIA is one 6522.
type VIA struct {
	name  string
	irq   IRQLine
	ports Ports

	ora, orb   uint8
	ddra, ddrb uint8

	t1Counter, t1Latch uint16
	t2Counter, t2Latch uint16
	t1Running, t2Running bool

	acr, pcr uint8
	ifr, ier uint8

	// irqAsserted mirrors whether this VIA currently holds irq low, so
	// ReleaseIRQ is only called on the falling edge.
	irqAsserted bool
}

// New creates a VIA. ports may be nil, in which case unconnected input
// bits read as 1 (pulled up, matching an open input on real hardware).
func New(name string, irq IRQLine, ports Ports) *VIA {
	if ports == nil {
		ports = nullPorts{}
	}
	return &VIA{name: name, irq: irq, ports: ports}
}

// PA returns port A's externally visible level: output-latch bits where
// DDRA marks an output, sensed external bits everywhere else.
func (v *VIA) PA() uint8 {
	return (v.ora & v.ddra) | (v.ports.SenseA() &^ v.ddra)
}

// PB returns port B's externally visible level, built the same way as PA.
func (v *VIA) PB() uint8 {
	return (v.orb & v.ddrb) | (v.ports.SenseB() &^ v.ddrb)
}

// PulseCA1 signals a transition on the CA1 input line (the drive's
// byte-ready pulse on VIA 2, ATN's edge on VIA 1), setting the IFR flag and
// raising IRQ if CA1 is enabled.
func (v *VIA) PulseCA1() { v.setFlag(ifCA1) }

// PulseCA2 signals a transition on the CA2 input line.
func (v *VIA) PulseCA2() { v.setFlag(ifCA2) }

// PulseCB1 signals a transition on the CB1 input line.
func (v *VIA) PulseCB1() { v.setFlag(ifCB1) }

// PulseCB2 signals a transition on the CB2 input line.
func (v *VIA) PulseCB2() { v.setFlag(ifCB2) }

func (v *VIA) setFlag(bit uint8) {
	v.ifr |= bit
	v.raise()
}

func (v *VIA) raise() {
	active := v.ifr&v.ier&0x7F != 0
	if active {
		v.ifr |= ifIRQ
		if !v.irqAsserted {
			v.irqAsserted = true
			v.irq.RequestIRQ()
		}
	} else {
		v.ifr &^= ifIRQ
		if v.irqAsserted {
			v.irqAsserted = false
			v.irq.ReleaseIRQ()
		}
	}
}

// Tick advances both free-running timers by one cycle, matching the 6522's
// own clock (the drive's 6502 clock, one tick per CPU cycle).
func (v *VIA) Tick() {
	if v.t1Running {
		if v.t1Counter == 0 {
			v.setFlag(ifT1)
			if v.acr&acrT1Continuous != 0 {
				v.t1Counter = v.t1Latch
			} else {
				v.t1Running = false
			}
		} else {
			v.t1Counter--
		}
	}
	if v.t2Running {
		if v.t2Counter == 0 {
			v.setFlag(ifT2)
			v.t2Running = false
		} else {
			v.t2Counter--
		}
	}
}

// Read implements hardware/memory/bus.CPUBus's read side for the drive's
// memory map: drive RAM is decoded directly to this VIA's window by the
// drive package.
func (v *VIA) Read(offset uint16) uint8 {
	switch offset % registerCount {
	case regORB:
		v.ifr &^= ifCB1 | ifCB2
		v.raise()
		return v.PB()
	case regORA, regORA2:
		v.ifr &^= ifCA1 | ifCA2
		v.raise()
		return v.PA()
	case regDDRB:
		return v.ddrb
	case regDDRA:
		return v.ddra
	case regT1CL:
		v.ifr &^= ifT1
		v.raise()
		return uint8(v.t1Counter)
	case regT1CH:
		return uint8(v.t1Counter >> 8)
	case regT1LL:
		return uint8(v.t1Latch)
	case regT1LH:
		return uint8(v.t1Latch >> 8)
	case regT2CL:
		v.ifr &^= ifT2
		v.raise()
		return uint8(v.t2Counter)
	case regT2CH:
		return uint8(v.t2Counter >> 8)
	case regACR:
		return v.acr
	case regPCR:
		return v.pcr
	case regIFR:
		return v.ifr
	case regIER:
		return v.ier | ifIRQ
	}
	return 0xFF
}

// Peek is Read without the clear-on-read side effects, for the debugger.
func (v *VIA) Peek(offset uint16) uint8 {
	switch offset % registerCount {
	case regORB:
		return v.PB()
	case regORA, regORA2:
		return v.PA()
	case regDDRB:
		return v.ddrb
	case regDDRA:
		return v.ddra
	case regT1CL:
		return uint8(v.t1Counter)
	case regT1CH:
		return uint8(v.t1Counter >> 8)
	case regT1LL:
		return uint8(v.t1Latch)
	case regT1LH:
		return uint8(v.t1Latch >> 8)
	case regT2CL:
		return uint8(v.t2Counter)
	case regT2CH:
		return uint8(v.t2Counter >> 8)
	case regACR:
		return v.acr
	case regPCR:
		return v.pcr
	case regIFR:
		return v.ifr
	case regIER:
		return v.ier | ifIRQ
	}
	return 0xFF
}

// Write implements the write side of the drive's memory map for this VIA.
func (v *VIA) Write(offset uint16, data uint8) {
	switch offset % registerCount {
	case regORB:
		v.orb = data
		v.ifr &^= ifCB1 | ifCB2
		v.raise()
	case regORA, regORA2:
		v.ora = data
		v.ifr &^= ifCA1 | ifCA2
		v.raise()
	case regDDRB:
		v.ddrb = data
	case regDDRA:
		v.ddra = data
	case regT1CL:
		v.t1Latch = v.t1Latch&0xFF00 | uint16(data)
	case regT1CH:
		v.t1Latch = uint16(data)<<8 | v.t1Latch&0x00FF
		v.t1Counter = v.t1Latch
		v.t1Running = true
		v.ifr &^= ifT1
		v.raise()
	case regT1LL:
		v.t1Latch = v.t1Latch&0xFF00 | uint16(data)
	case regT1LH:
		v.t1Latch = uint16(data)<<8 | v.t1Latch&0x00FF
		v.ifr &^= ifT1
		v.raise()
	case regT2CL:
		v.t2Latch = v.t2Latch&0xFF00 | uint16(data)
	case regT2CH:
		v.t2Latch = uint16(data)<<8 | v.t2Latch&0x00FF
		v.t2Counter = v.t2Latch
		v.t2Running = true
		v.ifr &^= ifT2
		v.raise()
	case regACR:
		v.acr = data
	case regPCR:
		v.pcr = data
	case regIFR:
		v.ifr &^= data & 0x7F
		v.raise()
	case regIER:
		if data&ieSC != 0 {
			v.ier |= data & 0x7F
		} else {
			v.ier &^= data & 0x7F
		}
		v.raise()
	}
}

// ORA/ORB are the raw output latches, for components (the drive's head
// model) that write a byte directly into the register without going
// through the CPU-visible Write path — the real head latches a byte into
// VIA 2's IRA on every byte-ready pulse, independent of any CPU write.
func (v *VIA) LatchA(data uint8) { v.ora = data }
func (v *VIA) LatchB(data uint8) { v.orb = data }

// DDRA/DDRB expose the data-direction registers read-only, so the drive's
// head model can tell whether a pin it wants to sense is actually
// configured as an input.
func (v *VIA) DDRA() uint8 { return v.ddra }
func (v *VIA) DDRB() uint8 { return v.ddrb }

// CA2ManualLow reports whether PCR configures CA2 as a manual output held
// low (PCR bits 7-5 = 110). The 1541 ROM uses this mode to mask the
// byte-ready pulse while it is still processing the previous byte.
func (v *VIA) CA2ManualLow() bool {
	return v.pcr&0xE0 == 0xC0
}

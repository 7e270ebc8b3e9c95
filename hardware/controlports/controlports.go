package controlports

// Joystick is a standard 9-pin digital joystick: four directions plus fire,
// each a closed-switch-to-ground line.
type Joystick struct {
	Up, Down, Left, Right, Fire bool
}

// Bits packs the five switches into the active-low layout a control port
// presents on its data lines (bit 0 up .. bit 4 fire, 0 = pressed); bits
// 5-7 are left high, since nothing on the port drives them.
func (j Joystick) Bits() uint8 {
	v := uint8(0xFF)
	if j.Up {
		v &^= 0x01
	}
	if j.Down {
		v &^= 0x02
	}
	if j.Left {
		v &^= 0x04
	}
	if j.Right {
		v &^= 0x08
	}
	if j.Fire {
		v &^= 0x10
	}
	return v
}

// Paddle is one potentiometer dial plus its button, read through a SID
// POTX/POTY register and (for the button) a control-port fire line.
type Paddle struct {
	Position uint8 // 0-255, raw pot reading
	Button   bool
}

// MouseMode selects which of the three mouse-like protocols a control port
// currently speaks. Only one can be active on a given port at a time.
type MouseMode int

const (
	MouseNone MouseMode = iota
	Mouse1350Digital     // reports relative motion as joystick quadrature pulses
	Mouse1351Proportional
	MouseNeos // three-nibble serial protocol, latched by a host-driven strobe
)

// Mouse models the signal-level output of whichever protocol is selected.
// It does not simulate USB/PS2 input timing; a host calls Move or
// SetPosition as it receives raw motion and this package only shapes what
// the C64 side would see.
type Mouse struct {
	mode MouseMode

	// Mouse1351Proportional: absolute position, read directly as POTX/POTY.
	x, y uint8

	// Mouse1350Digital: accumulated relative motion, consumed one
	// quadrature step at a time by Bits.
	dx, dy int

	// MouseNeos: accumulated relative motion latched into four nibbles by
	// LatchNeos, then shifted out one at a time by NextNeosNibble.
	neos       [4]uint8
	neosIndex  int
	neosLatched bool

	leftButton, rightButton bool
}

func (m *Mouse) SetMode(mode MouseMode) { m.mode = mode }
func (m *Mouse) Mode() MouseMode        { return m.mode }

// SetPosition sets the absolute pot reading a 1351 reports.
func (m *Mouse) SetPosition(x, y uint8) {
	m.x, m.y = x, y
}

// Move accumulates relative motion for the 1350/Neos protocols.
func (m *Mouse) Move(dx, dy int) {
	m.dx += dx
	m.dy += dy
}

func (m *Mouse) SetButtons(left, right bool) {
	m.leftButton, m.rightButton = left, right
}

// PotX/PotY are read when the mouse is in 1351 mode, wired directly into
// hardware/sid.PaddleSource.
func (m *Mouse) PotX() uint8 { return m.x }
func (m *Mouse) PotY() uint8 { return m.y }

// Bits reports the joystick-port lines a 1350 digital mouse drives: fire
// from the left button, and one step of quadrature-style motion consumed
// from the accumulated delta on each read (a crude but signal-compatible
// stand-in for the real quadrature encoder pulses).
func (m *Mouse) Bits() uint8 {
	v := uint8(0xFF)
	if m.leftButton {
		v &^= 0x10
	}
	switch {
	case m.dx > 0:
		v &^= 0x08
		m.dx--
	case m.dx < 0:
		v &^= 0x04
		m.dx++
	}
	switch {
	case m.dy > 0:
		v &^= 0x02
		m.dy--
	case m.dy < 0:
		v &^= 0x01
		m.dy++
	}
	return v
}

// LatchNeos snapshots the current accumulated delta into four nibbles (dx
// high, dx low, dy high, dy low, each delta first clamped to a signed byte
// range) ready to be shifted out, and clears the accumulator. The button
// state is not part of the latched report. Real Neos software strobes this through a control line;
// here the host calls it directly.
func (m *Mouse) LatchNeos() {
	m.neos[0] = clampNibble(m.dx) >> 4 & 0x0F
	m.neos[1] = clampNibble(m.dx) & 0x0F
	m.neos[2] = clampNibble(m.dy) >> 4 & 0x0F
	m.neos[3] = clampNibble(m.dy) & 0x0F
	m.dx, m.dy = 0, 0
	m.neosIndex = 0
	m.neosLatched = true
}

func clampNibble(v int) uint8 {
	if v > 127 {
		v = 127
	}
	if v < -128 {
		v = -128
	}
	return uint8(int8(v))
}

// NextNeosNibble returns the next of the four latched nibbles (wrapping),
// the way a Neos mouse shifts its report out over repeated reads.
func (m *Mouse) NextNeosNibble() uint8 {
	n := m.neos[m.neosIndex%4]
	m.neosIndex++
	return n
}

// NeosLatched reports whether a report has been latched since the last
// LatchNeos call, for a host polling loop to know a fresh sample is ready.
func (m *Mouse) NeosLatched() bool { return m.neosLatched }

// Port bundles everything one DB9 control port can carry: a joystick, a
// paddle pair, and (mutually exclusive with both) a mouse.
type Port struct {
	Joystick Joystick
	Paddle1  Paddle
	Paddle2  Paddle
	Mouse    Mouse
}

// Bits reports the five switch lines this port presents, combining the
// joystick, the 1350 mouse (when selected) and the paddle fire buttons —
// on real hardware these are wired-AND onto the same physical pins. A Neos
// mouse's nibbles are not placed on these lines; they are read through
// Mouse.NextNeosNibble.
func (p *Port) Bits() uint8 {
	v := p.Joystick.Bits()
	if p.Mouse.mode == Mouse1350Digital {
		v &= p.Mouse.Bits()
	}
	if p.Paddle1.Button {
		v &^= 0x04
	}
	if p.Paddle2.Button {
		v &^= 0x08
	}
	return v
}

// PotX/PotY read this port's analog pair: the 1351 mouse position when one
// is selected, otherwise the paddle dials.
func (p *Port) PotX() uint8 {
	if p.Mouse.mode == Mouse1351Proportional {
		return p.Mouse.PotX()
	}
	return p.Paddle1.Position
}

func (p *Port) PotY() uint8 {
	if p.Mouse.mode == Mouse1351Proportional {
		return p.Mouse.PotY()
	}
	return p.Paddle2.Position
}

// ControlPorts aggregates both DB9 ports and the keyboard, and is the
// single object the root orchestrator wires into CIA 1 and SID.
type ControlPorts struct {
	Port1, Port2 Port
	Keyboard     *Keyboard

	// ActivePaddlePort selects which port's pots SID reads, mirroring the
	// CIA 1 PA6/PA7 control-port-select bits real software sets before
	// reading POTX/POTY.
	ActivePaddlePort int
}

// NewControlPorts creates an aggregator with an attached keyboard. nmi may
// be nil (see NewKeyboard).
func NewControlPorts(nmi NMILine) *ControlPorts {
	return &ControlPorts{Keyboard: NewKeyboard(nmi), ActivePaddlePort: 1}
}

// PotX/PotY implement hardware/sid.PaddleSource, selecting whichever port
// is currently active.
func (cp *ControlPorts) PotX() uint8 {
	if cp.ActivePaddlePort == 2 {
		return cp.Port2.PotX()
	}
	return cp.Port1.PotX()
}

func (cp *ControlPorts) PotY() uint8 {
	if cp.ActivePaddlePort == 2 {
		return cp.Port2.PotY()
	}
	return cp.Port1.PotY()
}

// ciaPortReader is the slice of hardware/cia.CIA this package needs: each
// port's own output-latch level (DrivenA/DrivenB, not PA/PB — those would
// recurse back into this package's own Sense methods), so column/row
// strobes can be read back without importing the cia package.
type ciaPortReader interface {
	DrivenA() uint8
	DrivenB() uint8
}

// CIA1Sense implements hardware/cia.Ports for CIA 1: port A carries the
// keyboard's column-select strobe shared with joystick port 2's switches,
// port B carries the row readback shared with joystick port 1 — exactly
// the pin reuse real C64 software relies on when it reads joysticks
// through the same registers the keyboard scanner uses.
type CIA1Sense struct {
	Ports *ControlPorts
	CIA   ciaPortReader
}

func (s *CIA1Sense) SenseA(output uint8) uint8 {
	v := output & s.Ports.Keyboard.ScanColumnsFromRowStrobe(s.CIA.DrivenB())
	return v & s.Ports.Port2.Bits()
}

func (s *CIA1Sense) SenseB(output uint8) uint8 {
	v := output & s.Ports.Keyboard.ScanRowsFromColumnStrobe(s.CIA.DrivenA())
	return v & s.Ports.Port1.Bits()
}

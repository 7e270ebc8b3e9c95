// Package controlports models everything a human normally touches: the
// keyboard matrix and RESTORE/SHIFT-LOCK, the two joystick/paddle/mouse
// ports, and an auto-type queue that feeds a canned string through the
// matrix at a configured rate (spec.md §4.10).
package controlports

// NMILine is the CPU's NMI input, pulled directly by RESTORE — on real
// hardware RESTORE bypasses the keyboard matrix entirely and wires straight
// to the 6510's NMI pin.
type NMILine interface {
	TriggerNMI()
}

// ShiftLockRow/ShiftLockCol are the matrix coordinates SHIFT-LOCK shorts to
// when engaged: the left SHIFT key's position on the real C64 matrix.
const (
	ShiftLockRow = 1
	ShiftLockCol = 7
)

// Keyboard is the 8x8 key matrix plus the two keys with special wiring.
// pressed[row][col] mirrors a closed switch; ScanRowsFromColumnStrobe and
// ScanColumnsFromRowStrobe read it from either direction, since the real
// matrix has no preferred axis — only CIA 1's port assignment (port A
// drives columns, port B reads rows) makes one direction the normal one.
type Keyboard struct {
	pressed [8][8]bool

	shiftLock bool
	nmi       NMILine

	autoType     []AutoTypeEvent
	autoTypeWait int
}

// NewKeyboard creates an unpressed keyboard. nmi may be nil, in which case
// RESTORE is a no-op (useful in tests that don't care about NMI wiring).
func NewKeyboard(nmi NMILine) *Keyboard {
	return &Keyboard{nmi: nmi}
}

// Press closes the matrix switch at (row, col).
func (k *Keyboard) Press(row, col int) {
	k.pressed[row][col] = true
}

// Release opens the matrix switch at (row, col). If SHIFT-LOCK is engaged
// and (row, col) is the left-SHIFT position, the switch stays closed —
// that is exactly what the physical lock switch does.
func (k *Keyboard) Release(row, col int) {
	if k.shiftLock && row == ShiftLockRow && col == ShiftLockCol {
		return
	}
	k.pressed[row][col] = false
}

// SetShiftLock engages or disengages the sticky SHIFT-LOCK switch. Engaging
// it closes the left-SHIFT matrix switch; disengaging it only clears the
// lock, and the left-SHIFT switch stays closed until Release opens it.
func (k *Keyboard) SetShiftLock(on bool) {
	k.shiftLock = on
	if on {
		k.pressed[ShiftLockRow][ShiftLockCol] = true
	}
}

// ShiftLock reports the current sticky-switch state.
func (k *Keyboard) ShiftLock() bool { return k.shiftLock }

// PressRestore pulls the NMI line. RESTORE has no matrix position and no
// release-side effect; it is a momentary switch read once, on the edge.
func (k *Keyboard) PressRestore() {
	if k.nmi != nil {
		k.nmi.TriggerNMI()
	}
}

// ScanRowsFromColumnStrobe is the normal C64 direction: CIA 1 port A drives
// column select lines low, and this returns the port B value a row read
// would see — each bit low if any selected column has a pressed key in
// that row.
func (k *Keyboard) ScanRowsFromColumnStrobe(columnStrobe uint8) uint8 {
	result := uint8(0xFF)
	for c := 0; c < 8; c++ {
		if columnStrobe&(1<<uint(c)) != 0 {
			continue // column c not selected (active low)
		}
		for r := 0; r < 8; r++ {
			if k.pressed[r][c] {
				result &^= 1 << uint(r)
			}
		}
	}
	return result
}

// ScanColumnsFromRowStrobe is the matrix read in reverse: some NMI
// routines and a handful of games drive port B low and read port A back,
// which the real matrix answers identically by symmetry.
func (k *Keyboard) ScanColumnsFromRowStrobe(rowStrobe uint8) uint8 {
	result := uint8(0xFF)
	for r := 0; r < 8; r++ {
		if rowStrobe&(1<<uint(r)) != 0 {
			continue
		}
		for c := 0; c < 8; c++ {
			if k.pressed[r][c] {
				result &^= 1 << uint(c)
			}
		}
	}
	return result
}

// AutoTypeKind distinguishes the four event shapes an auto-type queue holds.
type AutoTypeKind int

const (
	AutoTypePress AutoTypeKind = iota
	AutoTypeRelease
	AutoTypeWait
	AutoTypeReleaseAll
)

// AutoTypeEvent is one step of a canned-input script: press a set of keys,
// release a set of keys, wait a number of slots, or release everything.
type AutoTypeEvent struct {
	Kind     AutoTypeKind
	Keys     [][2]int
	Duration int
}

// QueueAutoType appends events to the auto-type queue, to be consumed one
// slot at a time by StepAutoType.
func (k *Keyboard) QueueAutoType(events ...AutoTypeEvent) {
	k.autoType = append(k.autoType, events...)
}

// AutoTypePending reports whether the queue still has work (including any
// in-progress wait).
func (k *Keyboard) AutoTypePending() bool {
	return k.autoTypeWait > 0 || len(k.autoType) > 0
}

// StepAutoType consumes one scheduler slot's worth of the auto-type queue.
// It reports whether anything was consumed (false means the queue is
// empty and the host can stop calling it).
func (k *Keyboard) StepAutoType() bool {
	if k.autoTypeWait > 0 {
		k.autoTypeWait--
		return true
	}
	if len(k.autoType) == 0 {
		return false
	}

	ev := k.autoType[0]
	k.autoType = k.autoType[1:]
	switch ev.Kind {
	case AutoTypePress:
		for _, rc := range ev.Keys {
			k.Press(rc[0], rc[1])
		}
	case AutoTypeRelease:
		for _, rc := range ev.Keys {
			k.Release(rc[0], rc[1])
		}
	case AutoTypeReleaseAll:
		k.pressed = [8][8]bool{}
		if k.shiftLock {
			k.pressed[ShiftLockRow][ShiftLockCol] = true
		}
	case AutoTypeWait:
		if ev.Duration > 1 {
			k.autoTypeWait = ev.Duration - 1
		}
	}
	return true
}

package drive

import (
	"testing"

	"github.com/sixtyfour/core64/hardware/iec"
)

func blankROM() []byte { return make([]byte, 0x4000) }

func TestNewRejectsWrongROMSize(t *testing.T) {
	_, err := New(0, iec.NewBus(), make([]byte, 123))
	if err == nil {
		t.Fatalf("expected an error for a wrong-sized ROM image")
	}
}

func TestInsertionLifecycleFullyInsertsAfter17Frames(t *testing.T) {
	d, err := New(0, iec.NewBus(), blankROM())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Insertion() != FullyEjected {
		t.Fatalf("drive should start fully ejected, got %s", d.Insertion())
	}

	if err := d.InsertDisk(NewDisk()); err != nil {
		t.Fatalf("InsertDisk: %v", err)
	}
	if d.Insertion() != PartiallyInserted {
		t.Fatalf("expected partially inserted immediately after InsertDisk, got %s", d.Insertion())
	}

	for i := 0; i < framesPerInsertionStep-1; i++ {
		d.Frame()
	}
	if d.Insertion() != PartiallyInserted {
		t.Fatalf("disk fully inserted too early, at frame %d", framesPerInsertionStep-1)
	}
	d.Frame()
	if d.Insertion() != FullyInserted {
		t.Fatalf("expected fully inserted after %d frames, got %s", framesPerInsertionStep, d.Insertion())
	}
}

func TestStepperAdvancesHalftrackOnPhaseSequence(t *testing.T) {
	d, err := New(0, iec.NewBus(), blankROM())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	start := d.Halftrack()

	d.via2.Write(0x02, 0xFF) // DDRB all output
	sequence := []uint8{0, 1, 3, 2, 0}
	for _, phase := range sequence {
		d.via2.Write(0x00, phase)
		d.updateStepper()
	}
	if d.Halftrack() != start+4 {
		t.Fatalf("halftrack = %d, want %d after a full forward phase cycle", d.Halftrack(), start+4)
	}

	for _, phase := range []uint8{2, 3, 1, 0} {
		d.via2.Write(0x00, phase)
		d.updateStepper()
	}
	if d.Halftrack() != start {
		t.Fatalf("halftrack = %d, want %d after the reverse phase cycle", d.Halftrack(), start)
	}
}

func TestBitClockLatchesByteAndPulsesCA1OnSync(t *testing.T) {
	d, err := New(0, iec.NewBus(), blankROM())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.InsertDisk(NewDisk()); err != nil {
		t.Fatalf("InsertDisk: %v", err)
	}
	for i := 0; i < framesPerInsertionStep; i++ {
		d.Frame()
	}

	track := make([]uint8, 16)
	for i := range track[:5] {
		track[i] = 0xFF // ten-plus 1-bits: SYNC
	}
	track[5] = 0xAB
	d.disk.HalfTracks[d.halftrack-1] = track

	d.via2.Write(0x0B, 0x00) // ACR
	d.via2.Write(0x0C, 0x00) // PCR: CA2 not in manual-low mode
	d.motorOn = true

	var lastFlag uint8
	for i := 0; i < 4*16*8; i++ {
		d.tickBitClock()
		lastFlag = d.via2.Read(0x0D) // IFR
	}
	if lastFlag&0x02 == 0 {
		t.Fatalf("expected CA1 (byte-ready) flag set in IFR after a full sync+byte window, got %#02x", lastFlag)
	}
}

func TestIECLinesSensedThroughVIA1PortB(t *testing.T) {
	bus := iec.NewBus()
	d, err := New(0, bus, blankROM())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	d.via1.Write(0x02, 0x00) // DDRB: all input, so PB reflects sense directly

	bus.DriveCPU(true, false, true) // ATN asserted, CLK released, DATA asserted
	bus.Update()
	d.onCycle()

	pb := d.via1.Read(0x00)
	if pb&0x80 != 0 {
		t.Fatalf("ATN-in bit should read asserted (0), got PB=%#02x", pb)
	}
	if pb&0x04 == 0 {
		t.Fatalf("CLK-in bit should read released (1), got PB=%#02x", pb)
	}
}

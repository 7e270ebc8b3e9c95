package sid

import "testing"

func TestVoiceFrequencyWriteReadback(t *testing.T) {
	s := New(nil)
	s.Write(regV1FreqLo, 0x34)
	s.Write(regV1FreqHi, 0x12)
	if s.voices[0].freq != 0x1234 {
		t.Fatalf("voice 1 freq = %#04x, want 0x1234", s.voices[0].freq)
	}
}

func TestVoiceRegistersReadAsFF(t *testing.T) {
	s := New(nil)
	s.Write(regV1FreqLo, 0x99)
	got, _ := s.Read(regV1FreqLo)
	if got != 0xFF {
		t.Fatalf("write-only register read = %#02x, want 0xFF", got)
	}
}

func TestPaddleDefaultsToFloatingHigh(t *testing.T) {
	s := New(nil)
	x, _ := s.Read(regPotX)
	y, _ := s.Read(regPotY)
	if x != 0xFF || y != 0xFF {
		t.Fatalf("unconnected paddles read x=%#02x y=%#02x, want 0xFF/0xFF", x, y)
	}
}

type fixedPaddles struct{ x, y uint8 }

func (p fixedPaddles) PotX() uint8 { return p.x }
func (p fixedPaddles) PotY() uint8 { return p.y }

func TestPaddleSourceWired(t *testing.T) {
	s := New(fixedPaddles{x: 0x40, y: 0xC0})
	x, _ := s.Read(regPotX)
	y, _ := s.Read(regPotY)
	if x != 0x40 || y != 0xC0 {
		t.Fatalf("paddle readback = x=%#02x y=%#02x, want 0x40/0xc0", x, y)
	}
}

func TestGateRisingStartsAttack(t *testing.T) {
	s := New(nil)
	s.Write(regV1AD, 0x00) // fastest attack rate
	s.Write(regV1Ctrl, ctrlGate)

	for i := 0; i < attackRatePeriods[0]+1; i++ {
		s.Tick()
	}
	if s.voices[0].level == 0 {
		t.Fatalf("envelope level did not advance after gate-on attack ticks")
	}
}

func TestGateFallingStartsRelease(t *testing.T) {
	s := New(nil)
	s.Write(regV1AD, 0x00)
	s.Write(regV1SR, 0x00) // fastest release rate
	s.Write(regV1Ctrl, ctrlGate)
	s.voices[0].level = 0xFF
	s.voices[0].phase = phaseSustain
	s.voices[0].gatePrevious = true

	s.Write(regV1Ctrl, 0x00) // gate off
	for i := 0; i < decayReleaseRatePeriods[0]+1; i++ {
		s.Tick()
	}
	if s.voices[0].level == 0xFF {
		t.Fatalf("envelope level did not decay after gate-off release ticks")
	}
}

func TestOscillator3ReadbackChangesWithAccumulator(t *testing.T) {
	s := New(nil)
	s.Write(regV3FreqLo, 0xFF)
	s.Write(regV3FreqHi, 0x0F)

	before, _ := s.Read(regOsc3)
	for i := 0; i < 2000; i++ {
		s.Tick()
	}
	after, _ := s.Read(regOsc3)
	if before == after {
		t.Fatalf("oscillator 3 readback did not change after ticking, stuck at %#02x", before)
	}
}

func TestFilterCutoffWriteSplitsLoHi(t *testing.T) {
	s := New(nil)
	s.Write(regFilterCutoffLo, 0x07)
	s.Write(regFilterCutoffHi, 0xFF)
	if s.FilterCutoff() != 0x7FF {
		t.Fatalf("filter cutoff = %#04x, want 0x7ff", s.FilterCutoff())
	}
}

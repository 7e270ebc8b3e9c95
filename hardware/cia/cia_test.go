package cia

import "testing"

type fakeIRQ struct {
	requested, released int
}

func (f *fakeIRQ) RequestIRQ() { f.requested++ }
func (f *fakeIRQ) ReleaseIRQ() { f.released++ }

// TestTODAlarmExactICRValue reproduces the named TOD-alarm boundary: alarm
// set to 00:00:05.0, TOD IRQ enabled, clock started at 00:00:04.9. After
// five 50 Hz power-line ticks (one tenth of a second) the ICR read returns
// exactly $84 (IRQ + alarm bits) once, then 0 on the next read.
func TestTODAlarmExactICRValue(t *testing.T) {
	irq := &fakeIRQ{}
	c := New("CIA1", irq, nil)

	c.hours, c.alarmHours = 0x00, 0x00
	c.minutes, c.alarmMinutes = 0x00, 0x00
	c.seconds, c.alarmSeconds = 0x04, 0x05
	c.alarmTenths = 0x00
	c.tenths = 0x09 // 00:00:04.9

	c.Write(regCRA, crTODIN)       // TOD input runs at 50 Hz
	c.Write(regICR, 0x80|icrALARM) // enable TOD-alarm IRQ source

	for i := 0; i < 5; i++ {
		c.TickTOD()
	}

	if c.seconds != 0x05 || c.tenths != 0x00 {
		t.Fatalf("TOD did not reach 00:00:05.0, got sec=%#02x tenths=%#02x", c.seconds, c.tenths)
	}

	got, _ := c.Read(regICR)
	if got != 0x84 {
		t.Fatalf("first ICR read after alarm = %#02x, want $84", got)
	}
	if irq.requested == 0 {
		t.Fatalf("alarm did not request an IRQ")
	}

	got2, _ := c.Read(regICR)
	if got2 != 0 {
		t.Fatalf("second ICR read = %#02x, want 0", got2)
	}
}

func TestTimerAOneShotUnderflowStops(t *testing.T) {
	irq := &fakeIRQ{}
	c := New("CIA1", irq, nil)

	c.Write(regTALo, 0x02)
	c.Write(regTAHi, 0x00) // latch = 2, timer loaded since START clear
	c.Write(regICR, 0x80|icrTA) // enable the timer-A IRQ source
	c.Write(regCRA, crSTART|crRUNMODE)

	c.Tick() // ta: 2 -> 1
	c.Tick() // ta: 1 -> 0, underflow, one-shot clears START

	if c.cra&crSTART != 0 {
		t.Fatalf("one-shot timer A did not clear START on underflow")
	}
	if irq.requested == 0 {
		t.Fatalf("timer A underflow did not raise an IRQ")
	}

	before := c.ta
	c.Tick()
	if c.ta != before {
		t.Fatalf("stopped timer A kept counting: %#04x -> %#04x", before, c.ta)
	}
}

func TestTimerAContinuousReloadsFromLatch(t *testing.T) {
	c := New("CIA1", nil, nil)
	c.Write(regTALo, 0x03)
	c.Write(regTAHi, 0x00)
	c.Write(regCRA, crSTART) // continuous (RUNMODE bit clear)

	for i := 0; i < 3; i++ {
		c.Tick()
	}
	if c.ta != 3 {
		t.Fatalf("timer A did not reload from latch after underflow, ta=%#04x", c.ta)
	}
}

func TestTimerBCountsTimerAUnderflows(t *testing.T) {
	c := New("CIA1", nil, nil)
	c.Write(regTALo, 0x01)
	c.Write(regTAHi, 0x00)
	c.Write(regCRA, crSTART|crRUNMODE) // one-shot, underflows once

	c.Write(regTBLo, 0x02)
	c.Write(regTBHi, 0x00)
	c.Write(regCRB, crSTART|crINMODEB1) // count timer-A underflows

	if c.tb != 2 {
		t.Fatalf("timer B latch did not load, tb=%#04x", c.tb)
	}

	c.Tick() // timer A underflows this cycle, timer B should decrement
	if c.tb != 1 {
		t.Fatalf("timer B did not count timer A's underflow, tb=%#04x", c.tb)
	}
}

func TestICRMaskSetClear(t *testing.T) {
	c := New("CIA1", nil, nil)
	c.Write(regICR, 0x80|icrTA|icrTB)
	if c.icrMask != icrTA|icrTB {
		t.Fatalf("ICR set-mask write = %#02x, want %#02x", c.icrMask, icrTA|icrTB)
	}
	c.Write(regICR, icrTA) // clear TA bit only (bit 7 = 0)
	if c.icrMask != icrTB {
		t.Fatalf("ICR clear-mask write = %#02x, want %#02x", c.icrMask, icrTB)
	}
}

func TestPortReadThroughDDRAndSense(t *testing.T) {
	c := New("CIA1", nil, pulledLowPorts{bit: 0x01})
	c.Write(regDDRA, 0x00) // all input
	got := c.PA()
	if got&0x01 != 0 {
		t.Fatalf("PA bit 0 not pulled low by Ports.SenseA")
	}
}

type pulledLowPorts struct{ bit uint8 }

func (p pulledLowPorts) SenseA(output uint8) uint8 { return output &^ p.bit }
func (p pulledLowPorts) SenseB(output uint8) uint8 { return output }

func TestTODHourReadFreezesSecondsAndMinutes(t *testing.T) {
	c := New("CIA1", nil, nil)
	c.seconds = 0x30
	c.minutes = 0x15
	c.hours = 0x07

	hourVal, _ := c.Read(regTODHour)
	if hourVal != 0x07 {
		t.Fatalf("hour read = %#02x, want 0x07", hourVal)
	}

	c.seconds = 0x31 // clock keeps ticking underneath the freeze
	got, _ := c.Read(regTODSec)
	if got != 0x30 {
		t.Fatalf("seconds read while frozen = %#02x, want frozen 0x30", got)
	}

	c.Read(regTODTenths) // unfreezes
	got2, _ := c.Read(regTODSec)
	if got2 != 0x31 {
		t.Fatalf("seconds read after unfreeze = %#02x, want live 0x31", got2)
	}
}

package cia

// Register offsets within the 16-byte $DC00/$DD00 window (before the
// 16-byte mirror period hardware/memory already applies).
const (
	regPRA       = 0x00
	regPRB       = 0x01
	regDDRA      = 0x02
	regDDRB      = 0x03
	regTALo      = 0x04
	regTAHi      = 0x05
	regTBLo      = 0x06
	regTBHi      = 0x07
	regTODTenths = 0x08
	regTODSec    = 0x09
	regTODMin    = 0x0A
	regTODHour   = 0x0B
	regSDR       = 0x0C
	regICR       = 0x0D
	regCRA       = 0x0E
	regCRB       = 0x0F
)

const registerCount = 16

// Control register bits, shared layout between CRA and CRB.
const (
	crSTART    = 0x01
	crPBON     = 0x02
	crOUTMODE  = 0x04 // 0 = toggle, 1 = pulse
	crRUNMODE  = 0x08 // 0 = continuous, 1 = one-shot
	crLOAD     = 0x10 // strobe: force-load from latch, self-clearing
	crINMODEA  = 0x20 // CRA: 0 = system cycles, 1 = CNT pin
	crTODIN    = 0x80 // CRA bit 7: 0 = 60 Hz, 1 = 50 Hz
	crALARM    = 0x80 // CRB bit 7: 0 = TOD clock, 1 = TOD alarm (register target select)
	crINMODEB0 = 0x20 // CRB bits 5-6: 00 system cycles, 01 CNT pin, 1x timer A underflow
	crINMODEB1 = 0x40
)

// ICR (interrupt control register) bits.
const (
	icrTA    = 0x01
	icrTB    = 0x02
	icrALARM = 0x04
	icrSP    = 0x08
	icrFLAG  = 0x10
	icrIR    = 0x80 // read-only: OR of (flags & mask)
	icrSC    = 0x80 // write-only: set(1)/clear(0) the mask bits named by the low 5 bits
)

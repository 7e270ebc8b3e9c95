package via

// Register offsets within a VIA's 16-byte window. Both VIA 1 ($1800) and
// VIA 2 ($1C00) in the drive use this layout; only the port wiring differs.
const (
	regORB  = 0x00
	regORA  = 0x01
	regDDRB = 0x02
	regDDRA = 0x03
	regT1CL = 0x04
	regT1CH = 0x05
	regT1LL = 0x06
	regT1LH = 0x07
	regT2CL = 0x08
	regT2CH = 0x09
	regSR   = 0x0A
	regACR  = 0x0B
	regPCR  = 0x0C
	regIFR  = 0x0D
	regIER  = 0x0E
	regORA2 = 0x0F // same register as ORA, accessed the same way (including clearing the CA1/CA2 flags)

	registerCount = 16
)

// Interrupt flag/enable register bits.
const (
	ifCA2 = 0x01
	ifCA1 = 0x02
	ifSR  = 0x04
	ifCB2 = 0x08
	ifCB1 = 0x10
	ifT2  = 0x20
	ifT1  = 0x40
	ifIRQ = 0x80 // read-only: OR of (IFR & IER)
	ieSC  = 0x80 // write-only: set(1)/clear(0) the mask bits named by the low 7 bits
)

// Auxiliary control register bits relevant to timer 1's free-run mode.
const (
	acrT1Continuous = 0x40
	acrT1PB7        = 0x80
)

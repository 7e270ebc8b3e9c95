package addresses

// ChipRegister specifies the offset of a chip register within one of the I/O
// block's four chip windows. A value here is added to the window's base
// address (VICBase, SIDBase, CIA1Base, CIA2Base) to get the absolute address;
// used wherever a register is named rather than dereferenced numerically, so
// that e.g. a sprite-collision handler reads as "$D01E" rather than a raw
// offset.
type ChipRegister int

// VIC-II registers, offsets from VICBase.
const (
	SP0X ChipRegister = iota
	SP0Y
	SP1X
	SP1Y
	SP2X
	SP2Y
	SP3X
	SP3Y
	SP4X
	SP4Y
	SP5X
	SP5Y
	SP6X
	SP6Y
	SP7X
	SP7Y
	MSIGX // sprite X MSBs
	CR1   // control register 1 (RST8, ECM, BMM, DEN, RSEL, YSCROLL)
	RASTER
	LPX
	LPY
	SPENA // sprite enable
	CR2   // control register 2 (RES, MCM, CSEL, XSCROLL)
	MYE   // sprite Y expand
	MEMPTR
	IRR // interrupt register
	IMR // interrupt mask register
	SPBGPR
	MMC   // sprite multicolour enable
	MXE   // sprite X expand
	SSCOL // sprite-sprite collision
	SBCOL // sprite-background collision
	EC    // border colour
	B0C
	B1C
	B2C
	B3C
	MM0
	MM1
	SP0C
	SP1C
	SP2C
	SP3C
	SP4C
	SP5C
	SP6C
	SP7C
)

// CIA registers, offsets from CIA1Base/CIA2Base. Both CIA chips share this
// register layout; only their pin wiring (keyboard/joystick/VIC-bank/IEC)
// differs.
const (
	PRA ChipRegister = iota
	PRB
	DDRA
	DDRB
	TALO
	TAHI
	TBLO
	TBHI
	TODTEN
	TODSEC
	TODMIN
	TODHR
	SDR
	ICR
	CRA
	CRB
)

// SID register offsets, written out in full rather than iota-chained since
// the three voices repeat the same seven-register block at a fixed stride.
const (
	SIDVoice1Freq  ChipRegister = 0
	SIDVoice1PW    ChipRegister = 2
	SIDVoice1Ctrl  ChipRegister = 4
	SIDVoice1AD    ChipRegister = 5
	SIDVoice1SR    ChipRegister = 6
	SIDVoiceStride              = 7

	SIDVoice2Freq ChipRegister = 7
	SIDVoice3Freq ChipRegister = 14

	SIDFilterCutoff ChipRegister = 21
	SIDFilterRes    ChipRegister = 23
	SIDModeVolume   ChipRegister = 24
	SIDPotX         ChipRegister = 25
	SIDPotY         ChipRegister = 26
	SIDOsc3         ChipRegister = 27
	SIDEnv3         ChipRegister = 28
)

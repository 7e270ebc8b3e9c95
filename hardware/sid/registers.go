package sid

// Register offsets within the 29-register $D400 window (before the
// 32-byte mirror period hardware/memory already applies).
const (
	regV1FreqLo = 0x00
	regV1FreqHi = 0x01
	regV1PWLo   = 0x02
	regV1PWHi   = 0x03
	regV1Ctrl   = 0x04
	regV1AD     = 0x05
	regV1SR     = 0x06

	regV2FreqLo = 0x07
	regV2FreqHi = 0x08
	regV2PWLo   = 0x09
	regV2PWHi   = 0x0A
	regV2Ctrl   = 0x0B
	regV2AD     = 0x0C
	regV2SR     = 0x0D

	regV3FreqLo = 0x0E
	regV3FreqHi = 0x0F
	regV3PWLo   = 0x10
	regV3PWHi   = 0x11
	regV3Ctrl   = 0x12
	regV3AD     = 0x13
	regV3SR     = 0x14

	regFilterCutoffLo = 0x15
	regFilterCutoffHi = 0x16
	regResFilt        = 0x17
	regModeVol        = 0x18

	regPotX = 0x19
	regPotY = 0x1A
	regOsc3 = 0x1B
	regEnv3 = 0x1C
)

const registerCount = 29
const voiceRegisterStride = 0x07

// Control register bits (voice N's Ctrl offset).
const (
	ctrlGate     = 0x01
	ctrlSync     = 0x02
	ctrlRingMod  = 0x04
	ctrlTest     = 0x08
	ctrlTriangle = 0x10
	ctrlSawtooth = 0x20
	ctrlPulse    = 0x40
	ctrlNoise    = 0x80
)

// ResFilt bits.
const (
	filtV1  = 0x01
	filtV2  = 0x02
	filtV3  = 0x04
	filtExt = 0x08
	filtRes = 0xF0
)

// ModeVol bits.
const (
	modeVolMask = 0x0F
	modeLP      = 0x10
	modeBP      = 0x20
	modeHP      = 0x40
	mode3Off    = 0x80
)

// envelopePhase names the ADSR state machine's current segment, tracked per
// voice so Oscillator/envelope readback (registers $1B/$1C) can report
// voice 3's state regardless of whether voice 3 feeds the mixer.
type envelopePhase int

const (
	phaseIdle envelopePhase = iota
	phaseAttack
	phaseDecay
	phaseSustain
	phaseRelease
)

// Package addresses names the fixed locations in the C64's memory map:
// the processor port, the zero-page stack/vector areas, the I/O block's
// four chip windows, and the three interrupt/reset vectors.
package addresses

// Processor port — the 6510's own on-chip I/O port (direction and data
// registers), mapped at the very
// bottom of the address space regardless of the current bank configuration.
const (
	ProcPortDirection = uint16(0x0000) // data direction register
	ProcPortData      = uint16(0x0001) // LORAM/HIRAM/CHAREN plus cassette lines
)

// Stack page. The 6510 stack pointer always indexes into $0100-$01FF.
const StackPage = uint16(0x0100)

// I/O block base addresses ($D000-$DFFF), valid when memorymap.IO is the
// resolved source for that bank.
const (
	VICBase      = uint16(0xD000) // 47 registers, mirrored every 64 bytes to $D3FF
	SIDBase      = uint16(0xD400) // 29 registers, mirrored every 32 bytes to $D7FF
	ColorRAMBase = uint16(0xD800) // low nibble only; high nibble floats to the VIC's last bus value
	CIA1Base     = uint16(0xDC00)
	CIA2Base     = uint16(0xDD00)
	IO1Base      = uint16(0xDE00) // cartridge I/O window 1
	IO2Base      = uint16(0xDF00) // cartridge I/O window 2
)

// I/O block extents, one past the last mirrored address of each window.
const (
	VICEnd      = uint16(0xD400)
	SIDEnd      = uint16(0xD800)
	ColorRAMEnd = uint16(0xDC00)
	CIA1End     = uint16(0xDD00)
	CIA2End     = uint16(0xDE00)
	IO1End      = uint16(0xDF00)
	IO2End      = uint16(0xE000)
)

// VIC register count and register mirror period within its window.
const (
	VICRegisterCount = 47
	VICMirrorPeriod  = 64
)

// CIA register count and mirror period within its window.
const (
	CIARegisterCount = 16
	CIAMirrorPeriod  = 16
)

// SID register count and mirror period within its window.
const (
	SIDRegisterCount = 29
	SIDMirrorPeriod  = 32
)

// ROM image sizes and load addresses, for cmd/c64run and the top-level
// memory dispatcher's ROM arrays.
const (
	BasicROMBase  = uint16(0xA000)
	BasicROMSize  = 0x2000
	KernalROMBase = uint16(0xE000)
	KernalROMSize = 0x2000
	CharROMBase   = uint16(0xD000)
	CharROMSize   = 0x1000
)

// CPU vectors. The hardware vectors at $FFFA-$FFFF are always read from
// whatever currently backs bank 15 (KernalROM on power-up, RAM if the
// Kernal is banked out, cartridge CartHi in ultimax/16K mode).
const (
	VectorNMI   = uint16(0xFFFA)
	VectorReset = uint16(0xFFFC)
	VectorIRQ   = uint16(0xFFFE)
)

// Cassette-port sense lines, latched through processor port bits 4 and 5 —
// named here since they share the $0001 data register with LORAM/HIRAM/
// CHAREN.
const (
	ProcPortCassetteSwitch = uint8(0x10)
	ProcPortCassetteMotor  = uint8(0x20)
)

// Processor port bit masks for the lines the memory map's PLA watches.
const (
	ProcPortLORAM  = uint8(0x01)
	ProcPortHIRAM  = uint8(0x02)
	ProcPortCHAREN = uint8(0x04)
)

// ProcPortDefaultData is the state of $0001 immediately after reset: all
// lines high, both ROMs and I/O visible, cassette motor off.
const ProcPortDefaultData = uint8(0x37)

// ProcPortDirectionDefault is the state of $0000 immediately after reset:
// bits 0-3 and 5 output; bit 4 (cassette switch sense) and bits 6-7 input
// (the latter unconnected on most boards).
const ProcPortDirectionDefault = uint8(0x2F)

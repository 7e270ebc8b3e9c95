package cpu

import (
	"github.com/sixtyfour/core64/hardware/cpu/execution"
	"github.com/sixtyfour/core64/hardware/cpu/instructions"
)

// decodeOperand reads whatever bytes the opcode's addressing mode requires
// from the instruction stream and computes the effective address. value is
// only meaningful on return for Implied/Immediate/Accumulator modes — every
// other mode defers its operand read to ExecuteInstruction, since Read vs
// Modify categories consume the cycle budget differently.
func (mc *CPU) decodeOperand(defn *instructions.Definition, address *uint16, value *uint8, zeroPage *bool) error {
	switch defn.AddressingMode {
	case instructions.Implied, instructions.Accumulator:
		*value = mc.A.Value()
		return nil

	case instructions.Immediate:
		if err := mc.read8BitPC(loNibble); err != nil {
			return err
		}
		*value = uint8(mc.LastResult.InstructionData)
		return nil

	case instructions.ZeroPage:
		if err := mc.read8BitPC(loNibble); err != nil {
			return err
		}
		*address = mc.LastResult.InstructionData
		*zeroPage = true
		return nil

	case instructions.ZeroPageX:
		return mc.decodeZeroPageIndexed(mc.X.Value(), address, zeroPage)
	case instructions.ZeroPageY:
		return mc.decodeZeroPageIndexed(mc.Y.Value(), address, zeroPage)

	case instructions.Relative:
		if err := mc.read8BitPC(loNibble); err != nil {
			return err
		}
		*address = mc.LastResult.InstructionData
		return nil

	case instructions.Absolute:
		if err := mc.read16BitPC(); err != nil {
			return err
		}
		*address = mc.LastResult.InstructionData
		return nil

	case instructions.AbsoluteX:
		return mc.decodeAbsoluteIndexed(mc.X.Value(), defn, address)
	case instructions.AbsoluteY:
		return mc.decodeAbsoluteIndexed(mc.Y.Value(), defn, address)

	case instructions.Indirect:
		return mc.decodeIndirect(address)

	case instructions.PreIndexed:
		return mc.decodePreIndexed(address)

	case instructions.PostIndexed:
		return mc.decodePostIndexed(defn, address)
	}

	return nil
}

func (mc *CPU) decodeZeroPageIndexed(index uint8, address *uint16, zeroPage *bool) error {
	if err := mc.read8BitPC(loNibble); err != nil {
		return err
	}
	base := uint8(mc.LastResult.InstructionData)

	// the index addition wraps within the zero page: a base of $ff plus an
	// index of $01 gives $00, never $0100 — the well-known zero-page wrap
	// bug.
	if int(base)+int(index) > 0xff {
		mc.LastResult.Bug = execution.ZeroPageIndexWrapBug
	}

	if _, err := mc.read8BitZeroPage(base); err != nil {
		return err
	}

	*address = uint16(base + index)
	*zeroPage = true
	return nil
}

func (mc *CPU) decodeAbsoluteIndexed(index uint8, defn *instructions.Definition, address *uint16) error {
	if err := mc.read16BitPC(); err != nil {
		return err
	}
	base := mc.LastResult.InstructionData
	effective := base + uint16(index)
	mc.LastResult.PageFault = base&0xff00 != effective&0xff00

	// Read and Flow instructions only pay the extra cycle when the index
	// crosses a page boundary; Write and Modify instructions always pay it
	// (the CPU cannot know in advance whether the boundary will be
	// crossed, so it always performs the phantom read of the wrong page).
	if mc.LastResult.PageFault || defn.Effect == instructions.Write || defn.Effect == instructions.Modify {
		wrongPage := (base & 0xff00) | (effective & 0x00ff)
		if _, err := mc.read8Bit(wrongPage, true); err != nil {
			return err
		}
	}

	*address = effective
	return nil
}

func (mc *CPU) decodeIndirect(address *uint16) error {
	if err := mc.read16BitPC(); err != nil {
		return err
	}
	ptr := mc.LastResult.InstructionData

	lo, err := mc.read8Bit(ptr, false)
	if err != nil {
		return err
	}

	// the indirect JMP page-wrap bug: if the low byte of the pointer is
	// $ff, the high byte is fetched from the start of the same page
	// instead of the next one.
	hiAddr := ptr + 1
	if ptr&0x00ff == 0x00ff {
		mc.LastResult.Bug = execution.JmpIndirectPageWrapBug
		hiAddr = ptr & 0xff00
	}

	hi, err := mc.read8Bit(hiAddr, false)
	if err != nil {
		return err
	}

	*address = (uint16(hi) << 8) | uint16(lo)
	return nil
}

// decodePreIndexed implements (zp,X): the pointer is read from zero page at
// zp+X, wrapping within the zero page.
func (mc *CPU) decodePreIndexed(address *uint16) error {
	if err := mc.read8BitPC(loNibble); err != nil {
		return err
	}
	zp := uint8(mc.LastResult.InstructionData)

	if _, err := mc.read8BitZeroPage(zp); err != nil {
		return err
	}

	if int(zp)+int(mc.X.Value()) > 0xff {
		mc.LastResult.Bug = execution.IndexedIndirectWrapBug
	}
	indexed := zp + mc.X.Value()

	lo, err := mc.read8BitZeroPage(indexed)
	if err != nil {
		return err
	}
	hi, err := mc.read8BitZeroPage(indexed + 1)
	if err != nil {
		return err
	}

	*address = (uint16(hi) << 8) | uint16(lo)
	return nil
}

// decodePostIndexed implements (zp),Y: the pointer is read from zero page
// at zp, then Y is added to the resulting 16-bit address.
func (mc *CPU) decodePostIndexed(defn *instructions.Definition, address *uint16) error {
	if err := mc.read8BitPC(loNibble); err != nil {
		return err
	}
	zp := uint8(mc.LastResult.InstructionData)

	lo, err := mc.read8BitZeroPage(zp)
	if err != nil {
		return err
	}
	hi, err := mc.read8BitZeroPage(zp + 1)
	if err != nil {
		return err
	}

	base := (uint16(hi) << 8) | uint16(lo)
	effective := base + uint16(mc.Y.Value())
	mc.LastResult.PageFault = base&0xff00 != effective&0xff00

	if mc.LastResult.PageFault || defn.Effect == instructions.Write || defn.Effect == instructions.Modify {
		mc.LastResult.Bug = execution.IndirectIndexedCarryBug
		wrongPage := (base & 0xff00) | (effective & 0x00ff)
		if _, err := mc.read8Bit(wrongPage, true); err != nil {
			return err
		}
	}

	*address = effective
	return nil
}

package cpu

import (
	"fmt"

	"github.com/sixtyfour/core64/hardware/cpu/instructions"
	"github.com/sixtyfour/core64/hardware/cpu/registers"
	"github.com/sixtyfour/core64/hardware/memory/addresses"
)

func (mc *CPU) setNZ(v uint8) {
	mc.Status.Sign = v&0x80 == 0x80
	mc.Status.Zero = v == 0
}

func (mc *CPU) compare(register uint8, value uint8) {
	result := register - value
	mc.Status.Carry = register >= value
	mc.setNZ(result)
}

// pull advances S and returns the byte it now points at, in one bus cycle.
// The stack-pointer-increment dummy read that precedes it on a 6502 is
// left to the caller.
func (mc *CPU) pull() (uint8, error) {
	mc.SP.Add(1, false)
	v, err := mc.read8Bit(mc.SP.Address(), false)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func (mc *CPU) push(v uint8) error {
	if err := mc.write8Bit(mc.SP.Address(), v, false); err != nil {
		return err
	}
	mc.SP.Add(0xff, false)
	mc.LastResult.Cycles++
	return mc.cycleCallback()
}

// execute carries out defn's operation. value holds the already-fetched
// operand for Read and Modify instructions (Accumulator mode included);
// address is valid for every mode except Implied/Immediate/Accumulator.
// Modify instructions write *value back to memory after execute returns,
// except in Accumulator mode, where the result belongs in A instead.
func (mc *CPU) execute(defn *instructions.Definition, address uint16, value *uint8) error {
	switch defn.Operator {

	case instructions.ADC:
		if mc.Status.DecimalMode {
			carry, zero, overflow, sign := mc.A.AddDecimal(*value, mc.Status.Carry)
			mc.Status.Carry, mc.Status.Zero, mc.Status.Overflow, mc.Status.Sign = carry, zero, overflow, sign
		} else {
			carry, overflow := mc.A.Add(*value, mc.Status.Carry)
			mc.Status.Carry, mc.Status.Overflow = carry, overflow
			mc.setNZ(mc.A.Value())
		}

	case instructions.SBC:
		if mc.Status.DecimalMode {
			carry, zero, overflow, sign := mc.A.SubtractDecimal(*value, mc.Status.Carry)
			mc.Status.Carry, mc.Status.Zero, mc.Status.Overflow, mc.Status.Sign = carry, zero, overflow, sign
		} else {
			carry, overflow := mc.A.Subtract(*value, mc.Status.Carry)
			mc.Status.Carry, mc.Status.Overflow = carry, overflow
			mc.setNZ(mc.A.Value())
		}

	case instructions.AND:
		mc.A.AND(*value)
		mc.setNZ(mc.A.Value())
	case instructions.EOR:
		mc.A.EOR(*value)
		mc.setNZ(mc.A.Value())
	case instructions.ORA:
		mc.A.ORA(*value)
		mc.setNZ(mc.A.Value())

	case instructions.ASL:
		if err := mc.shiftRotate(defn, value, func(r *registers.Register) bool { return r.ASL() }); err != nil {
			return err
		}
	case instructions.LSR:
		if err := mc.shiftRotate(defn, value, func(r *registers.Register) bool { return r.LSR() }); err != nil {
			return err
		}
	case instructions.ROL:
		c := mc.Status.Carry
		if err := mc.shiftRotate(defn, value, func(r *registers.Register) bool { return r.ROL(c) }); err != nil {
			return err
		}
	case instructions.ROR:
		c := mc.Status.Carry
		if err := mc.shiftRotate(defn, value, func(r *registers.Register) bool { return r.ROR(c) }); err != nil {
			return err
		}

	case instructions.BIT:
		mc.Status.Zero = mc.A.Value()&*value == 0
		mc.Status.Sign = *value&0x80 == 0x80
		mc.Status.Overflow = *value&0x40 == 0x40

	case instructions.CMP:
		mc.compare(mc.A.Value(), *value)
	case instructions.CPX:
		mc.compare(mc.X.Value(), *value)
	case instructions.CPY:
		mc.compare(mc.Y.Value(), *value)

	case instructions.INC:
		*value++
		mc.setNZ(*value)
	case instructions.DEC:
		*value--
		mc.setNZ(*value)
	case instructions.INX:
		mc.X.Add(1, false)
		mc.setNZ(mc.X.Value())
	case instructions.INY:
		mc.Y.Add(1, false)
		mc.setNZ(mc.Y.Value())
	case instructions.DEX:
		mc.X.Add(0xff, false)
		mc.setNZ(mc.X.Value())
	case instructions.DEY:
		mc.Y.Add(0xff, false)
		mc.setNZ(mc.Y.Value())

	case instructions.LDA:
		mc.A.Load(*value)
		mc.setNZ(mc.A.Value())
	case instructions.LDX:
		mc.X.Load(*value)
		mc.setNZ(mc.X.Value())
	case instructions.LDY:
		mc.Y.Load(*value)
		mc.setNZ(mc.Y.Value())
	case instructions.STA:
		*value = mc.A.Value()
	case instructions.STX:
		*value = mc.X.Value()
	case instructions.STY:
		*value = mc.Y.Value()

	case instructions.TAX:
		mc.X.Load(mc.A.Value())
		mc.setNZ(mc.X.Value())
	case instructions.TAY:
		mc.Y.Load(mc.A.Value())
		mc.setNZ(mc.Y.Value())
	case instructions.TXA:
		mc.A.Load(mc.X.Value())
		mc.setNZ(mc.A.Value())
	case instructions.TYA:
		mc.A.Load(mc.Y.Value())
		mc.setNZ(mc.A.Value())
	case instructions.TSX:
		mc.X.Load(mc.SP.Value())
		mc.setNZ(mc.X.Value())
	case instructions.TXS:
		mc.SP.Load(mc.X.Value())

	case instructions.CLC:
		mc.Status.Carry = false
	case instructions.SEC:
		mc.Status.Carry = true
	case instructions.CLD:
		mc.Status.DecimalMode = false
	case instructions.SED:
		mc.Status.DecimalMode = true
	case instructions.CLI:
		mc.Status.InterruptDisable = false
	case instructions.SEI:
		mc.Status.InterruptDisable = true
	case instructions.CLV:
		mc.Status.Overflow = false

	case instructions.NOP:
		// operand (if any) already fetched for its cycle-timing effect;
		// nothing further to do.

	case instructions.BCC:
		return mc.branch(!mc.Status.Carry, address)
	case instructions.BCS:
		return mc.branch(mc.Status.Carry, address)
	case instructions.BEQ:
		return mc.branch(mc.Status.Zero, address)
	case instructions.BNE:
		return mc.branch(!mc.Status.Zero, address)
	case instructions.BMI:
		return mc.branch(mc.Status.Sign, address)
	case instructions.BPL:
		return mc.branch(!mc.Status.Sign, address)
	case instructions.BVC:
		return mc.branch(!mc.Status.Overflow, address)
	case instructions.BVS:
		return mc.branch(mc.Status.Overflow, address)

	case instructions.JMP:
		if !mc.NoFlowControl {
			mc.PC.Load(address)
		}

	case instructions.JSR:
		return mc.jsr(address)
	case instructions.RTS:
		return mc.rts()
	case instructions.RTI:
		return mc.rti()
	case instructions.BRK:
		return mc.brk()

	case instructions.PHA:
		return mc.pha()
	case instructions.PHP:
		return mc.php()
	case instructions.PLA:
		return mc.pla()
	case instructions.PLP:
		return mc.plp()

	case instructions.JAM:
		mc.Killed = true

	// undocumented combination opcodes

	case instructions.SLO:
		carry := false
		r := registers.NewRegister(*value, "")
		carry = r.ASL()
		*value = r.Value()
		mc.Status.Carry = carry
		mc.A.ORA(*value)
		mc.setNZ(mc.A.Value())
	case instructions.RLA:
		r := registers.NewRegister(*value, "")
		carry := r.ROL(mc.Status.Carry)
		*value = r.Value()
		mc.Status.Carry = carry
		mc.A.AND(*value)
		mc.setNZ(mc.A.Value())
	case instructions.SRE:
		r := registers.NewRegister(*value, "")
		carry := r.LSR()
		*value = r.Value()
		mc.Status.Carry = carry
		mc.A.EOR(*value)
		mc.setNZ(mc.A.Value())
	case instructions.RRA:
		r := registers.NewRegister(*value, "")
		carry := r.ROR(mc.Status.Carry)
		*value = r.Value()
		mc.Status.Carry = carry
		if mc.Status.DecimalMode {
			c, z, o, s := mc.A.AddDecimal(*value, carry)
			mc.Status.Carry, mc.Status.Zero, mc.Status.Overflow, mc.Status.Sign = c, z, o, s
		} else {
			c, o := mc.A.Add(*value, carry)
			mc.Status.Carry, mc.Status.Overflow = c, o
			mc.setNZ(mc.A.Value())
		}
	case instructions.DCP:
		*value--
		mc.compare(mc.A.Value(), *value)
	case instructions.ISC:
		*value++
		c, o := mc.A.Subtract(*value, mc.Status.Carry)
		mc.Status.Carry, mc.Status.Overflow = c, o
		mc.setNZ(mc.A.Value())

	case instructions.SAX:
		*value = mc.A.Value() & mc.X.Value()
	case instructions.LAX:
		mc.A.Load(*value)
		mc.X.Load(*value)
		mc.setNZ(*value)

	case instructions.ANC:
		mc.A.AND(*value)
		mc.setNZ(mc.A.Value())
		mc.Status.Carry = mc.A.IsNegative()
	case instructions.ALR:
		mc.A.AND(*value)
		carry := mc.A.LSR()
		mc.Status.Carry = carry
		mc.setNZ(mc.A.Value())
	case instructions.ARR:
		mc.A.AND(*value)
		carry := mc.A.ROR(mc.Status.Carry)
		mc.Status.Carry = carry
		mc.setNZ(mc.A.Value())
		mc.Status.Overflow = (mc.A.Value()>>6)&0x01 != (mc.A.Value()>>5)&0x01

	case instructions.AXS:
		and := mc.A.Value() & mc.X.Value()
		result := and - *value
		mc.Status.Carry = and >= *value
		mc.X.Load(result)
		mc.setNZ(result)

	case instructions.ANE:
		// unstable: models the commonly-observed "magic constant" 0xff
		// rather than simulating analogue bus decay.
		mc.A.Load((mc.A.Value() | 0xff) & mc.X.Value() & *value)
		mc.setNZ(mc.A.Value())
	case instructions.LXA:
		mc.A.Load((mc.A.Value() | 0xff) & *value)
		mc.X.Load(mc.A.Value())
		mc.setNZ(mc.A.Value())
	case instructions.LAS:
		v := *value & mc.SP.Value()
		mc.A.Load(v)
		mc.X.Load(v)
		mc.SP.Load(v)
		mc.setNZ(v)
	case instructions.TAS:
		mc.SP.Load(mc.A.Value() & mc.X.Value())
		*value = mc.SP.Value() & uint8((address>>8)+1)
	case instructions.SHA:
		*value = mc.A.Value() & mc.X.Value() & uint8((address>>8)+1)
	case instructions.SHX:
		*value = mc.X.Value() & uint8((address>>8)+1)
	case instructions.SHY:
		*value = mc.Y.Value() & uint8((address>>8)+1)

	default:
		return fmt.Errorf("cpu: unimplemented operator %s", defn.Operator)
	}

	return nil
}

// shiftRotate applies op to A (Accumulator mode) or to the in-flight memory
// value (every other Modify mode), setting the carry and N/Z flags from the
// result. Accumulator mode burns the same two total cycles a memory-target
// shift would spend reading and phantom-writing, via a single internal
// cycle standing in for the real 6510's opcode-refetch-and-discard.
func (mc *CPU) shiftRotate(defn *instructions.Definition, value *uint8, op func(*registers.Register) bool) error {
	if defn.AddressingMode == instructions.Accumulator {
		carry := op(&mc.A)
		mc.Status.Carry = carry
		mc.setNZ(mc.A.Value())
		if _, err := mc.read8Bit(mc.PC.Address(), true); err != nil {
			return err
		}
		return nil
	}

	r := registers.NewRegister(*value, "")
	carry := op(&r)
	*value = r.Value()
	mc.Status.Carry = carry
	mc.setNZ(*value)
	return nil
}

func (mc *CPU) jsr(address uint16) error {
	if _, err := mc.read8Bit(mc.SP.Address(), true); err != nil {
		return err
	}
	ret := mc.PC.Address() - 1
	if err := mc.push(uint8(ret >> 8)); err != nil {
		return err
	}
	if err := mc.push(uint8(ret)); err != nil {
		return err
	}
	if !mc.NoFlowControl {
		mc.PC.Load(address)
	}
	return nil
}

func (mc *CPU) rts() error {
	if _, err := mc.read8Bit(mc.PC.Address(), true); err != nil {
		return err
	}
	if _, err := mc.read8Bit(mc.SP.Address(), true); err != nil {
		return err
	}
	lo, err := mc.pull()
	if err != nil {
		return err
	}
	hi, err := mc.pull()
	if err != nil {
		return err
	}

	addr := (uint16(hi) << 8) | uint16(lo)
	if !mc.NoFlowControl {
		mc.PC.Load(addr)
		mc.PC.Add(1)
	}
	if _, err := mc.read8Bit(mc.PC.Address(), true); err != nil {
		return err
	}
	return nil
}

func (mc *CPU) rti() error {
	if _, err := mc.read8Bit(mc.PC.Address(), true); err != nil {
		return err
	}
	if _, err := mc.read8Bit(mc.SP.Address(), true); err != nil {
		return err
	}
	sr, err := mc.pull()
	if err != nil {
		return err
	}
	lo, err := mc.pull()
	if err != nil {
		return err
	}
	hi, err := mc.pull()
	if err != nil {
		return err
	}

	if !mc.NoFlowControl {
		mc.Status.Load(sr)
		mc.PC.Load((uint16(hi) << 8) | uint16(lo))
	}
	return nil
}

func (mc *CPU) brk() error {
	if err := mc.read8BitPC(brkByte); err != nil {
		return err
	}
	if err := mc.pushPC(); err != nil {
		return err
	}
	mc.Status.Break = true
	if err := mc.push(mc.Status.Value()); err != nil {
		return err
	}
	mc.Status.InterruptDisable = true

	addr, err := mc.read16Bit(addresses.VectorIRQ)
	if err != nil {
		return err
	}
	mc.PC.Load(addr)
	return nil
}

func (mc *CPU) pha() error {
	if _, err := mc.read8Bit(mc.PC.Address(), true); err != nil {
		return err
	}
	return mc.push(mc.A.Value())
}

func (mc *CPU) php() error {
	if _, err := mc.read8Bit(mc.PC.Address(), true); err != nil {
		return err
	}
	mc.Status.Break = true
	return mc.push(mc.Status.Value())
}

func (mc *CPU) pla() error {
	if _, err := mc.read8Bit(mc.PC.Address(), true); err != nil {
		return err
	}
	if _, err := mc.read8Bit(mc.SP.Address(), true); err != nil {
		return err
	}
	v, err := mc.pull()
	if err != nil {
		return err
	}
	mc.A.Load(v)
	mc.setNZ(v)
	return nil
}

func (mc *CPU) plp() error {
	if _, err := mc.read8Bit(mc.PC.Address(), true); err != nil {
		return err
	}
	if _, err := mc.read8Bit(mc.SP.Address(), true); err != nil {
		return err
	}
	v, err := mc.pull()
	if err != nil {
		return err
	}
	mc.Status.Load(v)
	return nil
}

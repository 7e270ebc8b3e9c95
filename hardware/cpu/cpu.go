// Package cpu implements the 6510, the C64's CPU: identical to the 6502
// core-wise, with an extra two-bit I/O port folded into the bottom of the
// address space (handled by hardware/memory, not here).
package cpu

import (
	"fmt"

	"github.com/sixtyfour/core64/config"
	"github.com/sixtyfour/core64/hardware/cpu/execution"
	"github.com/sixtyfour/core64/hardware/cpu/instructions"
	"github.com/sixtyfour/core64/hardware/cpu/registers"
	"github.com/sixtyfour/core64/hardware/instance"
	"github.com/sixtyfour/core64/hardware/memory/addresses"
	"github.com/sixtyfour/core64/hardware/memory/bus"
)

// CPU implements the 6510 found in the C64. Register logic is implemented
// by the registers sub-package; opcode decoding by the instructions
// sub-package.
type CPU struct {
	ins *instance.Instance

	PC     registers.ProgramCounter
	A      registers.Register
	X      registers.Register
	Y      registers.Register
	SP     registers.StackPointer
	Status registers.Status

	mem bus.CPUBus

	// cycleCallback is called once per bus cycle from inside the read/write
	// helpers below, letting the rest of the machine (VIC-II, CIAs) advance
	// in lockstep with the CPU.
	cycleCallback func() error

	// RdyFlg controls whether the CPU executes a cycle when ticked — the
	// VIC-II pulls this low during badlines and sprite DMA to steal cycles.
	RdyFlg bool

	// LastResult is the previous call's decode/execute scratchpad. The
	// Address field is valid except immediately after Reset.
	LastResult execution.Result

	// NoFlowControl disables the effect of branches, jumps, subroutine
	// calls and interrupts on the PC/SP, for use by a disassembler that
	// wants to visit every byte of a program without actually running it.
	NoFlowControl bool

	// Interrupted marks that the CPU has been put into a state outside
	// normal operation (reset, debugger PC load). Resets to false on every
	// call to ExecuteInstruction.
	Interrupted bool

	// PhantomMemAccess records whether the most recent bus access was one
	// of the dummy reads/writes the 6510's addressing modes perform as a
	// side effect of their cycle timing.
	PhantomMemAccess bool

	// Killed is true once a JAM/KIL opcode has executed; only Reset clears
	// it.
	Killed bool

	// irqLine is the level-sensitive maskable interrupt input, asserted by
	// CIA timers, the VIC-II's raster/sprite interrupts, or a cartridge's
	// expansion-port IRQ line. Multiple sources share the line; each holds
	// it low independently via RequestIRQ/ReleaseIRQ.
	irqLine int

	// nmiPending is set by TriggerNMI (CIA2's FLAG/serial line, RESTORE
	// key, or a cartridge's expansion-port NMI line) and serviced, edge-
	// triggered, at the next instruction boundary.
	nmiPending bool
}

// NewCPU is the preferred method of initialisation. The CPU starts with
// every register zero; call Reset to bring it to its power-on state.
func NewCPU(ins *instance.Instance, mem bus.CPUBus) *CPU {
	return &CPU{
		ins:    ins,
		mem:    mem,
		PC:     registers.NewProgramCounter(0),
		A:      registers.NewRegister(0, "A"),
		X:      registers.NewRegister(0, "X"),
		Y:      registers.NewRegister(0, "Y"),
		SP:     registers.NewStackPointer(0),
		Status: registers.NewStatus(),
	}
}

// Plumb attaches a new memory bus, for use after a rewind/restore.
func (mc *CPU) Plumb(mem bus.CPUBus) { mc.mem = mem }

func (mc *CPU) String() string {
	return fmt.Sprintf("PC=%s A=%s X=%s Y=%s SP=%s SR=%s",
		mc.PC, mc.A, mc.X, mc.Y, mc.SP, mc.Status)
}

// Reset reinitialises all registers. It does not load the PC with the
// reset vector — call LoadPCIndirect(addresses.VectorReset) once the
// memory map is in a state to supply it.
func (mc *CPU) Reset() {
	mc.LastResult.Reset()
	mc.Interrupted = true
	mc.Killed = false
	mc.irqLine = 0
	mc.nmiPending = false

	if mc.ins != nil && mc.ins.Config.RAMInitPattern == config.C64PatternRandom {
		mc.PC.Load(uint16(mc.ins.Random.NoRewind(0x10000)))
		mc.A.Load(uint8(mc.ins.Random.NoRewind(0x100)))
		mc.X.Load(uint8(mc.ins.Random.NoRewind(0x100)))
		mc.Y.Load(uint8(mc.ins.Random.NoRewind(0x100)))
		mc.SP.Load(uint8(mc.ins.Random.NoRewind(0x100)))
	} else {
		mc.PC.Load(0)
		mc.A.Load(0)
		mc.X.Load(0)
		mc.Y.Load(0)
		mc.SP.Load(0xfd)
	}
	mc.Status.Load(0x24) // IRQ disabled, bit 5 always set

	mc.RdyFlg = true
	mc.cycleCallback = nil
}

// HasReset reports whether the CPU has not yet executed an instruction
// since Reset.
func (mc *CPU) HasReset() bool {
	return mc.LastResult.Address == 0 && mc.LastResult.Defn == nil
}

// RequestIRQ and ReleaseIRQ assert/deassert one source's hold on the
// shared, level-sensitive IRQ line. The line stays asserted as long as any
// source holds it.
func (mc *CPU) RequestIRQ() { mc.irqLine++ }
func (mc *CPU) ReleaseIRQ() {
	if mc.irqLine > 0 {
		mc.irqLine--
	}
}

// TriggerNMI latches a non-maskable interrupt request, serviced at the next
// instruction boundary regardless of the interrupt-disable flag.
func (mc *CPU) TriggerNMI() { mc.nmiPending = true }

// LoadPCIndirect loads the contents of indirectAddress into the PC — used
// to load the reset/IRQ/NMI vectors.
func (mc *CPU) LoadPCIndirect(indirectAddress uint16) error {
	mc.PhantomMemAccess = false
	if !mc.LastResult.Final && !mc.Interrupted {
		return fmt.Errorf("cpu: load PC indirect invalid mid-instruction")
	}
	lo, err := mc.mem.Read(indirectAddress)
	if err != nil {
		return err
	}
	hi, err := mc.mem.Read(indirectAddress + 1)
	if err != nil {
		return err
	}
	mc.PC.Load((uint16(hi) << 8) | uint16(lo))
	return nil
}

// LoadPC loads directAddress into the PC.
func (mc *CPU) LoadPC(directAddress uint16) error {
	if !mc.LastResult.Final && !mc.Interrupted {
		return fmt.Errorf("cpu: load PC invalid mid-instruction")
	}
	mc.PC.Load(directAddress)
	return nil
}

// read8Bit returns the 8-bit value at address, advancing one cycle.
func (mc *CPU) read8Bit(address uint16, phantom bool) (uint8, error) {
	mc.PhantomMemAccess = phantom
	val, err := mc.mem.Read(address)
	if err != nil {
		return 0, err
	}
	mc.LastResult.Cycles++
	if err := mc.cycleCallback(); err != nil {
		return 0, err
	}
	return val, nil
}

// read8BitZeroPage returns the 8-bit value at a zero-page address.
func (mc *CPU) read8BitZeroPage(address uint8) (uint8, error) {
	mc.PhantomMemAccess = false
	val, err := mc.mem.Read(uint16(address))
	if err != nil {
		return 0, err
	}
	mc.LastResult.Cycles++
	if err := mc.cycleCallback(); err != nil {
		return 0, err
	}
	return val, nil
}

// write8Bit writes value to address. The caller is responsible for
// advancing the cycle callback, since some instructions write more than
// once per cycle boundary (phantom writes in RMW instructions).
func (mc *CPU) write8Bit(address uint16, value uint8, phantom bool) error {
	mc.PhantomMemAccess = phantom
	return mc.mem.Write(address, value)
}

// read16Bit returns the 16-bit value at address, little-endian, advancing
// one cycle per byte.
func (mc *CPU) read16Bit(address uint16) (uint16, error) {
	mc.PhantomMemAccess = false
	lo, err := mc.mem.Read(address)
	if err != nil {
		return 0, err
	}
	mc.LastResult.Cycles++
	if err := mc.cycleCallback(); err != nil {
		return 0, err
	}
	hi, err := mc.mem.Read(address + 1)
	if err != nil {
		return 0, err
	}
	mc.LastResult.Cycles++
	if err := mc.cycleCallback(); err != nil {
		return 0, err
	}
	return (uint16(hi) << 8) | uint16(lo), nil
}

// read8BitPCeffect names the additional bookkeeping read8BitPC performs
// after reading the byte at the PC.
type read8BitPCeffect int

const (
	brkByte read8BitPCeffect = iota
	newOpcode
	loNibble
	hiNibble
)

// read8BitPC reads the byte at PC, advances PC, and applies effect.
func (mc *CPU) read8BitPC(effect read8BitPCeffect) error {
	v, err := mc.mem.Read(mc.PC.Address())
	if err != nil {
		return err
	}
	mc.PC.Add(1)
	mc.LastResult.ByteCount++

	switch effect {
	case brkByte:
		// BRK advances the PC by two bytes but the second is a padding
		// byte, not a counted instruction byte.
		mc.LastResult.ByteCount--
	case newOpcode:
		if int(v) >= len(instructions.Definitions) {
			return fmt.Errorf("cpu: opcode out of range (%#02x)", v)
		}
		mc.LastResult.Defn = &instructions.Definitions[v]
	case loNibble:
		mc.LastResult.InstructionData = uint16(v)
	case hiNibble:
		mc.LastResult.InstructionData = (uint16(v) << 8) | mc.LastResult.InstructionData
	}

	mc.LastResult.Cycles++
	return mc.cycleCallback()
}

// read16BitPC reads two bytes at PC into InstructionData, advancing PC and
// the cycle callback once per byte.
func (mc *CPU) read16BitPC() error {
	lo, err := mc.mem.Read(mc.PC.Address())
	if err != nil {
		return err
	}
	mc.PC.Add(1)
	mc.LastResult.ByteCount++
	mc.LastResult.InstructionData = uint16(lo)
	mc.LastResult.Cycles++
	if err := mc.cycleCallback(); err != nil {
		return err
	}

	hi, err := mc.mem.Read(mc.PC.Address())
	if err != nil {
		return err
	}
	mc.PC.Add(1)
	mc.LastResult.ByteCount++
	mc.LastResult.InstructionData = (uint16(hi) << 8) | mc.LastResult.InstructionData
	mc.LastResult.Cycles++
	return mc.cycleCallback()
}

// branch implements the timing of a conditional branch: one phantom read
// if taken, a second if the branch crosses a page.
func (mc *CPU) branch(flag bool, address uint16) error {
	if mc.NoFlowControl {
		return nil
	}
	if address&0x0080 == 0x0080 {
		address |= 0xff00
	}
	mc.LastResult.BranchSuccess = flag
	if !flag {
		return nil
	}

	oldPC := mc.PC.Address()
	if _, err := mc.read8Bit(mc.PC.Address(), true); err != nil {
		return err
	}

	mc.PC.Add(address)
	mc.LastResult.PageFault = oldPC&0xff00 != mc.PC.Address()&0xff00
	mc.PC.Load(oldPC&0xff00 | mc.PC.Address()&0x00ff)

	if mc.LastResult.PageFault {
		if _, err := mc.read8Bit(mc.PC.Address(), true); err != nil {
			return err
		}
		if address&0xff00 == 0xff00 {
			mc.PC.Add(0xff00)
		} else {
			mc.PC.Add(0x0100)
		}
	}
	return nil
}

// NilCycleCallback is a do-nothing cycle callback, for callers (tests,
// disassembly) that don't need the rest of the machine to advance.
func NilCycleCallback() error { return nil }

// serviceInterrupt runs the seven-cycle hardware interrupt sequence: two
// dummy reads of the next instruction byte, push PCH/PCL/status (with the
// Break flag clear, unlike software BRK), set the interrupt-disable flag,
// then load PC from vector.
func (mc *CPU) serviceInterrupt(vector uint16) error {
	if _, err := mc.read8Bit(mc.PC.Address(), true); err != nil {
		return err
	}
	if _, err := mc.read8Bit(mc.PC.Address(), true); err != nil {
		return err
	}
	if err := mc.pushPC(); err != nil {
		return err
	}
	mc.Status.Break = false
	pushed := mc.Status.Value()
	mc.Status.Break = true // B has no physical flip-flop; only the pushed copy carries it
	if err := mc.write8Bit(mc.SP.Address(), pushed, false); err != nil {
		return err
	}
	mc.SP.Add(0xff, false)
	mc.LastResult.Cycles++
	if err := mc.cycleCallback(); err != nil {
		return err
	}
	mc.Status.InterruptDisable = true

	addr, err := mc.read16Bit(vector)
	if err != nil {
		return err
	}
	mc.PC.Load(addr)
	mc.LastResult.Final = true
	return nil
}

func (mc *CPU) pushPC() error {
	if err := mc.write8Bit(mc.SP.Address(), uint8(mc.PC.Address()>>8), false); err != nil {
		return err
	}
	mc.SP.Add(0xff, false)
	mc.LastResult.Cycles++
	if err := mc.cycleCallback(); err != nil {
		return err
	}
	if err := mc.write8Bit(mc.SP.Address(), uint8(mc.PC.Address()), false); err != nil {
		return err
	}
	mc.SP.Add(0xff, false)
	mc.LastResult.Cycles++
	return mc.cycleCallback()
}

// sentinel error, mirroring a CPU reset occurring mid-instruction.
var errResetMidInstruction = fmt.Errorf("cpu: appears to have been reset mid-instruction")

// ExecuteInstruction steps the CPU forward one instruction:
//
//  1. service a pending interrupt, if any, in place of fetching an opcode
//  2. read the opcode and look up its definition
//  3. read operands, if any, per the addressing mode
//  4. perform the instruction
//
// cycleCallback is invoked once per bus cycle from inside the read/write
// helpers, so the rest of the machine advances in lockstep; it must never
// be nil (use NilCycleCallback).
func (mc *CPU) ExecuteInstruction(cycleCallback func() error) error {
	if mc.Killed {
		return nil
	}
	if !mc.LastResult.Final && !mc.Interrupted {
		return fmt.Errorf("cpu: starting a new instruction is invalid mid-instruction")
	}
	mc.Interrupted = false

	if !mc.RdyFlg {
		return cycleCallback()
	}

	mc.cycleCallback = cycleCallback
	mc.LastResult.Reset()
	mc.LastResult.Address = mc.PC.Address()

	if mc.nmiPending {
		mc.nmiPending = false
		return mc.serviceInterrupt(addresses.VectorNMI)
	}
	if mc.irqLine > 0 && !mc.Status.InterruptDisable {
		return mc.serviceInterrupt(addresses.VectorIRQ)
	}

	if err := mc.read8BitPC(newOpcode); err != nil {
		mc.LastResult.ByteCount = 1
		mc.LastResult.Final = true
		return err
	}

	var address uint16
	var value uint8
	var zeroPage bool

	defn := mc.LastResult.Defn
	if defn == nil {
		return errResetMidInstruction
	}

	if err := mc.decodeOperand(defn, &address, &value, &zeroPage); err != nil {
		return err
	}

	// plain Implied-mode instructions (flag sets/clears, register
	// transfers, INX/DEY and the like, and the undocumented Implied NOPs)
	// take one bus cycle beyond the opcode fetch: a dummy read of the next
	// instruction byte, discarded. Stack-touching Implied instructions
	// (PHA/PHP/PLA/PLP) and JAM perform their own cycle accounting instead.
	if defn.AddressingMode == instructions.Implied && defn.Effect == instructions.Read &&
		defn.Operator != instructions.JAM &&
		defn.Operator != instructions.PHA && defn.Operator != instructions.PHP &&
		defn.Operator != instructions.PLA && defn.Operator != instructions.PLP {
		if _, err := mc.read8Bit(mc.PC.Address(), true); err != nil {
			return err
		}
	}

	if defn.AddressingMode != instructions.Implied &&
		defn.AddressingMode != instructions.Immediate &&
		defn.AddressingMode != instructions.Accumulator {
		switch defn.Effect {
		case instructions.Read:
			v, err := mc.readOperand(zeroPage, address)
			if err != nil {
				return err
			}
			value = v
		case instructions.Modify:
			v, err := mc.readOperand(zeroPage, address)
			if err != nil {
				return err
			}
			value = v
			if err := mc.write8Bit(address, value, true); err != nil {
				return err
			}
			mc.LastResult.Cycles++
			if err := mc.cycleCallback(); err != nil {
				return err
			}
		}
	}

	if err := mc.execute(defn, address, &value); err != nil {
		return err
	}

	switch {
	case defn.Effect == instructions.Modify && defn.AddressingMode != instructions.Accumulator:
		if err := mc.write8Bit(address, value, false); err != nil {
			return err
		}
		mc.LastResult.Cycles++
		if err := mc.cycleCallback(); err != nil {
			return err
		}
	case defn.Effect == instructions.Write:
		if err := mc.write8Bit(address, value, false); err != nil {
			return err
		}
		mc.LastResult.Cycles++
		if err := mc.cycleCallback(); err != nil {
			return err
		}
	}

	if mc.LastResult.Defn != nil {
		mc.LastResult.Final = true
	}
	return nil
}

func (mc *CPU) readOperand(zeroPage bool, address uint16) (uint8, error) {
	if zeroPage {
		return mc.read8BitZeroPage(uint8(address))
	}
	return mc.read8Bit(address, false)
}

// Package debugger provides the side-effect-free inspection surface a
// front end (a REPL, a GUI) needs around a running Computer: breakpoints on
// the program counter, watches on memory locations, a trace of recently
// executed addresses, and a disassembler. Nothing in this package mutates
// CPU state except through the debugger Bus's Poke.
package debugger

import (
	"fmt"
	"strings"

	"github.com/sixtyfour/core64/hardware/cpu/instructions"
	"github.com/sixtyfour/core64/hardware/memory/bus"
)

// Instruction is one disassembled opcode: its address, raw bytes, the
// decoded definition and, where the addressing mode has one, the resolved
// operand text.
type Instruction struct {
	Address uint16
	Bytes   []uint8
	Defn    instructions.Definition
	Operand string
}

// String formats an Instruction the way a disassembly listing traditionally
// reads: address, raw bytes, mnemonic and operand.
func (in Instruction) String() string {
	raw := make([]string, len(in.Bytes))
	for i, b := range in.Bytes {
		raw[i] = fmt.Sprintf("%02x", b)
	}
	mnemonic := in.Defn.Operator.String()
	if in.Defn.Undocumented {
		mnemonic = "*" + mnemonic
	}
	if in.Operand == "" {
		return fmt.Sprintf("%04x  %-8s  %s", in.Address, strings.Join(raw, " "), mnemonic)
	}
	return fmt.Sprintf("%04x  %-8s  %s %s", in.Address, strings.Join(raw, " "), mnemonic, in.Operand)
}

// Disassemble decodes one instruction at address from b, a side-effect-free
// DebuggerBus. It returns the decoded Instruction and the address of the
// instruction immediately following it, so a caller can walk a range
// without tracking sizes itself.
func Disassemble(b bus.DebuggerBus, address uint16) (Instruction, uint16, error) {
	opcode, err := b.Peek(address)
	if err != nil {
		return Instruction{}, address, err
	}
	defn := instructions.Definitions[opcode]

	in := Instruction{Address: address, Defn: defn, Bytes: []uint8{opcode}}
	for i := 1; i < defn.Bytes; i++ {
		operandByte, err := b.Peek(address + uint16(i))
		if err != nil {
			return Instruction{}, address, err
		}
		in.Bytes = append(in.Bytes, operandByte)
	}

	in.Operand = formatOperand(defn, in.Bytes, address)
	return in, address + uint16(defn.Bytes), nil
}

// DisassembleRange decodes count consecutive instructions starting at
// address, following each one's own size rather than assuming a fixed
// stride.
func DisassembleRange(b bus.DebuggerBus, address uint16, count int) ([]Instruction, error) {
	out := make([]Instruction, 0, count)
	for i := 0; i < count; i++ {
		in, next, err := Disassemble(b, address)
		if err != nil {
			return out, err
		}
		out = append(out, in)
		address = next
	}
	return out, nil
}

func formatOperand(defn instructions.Definition, raw []uint8, address uint16) string {
	operand16 := func() uint16 {
		return uint16(raw[1]) | uint16(raw[2])<<8
	}

	switch defn.AddressingMode {
	case instructions.Implied:
		return ""
	case instructions.Accumulator:
		return "A"
	case instructions.Immediate:
		return fmt.Sprintf("#$%02x", raw[1])
	case instructions.ZeroPage:
		return fmt.Sprintf("$%02x", raw[1])
	case instructions.ZeroPageX:
		return fmt.Sprintf("$%02x,X", raw[1])
	case instructions.ZeroPageY:
		return fmt.Sprintf("$%02x,Y", raw[1])
	case instructions.Relative:
		// the offset is signed and measured from the address immediately
		// following the two-byte branch instruction.
		offset := int8(raw[1])
		target := uint16(int32(address) + 2 + int32(offset))
		return fmt.Sprintf("$%04x", target)
	case instructions.Absolute:
		return fmt.Sprintf("$%04x", operand16())
	case instructions.AbsoluteX:
		return fmt.Sprintf("$%04x,X", operand16())
	case instructions.AbsoluteY:
		return fmt.Sprintf("$%04x,Y", operand16())
	case instructions.Indirect:
		return fmt.Sprintf("($%04x)", operand16())
	case instructions.PreIndexed:
		return fmt.Sprintf("($%02x,X)", raw[1])
	case instructions.PostIndexed:
		return fmt.Sprintf("($%02x),Y", raw[1])
	}
	return ""
}

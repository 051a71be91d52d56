package vm

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Operand is a decoded operand of a disassembled instruction.
type Operand struct {
	Kind  OperandKind
	Value uint16
}

func (o Operand) String() string {
	if o.Kind == ImmediateOperand {
		return fmt.Sprintf("#%d", o.Value)
	}
	// Padding is written like a register so the text reassembles to the
	// same bytes.
	return fmt.Sprintf("$%d", o.Value)
}

// Instruction is one entry of a disassembled program.
type Instruction struct {
	PC       uint64
	Op       OpCode
	Operands []Operand
	Raw      []byte
}

func (ins Instruction) String() string {
	var b strings.Builder
	if ins.Op.IsLegal() {
		b.WriteString(ins.Op.String())
	} else {
		fmt.Fprintf(&b, "igl(0x%02x)", byte(ins.Op))
	}
	for _, o := range ins.Operands {
		b.WriteByte(' ')
		b.WriteString(o.String())
	}
	return b.String()
}

// Disassemble splits program into instructions by replaying the static
// operand layout from offset 0. Illegal bytes become single-byte entries.
// JMPE is always listed with its register operand even though the reference
// instruction set skips it at runtime when the equal flag is false.
func Disassemble(program []byte) ([]Instruction, error) {
	var (
		out []Instruction
		pc  uint64
	)
	for pc < uint64(len(program)) {
		ins := Instruction{PC: pc, Op: OpCode(program[pc])}
		cursor := pc + 1
		for _, kind := range ins.Op.Operands() {
			end := cursor + uint64(kind.Size())
			if end > uint64(len(program)) {
				return out, errors.Wrapf(ErrTruncatedInstruction, "%s at %d", ins.Op, pc)
			}
			var value uint16
			if kind == ImmediateOperand {
				value = binary.BigEndian.Uint16(program[cursor:end])
			} else {
				value = uint16(program[cursor])
			}
			ins.Operands = append(ins.Operands, Operand{Kind: kind, Value: value})
			cursor = end
		}
		ins.Raw = program[pc:cursor]
		out = append(out, ins)
		pc = cursor
	}
	return out, nil
}

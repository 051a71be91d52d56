package asm

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// MaxOperands is the largest number of operands an instruction can carry.
const MaxOperands = 3

// Instruction is a parsed line of assembly.
type Instruction struct {
	Opcode   Token
	Operands []Token
}

// Bytes encodes the instruction: the opcode byte, then one byte per
// register and two big-endian bytes per integer, in source order. Nothing
// is returned on error.
func (ins *Instruction) Bytes() ([]byte, error) {
	if ins.Opcode.Kind != OpToken {
		return nil, errors.Wrapf(ErrOpcodeKind, "found %s", ins.Opcode)
	}
	if len(ins.Operands) > MaxOperands {
		return nil, errors.Wrapf(ErrTooManyOperands, "%s has %d", ins.Opcode, len(ins.Operands))
	}
	out := make([]byte, 1, 1+2*len(ins.Operands))
	out[0] = ins.Opcode.Op.Byte()
	for i, operand := range ins.Operands {
		switch operand.Kind {
		case RegisterToken:
			if operand.Value < 0 || operand.Value > math.MaxUint8 {
				return nil, errors.Wrapf(ErrOperandRange, "operand %d: %s", i+1, operand)
			}
			out = append(out, byte(operand.Value))
		case IntegerToken:
			if operand.Value < 0 || operand.Value > math.MaxUint16 {
				return nil, errors.Wrapf(ErrOperandRange, "operand %d: %s", i+1, operand)
			}
			var buf [2]byte
			binary.BigEndian.PutUint16(buf[:], uint16(operand.Value))
			out = append(out, buf[:]...)
		default:
			return nil, errors.Wrapf(ErrOperandKind, "operand %d: %s", i+1, operand)
		}
	}
	return out, nil
}

func (ins *Instruction) String() string {
	parts := []string{ins.Opcode.String()}
	for _, operand := range ins.Operands {
		parts = append(parts, operand.String())
	}
	return strings.Join(parts, " ")
}

// Program is a sequence of parsed instructions.
type Program struct {
	Instructions []*Instruction
}

// Bytes concatenates the encoding of every instruction.
func (p *Program) Bytes() ([]byte, error) {
	var out []byte
	for i, ins := range p.Instructions {
		b, err := ins.Bytes()
		if err != nil {
			return nil, errors.Wrapf(err, "instruction %d", i+1)
		}
		out = append(out, b...)
	}
	return out, nil
}

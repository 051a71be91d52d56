package asm

import "github.com/pkg/errors"

var (
	ErrEmptyInstruction = errors.New("empty instruction")
	ErrUnknownMnemonic  = errors.New("unknown mnemonic")
	ErrInvalidOperand   = errors.New("invalid operand")
	ErrTooManyOperands  = errors.New("too many operands")
	ErrOpcodeKind       = errors.New("non-opcode token in opcode field")
	ErrOperandKind      = errors.New("opcode token in operand field")
	ErrOperandRange     = errors.New("operand out of range")
	ErrInvalidHex       = errors.New("invalid hex byte")
)

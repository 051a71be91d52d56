package asm

import (
	"testing"

	"github.com/Aurorachain/go-iridium/core/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstructionBytes(t *testing.T) {
	tests := []struct {
		ins  Instruction
		want []byte
	}{
		{Instruction{Opcode: Op(vm.HLT)}, []byte{5}},
		{Instruction{Opcode: Op(vm.LOAD), Operands: []Token{Register(0), Integer(500)}}, []byte{0, 0, 0x01, 0xf4}},
		{Instruction{Opcode: Op(vm.ADD), Operands: []Token{Register(1), Register(2), Register(3)}}, []byte{1, 1, 2, 3}},
		{Instruction{Opcode: Op(vm.JMP), Operands: []Token{Register(7)}}, []byte{6, 7}},
		{Instruction{Opcode: Op(vm.LOAD), Operands: []Token{Register(31), Integer(65535)}}, []byte{0, 31, 0xff, 0xff}},
		{Instruction{Opcode: Op(vm.NOP), Operands: []Token{Integer(0x0102), Register(3)}}, []byte{16, 1, 2, 3}},
	}
	for _, tt := range tests {
		b, err := tt.ins.Bytes()
		require.NoError(t, err, tt.ins.String())
		assert.Equal(t, tt.want, b, tt.ins.String())
	}
}

func TestInstructionBytesErrors(t *testing.T) {
	tests := []struct {
		ins Instruction
		err error
	}{
		{Instruction{Opcode: Register(1)}, ErrOpcodeKind},
		{Instruction{Opcode: Op(vm.ADD), Operands: []Token{Register(1), Op(vm.HLT)}}, ErrOperandKind},
		{Instruction{Opcode: Op(vm.ADD), Operands: []Token{Register(1), Register(2), Register(3), Register(4)}}, ErrTooManyOperands},
		{Instruction{Opcode: Op(vm.LOAD), Operands: []Token{Register(256)}}, ErrOperandRange},
		{Instruction{Opcode: Op(vm.LOAD), Operands: []Token{Register(0), Integer(70000)}}, ErrOperandRange},
		{Instruction{Opcode: Op(vm.LOAD), Operands: []Token{Register(0), Integer(-1)}}, ErrOperandRange},
	}
	for _, tt := range tests {
		b, err := tt.ins.Bytes()
		assert.Nil(t, b)
		assert.Equal(t, tt.err, errors.Cause(err), tt.ins.String())
	}
}

func TestProgramBytes(t *testing.T) {
	b, err := Assemble("load $0 #100\nhlt\n")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 100, 5}, b)

	program := &Program{Instructions: []*Instruction{{Opcode: Op(vm.HLT)}, {Opcode: Integer(1)}}}
	_, err = program.Bytes()
	assert.Equal(t, ErrOpcodeKind, errors.Cause(err))
	assert.Contains(t, err.Error(), "instruction 2")
}

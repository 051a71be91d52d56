// Copyright 2018 The go-iridium Authors
// This file is part of the go-iridium library.
//
// The go-iridium library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-iridium library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-iridium library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"fmt"
)

// OpCode is an Iridium opcode.
type OpCode byte

const (
	LOAD OpCode = iota
	ADD
	SUB
	MUL
	DIV
	HLT
	JMP
	JMPB
	JMPF
	EQ
	NEQ
	GTE
	LTE
	LT
	GT
	JMPE
	NOP
	ALOC

	// IGL marks an illegal opcode. Its encoding lies outside the defined
	// range and never decodes to a real operation.
	IGL OpCode = 100
)

// OperandKind describes one operand slot of an instruction.
type OperandKind byte

const (
	RegisterOperand  OperandKind = iota // 1 byte, register index
	ImmediateOperand                    // 2 bytes, big-endian uint16
	PaddingOperand                      // 1 byte, read and discarded
)

// Size returns the number of bytes the operand occupies in the stream.
func (k OperandKind) Size() int {
	if k == ImmediateOperand {
		return 2
	}
	return 1
}

func (k OperandKind) String() string {
	switch k {
	case RegisterOperand:
		return "reg"
	case ImmediateOperand:
		return "imm16"
	case PaddingOperand:
		return "pad"
	}
	return fmt.Sprintf("OperandKind(%d)", byte(k))
}

var opCodeToString = map[OpCode]string{
	LOAD: "load",
	ADD:  "add",
	SUB:  "sub",
	MUL:  "mul",
	DIV:  "div",
	HLT:  "hlt",
	JMP:  "jmp",
	JMPB: "jmpb",
	JMPF: "jmpf",
	EQ:   "eq",
	NEQ:  "neq",
	GTE:  "gte",
	LTE:  "lte",
	LT:   "lt",
	GT:   "gt",
	JMPE: "jmpe",
	NOP:  "nop",
	ALOC: "aloc",
	IGL:  "igl",
}

var (
	threeRegisters = []OperandKind{RegisterOperand, RegisterOperand, RegisterOperand}
	oneRegister    = []OperandKind{RegisterOperand}
	comparison     = []OperandKind{RegisterOperand, RegisterOperand, PaddingOperand}
	padding        = []OperandKind{PaddingOperand, PaddingOperand, PaddingOperand}
)

// opCodeOperands is the static operand layout of every defined opcode.
var opCodeOperands = map[OpCode][]OperandKind{
	LOAD: {RegisterOperand, ImmediateOperand},
	ADD:  threeRegisters,
	SUB:  threeRegisters,
	MUL:  threeRegisters,
	DIV:  threeRegisters,
	HLT:  nil,
	JMP:  oneRegister,
	JMPB: oneRegister,
	JMPF: oneRegister,
	EQ:   comparison,
	NEQ:  comparison,
	GTE:  comparison,
	LTE:  comparison,
	LT:   comparison,
	GT:   comparison,
	JMPE: oneRegister,
	NOP:  padding,
	ALOC: oneRegister,
}

func (op OpCode) String() string {
	str := opCodeToString[op]
	if len(str) == 0 {
		return fmt.Sprintf("Missing opcode 0x%x", int(op))
	}
	return str
}

// Byte returns the encoding of op in a program.
func (op OpCode) Byte() byte {
	return byte(op)
}

// IsLegal reports whether op names a defined operation.
func (op OpCode) IsLegal() bool {
	return op <= ALOC
}

// Operands returns the static operand layout of op. Illegal opcodes have no
// operands.
func (op OpCode) Operands() []OperandKind {
	return opCodeOperands[op]
}

// Width returns the encoded size of a full instruction starting with op.
func (op OpCode) Width() int {
	n := 1
	for _, k := range op.Operands() {
		n += k.Size()
	}
	return n
}

// OpCodeFromByte decodes b. Every byte outside the defined range maps to IGL.
func OpCodeFromByte(b byte) OpCode {
	if op := OpCode(b); op.IsLegal() {
		return op
	}
	return IGL
}

var stringToOp = map[string]OpCode{
	"load": LOAD,
	"add":  ADD,
	"sub":  SUB,
	"mul":  MUL,
	"div":  DIV,
	"hlt":  HLT,
	"jmp":  JMP,
	"jmpb": JMPB,
	"jmpf": JMPF,
	"eq":   EQ,
	"neq":  NEQ,
	"gte":  GTE,
	"lte":  LTE,
	"lt":   LT,
	"gt":   GT,
	"jmpe": JMPE,
	"nop":  NOP,
	"aloc": ALOC,
}

// StringToOp looks up a mnemonic. Matching is case-sensitive and unknown
// mnemonics map to IGL.
func StringToOp(str string) OpCode {
	if op, ok := stringToOp[str]; ok {
		return op
	}
	return IGL
}

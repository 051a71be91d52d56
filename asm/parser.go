package asm

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/Aurorachain/go-iridium/core/vm"
	"github.com/pkg/errors"
)

const commentChar = ';'

func stripComment(line string) string {
	if i := strings.IndexByte(line, commentChar); i >= 0 {
		return line[:i]
	}
	return line
}

// ParseInstruction parses a single line of assembly.
func ParseInstruction(line string) (*Instruction, error) {
	fields := strings.Fields(stripComment(line))
	if len(fields) == 0 {
		return nil, ErrEmptyInstruction
	}
	op := vm.StringToOp(fields[0])
	if op == vm.IGL {
		return nil, errors.Wrapf(ErrUnknownMnemonic, "%q", fields[0])
	}
	if len(fields)-1 > MaxOperands {
		return nil, errors.Wrapf(ErrTooManyOperands, "%s takes at most %d", op, MaxOperands)
	}
	ins := &Instruction{Opcode: Op(op)}
	for _, field := range fields[1:] {
		operand, err := parseOperand(field)
		if err != nil {
			return nil, err
		}
		ins.Operands = append(ins.Operands, operand)
	}
	return ins, nil
}

func parseOperand(field string) (Token, error) {
	if len(field) < 2 {
		return Token{}, errors.Wrapf(ErrInvalidOperand, "%q", field)
	}
	switch field[0] {
	case '$':
		n, err := strconv.ParseUint(field[1:], 10, 8)
		if err != nil {
			return Token{}, errors.Wrapf(ErrInvalidOperand, "register %q", field)
		}
		return Register(int(n)), nil
	case '#':
		n, err := strconv.ParseUint(field[1:], 10, 16)
		if err != nil {
			return Token{}, errors.Wrapf(ErrInvalidOperand, "integer %q", field)
		}
		return Integer(int(n)), nil
	}
	return Token{}, errors.Wrapf(ErrInvalidOperand, "%q", field)
}

// ParseProgram parses one instruction per line. Blank and comment-only
// lines are skipped.
func ParseProgram(src string) (*Program, error) {
	var (
		program = new(Program)
		scanner = bufio.NewScanner(strings.NewReader(src))
		lineno  = 0
	)
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if strings.TrimSpace(stripComment(line)) == "" {
			continue
		}
		ins, err := ParseInstruction(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineno)
		}
		program.Instructions = append(program.Instructions, ins)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return program, nil
}

// Assemble parses src and encodes it.
func Assemble(src string) ([]byte, error) {
	program, err := ParseProgram(src)
	if err != nil {
		return nil, err
	}
	return program.Bytes()
}

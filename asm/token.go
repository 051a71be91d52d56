package asm

import (
	"fmt"

	"github.com/Aurorachain/go-iridium/core/vm"
)

type TokenKind int

const (
	OpToken TokenKind = iota
	RegisterToken
	IntegerToken
)

func (k TokenKind) String() string {
	switch k {
	case OpToken:
		return "opcode"
	case RegisterToken:
		return "register"
	case IntegerToken:
		return "integer"
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a lexed element of an instruction. Op is only meaningful for
// OpToken, Value for the operand kinds.
type Token struct {
	Kind  TokenKind
	Op    vm.OpCode
	Value int
}

func Op(op vm.OpCode) Token { return Token{Kind: OpToken, Op: op} }
func Register(n int) Token  { return Token{Kind: RegisterToken, Value: n} }
func Integer(n int) Token   { return Token{Kind: IntegerToken, Value: n} }

func (t Token) String() string {
	switch t.Kind {
	case OpToken:
		return t.Op.String()
	case RegisterToken:
		return fmt.Sprintf("$%d", t.Value)
	case IntegerToken:
		return fmt.Sprintf("#%d", t.Value)
	}
	return t.Kind.String()
}

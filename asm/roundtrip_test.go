package asm

import (
	"strings"
	"testing"

	"github.com/Aurorachain/go-iridium/core/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRoundTrip(t *testing.T) {
	for _, reg := range []int{0, 1, 15, 31} {
		for _, value := range []int{0, 1, 100, 500, 32767, 32768, 65535} {
			ins := &Instruction{Opcode: Op(vm.LOAD), Operands: []Token{Register(reg), Integer(value)}}
			code, err := Assemble(ins.String())
			require.NoError(t, err)

			machine := vm.New(vm.Config{})
			machine.AddBytes(code)
			status, err := machine.RunOnce()
			require.NoError(t, err)
			assert.Equal(t, vm.Continue, status)
			assert.Equal(t, int32(value), machine.Registers()[reg])
			assert.Equal(t, uint64(4), machine.PC())
		}
	}
}

func TestProgramRoundTrip(t *testing.T) {
	src := `
load $0 #17
load $1 #5
div $0 $1 $2
neq $2 $1 $0   ; trailing register is the pad byte
hlt
`
	code, err := Assemble(src)
	require.NoError(t, err)

	machine := vm.New(vm.Config{})
	machine.AddBytes(code)
	status, err := machine.Run()
	require.NoError(t, err)
	assert.Equal(t, vm.Halted, status)
	assert.Equal(t, int32(3), machine.Registers()[2])
	assert.Equal(t, uint32(2), machine.Remainder())
	assert.True(t, machine.EqualFlag())
}

func TestDisassembleReassembles(t *testing.T) {
	src := "load $4 #1234\nsub $4 $1 $9\nlt $1 $2 $0\naloc $4\nnop $0 $0 $0\nhlt"
	code, err := Assemble(src)
	require.NoError(t, err)

	instructions, err := vm.Disassemble(code)
	require.NoError(t, err)
	var lines []string
	for _, ins := range instructions {
		lines = append(lines, ins.String())
	}
	assert.Equal(t, src, strings.Join(lines, "\n"))

	again, err := Assemble(strings.Join(lines, "\n"))
	require.NoError(t, err)
	assert.Equal(t, code, again)
}

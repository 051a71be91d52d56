package runtime

import (
	"testing"

	"github.com/Aurorachain/go-iridium/core/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	code := []byte{
		byte(vm.LOAD), 0, 0x01, 0xf4, // load $0 #500
		byte(vm.LOAD), 1, 0x00, 0x0a, // load $1 #10
		byte(vm.MUL), 0, 1, 2, // mul $0 $1 $2
		byte(vm.HLT),
	}
	machine, status, err := Execute(code, nil)
	require.NoError(t, err)
	assert.Equal(t, vm.Halted, status)
	assert.Equal(t, int32(5000), machine.Registers()[2])
}

func TestExecuteRegisters(t *testing.T) {
	code := []byte{byte(vm.ADD), 0, 1, 2}
	machine, status, err := Execute(code, &Config{Registers: map[int]int32{0: 7, 1: -3}})
	require.NoError(t, err)
	assert.Equal(t, vm.Exhausted, status)
	assert.Equal(t, int32(4), machine.Registers()[2])

	_, _, err = Execute(code, &Config{Registers: map[int]int32{40: 1}})
	assert.Equal(t, vm.ErrInvalidRegister, err)
}

func TestExecuteFault(t *testing.T) {
	_, status, err := Execute([]byte{byte(vm.DIV), 0, 1, 2}, nil)
	assert.Equal(t, vm.Faulted, status)
	assert.Equal(t, vm.ErrDivisionByZero, errors.Cause(err))
}

func TestExecuteDebug(t *testing.T) {
	tracer := vm.NewStructLogger(nil)
	cfg := &Config{Debug: true, VMConfig: vm.Config{Tracer: tracer}}
	_, _, err := Execute([]byte{byte(vm.NOP), 0, 0, 0, byte(vm.HLT)}, cfg)
	require.NoError(t, err)
	require.Len(t, tracer.StructLogs(), 2)
	assert.Equal(t, vm.HLT, tracer.StructLogs()[1].Op)
}

func TestFuzz(t *testing.T) {
	assert.Equal(t, 0, Fuzz([]byte{200}))
	assert.Equal(t, 1, Fuzz([]byte{byte(vm.HLT)}))
	// jmp $0 with $0 == 0 loops until the step bound
	assert.Equal(t, 1, Fuzz([]byte{byte(vm.JMP), 0}))
}

package runtime

import (
	"github.com/Aurorachain/go-iridium/core/vm"
	"github.com/pkg/errors"
)

// maxFuzzSteps bounds fuzzed programs, which easily loop forever.
const maxFuzzSteps = 1 << 16

// Fuzz is the go-fuzz entry point. Programs that fault on an illegal
// opcode are uninteresting.
func Fuzz(input []byte) int {
	machine := vm.New(vm.Config{MaxHeap: 1 << 20})
	machine.AddBytes(input)
	for i := 0; i < maxFuzzSteps; i++ {
		status, err := machine.Step()
		if errors.Cause(err) == vm.ErrInvalidOpcode {
			return 0
		}
		if status != vm.Continue {
			break
		}
	}
	return 1
}

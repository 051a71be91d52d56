package vm

type executionFunc func(vm *VM) error

type operation struct {
	execute executionFunc

	halts bool // indicates whether the operation should halt further execution
	valid bool // indication whether the retrieved operation is valid and known
}

// JumpTable maps every possible opcode byte to its operation. Entries that
// are not valid decode as illegal opcodes.
type JumpTable [256]operation

var (
	referenceInstructionSet = newReferenceInstructionSet()
	fixedInstructionSet     = newFixedInstructionSet()
)

// newFixedInstructionSet returns the reference set with the two jump
// defects repaired: JMPB jumps backwards and JMPE always consumes its
// register operand.
func newFixedInstructionSet() JumpTable {
	instructionSet := newReferenceInstructionSet()
	instructionSet[JMPB] = operation{
		execute: opJmpbFixed,
		valid:   true,
	}
	instructionSet[JMPE] = operation{
		execute: opJmpeFixed,
		valid:   true,
	}
	return instructionSet
}

// newReferenceInstructionSet returns the instructions as the original
// Iridium machine executes them, including its JMPB and JMPE behavior.
func newReferenceInstructionSet() JumpTable {
	return JumpTable{
		LOAD: {
			execute: opLoad,
			valid:   true,
		},
		ADD: {
			execute: makeArithmetic(func(x, y int32) int32 { return x + y }),
			valid:   true,
		},
		SUB: {
			execute: makeArithmetic(func(x, y int32) int32 { return x - y }),
			valid:   true,
		},
		MUL: {
			execute: makeArithmetic(func(x, y int32) int32 { return x * y }),
			valid:   true,
		},
		DIV: {
			execute: opDiv,
			valid:   true,
		},
		HLT: {
			execute: opHlt,
			halts:   true,
			valid:   true,
		},
		JMP: {
			execute: opJmp,
			valid:   true,
		},
		JMPB: {
			execute: opJmpf,
			valid:   true,
		},
		JMPF: {
			execute: opJmpf,
			valid:   true,
		},
		EQ: {
			execute: makeComparison(func(x, y int32) bool { return x == y }),
			valid:   true,
		},
		NEQ: {
			execute: makeComparison(func(x, y int32) bool { return x != y }),
			valid:   true,
		},
		GTE: {
			execute: makeComparison(func(x, y int32) bool { return x >= y }),
			valid:   true,
		},
		LTE: {
			execute: makeComparison(func(x, y int32) bool { return x <= y }),
			valid:   true,
		},
		LT: {
			execute: makeComparison(func(x, y int32) bool { return x < y }),
			valid:   true,
		},
		GT: {
			execute: makeComparison(func(x, y int32) bool { return x > y }),
			valid:   true,
		},
		JMPE: {
			execute: opJmpe,
			valid:   true,
		},
		NOP: {
			execute: opNop,
			valid:   true,
		},
		ALOC: {
			execute: opAloc,
			valid:   true,
		},
	}
}

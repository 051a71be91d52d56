package vm

func opLoad(vm *VM) error {
	reg, err := vm.nextRegister()
	if err != nil {
		return err
	}
	value, err := vm.next16()
	if err != nil {
		return err
	}
	vm.registers[reg] = int32(value)
	return nil
}

// makeArithmetic builds the reg,reg,reg operations. Results wrap on
// overflow.
func makeArithmetic(fn func(x, y int32) int32) executionFunc {
	return func(vm *VM) error {
		x, y, dst, err := vm.nextThreeRegisters()
		if err != nil {
			return err
		}
		vm.registers[dst] = fn(vm.registers[x], vm.registers[y])
		return nil
	}
}

func opDiv(vm *VM) error {
	x, y, dst, err := vm.nextThreeRegisters()
	if err != nil {
		return err
	}
	dividend, divisor := vm.registers[x], vm.registers[y]
	if divisor == 0 {
		return ErrDivisionByZero
	}
	vm.registers[dst] = dividend / divisor
	vm.remainder = uint32(dividend % divisor)
	return nil
}

func opHlt(vm *VM) error {
	return nil
}

func opJmp(vm *VM) error {
	reg, err := vm.nextRegister()
	if err != nil {
		return err
	}
	return vm.jump(int64(vm.registers[reg]))
}

// opJmpf is used for both JMPF and, in the reference set, JMPB.
func opJmpf(vm *VM) error {
	reg, err := vm.nextRegister()
	if err != nil {
		return err
	}
	return vm.jump(int64(vm.pc) + int64(vm.registers[reg]))
}

func opJmpbFixed(vm *VM) error {
	reg, err := vm.nextRegister()
	if err != nil {
		return err
	}
	return vm.jump(int64(vm.pc) - int64(vm.registers[reg]))
}

// opJmpe leaves the operand byte unread when the flag is false, so the
// following decode starts on it.
func opJmpe(vm *VM) error {
	if !vm.equalFlag {
		return nil
	}
	reg, err := vm.nextRegister()
	if err != nil {
		return err
	}
	return vm.jump(int64(vm.registers[reg]))
}

func opJmpeFixed(vm *VM) error {
	reg, err := vm.nextRegister()
	if err != nil {
		return err
	}
	if !vm.equalFlag {
		return nil
	}
	return vm.jump(int64(vm.registers[reg]))
}

// makeComparison builds the reg,reg,pad operations that set the equal flag.
func makeComparison(fn func(x, y int32) bool) executionFunc {
	return func(vm *VM) error {
		x, err := vm.nextRegister()
		if err != nil {
			return err
		}
		y, err := vm.nextRegister()
		if err != nil {
			return err
		}
		if _, err := vm.next8(); err != nil {
			return err
		}
		vm.equalFlag = fn(vm.registers[x], vm.registers[y])
		return nil
	}
}

func opNop(vm *VM) error {
	for i := 0; i < 3; i++ {
		if _, err := vm.next8(); err != nil {
			return err
		}
	}
	return nil
}

func opAloc(vm *VM) error {
	reg, err := vm.nextRegister()
	if err != nil {
		return err
	}
	size := vm.registers[reg]
	if err := vm.heap.Grow(int(size)); err != nil {
		return err
	}
	heapAllocMeter.Mark(int64(size))
	return nil
}

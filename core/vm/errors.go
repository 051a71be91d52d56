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

	"github.com/pkg/errors"
)

var (
	ErrInvalidOpcode        = errors.New("invalid opcode")
	ErrDivisionByZero       = errors.New("division by zero")
	ErrInvalidRegister      = errors.New("register index out of range")
	ErrNegativeAllocation   = errors.New("negative heap allocation")
	ErrHeapLimit            = errors.New("heap limit exceeded")
	ErrTruncatedInstruction = errors.New("unexpected end of program")
	ErrJumpOutOfRange       = errors.New("jump target out of range")
)

// ExecError is returned for every fault that stops execution. Err is one of
// the package's sentinel errors.
type ExecError struct {
	Op  OpCode
	PC  uint64 // offset of the faulting opcode byte
	Err error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%v at pc %d (%s)", e.Err, e.PC, e.Op)
}

// Cause lets errors.Cause reach the sentinel.
func (e *ExecError) Cause() error { return e.Err }

func (e *ExecError) Unwrap() error { return e.Err }

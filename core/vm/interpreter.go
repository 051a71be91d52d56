package vm

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/Aurorachain/go-iridium/log"
	"github.com/Aurorachain/go-iridium/metrics"
)

// NumRegisters is the size of the register file.
const NumRegisters = 32

var (
	instructionMeter = metrics.NewMeter("vm/instructions")
	heapAllocMeter   = metrics.NewMeter("vm/heap/alloc")
	haltCounter      = metrics.NewCounter("vm/halts")
	faultCounter     = metrics.NewCounter("vm/faults")
	runTimer         = metrics.NewTimer("vm/run")
)

// Config are the configuration options for the VM.
type Config struct {
	// Debug enables the Tracer. A nil Tracer is replaced by a LogTracer.
	Debug bool

	Tracer Tracer

	// FixedJumps selects the instruction set with backward JMPB and an
	// always-consumed JMPE operand.
	FixedJumps bool

	// MaxHeap caps the heap size in bytes, 0 means no cap.
	MaxHeap int

	JumpTable JumpTable
}

// Status is the outcome of a single step or a run.
type Status int

const (
	Continue  Status = iota // the next instruction may be executed
	Halted                  // HLT was executed
	Exhausted               // pc reached the end of the program
	Faulted                 // execution stopped on an error
)

func (s Status) String() string {
	switch s {
	case Continue:
		return "continue"
	case Halted:
		return "halted"
	case Exhausted:
		return "exhausted"
	case Faulted:
		return "faulted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// VM is the complete machine state. A VM is owned by a single goroutine.
type VM struct {
	cfg Config

	registers [NumRegisters]int32
	pc        uint64
	program   []byte
	heap      *Heap
	remainder uint32
	equalFlag bool
}

// New returns a zeroed machine with an empty program.
func New(cfg Config) *VM {
	if !cfg.JumpTable[HLT].valid {
		if cfg.FixedJumps {
			cfg.JumpTable = fixedInstructionSet
		} else {
			cfg.JumpTable = referenceInstructionSet
		}
	}
	if cfg.Debug && cfg.Tracer == nil {
		cfg.Tracer = NewLogTracer(log.Root())
	}
	return &VM{
		cfg:  cfg,
		heap: NewHeap(cfg.MaxHeap),
	}
}

// AddByte appends a single byte to the program.
func (vm *VM) AddByte(b byte) {
	vm.program = append(vm.program, b)
}

// AddBytes appends bytes to the program without executing them.
func (vm *VM) AddBytes(b []byte) {
	vm.program = append(vm.program, b...)
}

// Reset clears all state including the program.
func (vm *VM) Reset() {
	vm.registers = [NumRegisters]int32{}
	vm.pc = 0
	vm.program = nil
	vm.heap = NewHeap(vm.cfg.MaxHeap)
	vm.remainder = 0
	vm.equalFlag = false
}

func (vm *VM) Registers() [NumRegisters]int32 { return vm.registers }
func (vm *VM) PC() uint64                     { return vm.pc }
func (vm *VM) Program() []byte                { return vm.program }
func (vm *VM) Heap() *Heap                    { return vm.heap }
func (vm *VM) Remainder() uint32              { return vm.remainder }
func (vm *VM) EqualFlag() bool                { return vm.equalFlag }

// Register returns the value of register i.
func (vm *VM) Register(i int) (int32, error) {
	if i < 0 || i >= NumRegisters {
		return 0, ErrInvalidRegister
	}
	return vm.registers[i], nil
}

// SetRegister stores v in register i.
func (vm *VM) SetRegister(i int, v int32) error {
	if i < 0 || i >= NumRegisters {
		return ErrInvalidRegister
	}
	vm.registers[i] = v
	return nil
}

// Run steps until the program halts, is exhausted or faults.
func (vm *VM) Run() (Status, error) {
	defer runTimer.UpdateSince(time.Now())
	for {
		status, err := vm.Step()
		if err != nil || status != Continue {
			return status, err
		}
	}
}

// RunOnce executes exactly one instruction.
func (vm *VM) RunOnce() (Status, error) {
	return vm.Step()
}

// Step decodes the opcode at pc and executes it. A pc at or past the end of
// the program yields Exhausted and leaves the state untouched.
func (vm *VM) Step() (Status, error) {
	if vm.pc >= uint64(len(vm.program)) {
		return Exhausted, nil
	}
	var (
		pc = vm.pc
		op = OpCode(vm.program[pc])
	)
	vm.pc++

	operation := vm.cfg.JumpTable[op]
	if !operation.valid {
		return vm.fault(pc, op, ErrInvalidOpcode)
	}
	if vm.cfg.Debug {
		vm.cfg.Tracer.CaptureState(vm, pc, op)
	}
	if err := operation.execute(vm); err != nil {
		return vm.fault(pc, op, err)
	}
	instructionMeter.Mark(1)

	if operation.halts {
		haltCounter.Inc(1)
		log.Debug("HLT encountered", "pc", pc)
		return Halted, nil
	}
	return Continue, nil
}

func (vm *VM) fault(pc uint64, op OpCode, err error) (Status, error) {
	faultCounter.Inc(1)
	if vm.cfg.Debug {
		vm.cfg.Tracer.CaptureFault(vm, pc, op, err)
	}
	log.Debug("Execution fault", "op", op.String(), "pc", pc, "err", err)
	return Faulted, &ExecError{Op: op, PC: pc, Err: err}
}

func (vm *VM) next8() (byte, error) {
	if vm.pc >= uint64(len(vm.program)) {
		return 0, ErrTruncatedInstruction
	}
	b := vm.program[vm.pc]
	vm.pc++
	return b, nil
}

// next16 reads a big-endian immediate.
func (vm *VM) next16() (uint16, error) {
	if vm.pc+2 > uint64(len(vm.program)) {
		return 0, ErrTruncatedInstruction
	}
	v := binary.BigEndian.Uint16(vm.program[vm.pc:])
	vm.pc += 2
	return v, nil
}

func (vm *VM) nextRegister() (int, error) {
	b, err := vm.next8()
	if err != nil {
		return 0, err
	}
	if int(b) >= NumRegisters {
		return 0, ErrInvalidRegister
	}
	return int(b), nil
}

// nextThreeRegisters reads the operands of an arithmetic instruction.
func (vm *VM) nextThreeRegisters() (x, y, dst int, err error) {
	if x, err = vm.nextRegister(); err != nil {
		return
	}
	if y, err = vm.nextRegister(); err != nil {
		return
	}
	dst, err = vm.nextRegister()
	return
}

func (vm *VM) jump(target int64) error {
	if target < 0 {
		return ErrJumpOutOfRange
	}
	vm.pc = uint64(target)
	return nil
}

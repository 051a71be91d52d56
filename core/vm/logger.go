package vm

import (
	"fmt"
	"io"

	"github.com/Aurorachain/go-iridium/log"
)

// Tracer is used to collect execution traces from the VM. CaptureState is
// called before every valid instruction executes; CaptureFault when an
// instruction stops execution with an error.
type Tracer interface {
	CaptureState(vm *VM, pc uint64, op OpCode) error
	CaptureFault(vm *VM, pc uint64, op OpCode, err error) error
}

// StructLog is emitted to the StructLogger for every traced step.
type StructLog struct {
	Pc        uint64
	Op        OpCode
	Registers [NumRegisters]int32
	EqualFlag bool
	HeapSize  int
	Err       error
}

func (s *StructLog) OpName() string {
	return s.Op.String()
}

// LogConfig are the configuration options for structured logger the VM.
type LogConfig struct {
	DisableRegisters bool // disable register capture
	Limit            int  // maximum length of output, but zero means unlimited
}

// StructLogger is a Tracer that keeps every step in memory.
type StructLogger struct {
	cfg  LogConfig
	logs []StructLog
}

func NewStructLogger(cfg *LogConfig) *StructLogger {
	logger := new(StructLogger)
	if cfg != nil {
		logger.cfg = *cfg
	}
	return logger
}

func (l *StructLogger) capture(vm *VM, pc uint64, op OpCode, err error) {
	if l.cfg.Limit != 0 && l.cfg.Limit <= len(l.logs) {
		return
	}
	entry := StructLog{Pc: pc, Op: op, EqualFlag: vm.equalFlag, HeapSize: vm.heap.Len(), Err: err}
	if !l.cfg.DisableRegisters {
		entry.Registers = vm.registers
	}
	l.logs = append(l.logs, entry)
}

func (l *StructLogger) CaptureState(vm *VM, pc uint64, op OpCode) error {
	l.capture(vm, pc, op, nil)
	return nil
}

func (l *StructLogger) CaptureFault(vm *VM, pc uint64, op OpCode, err error) error {
	l.capture(vm, pc, op, err)
	return nil
}

func (l *StructLogger) StructLogs() []StructLog { return l.logs }

// WriteTrace writes a formatted trace to the given writer
func WriteTrace(writer io.Writer, logs []StructLog) {
	for _, log := range logs {
		fmt.Fprintf(writer, "%-6s pc=%08d heap=%d eq=%v", log.Op, log.Pc, log.HeapSize, log.EqualFlag)
		if log.Err != nil {
			fmt.Fprintf(writer, " ERROR: %v", log.Err)
		}
		fmt.Fprintln(writer)
		for i, v := range log.Registers {
			if v != 0 {
				fmt.Fprintf(writer, "  $%-2d %d\n", i, v)
			}
		}
	}
}

// LogTracer forwards every step to a logger at debug level.
type LogTracer struct {
	logger log.Logger
}

func NewLogTracer(logger log.Logger) *LogTracer {
	return &LogTracer{logger: logger}
}

func (t *LogTracer) CaptureState(vm *VM, pc uint64, op OpCode) error {
	t.logger.Debug("VM step", "pc", pc, "op", op.String(), "eq", vm.equalFlag, "heap", vm.heap.Len())
	return nil
}

func (t *LogTracer) CaptureFault(vm *VM, pc uint64, op OpCode, err error) error {
	t.logger.Warn("VM fault", "pc", pc, "op", op.String(), "err", err)
	return nil
}

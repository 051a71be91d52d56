package runtime

import (
	"github.com/Aurorachain/go-iridium/core/vm"
)

// Config is a basic type specifying certain configuration flags for running
// a program.
type Config struct {
	Debug     bool
	VMConfig  vm.Config
	Registers map[int]int32 // initial register values
}

func setDefaults(cfg *Config) {
	if cfg.Debug {
		cfg.VMConfig.Debug = true
	}
}

// Execute runs code on a fresh machine and returns the machine so callers
// can inspect its final state. The returned error is nil when the program
// halted or ran off its end.
func Execute(code []byte, cfg *Config) (*vm.VM, vm.Status, error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	machine := vm.New(cfg.VMConfig)
	for i, v := range cfg.Registers {
		if err := machine.SetRegister(i, v); err != nil {
			return machine, vm.Faulted, err
		}
	}
	machine.AddBytes(code)
	status, err := machine.Run()
	return machine, status, err
}

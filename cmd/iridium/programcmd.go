package main

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/Aurorachain/go-iridium/asm"
	"github.com/Aurorachain/go-iridium/cmd/utils"
	"github.com/Aurorachain/go-iridium/core/vm"
	"github.com/Aurorachain/go-iridium/core/vm/runtime"
	"github.com/Aurorachain/go-iridium/log"
	"gopkg.in/urfave/cli.v1"
)

var (
	runCommand = cli.Command{
		Action:    utils.MigrateFlags(runProgram),
		Name:      "run",
		Usage:     "Execute a program file",
		ArgsUsage: "<file>",
		Flags:     append(globalFlags, vmFlags...),
		Category:  "PROGRAM COMMANDS",
		Description: `
Runs the program until it halts, runs off the end or faults, then prints the
final program counter and every non-zero register. Files ending in .iasm are
assembled, files ending in .hex are decoded as hex text, anything else is
executed as raw bytecode.`,
	}
	asmCommand = cli.Command{
		Action:    utils.MigrateFlags(assembleProgram),
		Name:      "asm",
		Usage:     "Assemble a program",
		ArgsUsage: "<file> [output]",
		Category:  "PROGRAM COMMANDS",
		Description: `
Assembles the input and prints the bytecode as hex. If an output file is given
the bytecode is written there instead, as hex text for .hex files and as raw
bytes otherwise.`,
	}
	disasmCommand = cli.Command{
		Action:    utils.MigrateFlags(disassembleProgram),
		Name:      "disasm",
		Usage:     "Disassemble a program",
		ArgsUsage: "<file>",
		Category:  "PROGRAM COMMANDS",
		Description: `
Prints one line per instruction: offset, raw bytes and assembly.`,
	}
)

func loadProgram(ctx *cli.Context) []byte {
	if len(ctx.Args()) < 1 {
		utils.Fatalf("This command requires an argument.")
	}
	code, err := asm.LoadFile(ctx.Args().First())
	if err != nil {
		utils.Fatalf("Failed to load program: %v", err)
	}
	return code
}

func runProgram(ctx *cli.Context) error {
	var (
		cfg  = makeConfig(ctx)
		code = loadProgram(ctx)
	)
	machine, status, err := runtime.Execute(code, &runtime.Config{VMConfig: cfg.VM.config()})
	log.Debug("Program finished", "status", status.String(), "pc", machine.PC())

	fmt.Printf("%s at pc %d\n", status, machine.PC())
	for i, value := range machine.Registers() {
		if value != 0 {
			fmt.Printf("$%d = %d\n", i, value)
		}
	}
	if machine.Remainder() != 0 {
		fmt.Printf("remainder = %d\n", machine.Remainder())
	}
	if machine.Heap().Len() != 0 {
		fmt.Printf("heap = %d bytes\n", machine.Heap().Len())
	}
	return err
}

func assembleProgram(ctx *cli.Context) error {
	code := loadProgram(ctx)

	out := ctx.Args().Get(1)
	switch {
	case out == "":
		fmt.Println(asm.FormatHex(code))
		return nil
	case strings.ToLower(filepath.Ext(out)) == asm.HexExt:
		return ioutil.WriteFile(out, []byte(asm.FormatHex(code)+"\n"), 0644)
	default:
		return ioutil.WriteFile(out, code, 0644)
	}
}

func disassembleProgram(ctx *cli.Context) error {
	code := loadProgram(ctx)

	instructions, err := vm.Disassemble(code)
	for _, ins := range instructions {
		fmt.Printf("%04d  %-12s %s\n", ins.PC, asm.FormatHex(ins.Raw), ins)
	}
	return err
}

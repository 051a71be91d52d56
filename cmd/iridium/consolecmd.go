package main

import (
	"github.com/Aurorachain/go-iridium/cmd/utils"
	"github.com/Aurorachain/go-iridium/console"
	"gopkg.in/urfave/cli.v1"
)

var (
	consoleFlags = []cli.Flag{utils.HexFlag, utils.ExecFlag}

	consoleCommand = cli.Command{
		Action:   utils.MigrateFlags(localConsole),
		Name:     "console",
		Usage:    "Start an interactive Iridium shell",
		Flags:    append(append(globalFlags, vmFlags...), consoleFlags...),
		Category: "CONSOLE COMMANDS",
		Description: `
The Iridium console is an interactive shell around a single virtual machine.
Every assembly line entered is appended to the program and executed one
instruction at a time. Type .help inside the console for its commands.`,
	}
)

// localConsole starts a new console with a fresh machine, attaching to it
// the configured prompter. With --exec the given program is run instead and
// the register file printed.
func localConsole(ctx *cli.Context) error {
	cfg := makeConfig(ctx)

	config := console.Config{
		DataDir:     utils.MakeDataDir(ctx),
		Prompt:      cfg.Console.Prompt,
		HistoryFile: cfg.Console.HistoryFile,
		Hex:         cfg.Console.Hex,
		VM:          cfg.VM.config(),
	}
	console, err := console.New(config)
	if err != nil {
		utils.Fatalf("Failed to start the Iridium console: %v", err)
	}
	defer console.Stop(false)

	// If only a short execution was requested, run the program and return
	if file := ctx.GlobalString(utils.ExecFlag.Name); file != "" {
		err := console.Execute(file)
		console.Evaluate(".registers")
		return err
	}
	// Otherwise print the welcome screen and enter interactive mode
	console.Welcome()
	console.Interactive()

	return nil
}

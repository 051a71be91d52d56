// iridium is the command line front end of the Iridium virtual machine.
package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/Aurorachain/go-iridium/cmd/utils"
	"github.com/Aurorachain/go-iridium/console"
	"github.com/Aurorachain/go-iridium/log"
	"github.com/Aurorachain/go-iridium/metrics"
	"gopkg.in/urfave/cli.v1"
)

const (
	clientIdentifier = "Iridium" // Client identifier printed by the version command
)

var (
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	// The app that holds all commands and flags.
	app = utils.NewApp(gitCommit, "the Iridium virtual machine command line interface")

	vmFlags = []cli.Flag{
		utils.VMFixedJumpsFlag,
		utils.VMMaxHeapFlag,
		utils.VMEnableDebugFlag,
	}

	globalFlags = []cli.Flag{
		utils.DataDirFlag,
		utils.ConfigFileFlag,
		utils.VerbosityFlag,
		utils.MetricsEnabledFlag,
	}

	stopMetrics = make(chan struct{})
)

func init() {
	// Initialize the CLI app and start the console by default
	app.Action = localConsole
	app.HideVersion = true // we have a command to print the version
	app.Copyright = "Copyright 2018 The go-iridium Authors"
	app.Commands = []cli.Command{
		consoleCommand,
		runCommand,
		asmCommand,
		disasmCommand,
		dumpConfigCommand,
		versionCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))

	app.Flags = append(app.Flags, globalFlags...)
	app.Flags = append(app.Flags, vmFlags...)
	app.Flags = append(app.Flags, consoleFlags...)

	app.Before = func(ctx *cli.Context) error {
		log.SetLevel(log.Verbosity(ctx.GlobalInt(utils.VerbosityFlag.Name)))
		if metrics.Enabled {
			go metrics.CollectProcessMetrics(3*time.Second, stopMetrics)
		}
		return nil
	}

	app.After = func(ctx *cli.Context) error {
		close(stopMetrics)
		console.Stdin.Close()
		log.Sync()
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

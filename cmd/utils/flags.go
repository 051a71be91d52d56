package utils

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"

	"github.com/Aurorachain/go-iridium/metrics"
	"gopkg.in/urfave/cli.v1"
)

func init() {
	cli.AppHelpTemplate = `{{.Name}} {{if .Flags}}[global options] {{end}}command{{if .Flags}} [command options]{{end}} [arguments...]

VERSION:
   {{.Version}}

COMMANDS:
   {{range .Commands}}{{.Name}}{{with .ShortName}}, {{.}}{{end}}{{ "\t" }}{{.Usage}}
   {{end}}{{if .Flags}}
GLOBAL OPTIONS:
   {{range .Flags}}{{.}}
   {{end}}{{end}}
`
	cli.CommandHelpTemplate = `{{.Name}}{{if .Subcommands}} command{{end}}{{if .Flags}} [command options]{{end}} [arguments...]
{{if .Description}}{{.Description}}
{{end}}{{if .Subcommands}}
SUBCOMMANDS:
	{{range .Subcommands}}{{.Name}}{{with .ShortName}}, {{.}}{{end}}{{ "\t" }}{{.Usage}}
	{{end}}{{end}}{{if .Flags}}
OPTIONS:
{{range $flag := .Flags}}   {{$flag}}
{{end}}{{end}}`
}

var (
	// General settings
	DataDirFlag = cli.StringFlag{
		Name:  "datadir",
		Usage: "Data directory for the console history",
		Value: DefaultDataDir(),
	}
	ConfigFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	VerbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug",
		Value: 3,
	}
	MetricsEnabledFlag = cli.BoolFlag{
		Name:  metrics.MetricsEnabledFlag,
		Usage: "Enable metrics collection and reporting",
	}

	// Virtual machine settings
	VMFixedJumpsFlag = cli.BoolFlag{
		Name:  "vm.fixedjumps",
		Usage: "Use backward JMPB and always consume the JMPE operand",
	}
	VMMaxHeapFlag = cli.IntFlag{
		Name:  "vm.maxheap",
		Usage: "Maximum heap size in bytes (0 = unlimited)",
	}
	VMEnableDebugFlag = cli.BoolFlag{
		Name:  "vm.debug",
		Usage: "Trace every executed instruction",
	}

	// Console settings
	HexFlag = cli.BoolFlag{
		Name:  "hex",
		Usage: "Start the console in raw hex input mode",
	}
	ExecFlag = cli.StringFlag{
		Name:  "exec",
		Usage: "Execute a program file and print the registers instead of starting the console",
	}
)

// DefaultDataDir is the default data directory to use for the console
// history.
func DefaultDataDir() string {
	home := homeDir()
	if home != "" {
		if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "Iridium")
		}
		return filepath.Join(home, ".iridium")
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// MakeDataDir retrieves the currently requested data directory, terminating
// if none (or the empty string) is specified.
func MakeDataDir(ctx *cli.Context) string {
	if path := ctx.GlobalString(DataDirFlag.Name); path != "" {
		return path
	}
	Fatalf("Cannot determine default data directory, please set manually (--datadir)")
	return ""
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/Aurorachain/go-iridium/cmd/utils"
	"github.com/Aurorachain/go-iridium/console"
	"github.com/Aurorachain/go-iridium/core/vm"
	"github.com/naoina/toml"
	"gopkg.in/urfave/cli.v1"
)

var (
	dumpConfigCommand = cli.Command{
		Action:      utils.MigrateFlags(dumpConfig),
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "",
		Flags:       append(append(globalFlags, vmFlags...), consoleFlags...),
		Category:    "MISCELLANEOUS COMMANDS",
		Description: `The dumpconfig command shows configuration values.`,
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		link := ""
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

type vmSettings struct {
	FixedJumps bool
	MaxHeap    int
	Debug      bool
}

type consoleSettings struct {
	Prompt      string
	HistoryFile string
	Hex         bool
}

type iridiumConfig struct {
	VM      vmSettings
	Console consoleSettings
}

var defaultConfig = iridiumConfig{
	Console: consoleSettings{
		Prompt:      console.DefaultPrompt,
		HistoryFile: console.HistoryFile,
	},
}

func loadConfig(file string, cfg *iridiumConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads the configuration file, if any, and applies the command
// line flags on top of it.
func makeConfig(ctx *cli.Context) iridiumConfig {
	cfg := defaultConfig

	if file := ctx.GlobalString(utils.ConfigFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			utils.Fatalf("%v", err)
		}
	}
	setVMConfig(ctx, &cfg.VM)
	setConsoleConfig(ctx, &cfg.Console)
	return cfg
}

func setVMConfig(ctx *cli.Context, cfg *vmSettings) {
	if ctx.GlobalIsSet(utils.VMFixedJumpsFlag.Name) {
		cfg.FixedJumps = ctx.GlobalBool(utils.VMFixedJumpsFlag.Name)
	}
	if ctx.GlobalIsSet(utils.VMMaxHeapFlag.Name) {
		cfg.MaxHeap = ctx.GlobalInt(utils.VMMaxHeapFlag.Name)
	}
	if ctx.GlobalIsSet(utils.VMEnableDebugFlag.Name) {
		cfg.Debug = ctx.GlobalBool(utils.VMEnableDebugFlag.Name)
	}
	if cfg.MaxHeap < 0 {
		utils.Fatalf("MaxHeap must not be negative, have %d", cfg.MaxHeap)
	}
}

func setConsoleConfig(ctx *cli.Context, cfg *consoleSettings) {
	if ctx.GlobalIsSet(utils.HexFlag.Name) {
		cfg.Hex = ctx.GlobalBool(utils.HexFlag.Name)
	}
}

func (s vmSettings) config() vm.Config {
	return vm.Config{
		FixedJumps: s.FixedJumps,
		MaxHeap:    s.MaxHeap,
		Debug:      s.Debug,
	}
}

func dumpConfig(ctx *cli.Context) error {
	cfg := makeConfig(ctx)

	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	os.Stdout.Write(out)
	return nil
}

package console

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Aurorachain/go-iridium/asm"
	"github.com/Aurorachain/go-iridium/core/vm"
	"github.com/Aurorachain/go-iridium/log"
	"github.com/Aurorachain/go-iridium/metrics"
	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/hashicorp/golang-lru"
	"github.com/mattn/go-colorable"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
)

const HistoryFile = "history"

const DefaultPrompt = ">>> "

// DefaultCacheSize is the number of assembled lines kept for reuse.
const DefaultCacheSize = 256

var errQuit = errors.New("quit")

var errorColor = color.New(color.FgRed)

// Config is the collection of configurations to fine tune the behavior of the
// Iridium console.
type Config struct {
	DataDir     string       // Data directory to store the console history at
	HistoryFile string       // History file name inside DataDir (defaults to HistoryFile)
	Prompt      string       // Input prompt prefix string (defaults to DefaultPrompt)
	Prompter    UserPrompter // Input prompter to allow interactive user feedback (defaults to TerminalPrompter)
	Printer     io.Writer    // Output writer to serialize any display strings to (defaults to os.Stdout)
	VM          vm.Config    // Machine configuration
	Hex         bool         // Start in raw hex input mode
	CacheSize   int          // Assembled line cache size (defaults to DefaultCacheSize)
}

// Console is an interactive shell around a single Iridium machine. Assembly
// lines are appended to the program and executed one step at a time.
type Console struct {
	vm        *vm.VM
	prompt    string
	prompter  UserPrompter
	histPath  string
	history   []string
	printer   io.Writer
	hexMode   bool
	assembled *lru.Cache
}

// New initializes a console.
func New(config Config) (*Console, error) {
	if config.Prompter == nil {
		config.Prompter = Stdin
	}
	if config.Prompt == "" {
		config.Prompt = DefaultPrompt
	}
	if config.Printer == nil {
		config.Printer = colorable.NewColorableStdout()
	}
	if config.HistoryFile == "" {
		config.HistoryFile = HistoryFile
	}
	if config.CacheSize <= 0 {
		config.CacheSize = DefaultCacheSize
	}
	cache, err := lru.New(config.CacheSize)
	if err != nil {
		return nil, err
	}
	console := &Console{
		vm:        vm.New(config.VM),
		prompt:    config.Prompt,
		prompter:  config.Prompter,
		printer:   config.Printer,
		hexMode:   config.Hex,
		assembled: cache,
		histPath:  filepath.Join(config.DataDir, config.HistoryFile),
	}
	if config.DataDir != "" {
		if err := os.MkdirAll(config.DataDir, 0700); err != nil {
			return nil, err
		}
	}
	if content, err := ioutil.ReadFile(console.histPath); err != nil {
		console.prompter.SetHistory(nil)
	} else {
		console.history = strings.Split(string(content), "\n")
		console.prompter.SetHistory(console.history)
	}
	console.prompter.SetWordCompleter(console.AutoCompleteInput)
	return console, nil
}

// VM returns the machine driven by the console.
func (c *Console) VM() *vm.VM {
	return c.vm
}

// AutoCompleteInput completes mnemonics and dot commands.
func (c *Console) AutoCompleteInput(line string, pos int) (string, []string, string) {
	if len(line) == 0 || pos == 0 {
		return "", nil, ""
	}
	start := strings.LastIndexAny(line[:pos], " \t") + 1
	word := line[start:pos]

	var candidates []string
	if start == 0 && strings.HasPrefix(word, ".") {
		for name := range commands {
			if strings.HasPrefix(name, word) {
				candidates = append(candidates, name)
			}
		}
	} else if start == 0 {
		for op := vm.LOAD; op <= vm.ALOC; op++ {
			if strings.HasPrefix(op.String(), word) {
				candidates = append(candidates, op.String())
			}
		}
	}
	sort.Strings(candidates)
	return line[:start], candidates, line[pos:]
}

// Welcome show summary of current machine and some metadata about the
// console's available modules.
func (c *Console) Welcome() {
	fmt.Fprintf(c.printer, "Welcome to Iridium! Let's be productive!\n\n")
	fmt.Fprintf(c.printer, "input mode: %s\n", c.mode())
	fmt.Fprintln(c.printer, "type .help for the list of commands")
	fmt.Fprintln(c.printer)
}

func (c *Console) mode() string {
	if c.hexMode {
		return "hex"
	}
	return "assembly"
}

// Evaluate handles a single line of input. Dot commands are dispatched to
// the console itself, anything else is assembled (or hex decoded) and
// appended to the program.
func (c *Console) Evaluate(line string) error {
	err := c.evaluate(strings.TrimSpace(line))
	if err != nil && err != errQuit {
		errorColor.Fprintf(c.printer, "error: %v\n", err)
	}
	return err
}

func (c *Console) evaluate(line string) error {
	switch {
	case line == "":
		return nil
	case strings.HasPrefix(line, "."):
		return c.command(line)
	case c.hexMode:
		code, err := asm.ParseHex(line)
		if err != nil {
			return err
		}
		c.vm.AddBytes(code)
		fmt.Fprintf(c.printer, "appended %d bytes\n", len(code))
		return nil
	}
	code, err := c.assemble(line)
	if err != nil {
		return err
	}
	c.vm.AddBytes(code)
	status, err := c.vm.RunOnce()
	if err != nil {
		return err
	}
	if status == vm.Halted {
		fmt.Fprintln(c.printer, "HLT encountered")
	}
	return nil
}

func (c *Console) assemble(line string) ([]byte, error) {
	if code, ok := c.assembled.Get(line); ok {
		return code.([]byte), nil
	}
	ins, err := asm.ParseInstruction(line)
	if err != nil {
		return nil, err
	}
	code, err := ins.Bytes()
	if err != nil {
		return nil, err
	}
	c.assembled.Add(line, code)
	return code, nil
}

// Interactive starts an interactive user session, where input is propted from
// the configured user prompter.
func (c *Console) Interactive() {
	var (
		prompt    = c.prompt
		scheduler = make(chan string) // Channel to send the next prompt on and receive the input
	)
	// Start a goroutine to listen for prompt requests and send back inputs
	go func() {
		for {
			// Read the next user input
			line, err := c.prompter.PromptInput(<-scheduler)
			if err != nil {
				// In case of an error, either clear the prompt or fail
				if err == liner.ErrPromptAborted { // ctrl-C
					scheduler <- ""
					continue
				}
				close(scheduler)
				return
			}
			// User input retrieved, send for interpretation and loop
			scheduler <- line
		}
	}()
	// Monitor Ctrl-C too in case the input is empty and we need to bail
	abort := make(chan os.Signal, 1)
	signal.Notify(abort, os.Interrupt)
	defer signal.Stop(abort)

	// Start sending prompts to the user and reading back inputs
	for {
		// Send the next prompt, triggering an input read and process the result
		scheduler <- prompt
		select {
		case <-abort:
			// User forcefully quite the console
			fmt.Fprintln(c.printer, "caught interrupt, exiting")
			return

		case line, ok := <-scheduler:
			if !ok {
				return
			}
			command := strings.TrimSpace(line)
			if command == "" {
				continue
			}
			if len(c.history) == 0 || command != c.history[len(c.history)-1] {
				c.history = append(c.history, command)
				c.prompter.AppendHistory(command)
			}
			if err := c.Evaluate(command); err == errQuit {
				fmt.Fprintln(c.printer, "Farewell! Have a good day!")
				return
			}
		}
	}
}

// Execute loads a program file, appends it and runs the whole program.
func (c *Console) Execute(path string) error {
	code, err := asm.LoadFile(path)
	if err != nil {
		return err
	}
	c.vm.AddBytes(code)
	status, err := c.vm.Run()
	log.Debug("Executed program", "file", path, "status", status.String())
	return err
}

// Stop cleans up the console and terminates the runtime environment.
func (c *Console) Stop(graceful bool) error {
	if err := ioutil.WriteFile(c.histPath, []byte(strings.Join(c.history, "\n")), 0600); err != nil {
		return err
	}
	if err := os.Chmod(c.histPath, 0600); err != nil { // Force 0600, even if it was different previously
		return err
	}
	return nil
}

// command dispatches a dot command.
func (c *Console) command(line string) error {
	fields := strings.Fields(line)
	cmd, ok := commands[fields[0]]
	if !ok {
		return errors.Errorf("unknown command %s, try .help", fields[0])
	}
	return cmd.run(c, fields[1:])
}

type consoleCommand struct {
	usage string
	run   func(c *Console, args []string) error
}

var commands map[string]consoleCommand

func init() {
	commands = map[string]consoleCommand{
		".quit":          {"leave the console", quitCommand},
		".exit":          {"leave the console", quitCommand},
		".help":          {"list commands", (*Console).help},
		".history":       {"show the commands entered so far", (*Console).showHistory},
		".program":       {"list the instructions in the program", (*Console).showProgram},
		".registers":     {"dump registers and flags", (*Console).showRegisters},
		".heap":          {"dump the heap", (*Console).showHeap},
		".state":         {"dump the complete machine state", (*Console).showState},
		".hex":           {"switch to raw hex input, lines are appended without running", (*Console).hexInput},
		".asm":           {"switch to assembly input, lines run one step each", (*Console).asmInput},
		".run":           {"run the program from the current pc", (*Console).run},
		".reset":         {"clear program, registers and heap", (*Console).reset},
		".load":          {"append a program file (.iasm, .hex or raw)", (*Console).load},
		".metrics":       {"print collected metrics (needs --metrics)", (*Console).showMetrics},
		".clear_history": {"forget the command history", (*Console).clearHistory},
	}
}

func quitCommand(c *Console, args []string) error {
	return errQuit
}

func (c *Console) help(args []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(c.printer, "%-16s %s\n", name, commands[name].usage)
	}
	return nil
}

func (c *Console) showHistory(args []string) error {
	for _, command := range c.history {
		fmt.Fprintln(c.printer, command)
	}
	return nil
}

func (c *Console) clearHistory(args []string) error {
	c.history = nil
	c.prompter.ClearHistory()
	if err := os.Remove(c.histPath); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(c.printer, "can't delete history file:", err)
	} else {
		fmt.Fprintln(c.printer, "history file deleted")
	}
	return nil
}

func (c *Console) showProgram(args []string) error {
	fmt.Fprintln(c.printer, "Listing instructions currently in VM's program vector:")
	instructions, err := vm.Disassemble(c.vm.Program())
	for _, ins := range instructions {
		marker := "  "
		if ins.PC == c.vm.PC() {
			marker = "=>"
		}
		fmt.Fprintf(c.printer, "%s %04d  %-12s %s\n", marker, ins.PC, asm.FormatHex(ins.Raw), ins)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(c.printer, "End of Program Listing")
	return nil
}

func (c *Console) showRegisters(args []string) error {
	fmt.Fprintln(c.printer, "Listing registers and all contents:")
	registers := c.vm.Registers()
	for i := 0; i < len(registers); i += 4 {
		for j := i; j < i+4; j++ {
			fmt.Fprintf(c.printer, "$%-2d %-12d", j, registers[j])
		}
		fmt.Fprintln(c.printer)
	}
	fmt.Fprintf(c.printer, "pc %d  eq %v  remainder %d\n", c.vm.PC(), c.vm.EqualFlag(), c.vm.Remainder())
	fmt.Fprintln(c.printer, "End of Register Listing")
	return nil
}

func (c *Console) showHeap(args []string) error {
	c.vm.Heap().Print(c.printer)
	return nil
}

// machineState is the snapshot dumped by .state.
type machineState struct {
	PC        uint64
	Registers [vm.NumRegisters]int32
	EqualFlag bool
	Remainder uint32
	HeapSize  int
	Program   []byte
}

func (c *Console) showState(args []string) error {
	spew.Fdump(c.printer, machineState{
		PC:        c.vm.PC(),
		Registers: c.vm.Registers(),
		EqualFlag: c.vm.EqualFlag(),
		Remainder: c.vm.Remainder(),
		HeapSize:  c.vm.Heap().Len(),
		Program:   c.vm.Program(),
	})
	return nil
}

func (c *Console) hexInput(args []string) error {
	c.hexMode = true
	fmt.Fprintln(c.printer, "hex mode: lines are appended, use .run to execute")
	return nil
}

func (c *Console) asmInput(args []string) error {
	c.hexMode = false
	fmt.Fprintln(c.printer, "assembly mode")
	return nil
}

func (c *Console) run(args []string) error {
	status, err := c.vm.Run()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.printer, "program %s at pc %d\n", status, c.vm.PC())
	return nil
}

func (c *Console) reset(args []string) error {
	ok, err := c.prompter.PromptConfirm("Clear program, registers and heap?")
	if err != nil {
		return err
	}
	if ok {
		c.vm.Reset()
		fmt.Fprintln(c.printer, "machine reset")
	}
	return nil
}

func (c *Console) load(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: .load <file>")
	}
	code, err := asm.LoadFile(args[0])
	if err != nil {
		return err
	}
	c.vm.AddBytes(code)
	fmt.Fprintf(c.printer, "appended %d bytes from %s\n", len(code), args[0])
	return nil
}

func (c *Console) showMetrics(args []string) error {
	if !metrics.Enabled {
		fmt.Fprintln(c.printer, "metrics collection is disabled, start with --metrics")
		return nil
	}
	metrics.WriteOnce(c.printer)
	return nil
}

package console

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/Aurorachain/go-iridium/core/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter is a prompter replaying a fixed set of lines, failing
// with io.EOF once they run out.
type scriptedPrompter struct {
	lines   []string
	confirm bool
	history []string
}

func (p *scriptedPrompter) PromptInput(prompt string) (string, error) {
	if len(p.lines) == 0 {
		return "", io.EOF
	}
	line := p.lines[0]
	p.lines = p.lines[1:]
	return line, nil
}

func (p *scriptedPrompter) PromptConfirm(prompt string) (bool, error) {
	return p.confirm, nil
}

func (p *scriptedPrompter) SetHistory(history []string)    { p.history = history }
func (p *scriptedPrompter) AppendHistory(command string)   { p.history = append(p.history, command) }
func (p *scriptedPrompter) ClearHistory()                  { p.history = nil }
func (p *scriptedPrompter) SetWordCompleter(WordCompleter) {}

// tester is a console test environment to run tests against.
type tester struct {
	workspace string
	console   *Console
	input     *scriptedPrompter
	output    *bytes.Buffer
}

func newTester(t *testing.T, hex bool, lines ...string) *tester {
	workspace, err := ioutil.TempDir("", "console-tester-")
	require.NoError(t, err)

	prompter := &scriptedPrompter{lines: lines, confirm: true}
	printer := new(bytes.Buffer)

	console, err := New(Config{
		DataDir:  workspace,
		Prompter: prompter,
		Printer:  printer,
		Hex:      hex,
	})
	require.NoError(t, err)
	return &tester{
		workspace: workspace,
		console:   console,
		input:     prompter,
		output:    printer,
	}
}

func (env *tester) Close(t *testing.T) {
	require.NoError(t, env.console.Stop(false))
	os.RemoveAll(env.workspace)
}

func TestWelcome(t *testing.T) {
	tester := newTester(t, false)
	defer tester.Close(t)

	tester.console.Welcome()

	output := tester.output.String()
	assert.Contains(t, output, "Welcome to Iridium")
	assert.Contains(t, output, "input mode: assembly")
}

func TestEvaluateAssembly(t *testing.T) {
	tester := newTester(t, false)
	defer tester.Close(t)

	require.NoError(t, tester.console.Evaluate("load $0 #500"))
	require.NoError(t, tester.console.Evaluate("load $1 #20 ; comment"))
	require.NoError(t, tester.console.Evaluate("add $0 $1 $2"))

	machine := tester.console.VM()
	assert.Equal(t, int32(520), machine.Registers()[2])
	assert.Equal(t, uint64(12), machine.PC())

	require.NoError(t, tester.console.Evaluate("hlt"))
	assert.Contains(t, tester.output.String(), "HLT encountered")
}

func TestEvaluateCachedLine(t *testing.T) {
	tester := newTester(t, false)
	defer tester.Close(t)

	require.NoError(t, tester.console.Evaluate("load $0 #1"))
	require.NoError(t, tester.console.Evaluate("load $0 #1"))
	assert.Equal(t, 1, tester.console.assembled.Len())
	assert.Equal(t, []byte{0, 0, 0, 1, 0, 0, 0, 1}, tester.console.VM().Program())
}

func TestEvaluateErrors(t *testing.T) {
	tester := newTester(t, false)
	defer tester.Close(t)

	assert.Error(t, tester.console.Evaluate("frobnicate $0"))
	assert.Empty(t, tester.console.VM().Program())

	require.NoError(t, tester.console.Evaluate("load $1 #0"))
	assert.Error(t, tester.console.Evaluate("div $0 $1 $2"))
	assert.Contains(t, tester.output.String(), "division by zero")

	assert.Error(t, tester.console.Evaluate(".nonsense"))
	assert.Contains(t, tester.output.String(), "unknown command")
}

func TestHexMode(t *testing.T) {
	tester := newTester(t, true)
	defer tester.Close(t)

	require.NoError(t, tester.console.Evaluate("00 00 01 f4"))
	require.NoError(t, tester.console.Evaluate("05"))
	assert.Equal(t, uint64(0), tester.console.VM().PC())

	require.NoError(t, tester.console.Evaluate(".run"))
	assert.Equal(t, int32(500), tester.console.VM().Registers()[0])
	assert.Contains(t, tester.output.String(), "program halted at pc 5")

	assert.Error(t, tester.console.Evaluate("zz"))

	require.NoError(t, tester.console.Evaluate(".asm"))
	require.NoError(t, tester.console.Evaluate("load $1 #7"))
	assert.Equal(t, int32(7), tester.console.VM().Registers()[1])
}

func TestListings(t *testing.T) {
	tester := newTester(t, false)
	defer tester.Close(t)

	require.NoError(t, tester.console.Evaluate("load $0 #10"))
	require.NoError(t, tester.console.Evaluate("aloc $0"))

	require.NoError(t, tester.console.Evaluate(".program"))
	require.NoError(t, tester.console.Evaluate(".registers"))
	require.NoError(t, tester.console.Evaluate(".heap"))
	require.NoError(t, tester.console.Evaluate(".state"))
	require.NoError(t, tester.console.Evaluate(".help"))
	require.NoError(t, tester.console.Evaluate(".metrics"))

	output := tester.output.String()
	assert.Contains(t, output, "load $0 #10")
	assert.Contains(t, output, "aloc $0")
	assert.Contains(t, output, "00 00 00 0a")
	assert.Contains(t, output, "End of Program Listing")
	assert.Contains(t, output, "End of Register Listing")
	assert.Contains(t, output, "### heap 10 bytes ###")
	assert.Contains(t, output, "HeapSize: (int) 10")
	assert.Contains(t, output, ".registers")
}

func TestReset(t *testing.T) {
	tester := newTester(t, false)
	defer tester.Close(t)

	require.NoError(t, tester.console.Evaluate("load $0 #10"))
	require.NoError(t, tester.console.Evaluate(".reset"))
	assert.Empty(t, tester.console.VM().Program())
	assert.Equal(t, [vm.NumRegisters]int32{}, tester.console.VM().Registers())

	tester.input.confirm = false
	require.NoError(t, tester.console.Evaluate("load $0 #10"))
	require.NoError(t, tester.console.Evaluate(".reset"))
	assert.Len(t, tester.console.VM().Program(), 4)
}

func TestLoad(t *testing.T) {
	tester := newTester(t, false)
	defer tester.Close(t)

	path := filepath.Join(tester.workspace, "prog.iasm")
	require.NoError(t, ioutil.WriteFile(path, []byte("load $0 #3\nload $1 #4\nmul $0 $1 $2\nhlt\n"), 0600))

	require.NoError(t, tester.console.Evaluate(".load "+path))
	assert.Len(t, tester.console.VM().Program(), 13)
	require.NoError(t, tester.console.Evaluate(".run"))
	assert.Equal(t, int32(12), tester.console.VM().Registers()[2])

	assert.Error(t, tester.console.Evaluate(".load"))
}

func TestExecute(t *testing.T) {
	tester := newTester(t, false)
	defer tester.Close(t)

	path := filepath.Join(tester.workspace, "prog.hex")
	require.NoError(t, ioutil.WriteFile(path, []byte("00 00 00 2a 05"), 0600))
	require.NoError(t, tester.console.Execute(path))
	assert.Equal(t, int32(42), tester.console.VM().Registers()[0])
}

func TestInteractive(t *testing.T) {
	tester := newTester(t, false, "load $0 #1", "", "load $0 #1", "load $1 #2", ".history", ".quit", "load $2 #3")
	defer tester.Close(t)

	tester.console.Interactive()

	assert.Equal(t, []string{"load $0 #1", "load $1 #2", ".history", ".quit"}, tester.console.history)
	assert.Equal(t, tester.console.history, tester.input.history)
	assert.Equal(t, int32(2), tester.console.VM().Registers()[1])
	assert.Equal(t, int32(0), tester.console.VM().Registers()[2])
	assert.Contains(t, tester.output.String(), "Farewell")
}

func TestInteractiveEOF(t *testing.T) {
	tester := newTester(t, false, "load $0 #9")
	defer tester.Close(t)

	tester.console.Interactive()
	assert.Equal(t, int32(9), tester.console.VM().Registers()[0])
}

func TestHistoryPersisted(t *testing.T) {
	tester := newTester(t, false, "load $0 #1", ".registers")
	tester.console.Interactive()
	require.NoError(t, tester.console.Stop(false))

	content, err := ioutil.ReadFile(filepath.Join(tester.workspace, HistoryFile))
	require.NoError(t, err)
	assert.Equal(t, "load $0 #1\n.registers", string(content))

	again, err := New(Config{DataDir: tester.workspace, Prompter: &scriptedPrompter{}, Printer: ioutil.Discard})
	require.NoError(t, err)
	assert.Equal(t, []string{"load $0 #1", ".registers"}, again.history)

	require.NoError(t, again.Evaluate(".clear_history"))
	_, err = os.Stat(filepath.Join(tester.workspace, HistoryFile))
	assert.True(t, os.IsNotExist(err))
	os.RemoveAll(tester.workspace)
}

func TestAutoComplete(t *testing.T) {
	tester := newTester(t, false)
	defer tester.Close(t)

	_, candidates, _ := tester.console.AutoCompleteInput("jm", 2)
	assert.Equal(t, []string{"jmp", "jmpb", "jmpe", "jmpf"}, candidates)

	_, candidates, _ = tester.console.AutoCompleteInput(".re", 3)
	assert.Equal(t, []string{".registers", ".reset"}, candidates)

	prefix, candidates, _ := tester.console.AutoCompleteInput("add $0", 6)
	assert.Equal(t, "add ", prefix)
	assert.Empty(t, candidates)
}

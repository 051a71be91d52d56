package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleInteractive(t *testing.T) {
	iridium := runIridium(t, "console")
	iridium.InputLine("load $0 #7")
	iridium.InputLine("load $1 #9")
	iridium.InputLine("mul $0 $1 $2")
	iridium.InputLine(".registers")
	iridium.InputLine(".quit")

	iridium.ExpectRegexp(`(?s)Welcome to Iridium!.*input mode: assembly.*\$2  63 .*pc 12  eq false  remainder 0.*Farewell! Have a good day!`)
	iridium.WaitExit()
	assert.Equal(t, 0, iridium.ExitStatus())

	history, err := os.Stat(filepath.Join(iridium.Datadir, "history"))
	if assert.NoError(t, err) {
		assert.NotZero(t, history.Size())
	}
	iridium.Cleanup()
}

func TestConsoleHexMode(t *testing.T) {
	iridium := runIridium(t, "--hex")
	iridium.InputLine("00 03 00 2a")
	iridium.InputLine(".run")
	iridium.InputLine(".exit")

	iridium.ExpectRegexp(`(?s)input mode: hex.*appended 4 bytes.*program exhausted at pc 4.*Farewell`)
	iridium.WaitExit()
	iridium.Cleanup()
}

func TestConsoleExec(t *testing.T) {
	file := writeFile(t, "add.iasm", addProgram)
	defer os.RemoveAll(filepath.Dir(file))

	iridium := runIridium(t, "console", "--exec", file)
	iridium.ExpectRegexp(`(?s)Listing registers and all contents:.*\$2  520 .*pc 13  eq false  remainder 0`)
	iridium.WaitExit()
	assert.Equal(t, 0, iridium.ExitStatus())
	iridium.Cleanup()
}

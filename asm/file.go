package asm

import (
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Source file extensions understood by LoadFile.
const (
	AssemblyExt = ".iasm"
	HexExt      = ".hex"
)

// LoadFile reads a program from disk. Assembly (.iasm) is assembled, hex
// text (.hex) is decoded and every other file is taken as raw bytecode.
func LoadFile(path string) ([]byte, error) {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var code []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case AssemblyExt:
		code, err = Assemble(string(content))
	case HexExt:
		code, err = ParseHex(string(content))
	default:
		return content, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, filepath.Base(path))
	}
	return code, nil
}

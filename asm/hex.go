package asm

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// ParseHex decodes whitespace separated two digit hex groups, e.g.
// "00 01 f4 05".
func ParseHex(line string) ([]byte, error) {
	fields := strings.Fields(line)
	out := make([]byte, 0, len(fields))
	for _, field := range fields {
		if len(field) != 2 {
			return nil, errors.Wrapf(ErrInvalidHex, "%q", field)
		}
		b, err := hex.DecodeString(field)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidHex, "%q", field)
		}
		out = append(out, b[0])
	}
	return out, nil
}

// FormatHex is the inverse of ParseHex.
func FormatHex(b []byte) string {
	groups := make([]string, len(b))
	for i, v := range b {
		groups[i] = hex.EncodeToString([]byte{v})
	}
	return strings.Join(groups, " ")
}

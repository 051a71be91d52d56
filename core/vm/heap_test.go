package vm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapGrow(t *testing.T) {
	h := NewHeap(0)
	require.NoError(t, h.Grow(16))
	h.Data()[3] = 0xff
	require.NoError(t, h.Grow(16))
	assert.Equal(t, 32, h.Len())
	assert.Equal(t, byte(0xff), h.Data()[3], "growth keeps existing contents")
	assert.Equal(t, make([]byte, 16), h.Data()[16:])

	require.NoError(t, h.Grow(0))
	assert.Equal(t, 32, h.Len())
}

func TestHeapGrowErrors(t *testing.T) {
	h := NewHeap(10)
	assert.Equal(t, ErrNegativeAllocation, h.Grow(-1))
	assert.Equal(t, ErrHeapLimit, h.Grow(11))
	require.NoError(t, h.Grow(10))
	assert.Equal(t, ErrHeapLimit, h.Grow(1))
	assert.Equal(t, 10, h.Len())
}

func TestHeapPrint(t *testing.T) {
	var buf bytes.Buffer
	NewHeap(0).Print(&buf)
	assert.Contains(t, buf.String(), "-- empty --")

	buf.Reset()
	h := NewHeap(0)
	h.Grow(40)
	h.Print(&buf)
	assert.Contains(t, buf.String(), "### heap 40 bytes ###")
	assert.Contains(t, buf.String(), "0020: 00 00 00 00 00 00 00 00\n")
}

package vm

import (
	"fmt"
	"io"
)

// Heap is a bump-only byte store. It only ever grows and new space is
// always zeroed.
type Heap struct {
	store []byte
	limit int
}

// NewHeap returns an empty heap. A limit of 0 means unbounded growth.
func NewHeap(limit int) *Heap {
	return &Heap{limit: limit}
}

// Grow appends size zero bytes.
func (h *Heap) Grow(size int) error {
	if size < 0 {
		return ErrNegativeAllocation
	}
	if h.limit > 0 && size > h.limit-len(h.store) {
		return ErrHeapLimit
	}
	if size > 0 {
		h.store = append(h.store, make([]byte, size)...)
	}
	return nil
}

func (h *Heap) Len() int {
	return len(h.store)
}

// Data returns the backing slice. Callers must not retain it across Grow.
func (h *Heap) Data() []byte {
	return h.store
}

func (h *Heap) Print(w io.Writer) {
	fmt.Fprintf(w, "### heap %d bytes ###\n", len(h.store))
	if len(h.store) > 0 {
		for i := 0; i < len(h.store); i += 32 {
			end := i + 32
			if end > len(h.store) {
				end = len(h.store)
			}
			fmt.Fprintf(w, "%04x: % x\n", i, h.store[i:end])
		}
	} else {
		fmt.Fprintln(w, "-- empty --")
	}
	fmt.Fprintln(w, "####################")
}

// Package memory implements each frame's auto-growing memory, which also
// doubles as the symbol table for jump markers.
package memory

import (
	"github.com/Supercolbat/binarypp/vm/types"
	"github.com/Supercolbat/binarypp/vm/vmerr"
)

// Memory is a dense, zero-indexed vector of Values that grows with
// zero-fill on demand. Cell 0 is reserved: the internal growth pass may
// initialize it, but no opcode may read or write it successfully.
type Memory struct {
	cells []types.Value
}

// New returns an empty Memory, already containing the reserved cell 0.
func New() *Memory {
	return &Memory{cells: []types.Value{types.Int(0)}}
}

// Get returns the value at addr, growing the backing store with zero-fill
// first if necessary so that reading an unwritten cell yields Int(0). It
// fails with vmerr.ReservedAccess for addr == 0.
func (m *Memory) Get(addr int) (types.Value, error) {
	if addr == 0 {
		return nil, vmerr.New(vmerr.ReservedAccess, "accessing reserved memory address 0")
	}
	m.growTo(addr)
	return m.cells[addr], nil
}

// Set stores v at addr, growing the backing store as needed. It fails with
// vmerr.ReservedAccess for addr == 0; growth-time zero-fill of cell 0 does not go
// through Set and is therefore unaffected by this restriction.
func (m *Memory) Set(addr int, v types.Value) error {
	if addr == 0 {
		return vmerr.New(vmerr.ReservedAccess, "accessing reserved memory address 0")
	}
	m.growTo(addr)
	m.cells[addr] = v
	return nil
}

// raw returns the cell at addr without the reserved-address check, for
// internal use by marker preinitialization, which may legitimately inspect
// any address while scanning.
func (m *Memory) raw(addr int) types.Value {
	m.growTo(addr)
	return m.cells[addr]
}

func (m *Memory) growTo(addr int) {
	if addr < len(m.cells) {
		return
	}
	for len(m.cells) <= addr {
		m.cells = append(m.cells, types.Int(0))
	}
}

// Len reports the current size of the backing store, for diagnostics.
func (m *Memory) Len() int { return len(m.cells) }

// Snapshot returns the full cell vector, for step-mode tracing. Callers
// must not mutate the returned slice.
func (m *Memory) Snapshot() []types.Value { return m.cells }

// HasMarker reports whether addr already holds a types.Marker, used by
// preinitialization to honor "only the first static occurrence wins"
// without triggering the reserved-address check on addr == 0 (which can
// never hold a marker since MAKE_MARKER 0 is rejected before it reaches
// here).
func (m *Memory) HasMarker(addr int) bool {
	if addr == 0 {
		return false
	}
	v := m.raw(addr)
	_, ok := v.(types.Marker)
	return ok
}

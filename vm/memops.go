package vm

import (
	"github.com/Supercolbat/binarypp/vm/frame"
	"github.com/Supercolbat/binarypp/vm/types"
)

// execLoadMemory pushes memory[addr] onto the stack.
func (m *Machine) execLoadMemory(fr *frame.Frame, args []types.Value) error {
	addr, err := argAddr(args, 0)
	if err != nil {
		return err
	}
	v, err := fr.Memory.Get(addr)
	if err != nil {
		return err
	}
	m.Stack.Push(v)
	return nil
}

// execStoreMemory pops the stack top into memory[addr]. If the cell being
// overwritten holds an open File, its handle is closed first: a memory
// cell is the only owner of a File value, so losing the last reference to
// it must release the OS resource.
func (m *Machine) execStoreMemory(fr *frame.Frame, args []types.Value) error {
	addr, err := argAddr(args, 0)
	if err != nil {
		return err
	}
	v, err := m.Stack.Pop()
	if err != nil {
		return err
	}
	if old, err := fr.Memory.Get(addr); err == nil {
		if f, ok := old.(types.File); ok {
			f.Close()
		}
	}
	return fr.Memory.Set(addr, v)
}

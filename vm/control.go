package vm

import (
	"github.com/Supercolbat/binarypp/vm/frame"
	"github.com/Supercolbat/binarypp/vm/opcode"
	"github.com/Supercolbat/binarypp/vm/types"
	"github.com/Supercolbat/binarypp/vm/vmerr"
)

// execMakeMarker handles a MAKE_MARKER whose address was not resolvable
// during preinitialization: a FORWARD_ARGS-suppressed address, known only
// once the forwarded stack value arrives here. A static MAKE_MARKER was
// already installed by preinitialize, so this is a no-op for it beyond the
// redundant HasMarker check, per "first static occurrence wins".
func (m *Machine) execMakeMarker(fr *frame.Frame, args []types.Value) error {
	addr, err := argAddr(args, 0)
	if err != nil {
		return err
	}
	if addr == 0 {
		return vmerr.New(vmerr.ReservedAccess, "MAKE_MARKER cannot target reserved address 0")
	}
	if fr.Memory.HasMarker(addr) {
		return nil
	}
	return fr.Memory.Set(addr, types.NewMarker(m.ip))
}

// execGotoMarker jumps to the marker at memory[addr]. addr == 0 is the
// "return" form: it jumps back to the instruction immediately after the
// last non-zero GOTO_MARKER or GOTO_MODULE executed, tracked in a single field rather
// than a call stack, so nested calls do not nest returns.
func (m *Machine) execGotoMarker(fr *frame.Frame, args []types.Value) error {
	addr, err := argAddr(args, 0)
	if err != nil {
		return err
	}
	if addr == 0 {
		m.ip = m.lastGoto
		return nil
	}
	v, err := fr.Memory.Get(addr)
	if err != nil {
		return err
	}
	marker, ok := v.(types.Marker)
	if !ok {
		return vmerr.New(vmerr.BadMarker, "memory[%d] does not hold a marker", addr)
	}
	m.lastGoto = m.ip
	m.ip = marker.Pointer
	return nil
}

// execIfRunNext always marks CondTarget so step-mode tracing can show the
// skip window before the condition is even known, then pops the condition
// and either lets the next n instructions run or skips them outright.
func (m *Machine) execIfRunNext(fr *frame.Frame, args []types.Value) error {
	n, err := argAddr(args, 0)
	if err != nil {
		return err
	}
	fr.CondTarget = m.ip.Inst + int64(n)
	cond, err := m.Stack.Pop()
	if err != nil {
		return err
	}
	if cond.Truth() {
		return nil
	}
	m.ip.Inst += int64(n)
	return nil
}

// execForwardArgs pops the operand(s) the very next instruction would
// otherwise read inline off the stack instead, peeking at the next
// opcode's arity to know how many to take (and in what order to restore
// them, since the stack is LIFO but operand order is left to right).
func (m *Machine) execForwardArgs(fr *frame.Frame) error {
	n := 1
	if next := m.ip.Inst + 1; next < int64(len(fr.Code)) {
		if arity, ok := fr.Code[next].Opcode.Arity(); ok && arity == opcode.TwoArg {
			n = 2
		}
	}
	vals := make([]types.Value, n)
	for i := n - 1; i >= 0; i-- {
		v, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		vals[i] = v
	}
	fr.ForwardedArgs = vals
	return nil
}

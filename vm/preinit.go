package vm

import (
	"github.com/Supercolbat/binarypp/vm/opcode"
	"github.com/Supercolbat/binarypp/vm/types"
	"github.com/Supercolbat/binarypp/vm/vmerr"
)

// preinitialize performs the single pass required before a frame's code
// executes: for each static MAKE_MARKER k, install Marker(frame, inst) in
// memory[k] unless one is already there, so that only the first static
// occurrence of a given marker address wins. All other instructions are
// left unexecuted, and the instruction pointer is restored to its pre-pass
// value afterwards.
func (m *Machine) preinitialize(frameIdx uint32) error {
	fr := m.Frames[frameIdx]
	saved := m.ip
	m.ip = types.Pointer{Frame: frameIdx, Inst: -1}

	for {
		inst, ok := fr.Fetch(&m.ip)
		if !ok {
			break
		}
		if inst.Opcode != opcode.MAKE_MARKER {
			continue
		}
		if len(inst.Operands) == 0 {
			// FORWARD_ARGS-suppressed operand: the marker address isn't known
			// statically, so it cannot be preinitialized here.
			continue
		}
		addr := operandInt(inst.Operands, 0)
		if addr == 0 {
			return vmerr.New(vmerr.ReservedAccess, "MAKE_MARKER cannot target reserved address 0")
		}
		if fr.Memory.HasMarker(addr) {
			continue
		}
		if err := fr.Memory.Set(addr, types.NewMarker(m.ip)); err != nil {
			return err
		}
	}

	m.ip = saved
	return nil
}

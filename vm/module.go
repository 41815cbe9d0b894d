package vm

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Supercolbat/binarypp/vm/decoder"
	"github.com/Supercolbat/binarypp/vm/frame"
	"github.com/Supercolbat/binarypp/vm/stack"
	"github.com/Supercolbat/binarypp/vm/types"
	"github.com/Supercolbat/binarypp/vm/vmerr"
)

// execImportModule pops a path Str, decodes the file it names (resolved
// relative to the importing frame's own source directory) into a new
// frame, and runs that frame to completion in an isolated sub-Machine so
// its top-level code can populate its own memory and markers before the
// importer ever touches it. The sub-Machine gets its own stack: an
// imported module's initialization must not see or leave behind anything
// on the importer's operand stack. The new frame's index is recorded at
// memory[addr] so PUSH_STACK_MODULE and GOTO_MODULE can find it again.
func (m *Machine) execImportModule(fr *frame.Frame, args []types.Value) error {
	addr, err := argAddr(args, 0)
	if err != nil {
		return err
	}
	pathVal, err := m.Stack.Pop()
	if err != nil {
		return err
	}
	path, ok := pathVal.(types.Str)
	if !ok {
		return vmerr.New(vmerr.TypeMismatch, "IMPORT_MODULE path must be a str, got %s", pathVal.Kind())
	}

	resolved := string(path)
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(fr.SourcePath), resolved)
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return vmerr.New(vmerr.ImportNotFound, "%s", err)
	}
	code, err := decoder.Decode(data)
	if err != nil {
		return err
	}

	imported := frame.New(resolved, code)
	sub := &Machine{
		Frames: []*frame.Frame{imported},
		Stack:  stack.New(),
		flags:  m.flags,
		Stdout: m.Stdout,
		Stderr: m.Stderr,
		Stdin:  m.Stdin,
	}
	sub.ip = types.Pointer{Frame: 0, Inst: -1}
	sub.lastGoto = types.Pointer{Frame: 0, Inst: 0}
	if err := sub.Run(context.Background()); err != nil {
		return err
	}

	// Markers installed while the module ran in the sub-Machine name its
	// frame 0; rebase them onto the frame index the module gets here.
	newIdx := len(m.Frames)
	for cell, v := range imported.Memory.Snapshot() {
		if mk, ok := v.(types.Marker); ok && mk.Frame == 0 {
			mk.Frame = uint32(newIdx)
			if err := imported.Memory.Set(cell, mk); err != nil {
				return err
			}
		}
	}
	m.Frames = append(m.Frames, imported)
	return fr.Memory.Set(addr, types.Int(newIdx))
}

// moduleMemory resolves the two operands shared by PUSH_STACK_MODULE and
// GOTO_MODULE: a memory address holding a previously imported frame's
// index, and an address inside that frame's own memory. It returns that
// target frame's memory cell's raw value; callers decide for themselves
// what kind of value they require.
func (m *Machine) moduleMemory(fr *frame.Frame, args []types.Value) (types.Value, int, error) {
	moduleAddr, err := argAddr(args, 0)
	if err != nil {
		return nil, 0, err
	}
	markerAddr, err := argAddr(args, 1)
	if err != nil {
		return nil, 0, err
	}
	idxVal, err := fr.Memory.Get(moduleAddr)
	if err != nil {
		return nil, 0, err
	}
	idx, ok := idxVal.(types.Int)
	if !ok {
		return nil, 0, vmerr.New(vmerr.ImportNotFound, "memory[%d] does not name an imported module", moduleAddr)
	}
	if idx < 0 || int(idx) >= len(m.Frames) {
		return nil, 0, vmerr.New(vmerr.ImportNotFound, "module frame %d does not exist", idx)
	}
	target := m.Frames[idx]
	v, err := target.Memory.Get(markerAddr)
	if err != nil {
		return nil, 0, err
	}
	return v, int(idx), nil
}

// execPushStackModule pushes the Value held at memory[markerAddr] inside
// an imported module's memory onto the caller's stack, exactly like a
// local LOAD_MEMORY: any value kind, no marker requirement.
func (m *Machine) execPushStackModule(args []types.Value) error {
	fr := m.currentFrame()
	v, _, err := m.moduleMemory(fr, args)
	if err != nil {
		return err
	}
	m.Stack.Push(v)
	return nil
}

// execGotoModule transfers execution into an imported module at one of
// its markers, switching the instruction pointer's frame in the process.
func (m *Machine) execGotoModule(args []types.Value) error {
	fr := m.currentFrame()
	v, idx, err := m.moduleMemory(fr, args)
	if err != nil {
		return err
	}
	marker, ok := v.(types.Marker)
	if !ok {
		markerAddr, _ := argAddr(args, 1)
		return vmerr.New(vmerr.BadMarker, "module %d memory[%d] is not a marker", idx, markerAddr)
	}
	m.lastGoto = m.ip
	m.ip = marker.Pointer
	return nil
}

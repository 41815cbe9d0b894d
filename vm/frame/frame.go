// Package frame implements one module's execution context: its decoded
// code, its own memory (which doubles as its marker symbol table), its
// pending forwarded-argument slot and its active conditional-skip target.
package frame

import (
	"github.com/Supercolbat/binarypp/vm/memory"
	"github.com/Supercolbat/binarypp/vm/types"
)

// Frame is one imported module's (or the top-level program's) execution
// context. Frame 0 is the user's program; IMPORT_MODULE allocates the rest.
type Frame struct {
	// SourcePath is the filesystem path this frame's code was decoded from,
	// used only to resolve IMPORT_MODULE targets relative to it.
	SourcePath string

	Code   []Instruction
	Memory *memory.Memory

	// ForwardedArgs holds the operand(s) popped by FORWARD_ARGS for the very
	// next instruction dispatched in this frame. It is kept on the frame,
	// not on the machine, so that switching frames (via IMPORT_MODULE or
	// GOTO_MODULE) never leaks one frame's pending forward into another's.
	ForwardedArgs []types.Value

	// CondTarget is the instruction index an active IF_RUN_NEXT region ends
	// at, or -1 when no region is pending.
	CondTarget int64
}

// New returns a Frame ready to execute code, with fresh, empty memory.
func New(sourcePath string, code []Instruction) *Frame {
	return &Frame{
		SourcePath: sourcePath,
		Code:       code,
		Memory:     memory.New(),
		CondTarget: -1,
	}
}

// Len returns the number of decoded instructions in this frame's code.
func (f *Frame) Len() int { return len(f.Code) }

// Fetch advances ip by one instruction and returns it, or ok=false when ip
// already addresses the last instruction in the frame.
func (f *Frame) Fetch(ip *types.Pointer) (Instruction, bool) {
	if ip.Inst+1 >= int64(len(f.Code)) {
		return Instruction{}, false
	}
	ip.Inst++
	return f.Code[ip.Inst], true
}

// TakeForwardedArgs returns the pending forwarded operands, if any, and
// clears the pending slot. The second return value reports whether any
// were pending.
func (f *Frame) TakeForwardedArgs() ([]types.Value, bool) {
	if len(f.ForwardedArgs) == 0 {
		return nil, false
	}
	args := f.ForwardedArgs
	f.ForwardedArgs = nil
	return args, true
}

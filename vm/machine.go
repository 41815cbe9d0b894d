// Package vm implements the binarypp bytecode virtual machine: instruction
// pointer management, opcode dispatch, marker preinitialization, module
// import and step-mode tracing.
package vm

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Supercolbat/binarypp/vm/frame"
	"github.com/Supercolbat/binarypp/vm/stack"
	"github.com/Supercolbat/binarypp/vm/types"
)

// Flags is the CLI contract consumed by the core: everything the front-end
// may configure the Machine with.
type Flags struct {
	// Step enables step-mode tracing: for each dispatched instruction, a
	// short trace is printed and execution blocks for an acknowledgement
	// line on Stdin.
	Step bool
}

// Machine holds the complete runtime state of a running binarypp program:
// its frames (one per imported module), the shared operand stack, the
// instruction pointer, the last-goto return pointer and step-mode flag.
type Machine struct {
	Frames   []*frame.Frame
	Stack    *stack.Stack
	ip       types.Pointer
	lastGoto types.Pointer
	flags    Flags

	// Stdout, Stderr and Stdin are the I/O streams WRITE_TO, READ_FROM and
	// step-mode tracing use for address 0. They default to the OS streams
	// but are overridable, mainly so tests can capture output without
	// touching the real console.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  *bufio.Reader
}

// New returns a Machine ready to load and run a top-level program sourced
// from sourcePath (used only to resolve relative IMPORT_MODULE targets).
func New(sourcePath string, flags Flags) *Machine {
	m := &Machine{
		Stack:  stack.New(),
		flags:  flags,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  bufio.NewReader(os.Stdin),
	}
	m.Frames = []*frame.Frame{frame.New(sourcePath, nil)}
	m.ip = types.Pointer{Frame: 0, Inst: -1}
	m.lastGoto = types.Pointer{Frame: 0, Inst: 0}
	return m
}

// Load installs code as frame 0's program. It must be called before Run.
func (m *Machine) Load(code []frame.Instruction) {
	m.Frames[0].Code = code
}

// currentFrame returns the frame currently addressed by the instruction
// pointer.
func (m *Machine) currentFrame() *frame.Frame {
	return m.Frames[m.ip.Frame]
}

// traceLine writes one step-mode trace as three lines, "Inst: OP args
// (forwarded)", "Mem: ..." and "Stk: ...", and blocks for an
// acknowledgement line.
func (m *Machine) traceLine(inst frame.Instruction, args []types.Value, fr *frame.Frame) error {
	skip := ""
	if fr.CondTarget >= 0 {
		skip = fmt.Sprintf(" %d", fr.CondTarget-m.ip.Inst)
	}
	fmt.Fprintf(m.Stdout, "\nInst: %s %v (%v)%s\n", inst.Opcode, args, fr.ForwardedArgs, skip)
	fmt.Fprintf(m.Stdout, "Mem: %v\nStk: %v\n", fr.Memory.Snapshot(), m.Stack.Snapshot())
	_, err := m.Stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}

// operandInt reads operand i as a raw byte value, for instructions whose
// operand is always inline (never subject to argument forwarding), such as
// a MAKE_MARKER address discovered during preinitialization.
func operandInt(operands []byte, i int) int {
	return int(operands[i])
}

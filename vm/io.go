package vm

import (
	"bufio"
	"io"
	"os"

	"github.com/Supercolbat/binarypp/vm/frame"
	"github.com/Supercolbat/binarypp/vm/types"
	"github.com/Supercolbat/binarypp/vm/vmerr"
)

// fileAt resolves addr to an open File held in fr's memory.
func fileAt(fr *frame.Frame, addr int) (types.File, error) {
	v, err := fr.Memory.Get(addr)
	if err != nil {
		return types.File{}, err
	}
	f, ok := v.(types.File)
	if !ok {
		return types.File{}, vmerr.New(vmerr.BadFileHandle, "memory[%d] does not hold an open file", addr)
	}
	if f.Handle == nil {
		return types.File{}, vmerr.New(vmerr.BadFileHandle, "memory[%d] holds a closed file", addr)
	}
	return f, nil
}

// execReadFrom pops a terminator byte off the stack, then reads a
// terminated (or EOF-ended) run of bytes from address 0 (stdin) or an open
// file using that terminator, pushing the result as a Str with the
// terminator stripped.
func (m *Machine) execReadFrom(fr *frame.Frame, args []types.Value) error {
	addr, err := argAddr(args, 0)
	if err != nil {
		return err
	}
	termVal, err := m.Stack.Pop()
	if err != nil {
		return err
	}
	term, err := asTerminator(termVal)
	if err != nil {
		return err
	}
	if addr == 0 {
		line, err := readUntil(m.Stdin, term)
		if err != nil {
			return err
		}
		m.Stack.Push(types.NewStr(line))
		return nil
	}
	f, err := fileAt(fr, addr)
	if err != nil {
		return err
	}
	data, err := readUntil(bufio.NewReader(f.Handle), term)
	if err != nil {
		return err
	}
	m.Stack.Push(types.NewStr(data))
	return nil
}

// asTerminator narrows a popped Value to the single byte READ_FROM reads
// up to.
func asTerminator(v types.Value) (byte, error) {
	n, ok := v.(types.Int)
	if !ok {
		return 0, vmerr.New(vmerr.TypeMismatch, "READ_FROM terminator must be an int, got %s", v.Kind())
	}
	return byte(n), nil
}

// execReadCharFrom reads a single byte from address 0 (stdin) or an open
// file. Stdin pushes the byte as an Int (so it composes directly with
// arithmetic, matching ord() on the original's stdin read); a file pushes
// a one-byte Str instead. Reading past EOF pushes a sentinel rather than
// erroring: Int(-1) for stdin, which no byte can produce and which is
// truthy, and an empty, falsy Str for a file.
func (m *Machine) execReadCharFrom(fr *frame.Frame, args []types.Value) error {
	addr, err := argAddr(args, 0)
	if err != nil {
		return err
	}
	if addr == 0 {
		c, err := m.Stdin.ReadByte()
		if err == io.EOF {
			m.Stack.Push(types.Int(-1))
			return nil
		}
		if err != nil {
			return err
		}
		m.Stack.Push(types.Int(c))
		return nil
	}
	f, err := fileAt(fr, addr)
	if err != nil {
		return err
	}
	var buf [1]byte
	n, rerr := f.Handle.Read(buf[:])
	if n == 0 {
		if rerr == io.EOF {
			m.Stack.Push(types.Str(nil))
			return nil
		}
		if rerr != nil {
			return rerr
		}
	}
	m.Stack.Push(types.StrFromByte(buf[0]))
	return nil
}

// execWriteTo pops the stack top and writes it to address 0 (stdout) or an
// open file. An Int is written as the single byte it codes for (chr(n) in
// the original), not its decimal String() form; Str writes its raw bytes
// and Bool writes "True"/"False", both via String() as before.
func (m *Machine) execWriteTo(fr *frame.Frame, args []types.Value) error {
	addr, err := argAddr(args, 0)
	if err != nil {
		return err
	}
	v, err := m.Stack.Pop()
	if err != nil {
		return err
	}
	data := []byte(v.String())
	if n, ok := v.(types.Int); ok {
		data = []byte{byte(n)}
	}
	if addr == 0 {
		_, err := m.Stdout.Write(data)
		return err
	}
	f, err := fileAt(fr, addr)
	if err != nil {
		return err
	}
	_, err = f.Handle.Write(data)
	return err
}

// execOpenFile pops a path Str off the stack, opens it per the mode named
// by the instruction's operand index into types.Modes, and pushes the
// resulting File. The caller is responsible for STORE_MEMORY-ing it
// somewhere before the handle would otherwise be lost.
func (m *Machine) execOpenFile(args []types.Value) error {
	modeIdx, err := argAddr(args, 0)
	if err != nil {
		return err
	}
	if modeIdx < 0 || modeIdx >= len(types.Modes) {
		return vmerr.New(vmerr.BadFileMode, "unknown file mode index %d", modeIdx)
	}
	pathVal, err := m.Stack.Pop()
	if err != nil {
		return err
	}
	path, ok := pathVal.(types.Str)
	if !ok {
		return vmerr.New(vmerr.TypeMismatch, "OPEN_FILE path must be a str, got %s", pathVal.Kind())
	}
	mode := types.Modes[modeIdx]
	flag, perm, err := types.OpenMode(mode)
	if err != nil {
		return vmerr.New(vmerr.BadFileMode, "%s", err)
	}
	handle, err := os.OpenFile(string(path), flag, perm)
	if err != nil {
		return vmerr.New(vmerr.BadFileHandle, "%s", err)
	}
	m.Stack.Push(types.File{Handle: handle, Mode: mode})
	return nil
}

// readUntil reads from r until term is seen (consumed but not included in
// the result) or EOF, whichever comes first; EOF with no bytes read yields
// an empty, non-error result, matching terminator-or-EOF semantics rather
// than treating EOF as a failure.
func readUntil(r interface {
	ReadBytes(delim byte) ([]byte, error)
}, term byte) ([]byte, error) {
	data, err := r.ReadBytes(term)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if n := len(data); n > 0 && data[n-1] == term {
		data = data[:n-1]
	}
	return data, nil
}

package vm

import (
	"github.com/Supercolbat/binarypp/vm/frame"
	"github.com/Supercolbat/binarypp/vm/opcode"
	"github.com/Supercolbat/binarypp/vm/types"
	"github.com/Supercolbat/binarypp/vm/vmerr"
)

// dispatch executes a single decoded instruction against the current
// machine state.
func (m *Machine) dispatch(fr *frame.Frame, inst frame.Instruction, args []types.Value) error {
	switch inst.Opcode {
	case opcode.POP_STACK:
		_, err := m.Stack.Pop()
		return err

	case opcode.PUSH_STACK:
		n, err := argAddr(args, 0)
		if err != nil {
			return err
		}
		m.Stack.Push(types.Int(n))
		return nil

	case opcode.PUSH_STRING_STACK:
		m.Stack.Push(types.NewStr(operandsToBytes(args)))
		return nil

	case opcode.PUSH_LONG_STACK:
		var sum int64
		for _, v := range args {
			n, err := argAddr([]types.Value{v}, 0)
			if err != nil {
				return err
			}
			sum += int64(n)
		}
		m.Stack.Push(types.Int(sum))
		return nil

	case opcode.DUP_TOP:
		v, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		m.Stack.Push(v)
		m.Stack.Push(v)
		return nil

	case opcode.ROT_TWO:
		return m.rotTwo()

	case opcode.ROT_THREE:
		return m.rotThree()

	case opcode.LOAD_MEMORY:
		return m.execLoadMemory(fr, args)

	case opcode.STORE_MEMORY:
		return m.execStoreMemory(fr, args)

	case opcode.READ_FROM:
		return m.execReadFrom(fr, args)

	case opcode.READ_CHAR_FROM:
		return m.execReadCharFrom(fr, args)

	case opcode.WRITE_TO:
		return m.execWriteTo(fr, args)

	case opcode.OPEN_FILE:
		return m.execOpenFile(args)

	case opcode.MAKE_MARKER:
		return m.execMakeMarker(fr, args)

	case opcode.GOTO_MARKER:
		return m.execGotoMarker(fr, args)

	case opcode.IF_RUN_NEXT:
		return m.execIfRunNext(fr, args)

	case opcode.SKIP_NEXT:
		n, err := argAddr(args, 0)
		if err != nil {
			return err
		}
		m.ip.Inst += int64(n)
		return nil

	case opcode.GO_BACK:
		n, err := argAddr(args, 0)
		if err != nil {
			return err
		}
		m.ip.Inst -= int64(n) + 1
		return nil

	case opcode.FORWARD_ARGS:
		return m.execForwardArgs(fr)

	case opcode.IMPORT_MODULE:
		return m.execImportModule(fr, args)

	case opcode.PUSH_STACK_MODULE:
		return m.execPushStackModule(args)

	case opcode.GOTO_MODULE:
		return m.execGotoModule(args)

	default:
		if op := m.arithOrCompare(inst.Opcode); op != nil {
			return op()
		}
		return vmerr.New(vmerr.UnknownOpcode, "unknown instruction: %s", inst.Opcode)
	}
}

// rotTwo implements …, x, y → …, y, x.
func (m *Machine) rotTwo() error {
	y, err := m.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := m.Stack.Pop()
	if err != nil {
		return err
	}
	m.Stack.Push(y)
	m.Stack.Push(x)
	return nil
}

// rotThree implements …, x, y, z → …, z, x, y.
func (m *Machine) rotThree() error {
	z, err := m.Stack.Pop()
	if err != nil {
		return err
	}
	y, err := m.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := m.Stack.Pop()
	if err != nil {
		return err
	}
	m.Stack.Push(z)
	m.Stack.Push(x)
	m.Stack.Push(y)
	return nil
}

// operandsToBytes flattens a PUSH_STRING_STACK operand list (each a small
// Int in 0..255) back into raw bytes.
func operandsToBytes(args []types.Value) []byte {
	out := make([]byte, len(args))
	for i, v := range args {
		if n, ok := v.(types.Int); ok {
			out[i] = byte(n)
		}
	}
	return out
}

package vm

import (
	"context"

	"github.com/Supercolbat/binarypp/vm/types"
	"github.com/Supercolbat/binarypp/vm/vmerr"
)

// Run preinitializes frame 0's markers and then executes the dispatch loop
// to completion: fetch one instruction from the current frame, resolve its
// operands (forwarded or inline), execute it, repeat until fetch reports
// there is nothing left. Run is fatal-on-error: the first runtime error
// stops execution and is returned to the caller.
func (m *Machine) Run(ctx context.Context) error {
	if err := m.preinitialize(0); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return vmerr.New(vmerr.Cancelled, "%s", ctx.Err())
		default:
		}

		fr := m.currentFrame()
		inst, ok := fr.Fetch(&m.ip)
		if !ok {
			return nil
		}

		if m.ip.Inst > fr.CondTarget {
			fr.CondTarget = -1
		}

		args, had := fr.TakeForwardedArgs()
		if !had {
			args = inlineValues(inst.Operands)
		}

		if m.flags.Step {
			if err := m.traceLine(inst, args, fr); err != nil {
				return err
			}
		}

		if err := m.dispatch(fr, inst, args); err != nil {
			return err
		}
	}
}

// inlineValues converts an instruction's raw byte operands into Values, so
// that dispatch can treat inline and forwarded operands uniformly.
func inlineValues(operands []byte) []types.Value {
	if len(operands) == 0 {
		return nil
	}
	vals := make([]types.Value, len(operands))
	for i, b := range operands {
		vals[i] = types.Int(b)
	}
	return vals
}

// argAddr extracts operand i as an address/count integer. Forwarded
// operands come off the stack and may be any Value kind, so this fails
// with TypeMismatch rather than panicking on a bad assertion.
func argAddr(args []types.Value, i int) (int, error) {
	v, ok := args[i].(types.Int)
	if !ok {
		return 0, vmerr.New(vmerr.TypeMismatch, "expected an integer operand, got %s", args[i].Kind())
	}
	return int(v), nil
}

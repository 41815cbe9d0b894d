package vm

import (
	"github.com/Supercolbat/binarypp/vm/opcode"
	"github.com/Supercolbat/binarypp/vm/types"
	"github.com/Supercolbat/binarypp/vm/vmerr"
)

// arithOrCompare returns a thunk executing op against the current stack,
// or nil if op is neither an arithmetic, bitwise nor comparison opcode.
// Kept separate from dispatch's switch because every one of these ops
// shares the same pop-two-push-one (or pop-one-push-one, for BINARY_NOT)
// shape.
func (m *Machine) arithOrCompare(op opcode.Opcode) func() error {
	switch op {
	case opcode.BINARY_ADD:
		return m.binaryIntOp(func(a, b int64) (int64, error) { return a + b, nil })
	case opcode.BINARY_SUBTRACT:
		return m.binaryIntOp(func(a, b int64) (int64, error) { return a - b, nil })
	case opcode.BINARY_MULTIPLY:
		return m.binaryIntOp(func(a, b int64) (int64, error) { return a * b, nil })
	case opcode.BINARY_POWER:
		return m.binaryIntOp(intPow)
	case opcode.BINARY_TRUE_DIVIDE:
		return m.binaryIntOp(func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, vmerr.New(vmerr.TypeMismatch, "division by zero")
			}
			return a / b, nil
		})
	case opcode.BINARY_FLOOR_DIVIDE:
		return m.binaryIntOp(floorDiv)
	case opcode.BINARY_MODULO:
		return m.binaryIntOp(floorMod)
	case opcode.BINARY_AND:
		return m.binaryIntOp(func(a, b int64) (int64, error) { return a & b, nil })
	case opcode.BINARY_OR:
		return m.binaryIntOp(func(a, b int64) (int64, error) { return a | b, nil })
	case opcode.BINARY_XOR:
		return m.binaryIntOp(func(a, b int64) (int64, error) { return a ^ b, nil })
	case opcode.BINARY_LEFT_SHIFT:
		return m.binaryIntOp(func(a, b int64) (int64, error) { return a << uint(b), nil })
	case opcode.BINARY_RIGHT_SHIFT:
		return m.binaryIntOp(func(a, b int64) (int64, error) { return a >> uint(b), nil })
	case opcode.BINARY_NOT:
		return m.unaryIntOp(func(a int64) int64 { return ^a })

	case opcode.EQUALS_TO:
		return m.compareOp(func(a, b types.Value) bool { return valuesEqual(a, b) })
	case opcode.NOT_EQUAL_TO:
		return m.compareOp(func(a, b types.Value) bool { return !valuesEqual(a, b) })
	case opcode.LESS_THAN:
		return m.orderOp(func(a, b int64) bool { return a < b })
	case opcode.LESS_EQUAL_THAN:
		return m.orderOp(func(a, b int64) bool { return a <= b })
	case opcode.GREATER_THAN:
		return m.orderOp(func(a, b int64) bool { return a > b })
	case opcode.GREATER_EQUAL_THAN:
		return m.orderOp(func(a, b int64) bool { return a >= b })
	}
	return nil
}

// asInt requires v to be an Int, failing with TypeMismatch otherwise.
// Arithmetic never coerces Bool or Str operands: a Bool is a distinct kind
// from the Int it happens to print similarly to in other contexts.
func asInt(v types.Value) (int64, error) {
	n, ok := v.(types.Int)
	if !ok {
		return 0, vmerr.New(vmerr.TypeMismatch, "expected an int operand, got %s", v.Kind())
	}
	return int64(n), nil
}

func (m *Machine) binaryIntOp(f func(a, b int64) (int64, error)) func() error {
	return func() error {
		b, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		a, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		av, err := asInt(a)
		if err != nil {
			return err
		}
		bv, err := asInt(b)
		if err != nil {
			return err
		}
		r, err := f(av, bv)
		if err != nil {
			return err
		}
		m.Stack.Push(types.Int(r))
		return nil
	}
}

func (m *Machine) unaryIntOp(f func(a int64) int64) func() error {
	return func() error {
		a, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		av, err := asInt(a)
		if err != nil {
			return err
		}
		m.Stack.Push(types.Int(f(av)))
		return nil
	}
}

func (m *Machine) compareOp(f func(a, b types.Value) bool) func() error {
	return func() error {
		b, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		a, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		m.Stack.Push(types.Bool(f(a, b)))
		return nil
	}
}

func (m *Machine) orderOp(f func(a, b int64) bool) func() error {
	return func() error {
		b, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		a, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		av, err := asInt(a)
		if err != nil {
			return err
		}
		bv, err := asInt(b)
		if err != nil {
			return err
		}
		m.Stack.Push(types.Bool(f(av, bv)))
		return nil
	}
}

// valuesEqual compares two Values for EQUALS_TO/NOT_EQUAL_TO. Values of
// different kinds are never equal; within a kind, equality is structural.
func valuesEqual(a, b types.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case types.Int:
		bv := b.(types.Int)
		return av == bv
	case types.Bool:
		bv := b.(types.Bool)
		return av == bv
	case types.Str:
		bv := b.(types.Str)
		return string(av) == string(bv)
	case types.Marker:
		bv := b.(types.Marker)
		return av.Pointer == bv.Pointer
	default:
		return a.String() == b.String()
	}
}

// intPow computes a**b for non-negative b by repeated multiplication; a negative
// exponent has no integer result and is a TypeMismatch.
func intPow(a, b int64) (int64, error) {
	if b < 0 {
		return 0, vmerr.New(vmerr.TypeMismatch, "negative exponent %d has no integer result", b)
	}
	var r int64 = 1
	for ; b > 0; b-- {
		r *= a
	}
	return r, nil
}

// floorDiv divides truncating toward negative infinity, matching the
// source language's "//" rather than Go's truncate-toward-zero "/".
func floorDiv(a, b int64) (int64, error) {
	if b == 0 {
		return 0, vmerr.New(vmerr.TypeMismatch, "division by zero")
	}
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q, nil
}

// floorMod is the modulo consistent with floorDiv, so that
// a == floorDiv(a,b)*b + floorMod(a,b) and the result always carries the
// divisor's sign.
func floorMod(a, b int64) (int64, error) {
	if b == 0 {
		return 0, vmerr.New(vmerr.TypeMismatch, "division by zero")
	}
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r, nil
}

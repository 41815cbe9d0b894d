package vm

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Supercolbat/binarypp/vm/frame"
	"github.com/Supercolbat/binarypp/vm/opcode"
	"github.com/stretchr/testify/require"
)

func inst(op opcode.Opcode, operands ...byte) frame.Instruction {
	return frame.Instruction{Opcode: op, Operands: operands}
}

func runProgram(t *testing.T, code []frame.Instruction, stdin string) (stdout string) {
	t.Helper()
	m := New("test.bin", Flags{})
	var out bytes.Buffer
	m.Stdout = &out
	m.Stdin = bufio.NewReader(strings.NewReader(stdin))
	m.Load(code)
	require.NoError(t, m.Run(context.Background()))
	return out.String()
}

func TestArithmeticAndWrite(t *testing.T) {
	code := []frame.Instruction{
		inst(opcode.PUSH_STACK, 3),
		inst(opcode.PUSH_STACK, 4),
		inst(opcode.BINARY_ADD),
		inst(opcode.WRITE_TO, 0),
	}
	require.Equal(t, string([]byte{7}), runProgram(t, code, ""))
}

func TestMemoryStoreLoad(t *testing.T) {
	code := []frame.Instruction{
		inst(opcode.PUSH_STACK, 42),
		inst(opcode.STORE_MEMORY, 5),
		inst(opcode.LOAD_MEMORY, 5),
		inst(opcode.WRITE_TO, 0),
	}
	require.Equal(t, string([]byte{42}), runProgram(t, code, ""))
}

func TestReservedMemoryAccessFails(t *testing.T) {
	code := []frame.Instruction{
		inst(opcode.LOAD_MEMORY, 0),
	}
	m := New("test.bin", Flags{})
	m.Load(code)
	err := m.Run(context.Background())
	require.Error(t, err)
}

// TestMarkerLoopCountdown exercises MAKE_MARKER/GOTO_MARKER driven looping:
// it counts a memory cell down from 3 to 0, writing each value before the
// decrement, and stops as soon as IF_RUN_NEXT sees the decremented value
// go falsy, skipping the backward jump that would otherwise repeat.
func TestMarkerLoopCountdown(t *testing.T) {
	code := []frame.Instruction{
		inst(opcode.PUSH_STACK, 3),   // 0
		inst(opcode.STORE_MEMORY, 1), // 1
		inst(opcode.MAKE_MARKER, 10), // 2: marker, resumes at 3
		inst(opcode.LOAD_MEMORY, 1),  // 3
		inst(opcode.WRITE_TO, 0),     // 4
		inst(opcode.LOAD_MEMORY, 1),  // 5
		inst(opcode.PUSH_STACK, 1),   // 6
		inst(opcode.BINARY_SUBTRACT), // 7
		inst(opcode.DUP_TOP),         // 8
		inst(opcode.STORE_MEMORY, 1), // 9
		inst(opcode.IF_RUN_NEXT, 1),  // 10
		inst(opcode.GOTO_MARKER, 10), // 11
	}
	require.Equal(t, string([]byte{3, 2, 1}), runProgram(t, code, ""))
}

func TestForwardArgsSuppliesPoppedOperand(t *testing.T) {
	code := []frame.Instruction{
		inst(opcode.PUSH_STACK, 65), // the value WRITE_TO will print
		inst(opcode.PUSH_STACK, 0),  // the address WRITE_TO will take by forwarding
		inst(opcode.FORWARD_ARGS),
		inst(opcode.WRITE_TO), // address operand forwarded from the stack, not inline
	}
	require.Equal(t, "A", runProgram(t, code, ""))
}

func TestReadFromStdinLine(t *testing.T) {
	code := []frame.Instruction{
		inst(opcode.PUSH_STACK, '\n'),
		inst(opcode.READ_FROM, 0),
		inst(opcode.WRITE_TO, 0),
	}
	require.Equal(t, "hello", runProgram(t, code, "hello\n"))
}

func TestComparisonPushesBool(t *testing.T) {
	code := []frame.Instruction{
		inst(opcode.PUSH_STACK, 4),
		inst(opcode.PUSH_STACK, 4),
		inst(opcode.EQUALS_TO),
		inst(opcode.WRITE_TO, 0),
	}
	require.Equal(t, "True", runProgram(t, code, ""))
}

func TestFloorDivRoundsTowardNegativeInfinity(t *testing.T) {
	code := []frame.Instruction{
		inst(opcode.PUSH_STACK, 0),
		inst(opcode.PUSH_STACK, 7),
		inst(opcode.BINARY_SUBTRACT), // -7
		inst(opcode.PUSH_STACK, 2),
		inst(opcode.BINARY_FLOOR_DIVIDE), // -4, not Go's truncating -3
		inst(opcode.WRITE_TO, 0),
	}
	want := int64(-4)
	require.Equal(t, string([]byte{byte(want)}), runProgram(t, code, ""))
}

func TestModuloCarriesDivisorSign(t *testing.T) {
	code := []frame.Instruction{
		inst(opcode.PUSH_STACK, 0),
		inst(opcode.PUSH_STACK, 7),
		inst(opcode.BINARY_SUBTRACT), // -7
		inst(opcode.PUSH_STACK, 2),
		inst(opcode.BINARY_MODULO), // 1, not Go's -1
		inst(opcode.WRITE_TO, 0),
	}
	require.Equal(t, string([]byte{1}), runProgram(t, code, ""))
}

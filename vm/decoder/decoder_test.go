package decoder

import (
	"strconv"
	"testing"

	"github.com/Supercolbat/binarypp/vm/opcode"
	"github.com/Supercolbat/binarypp/vm/vmerr"
	"github.com/stretchr/testify/require"
)

func b(op opcode.Opcode) byte { return byte(op) }

func TestDecodeBytesNoArg(t *testing.T) {
	code := []byte{b(opcode.POP_STACK), b(opcode.DUP_TOP)}
	out, err := DecodeBytes(code)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, opcode.POP_STACK, out[0].Opcode)
	require.Empty(t, out[0].Operands)
	require.Equal(t, opcode.DUP_TOP, out[1].Opcode)
}

func TestDecodeBytesOneArg(t *testing.T) {
	code := []byte{b(opcode.PUSH_STACK), 7}
	out, err := DecodeBytes(code)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, []byte{7}, out[0].Operands)
}

func TestDecodeBytesTwoArg(t *testing.T) {
	code := []byte{b(opcode.PUSH_STACK_MODULE), 1, 2}
	out, err := DecodeBytes(code)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, []byte{1, 2}, out[0].Operands)
}

func TestDecodeBytesMultiArg(t *testing.T) {
	code := []byte{b(opcode.PUSH_STRING_STACK), 'h', 'i', 0, b(opcode.POP_STACK)}
	out, err := DecodeBytes(code)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, []byte("hi"), out[0].Operands)
	require.Equal(t, opcode.POP_STACK, out[1].Opcode)
}

func TestDecodeBytesMissingTerminator(t *testing.T) {
	code := []byte{b(opcode.PUSH_STRING_STACK), 'h', 'i'}
	_, err := DecodeBytes(code)
	require.ErrorIs(t, err, vmerr.Of(vmerr.MissingTerminator))
}

func TestDecodeBytesTruncatedOneArg(t *testing.T) {
	code := []byte{b(opcode.PUSH_STACK)}
	_, err := DecodeBytes(code)
	require.ErrorIs(t, err, vmerr.Of(vmerr.TruncatedInstruction))
}

func TestDecodeBytesUnknownOpcode(t *testing.T) {
	_, err := DecodeBytes([]byte{255})
	require.ErrorIs(t, err, vmerr.Of(vmerr.UnknownOpcode))
}

func TestForwardArgsSuppressesInlineOperand(t *testing.T) {
	code := []byte{b(opcode.FORWARD_ARGS), b(opcode.PUSH_STACK), b(opcode.POP_STACK)}
	out, err := DecodeBytes(code)
	require.NoError(t, err)
	require.Len(t, out, 3)
	require.Equal(t, opcode.PUSH_STACK, out[1].Opcode)
	require.Empty(t, out[1].Operands)
	require.Equal(t, opcode.POP_STACK, out[2].Opcode)
}

func TestDecodeSelectsTextualMode(t *testing.T) {
	data := []byte("00000000 " + byteToBinary(b(opcode.POP_STACK)))
	out, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, opcode.POP_STACK, out[0].Opcode)
}

func TestDecodeSelectsCompiledMode(t *testing.T) {
	data := []byte{b(opcode.POP_STACK), b(opcode.DUP_TOP)}
	out, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, out, 2)
}

func byteToBinary(v byte) string {
	s := strconv.FormatUint(uint64(v), 2)
	for len(s) < 8 {
		s = "0" + s
	}
	return s
}

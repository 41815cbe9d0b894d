// Package decoder turns a compiled program's raw bytes, or their textual
// "binary literal" form, into an ordered list of frame.Instruction.
package decoder

import (
	"github.com/Supercolbat/binarypp/vm/frame"
	"github.com/Supercolbat/binarypp/vm/opcode"
	"github.com/Supercolbat/binarypp/vm/vmerr"
)

// textModeMarker is the whitespace-separated token that, when it is the
// very first token of the input, signals that the remainder should be read
// as textual binary literals rather than as compiled bytes directly.
const textModeMarker = "00000000"

// Decode selects between the textual and compiled forms per the leading
// "00000000" marker rule and returns the decoded instruction list.
func Decode(data []byte) ([]frame.Instruction, error) {
	if looksTextual(data) {
		return DecodeText(data)
	}
	return DecodeBytes(data)
}

// looksTextual reports whether the first whitespace-separated token of data
// is exactly the textual mode marker.
func looksTextual(data []byte) bool {
	i := 0
	for i < len(data) && isSpace(data[i]) {
		i++
	}
	start := i
	for i < len(data) && !isSpace(data[i]) {
		i++
	}
	return string(data[start:i]) == textModeMarker
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// DecodeBytes decodes a raw compiled byte stream into an instruction list.
// Each byte is either an opcode or an operand; variable-length MULTI_ARG
// operand lists terminate with a 0x00 byte.
func DecodeBytes(code []byte) ([]frame.Instruction, error) {
	var out []frame.Instruction
	p := 0
	for p < len(code) {
		c := opcode.Opcode(code[p])
		arity, ok := c.Arity()
		if !ok {
			return nil, vmerr.New(vmerr.UnknownOpcode, "unknown opcode %d at byte %d", code[p], p)
		}

		switch arity {
		case opcode.NoArg:
			out = append(out, frame.Instruction{Opcode: c})

		case opcode.OneArg:
			if forwarded(code, p) {
				out = append(out, frame.Instruction{Opcode: c})
				break
			}
			if p+1 >= len(code) {
				return nil, vmerr.New(vmerr.TruncatedInstruction, "%s at byte %d is missing its operand", c, p)
			}
			out = append(out, frame.Instruction{Opcode: c, Operands: []byte{code[p+1]}})
			p++

		case opcode.TwoArg:
			if forwarded(code, p) {
				out = append(out, frame.Instruction{Opcode: c})
				break
			}
			if p+2 >= len(code) {
				return nil, vmerr.New(vmerr.TruncatedInstruction, "%s at byte %d is missing an operand", c, p)
			}
			out = append(out, frame.Instruction{Opcode: c, Operands: []byte{code[p+1], code[p+2]}})
			p += 2

		case opcode.MultiArg:
			operands, consumed, err := readMultiArg(code, p)
			if err != nil {
				return nil, err
			}
			out = append(out, frame.Instruction{Opcode: c, Operands: operands})
			p += consumed
		}

		p++
	}
	return out, nil
}

// forwarded reports whether the opcode at index p in code has its inline
// operand suppressed because the immediately preceding byte was
// FORWARD_ARGS.
func forwarded(code []byte, p int) bool {
	return p > 0 && opcode.Opcode(code[p-1]) == opcode.FORWARD_ARGS
}

// readMultiArg reads the operand list following a MULTI_ARG opcode at index
// p, stopping at (and consuming) the terminating 0 byte. It returns the
// operands and how many extra bytes (beyond the opcode itself) were
// consumed.
func readMultiArg(code []byte, p int) ([]byte, int, error) {
	var operands []byte
	i := p + 1
	for {
		if i >= len(code) {
			return nil, 0, vmerr.New(vmerr.MissingTerminator, "missing null-terminator for instruction at byte %d", p)
		}
		if code[i] == 0 {
			return operands, i - p, nil
		}
		operands = append(operands, code[i])
		i++
	}
}

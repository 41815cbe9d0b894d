package frame

import "github.com/Supercolbat/binarypp/vm/opcode"

// Instruction is one decoded opcode plus its operand list. The operand
// count matches the opcode's arity at decode time, except that an
// instruction immediately preceded by FORWARD_ARGS is recorded with an
// empty operand list: the operand is supplied at execution time from the
// stack instead.
type Instruction struct {
	Opcode   opcode.Opcode
	Operands []byte
}

// Package opcode defines the 8-bit opcode space, its four-way arity
// classification and the mnemonic table used for step-mode tracing and
// disassembly-style diagnostics.
package opcode

import "fmt"

// Opcode is an instruction identifier in 0..255.
type Opcode uint8

//nolint:revive
const (
	POP_STACK Opcode = iota
	PUSH_STACK
	PUSH_STRING_STACK
	PUSH_LONG_STACK
	LOAD_MEMORY
	STORE_MEMORY
	DUP_TOP
	READ_FROM
	READ_CHAR_FROM
	WRITE_TO
	OPEN_FILE
	MAKE_MARKER
	GOTO_MARKER

	BINARY_ADD
	BINARY_SUBTRACT
	BINARY_MULTIPLY
	BINARY_POWER
	BINARY_TRUE_DIVIDE
	BINARY_FLOOR_DIVIDE
	BINARY_MODULO
	BINARY_AND
	BINARY_OR
	BINARY_XOR
	BINARY_NOT
	BINARY_LEFT_SHIFT
	BINARY_RIGHT_SHIFT

	EQUALS_TO
	NOT_EQUAL_TO
	LESS_THAN
	LESS_EQUAL_THAN
	GREATER_THAN
	GREATER_EQUAL_THAN

	IF_RUN_NEXT
	SKIP_NEXT
	GO_BACK
	FORWARD_ARGS

	ROT_TWO
	ROT_THREE

	IMPORT_MODULE
	PUSH_STACK_MODULE
	GOTO_MODULE

	opcodeCount
)

// Arity classifies an opcode by how many operands it takes, which governs
// both decoding and whether FORWARD_ARGS may suppress an inline operand.
type Arity int

const (
	NoArg Arity = iota
	OneArg
	TwoArg
	MultiArg
)

var arities = [opcodeCount]Arity{
	POP_STACK:         NoArg,
	PUSH_STACK:        OneArg,
	PUSH_STRING_STACK: MultiArg,
	PUSH_LONG_STACK:   MultiArg,
	LOAD_MEMORY:       OneArg,
	STORE_MEMORY:      OneArg,
	DUP_TOP:           NoArg,
	READ_FROM:         OneArg,
	READ_CHAR_FROM:    OneArg,
	WRITE_TO:          OneArg,
	OPEN_FILE:         OneArg,
	MAKE_MARKER:       OneArg,
	GOTO_MARKER:       OneArg,

	BINARY_ADD:          NoArg,
	BINARY_SUBTRACT:     NoArg,
	BINARY_MULTIPLY:     NoArg,
	BINARY_POWER:        NoArg,
	BINARY_TRUE_DIVIDE:  NoArg,
	BINARY_FLOOR_DIVIDE: NoArg,
	BINARY_MODULO:       NoArg,
	BINARY_AND:          NoArg,
	BINARY_OR:           NoArg,
	BINARY_XOR:          NoArg,
	BINARY_NOT:          NoArg,
	BINARY_LEFT_SHIFT:   NoArg,
	BINARY_RIGHT_SHIFT:  NoArg,

	EQUALS_TO:          NoArg,
	NOT_EQUAL_TO:       NoArg,
	LESS_THAN:          NoArg,
	LESS_EQUAL_THAN:    NoArg,
	GREATER_THAN:       NoArg,
	GREATER_EQUAL_THAN: NoArg,

	IF_RUN_NEXT:  OneArg,
	SKIP_NEXT:    OneArg,
	GO_BACK:      OneArg,
	FORWARD_ARGS: NoArg,

	ROT_TWO:   NoArg,
	ROT_THREE: NoArg,

	IMPORT_MODULE:     OneArg,
	PUSH_STACK_MODULE: TwoArg,
	GOTO_MODULE:       TwoArg,
}

// Arity returns op's arity class, or ok=false (with a zero Arity) if op is
// not a recognized opcode.
func (op Opcode) Arity() (Arity, bool) {
	if op >= opcodeCount {
		return 0, false
	}
	return arities[op], true
}

var names = [opcodeCount]string{
	POP_STACK:         "POP_STACK",
	PUSH_STACK:        "PUSH_STACK",
	PUSH_STRING_STACK: "PUSH_STRING_STACK",
	PUSH_LONG_STACK:   "PUSH_LONG_STACK",
	LOAD_MEMORY:       "LOAD_MEMORY",
	STORE_MEMORY:      "STORE_MEMORY",
	DUP_TOP:           "DUP_TOP",
	READ_FROM:         "READ_FROM",
	READ_CHAR_FROM:    "READ_CHAR_FROM",
	WRITE_TO:          "WRITE_TO",
	OPEN_FILE:         "OPEN_FILE",
	MAKE_MARKER:       "MAKE_MARKER",
	GOTO_MARKER:       "GOTO_MARKER",

	BINARY_ADD:          "BINARY_ADD",
	BINARY_SUBTRACT:     "BINARY_SUBTRACT",
	BINARY_MULTIPLY:     "BINARY_MULTIPLY",
	BINARY_POWER:        "BINARY_POWER",
	BINARY_TRUE_DIVIDE:  "BINARY_TRUE_DIVIDE",
	BINARY_FLOOR_DIVIDE: "BINARY_FLOOR_DIVIDE",
	BINARY_MODULO:       "BINARY_MODULO",
	BINARY_AND:          "BINARY_AND",
	BINARY_OR:           "BINARY_OR",
	BINARY_XOR:          "BINARY_XOR",
	BINARY_NOT:          "BINARY_NOT",
	BINARY_LEFT_SHIFT:   "BINARY_LEFT_SHIFT",
	BINARY_RIGHT_SHIFT:  "BINARY_RIGHT_SHIFT",

	EQUALS_TO:          "EQUALS_TO",
	NOT_EQUAL_TO:       "NOT_EQUAL_TO",
	LESS_THAN:          "LESS_THAN",
	LESS_EQUAL_THAN:    "LESS_EQUAL_THAN",
	GREATER_THAN:       "GREATER_THAN",
	GREATER_EQUAL_THAN: "GREATER_EQUAL_THAN",

	IF_RUN_NEXT:  "IF_RUN_NEXT",
	SKIP_NEXT:    "SKIP_NEXT",
	GO_BACK:      "GO_BACK",
	FORWARD_ARGS: "FORWARD_ARGS",

	ROT_TWO:   "ROT_TWO",
	ROT_THREE: "ROT_THREE",

	IMPORT_MODULE:     "IMPORT_MODULE",
	PUSH_STACK_MODULE: "PUSH_STACK_MODULE",
	GOTO_MODULE:       "GOTO_MODULE",
}

func (op Opcode) String() string {
	if op < opcodeCount {
		if name := names[op]; name != "" {
			return name
		}
	}
	return fmt.Sprintf("illegal opcode (%d)", op)
}

// Lookup returns the Opcode named by mnemonic (case-sensitive, as written in
// the table above), for disassembly and textual-assembly style tooling.
func Lookup(mnemonic string) (Opcode, bool) {
	return reverseNames.Get(mnemonic)
}

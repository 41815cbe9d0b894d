package opcode

import "github.com/dolthub/swiss"

// reverseNames backs Lookup. It is a swiss.Map rather than a builtin map
// for the same reason the teacher's compiler package reaches for one: a
// name->opcode table is built once and then only queried.
var reverseNames = buildReverseNames()

func buildReverseNames() *swiss.Map[string, Opcode] {
	m := swiss.NewMap[string, Opcode](uint32(opcodeCount))
	for op, name := range names {
		if name == "" {
			continue
		}
		m.Put(name, Opcode(op))
	}
	return m
}

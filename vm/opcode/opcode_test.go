package opcode

import (
	"strings"
	"testing"
)

func TestOpcodeString(t *testing.T) {
	for op := Opcode(0); op < opcodeCount; op++ {
		if names[op] == "" {
			t.Errorf("missing string representation of opcode %d", op)
		}
		if s := op.String(); strings.Contains(s, "illegal") {
			t.Errorf("invalid string representation of opcode %d", op)
		}
	}
	if !strings.Contains(Opcode(255).String(), "illegal") {
		t.Errorf("out-of-range opcode should report illegal, got %q", Opcode(255).String())
	}
}

func TestOpcodeArity(t *testing.T) {
	for op := Opcode(0); op < opcodeCount; op++ {
		if _, ok := op.Arity(); !ok {
			t.Errorf("opcode %s has no arity entry", op)
		}
	}
	if _, ok := Opcode(255).Arity(); ok {
		t.Errorf("out-of-range opcode should report ok=false")
	}
}

func TestLookupRoundTrip(t *testing.T) {
	for op := Opcode(0); op < opcodeCount; op++ {
		got, ok := Lookup(names[op])
		if !ok {
			t.Errorf("Lookup(%q) not found", names[op])
		}
		if got != op {
			t.Errorf("Lookup(%q) = %d, want %d", names[op], got, op)
		}
	}
	if _, ok := Lookup("NOT_A_REAL_OPCODE"); ok {
		t.Errorf("Lookup of unknown mnemonic should fail")
	}
}

package types

// Str is a sequence of byte codepoints (latin-1, not runes), constructible
// from a byte slice, a Go string or a single byte. PUSH_STRING_STACK builds
// one from a null-terminated operand list, and READ_FROM/READ_CHAR_FROM build
// them from bytes read off stdin or a file.
type Str []byte

var _ Value = Str(nil)

// NewStr builds a Str from a byte slice, copying it so later mutation of the
// source slice cannot alias the value.
func NewStr(b []byte) Str {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Str(cp)
}

// StrFromString builds a Str from a Go string.
func StrFromString(s string) Str { return Str(s) }

// StrFromByte builds a single-codepoint Str.
func StrFromByte(b byte) Str { return Str{b} }

func (s Str) String() string { return string(s) }
func (s Str) Kind() Kind     { return KindStr }
func (s Str) Truth() bool    { return len(s) > 0 }

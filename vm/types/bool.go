package types

// Bool is the result of the comparison opcodes (EQUALS_TO, LESS_THAN, etc).
type Bool bool

var _ Value = Bool(false)

func (b Bool) String() string {
	if b {
		return "True"
	}
	return "False"
}

func (b Bool) Kind() Kind  { return KindBool }
func (b Bool) Truth() bool { return bool(b) }

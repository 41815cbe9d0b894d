package types

import "strconv"

// Int is the result of arithmetic and the PUSH_STACK/PUSH_LONG_STACK family
// of opcodes.
type Int int64

var _ Value = Int(0)

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }
func (i Int) Kind() Kind     { return KindInt }
func (i Int) Truth() bool    { return i != 0 }

package types

import "fmt"

// Pointer addresses a single instruction within a specific frame's code.
// Inst == -1 means "before the first instruction"; fetching advances it to 0.
type Pointer struct {
	Frame uint32
	Inst  int64
}

func (p Pointer) String() string { return fmt.Sprintf("(frame=%d, inst=%d)", p.Frame, p.Inst) }

// Marker is a cross-frame code pointer installed by MAKE_MARKER and
// consumed by GOTO_MARKER, PUSH_STACK_MODULE and GOTO_MODULE.
type Marker struct {
	Pointer
}

var _ Value = Marker{}

func NewMarker(p Pointer) Marker { return Marker{Pointer: p} }

func (m Marker) String() string { return "Marker" + m.Pointer.String() }
func (m Marker) Kind() Kind     { return KindMarker }
func (m Marker) Truth() bool    { return true }

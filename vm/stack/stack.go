// Package stack implements the virtual machine's single, process-wide
// operand stack.
package stack

import (
	"github.com/Supercolbat/binarypp/vm/types"
	"github.com/Supercolbat/binarypp/vm/vmerr"
)

// Stack is a LIFO of Values shared by every frame.
type Stack struct {
	vals []types.Value
}

func New() *Stack { return &Stack{} }

func (s *Stack) Push(v types.Value) { s.vals = append(s.vals, v) }

func (s *Stack) Pop() (types.Value, error) {
	if s.IsEmpty() {
		return nil, vmerr.New(vmerr.StackUnderflow, "stack is empty")
	}
	n := len(s.vals) - 1
	v := s.vals[n]
	s.vals = s.vals[:n]
	return v, nil
}

func (s *Stack) IsEmpty() bool { return len(s.vals) == 0 }

func (s *Stack) Len() int { return len(s.vals) }

// Snapshot returns the stack contents from bottom to top, for step-mode
// tracing. Callers must not mutate the returned slice.
func (s *Stack) Snapshot() []types.Value { return s.vals }

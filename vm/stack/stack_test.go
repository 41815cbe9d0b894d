package stack

import (
	"testing"

	"github.com/Supercolbat/binarypp/vm/types"
	"github.com/Supercolbat/binarypp/vm/vmerr"
	"github.com/stretchr/testify/require"
)

func TestPushPopOrder(t *testing.T) {
	s := New()
	require.True(t, s.IsEmpty())

	s.Push(types.Int(1))
	s.Push(types.Int(2))
	s.Push(types.Int(3))
	require.Equal(t, 3, s.Len())

	for _, want := range []types.Int{3, 2, 1} {
		v, err := s.Pop()
		require.NoError(t, err)
		require.Equal(t, want, v)
	}
	require.True(t, s.IsEmpty())
}

func TestPopEmptyFails(t *testing.T) {
	s := New()
	_, err := s.Pop()
	require.ErrorIs(t, err, vmerr.Of(vmerr.StackUnderflow))
}

func TestSnapshotOrder(t *testing.T) {
	s := New()
	s.Push(types.Int(1))
	s.Push(types.Int(2))
	require.Equal(t, []types.Value{types.Int(1), types.Int(2)}, s.Snapshot())
}

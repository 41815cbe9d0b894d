package memory

import (
	"testing"

	"github.com/Supercolbat/binarypp/vm/types"
	"github.com/Supercolbat/binarypp/vm/vmerr"
	"github.com/stretchr/testify/require"
)

func TestReservedAddressZero(t *testing.T) {
	m := New()

	_, err := m.Get(0)
	require.ErrorIs(t, err, vmerr.Of(vmerr.ReservedAccess))

	err = m.Set(0, types.Int(42))
	require.ErrorIs(t, err, vmerr.Of(vmerr.ReservedAccess))
}

func TestAutoGrowZeroFill(t *testing.T) {
	m := New()

	v, err := m.Get(10)
	require.NoError(t, err)
	require.Equal(t, types.Int(0), v)
	require.Equal(t, 11, m.Len())
}

func TestSetThenGet(t *testing.T) {
	m := New()

	require.NoError(t, m.Set(3, types.StrFromString("hi")))
	v, err := m.Get(3)
	require.NoError(t, err)
	require.Equal(t, types.StrFromString("hi"), v)
}

func TestHasMarker(t *testing.T) {
	m := New()
	require.False(t, m.HasMarker(0))
	require.False(t, m.HasMarker(5))

	require.NoError(t, m.Set(5, types.NewMarker(types.Pointer{Frame: 0, Inst: 2})))
	require.True(t, m.HasMarker(5))
	require.False(t, m.HasMarker(6))
}

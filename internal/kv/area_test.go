package kv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemArea(t *testing.T) {
	a := NewMemArea()

	_, ok, err := a.GetItem("k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, a.SetItem("k", "v"))
	text, ok, err := a.GetItem("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", text)

	snap := a.Snapshot()
	snap["k"] = "mutated"
	text, _, _ = a.GetItem("k")
	require.Equal(t, "v", text, "snapshot is a copy")

	require.NoError(t, a.SetItem("other", "x"))
	require.NoError(t, a.Clear())
	require.Zero(t, a.Len())
}

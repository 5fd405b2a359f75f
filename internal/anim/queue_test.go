package anim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/rubik/pkg/types"
)

func TestQueue_FIFO(t *testing.T) {
	var q Queue
	a := types.Move{Layer: types.LayerU, Turn: types.TurnCW}
	b := types.Move{Layer: types.LayerV, Turn: types.TurnCCW}

	q.Push(a)
	q.Push(b)
	require.Equal(t, 2, q.Len())
	require.Equal(t, []types.Move{a, b}, q.Snapshot())

	got, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, a, got)

	got, ok = q.Pop()
	require.True(t, ok)
	require.Equal(t, b, got)

	_, ok = q.Pop()
	require.False(t, ok)
}

func TestQueue_HalfTurnsExpand(t *testing.T) {
	var q Queue
	q.Push(types.Move{Layer: types.LayerS, Turn: types.Turn180})
	require.Equal(t, 2, q.Len())

	q.Clear()
	require.Zero(t, q.Len())
}

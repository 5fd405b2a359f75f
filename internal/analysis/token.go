// Package analysis finds patterns and wasted motion in recorded move
// sequences.
package analysis

import (
	"github.com/SeamusWaldron/rubik/pkg/types"
)

// turnIndex orders turns inside a token.
var turnIndex = map[types.Turn]uint8{
	types.TurnCW:  0,
	types.TurnCCW: 1,
	types.Turn180: 2,
}

var indexTurn = [3]types.Turn{types.TurnCW, types.TurnCCW, types.Turn180}

// Token packs a move into a small integer: layer index * 3 + turn index.
// Unknown moves map to 255.
func Token(m types.Move) uint8 {
	t, ok := turnIndex[m.Turn]
	if !ok {
		return 255
	}
	for i, l := range types.Layers {
		if l == m.Layer {
			return uint8(i)*3 + t
		}
	}
	return 255
}

// MoveFromToken reverses Token.
func MoveFromToken(tok uint8) types.Move {
	if int(tok) >= len(types.Layers)*3 {
		return types.Move{}
	}
	return types.Move{Layer: types.Layers[tok/3], Turn: indexTurn[tok%3]}
}

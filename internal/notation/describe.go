package notation

import (
	"strings"

	"github.com/SeamusWaldron/rubik/pkg/types"
)

// Plain-language phrases for each layer, as seen by someone holding the
// cube with U on top and F facing them: clockwise first, then
// counter-clockwise.
//
//	R  -> "right side up"      R' -> "right side down"
//	U  -> "top row left"       U' -> "top row right"
//	V  -> "middle column down" V' -> "middle column up"
var phrases = map[types.Layer][2]string{
	types.LayerR: {"right side up", "right side down"},
	types.LayerL: {"left side down", "left side up"},
	types.LayerU: {"top row left", "top row right"},
	types.LayerD: {"bottom row right", "bottom row left"},
	types.LayerF: {"front clockwise", "front anti-clockwise"},
	types.LayerB: {"back clockwise", "back anti-clockwise"},
	types.LayerV: {"middle column down", "middle column up"},
	types.LayerH: {"middle row right", "middle row left"},
	types.LayerS: {"standing slice clockwise", "standing slice anti-clockwise"},
}

// Describe converts a move to a plain-language phrase.
func Describe(m types.Move) string {
	p, ok := phrases[m.Layer]
	if !ok {
		return m.Notation() // Fallback to standard notation
	}

	switch m.Turn {
	case types.TurnCW:
		return p[0]
	case types.TurnCCW:
		return p[1]
	case types.Turn180:
		return p[0] + " x 2"
	}
	return m.Notation()
}

// DescribeSequence formats moves as a comma-separated list of phrases.
func DescribeSequence(moves []types.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = Describe(m)
	}
	return strings.Join(parts, ", ")
}

// Package notation provides move notation conversion utilities.
package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SeamusWaldron/rubik/pkg/types"
)

// ErrInvalidNotation is returned by the strict parsers for an unknown token.
var ErrInvalidNotation = errors.New("notation: invalid token")

// ParseNotation parses a standard cube notation string into a Move.
// Examples: R, R', R2, U, U', U2, M, E', S2
//
// The slice letters M, E and S are the standard names for the V, H and S
// slices; V and H are accepted too. Layer letters are upper case only: a
// lower case letter is a wide turn, which the cube does not model.
func ParseNotation(s string) (types.Move, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return types.Move{}, false
	}

	// Extract layer
	var layer types.Layer
	switch s[0] {
	case 'R':
		layer = types.LayerR
	case 'L':
		layer = types.LayerL
	case 'U':
		layer = types.LayerU
	case 'D':
		layer = types.LayerD
	case 'F':
		layer = types.LayerF
	case 'B':
		layer = types.LayerB
	case 'M', 'V':
		layer = types.LayerV
	case 'E', 'H':
		layer = types.LayerH
	case 'S':
		layer = types.LayerS
	default:
		return types.Move{}, false
	}

	// Extract turn
	turn := types.TurnCW // Default is clockwise
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`", "’":
			turn = types.TurnCCW
		case "2", "2'":
			turn = types.Turn180
		default:
			return types.Move{}, false
		}
	}

	return types.Move{Layer: layer, Turn: turn}, true
}

// ParseSequence parses a space-separated sequence of moves. Invalid tokens
// are skipped and returned in skipped.
func ParseSequence(s string) (moves []types.Move, skipped []string) {
	return ParseTokens(strings.Fields(s))
}

// ParseTokens parses a list of notation tokens, skipping invalid ones.
func ParseTokens(tokens []string) (moves []types.Move, skipped []string) {
	moves = make([]types.Move, 0, len(tokens))
	for _, tok := range tokens {
		move, ok := ParseNotation(tok)
		if !ok {
			skipped = append(skipped, tok)
			continue
		}
		moves = append(moves, move)
	}
	return moves, skipped
}

// ParseStrict parses a sequence and fails on the first invalid token.
func ParseStrict(s string) ([]types.Move, error) {
	moves, skipped := ParseSequence(s)
	if len(skipped) > 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, skipped[0])
	}
	return moves, nil
}

// FormatSequence formats a slice of moves as a space-separated string.
func FormatSequence(moves []types.Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// Tokens returns the notation of each move.
func Tokens(moves []types.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.Notation()
	}
	return out
}

// Expand replaces every half turn with two clockwise quarter turns.
func Expand(moves []types.Move) []types.Move {
	out := make([]types.Move, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.Quarters()...)
	}
	return out
}

// Simplify merges adjacent turns of the same layer, dropping those that
// cancel. Merges cascade: R U U' R' simplifies to nothing.
func Simplify(moves []types.Move) []types.Move {
	out := make([]types.Move, 0, len(moves))
	for _, m := range moves {
		if n := len(out); n > 0 && out[n-1].Layer == m.Layer {
			merged := out[n-1].Merge(m)
			out = out[:n-1]
			if merged != nil {
				out = append(out, *merged)
			}
			continue
		}
		out = append(out, m)
	}
	return out
}

// Invert returns the sequence that undoes moves: each move inverted, in
// reverse order.
func Invert(moves []types.Move) []types.Move {
	out := make([]types.Move, len(moves))
	for i, m := range moves {
		out[len(moves)-1-i] = m.Inverse()
	}
	return out
}

// NormalizeTurn normalizes a quarter-turn count to a Turn.
// -3 -> 1, -2 -> 2, -1 -> -1, 1 -> 1, 2 -> 2, 3 -> -1
func NormalizeTurn(turn int) types.Turn {
	turn = ((turn % 4) + 4) % 4
	if turn == 3 {
		turn = -1
	}
	if turn == 0 {
		return types.TurnCW // Shouldn't happen, but treat as CW
	}
	return types.Turn(turn)
}

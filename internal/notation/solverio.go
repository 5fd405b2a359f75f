package notation

import (
	"strings"

	"github.com/SeamusWaldron/rubik/pkg/types"
)

// solverLetters are the slice letters external solvers expect.
var solverLetters = map[types.Layer]string{
	types.LayerV: "M",
	types.LayerH: "E",
	types.LayerS: "S",
}

// ToSolverInput serialises an executed scramble for an external solver:
// adjacent turns are merged and slices use the M/E/S letters.
func ToSolverInput(moves []types.Move) string {
	moves = Simplify(moves)
	parts := make([]string, len(moves))
	for i, m := range moves {
		tok := m.Notation()
		if letter, ok := solverLetters[m.Layer]; ok {
			tok = letter + tok[1:]
		}
		parts[i] = tok
	}
	return strings.Join(parts, " ")
}

// FromSolverOutput parses a solver's answer back into moves. Tokens the
// engine cannot execute are skipped and returned.
func FromSolverOutput(s string) (moves []types.Move, skipped []string) {
	// Some solvers separate moves with commas or report the length in
	// parentheses at the end, e.g. "R U2 F' (3f)".
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, ",", " ")
	return ParseSequence(s)
}

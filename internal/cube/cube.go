// Package cube holds the logical state of a 26-cubie Rubik's cube: which
// named cubie occupies every slot of the six face maps and the three middle
// slice maps, and the permutation tables that keep them consistent.
package cube

import (
	"fmt"
	"strings"

	"github.com/SeamusWaldron/rubik/pkg/types"
)

// State is the authoritative slot assignment of a cube.
//
// Faces are indexed in types.Faces order (U L F R B D), each holding nine
// cubie names row-major as seen from outside (see FaceSlotPos). Slices are
// indexed in types.Slices order (V H S), each an eight-cubie ring.
type State struct {
	Faces  [6][9]string
	Slices [3][8]string
}

// New creates a cube in the solved configuration.
func New() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset restores the solved assignment.
func (s *State) Reset() {
	for i, face := range types.Faces {
		for slot := 0; slot < 9; slot++ {
			s.Faces[i][slot] = NameAt(FaceSlotPos(face, slot))
		}
	}
	for i, slice := range types.Slices {
		for slot := 0; slot < 8; slot++ {
			s.Slices[i][slot] = NameAt(SliceSlotPos(slice, slot))
		}
	}
}

// Clone creates a deep copy of the state.
func (s *State) Clone() *State {
	clone := *s
	return &clone
}

// Group returns the live slot array of a face or slice. Writes through the
// returned slice modify the state.
func (s *State) Group(l types.Layer) []string {
	for i, face := range types.Faces {
		if face == l {
			return s.Faces[i][:]
		}
	}
	for i, slice := range types.Slices {
		if slice == l {
			return s.Slices[i][:]
		}
	}
	return nil
}

// Face returns a copy of a face map.
func (s *State) Face(face types.Layer) [9]string {
	var out [9]string
	copy(out[:], s.Group(face))
	return out
}

// Slice returns a copy of a slice map.
func (s *State) Slice(slice types.Layer) [8]string {
	var out [8]string
	copy(out[:], s.Group(slice))
	return out
}

// Cubies returns the names occupying a layer, in slot order.
func (s *State) Cubies(l types.Layer) []string {
	return append([]string(nil), s.Group(l)...)
}

// Equal reports whether two states hold the same assignment.
func (s *State) Equal(other *State) bool {
	return s.Faces == other.Faces && s.Slices == other.Slices
}

// IsSolved returns true if the cube is in the solved state.
func (s *State) IsSolved() bool {
	return s.Equal(New())
}

// Positions returns the lattice position currently held by every cubie.
func (s *State) Positions() map[string]Pos {
	out := make(map[string]Pos, 26)
	for _, l := range types.Layers {
		for slot, name := range s.Group(l) {
			out[name] = SlotPos(l, slot)
		}
	}
	return out
}

// String returns the face maps as an unfolded net of cubie names.
func (s *State) String() string {
	var b strings.Builder

	row := func(face types.Layer, r int) string {
		g := s.Group(face)
		return fmt.Sprintf("%-4s%-4s%-4s", g[r*3], g[r*3+1], g[r*3+2])
	}
	pad := strings.Repeat(" ", 12)

	// U face (indented)
	for r := 0; r < 3; r++ {
		b.WriteString(pad + row(types.LayerU, r) + "\n")
	}

	// L, F, R, B faces (side by side)
	for r := 0; r < 3; r++ {
		for _, face := range []types.Layer{types.LayerL, types.LayerF, types.LayerR, types.LayerB} {
			b.WriteString(row(face, r))
		}
		b.WriteString("\n")
	}

	// D face (indented)
	for r := 0; r < 3; r++ {
		b.WriteString(pad + row(types.LayerD, r) + "\n")
	}

	for _, slice := range types.Slices {
		fmt.Fprintf(&b, "%s: %s\n", slice, strings.Join(s.Group(slice), " "))
	}

	return b.String()
}

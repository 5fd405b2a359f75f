package cube

import (
	"fmt"

	"github.com/SeamusWaldron/rubik/pkg/types"
)

// checkDuplicates verifies that no face or slice map holds a name twice.
func (s *State) checkDuplicates() error {
	for _, l := range types.Layers {
		g := s.Group(l)
		for i := 0; i < len(g); i++ {
			for j := i + 1; j < len(g); j++ {
				if g[i] == g[j] {
					return fmt.Errorf("%w: %s appears twice in %s (slots %d and %d)", ErrConsistency, g[i], l, i, j)
				}
			}
		}
	}
	return nil
}

// Validate checks every invariant of the slot maps:
//   - no map holds a name twice
//   - all maps agree on the cubie at every shared position
//   - the 26 cubies each appear in as many face maps as they have stickers
func (s *State) Validate() error {
	if err := s.checkDuplicates(); err != nil {
		return err
	}

	at := make(map[Pos]string, 26)
	for _, l := range types.Layers {
		for slot, name := range s.Group(l) {
			p := SlotPos(l, slot)
			if prev, ok := at[p]; ok && prev != name {
				return fmt.Errorf("%w: %s slot %d holds %s but %v is %s elsewhere", ErrConsistency, l, slot, name, p, prev)
			}
			at[p] = name
		}
	}

	faceCount := make(map[string]int, 26)
	for _, face := range types.Faces {
		for _, name := range s.Group(face) {
			faceCount[name]++
		}
	}
	if len(faceCount) != 26 {
		return fmt.Errorf("%w: %d distinct cubies on the faces, want 26", ErrConsistency, len(faceCount))
	}
	for name, n := range faceCount {
		// One letter per visible sticker.
		if n != len(name) {
			return fmt.Errorf("%w: %s is on %d faces, want %d", ErrConsistency, name, n, len(name))
		}
	}

	return nil
}

package cube

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/rubik/pkg/types"
)

// Sentinel errors for the cube package.
var (
	ErrConsistency  = errors.New("cube: consistency violation")
	ErrUnknownLayer = errors.New("cube: unknown layer")
)

// Own-group cycles: after a turn, slot i holds what was in slot cycle[i].
//
// Face clockwise moves corners 6->0->2->8->6 and edges 7->3->1->5->7; the
// center (4) stays put. Slice turns shift the ring two places.
var (
	faceCycleCW   = []int{6, 3, 0, 7, 4, 1, 8, 5, 2}
	faceCycleCCW  = []int{2, 5, 8, 1, 4, 7, 0, 3, 6}
	sliceCycleCW  = []int{6, 7, 0, 1, 2, 3, 4, 5}
	sliceCycleCCW = []int{2, 3, 4, 5, 6, 7, 0, 1}
)

// link copies the cubie in slot src of the turned group into slot dstSlot
// of the neighbouring map dst.
type link struct {
	src     int
	dst     types.Layer
	dstSlot int
}

// groupTable is everything needed to turn one group.
type groupTable struct {
	layer    types.Layer
	cycleCW  []int
	cycleCCW []int
	links    []link
}

var tables = buildTables()

// buildTables derives the neighbour links of every group from the slot
// layout: each slot of another map whose position lies inside the turning
// layer is refreshed from the group slot at the same position.
func buildTables() map[types.Layer]groupTable {
	out := make(map[types.Layer]groupTable, len(types.Layers))

	for _, l := range types.Layers {
		t := groupTable{layer: l, cycleCW: faceCycleCW, cycleCCW: faceCycleCCW}
		if l.IsSlice() {
			t.cycleCW, t.cycleCCW = sliceCycleCW, sliceCycleCCW
		}

		own := make(map[Pos]int, SlotCount(l))
		for slot := 0; slot < SlotCount(l); slot++ {
			own[SlotPos(l, slot)] = slot
		}

		for _, other := range types.Layers {
			if other == l {
				continue
			}
			for slot := 0; slot < SlotCount(other); slot++ {
				p := SlotPos(other, slot)
				if src, ok := own[p]; ok {
					t.links = append(t.links, link{src: src, dst: other, dstSlot: slot})
				}
			}
		}

		out[l] = t
	}

	return out
}

// Rotate turns one face or slice a quarter turn and propagates the new
// assignment into every map sharing cubies with it. If the result holds a
// duplicate the state is left exactly as it was and ErrConsistency is
// returned.
func (s *State) Rotate(l types.Layer, clockwise bool) error {
	t, ok := tables[l]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLayer, l)
	}
	return s.apply(t, clockwise)
}

func (s *State) apply(t groupTable, clockwise bool) error {
	before := *s

	cycle := t.cycleCCW
	if clockwise {
		cycle = t.cycleCW
	}

	own := s.Group(t.layer)
	old := append([]string(nil), own...)
	for i, from := range cycle {
		own[i] = old[from]
	}

	for _, ln := range t.links {
		s.Group(ln.dst)[ln.dstSlot] = own[ln.src]
	}

	if err := s.checkDuplicates(); err != nil {
		*s = before
		return fmt.Errorf("rotate %s: %w", t.layer, err)
	}

	return nil
}

// Neighbours returns the maps a turn of l writes into, besides l itself.
func Neighbours(l types.Layer) []types.Layer {
	var out []types.Layer
	seen := make(map[types.Layer]bool)
	for _, ln := range tables[l].links {
		if !seen[ln.dst] {
			seen[ln.dst] = true
			out = append(out, ln.dst)
		}
	}
	return out
}

package cubie

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/SeamusWaldron/rubik/internal/cube"
	"github.com/SeamusWaldron/rubik/pkg/types"
)

// ErrUnknownCubie is returned when a rotation names a cubie the set does
// not hold.
var ErrUnknownCubie = errors.New("cubie: unknown cubie")

// Set owns the 26 cubies of one cube, keyed by name.
type Set struct {
	cubies map[string]*Cubie
}

// NewSet builds all 26 cubies at their solved positions.
func NewSet() *Set {
	s := &Set{}
	s.Reset()
	return s
}

// Reset rebuilds every cubie at its solved position.
func (s *Set) Reset() {
	s.cubies = make(map[string]*Cubie, 26)
	for _, name := range AllNames() {
		s.cubies[name] = New(name)
	}
}

// AllNames returns the 26 cubie names in lattice order.
func AllNames() []string {
	names := make([]string, 0, 26)
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				if x == 0 && y == 0 && z == 0 {
					continue
				}
				names = append(names, cube.NameAt(cube.Pos{x, y, z}))
			}
		}
	}
	return names
}

// Get returns the named cubie.
func (s *Set) Get(name string) (*Cubie, bool) {
	c, ok := s.cubies[name]
	return c, ok
}

// Len returns the number of cubies in the set.
func (s *Set) Len() int {
	return len(s.cubies)
}

// Names returns the cubie names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.cubies))
	for name := range s.cubies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Axis returns the world axis a layer turns about and the sign that maps a
// viewer-relative angle onto it. Layers viewed from the negative end of
// their axis (L, D, B and the slices that turn like L and D) flip the sign.
func Axis(l types.Layer) (mgl32.Vec3, float32) {
	switch l {
	case types.LayerR:
		return mgl32.Vec3{1, 0, 0}, 1
	case types.LayerL, types.LayerV:
		return mgl32.Vec3{1, 0, 0}, -1
	case types.LayerU:
		return mgl32.Vec3{0, 1, 0}, 1
	case types.LayerD, types.LayerH:
		return mgl32.Vec3{0, 1, 0}, -1
	case types.LayerF, types.LayerS:
		return mgl32.Vec3{0, 0, 1}, 1
	case types.LayerB:
		return mgl32.Vec3{0, 0, 1}, -1
	}
	return mgl32.Vec3{}, 0
}

// RotationFor builds the world-space rotation for turning layer l by degrees,
// negative degrees being clockwise as seen from the layer's viewing side.
func RotationFor(l types.Layer, degrees float32) mgl32.Mat4 {
	axis, sign := Axis(l)
	if sign == 0 {
		return mgl32.Ident4()
	}
	return mgl32.HomogRotate3D(mgl32.DegToRad(sign*degrees), axis)
}

// RotateGroup rotates every vertex of the named cubies about the world axis
// of layer l. It never touches the logical slot maps. If any name is
// unknown nothing is rotated.
func (s *Set) RotateGroup(names []string, l types.Layer, degrees float32) error {
	if !l.Valid() {
		return fmt.Errorf("rotate group: unknown layer %q", l)
	}

	group := make([]*Cubie, 0, len(names))
	for _, name := range names {
		c, ok := s.cubies[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCubie, name)
		}
		group = append(group, c)
	}

	m := RotationFor(l, degrees)
	for _, c := range group {
		for i, p := range c.Positions {
			c.Positions[i] = m.Mul4x1(p.Vec4(1)).Vec3()
		}
	}
	return nil
}

// Snap rounds the vertex positions of the named cubies to three decimals so
// float error does not build up across many turns.
func (s *Set) Snap(names []string) {
	for _, name := range names {
		c, ok := s.cubies[name]
		if !ok {
			continue
		}
		for i, p := range c.Positions {
			c.Positions[i] = mgl32.Vec3{mgl32.Round(p[0], 3), mgl32.Round(p[1], 3), mgl32.Round(p[2], 3)}
		}
	}
}

// Positions returns the lattice position every cubie currently sits on.
func (s *Set) Positions() map[string]cube.Pos {
	out := make(map[string]cube.Pos, len(s.cubies))
	for name, c := range s.cubies {
		out[name] = c.Lattice()
	}
	return out
}

// Sticker returns the face color currently showing at the given face slot,
// reading the cubie named by the slot map there.
func (s *Set) Sticker(state *cube.State, face types.Layer, slot int) (types.Layer, bool) {
	c, ok := s.cubies[state.Face(face)[slot]]
	if !ok {
		return "", false
	}
	n := cube.Normal(face)
	return c.StickerToward(lattice(n))
}

package cube

import "github.com/SeamusWaldron/rubik/pkg/types"

// Pos is a lattice position of a cubie, each axis in {-1, 0, 1}.
// X grows towards R, Y towards U and Z towards F.
type Pos [3]int

// Axis indices into Pos.
const (
	AxisX = 0
	AxisY = 1
	AxisZ = 2
)

// NameAt returns the name of the cubie whose solved position is p.
// Letters are ordered L/R, U/D, F/B, e.g. (-1, 1, 1) is "LUF".
// The core (0, 0, 0) has no name.
func NameAt(p Pos) string {
	name := ""
	switch p[AxisX] {
	case -1:
		name += "L"
	case 1:
		name += "R"
	}
	switch p[AxisY] {
	case 1:
		name += "U"
	case -1:
		name += "D"
	}
	switch p[AxisZ] {
	case 1:
		name += "F"
	case -1:
		name += "B"
	}
	return name
}

// FaceSlotPos returns the lattice position of a face slot. Slots are laid
// out row-major as seen when looking straight at the face from outside:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// U is viewed with B at the top, D with F at the top, the side faces with U
// at the top.
func FaceSlotPos(face types.Layer, slot int) Pos {
	r, c := slot/3, slot%3
	switch face {
	case types.LayerU:
		return Pos{c - 1, 1, r - 1}
	case types.LayerL:
		return Pos{-1, 1 - r, c - 1}
	case types.LayerF:
		return Pos{c - 1, 1 - r, 1}
	case types.LayerR:
		return Pos{1, 1 - r, 1 - c}
	case types.LayerB:
		return Pos{1 - c, 1 - r, -1}
	case types.LayerD:
		return Pos{c - 1, -1, 1 - r}
	}
	return Pos{}
}

// Slice rings, walked in the direction a clockwise slice turn moves cubies
// two steps along.
var sliceRings = map[types.Layer][8]Pos{
	// x = 0, seen from L
	types.LayerV: {{0, 1, -1}, {0, 1, 0}, {0, 1, 1}, {0, 0, 1}, {0, -1, 1}, {0, -1, 0}, {0, -1, -1}, {0, 0, -1}},
	// y = 0, seen from D
	types.LayerH: {{-1, 0, -1}, {-1, 0, 0}, {-1, 0, 1}, {0, 0, 1}, {1, 0, 1}, {1, 0, 0}, {1, 0, -1}, {0, 0, -1}},
	// z = 0, seen from F
	types.LayerS: {{-1, 1, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}, {1, -1, 0}, {0, -1, 0}, {-1, -1, 0}, {-1, 0, 0}},
}

// SliceSlotPos returns the lattice position of a slice ring slot.
func SliceSlotPos(slice types.Layer, slot int) Pos {
	return sliceRings[slice][slot]
}

// SlotPos returns the lattice position of any face or slice slot.
func SlotPos(l types.Layer, slot int) Pos {
	if l.IsSlice() {
		return SliceSlotPos(l, slot)
	}
	return FaceSlotPos(l, slot)
}

// SlotCount returns the number of slots in the layer's map.
func SlotCount(l types.Layer) int {
	if l.IsSlice() {
		return 8
	}
	return 9
}

// Contains reports whether position p lies in layer l.
func Contains(l types.Layer, p Pos) bool {
	switch l {
	case types.LayerU:
		return p[AxisY] == 1
	case types.LayerD:
		return p[AxisY] == -1
	case types.LayerL:
		return p[AxisX] == -1
	case types.LayerR:
		return p[AxisX] == 1
	case types.LayerF:
		return p[AxisZ] == 1
	case types.LayerB:
		return p[AxisZ] == -1
	case types.LayerV:
		return p[AxisX] == 0
	case types.LayerH:
		return p[AxisY] == 0
	case types.LayerS:
		return p[AxisZ] == 0
	}
	return false
}

// Normal returns the outward unit normal of a face.
func Normal(face types.Layer) Pos {
	switch face {
	case types.LayerU:
		return Pos{0, 1, 0}
	case types.LayerD:
		return Pos{0, -1, 0}
	case types.LayerL:
		return Pos{-1, 0, 0}
	case types.LayerR:
		return Pos{1, 0, 0}
	case types.LayerF:
		return Pos{0, 0, 1}
	case types.LayerB:
		return Pos{0, 0, -1}
	}
	return Pos{}
}

// Package types contains shared type definitions for the rubik module.
package types

// Layer identifies a group of cubies that turns together: one of the six
// outer faces or one of the three middle slices.
type Layer string

const (
	LayerU Layer = "U" // Up
	LayerL Layer = "L" // Left
	LayerF Layer = "F" // Front
	LayerR Layer = "R" // Right
	LayerB Layer = "B" // Back
	LayerD Layer = "D" // Down

	LayerV Layer = "V" // Vertical middle slice, between L and R (turns like L)
	LayerH Layer = "H" // Horizontal middle slice, between U and D (turns like D)
	LayerS Layer = "S" // Standing middle slice, between F and B (turns like F)
)

// Faces lists the six outer faces in canonical map order.
var Faces = [6]Layer{LayerU, LayerL, LayerF, LayerR, LayerB, LayerD}

// Slices lists the three middle slices in canonical map order.
var Slices = [3]Layer{LayerV, LayerH, LayerS}

// Layers lists all nine turnable groups.
var Layers = [9]Layer{LayerU, LayerL, LayerF, LayerR, LayerB, LayerD, LayerV, LayerH, LayerS}

// IsSlice reports whether the layer is a middle slice.
func (l Layer) IsSlice() bool {
	return l == LayerV || l == LayerH || l == LayerS
}

// Valid reports whether l is one of the nine known layers.
func (l Layer) Valid() bool {
	for _, known := range Layers {
		if l == known {
			return true
		}
	}
	return false
}

// Turn represents the direction and magnitude of a layer turn.
type Turn int

const (
	TurnCW  Turn = 1  // Clockwise quarter turn
	TurnCCW Turn = -1 // Counter-clockwise quarter turn
	Turn180 Turn = 2  // 180 degree turn (half turn)
)

// QuarterAngle is the rotation, in degrees, of a single quarter turn.
const QuarterAngle float32 = 90

// Move represents a single layer turn.
type Move struct {
	Layer Layer `json:"layer"`
	Turn  Turn  `json:"turn"`
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, V, V'
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case TurnCCW:
		suffix = "'"
	case Turn180:
		suffix = "2"
	}
	return string(m.Layer) + suffix
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the inverse of this move. A half turn is its own inverse.
func (m Move) Inverse() Move {
	if m.Turn == TurnCW || m.Turn == TurnCCW {
		m.Turn = -m.Turn
	}
	return m
}

// Clockwise reports whether the move turns clockwise as seen from the
// layer's viewing side. Half turns are executed as two clockwise quarters.
func (m Move) Clockwise() bool {
	return m.Turn != TurnCCW
}

// TargetAngle returns the signed rotation of one quarter of this move:
// negative for clockwise, positive for counter-clockwise.
func (m Move) TargetAngle() float32 {
	if m.Clockwise() {
		return -QuarterAngle
	}
	return QuarterAngle
}

// Quarters expands the move into quarter turns. Half turns become two
// clockwise quarter turns; quarter turns are returned unchanged.
func (m Move) Quarters() []Move {
	if m.Turn == Turn180 {
		q := Move{Layer: m.Layer, Turn: TurnCW}
		return []Move{q, q}
	}
	return []Move{m}
}

// IsCancellation returns true if the other move cancels this move.
func (m Move) IsCancellation(other Move) bool {
	if m.Layer != other.Layer {
		return false
	}
	return m.Turn == -other.Turn ||
		(m.Turn == Turn180 && other.Turn == Turn180)
}

// Merge combines two same-layer moves into one (or returns nil if they cancel).
// Returns nil if the moves cannot be merged or if they cancel out completely.
func (m Move) Merge(other Move) *Move {
	if m.Layer != other.Layer {
		return nil
	}

	combined := (int(m.Turn) + int(other.Turn)) % 4
	if combined < 0 {
		combined += 4
	}

	switch combined {
	case 0:
		return nil // Moves cancel out
	case 1:
		return &Move{Layer: m.Layer, Turn: TurnCW}
	case 2:
		return &Move{Layer: m.Layer, Turn: Turn180}
	default:
		return &Move{Layer: m.Layer, Turn: TurnCCW}
	}
}

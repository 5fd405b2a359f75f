package rubik

import "github.com/SeamusWaldron/rubik/pkg/types"

// Layer identifies one of the nine turnable groups: the faces U L F R B D
// and the middle slices V H S.
type Layer = types.Layer

// Turn represents the direction and magnitude of a layer turn.
type Turn = types.Turn

// Move represents a single layer turn.
type Move = types.Move

const (
	LayerU = types.LayerU // Up
	LayerL = types.LayerL // Left
	LayerF = types.LayerF // Front
	LayerR = types.LayerR // Right
	LayerB = types.LayerB // Back
	LayerD = types.LayerD // Down
	LayerV = types.LayerV // Vertical slice, turns like L
	LayerH = types.LayerH // Horizontal slice, turns like D
	LayerS = types.LayerS // Standing slice, turns like F
)

const (
	CW     = types.TurnCW  // Clockwise (90 degrees)
	CCW    = types.TurnCCW // Counter-clockwise (90 degrees)
	Double = types.Turn180 // Half turn (180 degrees)
)

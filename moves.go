package rubik

// Predefined moves for convenience.
// Use these instead of constructing Move structs manually.
//
// Example:
//
//	engine.Enqueue(rubik.R, rubik.U, rubik.RPrime, rubik.UPrime)
var (
	// Right face moves
	R      = Move{Layer: LayerR, Turn: CW}     // Right clockwise
	RPrime = Move{Layer: LayerR, Turn: CCW}    // Right counter-clockwise
	R2     = Move{Layer: LayerR, Turn: Double} // Right 180

	// Left face moves
	L      = Move{Layer: LayerL, Turn: CW}     // Left clockwise
	LPrime = Move{Layer: LayerL, Turn: CCW}    // Left counter-clockwise
	L2     = Move{Layer: LayerL, Turn: Double} // Left 180

	// Up face moves
	U      = Move{Layer: LayerU, Turn: CW}     // Up clockwise
	UPrime = Move{Layer: LayerU, Turn: CCW}    // Up counter-clockwise
	U2     = Move{Layer: LayerU, Turn: Double} // Up 180

	// Down face moves
	D      = Move{Layer: LayerD, Turn: CW}     // Down clockwise
	DPrime = Move{Layer: LayerD, Turn: CCW}    // Down counter-clockwise
	D2     = Move{Layer: LayerD, Turn: Double} // Down 180

	// Front face moves
	F      = Move{Layer: LayerF, Turn: CW}     // Front clockwise
	FPrime = Move{Layer: LayerF, Turn: CCW}    // Front counter-clockwise
	F2     = Move{Layer: LayerF, Turn: Double} // Front 180

	// Back face moves
	B      = Move{Layer: LayerB, Turn: CW}     // Back clockwise
	BPrime = Move{Layer: LayerB, Turn: CCW}    // Back counter-clockwise
	B2     = Move{Layer: LayerB, Turn: Double} // Back 180

	// Middle slice moves
	V      = Move{Layer: LayerV, Turn: CW}     // Vertical slice, like L
	VPrime = Move{Layer: LayerV, Turn: CCW}    // Vertical slice, like L'
	V2     = Move{Layer: LayerV, Turn: Double} // Vertical slice 180
	H      = Move{Layer: LayerH, Turn: CW}     // Horizontal slice, like D
	HPrime = Move{Layer: LayerH, Turn: CCW}    // Horizontal slice, like D'
	H2     = Move{Layer: LayerH, Turn: Double} // Horizontal slice 180
	S      = Move{Layer: LayerS, Turn: CW}     // Standing slice, like F
	SPrime = Move{Layer: LayerS, Turn: CCW}    // Standing slice, like F'
	S2     = Move{Layer: LayerS, Turn: Double} // Standing slice 180
)

// AllMoves contains every quarter and half turn of every layer.
var AllMoves = []Move{
	R, RPrime, R2,
	L, LPrime, L2,
	U, UPrime, U2,
	D, DPrime, D2,
	F, FPrime, F2,
	B, BPrime, B2,
	V, VPrime, V2,
	H, HPrime, H2,
	S, SPrime, S2,
}

// Package rubik models a 3x3x3 Rubik's cube as 26 named cubies and animates
// layer turns one at a time.
//
// # Overview
//
// An Engine owns everything about one cube:
//
//   - the slot maps: which cubie sits in each of the 9 slots of the six
//     faces and the 8 slots of the three middle slices
//   - the geometry of every cubie (36 vertices with colors and texture
//     coordinates)
//   - a FIFO of pending moves and the turn currently animating
//
// # Quick Start
//
//	e := rubik.New(rubik.WithRenderer(rubik.RendererFunc(upload)))
//
//	// Queue moves using predefined constants
//	e.Enqueue(rubik.R, rubik.U, rubik.RPrime, rubik.UPrime)
//
//	// Or from notation
//	e.MoveFromList([]string{"F", "B2", "L'", "M"})
//
//	// Drive the animation from the render loop
//	for !e.Idle() {
//	    e.Update(time.Now())
//	    draw()
//	}
//
//	fmt.Println("Solved:", e.IsSolved())
//
// # Layers and Directions
//
// Faces are U L F R B D. The middle slices are V (between L and R, turns
// like L), H (between U and D, turns like D) and S (between F and B, turns
// like F). Clockwise is as seen looking at the face, or at the face the
// slice turns like.
//
// # Solving
//
// Scramble returns the notation it queued. Hand it to a solver from the
// internal/solver package and feed the answer back through MoveFromList.
package rubik

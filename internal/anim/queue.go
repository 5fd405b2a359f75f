// Package anim sequences queued layer turns into non-overlapping, time-based
// rotations and commits each one to the logical cube state when it lands.
package anim

import "github.com/SeamusWaldron/rubik/pkg/types"

// Queue is a FIFO of pending quarter turns.
type Queue struct {
	moves []types.Move
}

// Push appends a move, expanding half turns into two quarter turns.
func (q *Queue) Push(m types.Move) {
	q.moves = append(q.moves, m.Quarters()...)
}

// Pop removes and returns the oldest move.
func (q *Queue) Pop() (types.Move, bool) {
	if len(q.moves) == 0 {
		return types.Move{}, false
	}
	m := q.moves[0]
	q.moves[0] = types.Move{}
	q.moves = q.moves[1:]
	return m, true
}

// Len returns the number of pending quarter turns.
func (q *Queue) Len() int {
	return len(q.moves)
}

// Clear drops every pending move.
func (q *Queue) Clear() {
	q.moves = nil
}

// Snapshot returns a copy of the pending moves in execution order.
func (q *Queue) Snapshot() []types.Move {
	return append([]types.Move(nil), q.moves...)
}

package cube

import "github.com/SeamusWaldron/rubik/pkg/types"

// ApplyMove applies a types.Move to the state without any animation.
// Half turns are applied as two clockwise quarter turns.
func (s *State) ApplyMove(m types.Move) error {
	for _, q := range m.Quarters() {
		if err := s.Rotate(q.Layer, q.Clockwise()); err != nil {
			return err
		}
	}
	return nil
}

// ApplyMoves applies a sequence of moves, stopping at the first error.
func (s *State) ApplyMoves(moves []types.Move) error {
	for _, m := range moves {
		if err := s.ApplyMove(m); err != nil {
			return err
		}
	}
	return nil
}

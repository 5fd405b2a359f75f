package rubik

import (
	"errors"

	"github.com/SeamusWaldron/rubik/internal/cube"
	"github.com/SeamusWaldron/rubik/internal/cubie"
	"github.com/SeamusWaldron/rubik/internal/notation"
	"github.com/SeamusWaldron/rubik/internal/solver"
)

// Sentinel errors for the rubik package.
var (
	// State errors
	ErrConsistency  = cube.ErrConsistency
	ErrUnknownCubie = cubie.ErrUnknownCubie
	ErrStale        = errors.New("rubik: cube changed while solving")

	// Input errors
	ErrUnknownMove     = errors.New("rubik: unknown move")
	ErrInvalidNotation = notation.ErrInvalidNotation

	// Solver errors
	ErrSolverUnavailable = solver.ErrUnavailable
)

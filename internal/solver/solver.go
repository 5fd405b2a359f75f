// Package solver is the boundary to the combinatorial solver: given the
// notation of an executed scramble it returns the notation that solves it.
package solver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SeamusWaldron/rubik/internal/notation"
)

// ErrUnavailable is returned when a solver cannot produce a solution.
var ErrUnavailable = errors.New("solver: unavailable")

// Solver turns a scramble into a solution. Both sides use standard
// notation tokens.
type Solver interface {
	Name() string
	Solve(ctx context.Context, scramble string) ([]string, error)
}

// Inverse solves a scramble by undoing it: every move inverted, in reverse
// order, with adjacent turns merged.
type Inverse struct{}

// Name implements Solver.
func (Inverse) Name() string { return "inverse" }

// Solve implements Solver.
func (Inverse) Solve(ctx context.Context, scramble string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	moves, err := notation.ParseStrict(scramble)
	if err != nil {
		return nil, fmt.Errorf("inverse solve: %w", err)
	}
	return notation.Tokens(notation.Simplify(notation.Invert(moves))), nil
}

// New returns the solver registered under name. An empty name selects
// Inverse. "command" solvers take the program and its arguments after a
// colon, e.g. "command:kociemba --stdin".
func New(name string) (Solver, error) {
	switch {
	case name == "" || name == "inverse":
		return Inverse{}, nil
	case strings.HasPrefix(name, "command:"):
		args := strings.Fields(strings.TrimPrefix(name, "command:"))
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: empty command", ErrUnavailable)
		}
		return &Command{Path: args[0], Args: args[1:]}, nil
	}
	return nil, fmt.Errorf("%w: unknown solver %q", ErrUnavailable, name)
}

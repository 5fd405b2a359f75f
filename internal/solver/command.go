package solver

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/SeamusWaldron/rubik/internal/notation"
)

// Command runs an external solver program. The scramble is written to its
// stdin and the solution is read from its stdout.
type Command struct {
	Path string
	Args []string
}

// Name implements Solver.
func (c *Command) Name() string {
	return "command:" + strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// Solve implements Solver. The program is killed when ctx is done.
func (c *Command) Solve(ctx context.Context, scramble string) ([]string, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Stdin = strings.NewReader(scramble + "\n")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v: %s", ErrUnavailable, c.Path, err, strings.TrimSpace(stderr.String()))
	}

	moves, skipped := notation.FromSolverOutput(stdout.String())
	if len(skipped) > 0 {
		return nil, fmt.Errorf("%w: %s returned unknown tokens %v", ErrUnavailable, c.Path, skipped)
	}
	return notation.Tokens(moves), nil
}

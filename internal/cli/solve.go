package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/rubik"
	"github.com/SeamusWaldron/rubik/internal/notation"
	"github.com/SeamusWaldron/rubik/internal/recorder"
	"github.com/SeamusWaldron/rubik/internal/solver"
	"github.com/SeamusWaldron/rubik/internal/storage"
)

var (
	scrambleLength int
	solveScramble  string
	solveTimeout   time.Duration
	noSave         bool
)

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Scramble a cube and print the notation",
	Long: `Scramble a simulated cube with random quarter turns of the outer faces,
never turning the same face twice in a row, and print the scramble.

The scramble is stored as a session unless --no-save is given.`,
	RunE: runScramble,
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Scramble a cube and solve it",
	Long: `Scramble a simulated cube (or apply --scramble), hand the executed
moves to the configured solver and run its answer through the animation
scheduler. The command fails if the cube does not end up solved.

Examples:
  rubik solve
  rubik solve --scramble "R U R' U'"
  rubik solve --solver "command:kociemba"`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(scrambleCmd)
	rootCmd.AddCommand(solveCmd)

	scrambleCmd.Flags().IntVarP(&scrambleLength, "moves", "n", 20, "Number of quarter turns")
	scrambleCmd.Flags().BoolVar(&noSave, "no-save", false, "Do not store the session")

	solveCmd.Flags().IntVarP(&scrambleLength, "moves", "n", 20, "Number of quarter turns when scrambling")
	solveCmd.Flags().StringVar(&solveScramble, "scramble", "", "Scramble to apply instead of a random one")
	solveCmd.Flags().String("solver", "", "Solver to use (inverse, command:<program> [args])")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 30*time.Second, "Solver time limit")
	solveCmd.Flags().BoolVar(&noSave, "no-save", false, "Do not store the session")
}

// run is a headless engine whose commits are optionally recorded.
type run struct {
	engine *rubik.Engine
	rec    *recorder.Session
	db     *storage.DB
}

func newRun(kind string) (*run, error) {
	r := &run{engine: newEngine()}
	if noSave {
		return r, nil
	}

	db, err := openDB()
	if err != nil {
		return nil, err
	}
	r.db = db
	r.rec = recorder.NewSession(db, logger)
	r.engine.OnCommit(r.rec.Record)
	if _, err := r.rec.Start(kind, ""); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *run) setPhase(phase string) {
	if r.rec != nil {
		r.rec.SetPhase(phase)
	}
}

func (r *run) setScramble(scramble string) error {
	if r.rec == nil {
		return nil
	}
	return r.rec.SetScramble(scramble)
}

func (r *run) end(solution, solverName string, solved bool) error {
	if r.rec == nil {
		return nil
	}
	return r.rec.End(solution, solverName, solved)
}

func (r *run) close() {
	if r.db != nil {
		r.db.Close()
	}
}

func (r *run) sessionID() string {
	if r.rec == nil {
		return ""
	}
	return r.rec.SessionID()
}

func runScramble(cmd *cobra.Command, args []string) error {
	if scrambleLength <= 0 {
		return fmt.Errorf("--moves must be positive")
	}

	r, err := newRun(storage.KindScramble)
	if err != nil {
		return err
	}
	defer r.close()

	r.setPhase(storage.PhaseScramble)
	tokens := r.engine.Scramble(scrambleLength)
	r.engine.Drain(time.Now())
	text := strings.Join(tokens, " ")

	if err := r.setScramble(text); err != nil {
		return err
	}
	if err := r.end("", "", r.engine.IsSolved()); err != nil {
		return err
	}

	fmt.Println(text)
	if id := r.sessionID(); id != "" && verbose {
		fmt.Printf("Session: %s\n", id)
	}
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	sv, err := solver.New(cfg.Solver)
	if err != nil {
		return err
	}

	r, err := newRun(storage.KindSolve)
	if err != nil {
		return err
	}
	defer r.close()

	// Scramble
	r.setPhase(storage.PhaseScramble)
	var scramble []string
	if solveScramble != "" {
		moves, err := notation.ParseStrict(solveScramble)
		if err != nil {
			_ = r.end("", sv.Name(), false)
			return err
		}
		if err := r.engine.Enqueue(moves...); err != nil {
			_ = r.end("", sv.Name(), false)
			return err
		}
		scramble = notation.Tokens(moves)
	} else {
		if scrambleLength <= 0 {
			return fmt.Errorf("--moves must be positive")
		}
		scramble = r.engine.Scramble(scrambleLength)
	}
	r.engine.Drain(time.Now())
	scrambleText := strings.Join(scramble, " ")
	if err := r.setScramble(scrambleText); err != nil {
		return err
	}
	fmt.Printf("Scramble: %s\n", scrambleText)

	// Solve
	ctx, cancel := context.WithTimeout(cmd.Context(), solveTimeout)
	defer cancel()

	start := time.Now()
	solution, err := sv.Solve(ctx, notation.ToSolverInput(r.engine.History()))
	if err != nil {
		_ = r.end("", sv.Name(), false)
		return fmt.Errorf("solver %s failed: %w", sv.Name(), err)
	}
	searched := time.Since(start)

	r.setPhase(storage.PhaseSolve)
	if skipped := r.engine.MoveFromList(solution); skipped > 0 {
		fmt.Printf("Warning: %d unknown solver tokens skipped\n", skipped)
	}
	simStart := time.Now()
	simEnd := r.engine.Drain(simStart)

	solved := r.engine.IsSolved()
	solutionText := strings.Join(solution, " ")
	if err := r.end(solutionText, sv.Name(), solved); err != nil {
		return err
	}

	fmt.Printf("Solution: %s\n", solutionText)
	fmt.Printf("Solver: %s (%s)\n", sv.Name(), searched.Round(time.Millisecond))
	fmt.Printf("Moves: %d, animation time: %s\n", len(solution), simEnd.Sub(simStart))
	if id := r.sessionID(); id != "" {
		fmt.Printf("Session: %s\n", id)
	}

	if err := r.engine.Validate(); err != nil {
		return err
	}
	if !solved {
		return fmt.Errorf("cube not solved after applying the solution")
	}
	fmt.Println("Solved.")
	return nil
}

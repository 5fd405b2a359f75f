package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/rubik/internal/notation"
	"github.com/SeamusWaldron/rubik/internal/storage"
)

var (
	listLimit    int
	showLast     bool
	showDescribe bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored sessions",
	Long:  `Display a list of recent sessions with their move counts and outcome.`,
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show details of a session",
	Long: `Display a stored session: its scramble, the solver's answer and every
committed move, grouped by phase.

Use --last to show the most recent session.`,
	RunE: runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its moves",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&listLimit, "limit", "n", 10, "Number of sessions to show")

	historyCmd.AddCommand(historyShowCmd)
	historyShowCmd.Flags().BoolVar(&showLast, "last", false, "Show the most recent session")
	historyShowCmd.Flags().BoolVar(&showDescribe, "describe", false, "Describe each move in words")

	historyCmd.AddCommand(historyDeleteCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := storage.NewSessionRepository(db).List(listLimit)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet. Try: rubik solve")
		return nil
	}

	moveRepo := storage.NewMoveRepository(db)
	fmt.Printf("%-10s %-20s %-9s %6s %7s %10s\n", "ID", "Started", "Kind", "Moves", "Solved", "Duration")
	for _, s := range sessions {
		count, err := moveRepo.Count(s.SessionID)
		if err != nil {
			return err
		}
		solved := "no"
		if s.Solved {
			solved = "yes"
		}
		fmt.Printf("%-10s %-20s %-9s %6d %7s %10s\n",
			shortID(s.SessionID),
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			s.Kind,
			count,
			solved,
			s.Duration().Round(time.Millisecond))
	}
	return nil
}

// resolveSession finds a session by full id, unique id prefix, or --last.
func resolveSession(repo *storage.SessionRepository, args []string, last bool) (*storage.Session, error) {
	if last {
		s, err := repo.GetLast()
		if err != nil {
			return nil, fmt.Errorf("failed to get last session: %w", err)
		}
		if s == nil {
			return nil, fmt.Errorf("no sessions found")
		}
		return s, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("specify a session id or --last")
	}

	if s, err := repo.Get(args[0]); err == nil && s != nil {
		return s, nil
	}
	sessions, err := repo.List(1000)
	if err != nil {
		return nil, err
	}
	var match *storage.Session
	for i := range sessions {
		if strings.HasPrefix(sessions[i].SessionID, args[0]) {
			if match != nil {
				return nil, fmt.Errorf("session id %q is ambiguous", args[0])
			}
			match = &sessions[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("session %q not found", args[0])
	}
	return match, nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := resolveSession(storage.NewSessionRepository(db), args, showLast)
	if err != nil {
		return err
	}

	fmt.Printf("Session: %s\n", s.SessionID)
	fmt.Printf("Kind: %s\n", s.Kind)
	fmt.Printf("Started: %s\n", s.StartedAt.Local().Format(time.RFC3339))
	if s.EndedAt != nil {
		fmt.Printf("Duration: %s\n", s.Duration().Round(time.Millisecond))
	}
	if scramble := deref(s.ScrambleText); scramble != "" {
		fmt.Printf("Scramble: %s\n", scramble)
	}
	if solution := deref(s.SolutionText); solution != "" {
		fmt.Printf("Solution: %s (%s)\n", solution, deref(s.Solver))
	}
	fmt.Printf("Solved: %v\n", s.Solved)
	fmt.Println()

	moveRepo := storage.NewMoveRepository(db)
	for _, phase := range []string{storage.PhaseScramble, storage.PhaseSolve, storage.PhaseManual} {
		records, err := moveRepo.GetBySessionPhase(s.SessionID, phase)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			continue
		}
		moves := storage.ToMoves(records)
		fmt.Printf("%s (%d quarter turns):\n", phase, len(moves))
		if showDescribe {
			for _, m := range notation.Simplify(moves) {
				fmt.Printf("  %-3s %s\n", m.Notation(), notation.Describe(m))
			}
		} else {
			fmt.Printf("  %s\n", notation.FormatSequence(notation.Simplify(moves)))
		}
	}
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewSessionRepository(db)
	s, err := resolveSession(repo, args, false)
	if err != nil {
		return err
	}
	if err := repo.Delete(s.SessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	fmt.Printf("Deleted %s\n", s.SessionID)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

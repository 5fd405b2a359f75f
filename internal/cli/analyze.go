package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/rubik/internal/analysis"
	"github.com/SeamusWaldron/rubik/internal/storage"
)

var (
	analyzeLast   bool
	analyzeAll    bool
	analyzeFormat string
	analyzeTopK   int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [session-id]",
	Short: "Analyze the moves of stored sessions",
	Long: `Report move statistics for a session: quarter turns, the length after
merging adjacent turns, cancellations and repeated patterns.

With --all, repeated move sequences are mined across every stored session.`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeLast, "last", false, "Analyze the most recent session")
	analyzeCmd.Flags().BoolVar(&analyzeAll, "all", false, "Mine patterns across all sessions")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "txt", "Output format (txt, json, yaml)")
	analyzeCmd.Flags().IntVar(&analyzeTopK, "top", 5, "Patterns to show per length")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessionRepo := storage.NewSessionRepository(db)
	moveRepo := storage.NewMoveRepository(db)

	if analyzeAll {
		sessions, err := sessionRepo.List(100000)
		if err != nil {
			return err
		}
		reports := make(map[string]*analysis.NGramReport)
		for _, s := range sessions {
			records, err := moveRepo.GetBySession(s.SessionID)
			if err != nil {
				return err
			}
			reports[s.SessionID] = analysis.MineNGrams(storage.ToMoves(records), 4, 8, analyzeTopK)
		}
		merged := analysis.MineNGramsAcrossSessions(reports, analyzeTopK)
		return printAnalysis(merged, func() {
			fmt.Printf("Sessions: %d\n", len(sessions))
			printNGrams(merged)
		})
	}

	s, err := resolveSession(sessionRepo, args, analyzeLast)
	if err != nil {
		return err
	}
	records, err := moveRepo.GetBySession(s.SessionID)
	if err != nil {
		return fmt.Errorf("failed to get moves: %w", err)
	}

	summary := analysis.Summarize(s, records)
	ngrams := analysis.MineNGrams(storage.ToMoves(records), 4, 8, analyzeTopK)

	out := struct {
		Summary *analysis.SessionSummary `json:"summary" yaml:"summary"`
		NGrams  *analysis.NGramReport    `json:"ngrams" yaml:"ngrams"`
	}{summary, ngrams}

	return printAnalysis(out, func() {
		fmt.Printf("Session: %s (%s)\n", summary.SessionID, summary.Kind)
		fmt.Printf("Quarter turns: %d (%d slice)\n", summary.QuarterTurns, summary.SliceTurns)
		fmt.Printf("After merging: %d (efficiency %.2f)\n", summary.OptimizedMoves, summary.Efficiency)
		fmt.Printf("Solved: %v\n", summary.Solved)
		for _, p := range summary.PhaseStats {
			fmt.Printf("  %-9s %4d turns, %4d merged\n", p.Phase, p.QuarterTurns, p.OptimizedMoves)
		}

		rep := summary.Repetitions
		fmt.Println()
		fmt.Printf("Cancellations: %d, merge opportunities: %d, wasted turns: %d\n",
			len(rep.ImmediateCancellations), len(rep.MergeOpportunities), rep.TotalWastedMoves)
		for _, p := range rep.BackAndForthPatterns {
			fmt.Printf("  back and forth %s x%d at %d\n", strings.Join(p.Pattern, " "), p.Count, p.StartIndex)
		}
		fmt.Println()
		printNGrams(ngrams)
	})
}

func printAnalysis(v any, text func()) error {
	switch strings.ToLower(analyzeFormat) {
	case "txt":
		text()
		return nil
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	case "yaml", "yml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}
	return fmt.Errorf("unknown format: %s (use txt, json or yaml)", analyzeFormat)
}

func printNGrams(report *analysis.NGramReport) {
	if len(report.TopNGrams) == 0 {
		fmt.Println("No repeated sequences.")
		return
	}
	ns := make([]int, 0, len(report.TopNGrams))
	for n := range report.TopNGrams {
		ns = append(ns, n)
	}
	sort.Ints(ns)

	fmt.Println("Repeated sequences:")
	for _, n := range ns {
		for _, ng := range report.TopNGrams[n] {
			fmt.Printf("  %2d x%-3d %s\n", n, ng.Count, strings.Join(ng.Sequence, " "))
		}
	}
}

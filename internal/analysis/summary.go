package analysis

import (
	"github.com/SeamusWaldron/rubik/internal/notation"
	"github.com/SeamusWaldron/rubik/internal/storage"
	"github.com/SeamusWaldron/rubik/pkg/types"
)

// SessionSummary contains statistics for a single stored session.
type SessionSummary struct {
	SessionID      string            `json:"session_id" yaml:"session_id"`
	Kind           string            `json:"kind" yaml:"kind"`
	DurationMs     int64             `json:"duration_ms" yaml:"duration_ms"`
	QuarterTurns   int               `json:"quarter_turns" yaml:"quarter_turns"`
	OptimizedMoves int               `json:"optimized_moves" yaml:"optimized_moves"`
	Efficiency     float64           `json:"efficiency" yaml:"efficiency"`
	SliceTurns     int               `json:"slice_turns" yaml:"slice_turns"`
	LayerCounts    map[string]int    `json:"layer_counts" yaml:"layer_counts"`
	PhaseStats     []PhaseStats      `json:"phase_stats,omitempty" yaml:"phase_stats,omitempty"`
	Repetitions    *RepetitionReport `json:"repetitions" yaml:"repetitions"`
	Solved         bool              `json:"solved" yaml:"solved"`
}

// PhaseStats contains statistics for the moves tagged with one phase.
type PhaseStats struct {
	Phase          string `json:"phase" yaml:"phase"`
	QuarterTurns   int    `json:"quarter_turns" yaml:"quarter_turns"`
	OptimizedMoves int    `json:"optimized_moves" yaml:"optimized_moves"`
}

// Summarize builds the summary of a session from its stored moves, which
// must be ordered by move index.
func Summarize(s *storage.Session, records []storage.MoveRecord) *SessionSummary {
	moves := storage.ToMoves(records)
	optimized := notation.Simplify(moves)

	summary := &SessionSummary{
		SessionID:      s.SessionID,
		Kind:           s.Kind,
		DurationMs:     s.Duration().Milliseconds(),
		QuarterTurns:   len(moves),
		OptimizedMoves: len(optimized),
		Efficiency:     CalculateEfficiency(moves, optimized),
		LayerCounts:    make(map[string]int),
		Repetitions:    AnalyzeRepetitions(moves),
		Solved:         s.Solved,
	}

	for _, m := range moves {
		summary.LayerCounts[string(m.Layer)]++
		if m.Layer.IsSlice() {
			summary.SliceTurns++
		}
	}

	byPhase := make(map[string][]types.Move)
	var order []string
	for _, r := range records {
		if _, ok := byPhase[r.Phase]; !ok {
			order = append(order, r.Phase)
		}
		byPhase[r.Phase] = append(byPhase[r.Phase], types.Move{Layer: types.Layer(r.Layer), Turn: types.Turn(r.Turn)})
	}
	for _, phase := range order {
		pm := byPhase[phase]
		summary.PhaseStats = append(summary.PhaseStats, PhaseStats{
			Phase:          phase,
			QuarterTurns:   len(pm),
			OptimizedMoves: len(notation.Simplify(pm)),
		})
	}

	return summary
}

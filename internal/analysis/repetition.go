package analysis

import (
	"github.com/SeamusWaldron/rubik/pkg/types"
)

// Cancellation represents an immediate move cancellation (e.g., R followed by R').
type Cancellation struct {
	Index1 int    `json:"index1" yaml:"index1"`
	Index2 int    `json:"index2" yaml:"index2"`
	Move1  string `json:"move1" yaml:"move1"`
	Move2  string `json:"move2" yaml:"move2"`
}

// MergeOpportunity represents adjacent same-layer moves that could be merged.
type MergeOpportunity struct {
	Index1     int    `json:"index1" yaml:"index1"`
	Index2     int    `json:"index2" yaml:"index2"`
	Move1      string `json:"move1" yaml:"move1"`
	Move2      string `json:"move2" yaml:"move2"`
	MergedMove string `json:"merged_move" yaml:"merged_move"`
}

// BackAndForthPattern represents alternating moves (e.g., R U R U R U).
type BackAndForthPattern struct {
	StartIndex int      `json:"start_index" yaml:"start_index"`
	EndIndex   int      `json:"end_index" yaml:"end_index"`
	Pattern    []string `json:"pattern" yaml:"pattern"`
	Count      int      `json:"count" yaml:"count"`
}

// RepetitionReport contains all repetition analysis results.
type RepetitionReport struct {
	ImmediateCancellations []Cancellation        `json:"immediate_cancellations" yaml:"immediate_cancellations"`
	MergeOpportunities     []MergeOpportunity    `json:"merge_opportunities" yaml:"merge_opportunities"`
	BackAndForthPatterns   []BackAndForthPattern `json:"back_and_forth_patterns" yaml:"back_and_forth_patterns"`
	TotalWastedMoves       int                   `json:"total_wasted_moves" yaml:"total_wasted_moves"`
}

// AnalyzeRepetitions analyzes a move sequence for repetitions and wasted motion.
func AnalyzeRepetitions(moves []types.Move) *RepetitionReport {
	report := &RepetitionReport{
		ImmediateCancellations: []Cancellation{},
		MergeOpportunities:     []MergeOpportunity{},
		BackAndForthPatterns:   []BackAndForthPattern{},
	}
	if len(moves) < 2 {
		return report
	}

	for i := 0; i < len(moves)-1; i++ {
		m1, m2 := moves[i], moves[i+1]
		if m1.Layer != m2.Layer {
			continue
		}

		merged := m1.Merge(m2)
		if merged == nil {
			report.ImmediateCancellations = append(report.ImmediateCancellations, Cancellation{
				Index1: i,
				Index2: i + 1,
				Move1:  m1.Notation(),
				Move2:  m2.Notation(),
			})
			report.TotalWastedMoves += 2
			continue
		}

		report.MergeOpportunities = append(report.MergeOpportunities, MergeOpportunity{
			Index1:     i,
			Index2:     i + 1,
			Move1:      m1.Notation(),
			Move2:      m2.Notation(),
			MergedMove: merged.Notation(),
		})
		report.TotalWastedMoves++
	}

	report.BackAndForthPatterns = findBackAndForth(moves)
	return report
}

// findBackAndForth finds alternating move patterns like R U R U R U.
func findBackAndForth(moves []types.Move) []BackAndForthPattern {
	patterns := []BackAndForthPattern{}
	if len(moves) < 4 {
		return patterns
	}

	i := 0
	for i < len(moves)-3 {
		a, b := moves[i], moves[i+1]
		if a.Layer == b.Layer {
			i++
			continue
		}

		count := 1
		j := i + 2
		for j < len(moves)-1 && moves[j] == a && moves[j+1] == b {
			count++
			j += 2
		}

		// Three repetitions are noteworthy.
		if count >= 3 {
			patterns = append(patterns, BackAndForthPattern{
				StartIndex: i,
				EndIndex:   i + count*2 - 1,
				Pattern:    []string{a.Notation(), b.Notation()},
				Count:      count,
			})
			i = j
		} else {
			i++
		}
	}
	return patterns
}

// CalculateEfficiency returns the ratio of optimized to original length.
func CalculateEfficiency(original, optimized []types.Move) float64 {
	if len(original) == 0 {
		return 1.0
	}
	return float64(len(optimized)) / float64(len(original))
}

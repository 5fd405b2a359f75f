package analysis

import (
	"testing"

	"github.com/SeamusWaldron/rubik/internal/notation"
	"github.com/SeamusWaldron/rubik/internal/storage"
	"github.com/SeamusWaldron/rubik/pkg/types"
)

func parse(t *testing.T, s string) []types.Move {
	t.Helper()
	moves, err := notation.ParseStrict(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return moves
}

func TestTokenRoundTrip(t *testing.T) {
	seen := make(map[uint8]bool)
	for _, l := range types.Layers {
		for _, turn := range []types.Turn{types.TurnCW, types.TurnCCW, types.Turn180} {
			m := types.Move{Layer: l, Turn: turn}
			tok := Token(m)
			if seen[tok] {
				t.Errorf("token %d reused by %s", tok, m)
			}
			seen[tok] = true
			if got := MoveFromToken(tok); got != m {
				t.Errorf("MoveFromToken(Token(%s)) = %s", m, got)
			}
		}
	}
	if tok := Token(types.Move{Layer: "X", Turn: types.TurnCW}); tok != 255 {
		t.Errorf("unknown layer token = %d, want 255", tok)
	}
}

func TestMineNGrams_FindsRepeatedTrigger(t *testing.T) {
	moves := parse(t, "R U R' U' R U R' U' R U R' U'")
	report := MineNGrams(moves, 4, 4, 1)

	top, ok := report.TopNGrams[4]
	if !ok || len(top) != 1 {
		t.Fatalf("expected one 4-gram, got %v", report.TopNGrams)
	}
	if top[0].Count != 3 {
		t.Errorf("count = %d, want 3", top[0].Count)
	}
	want := []string{"R", "U", "R'", "U'"}
	for i, s := range want {
		if top[0].Sequence[i] != s {
			t.Errorf("sequence = %v, want %v", top[0].Sequence, want)
			break
		}
	}
	if len(top[0].Occurrences) != 3 || top[0].Occurrences[2].StartIndex != 8 {
		t.Errorf("occurrences = %v", top[0].Occurrences)
	}
}

func TestMineNGrams_IgnoresSingletons(t *testing.T) {
	report := MineNGrams(parse(t, "R U F L B D"), 2, 3, 5)
	if len(report.TopNGrams) != 0 {
		t.Errorf("expected no repeated n-grams, got %v", report.TopNGrams)
	}
}

func TestMineNGramsAcrossSessions(t *testing.T) {
	a := MineNGrams(parse(t, "R U R' U' R U R' U'"), 4, 4, 3)
	b := MineNGrams(parse(t, "F R U R' U' R U R' U'"), 4, 4, 3)

	merged := MineNGramsAcrossSessions(map[string]*NGramReport{"a": a, "b": b}, 1)
	top := merged.TopNGrams[4]
	if len(top) != 1 {
		t.Fatalf("expected one merged 4-gram, got %v", merged.TopNGrams)
	}
	if top[0].Count != 4 {
		t.Errorf("merged count = %d, want 4", top[0].Count)
	}
	if top[0].Occurrences[0].SessionID != "a" {
		t.Errorf("first occurrence from %q, want a", top[0].Occurrences[0].SessionID)
	}
}

func TestAnalyzeRepetitions(t *testing.T) {
	report := AnalyzeRepetitions(parse(t, "R R' U U F2 F2 L"))

	if len(report.ImmediateCancellations) != 2 {
		t.Errorf("cancellations = %v, want 2", report.ImmediateCancellations)
	}
	if len(report.MergeOpportunities) != 1 || report.MergeOpportunities[0].MergedMove != "U2" {
		t.Errorf("merges = %v, want one U2", report.MergeOpportunities)
	}
	if report.TotalWastedMoves != 5 {
		t.Errorf("wasted = %d, want 5", report.TotalWastedMoves)
	}
}

func TestBackAndForth(t *testing.T) {
	report := AnalyzeRepetitions(parse(t, "R U R U R U D"))
	if len(report.BackAndForthPatterns) != 1 {
		t.Fatalf("patterns = %v, want 1", report.BackAndForthPatterns)
	}
	p := report.BackAndForthPatterns[0]
	if p.StartIndex != 0 || p.EndIndex != 5 || p.Count != 3 {
		t.Errorf("pattern = %+v", p)
	}
}

func TestSummarize(t *testing.T) {
	s := &storage.Session{SessionID: "s1", Kind: storage.KindSolve, Solved: true}
	records := []storage.MoveRecord{
		{MoveIndex: 0, Phase: storage.PhaseScramble, Layer: "R", Turn: 1, Notation: "R"},
		{MoveIndex: 1, Phase: storage.PhaseScramble, Layer: "V", Turn: 1, Notation: "V"},
		{MoveIndex: 2, Phase: storage.PhaseSolve, Layer: "V", Turn: -1, Notation: "V'"},
		{MoveIndex: 3, Phase: storage.PhaseSolve, Layer: "R", Turn: -1, Notation: "R'"},
	}

	sum := Summarize(s, records)
	if sum.QuarterTurns != 4 || sum.OptimizedMoves != 0 {
		t.Errorf("turns = %d optimized = %d, want 4 and 0", sum.QuarterTurns, sum.OptimizedMoves)
	}
	if sum.SliceTurns != 2 || sum.LayerCounts["R"] != 2 {
		t.Errorf("slice turns = %d, layer counts = %v", sum.SliceTurns, sum.LayerCounts)
	}
	if len(sum.PhaseStats) != 2 || sum.PhaseStats[0].Phase != storage.PhaseScramble || sum.PhaseStats[1].OptimizedMoves != 2 {
		t.Errorf("phase stats = %+v", sum.PhaseStats)
	}
	if len(sum.Repetitions.ImmediateCancellations) != 1 {
		t.Errorf("expected the V V' cancellation, got %v", sum.Repetitions.ImmediateCancellations)
	}
}

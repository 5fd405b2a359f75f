package analysis

import (
	"sort"

	"github.com/SeamusWaldron/rubik/pkg/types"
)

// NGram represents a repeated move sequence.
type NGram struct {
	N           int               `json:"n" yaml:"n"`
	Sequence    []string          `json:"sequence" yaml:"sequence"`
	Tokens      []uint8           `json:"-" yaml:"-"`
	Count       int               `json:"count" yaml:"count"`
	Occurrences []NGramOccurrence `json:"occurrences,omitempty" yaml:"occurrences,omitempty"`
}

// NGramOccurrence represents where an n-gram was found.
type NGramOccurrence struct {
	SessionID  string `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	StartIndex int    `json:"start_index" yaml:"start_index"`
}

// NGramReport contains the results of n-gram mining.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams" yaml:"top_ngrams"` // Keyed by n
}

// maxOccurrences bounds the sample positions kept per n-gram.
const maxOccurrences = 10

// RollingHash implements Rabin-Karp rolling hash for efficient n-gram detection.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1) for removal
	window []uint8
	n      int
}

// NewRollingHash creates a new rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{
		base:   31,
		n:      n,
		window: make([]uint8, 0, n),
	}
	rh.pow = 1
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}
	return rh
}

// Roll adds a token, dropping the oldest once the window is full.
func (rh *RollingHash) Roll(token uint8) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, token)
		rh.hash = rh.hash*rh.base + uint64(token)
		return
	}

	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(token)
	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = token
}

// Hash returns the current hash value.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Window returns a copy of the current window.
func (rh *RollingHash) Window() []uint8 {
	return append([]uint8(nil), rh.window...)
}

// Ready returns true if the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

// ngramEntry tracks n-gram occurrences during mining. Entries sharing a
// hash are chained so collisions are counted separately.
type ngramEntry struct {
	tokens      []uint8
	first       int
	count       int
	occurrences []NGramOccurrence
}

// MineNGrams finds the top-K most frequent repeated n-grams for each n in
// [minN, maxN].
func MineNGrams(moves []types.Move, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{
		TopNGrams: make(map[int][]NGram),
	}
	if minN < 1 || len(moves) < minN {
		return report
	}

	tokens := make([]uint8, len(moves))
	for i, m := range moves {
		tokens[i] = Token(m)
	}

	for n := minN; n <= maxN && n <= len(moves); n++ {
		if ngrams := mineNGramsForN(tokens, n, topK); len(ngrams) > 0 {
			report.TopNGrams[n] = ngrams
		}
	}
	return report
}

func mineNGramsForN(tokens []uint8, n, topK int) []NGram {
	counts := make(map[uint64][]*ngramEntry)
	rh := NewRollingHash(n)

	for i, tok := range tokens {
		rh.Roll(tok)
		if !rh.Ready() {
			continue
		}
		start := i - n + 1
		window := tokens[start : i+1]

		var entry *ngramEntry
		for _, e := range counts[rh.Hash()] {
			if slicesEqual(e.tokens, window) {
				entry = e
				break
			}
		}
		if entry == nil {
			entry = &ngramEntry{tokens: rh.Window(), first: start}
			counts[rh.Hash()] = append(counts[rh.Hash()], entry)
		}
		entry.count++
		if len(entry.occurrences) < maxOccurrences {
			entry.occurrences = append(entry.occurrences, NGramOccurrence{StartIndex: start})
		}
	}

	// Only n-grams that appear more than once are interesting.
	var entries []*ngramEntry
	for _, chain := range counts {
		for _, e := range chain {
			if e.count >= 2 {
				entries = append(entries, e)
			}
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].first < entries[j].first
	})
	if len(entries) > topK {
		entries = entries[:topK]
	}

	result := make([]NGram, len(entries))
	for i, e := range entries {
		result[i] = NGram{
			N:           n,
			Sequence:    sequence(e.tokens),
			Tokens:      e.tokens,
			Count:       e.count,
			Occurrences: e.occurrences,
		}
	}
	return result
}

func sequence(tokens []uint8) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = MoveFromToken(t).Notation()
	}
	return out
}

func slicesEqual(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MineNGramsAcrossSessions aggregates per-session reports.
func MineNGramsAcrossSessions(reports map[string]*NGramReport, topK int) *NGramReport {
	out := &NGramReport{
		TopNGrams: make(map[int][]NGram),
	}

	ns := make(map[int]bool)
	for _, r := range reports {
		for n := range r.TopNGrams {
			ns[n] = true
		}
	}

	ids := make([]string, 0, len(reports))
	for id := range reports {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for n := range ns {
		aggregated := make(map[string]*NGram)
		var order []string
		for _, id := range ids {
			for _, ng := range reports[id].TopNGrams[n] {
				key := ngramKey(ng.Tokens)
				existing, ok := aggregated[key]
				if !ok {
					existing = &NGram{N: ng.N, Sequence: ng.Sequence, Tokens: ng.Tokens}
					aggregated[key] = existing
					order = append(order, key)
				}
				existing.Count += ng.Count
				for _, occ := range ng.Occurrences {
					if len(existing.Occurrences) < maxOccurrences {
						occ.SessionID = id
						existing.Occurrences = append(existing.Occurrences, occ)
					}
				}
			}
		}

		ngrams := make([]NGram, 0, len(order))
		for _, key := range order {
			ngrams = append(ngrams, *aggregated[key])
		}
		sort.SliceStable(ngrams, func(i, j int) bool {
			return ngrams[i].Count > ngrams[j].Count
		})
		if len(ngrams) > topK {
			ngrams = ngrams[:topK]
		}
		if len(ngrams) > 0 {
			out.TopNGrams[n] = ngrams
		}
	}
	return out
}

// ngramKey creates a string key for an n-gram token sequence.
func ngramKey(tokens []uint8) string {
	result := make([]byte, len(tokens))
	for i, t := range tokens {
		result[i] = t + 'A'
	}
	return string(result)
}

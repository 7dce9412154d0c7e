package query

import (
	"strings"

	"github.com/flaxandteal/berlin-go/internal/ids"
)

// SearchableStringSet is the classified body of a query: recognized stop
// words, exact corpus terms, and inexact (not-in-vocabulary) terms bucketed
// by n-gram size so the scorer can compare each word, doublet and triplet
// window of a subject against the bucket of the same size.
type SearchableStringSet struct {
	StopWords []ids.Id
	stopSet   map[ids.Id]bool

	Exact []MatchDef[ids.Id]

	NotExactWords    []MatchDef[string]
	NotExactDoublets []MatchDef[string]
	NotExactTriplets []MatchDef[string]
}

// NewSearchableStringSet creates a set with the given recognized stop
// words.
func NewSearchableStringSet(stopWords []ids.Id) *SearchableStringSet {
	set := make(map[ids.Id]bool, len(stopWords))
	for _, w := range stopWords {
		set[w] = true
	}
	return &SearchableStringSet{StopWords: stopWords, stopSet: set}
}

// bucket identifies which not_exact list a term belongs to.
type bucket int

const (
	bucketWord bucket = iota
	bucketDoublet
	bucketTriplet
)

// Add classifies matchable per spec.md §4.G step 4: a known corpus term
// (length > 1, not a stop word) becomes an exact match; an unknown term is
// kept as an inexact candidate only if allowInexact and it is short enough
// to be FST-eligible (LevLengthMax).
func (s *SearchableStringSet) Add(table *ids.Table, matchable, normalized string, allowInexact bool, b bucket) {
	if id, ok := table.Lookup(matchable); ok {
		if len(matchable) <= 1 {
			return
		}
		if s.stopSet[id] {
			return
		}
		s.addExact(id, matchable, normalized)
		return
	}
	if allowInexact && runeLen(matchable) < LevLengthMax {
		s.addNotExact(matchable, normalized, b)
	}
}

func (s *SearchableStringSet) addExact(id ids.Id, matchable, normalized string) {
	s.Exact = append(s.Exact, MatchDef[ids.Id]{Term: id, Offset: offsetOf(normalized, matchable)})
}

func (s *SearchableStringSet) addNotExact(matchable, normalized string, b bucket) {
	def := MatchDef[string]{Term: matchable, Offset: offsetOf(normalized, matchable)}
	switch b {
	case bucketDoublet:
		s.NotExactDoublets = append(s.NotExactDoublets, def)
	case bucketTriplet:
		s.NotExactTriplets = append(s.NotExactTriplets, def)
	default:
		s.NotExactWords = append(s.NotExactWords, def)
	}
}

// AllNotExact returns every inexact term across all buckets, for FST
// candidate gathering which does not care about n-gram size.
func (s *SearchableStringSet) AllNotExact() []MatchDef[string] {
	out := make([]MatchDef[string], 0, len(s.NotExactWords)+len(s.NotExactDoublets)+len(s.NotExactTriplets))
	out = append(out, s.NotExactWords...)
	out = append(out, s.NotExactDoublets...)
	out = append(out, s.NotExactTriplets...)
	return out
}

func offsetOf(normalized, term string) Offset {
	idx := strings.Index(normalized, term)
	if idx < 0 {
		return Offset{}
	}
	return Offset{Start: idx, End: idx + len(term)}
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

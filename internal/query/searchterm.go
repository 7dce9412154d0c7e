package query

import (
	"github.com/flaxandteal/berlin-go/internal/ids"
	"github.com/flaxandteal/berlin-go/internal/normalize"
)

// LevLengthMax bounds the length of tokens eligible for fuzzy FST lookup,
// preventing automaton blow-up on long noise tokens (spec.md §4.G).
const LevLengthMax = 16

// stopWords is the fixed 15-word English stop list from spec.md §4.G.
var stopWords = map[string]bool{
	"any": true, "all": true, "are": true, "is": true, "at": true,
	"to": true, "in": true, "on": true, "of": true, "for": true,
	"by": true, "and": true, "was": true, "did": true, "the": true,
}

// SearchTerm is a raw query classified into stop words, codes, and
// exact/inexact matched terms, ready for candidate gather and scoring.
type SearchTerm struct {
	Raw        string
	Normalized string

	Codes   []MatchDef[ids.Id]
	Matches *SearchableStringSet

	StateFilter *ids.Id
	Limit       int
	LevDist     uint32
}

// FromRawQuery implements spec.md §4.G: normalize, Unicode-word split,
// stop-word detection, doublet/triplet n-gram construction with offsets,
// and exact/inexact classification.
func FromRawQuery(table *ids.Table, raw string, stateFilter *string, limit int, levDist uint32) *SearchTerm {
	normalized := normalize.String(raw)
	words := normalize.Words(normalized)

	var stop []ids.Id
	for _, w := range words {
		if !stopWords[w] {
			continue
		}
		if id, ok := table.Lookup(w); ok {
			stop = append(stop, id)
		}
	}
	stop = dedupIds(stop)

	st := &SearchTerm{
		Raw:         raw,
		Normalized:  normalized,
		LevDist:     levDist,
		Limit:       limit,
		Matches:     NewSearchableStringSet(stop),
		StateFilter: internOptionalState(table, stateFilter),
	}

	for i, w := range words {
		if i+1 < len(words) {
			doublet := w + " " + words[i+1]
			st.Matches.Add(table, doublet, normalized, true, bucketDoublet)
			if i+2 < len(words) {
				triplet := doublet + " " + words[i+2]
				st.Matches.Add(table, triplet, normalized, false, bucketTriplet)
			}
		}
		st.addWord(table, w, normalized)
	}
	return st
}

// addWord applies the single-word step of §4.G's matches.add policy, plus
// the original berlin-core rule (supplemented per SPEC_FULL §4): a known
// 2-3 byte token is also recorded as a code candidate, since codes (alpha-2
// country, subdivision, IATA, etc.) are exactly this length.
func (st *SearchTerm) addWord(table *ids.Table, w, normalized string) {
	id, ok := table.Lookup(w)
	if ok && len(w) >= 2 && len(w) <= 3 {
		st.Codes = append(st.Codes, MatchDef[ids.Id]{Term: id, Offset: offsetOf(normalized, w)})
	}
	st.Matches.Add(table, w, normalized, true, bucketWord)
}

func internOptionalState(table *ids.Table, stateFilter *string) *ids.Id {
	if stateFilter == nil {
		return nil
	}
	id, ok := table.Lookup(*stateFilter)
	if !ok {
		return nil
	}
	return &id
}

func dedupIds(in []ids.Id) []ids.Id {
	if len(in) == 0 {
		return in
	}
	seen := make(map[ids.Id]bool, len(in))
	out := in[:0:0]
	for _, id := range in {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// CodesMatch implements spec.md §4.I step 1: an authoritative code match.
// Returns the best Score among subjectCodes that appear in the query's
// codes, or nil if none match.
func (st *SearchTerm) CodesMatch(subjectCodes []ids.Id, score int64) *Score {
	var best *Score
	for _, c := range subjectCodes {
		for _, tc := range st.Codes {
			if tc.Term != c {
				continue
			}
			candidate := Score{Value: score, Offset: tc.Offset}
			if best == nil || best.Less(candidate) {
				best = &candidate
			}
		}
	}
	return best
}

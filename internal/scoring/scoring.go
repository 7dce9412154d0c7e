// Package scoring implements Component I: the per-location scorer.
// Search is a package-level function rather than a method on
// store.Location to avoid a store <-> query import cycle (store is a leaf
// package per spec.md's layering); its signature still mirrors the
// original's `loc.search(st) -> Option<Score>`.
package scoring

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/flaxandteal/berlin-go/internal/ids"
	"github.com/flaxandteal/berlin-go/internal/query"
	"github.com/flaxandteal/berlin-go/internal/store"
)

// Tuning constants (spec.md §9 Open Questions), calibrated against the
// §8 scenario table.
const (
	ScoreSoftMax             int64 = 1000
	StopWordsPenalty         int64 = 200
	SearchInclusionThreshold int64 = 300
)

// Search implements spec.md §4.I: an authoritative code match short-
// circuits; otherwise the location's score is the max, over every name
// (plus its own id) treated as a subject, of that subject's own best
// word/doublet/triplet match against the query.
func Search(table *ids.Table, loc *store.Location, term *query.SearchTerm) (query.Score, bool) {
	if s := term.CodesMatch(loc.Codes, ScoreSoftMax); s != nil {
		return *s, true
	}

	best := query.NegativeInfinity()
	found := false

	for _, subjectID := range subjects(loc) {
		subject := table.Bytes(subjectID)
		if subject == "" {
			continue
		}
		if s, ok := matchSubject(table, term, subject); ok {
			best = query.Max(best, s)
			found = true
		}
	}

	if !found || best.Value <= SearchInclusionThreshold {
		return query.Score{}, false
	}
	return best, true
}

func subjects(loc *store.Location) []ids.Id {
	out := make([]ids.Id, 0, len(loc.Names)+1)
	out = append(out, loc.Names...)
	out = append(out, loc.ID)
	return out
}

// matchSubject implements SearchableStringSet::match_str's effective
// behavior (spec.md §4.I step 2): the subject contributes its own sliding
// word/doublet/triplet windows, each compared against the query bucket of
// matching arity (the "comparator shape"), independent of the subject's
// total word count — a 5-word subject still matches a single-word exact
// query term at the unigram level. The subject's score is the max across
// every window, with the stop-word penalty applied once, after the max,
// and only when the winning window was itself a single word.
func matchSubject(table *ids.Table, term *query.SearchTerm, subject string) (query.Score, bool) {
	words := strings.Fields(subject)
	if len(words) == 0 {
		return query.Score{}, false
	}

	unigrams := subjectWindows(words, 1)
	doublets := subjectWindows(words, 2)
	triplets := subjectWindows(words, 3)

	best := query.NegativeInfinity()
	bestWindow := ""
	found := false

	consider := func(s query.Score, window string, ok bool) {
		if !ok {
			return
		}
		found = true
		if best.Less(s) {
			best = s
			bestWindow = window
		}
	}

	consider(exactMatch(table, term.Matches.Exact, unigrams, doublets, triplets))
	consider(bestNotExactMatch(unigrams, term.Matches.NotExactWords))
	consider(bestNotExactMatch(doublets, term.Matches.NotExactDoublets))
	consider(bestNotExactMatch(triplets, term.Matches.NotExactTriplets))

	if !found {
		return query.Score{}, false
	}
	return applyStopWordPenalty(table, term, bestWindow, best), true
}

// subjectWindows slides a window of the given word count over subject's
// words, joining each window back into a space-separated string so it can
// be compared byte-for-byte against query terms of the same arity.
func subjectWindows(words []string, size int) []string {
	if len(words) < size {
		return nil
	}
	out := make([]string, 0, len(words)-size+1)
	for i := 0; i+size <= len(words); i++ {
		out = append(out, strings.Join(words[i:i+size], " "))
	}
	return out
}

// exactMatch checks every query exact term against every subject window
// (of any arity, since Exact mixes words, doublets, and triplets that
// happen to intern to a known corpus string) for byte-for-byte equality.
func exactMatch(table *ids.Table, exact []query.MatchDef[ids.Id], unigrams, doublets, triplets []string) (query.Score, string, bool) {
	windows := make([]string, 0, len(unigrams)+len(doublets)+len(triplets))
	windows = append(windows, unigrams...)
	windows = append(windows, doublets...)
	windows = append(windows, triplets...)

	best := query.NegativeInfinity()
	bestWindow := ""
	found := false
	for _, m := range exact {
		text := table.Bytes(m.Term)
		for _, w := range windows {
			if w != text {
				continue
			}
			candidate := query.Score{Value: ScoreSoftMax + int64(len(w)), Offset: m.Offset}
			if best.Less(candidate) {
				best = candidate
				bestWindow = w
			}
			found = true
		}
	}
	return best, bestWindow, found
}

func bestNotExactMatch(windows []string, candidates []query.MatchDef[string]) (query.Score, string, bool) {
	best := query.NegativeInfinity()
	bestWindow := ""
	found := false
	for _, w := range windows {
		for _, c := range candidates {
			if !withinLengthWindow(len(c.Term), len(w)) {
				continue
			}
			var value int64
			if len(c.Term) > 3 && strings.HasPrefix(w, c.Term) {
				value = ScoreSoftMax + 2*int64(len(c.Term))
			} else {
				value = int64(normalizedLevenshtein(w, c.Term) * float64(ScoreSoftMax))
			}
			candidate := query.Score{Value: value, Offset: c.Offset}
			if best.Less(candidate) {
				best = candidate
				bestWindow = w
			}
			found = true
		}
	}
	return best, bestWindow, found
}

// withinLengthWindow implements the §4.I filter: a not_exact candidate is
// only considered if its length is within one character of the subject's.
func withinLengthWindow(candidateLen, subjectLen int) bool {
	return candidateLen > subjectLen-2 && candidateLen < subjectLen+2
}

// normalizedLevenshtein is GLOSSARY's `1 - editDistance(a,b) / max(|a|,|b|)`.
func normalizedLevenshtein(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	maxLen := len([]rune(a))
	if bl := len([]rune(b)); bl > maxLen {
		maxLen = bl
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

func applyStopWordPenalty(table *ids.Table, term *query.SearchTerm, window string, s query.Score) query.Score {
	if strings.Contains(window, " ") {
		return s
	}
	id, ok := table.Lookup(window)
	if !ok {
		return s
	}
	for _, sw := range term.Matches.StopWords {
		if sw == id {
			return query.Score{Value: s.Value - StopWordsPenalty, Offset: s.Offset}
		}
	}
	return s
}

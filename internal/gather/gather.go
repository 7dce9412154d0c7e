// Package gather implements Component H: turning a classified query into a
// candidate location set with minimal false negatives, via an O(1) "grab"
// of directly-known terms and an FST "search" of everything else.
package gather

import (
	"fmt"
	"unicode/utf8"

	"github.com/flaxandteal/berlin-go/internal/ids"
	"github.com/flaxandteal/berlin-go/internal/query"
	"github.com/flaxandteal/berlin-go/internal/vocab"
)

// Length thresholds tiering the edit-distance budget per term length,
// keeping automaton cost bounded on longer words (spec.md §4.H).
const (
	LEV3LengthMax = 8
	LEV2LengthMax = 12
	// minFuzzyTermLen: terms at or below this length are too cheap to be
	// informative and are filtered by the caller before fuzzy search.
	minFuzzyTermLen = 3
)

// tieredLevDist narrows the configured edit-distance budget as a term
// grows longer.
func tieredLevDist(levDist uint32, runeLen int) uint32 {
	switch {
	case runeLen < LEV3LengthMax:
		return levDist
	case runeLen < LEV2LengthMax:
		return minU32(levDist, 2)
	default:
		return minU32(levDist, 1)
	}
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// Candidates implements the two-pronged strategy of §4.H: grab exact terms
// with a direct word-index entry, then FST-search everything else
// (inexact terms, plus exact terms with no direct entry).
func Candidates(table *ids.Table, idx *vocab.WordIndex, term *query.SearchTerm) (map[ids.Id]bool, error) {
	preFiltered := make(map[ids.Id]bool)

	var toSearch []string
	for _, t := range term.Matches.Exact {
		if locs, ok := idx.Grab(t.Term); ok {
			for _, k := range locs {
				preFiltered[k] = true
			}
			continue
		}
		toSearch = append(toSearch, table.Bytes(t.Term))
	}
	for _, t := range term.Matches.AllNotExact() {
		toSearch = append(toSearch, t.Term)
	}

	for _, s := range toSearch {
		runeLen := utf8.RuneCountInString(s)
		if runeLen <= minFuzzyTermLen {
			continue
		}
		lev := tieredLevDist(term.LevDist, runeLen)
		aut, err := vocab.TermAutomaton(s, lev)
		if err != nil {
			return nil, fmt.Errorf("gather: building automaton for %q: %w", s, err)
		}
		ordinals, err := idx.StreamOrdinals(aut)
		if err != nil {
			return nil, fmt.Errorf("gather: streaming %q: %w", s, err)
		}
		for _, ord := range ordinals {
			for _, k := range idx.LocationsAt(ord) {
				preFiltered[k] = true
			}
		}
	}

	return preFiltered, nil
}

// Package vocab builds Components E and F: the word index (word -> set of
// location keys) and the vocabulary FST over its sorted keys, supporting
// prefix and bounded-edit-distance lookup (spec.md §4.E, §4.F).
package vocab

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/blevesearch/vellum"
	vlevenshtein "github.com/blevesearch/vellum/levenshtein"

	"github.com/flaxandteal/berlin-go/internal/ids"
	"github.com/flaxandteal/berlin-go/internal/store"
)

// WordIndex is the frozen, query-time word index + FST. Construction order
// (byte-sorted vocabulary) defines each word's ordinal permanently.
type WordIndex struct {
	words         []ids.Id  // ordinal -> word id
	locations     [][]ids.Id // ordinal -> sorted location keys
	ordinalByWord map[ids.Id]int
	fst           *vellum.FST
}

// Build indexes every word, code, and name across locs and constructs the
// vocabulary FST. Mirrors the original's LocationsDb::mk_fst.
func Build(table *ids.Table, locs []*store.Location) (*WordIndex, error) {
	setByWord := make(map[ids.Id]map[ids.Id]bool)
	addAll := func(terms []ids.Id, key ids.Id) {
		for _, w := range terms {
			set, ok := setByWord[w]
			if !ok {
				set = make(map[ids.Id]bool)
				setByWord[w] = set
			}
			set[key] = true
		}
	}
	for _, loc := range locs {
		addAll(loc.Words, loc.Key)
		addAll(loc.Codes, loc.Key)
		addAll(loc.Names, loc.Key)
	}

	words := make([]ids.Id, 0, len(setByWord))
	for w := range setByWord {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool { return table.Less(words[i], words[j]) })

	locations := make([][]ids.Id, len(words))
	for i, w := range words {
		set := setByWord[w]
		keys := make([]ids.Id, 0, len(set))
		for k := range set {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(a, b int) bool { return table.Less(keys[a], keys[b]) })
		locations[i] = keys
	}

	var buf bytes.Buffer
	builder, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, fmt.Errorf("vocab: creating fst builder: %w", err)
	}
	ordinalByWord := make(map[ids.Id]int, len(words))
	for i, w := range words {
		if err := builder.Insert([]byte(table.Bytes(w)), uint64(i)); err != nil {
			return nil, fmt.Errorf("vocab: inserting %q: %w", table.Bytes(w), err)
		}
		ordinalByWord[w] = i
	}
	if err := builder.Close(); err != nil {
		return nil, fmt.Errorf("vocab: closing fst builder: %w", err)
	}
	fst, err := vellum.Load(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("vocab: loading fst: %w", err)
	}

	return &WordIndex{
		words:         words,
		locations:     locations,
		ordinalByWord: ordinalByWord,
		fst:           fst,
	}, nil
}

// Grab returns the location set for a word known to the vocabulary
// directly, without any fuzzy expansion — the O(1) path of §4.H step 1.
func (w *WordIndex) Grab(word ids.Id) ([]ids.Id, bool) {
	ord, ok := w.ordinalByWord[word]
	if !ok {
		return nil, false
	}
	return w.locations[ord], true
}

// LocationsAt returns the location set for a dense vocabulary ordinal.
func (w *WordIndex) LocationsAt(ordinal uint64) []ids.Id {
	if int(ordinal) >= len(w.locations) {
		return nil
	}
	return w.locations[int(ordinal)]
}

// TermAutomaton builds the Levenshtein(term, d) ∪ StartsWith(term)
// automaton for a single fuzzy term, per spec.md §4.H.
func TermAutomaton(term string, levDist uint32) (vellum.Automaton, error) {
	if levDist > 255 {
		levDist = 255
	}
	lev, err := vlevenshtein.New(term, uint8(levDist))
	if err != nil {
		return nil, fmt.Errorf("vocab: building levenshtein automaton for %q: %w", term, err)
	}
	prefix := newPrefixAutomaton(term)
	return newOrAutomaton(lev, prefix), nil
}

// StreamOrdinals runs aut against the vocabulary FST and returns every
// matching ordinal.
func (w *WordIndex) StreamOrdinals(aut vellum.Automaton) ([]uint64, error) {
	iter, err := w.fst.Search(aut, nil, nil)
	if err == vellum.ErrIteratorDone {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("vocab: searching fst: %w", err)
	}
	var out []uint64
	for err == nil {
		_, v := iter.Current()
		out = append(out, v)
		err = iter.Next()
	}
	if err != nil && err != vellum.ErrIteratorDone {
		return nil, fmt.Errorf("vocab: streaming fst: %w", err)
	}
	return out, nil
}

// Len returns the number of distinct vocabulary words.
func (w *WordIndex) Len() int { return len(w.words) }

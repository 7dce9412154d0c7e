package vocab

import (
	"testing"

	"github.com/flaxandteal/berlin-go/internal/ids"
	"github.com/flaxandteal/berlin-go/internal/store"
)

func buildTestIndex(t *testing.T) (*ids.Table, *WordIndex) {
	t.Helper()
	table := ids.NewTable(16)
	locs := []*store.Location{
		{
			Key:   table.Intern("UN-LOCODE-bg:blo"),
			ID:    table.Intern("blo"),
			Codes: []ids.Id{table.Intern("blo")},
			Names: []ids.Id{table.Intern("lyuliakovo")},
			Words: []ids.Id{table.Intern("lyuliakovo")},
		},
		{
			Key:   table.Intern("UN-LOCODE-gb:abc"),
			ID:    table.Intern("abc"),
			Codes: []ids.Id{table.Intern("abc")},
			Names: []ids.Id{table.Intern("abercarn")},
			Words: []ids.Id{table.Intern("abercarn")},
		},
	}
	idx, err := Build(table, locs)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return table, idx
}

func TestGrabFindsKnownWord(t *testing.T) {
	table, idx := buildTestIndex(t)
	word, ok := table.Lookup("lyuliakovo")
	if !ok {
		t.Fatalf("expected word to be interned")
	}
	locs, ok := idx.Grab(word)
	if !ok || len(locs) != 1 {
		t.Fatalf("expected exactly one location for lyuliakovo")
	}
}

func TestGrabMissesUnknownWord(t *testing.T) {
	table, idx := buildTestIndex(t)
	table.Intern("nowhere")
	word, _ := table.Lookup("nowhere")
	if _, ok := idx.Grab(word); ok {
		t.Fatalf("expected a word never added to any location to miss")
	}
}

func TestTermAutomatonFindsFuzzyMatch(t *testing.T) {
	table, idx := buildTestIndex(t)
	abercarnKey, ok := table.Lookup("UN-LOCODE-gb:abc")
	if !ok {
		t.Fatalf("expected abercarn's key to be interned")
	}

	aut, err := TermAutomaton("abercorn", 2)
	if err != nil {
		t.Fatalf("building automaton: %v", err)
	}
	ordinals, err := idx.StreamOrdinals(aut)
	if err != nil {
		t.Fatalf("streaming: %v", err)
	}
	if len(ordinals) == 0 {
		t.Fatalf("expected abercorn to fuzzy-match abercarn within edit distance 2")
	}
	found := false
	for _, ord := range ordinals {
		for _, key := range idx.LocationsAt(ord) {
			if key == abercarnKey {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected the fuzzy match to resolve to the Abercarn locode")
	}
}

func TestTermAutomatonFindsPrefixMatch(t *testing.T) {
	_, idx := buildTestIndex(t)
	aut, err := TermAutomaton("lyulia", 0)
	if err != nil {
		t.Fatalf("building automaton: %v", err)
	}
	ordinals, err := idx.StreamOrdinals(aut)
	if err != nil {
		t.Fatalf("streaming: %v", err)
	}
	if len(ordinals) == 0 {
		t.Fatalf("expected a prefix match for a truncated known word")
	}
}

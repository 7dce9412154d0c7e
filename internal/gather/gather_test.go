package gather

import (
	"testing"

	"github.com/flaxandteal/berlin-go/internal/ids"
	"github.com/flaxandteal/berlin-go/internal/query"
	"github.com/flaxandteal/berlin-go/internal/store"
	"github.com/flaxandteal/berlin-go/internal/vocab"
)

func buildFixture(t *testing.T) (*ids.Table, *vocab.WordIndex) {
	t.Helper()
	table := ids.NewTable(16)
	key := table.Intern("UN-LOCODE-gb:abc")
	locs := []*store.Location{
		{
			Key:   key,
			ID:    table.Intern("abc"),
			Codes: []ids.Id{table.Intern("abc")},
			Names: []ids.Id{table.Intern("abercarn")},
			Words: []ids.Id{table.Intern("abercarn")},
		},
	}
	idx, err := vocab.Build(table, locs)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return table, idx
}

func TestCandidatesGrabsExactTerm(t *testing.T) {
	table, idx := buildFixture(t)
	term := query.FromRawQuery(table, "abercarn", nil, 5, 2)

	candidates, err := Candidates(table, idx, term)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected exactly one candidate, got %d", len(candidates))
	}
}

func TestCandidatesSearchesFuzzyTerm(t *testing.T) {
	table, idx := buildFixture(t)
	term := query.FromRawQuery(table, "abercorn", nil, 5, 2)

	candidates, err := Candidates(table, idx, term)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected the fuzzy term to still surface the candidate, got %d", len(candidates))
	}
}

func TestTieredLevDistNarrowsForLongerTerms(t *testing.T) {
	if got := tieredLevDist(3, 5); got != 3 {
		t.Fatalf("expected short terms to keep the full budget, got %d", got)
	}
	if got := tieredLevDist(3, 9); got != 2 {
		t.Fatalf("expected mid-length terms capped at 2, got %d", got)
	}
	if got := tieredLevDist(3, 13); got != 1 {
		t.Fatalf("expected long terms capped at 1, got %d", got)
	}
}

// Package search wires Components G through K into the single query-time
// entry point: FromRawQuery -> Candidates -> ScoreAll -> Rerank -> sort and
// truncate (spec.md §6's "A single function").
package search

import (
	"sort"

	"github.com/flaxandteal/berlin-go/internal/gather"
	"github.com/flaxandteal/berlin-go/internal/ids"
	"github.com/flaxandteal/berlin-go/internal/query"
	"github.com/flaxandteal/berlin-go/internal/rerank"
	"github.com/flaxandteal/berlin-go/internal/scoring"
	"github.com/flaxandteal/berlin-go/internal/store"
	"github.com/flaxandteal/berlin-go/internal/vocab"
)

// Engine bundles the frozen, read-only structures a query needs: the
// interner, location store, and vocabulary word index. All three are
// safely shared across concurrent queries once built.
type Engine struct {
	Table *ids.Table
	Store *store.Store
	Words *vocab.WordIndex
}

// NewEngine wraps already-built, frozen structures for query-time use.
func NewEngine(table *ids.Table, db *store.Store, words *vocab.WordIndex) *Engine {
	return &Engine{Table: table, Store: db, Words: words}
}

// Result is a single ranked hit: a location key and the score it earned.
type Result struct {
	Key   ids.Id
	Score query.Score
}

// Search implements spec.md §6's query-time API: a raw query string in,
// a ranked and truncated list of (location_key, Score) pairs out.
func (e *Engine) Search(raw string, stateFilter *string, limit int, levDist uint32) ([]Result, error) {
	term := query.FromRawQuery(e.Table, raw, stateFilter, limit, levDist)

	candidates, err := gather.Candidates(e.Table, e.Words, term)
	if err != nil {
		return nil, err
	}

	if term.StateFilter != nil {
		candidates = filterByState(e.Store, candidates, *term.StateFilter)
	}

	scored, err := scoring.ScoreAll(e.Table, e.Store, term, candidates)
	if err != nil {
		return nil, err
	}

	reranked := rerank.Rerank(e.Store, scored)

	results := make([]Result, len(reranked))
	for i, r := range reranked {
		results[i] = Result{Key: r.Key, Score: r.Score}
	}

	// Final sort is total: score descending, then key ascending as a
	// deterministic tiebreaker (spec.md §5 "Ordering guarantees").
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score.Value != results[j].Score.Value {
			return results[i].Score.Value > results[j].Score.Value
		}
		return e.Table.Less(results[i].Key, results[j].Key)
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// filterByState drops candidates whose location does not belong to the
// requested state, before the expensive scoring stage runs over them.
func filterByState(db *store.Store, candidates map[ids.Id]bool, state ids.Id) map[ids.Id]bool {
	out := make(map[ids.Id]bool, len(candidates))
	for key := range candidates {
		loc, ok := db.Get(key)
		if !ok {
			continue
		}
		if loc.Key == state || (loc.ParentState != nil && *loc.ParentState == state) {
			out[key] = true
		}
	}
	return out
}

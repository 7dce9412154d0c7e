package scoring

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/flaxandteal/berlin-go/internal/ids"
	"github.com/flaxandteal/berlin-go/internal/query"
	"github.com/flaxandteal/berlin-go/internal/store"
)

// Result pairs a location key with the score it earned against a query.
type Result struct {
	Key   ids.Id
	Score query.Score
}

// ScoreAll scores every candidate key against term, in parallel chunks, and
// returns only the ones clearing the inclusion threshold. Each location is
// scored independently so the work partitions cleanly across goroutines
// (spec.md §5's "embarrassingly parallel" note on this stage).
func ScoreAll(table *ids.Table, db *store.Store, term *query.SearchTerm, candidates map[ids.Id]bool) ([]Result, error) {
	keys := make([]ids.Id, 0, len(candidates))
	for k := range candidates {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(keys) {
		workers = len(keys)
	}
	if workers < 1 {
		workers = 1
	}
	chunkSize := (len(keys) + workers - 1) / workers

	var mu sync.Mutex
	var out []Result

	g := new(errgroup.Group)
	for start := 0; start < len(keys); start += chunkSize {
		end := start + chunkSize
		if end > len(keys) {
			end = len(keys)
		}
		chunk := keys[start:end]
		g.Go(func() error {
			local := make([]Result, 0, len(chunk))
			for _, key := range chunk {
				loc, ok := db.Get(key)
				if !ok {
					continue
				}
				if s, ok := Search(table, loc, term); ok {
					local = append(local, Result{Key: key, Score: s})
				}
			}
			mu.Lock()
			out = append(out, local...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

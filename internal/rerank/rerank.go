// Package rerank implements Component J: the transient per-query hierarchy
// graph that lets a strong match on a state or subdivision lift its
// children's scores (spec.md §4.J).
package rerank

import (
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/flaxandteal/berlin-go/internal/ids"
	"github.com/flaxandteal/berlin-go/internal/scoring"
	"github.com/flaxandteal/berlin-go/internal/store"
)

// GraphEdgeThreshold gates which parent/child pairs are worth linking: both
// ends of an edge must already score above this before the parent can
// boost the child.
const GraphEdgeThreshold int64 = 300

type edge struct {
	parent, child ids.Id
	parentScore   int64
	childScore    int64
}

// Rerank builds the hierarchy graph over the scored candidates and applies
// parent-boost edges strongest-first, returning the input results in the
// same order with their updated scores.
func Rerank(db *store.Store, results []scoring.Result) []scoring.Result {
	scoreOf := make(map[ids.Id]int64, len(results))
	for _, r := range results {
		scoreOf[r.Key] = r.Score.Value
	}

	edges := buildEdges(db, results, scoreOf)

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].parentScore != edges[j].parentScore {
			return edges[i].parentScore > edges[j].parentScore
		}
		return edges[i].childScore > edges[j].childScore
	})

	for _, e := range edges {
		boosted := parentBoost(e.parentScore) + scoreOf[e.child]
		if boosted > scoreOf[e.child] {
			scoreOf[e.child] = boosted
		}
	}

	out := make([]scoring.Result, 0, len(results))
	for _, r := range results {
		r.Score.Value = scoreOf[r.Key]
		out = append(out, r)
	}
	return out
}

// buildEdges constructs the parent -> child edge list in parallel chunks
// over results, matching spec.md §5's "(J) graph construction" stage
// running over a data-parallel worker pool the same way (I) scoring does.
func buildEdges(db *store.Store, results []scoring.Result, scoreOf map[ids.Id]int64) []edge {
	if len(results) == 0 {
		return nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(results) {
		workers = len(results)
	}
	if workers < 1 {
		workers = 1
	}
	chunkSize := (len(results) + workers - 1) / workers

	var mu sync.Mutex
	var edges []edge

	g := new(errgroup.Group)
	for start := 0; start < len(results); start += chunkSize {
		end := start + chunkSize
		if end > len(results) {
			end = len(results)
		}
		chunk := results[start:end]
		g.Go(func() error {
			var local []edge
			for _, r := range chunk {
				loc, ok := db.Get(r.Key)
				if !ok {
					continue
				}
				for _, parent := range parentKeys(loc) {
					parentScore, ok := scoreOf[parent]
					if !ok {
						continue
					}
					childScore := scoreOf[r.Key]
					if min64(parentScore, childScore) <= GraphEdgeThreshold {
						continue
					}
					local = append(local, edge{
						parent:      parent,
						child:       r.Key,
						parentScore: parentScore,
						childScore:  childScore,
					})
				}
			}
			mu.Lock()
			edges = append(edges, local...)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return edges
}

// parentBoost halves a parent's score before it is carried to a child,
// preventing runaway inflation along multi-level chains.
func parentBoost(s int64) int64 { return s / 2 }

func parentKeys(loc *store.Location) []ids.Id {
	var out []ids.Id
	if loc.ParentState != nil {
		out = append(out, *loc.ParentState)
	}
	if loc.ParentSubdiv != nil {
		out = append(out, *loc.ParentSubdiv)
	}
	return out
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

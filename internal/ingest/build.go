package ingest

import (
	"fmt"
	"io"

	"github.com/flaxandteal/berlin-go/internal/ids"
	"github.com/flaxandteal/berlin-go/internal/logging"
	"github.com/flaxandteal/berlin-go/internal/store"
	"github.com/flaxandteal/berlin-go/internal/vocab"
)

// Source names one JSON file to decode, paired with its already-opened
// reader contents.
type Source struct {
	Filename string
	Data     []byte
}

// Index bundles the frozen, query-ready structures that index construction
// produces: the interner, location store, hierarchy arena, word index, and
// the spatial index over locode coordinates (spec.md §3 "Lifecycle").
type Index struct {
	Table   *ids.Table
	Store   *store.Store
	Arena   *store.Arena
	Words   *vocab.WordIndex
	S2Index *store.S2Index
}

// Build implements spec.md §3's lifecycle: decode every JSON source into
// the store, merge CSV-sourced coordinates, freeze the store (the
// interner has no freeze step), then build the arena and word index. Per-file decode failures
// are collected but do not stop the build — a record that failed to
// decode is simply absent from the index.
func Build(sources []Source, csvReader io.Reader) (*Index, error) {
	table := ids.NewTable(1 << 16)
	db := store.New()

	var decodeErrs []error
	for _, src := range sources {
		locs, err := DecodeFile(table, src.Data, src.Filename)
		if err != nil {
			decodeErrs = append(decodeErrs, err)
			logging.Get().Warnw("file had decode errors", "file", src.Filename, "error", err)
		}
		for _, loc := range locs {
			if err := db.Insert(loc); err != nil {
				return nil, fmt.Errorf("ingest: inserting from %s: %w", src.Filename, err)
			}
		}
	}

	if csvReader != nil {
		if err := MergeCoordinates(table, db, csvReader); err != nil {
			decodeErrs = append(decodeErrs, err)
			logging.Get().Warnw("csv had decode errors", "error", err)
		}
	}

	db.Freeze()

	locs := db.All(table)
	arena := store.NewArena()
	arena.Build(locs)

	words, err := vocab.Build(table, locs)
	if err != nil {
		return nil, fmt.Errorf("ingest: building word index: %w", err)
	}

	s2idx := store.BuildS2Index(locs)

	idx := &Index{Table: table, Store: db, Arena: arena, Words: words, S2Index: s2idx}
	if len(decodeErrs) > 0 {
		return idx, fmt.Errorf("ingest: %d file(s) had decode errors: %v", len(decodeErrs), decodeErrs)
	}
	return idx, nil
}

// Package store owns location entities keyed by interned identity and the
// hierarchy arena over their parent/child relationships (spec.md Components
// C and D).
package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/flaxandteal/berlin-go/internal/ids"
)

// Store owns all Location entities. A readers-writer lock protects inserts
// during build; after Freeze the store is read-only and safe to share
// across concurrent queries without locking.
type Store struct {
	mu     sync.RWMutex
	byKey  map[ids.Id]*Location
	frozen bool
}

// New creates an empty, writable Store.
func New() *Store {
	return &Store{byKey: make(map[ids.Id]*Location)}
}

// Insert adds a location, keyed by its Key. Insert holds the write lock
// only for the duration of one insert, so parser workers can call it
// concurrently.
func (s *Store) Insert(loc *Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		return fmt.Errorf("store: insert after freeze")
	}
	if _, exists := s.byKey[loc.Key]; exists {
		return fmt.Errorf("store: duplicate key %d", loc.Key)
	}
	s.byKey[loc.Key] = loc
	return nil
}

// Freeze marks the store read-only. No further inserts are permitted.
func (s *Store) Freeze() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frozen = true
}

// Get returns the location for key, if present.
func (s *Store) Get(key ids.Id) (*Location, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc, ok := s.byKey[key]
	return loc, ok
}

// Retrieve looks up a location by its raw key string, without inserting
// into the interner. Mirrors the original LocationsDb::retrieve: a 0-1
// byte candidate is never treated as a location reference, even if that
// exact short string happens to have been interned for some other reason.
func (s *Store) Retrieve(table *ids.Table, raw string) (*Location, bool) {
	if len(raw) <= 1 {
		return nil, false
	}
	id, ok := table.Lookup(raw)
	if !ok {
		return nil, false
	}
	return s.Get(id)
}

// Len returns the number of stored locations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byKey)
}

// All returns every stored location, sorted by key's backing bytes for
// deterministic iteration (used by index construction and tests).
func (s *Store) All(table *ids.Table) []*Location {
	s.mu.RLock()
	locs := make([]*Location, 0, len(s.byKey))
	for _, loc := range s.byKey {
		locs = append(locs, loc)
	}
	s.mu.RUnlock()

	sort.Slice(locs, func(i, j int) bool {
		return table.Less(locs[i].Key, locs[j].Key)
	})
	return locs
}

// Package ids provides a process-wide, append-only string interner.
//
// An Id is a compact, totally-ordered handle for a byte string. Ids compare
// by identity for set membership and by backing bytes (via Bytes) for FST
// and word-index ordering. Index construction is the only caller of Intern;
// the Table has no freeze step of its own and does not reject later
// inserts. Lookup never inserts, so an absent Id is itself meaningful
// ("this string is definitely not in the corpus").
package ids

import "sync"

// Id is an opaque handle for an interned byte string.
type Id uint32

// Table is a thread-safe string interner with a lookup-only variant.
//
// Mirrors the teacher's stringInterner[T]: index 0 is reserved so the
// zero Id can serve as an explicit "no value" sentinel, writes use
// double-checked locking, and the core surface is Intern/Lookup/Bytes.
type Table struct {
	mu    sync.RWMutex
	bytes []string
	index map[string]Id
}

// NewTable creates an interner with an initial capacity hint.
func NewTable(capacity int) *Table {
	t := &Table{
		bytes: make([]string, 1, capacity+1),
		index: make(map[string]Id, capacity),
	}
	t.bytes[0] = ""
	t.index[""] = 0
	return t
}

// Intern returns the Id for s, creating one if s has never been seen.
// Build-time only: query-time code uses Lookup. Intern is not blocked
// after the store is frozen; it still appends.
func (t *Table) Intern(s string) Id {
	t.mu.RLock()
	if id, ok := t.index[s]; ok {
		t.mu.RUnlock()
		return id
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.index[s]; ok {
		return id
	}
	id := Id(len(t.bytes))
	t.bytes = append(t.bytes, s)
	t.index[s] = id
	return id
}

// Lookup returns the Id for s without inserting it. The second return
// value is false when s has never been interned.
func (t *Table) Lookup(s string) (Id, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.index[s]
	return id, ok
}

// Bytes returns the backing string for id.
func (t *Table) Bytes(id Id) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(id) < len(t.bytes) {
		return t.bytes[id]
	}
	return ""
}

// Len returns the number of interned strings, including the empty-string
// sentinel at index 0.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.bytes)
}

// Less reports whether a's backing bytes sort before b's, for FST and
// word-index ordering.
func (t *Table) Less(a, b Id) bool {
	return t.Bytes(a) < t.Bytes(b)
}

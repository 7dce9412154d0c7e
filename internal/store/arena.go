package store

import "github.com/flaxandteal/berlin-go/internal/ids"

// node is one entry in the flat arena: a location key plus integer parent
// and child indices. Per spec.md's design note, parent links live on the
// Location record (ParentState/ParentSubdiv), not on the node itself — the
// node only needs to record the tree edges actually built into the arena.
type node struct {
	key      ids.Id
	parent   int // -1 if root
	children []int
}

// Arena is a flat, slice-indexed tree over location keys encoding
// state -> subdivision -> locode containment. Built once at index
// construction and immutable at query time.
type Arena struct {
	nodes []node
	byKey map[ids.Id]int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{byKey: make(map[ids.Id]int)}
}

// NewNode appends a node for key and returns its arena index. Safe to call
// multiple times for the same key only if the caller has not already added
// it; use NodeFor to check first.
func (a *Arena) NewNode(key ids.Id) int {
	idx := len(a.nodes)
	a.nodes = append(a.nodes, node{key: key, parent: -1})
	a.byKey[key] = idx
	return idx
}

// NodeFor returns the arena index for key, if a node has been created for
// it.
func (a *Arena) NodeFor(key ids.Id) (int, bool) {
	idx, ok := a.byKey[key]
	return idx, ok
}

// Append makes child a child of parent in the tree.
func (a *Arena) Append(parent, child int) {
	a.nodes[child].parent = parent
	a.nodes[parent].children = append(a.nodes[parent].children, child)
}

// Children returns the child node indices of idx.
func (a *Arena) Children(idx int) []int {
	return a.nodes[idx].children
}

// Parent returns the parent node index of idx, or -1 if idx is a root.
func (a *Arena) Parent(idx int) int {
	return a.nodes[idx].parent
}

// Key returns the location key carried by node idx.
func (a *Arena) Key(idx int) ids.Id {
	return a.nodes[idx].key
}

// Len returns the number of nodes in the arena.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Build walks every stored location and links it into the tree according
// to its parent references: a locode (or subdivision) with a
// ParentSubdiv is appended under its subdivision's node; otherwise a
// location with a ParentState is appended under its state's node.
// Mirrors the original's LocationsDb::mk_fst parent-linking walk.
func (a *Arena) Build(locs []*Location) {
	for _, loc := range locs {
		if _, ok := a.NodeFor(loc.Key); !ok {
			a.NewNode(loc.Key)
		}
	}
	for _, loc := range locs {
		childIdx, _ := a.NodeFor(loc.Key)
		switch {
		case loc.ParentSubdiv != nil:
			if parentIdx, ok := a.NodeFor(*loc.ParentSubdiv); ok {
				a.Append(parentIdx, childIdx)
			}
		case loc.ParentState != nil:
			if parentIdx, ok := a.NodeFor(*loc.ParentState); ok {
				a.Append(parentIdx, childIdx)
			}
		}
	}
}

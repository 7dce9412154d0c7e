// Package query implements Component G, the query analyzer: parsing a raw
// query string into a classified SearchTerm (stop words, codes, exact and
// inexact n-gram terms, each with byte offsets into the normalized query).
package query

import "github.com/flaxandteal/berlin-go/internal/ids"

// Offset is a byte range into a normalized string, totally ordered by
// (start, end).
type Offset struct {
	Start int
	End   int
}

// Less orders offsets by start then end, matching the original's Ord impl.
func (o Offset) Less(other Offset) bool {
	if o.Start != other.Start {
		return o.Start < other.Start
	}
	return o.End < other.End
}

// MatchDef pairs a matched term with its offset in the normalized query.
type MatchDef[T any] struct {
	Term   T
	Offset Offset
}

// Score is a composite match score, totally ordered by score first, then
// offset.
type Score struct {
	Value  int64
	Offset Offset
}

// Less reports whether s sorts before other: lower score first, then
// earlier offset.
func (s Score) Less(other Score) bool {
	if s.Value != other.Value {
		return s.Value < other.Value
	}
	return s.Offset.Less(other.Offset)
}

// Max returns the greater of s and other by Less.
func Max(s, other Score) Score {
	if other.Less(s) {
		return s
	}
	return other
}

var negativeInfinity = Score{Value: int64(-1) << 62}

// NegativeInfinity is smaller than any real Score, used as a fold seed.
func NegativeInfinity() Score { return negativeInfinity }

// Id is a convenience alias used throughout SearchTerm.
type Id = ids.Id

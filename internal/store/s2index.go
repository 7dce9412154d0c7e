package store

import (
	"math"

	"github.com/golang/geo/s2"

	"github.com/flaxandteal/berlin-go/internal/ids"
)

// s2CellLevel mirrors the teacher's buildCellIndex: level 10 gives ~10km
// cells, balancing precision against the number of cells searched per
// query.
const s2CellLevel = 10

// S2Index is an optional spatial index over locations that carry
// coordinates (locodes). It supplements the text search path with the
// teacher's reverse-geocoding feature, dropped from the distilled spec
// but present in both the teacher and the original corpus's coordinate
// handling.
type S2Index struct {
	cells map[s2.CellID][]ids.Id
}

// BuildS2Index indexes every location with non-nil Coordinates.
func BuildS2Index(locs []*Location) *S2Index {
	idx := &S2Index{cells: make(map[s2.CellID][]ids.Id)}
	for _, loc := range locs {
		if loc.Coordinates == nil {
			continue
		}
		cell := cellFor(loc.Coordinates.Lat, loc.Coordinates.Lon)
		idx.cells[cell] = append(idx.cells[cell], loc.Key)
	}
	return idx
}

func cellFor(lat, lon float64) s2.CellID {
	ll := s2.LatLngFromDegrees(lat, lon)
	return s2.CellIDFromLatLng(ll).Parent(s2CellLevel)
}

// neighbors returns cell plus its edge and corner neighbors, mirroring the
// teacher's cellAndNeighbors.
func neighbors(cell s2.CellID) []s2.CellID {
	cells := make([]s2.CellID, 0, 9)
	cells = append(cells, cell)

	edgeNeighbors := cell.EdgeNeighbors()
	cells = append(cells, edgeNeighbors[:4]...)

	seen := make(map[s2.CellID]bool, 9)
	for _, c := range cells {
		seen[c] = true
	}
	for i := 0; i < 4; i++ {
		for _, corner := range edgeNeighbors[i].EdgeNeighbors() {
			if !seen[corner] {
				cells = append(cells, corner)
				seen[corner] = true
			}
		}
	}
	return cells
}

// NearestTo returns the location keys sharing a cell with (lat, lon) or
// one of its neighboring cells, nearest-first. Returns nil if no indexed
// location falls within the searched cells.
func (idx *S2Index) NearestTo(store *Store, lat, lon float64) []ids.Id {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return nil
	}
	queryLL := s2.LatLngFromDegrees(lat, lon)
	queryCell := cellFor(lat, lon)

	type candidate struct {
		key  ids.Id
		dist float64
	}
	var candidates []candidate
	for _, cell := range neighbors(queryCell) {
		for _, key := range idx.cells[cell] {
			loc, ok := store.Get(key)
			if !ok || loc.Coordinates == nil {
				continue
			}
			locLL := s2.LatLngFromDegrees(loc.Coordinates.Lat, loc.Coordinates.Lon)
			candidates = append(candidates, candidate{key: key, dist: float64(queryLL.Distance(locLL))})
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	// Simple insertion sort by distance; candidate sets per query are
	// small (a handful of nearby locodes), so this avoids importing sort
	// for what is already a tiny slice.
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && candidates[j].dist < candidates[j-1].dist; j-- {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
		}
	}
	out := make([]ids.Id, len(candidates))
	for i, c := range candidates {
		out[i] = c.key
	}
	return out
}

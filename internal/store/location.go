package store

import "github.com/flaxandteal/berlin-go/internal/ids"

// Kind classifies a Location per spec.md's data model.
type Kind int

const (
	KindState Kind = iota
	KindSubdivision
	KindLocode
	KindAirport
)

func (k Kind) String() string {
	switch k {
	case KindState:
		return "state"
	case KindSubdivision:
		return "subdivision"
	case KindLocode:
		return "locode"
	case KindAirport:
		return "airport"
	default:
		return "unknown"
	}
}

// Coordinates holds a decimal-degree lat/lon pair. North and east are
// positive, matching the original coordinate grammar.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Location is a single corpus entity: a country/state, subdivision,
// UN/LOCODE, or IATA airport code.
type Location struct {
	Key  ids.Id // globally unique, form "<scheme>-<code>"
	ID   ids.Id // scheme-local code
	Kind Kind

	Codes []ids.Id // exact machine codes
	Names []ids.Id // human names and aliases, normalized
	Words []ids.Id // every whitespace-split word in any name, normalized

	// ParentState and ParentSubdiv reference container locations by key.
	// A subdivision's ParentState is always set; a locode's ParentState
	// is always set and ParentSubdiv may also be set.
	ParentState  *ids.Id
	ParentSubdiv *ids.Id

	Coordinates *Coordinates // present only for some locodes
}

// Parents returns the location's state and subdivision parent keys, if
// any, mirroring the original's Location::get_parents accessor used by
// the hierarchy re-rank stage.
func (l *Location) Parents() (state, subdiv *ids.Id) {
	return l.ParentState, l.ParentSubdiv
}

package ingest

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/flaxandteal/berlin-go/internal/store"
)

// coordinatePattern implements the code-list_csv.csv grammar: a 2-digit
// latitude degree, minutes, N/S bearing, a space, a 3-digit longitude
// degree, minutes, and E/W bearing. For example "600N 01212E".
var coordinatePattern = regexp.MustCompile(`^(\d{2})(\d+)([NS]) (\d{3})(\d+)([EW])$`)

// ParseCoordinates decodes the degree-minutes-bearing coordinate string
// used by code-list_csv.csv. North and east are positive, matching
// store.Coordinates.
func ParseCoordinates(raw string) (store.Coordinates, error) {
	m := coordinatePattern.FindStringSubmatch(raw)
	if m == nil {
		return store.Coordinates{}, fmt.Errorf("ingest: %q is not a valid coordinate string", raw)
	}
	lat, err := degMinToFloat(m[1], m[2])
	if err != nil {
		return store.Coordinates{}, err
	}
	if m[3] == "S" {
		lat = -lat
	}
	lon, err := degMinToFloat(m[4], m[5])
	if err != nil {
		return store.Coordinates{}, err
	}
	if m[6] == "W" {
		lon = -lon
	}
	return store.Coordinates{Lat: lat, Lon: lon}, nil
}

func degMinToFloat(deg, min string) (float64, error) {
	d, err := strconv.ParseFloat(deg, 64)
	if err != nil {
		return 0, fmt.Errorf("ingest: parsing degrees %q: %w", deg, err)
	}
	m, err := strconv.ParseFloat(min, 64)
	if err != nil {
		return 0, fmt.Errorf("ingest: parsing minutes %q: %w", min, err)
	}
	return d + m/60.0, nil
}

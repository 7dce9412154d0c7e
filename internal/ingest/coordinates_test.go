package ingest

import (
	"math"
	"testing"
)

func TestParseCoordinatesNorthEast(t *testing.T) {
	c, err := ParseCoordinates("600N 01212E")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if math.Abs(c.Lat-60.0) > 1e-3 {
		t.Fatalf("expected lat ~60.0, got %f", c.Lat)
	}
	if math.Abs(c.Lon-12.2) > 1e-3 {
		t.Fatalf("expected lon ~12.2, got %f", c.Lon)
	}
}

func TestParseCoordinatesSouthWest(t *testing.T) {
	c, err := ParseCoordinates("3344S 07023W")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Lat >= 0 {
		t.Fatalf("expected negative latitude for south bearing, got %f", c.Lat)
	}
	if c.Lon >= 0 {
		t.Fatalf("expected negative longitude for west bearing, got %f", c.Lon)
	}
}

func TestParseCoordinatesRejectsMalformed(t *testing.T) {
	if _, err := ParseCoordinates("not a coordinate"); err == nil {
		t.Fatalf("expected an error for malformed input")
	}
}

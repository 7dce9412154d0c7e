package ingest

import (
	"testing"

	"github.com/flaxandteal/berlin-go/internal/ids"
)

func TestDecodeFileBuildsLocations(t *testing.T) {
	table := ids.NewTable(32)
	data := []byte(`{
		"bg": {"key": "bg", "id": "bg", "kind": "state", "codes": ["bg"], "names": ["Bulgaria"]},
		"bg02": {"key": "bg:02", "id": "02", "kind": "subdivision", "codes": ["02"], "names": ["Burgas"], "parent_state": "bg"}
	}`)

	locs, err := DecodeFile(table, data, "state.json")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(locs) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(locs))
	}
}

func TestDecodeFileAggregatesRecordErrors(t *testing.T) {
	table := ids.NewTable(32)
	data := []byte(`{
		"good": {"key": "bg", "id": "bg", "kind": "state", "codes": ["bg"], "names": ["Bulgaria"]},
		"bad": {"key": "", "id": "x", "kind": "state", "names": ["Nowhere"]},
		"unknown-kind": {"key": "zz", "id": "zz", "kind": "planet", "names": ["Zorg"]}
	}`)

	locs, err := DecodeFile(table, data, "state.json")
	if err == nil {
		t.Fatalf("expected an aggregated decode error")
	}
	decodeErr, ok := err.(*DecodeError)
	if !ok {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	if len(decodeErr.Records) != 2 {
		t.Fatalf("expected 2 failed records, got %d", len(decodeErr.Records))
	}
	if len(locs) != 1 {
		t.Fatalf("expected the one good record to still decode, got %d", len(locs))
	}
}

func TestDecodeFileRejectsSubdivisionWithoutParentState(t *testing.T) {
	table := ids.NewTable(32)
	data := []byte(`{
		"orphan": {"key": "xx:01", "id": "01", "kind": "subdivision", "names": ["Orphan"]}
	}`)

	_, err := DecodeFile(table, data, "subdivision.json")
	if err == nil {
		t.Fatalf("expected an error for a subdivision missing parent_state")
	}
}

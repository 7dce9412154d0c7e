package ingest

import (
	"strings"
	"testing"

	"github.com/flaxandteal/berlin-go/internal/ids"
	"github.com/flaxandteal/berlin-go/internal/store"
)

func TestMergeCoordinatesAttachesToMatchingLocode(t *testing.T) {
	table := ids.NewTable(16)
	db := store.New()
	key := "UN-LOCODE-bg:blo"
	if err := db.Insert(&store.Location{
		Key:  table.Intern(key),
		ID:   table.Intern("blo"),
		Kind: store.KindLocode,
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	csvData := "Ch,Country,Location,Name,NameWoDiacritics,Subdivision,Function,Status,Date,IATA,Coordinates,Remarks\n" +
		",BG,BLO,Lyuliakovo,Lyuliakovo,02,0,AI,2102,,600N 01212E,\n"

	if err := MergeCoordinates(table, db, strings.NewReader(csvData)); err != nil {
		t.Fatalf("merge: %v", err)
	}

	loc, ok := db.Retrieve(table, key)
	if !ok {
		t.Fatalf("expected location to still be retrievable")
	}
	if loc.Coordinates == nil {
		t.Fatalf("expected coordinates to be set")
	}
}

func TestMergeCoordinatesSkipsUnknownLocode(t *testing.T) {
	table := ids.NewTable(16)
	db := store.New()

	csvData := "Ch,Country,Location,Name,NameWoDiacritics,Subdivision,Function,Status,Date,IATA,Coordinates,Remarks\n" +
		",ZZ,NOPE,Nowhere,Nowhere,,0,AI,2102,,600N 01212E,\n"

	if err := MergeCoordinates(table, db, strings.NewReader(csvData)); err != nil {
		t.Fatalf("merge should not fail on an unknown locode: %v", err)
	}
}

func TestMergeCoordinatesAggregatesUnparseableCoordinates(t *testing.T) {
	table := ids.NewTable(16)
	db := store.New()
	key := "UN-LOCODE-bg:blo"
	if err := db.Insert(&store.Location{
		Key:  table.Intern(key),
		ID:   table.Intern("blo"),
		Kind: store.KindLocode,
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	csvData := "Ch,Country,Location,Name,NameWoDiacritics,Subdivision,Function,Status,Date,IATA,Coordinates,Remarks\n" +
		",BG,BLO,Lyuliakovo,Lyuliakovo,02,0,AI,2102,,not-a-coordinate,\n"

	err := MergeCoordinates(table, db, strings.NewReader(csvData))
	if err == nil {
		t.Fatalf("expected an aggregated decode error for the unparseable coordinate")
	}
	decodeErr, ok := err.(*DecodeError)
	if !ok {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	if decodeErr.File != csvSourceName {
		t.Fatalf("expected decode error to name %q, got %q", csvSourceName, decodeErr.File)
	}
	if _, ok := decodeErr.Records[key]; !ok {
		t.Fatalf("expected the offending record to be keyed by %q", key)
	}

	loc, ok := db.Retrieve(table, key)
	if !ok {
		t.Fatalf("expected location to still be retrievable")
	}
	if loc.Coordinates != nil {
		t.Fatalf("expected no coordinates set for the unparseable row")
	}
}

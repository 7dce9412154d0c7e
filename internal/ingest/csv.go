package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/flaxandteal/berlin-go/internal/ids"
	"github.com/flaxandteal/berlin-go/internal/logging"
	"github.com/flaxandteal/berlin-go/internal/store"
)

// The csvCol* constants index the code-list_csv.csv columns this ingester
// reads; the file carries more columns than this, the rest are ignored.
const (
	csvColCountry     = 1
	csvColLocode      = 2
	csvColCoordinates = 10
)

// csvSourceName identifies the CSV input in an aggregated DecodeError, the
// same way a JSON filename identifies one from DecodeFile.
const csvSourceName = "code-list_csv.csv"

// MergeCoordinates reads code-list_csv.csv and attaches parsed coordinates
// to the matching locode already present in db. A CSV row whose key has no
// corresponding store entry is a missing code reference — logged and
// skipped per spec.md §7, since the CSV may simply cover more locodes than
// the loaded corpus. An unparseable coordinate is a different failure
// class (§7 "Input decode error"): it is aggregated into the returned
// DecodeError alongside every other offending record instead of being
// silently dropped.
func MergeCoordinates(table *ids.Table, db *store.Store, r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil { // header
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("ingest: reading csv header: %w", err)
	}

	decodeErr := newDecodeError(csvSourceName)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("ingest: reading csv record: %w", err)
		}
		if len(record) <= csvColCoordinates {
			continue
		}

		coordStr := record[csvColCoordinates]
		if coordStr == "" {
			continue
		}
		country := strings.ToLower(record[csvColCountry])
		locodePart := strings.ToLower(record[csvColLocode])
		key := fmt.Sprintf("UN-LOCODE-%s:%s", country, locodePart)

		loc, ok := db.Retrieve(table, key)
		if !ok {
			logging.Get().Infow("csv locode not found in store, skipping", "key", key)
			continue
		}
		coords, err := ParseCoordinates(coordStr)
		if err != nil {
			decodeErr.add(key, fmt.Errorf("unparseable coordinate %q: %w", coordStr, err))
			continue
		}
		loc.Coordinates = &coords
	}
	if decodeErr.failed() {
		return decodeErr
	}
	return nil
}

package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/flaxandteal/berlin-go/internal/ids"
	"github.com/flaxandteal/berlin-go/internal/normalize"
	"github.com/flaxandteal/berlin-go/internal/store"
)

// rawLocation is the wire shape of a decoded JSON record: state.json,
// subdivision.json, locode.json, iata.json, and ISO-3166-2:GB.json all
// share this shape, varying only in which optional fields are populated.
type rawLocation struct {
	Key          string   `json:"key"`
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	Codes        []string `json:"codes"`
	Names        []string `json:"names"`
	ParentState  string   `json:"parent_state,omitempty"`
	ParentSubdiv string   `json:"parent_subdiv,omitempty"`
}

func kindFromString(k string) (store.Kind, error) {
	switch k {
	case "state":
		return store.KindState, nil
	case "subdivision":
		return store.KindSubdivision, nil
	case "locode":
		return store.KindLocode, nil
	case "airport":
		return store.KindAirport, nil
	default:
		return 0, fmt.Errorf("unknown kind %q", k)
	}
}

// DecodeError aggregates every failure encountered decoding one file into
// a single error, per spec.md §7 ("Aggregated across a file and surfaced
// as a single failure listing each offending record identifier").
type DecodeError struct {
	File    string
	Records map[string]error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ingest: %s: %d record(s) failed to decode", e.File, len(e.Records))
}

func newDecodeError(file string) *DecodeError {
	return &DecodeError{File: file, Records: make(map[string]error)}
}

func (e *DecodeError) add(recordID string, err error) {
	e.Records[recordID] = err
}

func (e *DecodeError) failed() bool { return len(e.Records) > 0 }

// DecodeFile parses a JSON file whose root is an object of raw location
// records keyed by an arbitrary identifier, converts each one into a
// store.Location, and interns every code/name/word along the way.
// Individual record failures are aggregated into a single DecodeError;
// a record is only skipped, never fatal to the whole file, but the
// caller learns about every skip.
func DecodeFile(table *ids.Table, data []byte, filename string) ([]*store.Location, error) {
	var raw map[string]rawLocation
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ingest: %s: %w", filename, err)
	}

	decodeErr := newDecodeError(filename)
	var out []*store.Location
	for recordID, r := range raw {
		loc, err := toLocation(table, r)
		if err != nil {
			decodeErr.add(recordID, err)
			continue
		}
		out = append(out, loc)
	}
	if decodeErr.failed() {
		return out, decodeErr
	}
	return out, nil
}

func toLocation(table *ids.Table, r rawLocation) (*store.Location, error) {
	if r.Key == "" {
		return nil, fmt.Errorf("missing key")
	}
	if r.ID == "" {
		return nil, fmt.Errorf("missing id")
	}
	kind, err := kindFromString(r.Kind)
	if err != nil {
		return nil, err
	}
	if (kind == store.KindSubdivision || kind == store.KindLocode) && r.ParentState == "" {
		return nil, fmt.Errorf("%s record missing parent_state", r.Kind)
	}

	loc := &store.Location{
		Key:  table.Intern(r.Key),
		ID:   table.Intern(r.ID),
		Kind: kind,
	}
	for _, c := range r.Codes {
		loc.Codes = append(loc.Codes, table.Intern(normalize.String(c)))
	}
	for _, n := range r.Names {
		normalized := normalize.String(n)
		loc.Names = append(loc.Names, table.Intern(normalized))
		for _, w := range normalize.Words(normalized) {
			loc.Words = append(loc.Words, table.Intern(w))
		}
	}
	if r.ParentState != "" {
		id := table.Intern(r.ParentState)
		loc.ParentState = &id
	}
	if r.ParentSubdiv != "" {
		id := table.Intern(r.ParentSubdiv)
		loc.ParentSubdiv = &id
	}
	return loc, nil
}

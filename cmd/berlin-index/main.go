// Command berlin-index builds the location index from a corpus directory
// and, optionally, runs a single ad-hoc text query or reverse-geocode
// lookup against it.
//
// Usage:
//
//	go run ./cmd/berlin-index -data ./corpus -query "Armagh City" -limit 5
//	go run ./cmd/berlin-index -data ./corpus -lat 60.0 -lon 12.2
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/flaxandteal/berlin-go/internal/ingest"
	"github.com/flaxandteal/berlin-go/internal/logging"
	"github.com/flaxandteal/berlin-go/internal/search"
)

// corpusFiles names the expected JSON inputs under -data, per spec.md §6.
var corpusFiles = []string{
	"state.json",
	"subdivision.json",
	"locode.json",
	"iata.json",
	"ISO-3166-2:GB.json",
}

func main() {
	dataDir := flag.String("data", "./corpus", "directory containing the corpus JSON and CSV files")
	csvName := flag.String("csv", "code-list_csv.csv", "name of the locode coordinates CSV file, relative to -data")
	query := flag.String("query", "", "if set, run this query against the built index and print results")
	limit := flag.Int("limit", 10, "maximum number of results to print")
	levDist := flag.Uint("lev", 3, "maximum edit distance for fuzzy matching")
	lat := flag.Float64("lat", math.NaN(), "if set along with -lon, reverse-geocode this coordinate instead of running -query")
	lon := flag.Float64("lon", math.NaN(), "if set along with -lat, reverse-geocode this coordinate instead of running -query")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync()
	logging.SetLogger(logger)

	idx, err := buildIndex(*dataDir, *csvName)
	if err != nil {
		logger.Fatalw("build failed", "error", err)
	}
	logger.Infow("index built",
		"locations", idx.Store.Len(),
		"vocabulary", idx.Words.Len(),
	)

	if !math.IsNaN(*lat) && !math.IsNaN(*lon) {
		for _, key := range idx.S2Index.NearestTo(idx.Store, *lat, *lon) {
			fmt.Println(idx.Table.Bytes(key))
		}
		return
	}

	if *query == "" {
		return
	}

	engine := search.NewEngine(idx.Table, idx.Store, idx.Words)
	results, err := engine.Search(*query, nil, *limit, uint32(*levDist))
	if err != nil {
		logger.Fatalw("search failed", "error", err)
	}
	for _, r := range results {
		fmt.Printf("%s\t%d\n", idx.Table.Bytes(r.Key), r.Score.Value)
	}
}

func newLogger(verbose bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		// zap's own construction failing is unrecoverable; fall back to a
		// bare stderr writer so the process can still report the reason.
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	return l.Sugar()
}

func buildIndex(dataDir, csvName string) (*ingest.Index, error) {
	var sources []ingest.Source
	for _, name := range corpusFiles {
		data, err := os.ReadFile(filepath.Join(dataDir, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		sources = append(sources, ingest.Source{Filename: name, Data: data})
	}

	csvFile, err := os.Open(filepath.Join(dataDir, csvName))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", csvName, err)
	}
	defer csvFile.Close()

	return ingest.Build(sources, csvFile)
}

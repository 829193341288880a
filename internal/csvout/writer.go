// Package csvout serializes the aggregate extraction results. The index
// table has a fixed schema and is written through struct tags; the sector
// table's column set is discovered at runtime, so it is assembled by hand.
package csvout

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/nsetools/factsheet-extract/internal/extract"
)

// WriteIndexTable writes one row per processed factsheet with the column
// order defined by the IndexRecord csv tags. The file is replaced
// wholesale; merging with prior runs is not this tool's concern.
func WriteIndexTable(path string, records []extract.IndexRecord) error {
	f, err := createOutputFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&records, f); err != nil {
		return fmt.Errorf("failed to write index table: %w", err)
	}
	return nil
}

// WriteSectorTable writes the sparse index-by-sector matrix: leading
// Indices and Filename columns, then one column per discovered sector name
// sorted alphabetically. A missing (index, sector) pair stays an empty
// cell, distinct from an explicit 0 weight.
func WriteSectorTable(path string, rows []extract.SectorRow) error {
	f, err := createOutputFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	type docWeights struct {
		indexName string
		filename  string
		weights   map[string]float64
	}

	// Group rows by source file, preserving first-appearance order
	var docs []*docWeights
	byFile := map[string]*docWeights{}
	sectorSet := map[string]bool{}

	for _, row := range rows {
		doc, ok := byFile[row.SourceFilename]
		if !ok {
			doc = &docWeights{
				indexName: row.IndexName,
				filename:  row.SourceFilename,
				weights:   map[string]float64{},
			}
			byFile[row.SourceFilename] = doc
			docs = append(docs, doc)
		}
		doc.weights[row.SectorName] = row.WeightPercent
		sectorSet[row.SectorName] = true
	}

	sectors := make([]string, 0, len(sectorSet))
	for sector := range sectorSet {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	w := csv.NewWriter(f)

	header := append([]string{"Indices", "Filename"}, sectors...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write sector table header: %w", err)
	}

	for _, doc := range docs {
		record := make([]string, 0, len(header))
		record = append(record, doc.indexName, doc.filename)
		for _, sector := range sectors {
			if weight, ok := doc.weights[sector]; ok {
				record = append(record, strconv.FormatFloat(weight, 'f', -1, 64))
			} else {
				record = append(record, "")
			}
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write sector table row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush sector table: %w", err)
	}
	return nil
}

func createOutputFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("cannot create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cannot create output file %s: %w", path, err)
	}
	return f, nil
}

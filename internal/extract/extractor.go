package extract

import (
	"github.com/nsetools/factsheet-extract/internal/pdf"
)

// Extractor assembles index records and sector rows from acquired
// documents. It holds no per-document state; the same instance serves a
// whole batch.
type Extractor struct {
	names *NameResolver
}

// NewExtractor creates an extractor with the given abbreviation-expansion
// overrides for name resolution.
func NewExtractor(expansions map[string]string) *Extractor {
	return &Extractor{
		names: NewNameResolver(expansions),
	}
}

// ResolveName returns the display name for a document.
func (e *Extractor) ResolveName(doc *pdf.Document) string {
	return e.names.Resolve(doc.Text, doc.Filename)
}

// BuildRecord extracts one index record from a document. Field extractions
// are independent; a record with only the name and filename populated is a
// valid result, not an error.
func (e *Extractor) BuildRecord(doc *pdf.Document, indexName string) IndexRecord {
	rec := IndexRecord{
		IndexName:      indexName,
		SourceFilename: doc.Filename,
	}

	extractBasicFields(doc, &rec)
	extractReturns(doc.Tables, &rec)
	extractStatistics(doc.Tables, &rec)
	extractFundamentals(doc, &rec)

	return rec
}

// SectorRows extracts the sector-weight rows of a document. An empty
// result means the factsheet has no sector breakdown (common for
// single-sector indices), not a failure.
func (e *Extractor) SectorRows(doc *pdf.Document, indexName string) []SectorRow {
	weights := ExtractSectors(doc)
	if len(weights) == 0 {
		return nil
	}

	rows := make([]SectorRow, 0, len(weights))
	for _, w := range weights {
		rows = append(rows, SectorRow{
			IndexName:      indexName,
			SourceFilename: doc.Filename,
			SectorName:     w.Sector,
			WeightPercent:  w.Weight,
		})
	}
	return rows
}

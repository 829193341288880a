package extract

import (
	"strings"

	"github.com/nsetools/factsheet-extract/internal/pdf"
)

// skippedSectorLabels are summary rows that are not sectors.
var skippedSectorLabels = map[string]bool{
	"":       true,
	"total":  true,
	"others": true,
}

// maxFallbackMisses bounds how far past a sector heading the line-based
// fallback keeps scanning once rows stop matching.
const maxFallbackMisses = 3

// ExtractSectors finds the sector-weight breakdown of a document and
// returns its (sector, weight) pairs. Single-sector factsheets have no such
// breakdown; that yields nil, which is "no table found", not an error.
func ExtractSectors(doc *pdf.Document) []SectorWeight {
	if weights := sectorsFromTables(doc.Tables); len(weights) > 0 {
		return weights
	}
	return sectorsFromText(doc.Text)
}

// sectorsFromTables scans detected tables for a sector/weight header. When
// several tables qualify, the one with the most parsed rows wins — sector
// breakdowns are typically the largest table on a factsheet.
func sectorsFromTables(tables []pdf.Table) []SectorWeight {
	var best []SectorWeight

	for _, table := range tables {
		if len(table.Rows) < 2 {
			continue
		}
		header := table.HeaderRow()
		joined := strings.ToLower(NormalizeSpace(strings.Join(header, " ")))
		if !strings.Contains(joined, "sector") {
			continue
		}
		if !strings.Contains(joined, "weight") && !strings.Contains(joined, "%") {
			continue
		}

		sectorCol, weightCol := locateSectorColumns(header)
		weights := parseSectorRows(table.DataRows(), sectorCol, weightCol)
		if len(weights) > len(best) {
			best = weights
		}
	}

	return best
}

// locateSectorColumns finds the label and weight columns in a header row,
// defaulting to the first two columns when the headers are unlabeled.
func locateSectorColumns(header []string) (sectorCol, weightCol int) {
	sectorCol, weightCol = -1, -1
	for idx, cell := range header {
		h := strings.ToLower(NormalizeSpace(cell))
		switch {
		case strings.Contains(h, "sector"):
			sectorCol = idx
		case strings.Contains(h, "weight") || strings.Contains(h, "%"):
			weightCol = idx
		}
	}
	if sectorCol < 0 {
		sectorCol = 0
	}
	if weightCol < 0 {
		weightCol = 1
	}
	return sectorCol, weightCol
}

// parseSectorRows reads (sector, weight) pairs from table data rows,
// dropping summary rows and rows whose weight does not parse.
func parseSectorRows(rows [][]string, sectorCol, weightCol int) []SectorWeight {
	var weights []SectorWeight
	for _, row := range rows {
		if len(row) <= sectorCol || len(row) <= weightCol {
			continue
		}
		name := NormalizeSpace(row[sectorCol])
		if skippedSectorLabels[strings.ToLower(name)] || isNumericToken(name) {
			continue
		}
		weight := ParseNumber(row[weightCol])
		if weight == nil {
			continue
		}
		weights = append(weights, SectorWeight{Sector: name, Weight: *weight})
	}
	return weights
}

// sectorsFromText is the fallback for documents where no table structure
// was detected. After a sector heading, a line qualifies when its last
// token parses as a percentage and the remaining text reads as a label.
func sectorsFromText(text string) []SectorWeight {
	lines := strings.Split(text, "\n")

	start := -1
	for i, line := range lines {
		l := strings.ToLower(line)
		if strings.Contains(l, "sector") &&
			(strings.Contains(l, "representation") || strings.Contains(l, "weight") || strings.Contains(l, "%")) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	var weights []SectorWeight
	misses := 0
	for _, line := range lines[start:] {
		sw, ok := parseSectorLine(line)
		if !ok {
			if len(weights) > 0 {
				misses++
				if misses >= maxFallbackMisses {
					break
				}
			}
			continue
		}
		misses = 0
		weights = append(weights, sw)
	}
	return weights
}

// parseSectorLine splits a candidate line into label and trailing weight.
func parseSectorLine(line string) (SectorWeight, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return SectorWeight{}, false
	}

	weight := ParseNumber(fields[len(fields)-1])
	if weight == nil {
		return SectorWeight{}, false
	}

	label := NormalizeSpace(strings.Join(fields[:len(fields)-1], " "))
	if label == "" || isNumericToken(label) || skippedSectorLabels[strings.ToLower(label)] {
		return SectorWeight{}, false
	}
	// Labels are words, not metric rows; require at least one letter
	if !strings.ContainsFunc(label, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}) {
		return SectorWeight{}, false
	}

	return SectorWeight{Sector: label, Weight: *weight}, true
}

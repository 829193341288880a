package csvout

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsetools/factsheet-extract/internal/extract"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestWriteIndexTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "indices.csv")

	records := []extract.IndexRecord{
		{
			IndexName:         "Nifty 50",
			SourceFilename:    "ind_nifty50.pdf",
			Methodology:       "Free Float Market Cap",
			ConstituentsCount: intPtr(50),
			LaunchDate:        "22 Apr 1996",
			PriceReturnQTD:    floatPtr(-2.5),
			PERatio:           floatPtr(24.56),
		},
		{
			IndexName:      "Nifty Next 50",
			SourceFilename: "ind_next50.pdf",
		},
	}

	require.NoError(t, WriteIndexTable(path, records))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)

	header := rows[0]
	assert.Equal(t, "Indices Name", header[0])
	assert.Equal(t, "Filename", header[1])
	assert.Equal(t, "P/E", header[len(header)-3])
	assert.Equal(t, "Dividend Yield", header[len(header)-1])
	assert.Len(t, header, 28)

	col := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		t.Fatalf("column %q not found", name)
		return -1
	}

	assert.Equal(t, "Nifty 50", rows[1][col("Indices Name")])
	assert.Equal(t, "50", rows[1][col("No. of Constituents")])
	assert.Equal(t, "-2.5", rows[1][col("Price Returns QTD")])
	assert.Equal(t, "24.56", rows[1][col("P/E")])

	// Absent values serialize as empty cells, never 0
	assert.Equal(t, "", rows[2][col("No. of Constituents")])
	assert.Equal(t, "", rows[2][col("Price Returns QTD")])
	assert.Equal(t, "", rows[2][col("P/E")])
}

func TestWriteIndexTable_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indices.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content\n"), 0o644))

	require.NoError(t, WriteIndexTable(path, []extract.IndexRecord{
		{IndexName: "Nifty 50", SourceFilename: "ind_nifty50.pdf"},
	}))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "Indices Name", rows[0][0])
}

func TestWriteSectorTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "sectors.csv")

	rows := []extract.SectorRow{
		{IndexName: "Nifty 50", SourceFilename: "ind_nifty50.pdf", SectorName: "Financial Services", WeightPercent: 35.2},
		{IndexName: "Nifty 50", SourceFilename: "ind_nifty50.pdf", SectorName: "Information Technology", WeightPercent: 14.8},
		{IndexName: "Nifty Bank", SourceFilename: "ind_bank.pdf", SectorName: "Financial Services", WeightPercent: 100},
		{IndexName: "Nifty Infra", SourceFilename: "ind_infra.pdf", SectorName: "Construction", WeightPercent: 0},
	}

	require.NoError(t, WriteSectorTable(path, rows))

	got := readCSV(t, path)
	require.Len(t, got, 4)

	// Sector columns are sorted alphabetically after the two fixed columns
	assert.Equal(t, []string{"Indices", "Filename", "Construction", "Financial Services", "Information Technology"}, got[0])

	// Documents keep first-appearance order
	assert.Equal(t, []string{"Nifty 50", "ind_nifty50.pdf", "", "35.2", "14.8"}, got[1])
	assert.Equal(t, []string{"Nifty Bank", "ind_bank.pdf", "", "100", ""}, got[2])

	// An explicit 0 weight is written out, distinct from the empty cells
	assert.Equal(t, []string{"Nifty Infra", "ind_infra.pdf", "0", "", ""}, got[3])
}

func TestWriteSectorTable_NoRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sectors.csv")

	require.NoError(t, WriteSectorTable(path, nil))

	got := readCSV(t, path)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Indices", "Filename"}, got[0])
}

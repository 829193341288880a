package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nsetools/factsheet-extract/internal/pdf"
)

func TestExtractSectors_FromTable(t *testing.T) {
	doc := &pdf.Document{
		Tables: []pdf.Table{
			{Rows: [][]string{
				{"Sector", "Weight (%)"},
				{"Financial Services", "35.2"},
				{"Information Technology", "14.8"},
				{"Oil Gas & Consumable Fuels", "11.3"},
				{"Total", "100.0"},
			}},
		},
	}

	got := ExtractSectors(doc)

	assert.Equal(t, []SectorWeight{
		{Sector: "Financial Services", Weight: 35.2},
		{Sector: "Information Technology", Weight: 14.8},
		{Sector: "Oil Gas & Consumable Fuels", Weight: 11.3},
	}, got)
}

func TestExtractSectors_SummaryRowsSkipped(t *testing.T) {
	doc := &pdf.Document{
		Tables: []pdf.Table{
			{Rows: [][]string{
				{"Sector", "Weight %"},
				{"Healthcare", "8.4"},
				{"Others", "3.1"},
				{"Total", "100.0"},
				{"", "5.0"},
				{"12.5", "7.0"},
				{"Utilities", "NA"},
			}},
		},
	}

	got := ExtractSectors(doc)

	assert.Equal(t, []SectorWeight{{Sector: "Healthcare", Weight: 8.4}}, got)
}

func TestExtractSectors_LargestQualifyingTableWins(t *testing.T) {
	doc := &pdf.Document{
		Tables: []pdf.Table{
			{Rows: [][]string{
				{"Sector", "Weight (%)"},
				{"Healthcare", "100.0"},
			}},
			{Rows: [][]string{
				{"Sector", "Weight (%)"},
				{"Financial Services", "35.2"},
				{"Information Technology", "14.8"},
			}},
		},
	}

	got := ExtractSectors(doc)

	assert.Len(t, got, 2)
	assert.Equal(t, "Financial Services", got[0].Sector)
}

func TestExtractSectors_HeaderWithoutWeightIsNotSectorTable(t *testing.T) {
	doc := &pdf.Document{
		Tables: []pdf.Table{
			{Rows: [][]string{
				{"Sector", "Outlook"},
				{"Healthcare", "Positive"},
			}},
		},
	}

	assert.Nil(t, ExtractSectors(doc))
}

func TestExtractSectors_TextFallback(t *testing.T) {
	doc := &pdf.Document{
		Text: "Sector Representation (%)\n" +
			"Financial Services 35.2\n" +
			"Information Technology 14.8\n" +
			"Total 100.0\n",
	}

	got := ExtractSectors(doc)

	assert.Equal(t, []SectorWeight{
		{Sector: "Financial Services", Weight: 35.2},
		{Sector: "Information Technology", Weight: 14.8},
	}, got)
}

func TestExtractSectors_TextFallbackStopsAfterRun(t *testing.T) {
	doc := &pdf.Document{
		Text: "Sector Representation (%)\n" +
			"Financial Services 35.2\n" +
			"prose line one\n" +
			"prose line two\n" +
			"prose line three\n" +
			"Launch Date 2005\n",
	}

	got := ExtractSectors(doc)

	// Scanning stops after three consecutive non-matching lines; the later
	// metric line never leaks in as a sector.
	assert.Equal(t, []SectorWeight{{Sector: "Financial Services", Weight: 35.2}}, got)
}

func TestExtractSectors_NoBreakdownYieldsNil(t *testing.T) {
	doc := &pdf.Document{
		Text: "Single sector factsheet with no breakdown anywhere.",
		Tables: []pdf.Table{
			{Rows: [][]string{
				{"Returns (%)", "QTD"},
				{"Price Return", "5.2"},
			}},
		},
	}

	assert.Nil(t, ExtractSectors(doc))
}

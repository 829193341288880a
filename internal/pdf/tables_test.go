package pdf

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
)

func run(s string, x, y, w float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w}
}

func TestBuildTables_SimpleGrid(t *testing.T) {
	runs := []pdf.Text{
		run("Sector", 50, 700, 40),
		run("Weight (%)", 200, 700, 60),
		run("Financial Services", 50, 688, 90),
		run("35.2", 200, 688, 25),
		run("Information Technology", 50, 676, 110),
		run("14.8", 200, 676, 25),
	}

	tables := buildTables(runs, 2)

	if assert.Len(t, tables, 1) {
		assert.Equal(t, 2, tables[0].Page)
		assert.Equal(t, [][]string{
			{"Sector", "Weight (%)"},
			{"Financial Services", "35.2"},
			{"Information Technology", "14.8"},
		}, tables[0].Rows)
	}
}

func TestBuildTables_NarrativeRowsSeparateBlocks(t *testing.T) {
	runs := []pdf.Text{
		// First grid
		run("Sector", 50, 700, 40),
		run("Weight", 200, 700, 40),
		run("Healthcare", 50, 690, 60),
		run("8.4", 200, 690, 20),
		// A full-width prose line ends the block
		run("The index is reconstituted semi-annually.", 50, 680, 300),
		// Second grid
		run("Statistics", 50, 670, 50),
		run("1 Year", 200, 670, 35),
		run("Std. Deviation", 50, 660, 70),
		run("14.2", 200, 660, 25),
	}

	tables := buildTables(runs, 1)

	if assert.Len(t, tables, 2) {
		assert.Equal(t, "Sector", tables[0].Rows[0][0])
		assert.Equal(t, "Statistics", tables[1].Rows[0][0])
	}
}

func TestBuildTables_VerticalGapSplitsBlocks(t *testing.T) {
	runs := []pdf.Text{
		run("Sector", 50, 700, 40),
		run("Weight", 200, 700, 40),
		run("Healthcare", 50, 692, 60),
		run("8.4", 200, 692, 20),
		// 42pt below the previous row: a separate table
		run("Statistics", 50, 650, 50),
		run("1 Year", 200, 650, 35),
		run("Std. Deviation", 50, 642, 70),
		run("14.2", 200, 642, 25),
	}

	tables := buildTables(runs, 1)

	assert.Len(t, tables, 2)
}

func TestBuildTables_TooSmallBlocksDropped(t *testing.T) {
	runs := []pdf.Text{
		// One multi-cell row is not a table
		run("Sector", 50, 700, 40),
		run("Weight", 200, 700, 40),
		run("A paragraph of narrative text.", 50, 690, 200),
		run("More narrative.", 50, 680, 100),
	}

	assert.Nil(t, buildTables(runs, 1))
}

func TestGroupRunsByRow(t *testing.T) {
	runs := []pdf.Text{
		// Unordered input with baseline jitter inside the tolerance
		run("35.2", 200, 688.5, 25),
		run("Weight", 200, 700, 40),
		run("Sector", 50, 701.5, 40),
		run("Financial Services", 50, 690, 90),
		run("   ", 120, 690, 10),
	}

	rows := groupRunsByRow(runs)

	if assert.Len(t, rows, 2) {
		assert.Len(t, rows[0], 2)
		assert.Equal(t, "Sector", rows[0][0].s)
		assert.Equal(t, "Weight", rows[0][1].s)
		assert.Len(t, rows[1], 2)
		assert.Equal(t, "Financial Services", rows[1][0].s)
	}
}

func TestSplitRowIntoCells(t *testing.T) {
	tests := []struct {
		name string
		row  []textRun
		want []string
	}{
		{
			name: "wide gap starts a new cell",
			row: []textRun{
				{s: "Launch Date", x: 50, right: 110},
				{s: "01 Apr 2005", x: 200, right: 260},
			},
			want: []string{"Launch Date", "01 Apr 2005"},
		},
		{
			name: "small gap joins words in one cell",
			row: []textRun{
				{s: "Launch", x: 50, right: 84},
				{s: "Date", x: 88, right: 110},
				{s: "2005", x: 200, right: 225},
			},
			want: []string{"Launch Date", "2005"},
		},
		{
			name: "touching runs concatenate",
			row: []textRun{
				{s: "Consti", x: 50, right: 80},
				{s: "tuents", x: 80.5, right: 110},
			},
			want: []string{"Constituents"},
		},
		{
			name: "unsorted runs are ordered by x",
			row: []textRun{
				{s: "14.8", x: 200, right: 225},
				{s: "Information Technology", x: 50, right: 160},
			},
			want: []string{"Information Technology", "14.8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitRowIntoCells(tt.row))
		})
	}
}

package pdf

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Table detection constants. Runs are clustered into rows by baseline
// proximity and into cells by horizontal gaps between runs.
const (
	rowTolerance    = 3.0  // max baseline delta within one row
	cellGap         = 12.0 // horizontal gap that starts a new cell
	wordGap         = 1.5  // horizontal gap that inserts a space inside a cell
	maxRowSpacing   = 18.0 // vertical gap that ends a table block
	minRowsForTable = 2
	minTableCells   = 4
)

// textRun is one positioned run with a precomputed right edge.
type textRun struct {
	s     string
	x, y  float64
	right float64
}

// buildTables clusters positioned text runs into tabular row/column grids.
// Rows with a single cell separate table blocks; blocks with at least two
// multi-cell rows are emitted as tables.
func buildTables(runs []pdf.Text, pageNum int) []Table {
	rows := groupRunsByRow(runs)
	if len(rows) < minRowsForTable {
		return nil
	}

	type gridRow struct {
		y     float64
		cells []string
	}

	gridRows := make([]gridRow, 0, len(rows))
	for _, row := range rows {
		cells := splitRowIntoCells(row)
		if len(cells) == 0 {
			continue
		}
		gridRows = append(gridRows, gridRow{y: row[0].y, cells: cells})
	}

	var tables []Table
	var block [][]string
	cellCount := 0
	prevY := 0.0

	flush := func() {
		if len(block) >= minRowsForTable && cellCount >= minTableCells {
			tables = append(tables, Table{Page: pageNum, Rows: block})
		}
		block = nil
		cellCount = 0
	}

	for _, gr := range gridRows {
		// Single-cell rows are narrative text, not table content
		if len(gr.cells) < 2 {
			flush()
			continue
		}
		if len(block) > 0 && prevY-gr.y > maxRowSpacing {
			flush()
		}
		block = append(block, gr.cells)
		cellCount += len(gr.cells)
		prevY = gr.y
	}
	flush()

	return tables
}

// groupRunsByRow sorts runs top-to-bottom and groups runs whose baselines
// sit within rowTolerance of each other.
func groupRunsByRow(runs []pdf.Text) [][]textRun {
	cleaned := make([]textRun, 0, len(runs))
	for _, run := range runs {
		if strings.TrimSpace(run.S) == "" {
			continue
		}
		cleaned = append(cleaned, textRun{
			s:     run.S,
			x:     run.X,
			y:     run.Y,
			right: run.X + run.W,
		})
	}
	if len(cleaned) == 0 {
		return nil
	}

	sort.Slice(cleaned, func(i, j int) bool {
		if cleaned[i].y != cleaned[j].y {
			return cleaned[i].y > cleaned[j].y
		}
		return cleaned[i].x < cleaned[j].x
	})

	var rows [][]textRun
	currentRow := []textRun{cleaned[0]}
	currentY := cleaned[0].y

	for i := 1; i < len(cleaned); i++ {
		if abs(cleaned[i].y-currentY) <= rowTolerance {
			currentRow = append(currentRow, cleaned[i])
		} else {
			rows = append(rows, currentRow)
			currentRow = []textRun{cleaned[i]}
			currentY = cleaned[i].y
		}
	}
	rows = append(rows, currentRow)

	return rows
}

// splitRowIntoCells merges adjacent runs into cells, starting a new cell
// whenever the horizontal gap between runs exceeds cellGap.
func splitRowIntoCells(row []textRun) []string {
	if len(row) == 0 {
		return nil
	}

	sort.Slice(row, func(i, j int) bool {
		return row[i].x < row[j].x
	})

	var cells []string
	var cell strings.Builder
	cell.WriteString(row[0].s)
	prevRight := row[0].right

	for i := 1; i < len(row); i++ {
		gap := row[i].x - prevRight
		switch {
		case gap > cellGap:
			cells = appendCell(cells, cell.String())
			cell.Reset()
			cell.WriteString(row[i].s)
		case gap > wordGap:
			cell.WriteString(" ")
			cell.WriteString(row[i].s)
		default:
			cell.WriteString(row[i].s)
		}
		if row[i].right > prevRight {
			prevRight = row[i].right
		}
	}
	cells = appendCell(cells, cell.String())

	return cells
}

func appendCell(cells []string, raw string) []string {
	cleaned := strings.Join(strings.Fields(raw), " ")
	if cleaned == "" {
		return cells
	}
	return append(cells, cleaned)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

package extract

import (
	"strings"

	"github.com/nsetools/factsheet-extract/internal/pdf"
)

// periodColumns maps the return/statistics period headers of one table to
// their column indices.
type periodColumns struct {
	qtd       int
	ytd       int
	oneYear   int
	fiveYears int
	inception int
}

func newPeriodColumns() periodColumns {
	return periodColumns{qtd: -1, ytd: -1, oneYear: -1, fiveYears: -1, inception: -1}
}

// mapPeriodColumns locates period headers in a table's first row.
func mapPeriodColumns(header []string) periodColumns {
	cols := newPeriodColumns()
	for idx, cell := range header {
		h := strings.ToLower(NormalizeSpace(cell))
		switch {
		case strings.Contains(h, "qtd"):
			cols.qtd = idx
		case strings.Contains(h, "ytd"):
			cols.ytd = idx
		case (strings.Contains(h, "1 year") || strings.Contains(h, "1year")) && !strings.Contains(h, "5"):
			cols.oneYear = idx
		case strings.Contains(h, "5 years") || strings.Contains(h, "5year") || strings.Contains(h, "5 year"):
			cols.fiveYears = idx
		case strings.Contains(h, "since") && strings.Contains(h, "inception"):
			cols.inception = idx
		}
	}
	return cols
}

// cellNumber parses the table cell at the mapped column, absent-safe.
func cellNumber(row []string, col int) *float64 {
	if col < 0 || col >= len(row) {
		return nil
	}
	return ParseNumber(row[col])
}

func headerMentionsAny(header []string, keywords ...string) bool {
	joined := strings.ToLower(NormalizeSpace(strings.Join(header, " ")))
	for _, kw := range keywords {
		if strings.Contains(joined, kw) {
			return true
		}
	}
	return false
}

// extractReturns reads the price/total returns table: a header row carrying
// QTD/YTD/1 year/5 years/since inception, with "Price Return" and
// "Total Return" data rows indexed by the mapped columns.
func extractReturns(tables []pdf.Table, rec *IndexRecord) {
	for _, table := range tables {
		if len(table.Rows) < 2 {
			continue
		}
		header := table.HeaderRow()
		if !headerMentionsAny(header, "qtd", "ytd", "1 year", "5 years", "since") {
			continue
		}
		cols := mapPeriodColumns(header)

		for _, row := range table.DataRows() {
			if len(row) < 2 {
				continue
			}
			label := strings.ToLower(NormalizeSpace(row[0]))
			if strings.Contains(label, "price return") && rec.PriceReturnQTD == nil && rec.PriceReturn1Y == nil {
				rec.PriceReturnQTD = cellNumber(row, cols.qtd)
				rec.PriceReturnYTD = cellNumber(row, cols.ytd)
				rec.PriceReturn1Y = cellNumber(row, cols.oneYear)
				rec.PriceReturn5Y = cellNumber(row, cols.fiveYears)
				rec.PriceReturnInception = cellNumber(row, cols.inception)
			}
			if strings.Contains(label, "total return") && rec.TotalReturnQTD == nil && rec.TotalReturn1Y == nil {
				rec.TotalReturnQTD = cellNumber(row, cols.qtd)
				rec.TotalReturnYTD = cellNumber(row, cols.ytd)
				rec.TotalReturn1Y = cellNumber(row, cols.oneYear)
				rec.TotalReturn5Y = cellNumber(row, cols.fiveYears)
				rec.TotalReturnInception = cellNumber(row, cols.inception)
			}
		}
	}
}

// extractStatistics reads the statistics table: "Std. Deviation" and
// "Beta (Nifty 50)" rows under 1 year/5 years/since inception headers.
func extractStatistics(tables []pdf.Table, rec *IndexRecord) {
	for _, table := range tables {
		if len(table.Rows) < 2 {
			continue
		}
		header := table.HeaderRow()
		if !headerMentionsAny(header, "statistics", "1 year", "5 years", "since") {
			continue
		}
		cols := mapPeriodColumns(header)

		for _, row := range table.DataRows() {
			if len(row) == 0 {
				continue
			}
			label := strings.ToLower(NormalizeSpace(row[0]))

			if strings.Contains(label, "std") && strings.Contains(label, "deviation") && rec.StdDev1Y == nil {
				rec.StdDev1Y = cellNumber(row, cols.oneYear)
				rec.StdDev5Y = cellNumber(row, cols.fiveYears)
				rec.StdDevInception = cellNumber(row, cols.inception)
				continue
			}

			leading := strings.ToLower(NormalizeSpace(strings.Join(firstN(row, 3), " ")))
			if strings.Contains(label, "beta") && strings.Contains(leading, "nifty") && rec.Beta1Y == nil {
				rec.Beta1Y = cellNumber(row, cols.oneYear)
				rec.Beta5Y = cellNumber(row, cols.fiveYears)
				rec.BetaInception = cellNumber(row, cols.inception)
			}
		}
	}
}

// extractFundamentals reads P/E, P/B and Dividend Yield. The usual layout
// is a small table with the three labels in the header and values in the
// following row; text patterns cover documents where the table collapsed
// into plain lines.
func extractFundamentals(doc *pdf.Document, rec *IndexRecord) {
	for _, table := range doc.Tables {
		if len(table.Rows) < 2 {
			continue
		}
		header := table.HeaderRow()
		if !headerMentionsAny(header, "p/e", "p/b", "dividend yield") {
			continue
		}

		valueRow := table.Rows[1]
		for idx, cell := range header {
			if idx >= len(valueRow) {
				break
			}
			h := strings.ToLower(NormalizeSpace(cell))
			value := ParseNumber(valueRow[idx])
			switch {
			case strings.Contains(h, "p/e"):
				rec.PERatio = value
			case strings.Contains(h, "p/b"):
				rec.PBRatio = value
			case strings.Contains(h, "dividend yield") || strings.Contains(h, "div yield"):
				rec.DividendYield = value
			}
		}
	}

	// Text fallback, field by field
	if rec.PERatio == nil {
		rec.PERatio = ParseNumber(FindValueInText(doc.Text, "p/e"))
	}
	if rec.PBRatio == nil {
		rec.PBRatio = ParseNumber(FindValueInText(doc.Text, "p/b"))
	}
	if rec.DividendYield == nil {
		rec.DividendYield = ParseNumber(FindValueInText(doc.Text, "dividend yield"))
	}
}

func firstN(row []string, n int) []string {
	if len(row) < n {
		return row
	}
	return row[:n]
}

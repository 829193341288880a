package extract

import (
	"regexp"
	"strings"

	"github.com/nsetools/factsheet-extract/internal/pdf"
)

// basicFieldKeys maps each scalar metadata field to the label spellings
// seen across factsheet template versions, in priority order.
var basicFieldKeys = map[string][]string{
	"methodology":  {"methodology", "index methodology"},
	"constituents": {"constituents", "number of constituents", "no. of constituents"},
	"launch":       {"launch date", "launched on"},
	"basedate":     {"base date", "base value date"},
	"basevalue":    {"base value", "base index value"},
	"calcfreq":     {"calculation frequency", "frequency"},
	"rebalancing":  {"rebalancing", "index rebalancing", "rebalancing frequency"},
}

var inlineValueRE = regexp.MustCompile(`[:=]\s*(.+)`)

// FindValueInTables searches all table cells for a key and returns the
// value from an adjacent cell. The common layout is key in one column and
// value in the next; when the key sits in the second column the value may
// be in the first or third.
func FindValueInTables(tables []pdf.Table, searchKey string) string {
	keyLower := strings.ToLower(searchKey)

	for _, table := range tables {
		for _, row := range table.Rows {
			for i, cell := range row {
				cellValue := NormalizeSpace(cell)
				if !strings.Contains(strings.ToLower(cellValue), keyLower) {
					continue
				}
				if i+1 < len(row) {
					if next := NormalizeSpace(row[i+1]); next != "" && !strings.Contains(keyLower, strings.ToLower(next)) {
						return next
					}
				}
				if i == 1 {
					if first := NormalizeSpace(row[0]); first != "" && !strings.Contains(keyLower, strings.ToLower(first)) {
						return first
					}
				}
				if i+2 < len(row) {
					if third := NormalizeSpace(row[i+2]); third != "" && !strings.Contains(keyLower, strings.ToLower(third)) {
						return third
					}
				}
			}
		}
	}
	return ""
}

// FindValueInText searches document text for "key: value" (or "key= value")
// on one line, or the key on one line with its value on the next — PDF
// reflow regularly splits a label from its value.
func FindValueInText(text, searchKey string) string {
	keyLower := strings.ToLower(searchKey)
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), keyLower) {
			continue
		}
		if match := inlineValueRE.FindStringSubmatch(line); match != nil {
			return strings.TrimSpace(match[1])
		}
		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if next != "" && !strings.HasPrefix(strings.ToLower(next), keyLower) {
				return next
			}
		}
	}
	return ""
}

// findBasicField looks a labeled field up in tables first, then in text.
func findBasicField(doc *pdf.Document, keys []string) string {
	for _, key := range keys {
		if value := FindValueInTables(doc.Tables, key); value != "" {
			return value
		}
	}
	for _, key := range keys {
		if value := FindValueInText(doc.Text, key); value != "" {
			return value
		}
	}
	return ""
}

// extractBasicFields fills the scalar metadata fields of the record. Each
// field is looked up independently; a miss leaves the field absent.
func extractBasicFields(doc *pdf.Document, rec *IndexRecord) {
	rec.Methodology = NormalizeSpace(findBasicField(doc, basicFieldKeys["methodology"]))
	rec.ConstituentsCount = ParseCount(findBasicField(doc, basicFieldKeys["constituents"]))
	rec.LaunchDate = ParseDate(findBasicField(doc, basicFieldKeys["launch"]))
	rec.BaseDate = ParseDate(findBasicField(doc, basicFieldKeys["basedate"]))
	rec.BaseValue = ParseNumber(findBasicField(doc, basicFieldKeys["basevalue"]))
	rec.CalcFrequency = NormalizeSpace(findBasicField(doc, basicFieldKeys["calcfreq"]))
	rec.RebalancingFrequency = NormalizeSpace(findBasicField(doc, basicFieldKeys["rebalancing"]))
}

package pdf

// Document is the extracted content of one factsheet PDF: page-ordered plain
// text plus any tables detected from positioned text runs.
type Document struct {
	Path      string
	Filename  string
	Text      string
	Tables    []Table
	PageCount int
}

// Table is a detected tabular structure. Rows[0] is treated as the header
// row by consumers; cells are whitespace-normalized strings.
type Table struct {
	Page int
	Rows [][]string
}

// HeaderRow returns the first row of the table, or nil for an empty table.
func (t Table) HeaderRow() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}

// DataRows returns all rows after the header row.
func (t Table) DataRows() [][]string {
	if len(t.Rows) < 2 {
		return nil
	}
	return t.Rows[1:]
}

// FileInfo describes one candidate PDF file found during discovery.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

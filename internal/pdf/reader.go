package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Reader handles PDF content acquisition for the extraction pipelines
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a new PDF reader with the specified constraints
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// ReadDocument extracts page-ordered text and detected tables from a PDF
// file. It fails only when the file cannot be opened at all or yields no
// content; a page that fails to parse is skipped, not fatal.
func (r *Reader) ReadDocument(path string) (doc *Document, err error) {
	// The underlying parser panics on some malformed files
	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = fmt.Errorf("panic while parsing PDF %s: %v", path, rec)
		}
	}()

	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if err := r.validatePDFFile(path, fileInfo); err != nil {
		return nil, err
	}

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	doc = &Document{
		Path:      path,
		Filename:  filepath.Base(path),
		PageCount: pdfReader.NumPage(),
	}

	var builder strings.Builder
	totalLength := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		pageText, pageTables := r.extractPage(pdfReader, pageNum)

		doc.Tables = append(doc.Tables, pageTables...)

		if pageText == "" {
			continue
		}
		if totalLength+len(pageText) > r.maxTextSize {
			remaining := r.maxTextSize - totalLength
			if remaining > 0 {
				builder.WriteString(truncateOnRuneBoundary(pageText, remaining))
			}
			break
		}
		builder.WriteString(pageText)
		builder.WriteString("\n")
		totalLength += len(pageText) + 1
	}

	doc.Text = builder.String()
	if strings.TrimSpace(doc.Text) == "" && len(doc.Tables) == 0 {
		return nil, fmt.Errorf("no text or tables could be extracted from PDF: %s", doc.Filename)
	}

	return doc, nil
}

// extractPage pulls plain text and table structures from one page. Errors
// on a single page are swallowed so remaining pages still contribute.
func (r *Reader) extractPage(pdfReader *pdf.Reader, pageNum int) (text string, tables []Table) {
	defer func() {
		if recover() != nil {
			// Page-level parse failure; keep whatever was produced
		}
	}()

	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return "", nil
	}

	if content, err := page.GetPlainText(nil); err == nil {
		text = content
	}

	runs := page.Content().Text
	tables = buildTables(runs, pageNum)

	return text, tables
}

// truncateOnRuneBoundary cuts s to at most n bytes without splitting a
// multi-byte rune; the cut point backs up to the nearest rune start.
func truncateOnRuneBoundary(s string, n int) string {
	if n >= len(s) {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// validatePDFFile performs basic validation on a PDF file before opening it
func (r *Reader) validatePDFFile(filePath string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}

	if fileInfo.Size() > r.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}

	return nil
}

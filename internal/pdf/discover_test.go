package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populateFactsheetDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	for name, content := range map[string][]byte{
		"ind_nifty50.pdf": []byte("%PDF-1.4 stub"),
		"IND_NEXT50.PDF":  []byte("%PDF-1.4 stub"),
		"notes.txt":       []byte("not a factsheet"),
		"empty.pdf":       nil,
		"oversized.pdf":   make([]byte, 4096),
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	return dir
}

func TestFindFactsheets(t *testing.T) {
	d := NewDiscovery(1024)
	dir := populateFactsheetDir(t)

	files, err := d.FindFactsheets(dir)
	require.NoError(t, err)

	// Non-PDFs, empty files, oversized files and directories are skipped;
	// results are sorted by name.
	if assert.Len(t, files, 2) {
		assert.Equal(t, "IND_NEXT50.PDF", files[0].Name)
		assert.Equal(t, "ind_nifty50.pdf", files[1].Name)
		assert.Equal(t, filepath.Join(dir, "ind_nifty50.pdf"), files[1].Path)
		assert.Greater(t, files[1].Size, int64(0))
	}
}

func TestFindFactsheets_EmptyDirectory(t *testing.T) {
	d := NewDiscovery(1024)

	files, err := d.FindFactsheets(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindFactsheets_Errors(t *testing.T) {
	d := NewDiscovery(1024)

	_, err := d.FindFactsheets("")
	assert.Error(t, err)

	_, err = d.FindFactsheets(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestFindByStem(t *testing.T) {
	d := NewDiscovery(1024)
	dir := populateFactsheetDir(t)

	files, err := d.FindByStem(dir, "ind_nifty50")
	require.NoError(t, err)
	if assert.Len(t, files, 1) {
		assert.Equal(t, "ind_nifty50.pdf", files[0].Name)
	}

	// Stem matching ignores case on both sides
	files, err = d.FindByStem(dir, "ind_next50")
	require.NoError(t, err)
	if assert.Len(t, files, 1) {
		assert.Equal(t, "IND_NEXT50.PDF", files[0].Name)
	}

	files, err = d.FindByStem(dir, "unknown")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestReadDocument_Rejections(t *testing.T) {
	r := NewReader(1024)

	_, err := r.ReadDocument("")
	assert.Error(t, err)

	_, err = r.ReadDocument(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "big.pdf")
	require.NoError(t, os.WriteFile(path, make([]byte, 4096), 0o644))
	_, err = r.ReadDocument(path)
	assert.ErrorContains(t, err, "too large")
}

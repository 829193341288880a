package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discovery enumerates candidate factsheet PDFs in a directory
type Discovery struct {
	validator *Validator
}

// NewDiscovery creates a new discovery handler with the specified constraints
func NewDiscovery(maxFileSize int64) *Discovery {
	return &Discovery{
		validator: NewValidator(maxFileSize),
	}
}

// FindFactsheets returns all PDF files directly inside the directory,
// sorted by filename for a stable processing order. Files that fail basic
// checks (wrong extension, empty, oversized) are silently skipped here;
// deeper validation happens per file in the batch driver.
func (d *Discovery) FindFactsheets(directory string) ([]FileInfo, error) {
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", directory, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		path := filepath.Join(directory, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if err := d.validator.ValidateFileInfo(path, info); err != nil {
			continue
		}

		files = append(files, FileInfo{
			Name: entry.Name(),
			Path: path,
			Size: info.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// FindByStem returns the factsheet whose filename without extension matches
// the given stem, case-insensitively.
func (d *Discovery) FindByStem(directory, stem string) ([]FileInfo, error) {
	files, err := d.FindFactsheets(directory)
	if err != nil {
		return nil, err
	}

	var matched []FileInfo
	for _, file := range files {
		name := strings.TrimSuffix(file.Name, filepath.Ext(file.Name))
		if strings.EqualFold(name, stem) {
			matched = append(matched, file)
		}
	}

	return matched, nil
}

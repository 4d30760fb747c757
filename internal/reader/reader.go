// Package reader loads catalog documents from disk and exposes their text
// page by page, with a best-effort left/right column split for sheets laid
// out in two columns.
package reader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/projbank/projbank/internal/display"
)

// ErrUnsupportedFormat is returned when a file format is not supported.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrNoText is returned when a document yields no extractable text.
var ErrNoText = errors.New("no text extracted from document")

// Document is one loaded catalog document.
type Document struct {
	// Path is the source file path
	Path string
	// Name is the base filename
	Name string
	// Pages holds the plain text of each page, Pages[0] being page 1
	Pages []string
	// LeftColumns holds the left-half text of each page, empty when the
	// positional split was not possible
	LeftColumns []string
}

// Cover returns the first page's text.
func (d Document) Cover() string {
	if len(d.Pages) == 0 {
		return ""
	}
	return d.Pages[0]
}

// FullText joins all pages.
func (d Document) FullText() string {
	return strings.Join(d.Pages, "\n")
}

// LeftColumn returns the left-column text of a 1-based page, empty when
// unavailable.
func (d Document) LeftColumn(page int) string {
	if page < 1 || page > len(d.LeftColumns) {
		return ""
	}
	return d.LeftColumns[page-1]
}

// LoadDirectory reads every PDF in a directory, sorted by name so runs are
// deterministic. Unreadable documents are skipped with a warning rather
// than failing the batch.
func LoadDirectory(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.ToLower(filepath.Ext(entry.Name())) != ".pdf" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var docs []Document
	for _, name := range names {
		path := filepath.Join(dir, name)
		doc, err := LoadFile(path)
		if err != nil {
			display.Warn(fmt.Sprintf("skipping PDF %q: %v", path, err))
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// LoadFile reads a single document from the given path.
func LoadFile(path string) (Document, error) {
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return loadPDF(path)
}

// Package segment locates project boundaries inside a document's page
// texts. Sector catalogs carry many project sheets per document, one sheet
// starting on its own page; crawled sheets are one project per document.
package segment

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoPages is returned when a document has no page text at all.
var ErrNoPages = errors.New("document has no pages")

// Block is one project's text region inside a document.
type Block struct {
	// Text is the start page concatenated with the following page, so
	// fields spilling across the page boundary stay inside the block.
	Text string
	// StartPage is the 1-based page the project sheet starts on.
	StartPage int
	// Index is the running 1-based position of the project in the scan.
	Index int
}

// Project sheets open with a numbered header: "PROJET N°36", "PROJET N°A-001",
// "PROJET N° T 001". The secondary form covers sheets that only carry
// "PROJET :" next to a section keyword.
var (
	startMarker    = regexp.MustCompile(`(?i)PROJET\s+N[°\s]*[A-Za-z]*[-\s]*\d+`)
	weakMarker     = regexp.MustCompile(`(?i)PROJET\s*[:-]`)
	sectionKeyword = regexp.MustCompile(`FILIÈRE|FILIERE|DESCRIPTION`)
)

// Projects splits an ordered sequence of page texts into per-project
// blocks. When no start-of-project marker is found anywhere, the whole
// document becomes a single block anchored at page 1, so a document is
// never silently dropped.
func Projects(pages []string) ([]Block, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	starts := startPages(pages)
	if len(starts) == 0 {
		return []Block{{Text: strings.Join(pages, "\n"), StartPage: 1, Index: 1}}, nil
	}

	isStart := make(map[int]bool, len(starts))
	for _, p := range starts {
		isStart[p] = true
	}

	blocks := make([]Block, 0, len(starts))
	for i, page := range starts {
		text := pages[page-1]
		// Pull in the next page unless it opens the next project.
		if page < len(pages) && !isStart[page+1] {
			text += "\n" + pages[page]
		}
		blocks = append(blocks, Block{Text: text, StartPage: page, Index: i + 1})
	}
	return blocks, nil
}

// WholeDocument treats the first two pages as a single project block
// anchored at page 1, the shape one-sheet-per-document sources use.
func WholeDocument(pages []string) Block {
	text := ""
	if len(pages) > 0 {
		text = pages[0]
	}
	if len(pages) > 1 {
		text += "\n" + pages[1]
	}
	return Block{Text: text, StartPage: 1, Index: 1}
}

func startPages(pages []string) []int {
	var starts []int
	for i, text := range pages {
		if startMarker.MatchString(text) {
			starts = append(starts, i+1)
		}
	}
	if len(starts) > 0 {
		return starts
	}
	// Secondary pass: a bare "PROJET :" header only counts next to a
	// recognized section keyword, so narrative mentions don't split pages.
	// Page 1 is skipped here, a catalog cover often carries that wording.
	for i := 1; i < len(pages); i++ {
		if weakMarker.MatchString(pages[i]) && sectionKeyword.MatchString(pages[i]) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

package reader

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// defaultPageWidth is the US Letter width in points, used when a page
// carries no MediaBox of its own.
const defaultPageWidth = 612

func loadPDF(path string) (Document, error) {
	if err := verifyPDF(path); err != nil {
		return Document{}, err
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open PDF %q: %w", path, err)
	}
	defer f.Close()

	doc := Document{
		Path: path,
		Name: filepath.Base(path),
	}
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			doc.Pages = append(doc.Pages, "")
			doc.LeftColumns = append(doc.LeftColumns, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			text = ""
		}
		doc.Pages = append(doc.Pages, strings.TrimSpace(text))
		doc.LeftColumns = append(doc.LeftColumns, leftColumnText(page))
	}

	if strings.TrimSpace(doc.FullText()) == "" {
		return Document{}, fmt.Errorf("%w: %s", ErrNoText, path)
	}
	return doc, nil
}

// verifyPDF runs a relaxed structural validation before parsing; scanned
// catalogs frequently carry harmless structural defects.
func verifyPDF(path string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if _, err := api.PageCountFile(path); err != nil {
		if err := api.ValidateFile(path, conf); err != nil {
			return fmt.Errorf("validate PDF %q: %w", path, err)
		}
	}
	return nil
}

// leftColumnText rebuilds the text of the page's left half from positioned
// glyph runs, reading top to bottom. Two-column sheets keep the narrative
// on the left and the indicator box on the right; extracting the left half
// alone keeps the narrative free of indicator fragments.
func leftColumnText(page pdf.Page) string {
	content := page.Content()
	if len(content.Text) == 0 {
		return ""
	}
	mid := pageWidth(page) / 2

	var left []pdf.Text
	for _, t := range content.Text {
		if t.X < mid {
			left = append(left, t)
		}
	}
	if len(left) == 0 {
		return ""
	}

	// PDF origin is bottom-left: higher Y means higher on the page.
	sort.SliceStable(left, func(i, j int) bool {
		if left[i].Y != left[j].Y {
			return left[i].Y > left[j].Y
		}
		return left[i].X < left[j].X
	})

	var sb strings.Builder
	lastY := left[0].Y
	for _, t := range left {
		if t.Y != lastY {
			sb.WriteString("\n")
			lastY = t.Y
		}
		sb.WriteString(t.S)
	}
	return strings.TrimSpace(sb.String())
}

func pageWidth(page pdf.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.Len() == 4 {
		if w := box.Index(2).Float64(); w > 0 {
			return w
		}
	}
	return defaultPageWidth
}

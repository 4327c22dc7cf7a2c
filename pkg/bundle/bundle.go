// Package bundle serializes a document to a portable, self-contained HTML
// artifact and reads it back. The artifact carries every page's image and
// annotated words inline, so it renders with no network access and no
// dependency on the original session.
package bundle

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/scanlate/models"
	"github.com/dtnitsch/scanlate/pkg/imaging"
)

// Export writes the document as a single offline HTML file. Pages whose image
// fails the structural validity check are skipped with a log line; a
// malformed word list is coerced to empty. The export fails only when every
// page was rejected.
func Export(doc *models.Document, w io.Writer) error {
	var payloads []template.JS
	for _, page := range doc.Pages {
		cleaned, ok := cleanPage(page)
		if !ok {
			log.Printf("skipping page %d: invalid image data", page.PageNum)
			continue
		}
		// json.Marshal escapes <, > and &, so the payload is safe to
		// embed inside a script element.
		data, err := json.Marshal(cleaned)
		if err != nil {
			log.Printf("skipping page %d: %s", page.PageNum, err)
			continue
		}
		payloads = append(payloads, template.JS(data))
	}

	if len(payloads) == 0 {
		return fmt.Errorf("no valid pages to export")
	}

	return viewerTemplate.Execute(w, struct {
		Pages []template.JS
	}{Pages: payloads})
}

// cleanPage validates and normalizes one page for export.
func cleanPage(page models.Page) (models.Page, bool) {
	page.Image = imaging.StripControl(page.Image)
	if !imaging.IsValidDataURL(page.Image) {
		return page, false
	}
	if page.Words == nil {
		page.Words = []models.AnnotatedWord{}
	}
	page.Err = ""
	return page, true
}

// Import parses an exported artifact back into a document. Pages are sorted
// by page number; stored bounding boxes stay in original-image pixels, so
// re-rendering at any viewport size reproduces the export-time alignment.
func Import(r io.Reader) (*models.Document, error) {
	htmlDoc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bundle: %w", err)
	}

	doc := &models.Document{}
	var parseErr error
	htmlDoc.Find(`script.page-data[type="application/json"]`).Each(func(i int, s *goquery.Selection) {
		var page models.Page
		if err := json.Unmarshal([]byte(s.Text()), &page); err != nil {
			parseErr = fmt.Errorf("failed to parse page payload %d: %w", i+1, err)
			return
		}
		if page.PageNum <= 0 {
			parseErr = fmt.Errorf("page payload %d has no page number", i+1)
			return
		}
		if page.Words == nil {
			page.Words = []models.AnnotatedWord{}
		}
		doc.Pages = append(doc.Pages, page)
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("bundle contains no pages")
	}

	doc.Sort()
	return doc, nil
}

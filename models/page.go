// Package models defines the data structures shared across the pipeline.
package models

import "sort"

// BoundingBox locates a word in the pixel coordinate space of the original,
// uncompressed page image. X1 >= X0 and Y1 >= Y0.
type BoundingBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Valid reports whether the box satisfies the coordinate invariant.
func (b BoundingBox) Valid() bool {
	return b.X1 >= b.X0 && b.Y1 >= b.Y0
}

// Project maps the box into a display coordinate space. scaleX and scaleY are
// displayedSize / naturalImageSize for each axis, so the same stored box
// renders at the same relative on-image position at any viewport size.
func (b BoundingBox) Project(scaleX, scaleY float64) BoundingBox {
	return BoundingBox{
		X0: b.X0 * scaleX,
		Y0: b.Y0 * scaleY,
		X1: b.X1 * scaleX,
		Y1: b.Y1 * scaleY,
	}
}

// WordCandidate is a raw recognized word as emitted by OCR, before filtering.
// Confidence is in [0,100].
type WordCandidate struct {
	Text       string      `json:"text"`
	Confidence float64     `json:"confidence"`
	BBox       BoundingBox `json:"bbox"`
}

// AnnotatedWord is an accepted word with its translation attached. Text keeps
// the original case and form; the bbox stays in original-image pixels.
type AnnotatedWord struct {
	Text        string      `json:"text"`
	BBox        BoundingBox `json:"bbox"`
	Translation string      `json:"translation"`
}

// Page is one processed page: its (possibly recompressed) image as a data URL,
// the natural pixel dimensions of that image, and the annotated words in OCR
// emission order.
type Page struct {
	PageNum int             `json:"pageNum"`
	Image   string          `json:"imgData"`
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Words   []AnnotatedWord `json:"wordsData"`

	// Err marks a page that failed unrecoverably during processing. The
	// page is still carried in the document so siblings are unaffected.
	Err string `json:"error,omitempty"`
}

// RawPage is the pre-annotation form of a page as delivered by the
// rasterization backend or the OCR engine.
type RawPage struct {
	Image string          `json:"image"`
	Words []WordCandidate `json:"words"`
}

// Document is an ordered sequence of pages keyed by page number.
type Document struct {
	Pages []Page
}

// Sort orders pages by page number.
func (d *Document) Sort() {
	sort.Slice(d.Pages, func(i, j int) bool {
		return d.Pages[i].PageNum < d.Pages[j].PageNum
	})
}

// PageNumbers returns the page numbers in document order.
func (d *Document) PageNumbers() []int {
	nums := make([]int, len(d.Pages))
	for i, p := range d.Pages {
		nums[i] = p.PageNum
	}
	return nums
}

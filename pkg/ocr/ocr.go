// Package ocr wraps the recognition engine behind a narrow contract: one
// image in, candidate words with confidences and bounding boxes out. Failures
// never cross this boundary; a failed recognition yields an empty word list.
package ocr

import (
	"context"

	"github.com/dtnitsch/scanlate/models"
)

// Result is the raw recognition output for one image. Width and Height are
// the natural pixel dimensions the bounding boxes are expressed in.
type Result struct {
	Words  []models.WordCandidate
	Width  int
	Height int
}

// Engine recognizes words in an encoded image. Implementations must not
// return recognition errors to callers; they log and return an empty Result
// instead.
type Engine interface {
	Recognize(ctx context.Context, imageData []byte) Result
}

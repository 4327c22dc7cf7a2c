package ocr

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"

	"github.com/otiai10/gosseract/v2"

	"github.com/dtnitsch/scanlate/models"
)

// Tesseract implements Engine using the gosseract client. A fresh client is
// created per recognition; gosseract clients are not safe for reuse across
// images with different settings.
type Tesseract struct {
	language      string
	clientFactory func() *gosseract.Client
}

// NewTesseract constructs a Tesseract-backed engine. language is the trained
// data code, e.g. "eng".
func NewTesseract(language string) *Tesseract {
	if language == "" {
		language = "eng"
	}
	return &Tesseract{
		language:      language,
		clientFactory: gosseract.NewClient,
	}
}

// Recognize runs word-level OCR on an encoded image. Any failure is logged
// and reported as an empty result.
func (t *Tesseract) Recognize(ctx context.Context, imageData []byte) Result {
	if len(imageData) == 0 {
		log.Printf("empty image data provided for text extraction")
		return Result{}
	}
	if err := ctx.Err(); err != nil {
		return Result{}
	}

	width, height := imageDimensions(imageData)

	client := t.clientFactory()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		log.Printf("failed to set OCR language %q: %s", t.language, err)
		return Result{Width: width, Height: height}
	}
	if err := client.SetImageFromBytes(imageData); err != nil {
		log.Printf("failed to set OCR image: %s", err)
		return Result{Width: width, Height: height}
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		log.Printf("text extraction failed: %s", err)
		return Result{Width: width, Height: height}
	}

	words := make([]models.WordCandidate, 0, len(boxes))
	for _, box := range boxes {
		words = append(words, models.WordCandidate{
			Text:       box.Word,
			Confidence: box.Confidence,
			BBox: models.BoundingBox{
				X0: float64(box.Box.Min.X),
				Y0: float64(box.Box.Min.Y),
				X1: float64(box.Box.Max.X),
				Y1: float64(box.Box.Max.Y),
			},
		})
	}

	return Result{Words: words, Width: width, Height: height}
}

func imageDimensions(imageData []byte) (int, int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

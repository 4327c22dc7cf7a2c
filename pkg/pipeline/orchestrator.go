package pipeline

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/scanlate/models"
	"github.com/dtnitsch/scanlate/pkg/imaging"
	"github.com/dtnitsch/scanlate/pkg/ocr"
)

// Rasterizer converts a whole PDF into raw pages.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdf []byte) ([]models.RawPage, error)
}

// Resetter clears volatile cache state when a fresh session starts.
type Resetter interface {
	Reset()
}

// Orchestrator drives per-page and per-word processing for one document at a
// time. Pages run strictly in page-number order: the durable store, the
// remote-call throttle, and the memory cache are shared mutable state without
// isolation between pages.
type Orchestrator struct {
	builder *Builder
	store   PageStore
	cache   Resetter
	raster  Rasterizer
	engine  ocr.Engine
	logger  *slog.Logger

	// FreshCache restores the destructive reset: the translation cache is
	// cleared along with the pages at session start.
	FreshCache bool
}

// NewOrchestrator wires the document pipeline. raster and engine may be nil
// when the corresponding input type is not needed.
func NewOrchestrator(builder *Builder, store PageStore, cache Resetter, raster Rasterizer, engine ocr.Engine, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		builder: builder,
		store:   store,
		cache:   cache,
		raster:  raster,
		engine:  engine,
		logger:  logger,
	}
}

// startSession begins a fresh durable-store session. Pages are always
// cleared; translations persist across sessions unless FreshCache is set.
func (o *Orchestrator) startSession() error {
	if o.store == nil {
		return nil
	}
	if o.FreshCache {
		if o.cache != nil {
			o.cache.Reset()
		}
		return o.store.ClearAll()
	}
	return o.store.ClearPages()
}

// ProcessDocument builds a document from raw pages, numbering them in input
// order. An unrecoverable failure on one page (an invalid image) is recorded
// as an error marker on that page and processing continues; translation
// failures never abort anything. All durable writes complete before this
// returns.
func (o *Orchestrator) ProcessDocument(ctx context.Context, rawPages []models.RawPage) (*models.Document, error) {
	if err := o.startSession(); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	doc := &models.Document{}
	for i, raw := range rawPages {
		pageNum := i + 1
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !imaging.IsValidDataURL(imaging.StripControl(raw.Image)) {
			o.logger.Error("invalid image data", "page", pageNum)
			doc.Pages = append(doc.Pages, models.Page{
				PageNum: pageNum,
				Err:     "invalid image data",
			})
			continue
		}

		page, empty := o.builder.BuildPage(ctx, pageNum, raw.Image, raw.Words)
		if empty {
			o.logger.Warn("no valid words extracted", "page", pageNum)
		}
		doc.Pages = append(doc.Pages, page)
	}

	doc.Sort()
	return doc, nil
}

// ProcessFile ingests a source file and processes it into a document. PDFs go
// through the rasterization backend; single images go through the OCR engine.
// Anything else is an input error.
func (o *Orchestrator) ProcessFile(ctx context.Context, path string) (*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	switch detectInputType(path, data) {
	case inputPDF:
		if o.raster == nil {
			return nil, fmt.Errorf("no rasterization backend configured")
		}
		rawPages, err := o.raster.Rasterize(ctx, data)
		if err != nil {
			return nil, err
		}
		return o.ProcessDocument(ctx, rawPages)

	case inputImage:
		if o.engine == nil {
			return nil, fmt.Errorf("no OCR engine configured")
		}
		result := o.engine.Recognize(ctx, data)
		mime := "image/png"
		if bytes.HasPrefix(data, []byte{0xff, 0xd8}) {
			mime = "image/jpeg"
		}
		raw := models.RawPage{
			Image: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
			Words: result.Words,
		}
		return o.ProcessDocument(ctx, []models.RawPage{raw})

	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

type inputType int

const (
	inputUnknown inputType = iota
	inputPDF
	inputImage
)

func detectInputType(path string, data []byte) inputType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return inputPDF
	case ".png", ".jpg", ".jpeg":
		return inputImage
	}
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return inputPDF
	}
	if bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}) || bytes.HasPrefix(data, []byte{0xff, 0xd8}) {
		return inputImage
	}
	return inputUnknown
}

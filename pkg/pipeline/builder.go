// Package pipeline assembles annotated pages from raw recognition output and
// drives whole-document processing.
package pipeline

import (
	"context"
	"log"

	"github.com/dtnitsch/scanlate/models"
	"github.com/dtnitsch/scanlate/pkg/imaging"
	"github.com/dtnitsch/scanlate/pkg/wordfilter"
)

// Resolver is the translation cache consulted per accepted word.
type Resolver interface {
	Resolve(ctx context.Context, word string) string
}

// PageStore persists finished pages and supports the destructive session
// reset.
type PageStore interface {
	PutPage(page models.Page) error
	ClearPages() error
	ClearAll() error
}

// Builder turns one raw page into an annotated Page: filtering candidates,
// resolving translations sequentially (the cache enforces the global remote
// throttle), re-encoding the image, and persisting the result.
type Builder struct {
	filter  *wordfilter.Filter
	cache   Resolver
	store   PageStore
	quality float64
}

// NewBuilder wires a page builder. store may be nil (persistence skipped).
func NewBuilder(filter *wordfilter.Filter, cache Resolver, store PageStore, quality float64) *Builder {
	return &Builder{
		filter:  filter,
		cache:   cache,
		store:   store,
		quality: quality,
	}
}

// BuildPage produces an annotated page. The returned warning flag is set when
// no words survived filtering; the page is still emitted with an empty word
// list, never as an error. Bounding boxes and the original-cased source text
// are preserved from the candidates.
func (b *Builder) BuildPage(ctx context.Context, pageNum int, image string, candidates []models.WordCandidate) (models.Page, bool) {
	words := make([]models.AnnotatedWord, 0, len(candidates))
	for _, candidate := range candidates {
		if !b.filter.Accept(candidate) {
			continue
		}
		words = append(words, models.AnnotatedWord{
			Text:        candidate.Text,
			BBox:        candidate.BBox,
			Translation: b.cache.Resolve(ctx, candidate.Text),
		})
	}
	log.Printf("page %d: %d raw words, %d words after filtering", pageNum, len(candidates), len(words))

	width, height, err := imaging.Dimensions(image)
	if err != nil {
		log.Printf("page %d: failed to read image dimensions: %s", pageNum, err)
	}

	page := models.Page{
		PageNum: pageNum,
		Image:   imaging.Recompress(image, b.quality),
		Width:   width,
		Height:  height,
		Words:   words,
	}

	if b.store != nil {
		if err := b.store.PutPage(page); err != nil {
			// The caller still gets the built page; it just stays
			// uncached for the next session.
			log.Printf("failed to persist page %d: %s", pageNum, err)
		}
	}

	return page, len(words) == 0
}

package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/scanlate/models"
)

type fakeRasterizer struct {
	pages []models.RawPage
	err   error
}

func (r *fakeRasterizer) Rasterize(ctx context.Context, pdf []byte) ([]models.RawPage, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.pages, nil
}

type fakeResetter struct {
	resets int
}

func (r *fakeResetter) Reset() { r.resets++ }

func newTestOrchestrator(store PageStore, cache Resetter, raster Rasterizer) *Orchestrator {
	builder, _ := newTestBuilder(store)
	return NewOrchestrator(builder, store, cache, raster, nil, nil)
}

func TestProcessDocumentOrdersAndAnnotates(t *testing.T) {
	store := &fakePageStore{}
	o := newTestOrchestrator(store, nil, nil)

	img := testDataURL(t, 40, 40)
	raw := []models.RawPage{
		{Image: img, Words: []models.WordCandidate{{Text: "creature", Confidence: 80}}},
		{Image: img, Words: nil},
	}

	doc, err := o.ProcessDocument(context.Background(), raw)
	if err != nil {
		t.Fatalf("ProcessDocument() error = %v", err)
	}
	if got := doc.PageNumbers(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("PageNumbers() = %v, want [1 2]", got)
	}
	if len(doc.Pages[0].Words) != 1 {
		t.Errorf("page 1 has %d words, want 1", len(doc.Pages[0].Words))
	}
	// Empty word list is a degraded state, not an error.
	if doc.Pages[1].Err != "" {
		t.Errorf("page 2 Err = %q, want none", doc.Pages[1].Err)
	}
	if !store.clearedPage {
		t.Error("session start did not clear the page store")
	}
	if store.clearedAll {
		t.Error("translations were cleared without --fresh-cache")
	}
}

func TestProcessDocumentBadPageDoesNotAbort(t *testing.T) {
	store := &fakePageStore{}
	o := newTestOrchestrator(store, nil, nil)

	img := testDataURL(t, 40, 40)
	raw := []models.RawPage{
		{Image: "garbage"},
		{Image: img, Words: []models.WordCandidate{{Text: "creature", Confidence: 80}}},
	}

	doc, err := o.ProcessDocument(context.Background(), raw)
	if err != nil {
		t.Fatalf("ProcessDocument() error = %v, want per-page degradation", err)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("document holds %d pages, want 2", len(doc.Pages))
	}
	if doc.Pages[0].Err == "" {
		t.Error("invalid page is missing its error marker")
	}
	if doc.Pages[1].Err != "" || len(doc.Pages[1].Words) != 1 {
		t.Error("sibling page was affected by the invalid page")
	}
}

func TestProcessDocumentFreshCache(t *testing.T) {
	store := &fakePageStore{}
	cache := &fakeResetter{}
	o := newTestOrchestrator(store, cache, nil)
	o.FreshCache = true

	if _, err := o.ProcessDocument(context.Background(), nil); err != nil {
		t.Fatalf("ProcessDocument() error = %v", err)
	}
	if !store.clearedAll {
		t.Error("fresh-cache session did not clear the whole store")
	}
	if cache.resets != 1 {
		t.Errorf("memory cache reset %d times, want 1", cache.resets)
	}
}

func TestProcessFilePDF(t *testing.T) {
	img := testDataURL(t, 40, 40)
	raster := &fakeRasterizer{pages: []models.RawPage{
		{Image: img, Words: []models.WordCandidate{{Text: "creature", Confidence: 80}}},
	}}
	o := newTestOrchestrator(&fakePageStore{}, nil, raster)

	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := o.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if len(doc.Pages) != 1 || doc.Pages[0].PageNum != 1 {
		t.Errorf("ProcessFile() pages = %+v, want single page 1", doc.PageNumbers())
	}
}

func TestProcessFileBackendExhausted(t *testing.T) {
	raster := &fakeRasterizer{err: errors.New("backend error: giving up")}
	o := newTestOrchestrator(&fakePageStore{}, nil, raster)

	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := o.ProcessFile(context.Background(), path)
	if err == nil {
		t.Fatal("ProcessFile() error = nil, want terminal error for the whole document")
	}
	if doc != nil {
		t.Error("ProcessFile() emitted partial pages alongside a terminal error")
	}
}

func TestProcessFileUnsupportedType(t *testing.T) {
	o := newTestOrchestrator(&fakePageStore{}, nil, nil)

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := o.ProcessFile(context.Background(), path); err == nil {
		t.Error("ProcessFile() error = nil for unsupported file type, want input error")
	}
}

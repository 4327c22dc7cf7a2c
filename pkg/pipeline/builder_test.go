package pipeline

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/dtnitsch/scanlate/models"
	"github.com/dtnitsch/scanlate/pkg/imaging"
	"github.com/dtnitsch/scanlate/pkg/normalize"
	"github.com/dtnitsch/scanlate/pkg/wordfilter"
)

type fakeResolver struct {
	translations map[string]string
	calls        []string
}

func (r *fakeResolver) Resolve(ctx context.Context, word string) string {
	key := normalize.Normalize(word)
	r.calls = append(r.calls, key)
	if translation, ok := r.translations[key]; ok {
		return translation
	}
	return "غير مترجم"
}

type fakePageStore struct {
	pages       []models.Page
	putErr      error
	clearedPage bool
	clearedAll  bool
}

func (s *fakePageStore) PutPage(page models.Page) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.pages = append(s.pages, page)
	return nil
}

func (s *fakePageStore) ClearPages() error {
	s.clearedPage = true
	s.pages = nil
	return nil
}

func (s *fakePageStore) ClearAll() error {
	s.clearedAll = true
	s.pages = nil
	return nil
}

func testDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x), B: uint8(y), A: 255})
		}
	}
	dataURL, err := imaging.EncodeJPEG(img, 0.9)
	if err != nil {
		t.Fatalf("EncodeJPEG() error = %v", err)
	}
	return dataURL
}

func newTestBuilder(store PageStore) (*Builder, *fakeResolver) {
	resolver := &fakeResolver{translations: map[string]string{
		"dokkaebi": "دوكايبي",
		"creature": "مخلوق",
	}}
	filter := wordfilter.New(30, 2, models.DefaultStopWords)
	return NewBuilder(filter, resolver, store, 0.7), resolver
}

func TestBuildPageAnnotates(t *testing.T) {
	store := &fakePageStore{}
	builder, resolver := newTestBuilder(store)

	bbox := models.BoundingBox{X0: 5, Y0: 10, X1: 80, Y1: 32}
	candidates := []models.WordCandidate{
		{Text: "Dokkaebi!", Confidence: 88, BBox: bbox},
		{Text: "the", Confidence: 99},
		{Text: "creature", Confidence: 45, BBox: models.BoundingBox{X0: 90, Y0: 10, X1: 160, Y1: 32}},
	}

	page, warn := builder.BuildPage(context.Background(), 1, testDataURL(t, 60, 40), candidates)
	if warn {
		t.Error("BuildPage() warn = true, want false for a page with surviving words")
	}
	if len(page.Words) != 2 {
		t.Fatalf("BuildPage() produced %d words, want 2", len(page.Words))
	}
	if page.Words[0].Text != "Dokkaebi!" {
		t.Errorf("source text = %q, want original case and form preserved", page.Words[0].Text)
	}
	if page.Words[0].BBox != bbox {
		t.Errorf("bbox = %+v, want original coordinates preserved", page.Words[0].BBox)
	}
	if page.Words[0].Translation != "دوكايبي" {
		t.Errorf("translation = %q, want %q", page.Words[0].Translation, "دوكايبي")
	}
	if page.Width != 60 || page.Height != 40 {
		t.Errorf("page dimensions = %dx%d, want 60x40", page.Width, page.Height)
	}
	if !imaging.IsValidDataURL(page.Image) {
		t.Error("page image is not a valid data URL after recompression")
	}
	if len(store.pages) != 1 {
		t.Errorf("store holds %d pages, want 1", len(store.pages))
	}
	// Only accepted words reach the cache.
	if len(resolver.calls) != 2 {
		t.Errorf("resolver called %d times, want 2", len(resolver.calls))
	}
}

func TestBuildPageEmptyAfterFiltering(t *testing.T) {
	store := &fakePageStore{}
	builder, _ := newTestBuilder(store)

	candidates := []models.WordCandidate{
		{Text: "the", Confidence: 99},
		{Text: "x", Confidence: 99},
		{Text: "noise", Confidence: 5},
	}

	page, warn := builder.BuildPage(context.Background(), 2, testDataURL(t, 40, 40), candidates)
	if !warn {
		t.Error("BuildPage() warn = false, want true when no words survive")
	}
	if len(page.Words) != 0 {
		t.Errorf("BuildPage() produced %d words, want 0", len(page.Words))
	}
	if page.PageNum != 2 {
		t.Errorf("PageNum = %d, want 2", page.PageNum)
	}
	// Degraded state is still persisted.
	if len(store.pages) != 1 {
		t.Errorf("store holds %d pages, want 1", len(store.pages))
	}
}

func TestBuildPageStoreFailureTolerated(t *testing.T) {
	store := &fakePageStore{putErr: errors.New("store unavailable")}
	builder, _ := newTestBuilder(store)

	page, _ := builder.BuildPage(context.Background(), 1, testDataURL(t, 40, 40), []models.WordCandidate{
		{Text: "creature", Confidence: 80},
	})
	if len(page.Words) != 1 || page.Words[0].Translation != "مخلوق" {
		t.Errorf("BuildPage() = %+v, want resolved page despite persistence failure", page.Words)
	}
}

func TestBuildPageInvalidImageKept(t *testing.T) {
	builder, _ := newTestBuilder(nil)

	// Recompression failure keeps the pre-compression image.
	page, _ := builder.BuildPage(context.Background(), 1, "data:image/jpeg;base64,broken", nil)
	if page.Image != "data:image/jpeg;base64,broken" {
		t.Errorf("page.Image = %q, want original image retained", page.Image)
	}
}

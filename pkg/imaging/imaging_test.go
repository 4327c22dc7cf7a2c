package imaging

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

func testImageDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	dataURL, err := EncodeJPEG(img, 0.9)
	if err != nil {
		t.Fatalf("EncodeJPEG() error = %v", err)
	}
	return dataURL
}

func TestIsValidDataURL(t *testing.T) {
	valid := testImageDataURL(t, 40, 40)
	if !IsValidDataURL(valid) {
		t.Error("IsValidDataURL() = false for a generated jpeg data URL")
	}

	invalid := []string{
		"",
		"data:image/jpeg;base64,",
		"data:image/gif;base64," + strings.Repeat("A", 200),
		"data:text/plain;base64," + strings.Repeat("A", 200),
		strings.Repeat("A", 200),
		"data:image/jpeg;base64,short",
	}
	for _, s := range invalid {
		if IsValidDataURL(s) {
			t.Errorf("IsValidDataURL(%.40q...) = true, want false", s)
		}
	}
}

func TestStripControl(t *testing.T) {
	in := "data:image/jpeg;base64,\x00AB\x1fCD\x7fEF"
	want := "data:image/jpeg;base64,ABCDEF"
	if got := StripControl(in); got != want {
		t.Errorf("StripControl() = %q, want %q", got, want)
	}
}

func TestRecompress(t *testing.T) {
	original := testImageDataURL(t, 64, 48)

	compressed := Recompress(original, 0.7)
	if !IsValidDataURL(compressed) {
		t.Fatal("Recompress() produced an invalid data URL")
	}

	w, h, err := Dimensions(compressed)
	if err != nil {
		t.Fatalf("Dimensions() error = %v", err)
	}
	if w != 64 || h != 48 {
		t.Errorf("Recompress() dimensions = %dx%d, want 64x48", w, h)
	}
}

func TestRecompressInvalidInputUnchanged(t *testing.T) {
	in := "not an image"
	if got := Recompress(in, 0.7); got != in {
		t.Errorf("Recompress() = %q, want invalid input returned unchanged", got)
	}
}

func TestDimensions(t *testing.T) {
	dataURL := testImageDataURL(t, 120, 80)
	w, h, err := Dimensions(dataURL)
	if err != nil {
		t.Fatalf("Dimensions() error = %v", err)
	}
	if w != 120 || h != 80 {
		t.Errorf("Dimensions() = %dx%d, want 120x80", w, h)
	}
}

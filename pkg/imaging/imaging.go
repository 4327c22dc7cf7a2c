// Package imaging handles the encoded-image blobs carried through the
// pipeline as data URLs, including the lossy re-encode that bounds storage
// size for durable persistence and export.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log"
	"regexp"
	"strings"
)

var dataURLPattern = regexp.MustCompile(`^data:image/(jpeg|png);base64,[A-Za-z0-9+/=]+$`)

// IsValidDataURL reports whether s is a correctly framed image-data
// descriptor: a jpeg or png data URL with a plausible payload.
func IsValidDataURL(s string) bool {
	return len(s) > 100 && dataURLPattern.MatchString(s)
}

// StripControl removes control characters that occasionally leak into stored
// payloads and break the data-URL frame.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			return -1
		}
		return r
	}, s)
}

// Decode parses an image data URL into a decoded image.
func Decode(dataURL string) (image.Image, error) {
	idx := strings.Index(dataURL, ",")
	if idx < 0 {
		return nil, fmt.Errorf("malformed data URL")
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// EncodeJPEG encodes an image as a jpeg data URL at the given quality factor
// in (0,1].
func EncodeJPEG(img image.Image, quality float64) (string, error) {
	var buf bytes.Buffer
	opts := &jpeg.Options{Quality: int(quality * 100)}
	if err := jpeg.Encode(&buf, img, opts); err != nil {
		return "", fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Dimensions returns the natural pixel dimensions of an image data URL.
func Dimensions(dataURL string) (int, int, error) {
	img, err := Decode(dataURL)
	if err != nil {
		return 0, 0, err
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}

// Recompress re-encodes an image data URL as jpeg at the given quality. Any
// failure returns the input unchanged: a page keeps its pre-compression image
// rather than failing.
func Recompress(dataURL string, quality float64) string {
	if !IsValidDataURL(dataURL) {
		log.Printf("invalid image data for compression")
		return dataURL
	}
	img, err := Decode(dataURL)
	if err != nil {
		log.Printf("image compression failed: %s", err)
		return dataURL
	}
	compressed, err := EncodeJPEG(img, quality)
	if err != nil || !IsValidDataURL(compressed) {
		log.Printf("image compression failed, keeping original")
		return dataURL
	}
	return compressed
}

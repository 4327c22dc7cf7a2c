// Package wordfilter screens raw OCR word candidates before translation.
package wordfilter

import (
	"github.com/pemistahl/lingua-go"

	"github.com/dtnitsch/scanlate/models"
	"github.com/dtnitsch/scanlate/pkg/normalize"
)

// Filter accepts or rejects OCR candidates. Rejected candidates are dropped
// silently: they are never translated or rendered, keeping noise words off the
// page and off the remote-translation budget.
type Filter struct {
	minConfidence float64
	minLength     int
	stopWords     map[string]struct{}

	// Optional source-language gate. When set, candidates whose raw text
	// is confidently detected as another language are rejected.
	detector   lingua.LanguageDetector
	sourceLang lingua.Language
}

// New builds a filter from the configured thresholds and stop-word table.
func New(minConfidence float64, minLength int, stopWords []string) *Filter {
	stops := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stops[normalize.Normalize(w)] = struct{}{}
	}
	return &Filter{
		minConfidence: minConfidence,
		minLength:     minLength,
		stopWords:     stops,
	}
}

// WithLanguageGate enables source-language screening. Candidates detected as
// a language other than source are treated as OCR noise.
func (f *Filter) WithLanguageGate(detector lingua.LanguageDetector, source lingua.Language) *Filter {
	f.detector = detector
	f.sourceLang = source
	return f
}

// Accept reports whether a candidate survives filtering. A candidate passes
// iff its normalized text is non-empty, confidence >= minConfidence, the
// normalized length exceeds minLength, and the text is not a stop word.
func (f *Filter) Accept(candidate models.WordCandidate) bool {
	text := normalize.Normalize(candidate.Text)
	if text == "" {
		return false
	}
	if candidate.Confidence < f.minConfidence {
		return false
	}
	if len(text) <= f.minLength {
		return false
	}
	if _, stop := f.stopWords[text]; stop {
		return false
	}
	if f.detector != nil {
		if lang, ok := f.detector.DetectLanguageOf(candidate.Text); ok && lang != f.sourceLang {
			return false
		}
	}
	return true
}

// Apply returns the candidates that pass Accept, preserving emission order.
func (f *Filter) Apply(candidates []models.WordCandidate) []models.WordCandidate {
	accepted := make([]models.WordCandidate, 0, len(candidates))
	for _, c := range candidates {
		if f.Accept(c) {
			accepted = append(accepted, c)
		}
	}
	return accepted
}

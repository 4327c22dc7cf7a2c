// Package normalize canonicalizes recognized text into cache keys.
package normalize

import "strings"

// Normalize lower-cases raw text and strips every character outside [a-z].
// The result is the canonical cache key for a word. An empty result means the
// input had no alphabetic content and must be treated as untranslatable;
// callers skip cache and remote lookups for it entirely.
func Normalize(raw string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(raw) {
		if r >= 'a' && r <= 'z' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

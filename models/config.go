// Package models defines data structures for configuration and page data.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration for the pipeline. Values come from
// config.yaml when present, with defaults matching the reader's stock setup.
type Config struct {
	ImageQuality      float64 `yaml:"image_quality"`
	TesseractLang     string  `yaml:"tesseract_lang"`
	MinWordConfidence float64 `yaml:"min_word_confidence"`
	MinWordLength     int     `yaml:"min_word_length"`

	APIURL   string `yaml:"api_url"`
	LangPair string `yaml:"lang_pair"`

	BackendURL string `yaml:"backend_url"`

	// RequestDelayMS is the minimum spacing between remote translation
	// calls, shared across all words of all pages.
	RequestDelayMS int `yaml:"request_delay_ms"`

	// NegativeTTL bounds how long a failed translation stays cached
	// before the remote tier is retried.
	NegativeTTL time.Duration `yaml:"negative_ttl"`

	StopWords            []string          `yaml:"stop_words"`
	FallbackTranslations map[string]string `yaml:"fallback_translations"`
}

// DefaultStopWords are dropped during filtering regardless of confidence.
var DefaultStopWords = []string{
	"the", "a", "an", "is", "are", "was", "were", "has", "have", "had",
	"if", "and", "or", "but", "in", "on", "at", "to",
}

// DefaultFallbackTranslations is the bundled static dictionary consulted when
// both cache tiers miss, so common terms resolve without a network call.
var DefaultFallbackTranslations = map[string]string{
	"this": "هذا", "episode": "حلقة", "contains": "يحتوي", "depictions": "تصويرات",
	"violence": "عنف", "that": "ذلك", "may": "قد", "upsetting": "مزعج",
	"for": "لـ", "some": "بعض", "readers": "قراء", "its": "إنه",
	"dokkaebi": "دوكايبي", "someone": "شخص ما", "exclaimed": "صرخ",
	"creature": "مخلوق", "sprung": "قفز", "into": "إلى", "view": "منظر",
	"amythical": "أسطوري", "korean": "كوري", "culture": "ثقافة",
	"similar": "مشابه", "goblin": "عفريت", "entire": "كامل",
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		ImageQuality:         0.7,
		TesseractLang:        "eng",
		MinWordConfidence:    30,
		MinWordLength:        2,
		APIURL:               "https://api.mymemory.translated.net/get",
		LangPair:             "en|ar",
		BackendURL:           "http://localhost:3000/process-pdf",
		RequestDelayMS:       500,
		NegativeTTL:          15 * time.Minute,
		StopWords:            DefaultStopWords,
		FallbackTranslations: DefaultFallbackTranslations,
	}
}

// LoadConfig reads a yaml config file, filling unset fields with defaults.
// A missing file yields the defaults without error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.ImageQuality <= 0 || config.ImageQuality > 1 {
		config.ImageQuality = 0.7
	}
	if config.RequestDelayMS < 0 {
		config.RequestDelayMS = 0
	}
	if len(config.StopWords) == 0 {
		config.StopWords = DefaultStopWords
	}
	if len(config.FallbackTranslations) == 0 {
		config.FallbackTranslations = DefaultFallbackTranslations
	}

	return config, nil
}

// RequestDelay returns the remote-call spacing as a duration.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMS) * time.Millisecond
}

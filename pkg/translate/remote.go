package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client queries a MyMemory-style translation endpoint: a GET with the
// normalized word and a fixed language pair, answering with a translated
// phrase.
type Client struct {
	apiURL   string
	langPair string
	client   *http.Client
}

// NewClient builds a remote translation client. langPair is the fixed
// source|target pair, e.g. "en|ar".
func NewClient(apiURL, langPair string) *Client {
	return &Client{
		apiURL:   apiURL,
		langPair: langPair,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type remoteResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus json.Number `json:"responseStatus"`
}

// Translate fetches a translation for a single normalized word. The raw
// phrase is returned; the caller reduces it to its first comma-delimited
// segment.
func (c *Client) Translate(ctx context.Context, word string) (string, error) {
	endpoint := fmt.Sprintf("%s?q=%s&langpair=%s",
		c.apiURL, url.QueryEscape(word), url.QueryEscape(c.langPair))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build translation request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation request failed, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read translation response: %w", err)
	}

	var parsed remoteResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse translation response: %w", err)
	}

	return parsed.ResponseData.TranslatedText, nil
}

// FirstSegment reduces a translated phrase to the text before the first
// comma, trimmed. Providers sometimes answer with alternatives separated by
// commas; only the primary one is kept.
func FirstSegment(phrase string) string {
	if i := strings.Index(phrase, ","); i >= 0 {
		phrase = phrase[:i]
	}
	return strings.TrimSpace(phrase)
}

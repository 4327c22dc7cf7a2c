// Package raster talks to the document rasterization backend, which turns a
// whole PDF into per-page images plus recognized words. Rasterizing a large
// document is slow, so requests carry a long timeout and bounded retries;
// exhausting the retries is terminal for the whole document.
package raster

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/dtnitsch/scanlate/models"
)

const (
	defaultAttempts   = 3
	defaultRetryDelay = 2 * time.Second
	defaultTimeout    = 4 * time.Minute
)

// Client posts PDFs to the backend and decodes its page list.
type Client struct {
	backendURL string
	client     *http.Client
	attempts   int
	retryDelay time.Duration
}

// NewClient builds a backend client for the given endpoint.
func NewClient(backendURL string) *Client {
	return &Client{
		backendURL: backendURL,
		client:     &http.Client{Timeout: defaultTimeout},
		attempts:   defaultAttempts,
		retryDelay: defaultRetryDelay,
	}
}

type rasterRequest struct {
	PDF string `json:"pdf"`
}

type rasterResponse struct {
	Pages []models.RawPage `json:"pages"`
	Error string           `json:"error,omitempty"`
}

// Rasterize sends the PDF bytes to the backend and returns its ordered page
// list. Up to three attempts are made with a fixed delay in between; when all
// fail, the whole document errors out and no partial pages are returned.
func (c *Client) Rasterize(ctx context.Context, pdf []byte) ([]models.RawPage, error) {
	payload, err := json.Marshal(rasterRequest{
		PDF: base64.StdEncoding.EncodeToString(pdf),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal backend request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		pages, err := c.post(ctx, payload)
		if err == nil {
			return pages, nil
		}
		lastErr = err
		log.Printf("backend attempt %d/%d failed: %s", attempt, c.attempts, err)

		if attempt < c.attempts {
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("backend error: %w", lastErr)
}

func (c *Client) post(ctx context.Context, payload []byte) ([]models.RawPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.backendURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build backend request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend request failed, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read backend response: %w", err)
	}

	var parsed rasterResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse backend response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("backend reported: %s", parsed.Error)
	}

	return parsed.Pages, nil
}

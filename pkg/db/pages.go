package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dtnitsch/scanlate/models"
)

// PutPage stores or replaces a processed page, keyed by page number. The word
// list is serialized as JSON.
func (db *DB) PutPage(page models.Page) error {
	words := page.Words
	if words == nil {
		words = []models.AnnotatedWord{}
	}
	wordsJSON, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("failed to marshal page words: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO pages (page_num, image, width, height, words)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(page_num) DO UPDATE SET
			image = excluded.image,
			width = excluded.width,
			height = excluded.height,
			words = excluded.words
	`, page.PageNum, page.Image, page.Width, page.Height, string(wordsJSON))
	if err != nil {
		return fmt.Errorf("failed to put page %d: %w", page.PageNum, err)
	}
	return nil
}

// GetPage retrieves a page by page number.
func (db *DB) GetPage(pageNum int) (*models.Page, error) {
	var page models.Page
	var wordsJSON string
	err := db.QueryRow(`
		SELECT page_num, image, width, height, words
		FROM pages WHERE page_num = ?
	`, pageNum).Scan(&page.PageNum, &page.Image, &page.Width, &page.Height, &wordsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("page %d not found", pageNum)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page %d: %w", pageNum, err)
	}

	if err := json.Unmarshal([]byte(wordsJSON), &page.Words); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page %d words: %w", pageNum, err)
	}
	return &page, nil
}

// ListPages returns all stored pages in page-number order.
func (db *DB) ListPages() ([]models.Page, error) {
	rows, err := db.Query(`
		SELECT page_num, image, width, height, words
		FROM pages ORDER BY page_num
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	var pages []models.Page
	for rows.Next() {
		var page models.Page
		var wordsJSON string
		if err := rows.Scan(&page.PageNum, &page.Image, &page.Width, &page.Height, &wordsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		if err := json.Unmarshal([]byte(wordsJSON), &page.Words); err != nil {
			return nil, fmt.Errorf("failed to unmarshal page %d words: %w", page.PageNum, err)
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

// ClearPages empties the page store. Called at the start of every document
// session so stale pages never leak into a new document.
func (db *DB) ClearPages() error {
	if _, err := db.Exec("DELETE FROM pages"); err != nil {
		return fmt.Errorf("failed to clear pages: %w", err)
	}
	return nil
}

// ClearAll destructively resets both collections. Translations normally
// survive across sessions; this is the opt-in full reset.
func (db *DB) ClearAll() error {
	if err := db.ClearPages(); err != nil {
		return err
	}
	return db.ClearTranslations()
}

package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// GetTranslation looks up a cached translation by normalized word.
func (db *DB) GetTranslation(word string) (string, bool, error) {
	var translation string
	err := db.QueryRow("SELECT translation FROM translations WHERE word = ?", word).Scan(&translation)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get translation: %w", err)
	}
	return translation, true, nil
}

// PutTranslation stores or replaces a translation for a normalized word.
func (db *DB) PutTranslation(word, translation string) error {
	_, err := db.Exec(`
		INSERT INTO translations (word, translation)
		VALUES (?, ?)
		ON CONFLICT(word) DO UPDATE SET translation = excluded.translation
	`, word, translation)
	if err != nil {
		return fmt.Errorf("failed to put translation: %w", err)
	}
	return nil
}

// CountTranslations returns the number of cached translations.
func (db *DB) CountTranslations() (int, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM translations").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count translations: %w", err)
	}
	return count, nil
}

// ClearTranslations empties the translation cache.
func (db *DB) ClearTranslations() error {
	if _, err := db.Exec("DELETE FROM translations"); err != nil {
		return fmt.Errorf("failed to clear translations: %w", err)
	}
	return nil
}

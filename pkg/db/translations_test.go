package db

import (
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for tests
	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestPutGetTranslation(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.PutTranslation("goblin", "عفريت"); err != nil {
		t.Fatalf("PutTranslation() error = %v", err)
	}

	translation, ok, err := db.GetTranslation("goblin")
	if err != nil {
		t.Fatalf("GetTranslation() error = %v", err)
	}
	if !ok {
		t.Fatal("GetTranslation() ok = false, want true")
	}
	if translation != "عفريت" {
		t.Errorf("GetTranslation() = %q, want %q", translation, "عفريت")
	}
}

func TestGetTranslationMiss(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, ok, err := db.GetTranslation("missing")
	if err != nil {
		t.Fatalf("GetTranslation() error = %v", err)
	}
	if ok {
		t.Error("GetTranslation() ok = true for missing word, want false")
	}
}

func TestPutTranslationUpsert(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.PutTranslation("view", "منظر"); err != nil {
		t.Fatalf("PutTranslation() error = %v", err)
	}
	if err := db.PutTranslation("view", "مشهد"); err != nil {
		t.Fatalf("PutTranslation() second call error = %v", err)
	}

	translation, _, err := db.GetTranslation("view")
	if err != nil {
		t.Fatalf("GetTranslation() error = %v", err)
	}
	if translation != "مشهد" {
		t.Errorf("GetTranslation() = %q, want replaced value %q", translation, "مشهد")
	}

	count, err := db.CountTranslations()
	if err != nil {
		t.Fatalf("CountTranslations() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountTranslations() = %d, want 1", count)
	}
}

func TestClearTranslations(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.PutTranslation("goblin", "عفريت"); err != nil {
		t.Fatalf("PutTranslation() error = %v", err)
	}
	if err := db.ClearTranslations(); err != nil {
		t.Fatalf("ClearTranslations() error = %v", err)
	}

	count, err := db.CountTranslations()
	if err != nil {
		t.Fatalf("CountTranslations() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountTranslations() = %d after clear, want 0", count)
	}
}

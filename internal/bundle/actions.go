package bundle

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dtnitsch/scanlate/models"
	"github.com/dtnitsch/scanlate/pkg/bundle"
	"github.com/dtnitsch/scanlate/pkg/db"
	"github.com/urfave/cli/v2"
)

// ExportAction writes the pages of the current session to a self-contained
// offline bundle.
func ExportAction(c *cli.Context) error {
	logger := newLogger(c)

	database, err := db.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	pages, err := database.ListPages()
	if err != nil {
		return fmt.Errorf("failed to list pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no pages in the current session. Run 'scanlate process <file>' first")
	}

	outPath := c.String("out")
	if outPath == "" {
		outPath = "bundle.html"
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create bundle file: %w", err)
	}

	doc := &models.Document{Pages: pages}
	if err := bundle.Export(doc, f); err != nil {
		f.Close()
		return fmt.Errorf("failed to export bundle: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write bundle file: %w", err)
	}

	logger.Info("Bundle exported", "path", outPath, "pages", len(doc.Pages))
	fmt.Printf("Exported %d pages to %s\n", len(doc.Pages), outPath)
	return nil
}

// ImportAction loads a bundle back into the durable store, replacing the
// current session's pages.
func ImportAction(c *cli.Context) error {
	logger := newLogger(c)

	if c.NArg() == 0 {
		return fmt.Errorf("no bundle file provided. Usage: scanlate import <bundle.html>")
	}
	bundlePath := c.Args().First()

	f, err := os.Open(bundlePath)
	if err != nil {
		return fmt.Errorf("failed to open bundle: %w", err)
	}
	defer f.Close()

	doc, err := bundle.Import(f)
	if err != nil {
		return fmt.Errorf("failed to import bundle: %w", err)
	}

	database, err := db.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	// An imported bundle becomes the current session.
	if err := database.ClearPages(); err != nil {
		return fmt.Errorf("failed to clear previous session: %w", err)
	}

	stored := 0
	for _, page := range doc.Pages {
		if err := database.PutPage(page); err != nil {
			logger.Warn("failed to store page, skipping", "page", page.PageNum, "error", err)
			continue
		}
		stored++
	}
	if stored == 0 {
		return fmt.Errorf("no pages could be stored from %s", bundlePath)
	}

	logger.Info("Bundle imported", "path", bundlePath, "pages", stored)
	fmt.Printf("Imported %d of %d pages from %s\n", stored, len(doc.Pages), bundlePath)
	return nil
}

func newLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

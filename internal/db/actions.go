package db

import (
	"fmt"
	"strings"

	dbpkg "github.com/dtnitsch/scanlate/pkg/db"
	"github.com/urfave/cli/v2"
)

// StatsAction prints what the durable store currently holds.
func StatsAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	translations, err := database.CountTranslations()
	if err != nil {
		return fmt.Errorf("failed to count translations: %w", err)
	}
	pages, err := database.ListPages()
	if err != nil {
		return fmt.Errorf("failed to list pages: %w", err)
	}

	fmt.Printf("Database: %s\n", database.Path())
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Cached translations: %d\n", translations)
	fmt.Printf("Session pages:       %d\n", len(pages))
	for _, p := range pages {
		status := fmt.Sprintf("%d words", len(p.Words))
		if p.Err != "" {
			status = fmt.Sprintf("error: %s", p.Err)
		}
		fmt.Printf("  page %2d  %dx%d  %s\n", p.PageNum, p.Width, p.Height, status)
	}

	return nil
}

// InitAction creates the schema explicitly. Open does this on demand, but an
// explicit init is useful for provisioning a db path ahead of a run.
func InitAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if err := database.InitSchema(); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	fmt.Printf("Database initialized at %s\n", database.Path())
	return nil
}

// ClearAction drops session pages, and with --all the translation cache too.
func ClearAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if c.Bool("all") {
		if err := database.ClearAll(); err != nil {
			return fmt.Errorf("failed to clear database: %w", err)
		}
		fmt.Println("Cleared session pages and translation cache")
		return nil
	}

	if err := database.ClearPages(); err != nil {
		return fmt.Errorf("failed to clear pages: %w", err)
	}
	fmt.Println("Cleared session pages (translation cache kept)")
	return nil
}

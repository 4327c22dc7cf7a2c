package process

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dtnitsch/scanlate/models"
	"github.com/dtnitsch/scanlate/pkg/db"
	"github.com/dtnitsch/scanlate/pkg/ocr"
	"github.com/dtnitsch/scanlate/pkg/pipeline"
	"github.com/dtnitsch/scanlate/pkg/raster"
	"github.com/dtnitsch/scanlate/pkg/translate"
	"github.com/dtnitsch/scanlate/pkg/wordfilter"
	"github.com/joho/godotenv"
	"github.com/pemistahl/lingua-go"
	"github.com/urfave/cli/v2"

	bundlepkg "github.com/dtnitsch/scanlate/pkg/bundle"
)

// PageSummary is one line of the per-page report printed after a run.
type PageSummary struct {
	PageNum int    `json:"pageNum"`
	Words   int    `json:"words"`
	Error   string `json:"error,omitempty"`
}

// FinalOutput is the JSON report printed to stdout when processing finishes.
type FinalOutput struct {
	Status     string        `json:"status"`
	Input      string        `json:"input"`
	Pages      []PageSummary `json:"pages"`
	Translated int           `json:"cached_translations"`
	Duration   string        `json:"duration"`
	Bundle     string        `json:"bundle,omitempty"`
}

func ProcessAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	// .env is optional; real env vars win over file values.
	_ = godotenv.Load()

	if c.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: No input file provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  scanlate process chapter.pdf`)
		fmt.Fprintln(os.Stderr, `  scanlate process page01.jpg --out chapter.html`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: scanlate process --help")
		os.Exit(1)
	}
	inputPath := c.Args().First()

	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	if c.IsSet("backend-url") {
		config.BackendURL = c.String("backend-url")
	}
	if url := os.Getenv("SCANLATE_BACKEND_URL"); url != "" && !c.IsSet("backend-url") {
		config.BackendURL = url
	}
	if url := os.Getenv("SCANLATE_API_URL"); url != "" {
		config.APIURL = url
	}

	database, err := db.Open(c.String("db"))
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	filter := wordfilter.New(config.MinWordConfidence, config.MinWordLength, config.StopWords)
	if c.Bool("lang-gate") {
		detector := lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.English, lingua.Arabic, lingua.Korean).
			Build()
		filter = filter.WithLanguageGate(detector, lingua.English)
	}

	offline := c.Bool("offline")
	cache := translate.NewCache(translate.Options{
		Store:       database,
		Fallback:    config.FallbackTranslations,
		Remote:      translate.NewClient(config.APIURL, config.LangPair),
		MinDelay:    config.RequestDelay(),
		Online:      func() bool { return !offline },
		NegativeTTL: config.NegativeTTL,
	})

	builder := pipeline.NewBuilder(filter, cache, database, config.ImageQuality)
	orchestrator := pipeline.NewOrchestrator(
		builder,
		database,
		cache,
		raster.NewClient(config.BackendURL),
		ocr.NewTesseract(config.TesseractLang),
		logger,
	)
	orchestrator.FreshCache = c.Bool("fresh-cache")

	logger.Info("Processing input", "path", inputPath, "offline", offline, "fresh_cache", orchestrator.FreshCache)

	doc, err := orchestrator.ProcessFile(c.Context, inputPath)
	if err != nil {
		logger.Error("processing failed", "path", inputPath, "error", err)
		os.Exit(2)
	}

	finalOutput := &FinalOutput{
		Status: "success",
		Input:  inputPath,
		Pages:  make([]PageSummary, 0, len(doc.Pages)),
	}
	for _, page := range doc.Pages {
		finalOutput.Pages = append(finalOutput.Pages, PageSummary{
			PageNum: page.PageNum,
			Words:   len(page.Words),
			Error:   page.Err,
		})
		if page.Err != "" {
			finalOutput.Status = "partial"
		}
	}
	if count, err := database.CountTranslations(); err == nil {
		finalOutput.Translated = count
	}
	finalOutput.Duration = time.Since(startTime).Round(time.Millisecond).String()

	if outPath := c.String("out"); outPath != "" {
		if err := writeBundle(doc, outPath); err != nil {
			logger.Error("failed to write bundle", "path", outPath, "error", err)
			os.Exit(2)
		}
		finalOutput.Bundle = outPath
		logger.Info("Bundle written", "path", outPath, "pages", len(doc.Pages))
	}

	outputData, err := json.MarshalIndent(finalOutput, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(outputData))
	return nil
}

func writeBundle(doc *models.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create bundle file: %w", err)
	}
	if err := bundlepkg.Export(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

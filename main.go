package main

import (
	"fmt"
	"os"

	bundleactions "github.com/dtnitsch/scanlate/internal/bundle"
	dbactions "github.com/dtnitsch/scanlate/internal/db"
	"github.com/dtnitsch/scanlate/internal/process"
	"github.com/dtnitsch/scanlate/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	dbFlag := &cli.StringFlag{
		Name:  "db",
		Usage: "path to the SQLite database (default: next to the binary)",
	}
	quietFlag := &cli.BoolFlag{
		Name:  "quiet",
		Usage: "only log errors",
	}

	app := &cli.App{
		Name:  "scanlate",
		Usage: "OCR and translate scanned pages, then read them offline",
		Commands: []*cli.Command{
			{
				Name:      "process",
				Usage:     "OCR a PDF or image, translate its words, and store the annotated pages",
				ArgsUsage: "<file.pdf | page.jpg>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Value: "config.yaml",
						Usage: "path to the yaml config file",
					},
					dbFlag,
					&cli.StringFlag{
						Name:  "backend-url",
						Usage: "override the PDF rasterizer backend URL",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "also export the result as an offline bundle to this path",
					},
					&cli.BoolFlag{
						Name:  "offline",
						Usage: "skip the remote translation tier (cache and dictionary only)",
					},
					&cli.BoolFlag{
						Name:  "fresh-cache",
						Usage: "wipe the translation cache before processing",
					},
					&cli.BoolFlag{
						Name:  "lang-gate",
						Usage: "drop OCR words the language detector does not read as English",
					},
					quietFlag,
				},
				Action: process.ProcessAction,
			},
			{
				Name:  "export",
				Usage: "write the stored session pages to a self-contained HTML bundle",
				Flags: []cli.Flag{
					dbFlag,
					&cli.StringFlag{
						Name:  "out",
						Value: "bundle.html",
						Usage: "bundle output path",
					},
					quietFlag,
				},
				Action: bundleactions.ExportAction,
			},
			{
				Name:      "import",
				Usage:     "load a bundle back into the store as the current session",
				ArgsUsage: "<bundle.html>",
				Flags: []cli.Flag{
					dbFlag,
					quietFlag,
				},
				Action: bundleactions.ImportAction,
			},
			{
				Name:  "quickstart",
				Usage: "print a YAML cheat sheet of common workflows",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
			{
				Name:  "db",
				Usage: "inspect and maintain the durable store",
				Subcommands: []*cli.Command{
					{
						Name:   "stats",
						Usage:  "show cached translation and page counts",
						Flags:  []cli.Flag{dbFlag},
						Action: dbactions.StatsAction,
					},
					{
						Name:   "init",
						Usage:  "create the database schema",
						Flags:  []cli.Flag{dbFlag},
						Action: dbactions.InitAction,
					},
					{
						Name:  "clear",
						Usage: "drop session pages (with --all, the translation cache too)",
						Flags: []cli.Flag{
							dbFlag,
							&cli.BoolFlag{
								Name:  "all",
								Usage: "also clear the translation cache",
							},
						},
						Action: dbactions.ClearAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

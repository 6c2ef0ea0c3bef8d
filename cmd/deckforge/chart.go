package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/ramonehamilton/deckforge/internal/cards/index"
	"github.com/ramonehamilton/deckforge/internal/charts"
	"github.com/ramonehamilton/deckforge/internal/config"
	"github.com/ramonehamilton/deckforge/internal/deck/sampler"
)

func runChartCommand(cfg *config.Config) {
	fs := flag.NewFlagSet("chart", flag.ExitOnError)
	corpusPath := fs.String("corpus", "", "Card corpus file (default: the local database)")
	dbPath := fs.String("db", "", "Database path (default: ~/.deckforge/data.db)")
	deckFormat := fs.String("deck-format", "", "Deck format for the generated deck")
	poolFormat := fs.String("legal-in", "", "Restrict the candidate pool to cards legal in this format")
	seed := fs.Int64("seed", 0, "Random seed (0 = time-seeded)")
	outDir := fs.String("out", "", "Output directory for chart HTML files (default: config charts.output_dir or cwd)")
	open := fs.Bool("open", false, "Open the mana curve chart in the default browser")
	_ = fs.Parse(os.Args[2:])

	if *deckFormat == "" {
		*deckFormat = cfg.Sampler.Format
	}

	dir := *outDir
	if dir == "" {
		dir = cfg.Charts.OutputDir
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("Error creating output directory: %v", err)
	}

	ctx := context.Background()
	pool := loadCorpus(ctx, cfg, *corpusPath, *dbPath)
	idx := buildIndex(ctx, pool)

	samplerCfg := sampler.Config{Searcher: idx, Logger: slog.Default()}
	if *seed != 0 {
		samplerCfg.Rand = rand.New(rand.NewSource(*seed))
	}
	s, err := sampler.New(samplerCfg)
	if err != nil {
		log.Fatalf("Error creating sampler: %v", err)
	}

	result, err := s.GenerateMultiple(index.Query{Format: *poolFormat}, sampler.Constraints{
		Format:              *deckFormat,
		CompletionThreshold: cfg.Sampler.CompletionThreshold,
	}, 1)
	if err != nil {
		log.Fatalf("Error generating deck: %v", err)
	}
	deck := result.Decks[0]

	chartConfig := charts.DefaultChartConfig()
	chartConfig.Title = deck.Name
	chartConfig.Subtitle = fmt.Sprintf("%s, %d cards", *deckFormat, deck.Stats.TotalCards)

	curvePath := filepath.Join(dir, "mana-curve.html")
	if err := charts.RenderManaCurve(deck, chartConfig, curvePath); err != nil {
		log.Fatalf("Error rendering mana curve: %v", err)
	}
	fmt.Printf("Wrote %s\n", curvePath)

	colorsPath := filepath.Join(dir, "colors.html")
	if err := charts.RenderColorDistribution(deck, chartConfig, colorsPath); err != nil {
		fmt.Fprintf(os.Stderr, "Skipping color chart: %v\n", err)
	} else {
		fmt.Printf("Wrote %s\n", colorsPath)
	}

	categoriesPath := filepath.Join(dir, "categories.html")
	if err := charts.RenderCategoryBreakdown(deck, chartConfig, categoriesPath); err != nil {
		fmt.Fprintf(os.Stderr, "Skipping category chart: %v\n", err)
	} else {
		fmt.Printf("Wrote %s\n", categoriesPath)
	}

	if *open {
		if err := charts.OpenInBrowser(curvePath); err != nil {
			fmt.Fprintf(os.Stderr, "Could not open browser: %v\n", err)
		}
	}
}

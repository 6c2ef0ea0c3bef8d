package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ramonehamilton/deckforge/internal/config"
)

func runImportCommand(cfg *config.Config) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	corpusPath := fs.String("corpus", "", "Path to the card corpus file (JSON lines or JSON array, .gz supported)")
	dbPath := fs.String("db", "", "Database path (default: ~/.deckforge/data.db)")
	replace := fs.Bool("replace", false, "Delete existing cards before importing")
	_ = fs.Parse(os.Args[2:])

	if *corpusPath == "" {
		*corpusPath = cfg.Corpus.FilePath
	}
	if *corpusPath == "" {
		log.Fatalf("A corpus file is required: pass -corpus or set corpus.file_path in the config")
	}

	ctx := context.Background()

	loader := newLoader(cfg)
	pool, err := loader.LoadFile(ctx, *corpusPath)
	if err != nil {
		log.Fatalf("Error loading corpus %s: %v", *corpusPath, err)
	}
	fmt.Printf("Loaded %d cards from %s\n", len(pool), *corpusPath)

	db, store := openStore(defaultDBPath(*dbPath, cfg))
	defer func() { _ = db.Close() }()

	if *replace {
		if err := store.DeleteAllCards(ctx); err != nil {
			log.Fatalf("Error clearing existing cards: %v", err)
		}
	}

	if err := store.SaveCards(ctx, pool); err != nil {
		log.Fatalf("Error saving cards: %v", err)
	}

	count, err := store.CountCards(ctx)
	if err != nil {
		log.Fatalf("Error counting cards: %v", err)
	}
	fmt.Printf("Database now holds %d cards\n", count)
}

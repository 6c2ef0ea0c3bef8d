package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ramonehamilton/deckforge/internal/cards"
	"github.com/ramonehamilton/deckforge/internal/cards/index"
	"github.com/ramonehamilton/deckforge/internal/config"
	"github.com/ramonehamilton/deckforge/internal/corpus"
	"github.com/ramonehamilton/deckforge/internal/storage"
)

// openStore opens the card database, running migrations first.
func openStore(dbPath string) (*storage.DB, *storage.Service) {
	dbConfig := storage.DefaultConfig(dbPath)
	dbConfig.AutoMigrate = true

	db, err := storage.Open(dbConfig)
	if err != nil {
		log.Fatalf("Error opening database %s: %v", dbPath, err)
	}

	return db, storage.NewService(db)
}

// newLoader builds a corpus loader from the configuration.
func newLoader(cfg *config.Config) *corpus.Loader {
	return corpus.NewLoader(corpus.LoaderConfig{
		Logger:        slog.Default(),
		BatchSize:     cfg.Corpus.BatchSize,
		BatchesPerSec: cfg.Corpus.BatchesPerSec,
	})
}

// loadCorpus reads the card corpus from the given file, or from the
// database when corpusPath is empty.
func loadCorpus(ctx context.Context, cfg *config.Config, corpusPath, dbPath string) []*cards.Card {
	if corpusPath == "" {
		corpusPath = cfg.Corpus.FilePath
	}

	if corpusPath != "" {
		loader := newLoader(cfg)
		loaded, err := loader.LoadFile(ctx, corpusPath)
		if err != nil {
			log.Fatalf("Error loading corpus %s: %v", corpusPath, err)
		}
		return loaded
	}

	db, store := openStore(defaultDBPath(dbPath, cfg))
	defer func() { _ = db.Close() }()

	loaded, err := store.LoadCards(ctx)
	if err != nil {
		log.Fatalf("Error loading cards from database: %v", err)
	}
	if len(loaded) == 0 {
		log.Fatalf("No cards available: run 'deckforge import' first or pass -corpus")
	}
	return loaded
}

// buildIndex indexes the corpus with a progress line on stderr.
func buildIndex(ctx context.Context, pool []*cards.Card) *index.Index {
	idx := index.New(slog.Default())
	err := idx.BuildChunked(ctx, pool, 0, func(done, total int) {
		fmt.Fprintf(os.Stderr, "\rIndexing cards... %d/%d", done, total)
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Fatalf("Error building index: %v", err)
	}
	return idx
}

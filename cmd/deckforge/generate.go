package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"

	"github.com/ramonehamilton/deckforge/internal/cards/index"
	"github.com/ramonehamilton/deckforge/internal/config"
	"github.com/ramonehamilton/deckforge/internal/deck/export"
	"github.com/ramonehamilton/deckforge/internal/deck/sampler"
)

func runGenerateCommand(cfg *config.Config) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	corpusPath := fs.String("corpus", "", "Card corpus file (default: the local database)")
	dbPath := fs.String("db", "", "Database path (default: ~/.deckforge/data.db)")

	deckFormat := fs.String("deck-format", "", "Deck format (standard, modern, commander, ...)")
	deckSize := fs.Int("size", 0, "Deck size override (0 = format default)")
	minLands := fs.Int("min-lands", 0, "Minimum lands override")
	maxLands := fs.Int("max-lands", 0, "Maximum lands override")
	maxMV := fs.Float64("max-mv", -1, "Maximum mana value for candidates (-1 disables)")
	mustInclude := fs.String("include", "", "Comma-separated card names to always include")
	banned := fs.String("ban", "", "Comma-separated card names to exclude")
	commander := fs.String("commander", "", "Commander name (builds a singleton deck)")
	count := fs.Int("count", 1, "Number of decks to generate")
	seed := fs.Int64("seed", 0, "Random seed (0 = time-seeded)")

	poolColors := fs.String("colors", "", "Restrict the candidate pool by color identity, e.g. rg")
	poolFormat := fs.String("legal-in", "", "Restrict the candidate pool to cards legal in this format")

	exportFormat := fs.String("export", "text", "Export format: text, csv, json, mtgo")
	outPath := fs.String("out", "", "Write the export to a file instead of stdout")
	save := fs.Bool("save", false, "Save generated decks to the database")
	_ = fs.Parse(os.Args[2:])

	if *deckFormat == "" {
		*deckFormat = cfg.Sampler.Format
	}

	ctx := context.Background()
	pool := loadCorpus(ctx, cfg, *corpusPath, *dbPath)
	idx := buildIndex(ctx, pool)

	samplerCfg := sampler.Config{
		Searcher: idx,
		Logger:   slog.Default(),
	}
	if *seed != 0 {
		samplerCfg.Rand = rand.New(rand.NewSource(*seed))
	}
	s, err := sampler.New(samplerCfg)
	if err != nil {
		log.Fatalf("Error creating sampler: %v", err)
	}

	query := index.Query{
		Format: *poolFormat,
	}
	if *poolColors != "" {
		query.ColorIdentity = *poolColors
		query.ColorIdentityOp = index.OpLe
	}

	cons := sampler.Constraints{
		Format:              *deckFormat,
		DeckSize:            *deckSize,
		MinLands:            *minLands,
		MaxLands:            *maxLands,
		MustInclude:         splitList(*mustInclude),
		Banned:              splitList(*banned),
		CompletionThreshold: cfg.Sampler.CompletionThreshold,
	}
	if *maxMV >= 0 {
		cons.MaxManaValue = maxMV
	}

	var decks []*sampler.Deck
	if *commander != "" {
		deck := generateCommander(s, idx, *commander, query)
		decks = []*sampler.Deck{deck}
	} else {
		result, err := s.GenerateMultiple(query, cons, *count)
		if err != nil {
			log.Fatalf("Error generating decks: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Candidate pool: %d cards\n", result.CandidateCount)
		decks = result.Decks
	}

	if *save {
		db, store := openStore(defaultDBPath(*dbPath, cfg))
		defer func() { _ = db.Close() }()
		for _, deck := range decks {
			if err := store.SaveDeck(ctx, deck); err != nil {
				log.Fatalf("Error saving deck %s: %v", deck.ID, err)
			}
		}
		fmt.Fprintf(os.Stderr, "Saved %d decks to the database\n", len(decks))
	}

	for i, deck := range decks {
		printDeck(deck, export.Format(*exportFormat), *outPath, i)

		advice := s.SuggestImprovements(deck, deck.Constraints)
		for _, suggestion := range advice.Suggestions {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", suggestion.Severity, suggestion.Message)
		}
	}
}

func generateCommander(s *sampler.Sampler, idx *index.Index, name string, query index.Query) *sampler.Deck {
	matches := idx.Search(index.Query{Name: name})
	if len(matches) == 0 {
		log.Fatalf("Commander %q not found", name)
	}
	commander := matches[0]
	for _, card := range matches {
		if card.Name == name {
			commander = card
			break
		}
	}

	deck, err := s.GenerateCommanderDeck(commander, query)
	if err != nil {
		log.Fatalf("Error generating commander deck: %v", err)
	}
	return deck
}

func printDeck(deck *sampler.Deck, format export.Format, outPath string, ordinal int) {
	result, err := export.Export(deck, format)
	if err != nil {
		log.Fatalf("Error exporting deck: %v", err)
	}

	if outPath == "" {
		if ordinal > 0 {
			fmt.Println()
		}
		fmt.Println(result.Content)
		fmt.Printf("-- %d cards, %d lands, avg mana value %.2f, valid=%v\n",
			deck.Stats.TotalCards, deck.Stats.LandCount, deck.Stats.AverageManaValue, deck.Valid)
		return
	}

	path := outPath
	if ordinal > 0 {
		path = fmt.Sprintf("%s.%d", outPath, ordinal)
	}
	if err := os.WriteFile(path, []byte(result.Content), 0o644); err != nil {
		log.Fatalf("Error writing %s: %v", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
}

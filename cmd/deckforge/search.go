package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ramonehamilton/deckforge/internal/cards/index"
	"github.com/ramonehamilton/deckforge/internal/config"
)

func runSearchCommand(cfg *config.Config) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	corpusPath := fs.String("corpus", "", "Card corpus file (default: the local database)")
	dbPath := fs.String("db", "", "Database path (default: ~/.deckforge/data.db)")

	text := fs.String("text", "", "Text query over names and rules text (supports 'or' and leading '-')")
	name := fs.String("name", "", "Card name tokens")
	types := fs.String("type", "", "Comma-separated type words (creature,elf,...)")
	colors := fs.String("colors", "", "Color filter, e.g. rg")
	colorsOp := fs.String("colors-op", "=", "Color comparison: = <= >= < >")
	identity := fs.String("identity", "", "Color identity filter")
	identityOp := fs.String("identity-op", "=", "Identity comparison: = <= >= < >")
	manaValue := fs.Float64("mv", -1, "Mana value filter (-1 disables)")
	manaValueOp := fs.String("mv-op", "=", "Mana value comparison: = <= >= < >")
	rarity := fs.String("rarity", "", "Rarity filter (common, uncommon, rare, mythic)")
	rarityOp := fs.String("rarity-op", "=", "Rarity comparison: = <= >= < >")
	set := fs.String("set", "", "Set code filter")
	format := fs.String("deck-format", "", "Only cards legal in this format")
	keywords := fs.String("keywords", "", "Comma-separated keyword filters")
	artist := fs.String("artist", "", "Artist name tokens")

	sortBy := fs.String("sort", "name", "Sort field: name, manaValue, rarity, released, color")
	sortOrder := fs.String("order", "asc", "Sort order: asc or desc")
	limit := fs.Int("limit", 25, "Maximum results (0 = unlimited)")
	offset := fs.Int("offset", 0, "Results to skip")
	_ = fs.Parse(os.Args[2:])

	query := index.Query{
		Text:            *text,
		Name:            *name,
		Types:           splitList(*types),
		Colors:          *colors,
		ColorsOp:        index.Op(*colorsOp),
		ColorIdentity:   *identity,
		ColorIdentityOp: index.Op(*identityOp),
		Rarity:          *rarity,
		RarityOp:        index.Op(*rarityOp),
		Set:             *set,
		Format:          *format,
		Keywords:        splitList(*keywords),
		Artist:          *artist,
		SortBy:          index.SortField(*sortBy),
		SortOrder:       index.SortOrder(*sortOrder),
		Limit:           *limit,
		Offset:          *offset,
	}
	if *manaValue >= 0 {
		query.ManaValue = manaValue
		query.ManaValueOp = index.Op(*manaValueOp)
	}

	ctx := context.Background()
	pool := loadCorpus(ctx, cfg, *corpusPath, *dbPath)
	idx := buildIndex(ctx, pool)

	results := idx.Search(query)
	if len(results) == 0 {
		fmt.Println("No cards matched.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOST\tTYPE\tRARITY\tSET")
	for _, card := range results {
		cost := ""
		if card.ManaCost != nil {
			cost = *card.ManaCost
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			card.Name, cost, card.TypeLine, card.Rarity, strings.ToUpper(card.SetCode))
	}
	_ = w.Flush()

	fmt.Printf("\n%d cards\n", len(results))
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

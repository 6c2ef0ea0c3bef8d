// Package export renders generated decks into text, CSV, JSON, and
// MTGO deck-list formats.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ramonehamilton/deckforge/internal/cards"
	"github.com/ramonehamilton/deckforge/internal/deck/sampler"
)

// Format represents the format to export the deck in.
type Format string

const (
	FormatText Format = "text" // category-grouped "<count>x <name>" lines
	FormatCSV  Format = "csv"  // Count,Name,Type,CMC,Set rows
	FormatJSON Format = "json" // full structural dump
	FormatMTGO Format = "mtgo" // mainboard, blank line, Sideboard marker
)

// DeckExport represents an exported deck.
type DeckExport struct {
	Content  string `json:"content"`
	Format   Format `json:"format"`
	Filename string `json:"filename"`
}

// categoryHeaders fixes the display order of category groups in the
// text export.
var categoryHeaders = []cards.Category{
	cards.CategoryCreature,
	cards.CategoryPlaneswalker,
	cards.CategoryInstant,
	cards.CategorySorcery,
	cards.CategoryEnchantment,
	cards.CategoryArtifact,
	cards.CategoryBattle,
	cards.CategoryLand,
	cards.CategoryOther,
}

// Export renders a deck in the requested format.
func Export(deck *sampler.Deck, format Format) (*DeckExport, error) {
	if deck == nil {
		return nil, fmt.Errorf("deck is nil")
	}

	var content string
	var err error
	ext := "txt"

	switch format {
	case FormatText:
		content = exportText(deck)
	case FormatCSV:
		content, err = exportCSV(deck)
		ext = "csv"
	case FormatJSON:
		content, err = exportJSON(deck)
		ext = "json"
	case FormatMTGO:
		content = exportMTGO(deck)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return nil, err
	}

	return &DeckExport{
		Content:  content,
		Format:   format,
		Filename: fmt.Sprintf("%s.%s", sanitizeFilename(deck.Name), ext),
	}, nil
}

// exportText renders cards grouped under category headers, one line
// per distinct card as "<count>x <name>".
func exportText(deck *sampler.Deck) string {
	grouped := make(map[cards.Category][]sampler.DeckEntry)
	for _, entry := range deck.Entries {
		cat := entry.Card.PrimaryCategory()
		grouped[cat] = append(grouped[cat], entry)
	}

	var sb strings.Builder
	for _, cat := range categoryHeaders {
		entries := grouped[cat]
		if len(entries) == 0 {
			continue
		}

		count := 0
		for _, entry := range entries {
			count += entry.Count
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("// %s (%d)\n", titleCase(string(cat)), count))

		for _, entry := range entries {
			sb.WriteString(fmt.Sprintf("%dx %s\n", entry.Count, entry.Card.Name))
		}
	}
	return sb.String()
}

// exportCSV renders one quoted row per distinct card under the
// Count,Name,Type,CMC,Set header.
func exportCSV(deck *sampler.Deck) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Count", "Name", "Type", "CMC", "Set"}); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, entry := range deck.Entries {
		row := []string{
			strconv.Itoa(entry.Count),
			entry.Card.Name,
			entry.Card.TypeLine,
			strconv.FormatFloat(entry.Card.ManaValue, 'f', -1, 64),
			strings.ToUpper(entry.Card.SetCode),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return buf.String(), nil
}

// exportJSON dumps the full deck structure.
func exportJSON(deck *sampler.Deck) (string, error) {
	data, err := json.MarshalIndent(deck, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal deck: %w", err)
	}
	return string(data), nil
}

// exportMTGO renders mainboard lines as "<count> <name>", then a
// blank line, the literal Sideboard marker, and sideboard entries in
// the same line format.
func exportMTGO(deck *sampler.Deck) string {
	var sb strings.Builder

	for _, entry := range deck.Entries {
		if entry.IsSideboard {
			continue
		}
		sb.WriteString(fmt.Sprintf("%d %s\n", entry.Count, entry.Card.Name))
	}

	sb.WriteString("\nSideboard\n")
	for _, entry := range deck.Entries {
		if !entry.IsSideboard {
			continue
		}
		sb.WriteString(fmt.Sprintf("%d %s\n", entry.Count, entry.Card.Name))
	}

	return sb.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// sanitizeFilename removes invalid characters from filename.
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	if len(result) > 100 {
		result = result[:100]
	}
	if result == "" {
		result = "deck"
	}
	return result
}

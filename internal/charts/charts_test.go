package charts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ramonehamilton/deckforge/internal/cards"
	"github.com/ramonehamilton/deckforge/internal/deck/sampler"
)

func chartDeck() *sampler.Deck {
	bear := &cards.Card{
		ID:        "c1",
		Name:      "Grizzly Bears",
		TypeLine:  "Creature — Bear",
		Types:     []string{"creature"},
		ManaValue: 2,
		Colors:    []string{"G"},
	}
	forest := &cards.Card{
		ID:         "c2",
		Name:       "Forest",
		TypeLine:   "Basic Land — Forest",
		Supertypes: []string{"basic"},
		Types:      []string{"land"},
		Subtypes:   []string{"forest"},
	}

	entries := []sampler.DeckEntry{
		{Card: bear, Count: 4},
		{Card: forest, Count: 8},
	}
	return &sampler.Deck{
		ID:      "deck-1",
		Name:    "Test Deck",
		Entries: entries,
		Stats:   sampler.ComputeStats(entries),
	}
}

func TestRenderManaCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.html")

	config := DefaultChartConfig()
	config.Title = "Mana Curve"

	if err := RenderManaCurve(chartDeck(), config, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read chart: %v", err)
	}
	html := string(content)
	if !strings.Contains(html, "Mana Curve") {
		t.Error("expected chart title in output")
	}
	if !strings.Contains(html, "6+") {
		t.Error("expected curve bucket labels in output")
	}
}

func TestRenderColorDistribution(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.html")

	if err := RenderColorDistribution(chartDeck(), DefaultChartConfig(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read chart: %v", err)
	}
	if !strings.Contains(string(content), "Green") {
		t.Error("expected color name in output")
	}
}

func TestRenderCategoryBreakdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.html")

	if err := RenderCategoryBreakdown(chartDeck(), DefaultChartConfig(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected chart file to exist: %v", err)
	}
}

func TestRenderNilDeck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.html")
	if err := RenderManaCurve(nil, DefaultChartConfig(), path); err == nil {
		t.Error("expected error for nil deck")
	}
	if err := RenderColorDistribution(nil, DefaultChartConfig(), path); err == nil {
		t.Error("expected error for nil deck")
	}
}

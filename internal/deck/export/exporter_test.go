package export

import (
	"encoding/csv"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/ramonehamilton/deckforge/internal/cards"
	"github.com/ramonehamilton/deckforge/internal/deck/sampler"
)

func testDeck() *sampler.Deck {
	bolt := &cards.Card{
		ID: "1", Name: "Lightning Bolt", TypeLine: "Instant",
		Types: []string{"Instant"}, ManaValue: 1, SetCode: "m21",
	}
	bear := &cards.Card{
		ID: "2", Name: "Runeclaw Bear", TypeLine: "Creature — Bear",
		Types: []string{"Creature"}, Subtypes: []string{"Bear"}, ManaValue: 2, SetCode: "m21",
	}
	mountain := &cards.Card{
		ID: "3", Name: "Mountain", TypeLine: "Basic Land — Mountain",
		Supertypes: []string{"Basic"}, Types: []string{"Land"}, Subtypes: []string{"Mountain"}, SetCode: "m21",
	}
	duress := &cards.Card{
		ID: "4", Name: "Duress", TypeLine: "Sorcery",
		Types: []string{"Sorcery"}, ManaValue: 1, SetCode: "m21",
	}

	entries := []sampler.DeckEntry{
		{Card: bear, Count: 4},
		{Card: bolt, Count: 4},
		{Card: mountain, Count: 8},
		{Card: duress, Count: 2, IsSideboard: true},
	}

	return &sampler.Deck{
		ID:      "deck-1",
		Name:    "Test Deck",
		Entries: entries,
		Stats:   sampler.ComputeStats(entries),
	}
}

func TestExportText(t *testing.T) {
	result, err := Export(testDeck(), FormatText)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if !strings.Contains(result.Content, "// Creature (4)") {
		t.Errorf("missing creature header:\n%s", result.Content)
	}
	if !strings.Contains(result.Content, "4x Lightning Bolt") {
		t.Errorf("missing bolt line:\n%s", result.Content)
	}
	if !strings.Contains(result.Content, "8x Mountain") {
		t.Errorf("missing land line:\n%s", result.Content)
	}
	if result.Filename != "Test Deck.txt" {
		t.Errorf("Filename = %q", result.Filename)
	}
}

func TestExportTextRoundTrip(t *testing.T) {
	deck := testDeck()
	result, err := Export(deck, FormatText)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	// Parsing the "<count>x <name>" lines recovers the same
	// name -> count multiset as the source deck.
	lineRe := regexp.MustCompile(`^(\d+)x (.+)$`)
	parsed := make(map[string]int)
	for _, line := range strings.Split(result.Content, "\n") {
		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		parsed[m[2]] += n
	}

	want := make(map[string]int)
	for _, entry := range deck.Entries {
		want[entry.Card.Name] += entry.Count
	}

	if len(parsed) != len(want) {
		t.Fatalf("parsed %v, want %v", parsed, want)
	}
	for name, n := range want {
		if parsed[name] != n {
			t.Errorf("parsed[%q] = %d, want %d", name, parsed[name], n)
		}
	}
}

func TestExportCSV(t *testing.T) {
	result, err := Export(testDeck(), FormatCSV)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(result.Content)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}

	header := strings.Join(records[0], ",")
	if header != "Count,Name,Type,CMC,Set" {
		t.Errorf("header = %q", header)
	}
	if len(records) != 5 { // header + 4 entries
		t.Errorf("got %d rows, want 5", len(records))
	}

	// The type line's em-dash survives quoting.
	if records[1][2] != "Creature — Bear" {
		t.Errorf("type column = %q", records[1][2])
	}
	if result.Filename != "Test Deck.csv" {
		t.Errorf("Filename = %q", result.Filename)
	}
}

func TestExportJSON(t *testing.T) {
	result, err := Export(testDeck(), FormatJSON)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded sampler.Deck
	if err := json.Unmarshal([]byte(result.Content), &decoded); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if decoded.ID != "deck-1" || len(decoded.Entries) != 4 {
		t.Errorf("decoded deck = %+v", decoded)
	}
	if decoded.Stats.TotalCards != 18 {
		t.Errorf("decoded TotalCards = %d, want 18", decoded.Stats.TotalCards)
	}
}

func TestExportMTGO(t *testing.T) {
	result, err := Export(testDeck(), FormatMTGO)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	parts := strings.SplitN(result.Content, "\nSideboard\n", 2)
	if len(parts) != 2 {
		t.Fatalf("missing Sideboard marker:\n%s", result.Content)
	}

	main, side := parts[0], parts[1]
	if !strings.Contains(main, "4 Lightning Bolt") || !strings.Contains(main, "8 Mountain") {
		t.Errorf("mainboard incomplete:\n%s", main)
	}
	if strings.Contains(main, "Duress") {
		t.Error("sideboard card leaked into mainboard")
	}
	if !strings.Contains(side, "2 Duress") {
		t.Errorf("sideboard incomplete:\n%s", side)
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	if _, err := Export(testDeck(), Format("xml")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestExportNilDeck(t *testing.T) {
	if _, err := Export(nil, FormatText); err == nil {
		t.Fatal("expected error for nil deck")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Simple Deck", "Simple Deck"},
		{"Bad/Name:Here", "Bad_Name_Here"},
		{"", "deck"},
		{"   ", "deck"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.input); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

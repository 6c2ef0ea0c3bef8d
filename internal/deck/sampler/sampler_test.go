package sampler

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/ramonehamilton/deckforge/internal/cards"
	"github.com/ramonehamilton/deckforge/internal/cards/index"
)

func strPtr(s string) *string { return &s }

// fakeSearcher returns a fixed pool regardless of the query.
type fakeSearcher struct {
	pool []*cards.Card
}

func (f *fakeSearcher) Search(index.Query) []*cards.Card { return f.pool }

func newTestSampler(t *testing.T, pool []*cards.Card, seed int64) *Sampler {
	t.Helper()
	s, err := New(Config{
		Searcher: &fakeSearcher{pool: pool},
		Rand:     rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func basicLand(id, name string) *cards.Card {
	return &cards.Card{
		ID:         id,
		OracleID:   "oracle-" + id,
		Name:       name,
		TypeLine:   "Basic Land — " + name,
		Supertypes: []string{"Basic"},
		Types:      []string{"Land"},
		Subtypes:   []string{name},
	}
}

func spell(id, name string, manaValue float64, identity ...string) *cards.Card {
	return &cards.Card{
		ID:            id,
		OracleID:      "oracle-" + id,
		Name:          name,
		TypeLine:      "Creature — Elemental",
		Types:         []string{"Creature"},
		Subtypes:      []string{"Elemental"},
		ManaValue:     manaValue,
		Colors:        identity,
		ColorIdentity: identity,
		Rarity:        "common",
		SetCode:       "tst",
	}
}

// testPool builds a pool large enough to fill a 20-card test deck.
func testPool() []*cards.Card {
	pool := []*cards.Card{
		basicLand("l1", "Mountain"),
		basicLand("l2", "Island"),
		basicLand("l3", "Forest"),
	}
	for i := 0; i < 15; i++ {
		pool = append(pool, spell(
			fmt.Sprintf("s%d", i),
			fmt.Sprintf("Spell %02d", i),
			float64(i%6),
			"R"))
	}
	return pool
}

// smallDeckConstraints keeps generation pools manageable in tests.
func smallDeckConstraints() Constraints {
	return Constraints{
		Format:    "casual",
		DeckSize:  20,
		MaxCopies: 4,
		MinLands:  6,
		MaxLands:  8,
	}
}

func TestValidateConstraints(t *testing.T) {
	t.Run("fills from format defaults", func(t *testing.T) {
		cons := ValidateConstraints(Constraints{Format: "standard"})
		if cons.DeckSize != 60 || cons.MaxCopies != 4 || cons.MinLands != 20 || cons.MaxLands != 26 {
			t.Errorf("standard defaults not applied: %+v", cons)
		}
		if cons.CompletionThreshold != DefaultCompletionThreshold {
			t.Errorf("CompletionThreshold = %v", cons.CompletionThreshold)
		}
	})

	t.Run("unknown format falls back to 60-card defaults", func(t *testing.T) {
		cons := ValidateConstraints(Constraints{Format: "no-such-format"})
		if cons.DeckSize != 60 || cons.MaxCopies != 4 {
			t.Errorf("fallback defaults not applied: %+v", cons)
		}
	})

	t.Run("commander is singleton and requires a commander", func(t *testing.T) {
		cons := ValidateConstraints(Constraints{Format: "commander"})
		if cons.DeckSize != 100 || cons.MaxCopies != 1 || !cons.RequiresCommander {
			t.Errorf("commander defaults not applied: %+v", cons)
		}
	})

	t.Run("explicit values are kept", func(t *testing.T) {
		cons := ValidateConstraints(Constraints{Format: "standard", DeckSize: 40, MinLands: 15, MaxLands: 17})
		if cons.DeckSize != 40 || cons.MinLands != 15 || cons.MaxLands != 17 {
			t.Errorf("explicit values overridden: %+v", cons)
		}
	})

	t.Run("max lands clamped to min", func(t *testing.T) {
		cons := ValidateConstraints(Constraints{MinLands: 30, MaxLands: 10})
		if cons.MaxLands != 30 {
			t.Errorf("MaxLands = %d, want 30", cons.MaxLands)
		}
	})
}

func TestCurveBucket(t *testing.T) {
	tests := []struct {
		manaValue float64
		want      string
	}{
		{0, "0-1"}, {1, "0-1"}, {2, "2"}, {3, "3"}, {4, "4"}, {5, "5"}, {6, "6+"}, {11, "6+"},
	}
	for _, tt := range tests {
		if got := CurveBucket(tt.manaValue); got != tt.want {
			t.Errorf("CurveBucket(%v) = %q, want %q", tt.manaValue, got, tt.want)
		}
	}
}

func TestComputeStats(t *testing.T) {
	entries := []DeckEntry{
		{Card: basicLand("l1", "Mountain"), Count: 8},
		{Card: spell("s1", "Cheap One", 1, "R"), Count: 4},
		{Card: spell("s2", "Mid One", 3, "R"), Count: 4},
		{Card: spell("s3", "Big One", 7, "G"), Count: 2},
	}

	stats := ComputeStats(entries)

	if stats.TotalCards != 18 {
		t.Errorf("TotalCards = %d, want 18", stats.TotalCards)
	}
	if stats.UniqueCards != 4 {
		t.Errorf("UniqueCards = %d, want 4", stats.UniqueCards)
	}
	if stats.LandCount != 8 || stats.NonLandCount != 10 {
		t.Errorf("LandCount/NonLandCount = %d/%d, want 8/10", stats.LandCount, stats.NonLandCount)
	}
	if stats.Categories[cards.CategoryLand] != 8 || stats.Categories[cards.CategoryCreature] != 10 {
		t.Errorf("Categories = %v", stats.Categories)
	}

	// Curve buckets over non-lands only, and they sum to NonLandCount.
	if stats.ManaCurve["0-1"] != 4 || stats.ManaCurve["3"] != 4 || stats.ManaCurve["6+"] != 2 {
		t.Errorf("ManaCurve = %v", stats.ManaCurve)
	}
	var curveSum int
	for _, n := range stats.ManaCurve {
		curveSum += n
	}
	if curveSum != stats.NonLandCount {
		t.Errorf("curve sum = %d, want %d", curveSum, stats.NonLandCount)
	}

	if len(stats.Colors) != 2 || stats.Colors[0] != "R" || stats.Colors[1] != "G" {
		t.Errorf("Colors = %v, want [R G]", stats.Colors)
	}

	wantAvg := (1.0*4 + 3.0*4 + 7.0*2) / 10.0
	if stats.AverageManaValue != wantAvg {
		t.Errorf("AverageManaValue = %v, want %v", stats.AverageManaValue, wantAvg)
	}
}

func TestGenerateRandomDeck(t *testing.T) {
	pool := testPool()
	s := newTestSampler(t, pool, 42)
	deck := s.GenerateRandomDeck(pool, smallDeckConstraints())

	if deck.Stats.TotalCards < 18 { // 90% of 20
		t.Errorf("deck underfilled with an ample pool: %d cards", deck.Stats.TotalCards)
	}
	if !deck.Valid {
		t.Error("deck with ample pool should be valid")
	}

	// Land-bound law.
	if deck.Stats.LandCount < 6 || deck.Stats.LandCount > 8 {
		t.Errorf("LandCount = %d, want within [6, 8]", deck.Stats.LandCount)
	}

	// Copy-limit law: non-basic cards stay within MaxCopies.
	counts := make(map[string]int)
	for _, entry := range deck.Entries {
		counts[entry.Card.Name] += entry.Count
	}
	for name, n := range counts {
		card := findByName(pool, name)
		if card.IsBasicLand() {
			continue
		}
		if n > 4 {
			t.Errorf("card %q has %d copies, above the cap of 4", name, n)
		}
	}

	// Stats consistency: total equals the sum of entry counts.
	var sum int
	for _, entry := range deck.Entries {
		sum += entry.Count
	}
	if sum != deck.Stats.TotalCards {
		t.Errorf("entry counts sum to %d, stats say %d", sum, deck.Stats.TotalCards)
	}
}

func TestGenerateRandomDeckDeterministic(t *testing.T) {
	pool := testPool()

	a := newTestSampler(t, pool, 7).GenerateRandomDeck(testPool(), smallDeckConstraints())
	b := newTestSampler(t, pool, 7).GenerateRandomDeck(testPool(), smallDeckConstraints())

	if len(a.Entries) != len(b.Entries) {
		t.Fatalf("same seed produced different entry counts: %d vs %d", len(a.Entries), len(b.Entries))
	}
	for i := range a.Entries {
		if a.Entries[i].Card.Name != b.Entries[i].Card.Name || a.Entries[i].Count != b.Entries[i].Count {
			t.Fatalf("same seed diverged at entry %d: %v vs %v", i, a.Entries[i], b.Entries[i])
		}
	}
}

func TestGenerateRandomDeckMustInclude(t *testing.T) {
	pool := testPool()
	cons := smallDeckConstraints()
	cons.MustInclude = []string{"Spell 03"}

	deck := newTestSampler(t, pool, 1).GenerateRandomDeck(pool, cons)

	total := 0
	for _, entry := range deck.Entries {
		if entry.Card.Name == "Spell 03" {
			total += entry.Count
		}
	}
	if total == 0 {
		t.Error("must-include card missing from deck")
	}
}

func TestGenerateRandomDeckMustIncludeSingleEntry(t *testing.T) {
	// A seeded card must not be picked up again by the random fill;
	// every name gets exactly one entry.
	pool := []*cards.Card{
		spell("t1", "Target Spell", 2, "R"),
		spell("t2", "Other Spell", 3, "R"),
		basicLand("l1", "Mountain"),
	}
	cons := Constraints{
		Format:      "casual",
		DeckSize:    12,
		MaxCopies:   4,
		MinLands:    4,
		MaxLands:    4,
		MustInclude: []string{"Target Spell"},
	}

	for seed := int64(0); seed < 8; seed++ {
		deck := newTestSampler(t, pool, seed).GenerateRandomDeck(pool, cons)

		perName := make(map[string]int)
		for _, entry := range deck.Entries {
			perName[entry.Card.Name]++
		}
		for name, n := range perName {
			if n != 1 {
				t.Fatalf("seed %d: %d entries for %q, want 1", seed, n, name)
			}
		}
		if deck.Stats.UniqueCards != len(perName) {
			t.Errorf("seed %d: UniqueCards = %d over %d distinct names",
				seed, deck.Stats.UniqueCards, len(perName))
		}
	}
}

func TestGenerateRandomDeckBanned(t *testing.T) {
	pool := testPool()
	cons := smallDeckConstraints()
	cons.Banned = []string{"spell 05"} // case-insensitive

	deck := newTestSampler(t, pool, 1).GenerateRandomDeck(pool, cons)
	for _, entry := range deck.Entries {
		if entry.Card.Name == "Spell 05" {
			t.Fatal("banned card present in deck")
		}
	}
}

func TestGenerateRandomDeckManaValueCeiling(t *testing.T) {
	pool := testPool()
	cons := smallDeckConstraints()
	ceiling := 3.0
	cons.MaxManaValue = &ceiling

	deck := newTestSampler(t, pool, 1).GenerateRandomDeck(pool, cons)
	for _, entry := range deck.Entries {
		if entry.Card.ManaValue > ceiling {
			t.Errorf("card %q has mana value %v above ceiling", entry.Card.Name, entry.Card.ManaValue)
		}
	}
}

func TestGenerateRandomDeckLegality(t *testing.T) {
	legal := spell("ok", "Legal Spell", 2, "R")
	legal.Legalities = map[string]bool{"pauper": true}
	illegal := spell("no", "Illegal Spell", 2, "R")
	illegal.Legalities = map[string]bool{"pauper": false}
	// No legality data at all: accepted.
	unknown := spell("uk", "Unknown Spell", 2, "R")
	pool := []*cards.Card{legal, illegal, unknown, basicLand("l1", "Mountain")}

	cons := Constraints{Format: "pauper", DeckSize: 10, MinLands: 2, MaxLands: 2}
	deck := newTestSampler(t, pool, 3).GenerateRandomDeck(pool, cons)

	for _, entry := range deck.Entries {
		if entry.Card.Name == "Illegal Spell" {
			t.Fatal("format-illegal card present in deck")
		}
	}
}

func TestGenerateRandomDeckSingleton(t *testing.T) {
	pool := testPool()
	cons := smallDeckConstraints()
	cons.MaxCopies = 1

	deck := newTestSampler(t, pool, 9).GenerateRandomDeck(pool, cons)
	for _, entry := range deck.Entries {
		if !entry.Card.IsBasicLand() && entry.Count != 1 {
			t.Errorf("singleton deck has %d copies of %q", entry.Count, entry.Card.Name)
		}
	}
}

func TestGenerateRandomDeckUnderfill(t *testing.T) {
	// A pool far too small for the target size yields an invalid
	// deck, not an error.
	pool := []*cards.Card{spell("s1", "Lone Spell", 2, "R"), basicLand("l1", "Mountain")}
	deck := newTestSampler(t, pool, 5).GenerateRandomDeck(pool, Constraints{Format: "standard"})

	if deck.Valid {
		t.Error("underfilled deck marked valid")
	}
	if deck.Stats.TotalCards == 0 {
		t.Error("expected a partial deck, got none")
	}
}

func TestGenerateMultiple(t *testing.T) {
	pool := testPool()
	s := newTestSampler(t, pool, 11)

	result, err := s.GenerateMultiple(index.Query{}, smallDeckConstraints(), 3)
	if err != nil {
		t.Fatalf("GenerateMultiple() error = %v", err)
	}
	if len(result.Decks) != 3 {
		t.Errorf("got %d decks, want 3", len(result.Decks))
	}
	if result.CandidateCount != len(pool) {
		t.Errorf("CandidateCount = %d, want %d", result.CandidateCount, len(pool))
	}
}

func TestGenerateMultipleEmptyPool(t *testing.T) {
	s := newTestSampler(t, nil, 1)

	_, err := s.GenerateMultiple(index.Query{}, smallDeckConstraints(), 2)
	if !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("error = %v, want ErrEmptyPool", err)
	}
}

func TestGenerateCommanderDeck(t *testing.T) {
	commander := spell("cmd", "Storm Admiral", 5, "U", "R")
	commander.Supertypes = []string{"Legendary"}

	otherPrinting := spell("cmd2", "Storm Admiral", 5, "U", "R")
	otherPrinting.OracleID = commander.OracleID

	offColor := spell("green", "Forest Titan", 4, "G")

	pool := []*cards.Card{otherPrinting, offColor}
	for i := 0; i < 60; i++ {
		pool = append(pool, spell(fmt.Sprintf("iz%d", i), fmt.Sprintf("Izzet Spell %02d", i), float64(i%7), "U"))
	}
	for _, name := range []string{"Island", "Mountain"} {
		pool = append(pool, basicLand("land-"+name, name))
	}

	s := newTestSampler(t, pool, 21)
	deck, err := s.GenerateCommanderDeck(commander, index.Query{})
	if err != nil {
		t.Fatalf("GenerateCommanderDeck() error = %v", err)
	}

	if len(deck.Entries) == 0 || !deck.Entries[0].IsCommander {
		t.Fatal("commander is not the first entry")
	}
	if deck.Entries[0].Card != commander {
		t.Error("first entry is not the commander card")
	}
	if deck.Constraints.Format != "commander" || deck.Constraints.MaxCopies != 1 {
		t.Errorf("commander constraints not applied: %+v", deck.Constraints)
	}

	for i, entry := range deck.Entries {
		if i == 0 {
			continue
		}
		// Out-of-identity cards never appear.
		if entry.Card.Name == "Forest Titan" {
			t.Error("out-of-identity card present in commander deck")
		}
		// The commander's other printings are excluded by oracle ID.
		if entry.Card.OracleID == commander.OracleID {
			t.Error("commander's oracle ID reappears in the 99")
		}
		if entry.Count != 1 && !entry.Card.IsBasicLand() {
			t.Errorf("non-singleton count %d for %q", entry.Count, entry.Card.Name)
		}
	}
}

func TestSuggestImprovements(t *testing.T) {
	s := newTestSampler(t, nil, 1)

	t.Run("low land count flagged", func(t *testing.T) {
		entries := []DeckEntry{
			{Card: basicLand("l1", "Mountain"), Count: 4},
			{Card: spell("s1", "Filler", 2, "R"), Count: 16},
		}
		deck := &Deck{Entries: entries, Stats: ComputeStats(entries)}

		advice := s.SuggestImprovements(deck, smallDeckConstraints())
		if len(advice.Suggestions) == 0 {
			t.Fatal("expected a land-count suggestion")
		}
		if advice.Suggestions[0].Severity != SeverityWarning {
			t.Errorf("severity = %q, want warning", advice.Suggestions[0].Severity)
		}
		if !advice.IsValid {
			t.Error("advisory findings must not invalidate the deck")
		}
	})

	t.Run("top-heavy curve flagged", func(t *testing.T) {
		entries := []DeckEntry{
			{Card: basicLand("l1", "Mountain"), Count: 7},
			{Card: spell("s1", "Cheap", 1, "R"), Count: 4},
			{Card: spell("s2", "Huge", 7, "R"), Count: 9},
		}
		deck := &Deck{Entries: entries, Stats: ComputeStats(entries)}

		advice := s.SuggestImprovements(deck, smallDeckConstraints())

		var sawTopEnd, sawAverage bool
		for _, sg := range advice.Suggestions {
			if sg.Severity == SeverityInfo {
				sawTopEnd = true
			}
			if sg.Severity == SeverityInfo && sg.Action == "Lower the curve toward an average of 3.0 or less" {
				sawAverage = true
			}
		}
		if !sawTopEnd || !sawAverage {
			t.Errorf("missing curve findings: %+v", advice.Suggestions)
		}
	})

	t.Run("balanced deck yields no findings", func(t *testing.T) {
		entries := []DeckEntry{
			{Card: basicLand("l1", "Mountain"), Count: 7},
			{Card: spell("s1", "One Drop", 1, "R"), Count: 5},
			{Card: spell("s2", "Two Drop", 2, "R"), Count: 4},
			{Card: spell("s3", "Three Drop", 3, "R"), Count: 4},
		}
		deck := &Deck{Entries: entries, Stats: ComputeStats(entries)}

		advice := s.SuggestImprovements(deck, smallDeckConstraints())
		if len(advice.Suggestions) != 0 {
			t.Errorf("unexpected suggestions: %+v", advice.Suggestions)
		}
		if !advice.IsValid {
			t.Error("IsValid = false for a clean deck")
		}
	})
}

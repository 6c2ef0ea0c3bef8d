package corpus

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ramonehamilton/deckforge/internal/cards/index"
)

const sampleLines = `{"id":"c1","name":"Goblin Raider","set":"TST","type_line":"Creature — Goblin","cmc":2,"colors":["R"],"color_identity":["R"],"power":"2","toughness":"2","rarity":"Common","oracle_text":"Goblin Raider can't block.","released_at":"2024-06-14","legalities":{"Modern":"legal","standard":"not_legal"}}
{"id":"c2","name":"Divination","set":"tst","type_line":"Sorcery","cmc":3,"colors":["U"],"color_identity":["U"],"rarity":"common","oracle_text":"Draw two cards.","legalities":{"modern":"legal"}}

{"id":"c3","name":"Wastes","set":"tst","type_line":"Basic Land","cmc":0,"colors":[],"color_identity":[],"rarity":"common"}
`

func writeCorpus(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write corpus file: %v", err)
	}
	return path
}

func TestLoadFileLines(t *testing.T) {
	loader := NewLoader(LoaderConfig{})
	path := writeCorpus(t, "cards.jsonl", sampleLines)

	corpus, err := loader.LoadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(corpus) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(corpus))
	}

	goblin := corpus[0]
	if goblin.Name != "Goblin Raider" {
		t.Errorf("expected Goblin Raider, got %q", goblin.Name)
	}
	if goblin.SetCode != "tst" {
		t.Errorf("expected lowercased set code, got %q", goblin.SetCode)
	}
	if len(goblin.Types) != 1 || goblin.Types[0] != "creature" {
		t.Errorf("expected parsed creature type, got %v", goblin.Types)
	}
	if len(goblin.Subtypes) != 1 || goblin.Subtypes[0] != "goblin" {
		t.Errorf("expected goblin subtype, got %v", goblin.Subtypes)
	}
	if goblin.ReleasedAt.IsZero() {
		t.Error("expected parsed release date")
	}
	if !goblin.LegalIn("modern") {
		t.Error("expected goblin legal in modern")
	}
	if goblin.LegalIn("standard") {
		t.Error("expected goblin not legal in standard")
	}

	wastes := corpus[2]
	if !wastes.IsBasicLand() {
		t.Errorf("expected Wastes to be a basic land, got supertypes %v types %v", wastes.Supertypes, wastes.Types)
	}
}

func TestLoadFileArray(t *testing.T) {
	loader := NewLoader(LoaderConfig{})
	content := `[
		{"id":"c1","name":"Alpha","set":"tst","type_line":"Instant","cmc":1,"rarity":"common"},
		{"id":"c2","name":"Beta","set":"tst","type_line":"Instant","cmc":1,"rarity":"common"}
	]`
	path := writeCorpus(t, "cards.json", content)

	corpus, err := loader.LoadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(corpus) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(corpus))
	}
	if corpus[1].Name != "Beta" {
		t.Errorf("expected Beta, got %q", corpus[1].Name)
	}
}

func TestLoadFileGzip(t *testing.T) {
	loader := NewLoader(LoaderConfig{})

	path := filepath.Join(t.TempDir(), "cards.jsonl.gz")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create gzip file: %v", err)
	}
	gz := gzip.NewWriter(file)
	if _, err := gz.Write([]byte(sampleLines)); err != nil {
		t.Fatalf("failed to write gzip content: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}

	corpus, err := loader.LoadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(corpus) != 3 {
		t.Errorf("expected 3 cards, got %d", len(corpus))
	}
}

func TestLoadFileBadJSON(t *testing.T) {
	loader := NewLoader(LoaderConfig{})
	path := writeCorpus(t, "cards.jsonl", "{\"id\":\"c1\"}\nnot json\n")

	if _, err := loader.LoadFile(context.Background(), path); err == nil {
		t.Error("expected parse error, got nil")
	}
}

func TestLoadFileMissing(t *testing.T) {
	loader := NewLoader(LoaderConfig{})
	if _, err := loader.LoadFile(context.Background(), filepath.Join(t.TempDir(), "absent.jsonl")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestNormalizeAssignsID(t *testing.T) {
	card := normalize(&rawCard{Name: "Nameless"})
	if card.ID == "" {
		t.Error("expected generated ID for card without one")
	}
}

func TestNormalizeDerivesKeywords(t *testing.T) {
	text := "Flying, vigilance"
	card := normalize(&rawCard{
		Name:       "Serra Angel",
		TypeLine:   "Creature — Angel",
		OracleText: &text,
	})

	var hasFlying bool
	for _, kw := range card.Keywords {
		if kw == "flying" {
			hasFlying = true
		}
	}
	if !hasFlying {
		t.Errorf("expected flying derived from oracle text, got %v", card.Keywords)
	}
}

func TestLoadAndIndex(t *testing.T) {
	loader := NewLoader(LoaderConfig{BatchSize: 2})
	path := writeCorpus(t, "cards.jsonl", sampleLines)

	idx := index.New(nil)
	var lastDone int
	corpus, err := loader.LoadAndIndex(context.Background(), path, idx, func(done, total int) {
		lastDone = done
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(corpus) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(corpus))
	}
	if idx.Size() != 3 {
		t.Errorf("expected index of 3 cards, got %d", idx.Size())
	}
	if lastDone != 3 {
		t.Errorf("expected final progress of 3, got %d", lastDone)
	}

	results := idx.Search(index.Query{Types: []string{"creature"}})
	if len(results) != 1 || results[0].Name != "Goblin Raider" {
		t.Errorf("expected creature search to find Goblin Raider, got %v", results)
	}
}

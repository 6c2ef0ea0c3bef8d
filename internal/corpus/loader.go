// Package corpus loads card data files and keeps the search index in sync
// with them.
package corpus

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/ramonehamilton/deckforge/internal/cards"
	"github.com/ramonehamilton/deckforge/internal/cards/index"
)

const (
	defaultBatchSize = 500
	maxLineBytes     = 4 * 1024 * 1024 // oversized single-card entries (long oracle text, many faces)
)

// rawCard is the on-disk card shape. It mirrors the Scryfall bulk data
// layout: cmc for mana value, legalities as status strings.
type rawCard struct {
	ID            string            `json:"id"`
	OracleID      string            `json:"oracle_id"`
	Name          string            `json:"name"`
	ReleasedAt    string            `json:"released_at"`
	SetCode       string            `json:"set"`
	SetName       string            `json:"set_name"`
	Artist        string            `json:"artist"`
	TypeLine      string            `json:"type_line"`
	ManaCost      *string           `json:"mana_cost"`
	ManaValue     float64           `json:"cmc"`
	Colors        []string          `json:"colors"`
	ColorIdentity []string          `json:"color_identity"`
	OracleText    *string           `json:"oracle_text"`
	Keywords      []string          `json:"keywords"`
	Power         *string           `json:"power"`
	Toughness     *string           `json:"toughness"`
	Rarity        string            `json:"rarity"`
	Legalities    map[string]string `json:"legalities"`
	Faces         []rawFace         `json:"card_faces"`
}

type rawFace struct {
	Name       string  `json:"name"`
	TypeLine   string  `json:"type_line"`
	ManaCost   *string `json:"mana_cost"`
	OracleText *string `json:"oracle_text"`
	Power      *string `json:"power"`
	Toughness  *string `json:"toughness"`
}

// Loader reads card data files and normalizes them into the internal card
// model.
type Loader struct {
	logger    *slog.Logger
	limiter   *rate.Limiter
	batchSize int
}

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	Logger *slog.Logger

	// BatchSize controls how many cards are parsed between pacing waits and
	// progress callbacks. Defaults to 500.
	BatchSize int

	// BatchesPerSec throttles parsing. Zero means unpaced.
	BatchesPerSec int
}

// NewLoader creates a corpus loader.
func NewLoader(config LoaderConfig) *Loader {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	var limiter *rate.Limiter
	if config.BatchesPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.BatchesPerSec), 1)
	}

	return &Loader{
		logger:    logger,
		limiter:   limiter,
		batchSize: batchSize,
	}
}

// LoadFile reads a card data file and returns the normalized corpus. The file
// holds one JSON card object per line, or a single JSON array of cards.
// Files ending in .gz are decompressed transparently.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]*cards.Card, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip corpus: %w", err)
		}
		defer func() { _ = gz.Close() }()
		reader = gz
	}

	start := time.Now()
	corpus, err := l.parse(ctx, reader)
	if err != nil {
		return nil, err
	}

	l.logger.Info("corpus loaded",
		"path", path,
		"cards", len(corpus),
		"duration", time.Since(start),
	)

	return corpus, nil
}

func (l *Loader) parse(ctx context.Context, reader io.Reader) ([]*cards.Card, error) {
	buffered := bufio.NewReaderSize(reader, 64*1024)

	// Peek past whitespace to detect the array form
	first, err := peekFirstByte(buffered)
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	if first == '[' {
		return l.parseArray(ctx, buffered)
	}
	return l.parseLines(ctx, buffered)
}

func peekFirstByte(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.Peek(1)
		if err != nil {
			return 0, err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			if _, err := r.ReadByte(); err != nil {
				return 0, err
			}
		default:
			return b[0], nil
		}
	}
}

func (l *Loader) parseArray(ctx context.Context, reader io.Reader) ([]*cards.Card, error) {
	dec := json.NewDecoder(reader)

	// Consume the opening bracket
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read corpus array: %w", err)
	}

	var corpus []*cards.Card
	for dec.More() {
		var raw rawCard
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse card %d: %w", len(corpus)+1, err)
		}
		corpus = append(corpus, normalize(&raw))

		if len(corpus)%l.batchSize == 0 {
			if err := l.pace(ctx); err != nil {
				return nil, err
			}
		}
	}

	return corpus, nil
}

func (l *Loader) parseLines(ctx context.Context, reader io.Reader) ([]*cards.Card, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var (
		corpus  []*cards.Card
		lineNum int
	)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw rawCard
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse card on line %d: %w", lineNum, err)
		}
		corpus = append(corpus, normalize(&raw))

		if len(corpus)%l.batchSize == 0 {
			if err := l.pace(ctx); err != nil {
				return nil, err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	return corpus, nil
}

func (l *Loader) pace(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}

// normalize converts a raw on-disk card into the internal model, deriving the
// fields the index needs.
func normalize(raw *rawCard) *cards.Card {
	card := &cards.Card{
		ID:            raw.ID,
		OracleID:      raw.OracleID,
		Name:          raw.Name,
		SetCode:       strings.ToLower(raw.SetCode),
		SetName:       raw.SetName,
		Artist:        raw.Artist,
		TypeLine:      raw.TypeLine,
		ManaCost:      raw.ManaCost,
		ManaValue:     raw.ManaValue,
		Colors:        raw.Colors,
		ColorIdentity: raw.ColorIdentity,
		OracleText:    raw.OracleText,
		Power:         raw.Power,
		Toughness:     raw.Toughness,
		Rarity:        strings.ToLower(raw.Rarity),
	}

	if card.ID == "" {
		card.ID = uuid.NewString()
	}

	if raw.ReleasedAt != "" {
		if t, err := time.Parse("2006-01-02", raw.ReleasedAt); err == nil {
			card.ReleasedAt = t
		}
	}

	card.Supertypes, card.Types, card.Subtypes = cards.ParseTypeLine(raw.TypeLine)

	for _, face := range raw.Faces {
		card.Faces = append(card.Faces, cards.CardFace{
			Name:       face.Name,
			TypeLine:   face.TypeLine,
			ManaCost:   face.ManaCost,
			OracleText: face.OracleText,
			Power:      face.Power,
			Toughness:  face.Toughness,
		})
	}

	card.Keywords = cards.DeriveKeywords(raw.Keywords, card.FullOracleText())

	if len(raw.Legalities) > 0 {
		card.Legalities = make(map[string]bool, len(raw.Legalities))
		for format, status := range raw.Legalities {
			card.Legalities[strings.ToLower(format)] = status == "legal"
		}
	}

	return card
}

// LoadAndIndex loads the corpus file and builds the given index from it in
// batches, reporting progress through the optional callback.
func (l *Loader) LoadAndIndex(ctx context.Context, path string, idx *index.Index, progress func(done, total int)) ([]*cards.Card, error) {
	corpus, err := l.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := idx.BuildChunked(ctx, corpus, l.batchSize, progress); err != nil {
		return nil, fmt.Errorf("failed to build index: %w", err)
	}

	return corpus, nil
}

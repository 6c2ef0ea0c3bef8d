// Package index builds in-memory inverted indices over a card corpus
// and evaluates structured queries against them.
package index

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/ramonehamilton/deckforge/internal/cards"
)

// Filterable field names. Each holds an inverted map from a
// lower-cased value to the set of card IDs carrying it.
const (
	fieldName          = "name"
	fieldType          = "type"
	fieldSupertype     = "supertype"
	fieldSubtype       = "subtype"
	fieldColor         = "color"
	fieldColorIdentity = "colorIdentity"
	fieldRarity        = "rarity"
	fieldSet           = "set"
	fieldKeyword       = "keyword"
	fieldFormat        = "format"
	fieldArtist        = "artist"
	fieldManaValue     = "manaValue"
	fieldPower         = "power"
	fieldToughness     = "toughness"
)

// idSet is a set of card IDs, the currency of index evaluation.
type idSet map[string]struct{}

func newIDSet() idSet { return make(idSet) }

func (s idSet) add(id string) { s[id] = struct{}{} }

func (s idSet) contains(id string) bool {
	_, ok := s[id]
	return ok
}

// intersect returns the intersection of a and b. A nil set means
// "unconstrained" and the other operand wins.
func intersect(a, b idSet) idSet {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	out := newIDSet()
	for id := range small {
		if large.contains(id) {
			out.add(id)
		}
	}
	return out
}

// union returns the union of a and b.
func union(a, b idSet) idSet {
	out := newIDSet()
	for id := range a {
		out.add(id)
	}
	for id := range b {
		out.add(id)
	}
	return out
}

// subtract returns the members of a not present in b.
func subtract(a, b idSet) idSet {
	out := newIDSet()
	for id := range a {
		if !b.contains(id) {
			out.add(id)
		}
	}
	return out
}

// Index owns a card corpus and its inverted indices. An Index is
// rebuilt wholesale via Build and is not safe for concurrent readers
// during a rebuild; use Provider to swap fresh instances atomically.
type Index struct {
	logger *slog.Logger

	cardsByID map[string]*cards.Card
	fields    map[string]map[string]idSet
	text      map[string]idSet

	buildDuration time.Duration
}

// New creates an empty index.
func New(logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	idx := &Index{logger: logger}
	idx.reset()
	return idx
}

func (idx *Index) reset() {
	idx.cardsByID = make(map[string]*cards.Card)
	idx.fields = make(map[string]map[string]idSet)
	idx.text = make(map[string]idSet)
	idx.buildDuration = 0
}

// Build clears all prior state and indexes the given cards.
func (idx *Index) Build(corpus []*cards.Card) {
	start := time.Now()
	idx.reset()
	for _, card := range corpus {
		idx.addCard(card)
	}
	idx.buildDuration = time.Since(start)
	idx.logger.Debug("Index built",
		"cards", len(idx.cardsByID),
		"textTokens", len(idx.text),
		"duration", idx.buildDuration)
}

// BuildChunked indexes cards in batches, checking ctx between
// batches so a long build over a large corpus can be interrupted and
// does not monopolize its goroutine. Semantics match Build.
func (idx *Index) BuildChunked(ctx context.Context, corpus []*cards.Card, batchSize int, progress func(done, total int)) error {
	if batchSize <= 0 {
		batchSize = 500
	}
	start := time.Now()
	idx.reset()

	for i := 0; i < len(corpus); i += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := i + batchSize
		if end > len(corpus) {
			end = len(corpus)
		}
		for _, card := range corpus[i:end] {
			idx.addCard(card)
		}
		if progress != nil {
			progress(end, len(corpus))
		}
	}

	idx.buildDuration = time.Since(start)
	idx.logger.Debug("Index built",
		"cards", len(idx.cardsByID),
		"textTokens", len(idx.text),
		"duration", idx.buildDuration)
	return nil
}

// addCard indexes a single card into every field and text index.
func (idx *Index) addCard(card *cards.Card) {
	idx.cardsByID[card.ID] = card

	for _, token := range Tokenize(card.Name) {
		idx.addField(fieldName, token, card.ID)
	}

	for _, t := range card.Types {
		idx.addField(fieldType, t, card.ID)
	}
	for _, t := range card.Supertypes {
		idx.addField(fieldSupertype, t, card.ID)
	}
	for _, t := range card.Subtypes {
		idx.addField(fieldSubtype, t, card.ID)
	}

	for _, c := range card.EffectiveColors() {
		idx.addField(fieldColor, c, card.ID)
	}
	for _, c := range card.EffectiveColorIdentity() {
		idx.addField(fieldColorIdentity, c, card.ID)
	}

	idx.addField(fieldRarity, card.Rarity, card.ID)
	idx.addField(fieldSet, card.SetCode, card.ID)

	for _, kw := range card.Keywords {
		idx.addField(fieldKeyword, kw, card.ID)
	}

	// Only formats where the card is actually legal are indexed, so a
	// format lookup implies legality rather than mere printing.
	for format, legal := range card.Legalities {
		if legal {
			idx.addField(fieldFormat, format, card.ID)
		}
	}

	for _, token := range Tokenize(card.Artist) {
		idx.addField(fieldArtist, token, card.ID)
	}

	idx.addField(fieldManaValue, formatNumeric(card.ManaValue), card.ID)
	if p, ok := card.NumericPower(); ok {
		idx.addField(fieldPower, formatNumeric(p), card.ID)
	}
	if tg, ok := card.NumericToughness(); ok {
		idx.addField(fieldToughness, formatNumeric(tg), card.ID)
	}

	for _, token := range Tokenize(card.Name + " " + card.FullOracleText()) {
		set, ok := idx.text[token]
		if !ok {
			set = newIDSet()
			idx.text[token] = set
		}
		set.add(card.ID)
	}
}

func (idx *Index) addField(field, value, id string) {
	value = normalizeValue(value)
	if value == "" {
		return
	}
	byValue, ok := idx.fields[field]
	if !ok {
		byValue = make(map[string]idSet)
		idx.fields[field] = byValue
	}
	set, ok := byValue[value]
	if !ok {
		set = newIDSet()
		byValue[value] = set
	}
	set.add(id)
}

// lookup returns the id set for a field value, or nil when absent.
func (idx *Index) lookup(field, value string) idSet {
	byValue, ok := idx.fields[field]
	if !ok {
		return nil
	}
	return byValue[normalizeValue(value)]
}

// allIDs returns the full corpus as an id set.
func (idx *Index) allIDs() idSet {
	out := newIDSet()
	for id := range idx.cardsByID {
		out.add(id)
	}
	return out
}

// Card returns the record for an id, or nil when unknown.
func (idx *Index) Card(id string) *cards.Card {
	return idx.cardsByID[id]
}

// Size returns the number of indexed cards.
func (idx *Index) Size() int {
	return len(idx.cardsByID)
}

// BuildDuration returns the wall-clock duration of the last build,
// recorded for diagnostics.
func (idx *Index) BuildDuration() time.Duration {
	return idx.buildDuration
}

// formatNumeric renders a numeric attribute the way it is indexed:
// integral values without a decimal point.
func formatNumeric(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

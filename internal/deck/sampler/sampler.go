package sampler

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ramonehamilton/deckforge/internal/cards"
	"github.com/ramonehamilton/deckforge/internal/cards/index"
)

// ErrEmptyPool is returned when a query yields no candidate cards.
var ErrEmptyPool = errors.New("no cards match the query")

// Searcher supplies candidate pools. Satisfied by *index.Index.
type Searcher interface {
	Search(q index.Query) []*cards.Card
}

// Sampler assembles random decks from candidate pools under format
// constraints. It holds no mutable state across calls beyond its
// searcher reference and random source, so calls are independent.
type Sampler struct {
	searcher Searcher
	rng      *rand.Rand
	logger   *slog.Logger
}

// Config configures a Sampler.
type Config struct {
	Searcher Searcher

	// Rand is the random source used for shuffles and counts. When
	// nil a time-seeded source is used; tests inject a fixed seed
	// for reproducible decks.
	Rand *rand.Rand

	Logger *slog.Logger
}

// New creates a sampler.
func New(cfg Config) (*Sampler, error) {
	if cfg.Searcher == nil {
		return nil, fmt.Errorf("searcher is required")
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Sampler{
		searcher: cfg.Searcher,
		rng:      cfg.Rand,
		logger:   cfg.Logger,
	}, nil
}

// CandidatePool returns the cards a query allows the sampler to draw
// from.
func (s *Sampler) CandidatePool(q index.Query) []*cards.Card {
	return s.searcher.Search(q)
}

// deckState tracks the cards accepted so far during generation.
type deckState struct {
	counts map[string]int
	total  int
	lands  int
}

func newDeckState() *deckState {
	return &deckState{counts: make(map[string]int)}
}

// CardValid reports whether a card may be added to a deck under the
// given constraints and current deck state.
func (s *Sampler) CardValid(card *cards.Card, cons Constraints, state *deckState) bool {
	for _, banned := range cons.Banned {
		if strings.EqualFold(card.Name, banned) {
			return false
		}
	}

	// Legality is only enforced when the card carries explicit data.
	if cons.Format != "" && card.HasLegalityData() && !card.LegalIn(cons.Format) {
		return false
	}

	if len(cons.CommanderIdentity) > 0 && !identityWithin(card.ColorIdentity, cons.CommanderIdentity) {
		return false
	}

	// Basic lands are exempt from the copy cap.
	if !card.IsBasicLand() && state.counts[card.Name] >= cons.MaxCopies {
		return false
	}

	if cons.MaxManaValue != nil && card.ManaValue > *cons.MaxManaValue {
		return false
	}

	return true
}

// identityWithin reports whether a card's color identity uses only
// the allowed colors. Colorless cards fit every identity.
func identityWithin(identity, allowed []string) bool {
	for _, c := range identity {
		found := false
		for _, a := range allowed {
			if strings.EqualFold(c, a) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// GenerateRandomDeck assembles one deck from the candidate pool.
// Returned decks may fall short of the target size when the pool is
// exhausted; that is reported via Valid, not an error.
func (s *Sampler) GenerateRandomDeck(candidates []*cards.Card, input Constraints) *Deck {
	cons := ValidateConstraints(input)
	state := newDeckState()
	var entries []DeckEntry

	var lands, spells []*cards.Card
	for _, card := range candidates {
		if card.IsLand() {
			lands = append(lands, card)
		} else {
			spells = append(spells, card)
		}
	}

	targetLands := cons.MinLands
	if cons.MaxLands > cons.MinLands {
		targetLands += s.rng.Intn(cons.MaxLands - cons.MinLands + 1)
	}

	// Seed must-include cards before random fill.
	for _, name := range cons.MustInclude {
		card := findByName(candidates, name)
		if card == nil || !s.CardValid(card, cons, state) {
			continue
		}
		entries = append(entries, s.accept(card, cons, state, targetLands))
	}

	s.shuffle(lands)
	for _, card := range lands {
		if state.lands >= targetLands {
			break
		}
		// One entry per name; accept already grants multiple copies.
		if state.counts[card.Name] > 0 {
			continue
		}
		if !s.CardValid(card, cons, state) {
			continue
		}
		entries = append(entries, s.accept(card, cons, state, targetLands))
	}

	s.shuffle(spells)
	for _, card := range spells {
		if state.total >= cons.DeckSize {
			break
		}
		if state.counts[card.Name] > 0 {
			continue
		}
		if !s.CardValid(card, cons, state) {
			continue
		}
		entries = append(entries, s.accept(card, cons, state, targetLands))
	}

	deck := &Deck{
		ID:          uuid.NewString(),
		Name:        "Random Deck",
		Entries:     entries,
		Constraints: cons,
		Stats:       ComputeStats(entries),
	}
	deck.Valid = float64(deck.Stats.TotalCards) >= cons.CompletionThreshold*float64(cons.DeckSize)

	s.logger.Debug("Deck generated",
		"deckID", deck.ID,
		"cards", deck.Stats.TotalCards,
		"lands", deck.Stats.LandCount,
		"valid", deck.Valid)

	return deck
}

// accept adds a card to the deck state and returns its entry.
// Basic lands are added up to four copies at once, capped by the
// remaining land budget; other cards get a random count within the
// copy allowance. Singleton formats always add exactly one.
func (s *Sampler) accept(card *cards.Card, cons Constraints, state *deckState, targetLands int) DeckEntry {
	count := 1
	switch {
	case card.IsBasicLand():
		count = 4
		if remaining := targetLands - state.lands; count > remaining {
			count = remaining
		}
		if count < 1 {
			count = 1
		}
	case !cons.singleton():
		allowance := cons.MaxCopies - state.counts[card.Name]
		count = 1 + s.rng.Intn(cons.MaxCopies)
		if count > allowance {
			count = allowance
		}
		if remaining := cons.DeckSize - state.total; count > remaining {
			count = remaining
		}
		// Non-basic lands still honor the land budget.
		if card.IsLand() {
			if remaining := targetLands - state.lands; count > remaining {
				count = remaining
			}
		}
		if count < 1 {
			count = 1
		}
	}

	state.counts[card.Name] += count
	state.total += count
	if card.IsLand() {
		state.lands += count
	}

	return DeckEntry{Card: card, Count: count}
}

// shuffle is an in-place Fisher-Yates shuffle.
func (s *Sampler) shuffle(list []*cards.Card) {
	for i := len(list) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		list[i], list[j] = list[j], list[i]
	}
}

func findByName(pool []*cards.Card, name string) *cards.Card {
	for _, card := range pool {
		if strings.EqualFold(card.Name, name) {
			return card
		}
	}
	return nil
}

// BatchResult holds the decks from a batch generation run and the
// size of the candidate pool they were drawn from.
type BatchResult struct {
	Decks          []*Deck `json:"decks"`
	CandidateCount int     `json:"candidateCount"`
}

// GenerateMultiple runs GenerateRandomDeck independently count times
// over the pool a query produces. An empty pool is a recoverable
// condition reported as ErrEmptyPool.
func (s *Sampler) GenerateMultiple(q index.Query, cons Constraints, count int) (*BatchResult, error) {
	pool := s.CandidatePool(q)
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	if count < 1 {
		count = 1
	}

	result := &BatchResult{CandidateCount: len(pool)}
	for i := 0; i < count; i++ {
		// Each run reshuffles from scratch; no picks are shared.
		result.Decks = append(result.Decks, s.GenerateRandomDeck(pool, cons))
	}
	return result, nil
}

// GenerateCommanderDeck builds a 100-card singleton deck led by the
// given commander. The allowed color identity derives from the
// commander's own identity; the commander itself is excluded from
// the candidate pool by oracle ID and prepended as a fixed entry
// that does not count toward copy limits.
func (s *Sampler) GenerateCommanderDeck(commander *cards.Card, q index.Query) (*Deck, error) {
	if commander == nil {
		return nil, fmt.Errorf("commander is required")
	}

	cons := ValidateConstraints(Constraints{
		Format:            "commander",
		CommanderIdentity: commander.EffectiveColorIdentity(),
	})

	pool := s.CandidatePool(q)
	filtered := make([]*cards.Card, 0, len(pool))
	for _, card := range pool {
		if card.OracleID != "" && card.OracleID == commander.OracleID {
			continue
		}
		filtered = append(filtered, card)
	}
	if len(filtered) == 0 {
		return nil, ErrEmptyPool
	}

	// Generate the 99 and prepend the commander.
	bodyCons := cons
	bodyCons.DeckSize = cons.DeckSize - 1
	deck := s.GenerateRandomDeck(filtered, bodyCons)

	deck.Name = commander.Name
	deck.Entries = append([]DeckEntry{{Card: commander, Count: 1, IsCommander: true}}, deck.Entries...)
	deck.Constraints = cons
	deck.Stats = ComputeStats(deck.Entries)
	deck.Valid = float64(deck.Stats.TotalCards) >= cons.CompletionThreshold*float64(cons.DeckSize)

	return deck, nil
}

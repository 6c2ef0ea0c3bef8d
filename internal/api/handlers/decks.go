package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/deckforge/internal/api/response"
	"github.com/ramonehamilton/deckforge/internal/cards"
	"github.com/ramonehamilton/deckforge/internal/cards/index"
	"github.com/ramonehamilton/deckforge/internal/deck/export"
	"github.com/ramonehamilton/deckforge/internal/deck/sampler"
	"github.com/ramonehamilton/deckforge/internal/metrics"
	"github.com/ramonehamilton/deckforge/internal/storage"
)

// DeckHandler handles deck generation API requests.
type DeckHandler struct {
	provider *index.Provider
	store    *storage.Service
	metrics  *metrics.EngineMetrics
	logger   *slog.Logger
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(provider *index.Provider, store *storage.Service, engineMetrics *metrics.EngineMetrics, logger *slog.Logger) *DeckHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckHandler{
		provider: provider,
		store:    store,
		metrics:  engineMetrics,
		logger:   logger,
	}
}

// newSampler builds a sampler over the current index. A non-nil seed makes
// generation reproducible.
func (h *DeckHandler) newSampler(seed *int64) (*sampler.Sampler, error) {
	idx := h.provider.Current()
	if idx == nil {
		return nil, errors.New("search index not ready")
	}

	cfg := sampler.Config{
		Searcher: idx,
		Logger:   h.logger,
	}
	if seed != nil {
		cfg.Rand = rand.New(rand.NewSource(*seed))
	}

	return sampler.New(cfg)
}

// GenerateRequest is the payload accepted by GenerateDecks.
type GenerateRequest struct {
	Query       index.Query         `json:"query"`
	Constraints sampler.Constraints `json:"constraints"`
	Count       int                 `json:"count"`
	Seed        *int64              `json:"seed,omitempty"`
	Save        bool                `json:"save"`
}

// GenerateDecks builds one or more randomized decks from the candidate pool.
func (h *DeckHandler) GenerateDecks(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, err)
		return
	}

	s, err := h.newSampler(req.Seed)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	start := time.Now()
	result, err := s.GenerateMultiple(req.Query, req.Constraints, req.Count)
	if err != nil {
		if errors.Is(err, sampler.ErrEmptyPool) {
			response.UnprocessableEntity(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}

	if h.metrics != nil {
		perDeck := time.Since(start) / time.Duration(len(result.Decks))
		for _, deck := range result.Decks {
			h.metrics.RecordDeckGeneration(perDeck, deck.Valid)
		}
	}

	if req.Save {
		if err := h.saveDecks(r, result.Decks); err != nil {
			response.InternalError(w, err)
			return
		}
	}

	response.Created(w, result)
}

func (h *DeckHandler) saveDecks(r *http.Request, decks []*sampler.Deck) error {
	if h.store == nil {
		return errors.New("deck storage is not configured")
	}
	for _, deck := range decks {
		if err := h.store.SaveDeck(r.Context(), deck); err != nil {
			return fmt.Errorf("failed to save deck %s: %w", deck.ID, err)
		}
	}
	return nil
}

// CommanderRequest is the payload accepted by GenerateCommanderDeck.
type CommanderRequest struct {
	// Commander selects the deck's commander, by card ID or exact name.
	CommanderID   string `json:"commanderId,omitempty"`
	CommanderName string `json:"commanderName,omitempty"`

	Query index.Query `json:"query"`
	Seed  *int64      `json:"seed,omitempty"`
	Save  bool        `json:"save"`
}

// GenerateCommanderDeck builds a singleton deck led by the named commander.
func (h *DeckHandler) GenerateCommanderDeck(w http.ResponseWriter, r *http.Request) {
	var req CommanderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, err)
		return
	}

	idx := h.provider.Current()
	if idx == nil {
		response.InternalError(w, errors.New("search index not ready"))
		return
	}

	commander := h.findCommander(idx, req)
	if commander == nil {
		response.NotFound(w, errors.New("commander not found"))
		return
	}

	s, err := h.newSampler(req.Seed)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	start := time.Now()
	deck, err := s.GenerateCommanderDeck(commander, req.Query)
	if err != nil {
		if errors.Is(err, sampler.ErrEmptyPool) {
			response.UnprocessableEntity(w, err)
			return
		}
		response.BadRequest(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordDeckGeneration(time.Since(start), deck.Valid)
	}

	if req.Save {
		if err := h.saveDecks(r, []*sampler.Deck{deck}); err != nil {
			response.InternalError(w, err)
			return
		}
	}

	response.Created(w, deck)
}

func (h *DeckHandler) findCommander(idx *index.Index, req CommanderRequest) *cards.Card {
	if req.CommanderID != "" {
		return idx.Card(req.CommanderID)
	}
	if req.CommanderName == "" {
		return nil
	}

	matches := idx.Search(index.Query{Name: req.CommanderName})
	for _, card := range matches {
		if strings.EqualFold(card.Name, req.CommanderName) {
			return card
		}
	}
	if len(matches) > 0 {
		return matches[0]
	}
	return nil
}

// SuggestRequest is the payload accepted by SuggestImprovements. Either a
// stored deck ID or an inline deck must be given.
type SuggestRequest struct {
	DeckID      string              `json:"deckId,omitempty"`
	Deck        *sampler.Deck       `json:"deck,omitempty"`
	Constraints sampler.Constraints `json:"constraints"`
}

// SuggestImprovements reports advisory findings about a deck's composition.
func (h *DeckHandler) SuggestImprovements(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, err)
		return
	}

	deck := req.Deck
	if deck == nil && req.DeckID != "" {
		record, err := h.loadDeck(r, req.DeckID)
		if err != nil {
			response.InternalError(w, err)
			return
		}
		if record == nil {
			response.NotFound(w, errors.New("deck not found"))
			return
		}
		deck = record.Deck
	}
	if deck == nil {
		response.BadRequest(w, errors.New("deck or deckId is required"))
		return
	}

	s, err := h.newSampler(nil)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	cons := req.Constraints
	if cons.Format == "" {
		cons = deck.Constraints
	}

	response.Success(w, s.SuggestImprovements(deck, cons))
}

func (h *DeckHandler) loadDeck(r *http.Request, id string) (*storage.DeckRecord, error) {
	if h.store == nil {
		return nil, errors.New("deck storage is not configured")
	}
	return h.store.GetDeck(r.Context(), id)
}

// ExportRequest is the payload accepted by ExportDeck.
type ExportRequest struct {
	Deck   *sampler.Deck `json:"deck"`
	Format string        `json:"format"`
}

// ExportDeck renders an inline deck in the requested format.
func (h *DeckHandler) ExportDeck(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, err)
		return
	}
	if req.Deck == nil {
		response.BadRequest(w, errors.New("deck is required"))
		return
	}

	h.export(w, req.Deck, req.Format)
}

// ExportStoredDeck renders a stored deck in the format given by the format
// query parameter.
func (h *DeckHandler) ExportStoredDeck(w http.ResponseWriter, r *http.Request) {
	record, err := h.loadDeck(r, chi.URLParam(r, "deckID"))
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if record == nil {
		response.NotFound(w, errors.New("deck not found"))
		return
	}

	format := r.URL.Query().Get("format")
	h.export(w, record.Deck, format)
}

func (h *DeckHandler) export(w http.ResponseWriter, deck *sampler.Deck, format string) {
	if format == "" {
		format = string(export.FormatText)
	}

	start := time.Now()
	result, err := export.Export(deck, export.Format(format))
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordExportDuration(time.Since(start))
	}

	response.Success(w, result)
}

// ListDecks returns stored decks, optionally filtered by the format query
// parameter.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		response.InternalError(w, errors.New("deck storage is not configured"))
		return
	}

	records, err := h.store.ListDecks(r.Context(), r.URL.Query().Get("format"))
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, records)
}

// GetDeck returns a stored deck by ID.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	record, err := h.loadDeck(r, chi.URLParam(r, "deckID"))
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if record == nil {
		response.NotFound(w, errors.New("deck not found"))
		return
	}

	response.Success(w, record)
}

// DeleteDeck removes a stored deck.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		response.InternalError(w, errors.New("deck storage is not configured"))
		return
	}

	if err := h.store.DeleteDeck(r.Context(), chi.URLParam(r, "deckID")); err != nil {
		response.InternalError(w, err)
		return
	}

	response.NoContent(w)
}

// FormatInfo describes a supported deck format and its defaults.
type FormatInfo struct {
	Name     string               `json:"name"`
	Defaults sampler.FormatConfig `json:"defaults"`
}

// ListFormats returns the supported deck formats and their default
// constraints.
func (h *DeckHandler) ListFormats(w http.ResponseWriter, r *http.Request) {
	names := sampler.Formats()
	infos := make([]FormatInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, FormatInfo{
			Name:     name,
			Defaults: sampler.FormatDefaults(name),
		})
	}

	response.Success(w, infos)
}

// Package handlers implements the HTTP handlers for the deckforge API.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/deckforge/internal/api/response"
	"github.com/ramonehamilton/deckforge/internal/cards/index"
	"github.com/ramonehamilton/deckforge/internal/metrics"
)

// CardHandler handles card search API requests.
type CardHandler struct {
	provider *index.Provider
	metrics  *metrics.EngineMetrics
	logger   *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(provider *index.Provider, engineMetrics *metrics.EngineMetrics, logger *slog.Logger) *CardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{
		provider: provider,
		metrics:  engineMetrics,
		logger:   logger,
	}
}

// SearchResult is the payload returned by SearchCards.
type SearchResult struct {
	Cards any `json:"cards"`
	Count int `json:"count"`
}

// SearchCards runs a structured card search against the current index.
func (h *CardHandler) SearchCards(w http.ResponseWriter, r *http.Request) {
	var query index.Query
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
			response.BadRequest(w, err)
			return
		}
	}

	idx := h.provider.Current()
	if idx == nil {
		response.InternalError(w, errors.New("search index not ready"))
		return
	}

	start := time.Now()
	results := idx.Search(query)
	if h.metrics != nil {
		h.metrics.RecordSearchDuration(time.Since(start))
	}

	response.Success(w, SearchResult{Cards: results, Count: len(results)})
}

// GetCard returns a card by its ID.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")
	if cardID == "" {
		response.BadRequest(w, errors.New("card ID is required"))
		return
	}

	idx := h.provider.Current()
	if idx == nil {
		response.InternalError(w, errors.New("search index not ready"))
		return
	}

	card := idx.Card(cardID)
	if card == nil {
		response.NotFound(w, errors.New("card not found"))
		return
	}

	response.Success(w, card)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/deckforge/internal/api/handlers"
	"github.com/ramonehamilton/deckforge/internal/api/response"
	"github.com/ramonehamilton/deckforge/internal/version"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint (no versioning)
	s.router.Get("/health", s.healthCheck)

	// API v1 routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Card search routes
		cardHandler := handlers.NewCardHandler(s.provider, s.metrics, s.logger)
		r.Route("/cards", func(r chi.Router) {
			r.Post("/search", cardHandler.SearchCards)
			r.Get("/{cardID}", cardHandler.GetCard)
		})

		// Deck generation routes
		deckHandler := handlers.NewDeckHandler(s.provider, s.store, s.metrics, s.logger)
		r.Route("/decks", func(r chi.Router) {
			r.Post("/generate", deckHandler.GenerateDecks)
			r.Post("/commander", deckHandler.GenerateCommanderDeck)
			r.Post("/suggest", deckHandler.SuggestImprovements)
			r.Post("/export", deckHandler.ExportDeck)
			r.Get("/", deckHandler.ListDecks)
			r.Get("/{deckID}", deckHandler.GetDeck)
			r.Delete("/{deckID}", deckHandler.DeleteDeck)
			r.Get("/{deckID}/export", deckHandler.ExportStoredDeck)
		})

		// Engine statistics
		r.Get("/stats", s.engineStats)

		// Format metadata
		r.Get("/formats", deckHandler.ListFormats)
	})
}

// healthCheck reports server liveness and index readiness.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	idx := s.provider.Current()

	status := map[string]any{
		"status":  "ok",
		"version": version.GetVersion(),
		"cards":   0,
	}
	if idx != nil {
		status["cards"] = idx.Size()
	}

	response.JSON(w, http.StatusOK, status)
}

// engineStats reports search and sampling performance metrics.
func (s *Server) engineStats(w http.ResponseWriter, r *http.Request) {
	response.Success(w, s.metrics.GetStats())
}

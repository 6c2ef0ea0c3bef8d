package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ramonehamilton/deckforge/internal/deck/sampler"
)

// DeckRecord is a stored generated deck with its metadata.
type DeckRecord struct {
	ID        string
	Name      string
	Format    string
	Valid     bool
	Deck      *sampler.Deck
	CreatedAt time.Time
}

// SaveDeck stores a generated deck.
func (s *Service) SaveDeck(ctx context.Context, deck *sampler.Deck) error {
	if deck == nil {
		return fmt.Errorf("deck cannot be nil")
	}
	if deck.ID == "" {
		return fmt.Errorf("deck ID cannot be empty")
	}

	data, err := json.Marshal(deck)
	if err != nil {
		return fmt.Errorf("failed to marshal deck: %w", err)
	}

	query := `
		INSERT INTO decks (id, name, format, valid, data)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			format = excluded.format,
			valid = excluded.valid,
			data = excluded.data
	`

	_, err = s.db.Conn().ExecContext(ctx, query,
		deck.ID, deck.Name, deck.Constraints.Format, deck.Valid, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to save deck: %w", err)
	}

	return nil
}

// GetDeck retrieves a stored deck by its ID. Returns nil when not found.
func (s *Service) GetDeck(ctx context.Context, id string) (*DeckRecord, error) {
	var (
		record DeckRecord
		data   string
	)
	err := s.db.Conn().QueryRowContext(ctx,
		"SELECT id, name, format, valid, data, created_at FROM decks WHERE id = ?", id,
	).Scan(&record.ID, &record.Name, &record.Format, &record.Valid, &data, &record.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	var deck sampler.Deck
	if err := json.Unmarshal([]byte(data), &deck); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deck %s: %w", id, err)
	}
	record.Deck = &deck

	return &record, nil
}

// ListDecks retrieves stored decks, newest first. When format is non-empty,
// only decks generated for that format are returned.
func (s *Service) ListDecks(ctx context.Context, format string) ([]*DeckRecord, error) {
	query := "SELECT id, name, format, valid, data, created_at FROM decks"
	args := []any{}
	if format != "" {
		query += " WHERE format = ?"
		args = append(args, format)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*DeckRecord
	for rows.Next() {
		var (
			record DeckRecord
			data   string
		)
		err := rows.Scan(&record.ID, &record.Name, &record.Format, &record.Valid, &data, &record.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deck row: %w", err)
		}

		var deck sampler.Deck
		if err := json.Unmarshal([]byte(data), &deck); err != nil {
			return nil, fmt.Errorf("failed to unmarshal deck %s: %w", record.ID, err)
		}
		record.Deck = &deck
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating decks: %w", err)
	}

	return records, nil
}

// DeleteDeck removes a stored deck.
func (s *Service) DeleteDeck(ctx context.Context, id string) error {
	if _, err := s.db.Conn().ExecContext(ctx, "DELETE FROM decks WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	return nil
}

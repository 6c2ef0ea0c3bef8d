package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ramonehamilton/deckforge/internal/cards"
)

// Service provides high-level operations for storing and retrieving the card
// corpus and generated decks.
type Service struct {
	db *DB
}

// NewService creates a new storage service.
func NewService(db *DB) *Service {
	return &Service{db: db}
}

const saveCardQuery = `
	INSERT INTO cards (
		id, oracle_id, name, set_code, set_name, rarity, mana_value, type_line,
		released_at, artist, data, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
		oracle_id = excluded.oracle_id,
		name = excluded.name,
		set_code = excluded.set_code,
		set_name = excluded.set_name,
		rarity = excluded.rarity,
		mana_value = excluded.mana_value,
		type_line = excluded.type_line,
		released_at = excluded.released_at,
		artist = excluded.artist,
		data = excluded.data,
		updated_at = CURRENT_TIMESTAMP
`

// SaveCards saves or updates a batch of cards in a single transaction.
func (s *Service) SaveCards(ctx context.Context, batch []*cards.Card) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, saveCardQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare card insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, card := range batch {
		if card == nil || card.ID == "" {
			continue
		}

		data, err := json.Marshal(card)
		if err != nil {
			return fmt.Errorf("failed to marshal card %s: %w", card.ID, err)
		}

		_, err = stmt.ExecContext(ctx,
			card.ID, card.OracleID, card.Name, card.SetCode, card.SetName,
			card.Rarity, card.ManaValue, card.TypeLine,
			card.ReleasedAt, card.Artist, string(data),
		)
		if err != nil {
			return fmt.Errorf("failed to save card %s: %w", card.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit card batch: %w", err)
	}

	return nil
}

// GetCard retrieves a card by its ID. Returns nil when the card is not found.
func (s *Service) GetCard(ctx context.Context, id string) (*cards.Card, error) {
	var data string
	err := s.db.Conn().QueryRowContext(ctx,
		"SELECT data FROM cards WHERE id = ?", id,
	).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	var card cards.Card
	if err := json.Unmarshal([]byte(data), &card); err != nil {
		return nil, fmt.Errorf("failed to unmarshal card %s: %w", id, err)
	}

	return &card, nil
}

// LoadCards retrieves the full card corpus ordered by name.
func (s *Service) LoadCards(ctx context.Context) ([]*cards.Card, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		"SELECT id, data FROM cards ORDER BY name ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var corpus []*cards.Card
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}

		var card cards.Card
		if err := json.Unmarshal([]byte(data), &card); err != nil {
			return nil, fmt.Errorf("failed to unmarshal card %s: %w", id, err)
		}
		corpus = append(corpus, &card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}

	return corpus, nil
}

// GetCardsBySet retrieves all cards from the given set ordered by name.
func (s *Service) GetCardsBySet(ctx context.Context, setCode string) ([]*cards.Card, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		"SELECT id, data FROM cards WHERE set_code = ? ORDER BY name ASC", setCode,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards for set %s: %w", setCode, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*cards.Card
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}

		var card cards.Card
		if err := json.Unmarshal([]byte(data), &card); err != nil {
			return nil, fmt.Errorf("failed to unmarshal card %s: %w", id, err)
		}
		result = append(result, &card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}

	return result, nil
}

// CountCards returns the number of cards in the store.
func (s *Service) CountCards(ctx context.Context) (int, error) {
	var count int
	err := s.db.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM cards").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return count, nil
}

// DeleteAllCards removes every card from the store.
func (s *Service) DeleteAllCards(ctx context.Context) error {
	if _, err := s.db.Conn().ExecContext(ctx, "DELETE FROM cards"); err != nil {
		return fmt.Errorf("failed to delete cards: %w", err)
	}
	return nil
}

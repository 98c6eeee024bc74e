package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/poketrade/apiserver/types"
)

// CardRepository handles persistence for sets and cards.
type CardRepository struct {
	db *sql.DB
}

func NewCardRepository(db *sql.DB) *CardRepository {
	return &CardRepository{db: db}
}

// CatalogFilter narrows a catalog search. Zero values impose no constraint;
// filters compose conjunctively.
type CatalogFilter struct {
	// Name matches card names by case-insensitive substring containment.
	Name string

	// SetID matches the exact set identifier.
	SetID int
}

func (r *CardRepository) Get(ctx context.Context, id int) (types.CardWithSet, error) {
	const query = `
		SELECT cards.id, cards.set_id, cards.name, cards.card_number, cards.rarity, cards.image_url,
		       sets.name AS set_name
		FROM cards
		JOIN sets ON cards.set_id = sets.id
		WHERE cards.id = $1`
	var card types.CardWithSet
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID,
		&card.SetID,
		&card.Name,
		&card.CardNumber,
		&card.Rarity,
		&card.ImageURL,
		&card.SetName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.CardWithSet{}, ErrNotFound
		}
		return types.CardWithSet{}, err
	}
	return card, nil
}

// Search returns catalog rows matching the filter, with the floor price over
// active listings and have/want counts recomputed from current state. All
// filter values are bound parameters.
func (r *CardRepository) Search(ctx context.Context, filter CatalogFilter) ([]types.CardSummary, error) {
	query := `
		SELECT
			cards.id, cards.set_id, cards.name, cards.card_number, cards.rarity, cards.image_url,
			sets.name AS set_name,
			(SELECT MIN(price) FROM listings
			 WHERE card_id = cards.id AND status = 'active') AS floor_price,
			(SELECT COUNT(*) FROM user_cards
			 WHERE card_id = cards.id AND list_type = 'have') AS have_count,
			(SELECT COUNT(*) FROM user_cards
			 WHERE card_id = cards.id AND list_type = 'want') AS want_count
		FROM cards
		JOIN sets ON cards.set_id = sets.id
		WHERE 1=1`

	args := make([]any, 0, 2)
	if filter.Name != "" {
		args = append(args, filter.Name)
		query += fmt.Sprintf(" AND cards.name ILIKE '%%' || $%d || '%%'", len(args))
	}
	if filter.SetID != 0 {
		args = append(args, filter.SetID)
		query += fmt.Sprintf(" AND sets.id = $%d", len(args))
	}
	query += ` ORDER BY cards.name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := make([]types.CardSummary, 0)
	for rows.Next() {
		var card types.CardSummary
		var floor sql.NullFloat64
		if err := rows.Scan(
			&card.ID,
			&card.SetID,
			&card.Name,
			&card.CardNumber,
			&card.Rarity,
			&card.ImageURL,
			&card.SetName,
			&floor,
			&card.HaveCount,
			&card.WantCount,
		); err != nil {
			return nil, err
		}
		if floor.Valid {
			card.FloorPrice = &floor.Float64
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *CardRepository) ListSets(ctx context.Context) ([]types.Set, error) {
	const query = `SELECT id, name, series FROM sets ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sets := make([]types.Set, 0)
	for rows.Next() {
		var set types.Set
		if err := rows.Scan(&set.ID, &set.Name, &set.Series); err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sets, nil
}

func (r *CardRepository) GetSetByName(ctx context.Context, name string) (types.Set, error) {
	const query = `SELECT id, name, series FROM sets WHERE name = $1`
	var set types.Set
	err := r.db.QueryRowContext(ctx, query, name).Scan(&set.ID, &set.Name, &set.Series)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Set{}, ErrNotFound
		}
		return types.Set{}, err
	}
	return set, nil
}

func (r *CardRepository) CreateSet(ctx context.Context, set types.Set) (types.Set, error) {
	const query = `
		INSERT INTO sets (name, series)
		VALUES ($1, $2)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, set.Name, set.Series).Scan(&set.ID); err != nil {
		return types.Set{}, err
	}
	return set, nil
}

func (r *CardRepository) CreateCard(ctx context.Context, card types.Card) (types.Card, error) {
	const query = `
		INSERT INTO cards (set_id, name, card_number, rarity, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		card.SetID,
		card.Name,
		card.CardNumber,
		card.Rarity,
		card.ImageURL,
	).Scan(&card.ID); err != nil {
		return types.Card{}, err
	}
	return card, nil
}

// Count returns the total number of cards in the catalog.
func (r *CardRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM cards`
	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

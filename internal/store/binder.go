package store

import (
	"context"
	"database/sql"

	"github.com/poketrade/apiserver/types"
)

// BinderRepository handles persistence for user binder entries.
type BinderRepository struct {
	db *sql.DB
}

func NewBinderRepository(db *sql.DB) *BinderRepository {
	return &BinderRepository{db: db}
}

// AddEntry inserts a binder entry. At most one row may exist per
// (user, card, list type); a second insert reports ErrDuplicate. A reference
// to a missing card reports ErrNotFound.
func (r *BinderRepository) AddEntry(ctx context.Context, entry types.UserCard) (types.UserCard, error) {
	const query = `
		INSERT INTO user_cards (user_id, card_id, list_type, is_public, condition, target_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		entry.UserID,
		entry.CardID,
		entry.ListType,
		entry.IsPublic,
		entry.Condition,
		entry.TargetPrice,
	).Scan(&entry.ID); err != nil {
		if isUniqueViolation(err) {
			return types.UserCard{}, ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return types.UserCard{}, ErrNotFound
		}
		return types.UserCard{}, err
	}
	return entry, nil
}

// ListEntries returns a user's binder entries of one list type, joined with
// card and set fields and ordered by card name. When publicOnly is set,
// private rows are excluded; the owner's own view passes false.
func (r *BinderRepository) ListEntries(ctx context.Context, userID int, listType string, publicOnly bool) ([]types.BinderEntry, error) {
	query := `
		SELECT
			user_cards.id, user_cards.user_id, user_cards.card_id, user_cards.list_type,
			user_cards.is_public, user_cards.condition, user_cards.target_price,
			cards.name AS card_name, cards.image_url,
			sets.name AS set_name
		FROM user_cards
		JOIN cards ON user_cards.card_id = cards.id
		JOIN sets ON cards.set_id = sets.id
		WHERE user_cards.user_id = $1 AND user_cards.list_type = $2`
	if publicOnly {
		query += ` AND user_cards.is_public`
	}
	query += ` ORDER BY cards.name`

	rows, err := r.db.QueryContext(ctx, query, userID, listType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]types.BinderEntry, 0)
	for rows.Next() {
		var entry types.BinderEntry
		var target sql.NullFloat64
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.CardID,
			&entry.ListType,
			&entry.IsPublic,
			&entry.Condition,
			&target,
			&entry.CardName,
			&entry.ImageURL,
			&entry.SetName,
		); err != nil {
			return nil, err
		}
		if target.Valid {
			entry.TargetPrice = &target.Float64
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListHolders returns the usernames of users who publicly have or want the
// given card.
func (r *BinderRepository) ListHolders(ctx context.Context, cardID int, listType string) ([]string, error) {
	const query = `
		SELECT users.username
		FROM user_cards
		JOIN users ON user_cards.user_id = users.id
		WHERE user_cards.card_id = $1 AND user_cards.list_type = $2 AND user_cards.is_public
		ORDER BY users.username`
	rows, err := r.db.QueryContext(ctx, query, cardID, listType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usernames := make([]string, 0)
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, err
		}
		usernames = append(usernames, username)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return usernames, nil
}

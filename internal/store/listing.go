package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/poketrade/apiserver/types"
)

// ListingRepository handles persistence for listings.
type ListingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

const listingDetailColumns = `
	listings.id, listings.card_id, listings.user_id, listings.price, listings.quantity,
	listings.condition, listings.description, listings.status, listings.created_at,
	cards.name AS card_name, cards.card_number, cards.image_url,
	sets.name AS set_name,
	users.username`

// Create inserts a listing. The status is written here and never updated.
func (r *ListingRepository) Create(ctx context.Context, listing types.Listing) (types.Listing, error) {
	listing.CreatedAt = time.Now()
	if listing.Status == "" {
		listing.Status = types.ListingStatusActive
	}
	if listing.Quantity < 1 {
		listing.Quantity = 1
	}

	const query = `
		INSERT INTO listings (card_id, user_id, price, quantity, condition, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		listing.CardID,
		listing.UserID,
		listing.Price,
		listing.Quantity,
		listing.Condition,
		listing.Description,
		listing.Status,
		listing.CreatedAt,
	).Scan(&listing.ID); err != nil {
		if isForeignKeyViolation(err) {
			return types.Listing{}, ErrNotFound
		}
		return types.Listing{}, err
	}
	return listing, nil
}

// ListActive returns active listings with card, set, and seller fields,
// most recent first. A zero limit returns all rows.
func (r *ListingRepository) ListActive(ctx context.Context, limit int) ([]types.ListingDetail, error) {
	query := `
		SELECT` + listingDetailColumns + `
		FROM listings
		JOIN cards ON listings.card_id = cards.id
		JOIN sets ON cards.set_id = sets.id
		JOIN users ON listings.user_id = users.id
		WHERE listings.status = 'active'
		ORDER BY listings.created_at DESC`

	var args []any
	if limit > 0 {
		args = append(args, limit)
		query += ` LIMIT $1`
	}
	return r.queryDetails(ctx, query, args...)
}

// ListActiveByCard returns a card's active listings, cheapest first.
func (r *ListingRepository) ListActiveByCard(ctx context.Context, cardID int) ([]types.ListingDetail, error) {
	const query = `
		SELECT` + listingDetailColumns + `
		FROM listings
		JOIN cards ON listings.card_id = cards.id
		JOIN sets ON cards.set_id = sets.id
		JOIN users ON listings.user_id = users.id
		WHERE listings.card_id = $1 AND listings.status = 'active'
		ORDER BY listings.price ASC`
	return r.queryDetails(ctx, query, cardID)
}

// ListActiveBySeller returns a seller's active listings, most recent first.
func (r *ListingRepository) ListActiveBySeller(ctx context.Context, userID int) ([]types.ListingDetail, error) {
	const query = `
		SELECT` + listingDetailColumns + `
		FROM listings
		JOIN cards ON listings.card_id = cards.id
		JOIN sets ON cards.set_id = sets.id
		JOIN users ON listings.user_id = users.id
		WHERE listings.user_id = $1 AND listings.status = 'active'
		ORDER BY listings.created_at DESC`
	return r.queryDetails(ctx, query, userID)
}

// CountActive returns the number of active listings.
func (r *ListingRepository) CountActive(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM listings WHERE status = 'active'`
	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ListingRepository) queryDetails(ctx context.Context, query string, args ...any) ([]types.ListingDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]types.ListingDetail, 0)
	for rows.Next() {
		var listing types.ListingDetail
		if err := rows.Scan(
			&listing.ID,
			&listing.CardID,
			&listing.UserID,
			&listing.Price,
			&listing.Quantity,
			&listing.Condition,
			&listing.Description,
			&listing.Status,
			&listing.CreatedAt,
			&listing.CardName,
			&listing.CardNumber,
			&listing.ImageURL,
			&listing.SetName,
			&listing.Username,
		); err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}

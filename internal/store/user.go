package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/poketrade/apiserver/types"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (types.User, error) {
	const query = `
		SELECT id, username, email, location_city, location_region, bio, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (types.User, error) {
	const query = `
		SELECT id, username, email, location_city, location_region, bio, password_hash, created_at, updated_at
		FROM users
		WHERE username = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

// Create inserts a user, relying on the unique constraints on username and
// email. A violation is reported as ErrDuplicate so callers never need a
// racy pre-check read.
func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	const query = `
		INSERT INTO users (username, email, password_hash, location_city, location_region, bio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.LocationCity,
		user.LocationRegion,
		user.Bio,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID); err != nil {
		if isUniqueViolation(err) {
			return types.User{}, ErrDuplicate
		}
		return types.User{}, err
	}
	return user, nil
}

// Count returns the total number of registered users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM users`
	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ListBinderOwners returns every user with their public have/want counts and
// active listing count, busiest binders first. Private binder entries do not
// contribute to the public counts.
func (r *UserRepository) ListBinderOwners(ctx context.Context) ([]types.BinderOwner, error) {
	const query = `
		SELECT
			users.id,
			users.username,
			users.location_city,
			users.location_region,
			users.bio,
			COUNT(DISTINCT CASE WHEN user_cards.list_type = 'have' THEN user_cards.id END) AS have_count,
			COUNT(DISTINCT CASE WHEN user_cards.list_type = 'want' THEN user_cards.id END) AS want_count,
			COUNT(DISTINCT listings.id) AS listing_count
		FROM users
		LEFT JOIN user_cards ON users.id = user_cards.user_id AND user_cards.is_public
		LEFT JOIN listings ON users.id = listings.user_id AND listings.status = 'active'
		GROUP BY users.id
		ORDER BY have_count DESC, users.username`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owners := make([]types.BinderOwner, 0)
	for rows.Next() {
		var owner types.BinderOwner
		if err := rows.Scan(
			&owner.ID,
			&owner.Username,
			&owner.LocationCity,
			&owner.LocationRegion,
			&owner.Bio,
			&owner.HaveCount,
			&owner.WantCount,
			&owner.ListingCount,
		); err != nil {
			return nil, err
		}
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return owners, nil
}

func (r *UserRepository) scanUser(row *sql.Row) (types.User, error) {
	var user types.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.LocationCity,
		&user.LocationRegion,
		&user.Bio,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

package types

import "time"

// User represents an account in the system.
// It contains identity, profile, and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Username is the unique login name chosen by the user.
	Username string `json:"username" db:"username"`

	// Email is the user's email address, unique across accounts.
	Email string `json:"email" db:"email"`

	// LocationCity and LocationRegion describe where the user trades from.
	LocationCity   string `json:"location_city" db:"location_city"`
	LocationRegion string `json:"location_region" db:"location_region"`

	// Bio is a free-text profile blurb.
	Bio string `json:"bio" db:"bio"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// BinderOwner is a user row enriched with public collection stats,
// as shown on the binder directory page.
type BinderOwner struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	LocationCity   string `json:"location_city"`
	LocationRegion string `json:"location_region"`
	Bio            string `json:"bio"`
	HaveCount      int    `json:"have_count"`
	WantCount      int    `json:"want_count"`
	ListingCount   int    `json:"listing_count"`
}

package types

import "time"

// Listing statuses. Only active listings are ever surfaced; the status is
// written once at creation and read thereafter.
const (
	ListingStatusActive  = "active"
	ListingStatusSold    = "sold"
	ListingStatusRemoved = "removed"
)

// Listing is a card offered for sale by a user. Listings are informational,
// there is no transactional checkout.
type Listing struct {
	ID          int       `json:"id" db:"id"`
	CardID      int       `json:"card_id" db:"card_id"`
	UserID      int       `json:"user_id" db:"user_id"`
	Price       float64   `json:"price" db:"price"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Condition   string    `json:"condition" db:"condition"`
	Description string    `json:"description" db:"description"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ListingDetail is a listing joined with card, set, and seller fields for
// display on market pages.
type ListingDetail struct {
	Listing
	CardName   string `json:"card_name"`
	CardNumber string `json:"card_number"`
	ImageURL   string `json:"image_url"`
	SetName    string `json:"set_name"`
	Username   string `json:"username"`
}

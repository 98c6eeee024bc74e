package types

// Set is a card set, static reference data.
type Set struct {
	ID     int    `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Series string `json:"series" db:"series"`
}

// Card belongs to exactly one set. Reference data, immutable once imported.
type Card struct {
	ID         int    `json:"id" db:"id"`
	SetID      int    `json:"set_id" db:"set_id"`
	Name       string `json:"name" db:"name"`
	CardNumber string `json:"card_number" db:"card_number"`
	Rarity     string `json:"rarity" db:"rarity"`
	ImageURL   string `json:"image_url" db:"image_url"`
}

// CardWithSet is a card joined with its set name.
type CardWithSet struct {
	Card
	SetName string `json:"set_name"`
}

// CardSummary is a catalog row: the card plus market and collection
// aggregates computed from current storage state.
type CardSummary struct {
	Card
	SetName string `json:"set_name"`

	// FloorPrice is the minimum active listing price, nil when the card
	// has no active listings.
	FloorPrice *float64 `json:"floor_price"`

	HaveCount int `json:"have_count"`
	WantCount int `json:"want_count"`
}

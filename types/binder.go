package types

// UserCard list types. A user keeps at most one row per (card, list type).
const (
	ListTypeHave = "have"
	ListTypeWant = "want"
)

// UserCard is a binder entry: a user's declared possession of, or desire
// for, a specific card.
type UserCard struct {
	ID     int `json:"id" db:"id"`
	UserID int `json:"user_id" db:"user_id"`
	CardID int `json:"card_id" db:"card_id"`

	// ListType is "have" or "want".
	ListType string `json:"list_type" db:"list_type"`

	// IsPublic gates visibility of this row to other users. The owner's
	// own binder view ignores it.
	IsPublic bool `json:"is_public" db:"is_public"`

	// Condition applies to "have" entries.
	Condition string `json:"condition" db:"condition"`

	// TargetPrice applies to "want" entries, nil when unset.
	TargetPrice *float64 `json:"target_price" db:"target_price"`
}

// BinderEntry is a user card joined with card and set fields for binder pages.
type BinderEntry struct {
	UserCard
	CardName string `json:"card_name"`
	ImageURL string `json:"image_url"`
	SetName  string `json:"set_name"`
}

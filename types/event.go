package types

import "time"

// Event is a meetup or tournament, admin-created reference data.
type Event struct {
	ID             int        `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	LocationVenue  string     `json:"location_venue" db:"location_venue"`
	LocationCity   string     `json:"location_city" db:"location_city"`
	LocationRegion string     `json:"location_region" db:"location_region"`
	StartDatetime  time.Time  `json:"start_datetime" db:"start_datetime"`
	EndDatetime    *time.Time `json:"end_datetime" db:"end_datetime"`
	WebsiteURL     string     `json:"website_url" db:"website_url"`
	Description    string     `json:"description" db:"description"`
}

// EventSummary is an event enriched with attendance and card counts.
type EventSummary struct {
	Event
	AttendeeCount int `json:"attendee_count"`
	CardsCount    int `json:"cards_count"`
}

// EventAttendee is one attendance record joined with the attendee's profile.
type EventAttendee struct {
	Username     string `json:"username"`
	LocationCity string `json:"location_city"`
	Role         string `json:"role"`
	Status       string `json:"status"`
}

// EventCard records that a user brought or listed a card at an event.
type EventCard struct {
	ID      int `json:"id" db:"id"`
	EventID int `json:"event_id" db:"event_id"`
	CardID  int `json:"card_id" db:"card_id"`
	UserID  int `json:"user_id" db:"user_id"`
}

// EventCardDetail is an event card joined with card and owner fields.
type EventCardDetail struct {
	EventCard
	CardName string `json:"card_name"`
	ImageURL string `json:"image_url"`
	Username string `json:"username"`
}

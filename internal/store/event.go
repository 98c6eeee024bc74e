package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/poketrade/apiserver/types"
)

// EventRepository handles persistence for events, attendance, and cards
// brought to events.
type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Get(ctx context.Context, id int) (types.Event, error) {
	const query = `
		SELECT id, name, location_venue, location_city, location_region,
		       start_datetime, end_datetime, website_url, description
		FROM events
		WHERE id = $1`
	var event types.Event
	var end sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.LocationVenue,
		&event.LocationCity,
		&event.LocationRegion,
		&event.StartDatetime,
		&end,
		&event.WebsiteURL,
		&event.Description,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Event{}, ErrNotFound
		}
		return types.Event{}, err
	}
	if end.Valid {
		event.EndDatetime = &end.Time
	}
	return event, nil
}

// List returns all events with attendee and event-card counts, soonest first.
func (r *EventRepository) List(ctx context.Context) ([]types.EventSummary, error) {
	const query = `
		SELECT
			events.id, events.name, events.location_venue, events.location_city, events.location_region,
			events.start_datetime, events.end_datetime, events.website_url, events.description,
			COUNT(DISTINCT event_attendance.id) AS attendee_count,
			COUNT(DISTINCT event_cards.id) AS cards_count
		FROM events
		LEFT JOIN event_attendance ON events.id = event_attendance.event_id
		LEFT JOIN event_cards ON events.id = event_cards.event_id
		GROUP BY events.id
		ORDER BY events.start_datetime`
	return r.querySummaries(ctx, query)
}

// ListUpcoming returns events that have not started yet with attendee
// counts, soonest first. A zero limit returns all rows.
func (r *EventRepository) ListUpcoming(ctx context.Context, limit int) ([]types.EventSummary, error) {
	query := `
		SELECT
			events.id, events.name, events.location_venue, events.location_city, events.location_region,
			events.start_datetime, events.end_datetime, events.website_url, events.description,
			COUNT(event_attendance.id) AS attendee_count,
			0 AS cards_count
		FROM events
		LEFT JOIN event_attendance ON events.id = event_attendance.event_id
		WHERE events.start_datetime >= NOW()
		GROUP BY events.id
		ORDER BY events.start_datetime`

	var args []any
	if limit > 0 {
		args = append(args, limit)
		query += ` LIMIT $1`
	}
	return r.querySummaries(ctx, query, args...)
}

// CountUpcoming returns the number of events that have not started yet.
func (r *EventRepository) CountUpcoming(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM events WHERE start_datetime >= NOW()`
	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Attend records a user's RSVP. One row per (event, user); a repeat RSVP
// reports ErrDuplicate and an unknown event reports ErrNotFound.
func (r *EventRepository) Attend(ctx context.Context, eventID, userID int, role, status string) (int, error) {
	const query = `
		INSERT INTO event_attendance (event_id, user_id, role, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	var id int
	if err := r.db.QueryRowContext(ctx, query, eventID, userID, role, status).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return id, nil
}

// ListAttendees returns attendance records joined with attendee profiles.
func (r *EventRepository) ListAttendees(ctx context.Context, eventID int) ([]types.EventAttendee, error) {
	const query = `
		SELECT users.username, users.location_city, event_attendance.role, event_attendance.status
		FROM event_attendance
		JOIN users ON event_attendance.user_id = users.id
		WHERE event_attendance.event_id = $1
		ORDER BY users.username`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendees := make([]types.EventAttendee, 0)
	for rows.Next() {
		var attendee types.EventAttendee
		if err := rows.Scan(
			&attendee.Username,
			&attendee.LocationCity,
			&attendee.Role,
			&attendee.Status,
		); err != nil {
			return nil, err
		}
		attendees = append(attendees, attendee)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return attendees, nil
}

// ListEventCards returns the cards users brought to an event.
func (r *EventRepository) ListEventCards(ctx context.Context, eventID int) ([]types.EventCardDetail, error) {
	const query = `
		SELECT event_cards.id, event_cards.event_id, event_cards.card_id, event_cards.user_id,
		       cards.name AS card_name, cards.image_url, users.username
		FROM event_cards
		JOIN cards ON event_cards.card_id = cards.id
		JOIN users ON event_cards.user_id = users.id
		WHERE event_cards.event_id = $1`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := make([]types.EventCardDetail, 0)
	for rows.Next() {
		var card types.EventCardDetail
		if err := rows.Scan(
			&card.ID,
			&card.EventID,
			&card.CardID,
			&card.UserID,
			&card.CardName,
			&card.ImageURL,
			&card.Username,
		); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *EventRepository) querySummaries(ctx context.Context, query string, args ...any) ([]types.EventSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]types.EventSummary, 0)
	for rows.Next() {
		var event types.EventSummary
		var end sql.NullTime
		if err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.LocationVenue,
			&event.LocationCity,
			&event.LocationRegion,
			&event.StartDatetime,
			&end,
			&event.WebsiteURL,
			&event.Description,
			&event.AttendeeCount,
			&event.CardsCount,
		); err != nil {
			return nil, err
		}
		if end.Valid {
			event.EndDatetime = &end.Time
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

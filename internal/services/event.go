package services

import (
	"context"

	"github.com/poketrade/apiserver/types"
)

const (
	defaultAttendanceRole   = "attendee"
	defaultAttendanceStatus = "going"
)

// EventRepository defines persistence operations for events.
type EventRepository interface {
	Get(ctx context.Context, id int) (types.Event, error)
	List(ctx context.Context) ([]types.EventSummary, error)
	ListUpcoming(ctx context.Context, limit int) ([]types.EventSummary, error)
	CountUpcoming(ctx context.Context) (int, error)
	Attend(ctx context.Context, eventID, userID int, role, status string) (int, error)
	ListAttendees(ctx context.Context, eventID int) ([]types.EventAttendee, error)
	ListEventCards(ctx context.Context, eventID int) ([]types.EventCardDetail, error)
}

// EventService encapsulates event use-cases.
type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{repo: repo}
}

func (s *EventService) Get(ctx context.Context, id int) (types.Event, error) {
	return s.repo.Get(ctx, id)
}

func (s *EventService) List(ctx context.Context) ([]types.EventSummary, error) {
	return s.repo.List(ctx)
}

func (s *EventService) ListUpcoming(ctx context.Context, limit int) ([]types.EventSummary, error) {
	return s.repo.ListUpcoming(ctx, limit)
}

func (s *EventService) CountUpcoming(ctx context.Context) (int, error) {
	return s.repo.CountUpcoming(ctx)
}

// Attend records an RSVP with default role and status when unset.
func (s *EventService) Attend(ctx context.Context, eventID, userID int, role, status string) (int, error) {
	if role == "" {
		role = defaultAttendanceRole
	}
	if status == "" {
		status = defaultAttendanceStatus
	}
	return s.repo.Attend(ctx, eventID, userID, role, status)
}

func (s *EventService) ListAttendees(ctx context.Context, eventID int) ([]types.EventAttendee, error) {
	return s.repo.ListAttendees(ctx, eventID)
}

func (s *EventService) ListEventCards(ctx context.Context, eventID int) ([]types.EventCardDetail, error) {
	return s.repo.ListEventCards(ctx, eventID)
}

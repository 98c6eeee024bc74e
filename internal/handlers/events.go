package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/poketrade/apiserver/internal/services"
	"github.com/poketrade/apiserver/internal/store"
	"github.com/poketrade/apiserver/types"
)

// EventHandler provides HTTP handlers for events.
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler constructs a handler with the provided service.
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// EventRouter registers event routes on the given router.
func EventRouter(
	r chi.Router,
	eventService *services.EventService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewEventHandler(eventService)

	r.Get("/", handler.ListEvents)
	r.Route("/{eventID}", func(r chi.Router) {
		r.Get("/", handler.EventDetail)
		r.With(authMiddleware).Post("/attendance", handler.Attend)
	})
}

// EventsResponse is the events page view-model.
type EventsResponse struct {
	Events []types.EventSummary `json:"events"`
}

// EventDetailResponse is the single-event view-model.
type EventDetailResponse struct {
	Event     types.Event             `json:"event"`
	Attendees []types.EventAttendee   `json:"attendees"`
	Cards     []types.EventCardDetail `json:"cards_at_event"`
}

type AttendRequest struct {
	Role   string `json:"role"`
	Status string `json:"status"`
}

// ListEvents returns all events with attendee and card counts, soonest first.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	writeJSON(w, http.StatusOK, EventsResponse{Events: events})
}

// EventDetail returns an event with its attendees and the cards brought.
func (h *EventHandler) EventDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "eventID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch event")
		return
	}

	attendees, err := h.eventService.ListAttendees(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch attendees")
		return
	}

	cards, err := h.eventService.ListEventCards(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch event cards")
		return
	}

	writeJSON(w, http.StatusOK, EventDetailResponse{
		Event:     event,
		Attendees: attendees,
		Cards:     cards,
	})
}

// Attend records the current user's RSVP for an event.
func (h *EventHandler) Attend(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(r, "eventID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req AttendRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
	}

	attendanceID, err := h.eventService.Attend(r.Context(), id, userID, req.Role, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			writeError(w, http.StatusConflict, "already attending")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "event not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to record attendance")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int{"id": attendanceID})
}

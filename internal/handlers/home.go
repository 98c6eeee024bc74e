package handlers

import (
	"net/http"

	"github.com/poketrade/apiserver/internal/services"
	"github.com/poketrade/apiserver/types"
)

const homePageLimit = 6

// HomeHandler assembles the market overview page.
type HomeHandler struct {
	cardService    *services.CardService
	listingService *services.ListingService
	eventService   *services.EventService
	userService    *services.UserService
}

// NewHomeHandler constructs a handler with the provided services.
func NewHomeHandler(
	cardService *services.CardService,
	listingService *services.ListingService,
	eventService *services.EventService,
	userService *services.UserService,
) *HomeHandler {
	return &HomeHandler{
		cardService:    cardService,
		listingService: listingService,
		eventService:   eventService,
		userService:    userService,
	}
}

// HomeResponse is the homepage view-model: market totals, the freshest
// listings, and the next events. Totals are recomputed on every request.
type HomeResponse struct {
	TotalCards     int                   `json:"total_cards"`
	ActiveListings int                   `json:"active_listings"`
	UpcomingEvents int                   `json:"upcoming_events"`
	ActiveUsers    int                   `json:"active_users"`
	Listings       []types.ListingDetail `json:"listings"`
	Events         []types.EventSummary  `json:"events"`
}

// Home returns the market overview.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totalCards, err := h.cardService.Count(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load overview")
		return
	}
	activeListings, err := h.listingService.CountActive(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load overview")
		return
	}
	upcomingEvents, err := h.eventService.CountUpcoming(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load overview")
		return
	}
	activeUsers, err := h.userService.Count(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load overview")
		return
	}

	listings, err := h.listingService.ListActive(ctx, homePageLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load overview")
		return
	}

	events, err := h.eventService.ListUpcoming(ctx, homePageLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load overview")
		return
	}

	writeJSON(w, http.StatusOK, HomeResponse{
		TotalCards:     totalCards,
		ActiveListings: activeListings,
		UpcomingEvents: upcomingEvents,
		ActiveUsers:    activeUsers,
		Listings:       listings,
		Events:         events,
	})
}

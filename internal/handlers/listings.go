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

// ListingHandler provides HTTP handlers for marketplace listings.
type ListingHandler struct {
	listingService *services.ListingService
}

// NewListingHandler constructs a handler with the provided service.
func NewListingHandler(listingService *services.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// ListingRouter registers listing routes on the given router.
func ListingRouter(
	r chi.Router,
	listingService *services.ListingService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewListingHandler(listingService)

	r.Get("/", handler.ListListings)
	r.With(authMiddleware).Post("/", handler.CreateListing)
}

// ListingsResponse is the listings page view-model.
type ListingsResponse struct {
	Listings []types.ListingDetail `json:"listings"`
}

type CreateListingRequest struct {
	CardID      int     `json:"card_id"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
}

// ListListings returns every active listing, most recent first.
func (h *ListingHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listingService.ListActive(r.Context(), 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list listings")
		return
	}
	writeJSON(w, http.StatusOK, ListingsResponse{Listings: listings})
}

// CreateListing lists a card for sale on behalf of the current user.
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	listing, err := h.listingService.Create(r.Context(), userID, types.Listing{
		CardID:      req.CardID,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Condition:   req.Condition,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidListing):
			writeError(w, http.StatusBadRequest, "card and a positive price are required")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "card not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create listing")
		}
		return
	}

	writeJSON(w, http.StatusCreated, listing)
}

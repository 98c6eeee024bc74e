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

// BinderHandler provides HTTP handlers for binder browsing and the current
// user's own binder.
type BinderHandler struct {
	userService    *services.UserService
	binderService  *services.BinderService
	listingService *services.ListingService
}

// NewBinderHandler constructs a handler with the provided services.
func NewBinderHandler(
	userService *services.UserService,
	binderService *services.BinderService,
	listingService *services.ListingService,
) *BinderHandler {
	return &BinderHandler{
		userService:    userService,
		binderService:  binderService,
		listingService: listingService,
	}
}

// BinderRouter registers the public binder directory routes.
func BinderRouter(
	r chi.Router,
	userService *services.UserService,
	binderService *services.BinderService,
	listingService *services.ListingService,
) {
	handler := NewBinderHandler(userService, binderService, listingService)

	r.Get("/", handler.ListBinders)
	r.Get("/{username}", handler.UserBinder)
}

// MyBinderRouter registers the authenticated owner's binder routes.
func MyBinderRouter(
	r chi.Router,
	userService *services.UserService,
	binderService *services.BinderService,
	listingService *services.ListingService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewBinderHandler(userService, binderService, listingService)

	r.With(authMiddleware).Get("/", handler.MyBinder)
	r.With(authMiddleware).Post("/cards", handler.AddBinderCard)
}

// BindersResponse is the binder directory view-model.
type BindersResponse struct {
	Users []types.BinderOwner `json:"users"`
}

// UserBinderResponse is a third-party view of one user's binder. Private
// entries are excluded.
type UserBinderResponse struct {
	User     PublicProfile         `json:"user"`
	Haves    []types.BinderEntry   `json:"haves"`
	Wants    []types.BinderEntry   `json:"wants"`
	Listings []types.ListingDetail `json:"listings"`
}

// PublicProfile is the subset of a user row shown to other users.
type PublicProfile struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	LocationCity   string `json:"location_city"`
	LocationRegion string `json:"location_region"`
	Bio            string `json:"bio"`
}

// MyBinderResponse is the owner's own binder, private entries included.
type MyBinderResponse struct {
	Haves []types.BinderEntry `json:"haves"`
	Wants []types.BinderEntry `json:"wants"`
}

type AddBinderCardRequest struct {
	CardID      int      `json:"card_id"`
	ListType    string   `json:"list_type"`
	IsPublic    *bool    `json:"is_public"`
	Condition   string   `json:"condition"`
	TargetPrice *float64 `json:"target_price"`
}

// ListBinders returns all users with their public binder stats.
func (h *BinderHandler) ListBinders(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListBinderOwners(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list binders")
		return
	}
	writeJSON(w, http.StatusOK, BindersResponse{Users: users})
}

// UserBinder returns the public view of one user's binder, looked up by
// exact username.
func (h *BinderHandler) UserBinder(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.userService.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	binder, err := h.binderService.PublicBinder(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch binder")
		return
	}

	listings, err := h.listingService.ListActiveBySeller(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch listings")
		return
	}

	writeJSON(w, http.StatusOK, UserBinderResponse{
		User: PublicProfile{
			ID:             user.ID,
			Username:       user.Username,
			LocationCity:   user.LocationCity,
			LocationRegion: user.LocationRegion,
			Bio:            user.Bio,
		},
		Haves:    binder.Haves,
		Wants:    binder.Wants,
		Listings: listings,
	})
}

// MyBinder returns the current user's complete binder.
func (h *BinderHandler) MyBinder(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	binder, err := h.binderService.OwnBinder(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch binder")
		return
	}

	writeJSON(w, http.StatusOK, MyBinderResponse{Haves: binder.Haves, Wants: binder.Wants})
}

// AddBinderCard adds a have/want entry to the current user's binder.
func (h *BinderHandler) AddBinderCard(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AddBinderCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.CardID < 1 {
		writeError(w, http.StatusBadRequest, "card_id is required")
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	entry, err := h.binderService.AddEntry(r.Context(), userID, types.UserCard{
		CardID:      req.CardID,
		ListType:    req.ListType,
		IsPublic:    isPublic,
		Condition:   req.Condition,
		TargetPrice: req.TargetPrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidListType):
			writeError(w, http.StatusBadRequest, "list_type must be have or want")
		case errors.Is(err, store.ErrDuplicate):
			writeError(w, http.StatusConflict, "card already in binder")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "card not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to add card")
		}
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

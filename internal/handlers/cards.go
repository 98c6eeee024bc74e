package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/poketrade/apiserver/internal/services"
	"github.com/poketrade/apiserver/internal/store"
	"github.com/poketrade/apiserver/types"
)

// CardHandler provides HTTP handlers for the card catalog.
type CardHandler struct {
	cardService    *services.CardService
	listingService *services.ListingService
	binderService  *services.BinderService
}

// NewCardHandler constructs a handler with the provided services.
func NewCardHandler(
	cardService *services.CardService,
	listingService *services.ListingService,
	binderService *services.BinderService,
) *CardHandler {
	return &CardHandler{
		cardService:    cardService,
		listingService: listingService,
		binderService:  binderService,
	}
}

// CardRouter registers catalog routes on the given router.
func CardRouter(
	r chi.Router,
	cardService *services.CardService,
	listingService *services.ListingService,
	binderService *services.BinderService,
) {
	handler := NewCardHandler(cardService, listingService, binderService)

	r.Get("/", handler.Catalog)
	r.Get("/{cardID}", handler.CardDetail)
}

// CatalogResponse is the card catalog view-model: the filtered cards plus
// every set for the filter control.
type CatalogResponse struct {
	Cards []types.CardSummary `json:"cards"`
	Sets  []types.Set         `json:"sets"`
}

// CardDetailResponse is the single-card view-model.
type CardDetailResponse struct {
	Card     types.CardWithSet     `json:"card"`
	Listings []types.ListingDetail `json:"listings"`
	Haves    []string              `json:"haves"`
	Wants    []string              `json:"wants"`
}

// Catalog lists cards, optionally narrowed by a case-insensitive name
// search and an exact set filter. Filters compose conjunctively.
func (h *CardHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	filter := store.CatalogFilter{
		Name: strings.TrimSpace(r.URL.Query().Get("search")),
	}
	if rawSet := strings.TrimSpace(r.URL.Query().Get("set")); rawSet != "" {
		setID, err := strconv.Atoi(rawSet)
		if err != nil || setID < 1 {
			writeError(w, http.StatusBadRequest, "invalid set filter")
			return
		}
		filter.SetID = setID
	}

	cards, err := h.cardService.Search(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list cards")
		return
	}

	sets, err := h.cardService.ListSets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list sets")
		return
	}

	writeJSON(w, http.StatusOK, CatalogResponse{Cards: cards, Sets: sets})
}

// CardDetail returns a card with its active listings (cheapest first) and
// the usernames publicly having or wanting it.
func (h *CardHandler) CardDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "cardID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	card, err := h.cardService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "card not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch card")
		return
	}

	listings, err := h.listingService.ListActiveByCard(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch listings")
		return
	}

	haves, err := h.binderService.ListHolders(r.Context(), id, types.ListTypeHave)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch collectors")
		return
	}

	wants, err := h.binderService.ListHolders(r.Context(), id, types.ListTypeWant)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch collectors")
		return
	}

	writeJSON(w, http.StatusOK, CardDetailResponse{
		Card:     card,
		Listings: listings,
		Haves:    haves,
		Wants:    wants,
	})
}

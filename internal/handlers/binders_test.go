package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/poketrade/apiserver/internal/services"
	"github.com/poketrade/apiserver/internal/store"
	"github.com/poketrade/apiserver/types"
)

type fakeBinderRepo struct {
	entries []types.UserCard
	nextID  int
}

func newFakeBinderRepo() *fakeBinderRepo {
	return &fakeBinderRepo{nextID: 1}
}

func (r *fakeBinderRepo) AddEntry(ctx context.Context, entry types.UserCard) (types.UserCard, error) {
	for _, existing := range r.entries {
		if existing.UserID == entry.UserID && existing.CardID == entry.CardID && existing.ListType == entry.ListType {
			return types.UserCard{}, store.ErrDuplicate
		}
	}
	entry.ID = r.nextID
	r.nextID++
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *fakeBinderRepo) ListEntries(ctx context.Context, userID int, listType string, publicOnly bool) ([]types.BinderEntry, error) {
	var entries []types.BinderEntry
	for _, entry := range r.entries {
		if entry.UserID != userID || entry.ListType != listType {
			continue
		}
		if publicOnly && !entry.IsPublic {
			continue
		}
		entries = append(entries, types.BinderEntry{UserCard: entry})
	}
	return entries, nil
}

func (r *fakeBinderRepo) ListHolders(ctx context.Context, cardID int, listType string) ([]string, error) {
	return nil, nil
}

func newBinderRouter(users *fakeUserRepo, binders *fakeBinderRepo) *chi.Mux {
	userService := services.NewUserService(users)
	binderService := services.NewBinderService(binders)
	listingService := services.NewListingService(&stubListingRepo{})
	authMiddleware := RequireAuth(testJWTSecret)

	router := chi.NewRouter()
	router.Route("/binders", func(r chi.Router) {
		BinderRouter(r, userService, binderService, listingService)
	})
	router.Route("/binder", func(r chi.Router) {
		MyBinderRouter(r, userService, binderService, listingService, authMiddleware)
	})
	return router
}

func registerUser(t *testing.T, users *fakeUserRepo, username string) (types.User, string) {
	t.Helper()
	user, err := users.Create(context.Background(), types.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := issueToken(user.ID, []byte(testJWTSecret), defaultTokenTTL)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return user, token
}

func TestMyBinderRequiresAuth(t *testing.T) {
	router := newBinderRouter(newFakeUserRepo(), newFakeBinderRepo())

	rec := doJSON(t, router, http.MethodGet, "/binder", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPrivateWantHiddenFromPublicBinder(t *testing.T) {
	users := newFakeUserRepo()
	binders := newFakeBinderRepo()
	router := newBinderRouter(users, binders)

	_, token := registerUser(t, users, "ash")

	rec := doJSON(t, router, http.MethodPost, "/binder/cards",
		`{"card_id":42,"list_type":"want","is_public":false}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add card: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/binder", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("my binder: expected 200, got %d", rec.Code)
	}
	var own MyBinderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &own); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(own.Wants) != 1 {
		t.Fatalf("owner must see the private want, got %d wants", len(own.Wants))
	}

	rec = doJSON(t, router, http.MethodGet, "/binders/ash", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("public binder: expected 200, got %d", rec.Code)
	}
	var public UserBinderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &public); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(public.Wants) != 0 {
		t.Fatalf("private want must be hidden from other viewers, got %d wants", len(public.Wants))
	}
}

func TestAddBinderCardConflict(t *testing.T) {
	users := newFakeUserRepo()
	router := newBinderRouter(users, newFakeBinderRepo())

	_, token := registerUser(t, users, "ash")

	body := `{"card_id":7,"list_type":"have"}`
	rec := doJSON(t, router, http.MethodPost, "/binder/cards", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first add: expected 201, got %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPost, "/binder/cards", body, token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second add: expected 409, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/binder/cards",
		`{"card_id":7,"list_type":"trade"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad list type: expected 400, got %d", rec.Code)
	}
}

func TestUserBinderNotFound(t *testing.T) {
	router := newBinderRouter(newFakeUserRepo(), newFakeBinderRepo())

	rec := doJSON(t, router, http.MethodGet, "/binders/ghost", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/poketrade/apiserver/internal/services"
	"github.com/poketrade/apiserver/internal/store"
	"github.com/poketrade/apiserver/types"
)

const testJWTSecret = "test-secret"

type fakeUserRepo struct {
	users  []types.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (types.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return types.User{}, store.ErrDuplicate
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users = append(r.users, user)
	return user, nil
}

func (r *fakeUserRepo) ListBinderOwners(ctx context.Context) ([]types.BinderOwner, error) {
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int, error) {
	return len(r.users), nil
}

func newAuthRouter() (*chi.Mux, *fakeUserRepo) {
	repo := newFakeUserRepo()
	router := chi.NewRouter()
	router.Route("/auth", func(r chi.Router) {
		AuthRouter(r, services.NewUserService(repo), testJWTSecret)
	})
	return router, repo
}

func doJSON(t *testing.T, router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterLoginMe(t *testing.T) {
	router, _ := newAuthRouter()

	rec := doJSON(t, router, http.MethodPost, "/auth/register",
		`{"username":"ash","email":"ash@example.com","password":"pikachu123"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var registered AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &registered); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if registered.Token == "" {
		t.Fatal("expected a token")
	}
	if strings.Contains(rec.Body.String(), "password_hash") {
		t.Fatal("password hash must never appear in responses")
	}

	rec = doJSON(t, router, http.MethodPost, "/auth/login",
		`{"username":"ash","password":"pikachu123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var loggedIn AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &loggedIn); err != nil {
		t.Fatalf("decode login response: %v", err)
	}

	rec = doJSON(t, router, http.MethodGet, "/auth/me", "", loggedIn.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var me types.User
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode me response: %v", err)
	}
	if me.Username != "ash" {
		t.Fatalf("expected ash, got %q", me.Username)
	}
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	router, _ := newAuthRouter()

	rec := doJSON(t, router, http.MethodPost, "/auth/register",
		`{"username":"ash","email":"ash@example.com","password":"pikachu123"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", rec.Code)
	}

	wrongPassword := doJSON(t, router, http.MethodPost, "/auth/login",
		`{"username":"ash","password":"wrong"}`, "")
	unknownUser := doJSON(t, router, http.MethodPost, "/auth/login",
		`{"username":"gary","password":"pikachu123"}`, "")

	if wrongPassword.Code != http.StatusUnauthorized || unknownUser.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPassword.Code, unknownUser.Code)
	}
	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Fatal("wrong password and unknown username must be indistinguishable")
	}
}

func TestRegisterConflict(t *testing.T) {
	router, repo := newAuthRouter()

	rec := doJSON(t, router, http.MethodPost, "/auth/register",
		`{"username":"ash","email":"ash@example.com","password":"pikachu123"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/auth/register",
		`{"username":"ash","email":"different@example.com","password":"pikachu123"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate username: expected 409, got %d", rec.Code)
	}
	if len(repo.users) != 1 {
		t.Fatalf("conflict must not create a row, have %d users", len(repo.users))
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	router, _ := newAuthRouter()

	for i := 0; i < 2; i++ {
		rec := doJSON(t, router, http.MethodPost, "/auth/logout", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("logout #%d: expected 200, got %d", i+1, rec.Code)
		}
	}
}

func TestMeRequiresToken(t *testing.T) {
	router, _ := newAuthRouter()

	rec := doJSON(t, router, http.MethodGet, "/auth/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/auth/me", "", "not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", rec.Code)
	}
}

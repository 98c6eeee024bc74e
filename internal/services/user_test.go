package services

import (
	"context"
	"errors"
	"testing"

	"github.com/poketrade/apiserver/internal/store"
	"github.com/poketrade/apiserver/types"
)

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

func TestRegisterThenAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterParams{
		Username: "ash",
		Email:    "ash@example.com",
		Password: "pikachu123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected assigned user id")
	}
	if user.PasswordHash == "pikachu123" || user.PasswordHash == "" {
		t.Fatal("password must be stored as a hash, never plaintext")
	}

	got, err := svc.Authenticate(ctx, "ash", "pikachu123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user id %d, got %d", user.ID, got.ID)
	}
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterParams{
		Username: "ash",
		Email:    "ash@example.com",
		Password: "pikachu123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPassword := svc.Authenticate(ctx, "ash", "wrong")
	_, unknownUser := svc.Authenticate(ctx, "nobody", "pikachu123")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownUser, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Fatal("failure modes must be indistinguishable to callers")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterParams{
		Username: "ash",
		Email:    "ash@example.com",
		Password: "pikachu123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name     string
		username string
		email    string
	}{
		{name: "same username different email", username: "ash", email: "other@example.com"},
		{name: "same email different username", username: "misty", email: "ash@example.com"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, RegisterParams{
				Username: tc.username,
				Email:    tc.email,
				Password: "whatever1",
			})
			if !errors.Is(err, ErrUsernameOrEmailTaken) {
				t.Fatalf("expected ErrUsernameOrEmailTaken, got %v", err)
			}
			if len(repo.users) != 1 {
				t.Fatalf("expected no new row, have %d users", len(repo.users))
			}
		})
	}
}

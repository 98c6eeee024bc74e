package services

import (
	"context"
	"errors"

	"github.com/poketrade/apiserver/internal/store"
	"github.com/poketrade/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// ErrUsernameOrEmailTaken is returned by Register when another account
// already holds the requested username or email.
var ErrUsernameOrEmailTaken = errors.New("username or email already taken")

// ErrInvalidCredentials is returned by Authenticate for both an unknown
// username and a wrong password. The two cases are indistinguishable to
// callers so error messages cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	ListBinderOwners(ctx context.Context) ([]types.BinderOwner, error)
	Count(ctx context.Context) (int, error)
}

// UserService encapsulates account use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// RegisterParams carries the fields collected at sign-up.
type RegisterParams struct {
	Username       string
	Email          string
	Password       string
	LocationCity   string
	LocationRegion string
	Bio            string
}

// Register creates an account with a bcrypt hash of the password. The
// plaintext is never stored. Uniqueness of username and email is enforced by
// the storage constraints, so there is no check-then-insert window.
func (s *UserService) Register(ctx context.Context, params RegisterParams) (types.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.repo.Create(ctx, types.User{
		Username:       params.Username,
		Email:          params.Email,
		PasswordHash:   string(hashed),
		LocationCity:   params.LocationCity,
		LocationRegion: params.LocationRegion,
		Bio:            params.Bio,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return types.User{}, ErrUsernameOrEmailTaken
		}
		return types.User{}, err
	}
	return user, nil
}

// Authenticate verifies a username/password pair and returns the matching
// user. Lookup is by exact username match.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (types.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (types.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// ListBinderOwners returns all users with their public binder stats.
func (s *UserService) ListBinderOwners(ctx context.Context) ([]types.BinderOwner, error) {
	return s.repo.ListBinderOwners(ctx)
}

func (s *UserService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

package services

import (
	"context"
	"errors"

	"github.com/poketrade/apiserver/types"
)

// ErrInvalidListType is returned when a binder entry names a list type other
// than "have" or "want".
var ErrInvalidListType = errors.New("invalid list type")

// BinderRepository defines persistence operations for binder entries.
type BinderRepository interface {
	AddEntry(ctx context.Context, entry types.UserCard) (types.UserCard, error)
	ListEntries(ctx context.Context, userID int, listType string, publicOnly bool) ([]types.BinderEntry, error)
	ListHolders(ctx context.Context, cardID int, listType string) ([]string, error)
}

// BinderService encapsulates have/want binder use-cases.
type BinderService struct {
	repo BinderRepository
}

func NewBinderService(repo BinderRepository) *BinderService {
	return &BinderService{repo: repo}
}

// Binder is one user's haves and wants as shown on a binder page.
type Binder struct {
	Haves []types.BinderEntry `json:"haves"`
	Wants []types.BinderEntry `json:"wants"`
}

// AddEntry records a have/want entry for the owner.
func (s *BinderService) AddEntry(ctx context.Context, ownerID int, entry types.UserCard) (types.UserCard, error) {
	if entry.ListType != types.ListTypeHave && entry.ListType != types.ListTypeWant {
		return types.UserCard{}, ErrInvalidListType
	}
	entry.UserID = ownerID
	return s.repo.AddEntry(ctx, entry)
}

// PublicBinder assembles the binder another viewer is allowed to see:
// private entries are excluded.
func (s *BinderService) PublicBinder(ctx context.Context, ownerID int) (Binder, error) {
	return s.binder(ctx, ownerID, true)
}

// OwnBinder assembles the owner's complete binder, private entries included.
func (s *BinderService) OwnBinder(ctx context.Context, ownerID int) (Binder, error) {
	return s.binder(ctx, ownerID, false)
}

func (s *BinderService) binder(ctx context.Context, ownerID int, publicOnly bool) (Binder, error) {
	haves, err := s.repo.ListEntries(ctx, ownerID, types.ListTypeHave, publicOnly)
	if err != nil {
		return Binder{}, err
	}
	wants, err := s.repo.ListEntries(ctx, ownerID, types.ListTypeWant, publicOnly)
	if err != nil {
		return Binder{}, err
	}
	return Binder{Haves: haves, Wants: wants}, nil
}

// ListHolders returns usernames publicly having or wanting a card.
func (s *BinderService) ListHolders(ctx context.Context, cardID int, listType string) ([]string, error) {
	return s.repo.ListHolders(ctx, cardID, listType)
}

package services

import (
	"context"
	"errors"
	"testing"

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

func TestPrivateEntryVisibleOnlyToOwner(t *testing.T) {
	repo := newFakeBinderRepo()
	svc := NewBinderService(repo)
	ctx := context.Background()

	if _, err := svc.AddEntry(ctx, 7, types.UserCard{
		CardID:   42,
		ListType: types.ListTypeWant,
		IsPublic: false,
	}); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	own, err := svc.OwnBinder(ctx, 7)
	if err != nil {
		t.Fatalf("own binder: %v", err)
	}
	if len(own.Wants) != 1 {
		t.Fatalf("owner must see the private want, got %d wants", len(own.Wants))
	}

	public, err := svc.PublicBinder(ctx, 7)
	if err != nil {
		t.Fatalf("public binder: %v", err)
	}
	if len(public.Wants) != 0 {
		t.Fatalf("private want must be hidden from other viewers, got %d wants", len(public.Wants))
	}
}

func TestAddEntryValidatesListType(t *testing.T) {
	svc := NewBinderService(newFakeBinderRepo())

	_, err := svc.AddEntry(context.Background(), 1, types.UserCard{CardID: 1, ListType: "trade"})
	if !errors.Is(err, ErrInvalidListType) {
		t.Fatalf("expected ErrInvalidListType, got %v", err)
	}
}

func TestAddEntryDuplicate(t *testing.T) {
	repo := newFakeBinderRepo()
	svc := NewBinderService(repo)
	ctx := context.Background()

	entry := types.UserCard{CardID: 5, ListType: types.ListTypeHave, IsPublic: true}
	if _, err := svc.AddEntry(ctx, 1, entry); err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if _, err := svc.AddEntry(ctx, 1, entry); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// A second list type for the same card is a distinct entry.
	if _, err := svc.AddEntry(ctx, 1, types.UserCard{CardID: 5, ListType: types.ListTypeWant}); err != nil {
		t.Fatalf("want entry for same card: %v", err)
	}
}

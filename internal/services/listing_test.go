package services

import (
	"context"
	"errors"
	"testing"

	"github.com/poketrade/apiserver/types"
)

type fakeListingRepo struct {
	created []types.Listing
}

func (r *fakeListingRepo) Create(ctx context.Context, listing types.Listing) (types.Listing, error) {
	listing.ID = len(r.created) + 1
	r.created = append(r.created, listing)
	return listing, nil
}

func (r *fakeListingRepo) ListActive(ctx context.Context, limit int) ([]types.ListingDetail, error) {
	return nil, nil
}

func (r *fakeListingRepo) ListActiveByCard(ctx context.Context, cardID int) ([]types.ListingDetail, error) {
	return nil, nil
}

func (r *fakeListingRepo) ListActiveBySeller(ctx context.Context, userID int) ([]types.ListingDetail, error) {
	return nil, nil
}

func (r *fakeListingRepo) CountActive(ctx context.Context) (int, error) {
	return len(r.created), nil
}

func TestCreateListingAssignsSellerAndStatus(t *testing.T) {
	repo := &fakeListingRepo{}
	svc := NewListingService(repo)

	listing, err := svc.Create(context.Background(), 9, types.Listing{
		CardID: 3,
		Price:  12.50,
		// A caller-supplied status must be ignored.
		Status: types.ListingStatusSold,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if listing.UserID != 9 {
		t.Fatalf("expected seller id 9, got %d", listing.UserID)
	}
	if listing.Status != types.ListingStatusActive {
		t.Fatalf("new listings must be active, got %q", listing.Status)
	}
}

func TestCreateListingValidation(t *testing.T) {
	svc := NewListingService(&fakeListingRepo{})

	tests := []struct {
		name    string
		listing types.Listing
	}{
		{name: "missing card", listing: types.Listing{Price: 5}},
		{name: "zero price", listing: types.Listing{CardID: 1}},
		{name: "negative price", listing: types.Listing{CardID: 1, Price: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), 1, tc.listing); !errors.Is(err, ErrInvalidListing) {
				t.Fatalf("expected ErrInvalidListing, got %v", err)
			}
		})
	}
}

package services

import (
	"context"
	"errors"

	"github.com/poketrade/apiserver/types"
)

// ErrInvalidListing is returned when a listing request fails validation.
var ErrInvalidListing = errors.New("invalid listing")

// ListingRepository defines persistence operations for listings.
type ListingRepository interface {
	Create(ctx context.Context, listing types.Listing) (types.Listing, error)
	ListActive(ctx context.Context, limit int) ([]types.ListingDetail, error)
	ListActiveByCard(ctx context.Context, cardID int) ([]types.ListingDetail, error)
	ListActiveBySeller(ctx context.Context, userID int) ([]types.ListingDetail, error)
	CountActive(ctx context.Context) (int, error)
}

// ListingService encapsulates marketplace listing use-cases.
type ListingService struct {
	repo ListingRepository
}

func NewListingService(repo ListingRepository) *ListingService {
	return &ListingService{repo: repo}
}

// Create lists a card for sale on behalf of the seller. New listings are
// always active.
func (s *ListingService) Create(ctx context.Context, sellerID int, listing types.Listing) (types.Listing, error) {
	if listing.CardID < 1 || listing.Price <= 0 {
		return types.Listing{}, ErrInvalidListing
	}
	listing.UserID = sellerID
	listing.Status = types.ListingStatusActive
	return s.repo.Create(ctx, listing)
}

func (s *ListingService) ListActive(ctx context.Context, limit int) ([]types.ListingDetail, error) {
	return s.repo.ListActive(ctx, limit)
}

func (s *ListingService) ListActiveByCard(ctx context.Context, cardID int) ([]types.ListingDetail, error) {
	return s.repo.ListActiveByCard(ctx, cardID)
}

func (s *ListingService) ListActiveBySeller(ctx context.Context, userID int) ([]types.ListingDetail, error) {
	return s.repo.ListActiveBySeller(ctx, userID)
}

func (s *ListingService) CountActive(ctx context.Context) (int, error) {
	return s.repo.CountActive(ctx)
}

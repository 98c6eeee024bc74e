package services

import (
	"context"

	"github.com/poketrade/apiserver/internal/store"
	"github.com/poketrade/apiserver/types"
)

// CardRepository defines persistence operations for sets and cards.
type CardRepository interface {
	Get(ctx context.Context, id int) (types.CardWithSet, error)
	Search(ctx context.Context, filter store.CatalogFilter) ([]types.CardSummary, error)
	ListSets(ctx context.Context) ([]types.Set, error)
	GetSetByName(ctx context.Context, name string) (types.Set, error)
	CreateSet(ctx context.Context, set types.Set) (types.Set, error)
	CreateCard(ctx context.Context, card types.Card) (types.Card, error)
	Count(ctx context.Context) (int, error)
}

// CardService encapsulates catalog use-cases.
type CardService struct {
	repo CardRepository
}

func NewCardService(repo CardRepository) *CardService {
	return &CardService{repo: repo}
}

// Search returns catalog rows matching the filter along with floor prices
// and have/want counts.
func (s *CardService) Search(ctx context.Context, filter store.CatalogFilter) ([]types.CardSummary, error) {
	return s.repo.Search(ctx, filter)
}

func (s *CardService) Get(ctx context.Context, id int) (types.CardWithSet, error) {
	return s.repo.Get(ctx, id)
}

func (s *CardService) ListSets(ctx context.Context) ([]types.Set, error) {
	return s.repo.ListSets(ctx)
}

func (s *CardService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

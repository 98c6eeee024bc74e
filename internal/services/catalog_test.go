package services

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/poketrade/apiserver/internal/storage"
	"github.com/poketrade/apiserver/internal/store"
	"github.com/poketrade/apiserver/types"
)

type memoryStorage struct {
	objects map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (m *memoryStorage) EnsureBucket(ctx context.Context) error { return nil }

func (m *memoryStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memoryStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.objects[key])), nil
}

func (m *memoryStorage) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memoryStorage) Bucket() string { return "test" }

type fakeCatalogRepo struct {
	sets  []types.Set
	cards []types.Card
}

func (r *fakeCatalogRepo) Get(ctx context.Context, id int) (types.CardWithSet, error) {
	return types.CardWithSet{}, store.ErrNotFound
}

func (r *fakeCatalogRepo) Search(ctx context.Context, filter store.CatalogFilter) ([]types.CardSummary, error) {
	return nil, nil
}

func (r *fakeCatalogRepo) ListSets(ctx context.Context) ([]types.Set, error) {
	return r.sets, nil
}

func (r *fakeCatalogRepo) GetSetByName(ctx context.Context, name string) (types.Set, error) {
	for _, set := range r.sets {
		if set.Name == name {
			return set, nil
		}
	}
	return types.Set{}, store.ErrNotFound
}

func (r *fakeCatalogRepo) CreateSet(ctx context.Context, set types.Set) (types.Set, error) {
	set.ID = len(r.sets) + 1
	r.sets = append(r.sets, set)
	return set, nil
}

func (r *fakeCatalogRepo) CreateCard(ctx context.Context, card types.Card) (types.Card, error) {
	card.ID = len(r.cards) + 1
	r.cards = append(r.cards, card)
	return card, nil
}

func (r *fakeCatalogRepo) Count(ctx context.Context) (int, error) {
	return len(r.cards), nil
}

func TestCatalogImport(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "charizard.png")
	if err := os.WriteFile(imagePath, []byte("png-bytes"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}

	repo := &fakeCatalogRepo{}
	backend := newMemoryStorage()
	importer := NewCatalogImporter(repo, storage.NewStorage(backend))

	catalog := Catalog{Sets: []CatalogSet{{
		Name:   "Base Set",
		Series: "Original",
		Cards: []CatalogCard{
			{Name: "Charizard", CardNumber: "4/102", Rarity: "Holo Rare", Image: "charizard.png"},
			{Name: "Blastoise", CardNumber: "2/102", Rarity: "Holo Rare"},
		},
	}}}

	result, err := importer.Import(context.Background(), catalog, dir)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.SetsCreated != 1 || result.CardsCreated != 2 || result.ImagesUploaded != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	wantKey := "cards/1/charizard.png"
	if _, ok := backend.objects[wantKey]; !ok {
		t.Fatalf("expected uploaded object %q, have %v", wantKey, backend.objects)
	}
	if repo.cards[0].ImageURL != wantKey {
		t.Fatalf("expected image url %q, got %q", wantKey, repo.cards[0].ImageURL)
	}
	if repo.cards[1].ImageURL != "" {
		t.Fatalf("card without image must keep an empty url, got %q", repo.cards[1].ImageURL)
	}

	// Re-running the same catalog must be a no-op for existing sets.
	again, err := importer.Import(context.Background(), catalog, dir)
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if again.SetsCreated != 0 || again.SetsSkipped != 1 || again.CardsCreated != 0 {
		t.Fatalf("expected idempotent re-run, got %+v", again)
	}
}

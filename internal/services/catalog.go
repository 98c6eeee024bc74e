package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/poketrade/apiserver/internal/storage"
	"github.com/poketrade/apiserver/internal/store"
	"github.com/poketrade/apiserver/types"
)

// Catalog is the import file format for bulk-loading reference data.
type Catalog struct {
	Sets []CatalogSet `json:"sets"`
}

type CatalogSet struct {
	Name   string        `json:"name"`
	Series string        `json:"series"`
	Cards  []CatalogCard `json:"cards"`
}

type CatalogCard struct {
	Name       string `json:"name"`
	CardNumber string `json:"card_number"`
	Rarity     string `json:"rarity"`

	// Image is a path to the card image, relative to the catalog file.
	// Optional; when set and an object store is configured, the image is
	// uploaded and its object key recorded as the card's image URL.
	Image string `json:"image"`
}

// ImportResult summarizes one import run.
type ImportResult struct {
	SetsCreated    int
	SetsSkipped    int
	CardsCreated   int
	ImagesUploaded int
}

// CatalogImporter bulk-loads sets and cards, uploading card images to the
// configured object store.
type CatalogImporter struct {
	cards   CardRepository
	storage *storage.Storage
}

// NewCatalogImporter constructs an importer. storage may be nil, in which
// case image paths are ignored.
func NewCatalogImporter(cards CardRepository, storage *storage.Storage) *CatalogImporter {
	return &CatalogImporter{cards: cards, storage: storage}
}

// Import loads the catalog. Sets already present (exact name match) are
// skipped wholesale, making repeat runs idempotent.
func (i *CatalogImporter) Import(ctx context.Context, catalog Catalog, baseDir string) (ImportResult, error) {
	var result ImportResult

	if i.storage != nil {
		if err := i.storage.EnsureBucket(ctx); err != nil {
			return result, fmt.Errorf("ensure bucket: %w", err)
		}
	}

	for _, catalogSet := range catalog.Sets {
		if catalogSet.Name == "" {
			return result, errors.New("set name is required")
		}

		if _, err := i.cards.GetSetByName(ctx, catalogSet.Name); err == nil {
			result.SetsSkipped++
			continue
		} else if !errors.Is(err, store.ErrNotFound) {
			return result, err
		}

		set, err := i.cards.CreateSet(ctx, types.Set{
			Name:   catalogSet.Name,
			Series: catalogSet.Series,
		})
		if err != nil {
			return result, fmt.Errorf("create set %q: %w", catalogSet.Name, err)
		}
		result.SetsCreated++

		for _, catalogCard := range catalogSet.Cards {
			if catalogCard.Name == "" {
				return result, fmt.Errorf("set %q: card name is required", catalogSet.Name)
			}

			imageURL, err := i.uploadImage(ctx, set.ID, catalogCard, baseDir)
			if err != nil {
				return result, err
			}
			if imageURL != "" {
				result.ImagesUploaded++
			}

			if _, err := i.cards.CreateCard(ctx, types.Card{
				SetID:      set.ID,
				Name:       catalogCard.Name,
				CardNumber: catalogCard.CardNumber,
				Rarity:     catalogCard.Rarity,
				ImageURL:   imageURL,
			}); err != nil {
				return result, fmt.Errorf("create card %q: %w", catalogCard.Name, err)
			}
			result.CardsCreated++
		}
	}

	return result, nil
}

func (i *CatalogImporter) uploadImage(ctx context.Context, setID int, card CatalogCard, baseDir string) (string, error) {
	if card.Image == "" || i.storage == nil {
		return "", nil
	}

	imagePath := card.Image
	if !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(baseDir, imagePath)
	}

	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("open image for %q: %w", card.Name, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("stat image for %q: %w", card.Name, err)
	}

	key := fmt.Sprintf("cards/%d/%s", setID, filepath.Base(imagePath))
	contentType := mime.TypeByExtension(filepath.Ext(imagePath))
	if err := i.storage.Put(ctx, key, file, info.Size(), contentType); err != nil {
		return "", fmt.Errorf("upload image for %q: %w", card.Name, err)
	}
	return key, nil
}

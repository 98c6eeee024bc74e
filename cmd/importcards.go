/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/poketrade/apiserver/config"
	"github.com/poketrade/apiserver/internal/db"
	"github.com/poketrade/apiserver/internal/services"
	"github.com/poketrade/apiserver/internal/storage"
	"github.com/poketrade/apiserver/internal/store"
	"github.com/spf13/cobra"
)

var importCardsFile string

// importCardsCmd represents the import-cards command.
var importCardsCmd = &cobra.Command{
	Use:   "import-cards",
	Short: "Bulk-import sets and cards from a JSON catalog file",
	Long: `Bulk-import sets and cards from a JSON catalog file. Card images
referenced by the catalog are uploaded to the configured object store
(STORAGE_BACKEND=minio or gcs). Sets already present are skipped, so the
command is safe to re-run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		ctx := cmd.Context()

		raw, err := os.ReadFile(importCardsFile)
		if err != nil {
			return fmt.Errorf("read catalog: %w", err)
		}
		var catalog services.Catalog
		if err := json.Unmarshal(raw, &catalog); err != nil {
			return fmt.Errorf("parse catalog: %w", err)
		}

		dbConn, err := db.Open(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer dbConn.Close()

		imageStore, err := storage.NewFromConfig(ctx, cfg.Storage)
		if err != nil {
			return fmt.Errorf("init storage: %w", err)
		}

		importer := services.NewCatalogImporter(store.NewCardRepository(dbConn), imageStore)
		result, err := importer.Import(ctx, catalog, filepath.Dir(importCardsFile))
		if err != nil {
			return err
		}

		fmt.Printf("sets created: %d, sets skipped: %d, cards created: %d, images uploaded: %d\n",
			result.SetsCreated, result.SetsSkipped, result.CardsCreated, result.ImagesUploaded)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCardsCmd)
	importCardsCmd.Flags().StringVarP(&importCardsFile, "file", "f", "catalog.json", "path to the catalog JSON file")
}

package repository

import (
	"opsCommandCenter/internal/db"
	"opsCommandCenter/models"
)

// NewAssetRepository builds the data-catalog repository. Assets are keyed by
// asset_name, ordered newest-created first; steward is the mutable field.
func NewAssetRepository(store *db.Store) *Repository[models.DataAsset] {
	return New(store, Descriptor[models.DataAsset]{
		Table:        "data_assets",
		KeyColumn:    "asset_name",
		OrderColumn:  "created_on",
		StatusColumn: "steward",
		Columns:      []string{"asset_name", "steward", "origin", "size_mb", "rows_est", "created_on"},
		Key:          func(a *models.DataAsset) string { return a.AssetName },
		Bind: func(a *models.DataAsset) []any {
			return []any{a.AssetName, a.Steward, a.Origin, a.SizeMB, a.RowsEst, a.CreatedOn}
		},
		Scan: func(s scanner) (*models.DataAsset, error) {
			var a models.DataAsset
			if err := s.Scan(&a.ID, &a.AssetName, &a.Steward, &a.Origin, &a.SizeMB, &a.RowsEst, &a.CreatedOn); err != nil {
				return nil, err
			}
			return &a, nil
		},
		SetID: func(a *models.DataAsset, id int64) { a.ID = id },
	})
}

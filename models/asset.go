package models

// DataAsset represents a registered dataset in the data catalog.
// AssetName is the unique identifier. SizeMB and RowsEst must be
// non-negative; callers validate before insert.
type DataAsset struct {
	ID        int64   `db:"id" json:"id"`
	AssetName string  `db:"asset_name" json:"asset_name"`
	Steward   string  `db:"steward" json:"steward"`
	Origin    string  `db:"origin" json:"origin"`
	SizeMB    float64 `db:"size_mb" json:"size_mb"`
	RowsEst   int64   `db:"rows_est" json:"rows_est"`
	CreatedOn string  `db:"created_on" json:"created_on"`
}

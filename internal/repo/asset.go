package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/solarops/soltrack/internal/models"
)

var pgDialect = goqu.Dialect("postgres")

const assetColumns = `id, serial_number, asset_type, manufacturer, model, status, location, install_date, warranty_expiry, notes, created_at, updated_at`

// AssetRepo persists asset rows. Construct with a *sql.DB for standalone use
// or a *sql.Tx to take part in a caller-owned transaction.
type AssetRepo struct {
	db DBTX
}

func NewAssetRepo(db DBTX) *AssetRepo {
	return &AssetRepo{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAsset(s scanner) (models.Asset, error) {
	var a models.Asset
	err := s.Scan(
		&a.ID,
		&a.SerialNumber,
		&a.AssetType,
		&a.Manufacturer,
		&a.Model,
		&a.Status,
		&a.Location,
		&a.InstallDate,
		&a.WarrantyExpiry,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// Create inserts a new asset row. Timestamps come from the caller so that
// created_at == updated_at holds exactly on create.
func (r *AssetRepo) Create(ctx context.Context, a models.Asset) (models.Asset, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO assets (serial_number, asset_type, manufacturer, model, status, location, install_date, warranty_expiry, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		a.SerialNumber, a.AssetType, a.Manufacturer, a.Model, a.Status,
		a.Location, a.InstallDate, a.WarrantyExpiry, a.Notes, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	return a, err
}

// GetByID returns one asset. sql.ErrNoRows passes through for missing rows.
func (r *AssetRepo) GetByID(ctx context.Context, id int) (models.Asset, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
	return scanAsset(row)
}

// GetForUpdate locks the row for the duration of the surrounding transaction.
// Only meaningful when the repo was constructed with a *sql.Tx.
func (r *AssetRepo) GetForUpdate(ctx context.Context, id int) (models.Asset, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = $1 FOR UPDATE`, id)
	return scanAsset(row)
}

// Update overwrites all mutable fields of an existing asset.
func (r *AssetRepo) Update(ctx context.Context, a models.Asset) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE assets
		 SET serial_number = $1, asset_type = $2, manufacturer = $3, model = $4,
		     status = $5, location = $6, install_date = $7, warranty_expiry = $8,
		     notes = $9, updated_at = $10
		 WHERE id = $11`,
		a.SerialNumber, a.AssetType, a.Manufacturer, a.Model, a.Status,
		a.Location, a.InstallDate, a.WarrantyExpiry, a.Notes, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SearchParams narrows a listing. Search matches serial number, manufacturer
// and model (case-insensitive substring); Status filters on an exact status.
type SearchParams struct {
	Search string
	Status string
	Limit  int
	Offset int
}

// Search returns a page of assets plus the total match count. The query is
// built dynamically since search and status are both optional.
func (r *AssetRepo) Search(ctx context.Context, p SearchParams) ([]models.Asset, int, error) {
	where := make([]goqu.Expression, 0, 2)
	if p.Search != "" {
		pat := "%" + p.Search + "%"
		where = append(where, goqu.Or(
			goqu.C("serial_number").ILike(pat),
			goqu.C("manufacturer").ILike(pat),
			goqu.C("model").ILike(pat),
		))
	}
	if p.Status != "" {
		where = append(where, goqu.C("status").Eq(p.Status))
	}

	listSQL, listArgs, err := pgDialect.From("assets").
		Select(
			"id", "serial_number", "asset_type", "manufacturer", "model",
			"status", "location", "install_date", "warranty_expiry", "notes",
			"created_at", "updated_at",
		).
		Where(where...).
		Order(goqu.C("id").Asc()).
		Limit(uint(p.Limit)).
		Offset(uint(p.Offset)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, 0, err
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countSQL, countArgs, err := pgDialect.From("assets").
		Select(goqu.COUNT(goqu.Star())).
		Where(where...).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return assets, total, nil
}

// ListAll returns every asset ordered by id. Used by the export adapter.
func (r *AssetRepo) ListAll(ctx context.Context) ([]models.Asset, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+assetColumns+` FROM assets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// RecentlyUpdated returns the most recently touched assets, newest first.
func (r *AssetRepo) RecentlyUpdated(ctx context.Context, limit int) ([]models.Asset, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+assetColumns+` FROM assets ORDER BY updated_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// CountByStatus returns asset counts grouped by status.
func (r *AssetRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM assets GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// ListWarrantyExpiring returns assets whose warranty expires on or before the
// cutoff, soonest first. Assets without a warranty date are excluded.
func (r *AssetRepo) ListWarrantyExpiring(ctx context.Context, cutoff time.Time) ([]models.Asset, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+assetColumns+` FROM assets
		 WHERE warranty_expiry IS NOT NULL AND warranty_expiry <= $1
		 ORDER BY warranty_expiry ASC`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

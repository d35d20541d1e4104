package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/solarops/soltrack/internal/models"
)

func assetRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "serial_number", "asset_type", "manufacturer", "model", "status",
		"location", "install_date", "warranty_expiry", "notes", "created_at", "updated_at",
	})
}

func TestAssetRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO assets \(serial_number, asset_type, manufacturer, model, status, location, install_date, warranty_expiry, notes, created_at, updated_at\)`).
		WithArgs("SN-100", "Solar Panel", "Acme", "AX-1", "In Service", "Roof A", nil, nil, "", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	repo := NewAssetRepo(db)
	asset, err := repo.Create(context.Background(), models.Asset{
		SerialNumber: "SN-100",
		AssetType:    "Solar Panel",
		Manufacturer: "Acme",
		Model:        "AX-1",
		Status:       "In Service",
		Location:     "Roof A",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if asset.ID != 42 || asset.SerialNumber != "SN-100" {
		t.Errorf("unexpected asset: %+v", asset)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM assets WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(assetRows().
			AddRow(1, "SN-100", "Solar Panel", "Acme", "AX-1", "In Service",
				"Roof A", nil, nil, "", now, now))

	repo := NewAssetRepo(db)
	asset, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if asset.ID != 1 || asset.Status != "In Service" || asset.InstallDate != nil {
		t.Errorf("unexpected asset: %+v", asset)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM assets WHERE id = \$1`).
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)

	repo := NewAssetRepo(db)
	_, err = repo.GetByID(context.Background(), 999)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_Update_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE assets`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewAssetRepo(db)
	err = repo.Update(context.Background(), models.Asset{ID: 5, SerialNumber: "SN-5"})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for missing row, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM "assets" WHERE .*ILIKE.*"status" = .* ORDER BY "id" ASC LIMIT`).
		WillReturnRows(assetRows().
			AddRow(1, "SN-100", "Solar Panel", "Acme", "AX-1", "In Service",
				"Roof A", nil, nil, "", now, now))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "assets" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := NewAssetRepo(db)
	assets, total, err := repo.Search(context.Background(), SearchParams{
		Search: "Acme",
		Status: "In Service",
		Limit:  20,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(assets) != 1 || assets[0].SerialNumber != "SN-100" || total != 1 {
		t.Errorf("unexpected result: %+v total=%d", assets, total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_Search_NoFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM "assets" ORDER BY "id" ASC LIMIT`).
		WillReturnRows(assetRows())
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "assets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	repo := NewAssetRepo(db)
	assets, total, err := repo.Search(context.Background(), SearchParams{Limit: 20})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(assets) != 0 || total != 0 {
		t.Errorf("unexpected result: %+v total=%d", assets, total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_CountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM assets GROUP BY status`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("In Service", 12).
			AddRow("Under Repair", 3))

	repo := NewAssetRepo(db)
	counts, err := repo.CountByStatus(context.Background())
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts["In Service"] != 12 || counts["Under Repair"] != 3 {
		t.Errorf("unexpected counts: %+v", counts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_ListWarrantyExpiring(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	cutoff := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM assets\s+WHERE warranty_expiry IS NOT NULL AND warranty_expiry <= \$1`).
		WithArgs(cutoff).
		WillReturnRows(assetRows().
			AddRow(3, "SN-300", "Inverter", "Acme", "IX-9", "In Service",
				"Site C", nil, expiry, "", now, now))

	repo := NewAssetRepo(db)
	assets, err := repo.ListWarrantyExpiring(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("ListWarrantyExpiring: %v", err)
	}
	if len(assets) != 1 || assets[0].WarrantyExpiry == nil {
		t.Errorf("unexpected assets: %+v", assets)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

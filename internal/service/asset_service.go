package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/solarops/soltrack/internal/metrics"
	"github.com/solarops/soltrack/internal/models"
	"github.com/solarops/soltrack/internal/repo"
)

// Workflow errors, surfaced to the view layer as user-visible messages.
// None of these are safe to retry blindly.
var (
	ErrSerialRequired  = errors.New("serial number is required")
	ErrDuplicateSerial = errors.New("serial number already exists")
	ErrAssetNotFound   = errors.New("asset not found")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidStatus   = errors.New("unrecognized asset status")
)

const dateLayout = "2006-01-02"

// AssetInput is the field set accepted by both create and update. Dates are
// ISO date strings; empty means "unset" on create and "leave unchanged" on
// update.
type AssetInput struct {
	SerialNumber   string
	AssetType      string
	Manufacturer   string
	Model          string
	Status         string
	Location       string
	Notes          string
	InstallDate    string
	WarrantyExpiry string
}

// AssetService is the asset mutation workflow: it validates a field set,
// applies it to an asset row and appends the matching audit entry. Both
// writes happen in one transaction so an asset mutation and its audit entry
// commit together or not at all.
type AssetService struct {
	db  *sql.DB
	now func() time.Time
}

func NewAssetService(db *sql.DB) *AssetService {
	return &AssetService{db: db, now: time.Now}
}

// CreateAsset persists a new asset and its "Created asset" audit entry,
// attributed to actingUserID.
func (s *AssetService) CreateAsset(ctx context.Context, in AssetInput, actingUserID int) (models.Asset, error) {
	if strings.TrimSpace(in.SerialNumber) == "" {
		return models.Asset{}, ErrSerialRequired
	}
	if !models.ValidStatus(in.Status) {
		return models.Asset{}, ErrInvalidStatus
	}
	installDate, err := parseDate(in.InstallDate)
	if err != nil {
		return models.Asset{}, err
	}
	warrantyExpiry, err := parseDate(in.WarrantyExpiry)
	if err != nil {
		return models.Asset{}, err
	}

	now := s.now().UTC()
	asset := models.Asset{
		SerialNumber:   in.SerialNumber,
		AssetType:      in.AssetType,
		Manufacturer:   in.Manufacturer,
		Model:          in.Model,
		Status:         in.Status,
		Location:       in.Location,
		InstallDate:    installDate,
		WarrantyExpiry: warrantyExpiry,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Asset{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	created, err := repo.NewAssetRepo(tx).Create(ctx, asset)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Asset{}, ErrDuplicateSerial
		}
		return models.Asset{}, fmt.Errorf("insert asset: %w", err)
	}

	entry := models.AuditEntry{
		UserID:    actingUserID,
		AssetID:   &created.ID,
		Action:    models.ActionCreatedAsset,
		NewValues: createSnapshot(created),
		CreatedAt: now,
	}
	if err := repo.NewAuditRepo(tx).Create(ctx, entry); err != nil {
		return models.Asset{}, fmt.Errorf("insert audit entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Asset{}, fmt.Errorf("commit: %w", err)
	}

	metrics.IncAssetMutations("create")
	return created, nil
}

// UpdateAsset overwrites all mutable fields of an existing asset and appends
// an "Updated asset" audit entry. The audit snapshot deliberately captures
// only status and location, matching the established trail format. Absent
// date inputs leave the stored dates unchanged; this path never clears a
// date. Identical input is not a no-op: updated_at still advances and an
// audit entry is still written.
func (s *AssetService) UpdateAsset(ctx context.Context, id int, in AssetInput, actingUserID int) (models.Asset, error) {
	if strings.TrimSpace(in.SerialNumber) == "" {
		return models.Asset{}, ErrSerialRequired
	}
	if !models.ValidStatus(in.Status) {
		return models.Asset{}, ErrInvalidStatus
	}
	installDate, err := parseDate(in.InstallDate)
	if err != nil {
		return models.Asset{}, err
	}
	warrantyExpiry, err := parseDate(in.WarrantyExpiry)
	if err != nil {
		return models.Asset{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Asset{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	assets := repo.NewAssetRepo(tx)
	asset, err := assets.GetForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Asset{}, ErrAssetNotFound
		}
		return models.Asset{}, fmt.Errorf("load asset: %w", err)
	}

	oldValues := updateSnapshot(asset)

	asset.SerialNumber = in.SerialNumber
	asset.AssetType = in.AssetType
	asset.Manufacturer = in.Manufacturer
	asset.Model = in.Model
	asset.Status = in.Status
	asset.Location = in.Location
	asset.Notes = in.Notes
	if installDate != nil {
		asset.InstallDate = installDate
	}
	if warrantyExpiry != nil {
		asset.WarrantyExpiry = warrantyExpiry
	}
	asset.UpdatedAt = s.now().UTC()

	if err := assets.Update(ctx, asset); err != nil {
		if isUniqueViolation(err) {
			return models.Asset{}, ErrDuplicateSerial
		}
		return models.Asset{}, fmt.Errorf("update asset: %w", err)
	}

	entry := models.AuditEntry{
		UserID:    actingUserID,
		AssetID:   &asset.ID,
		Action:    models.ActionUpdatedAsset,
		OldValues: oldValues,
		NewValues: updateSnapshot(asset),
		CreatedAt: asset.UpdatedAt,
	}
	if err := repo.NewAuditRepo(tx).Create(ctx, entry); err != nil {
		return models.Asset{}, fmt.Errorf("insert audit entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Asset{}, fmt.Errorf("commit: %w", err)
	}

	metrics.IncAssetMutations("update")
	return asset, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return &t, nil
}

func createSnapshot(a models.Asset) string {
	return fmt.Sprintf("Serial: %s, Type: %s, Status: %s", a.SerialNumber, a.AssetType, a.Status)
}

func updateSnapshot(a models.Asset) string {
	return fmt.Sprintf("Status: %s, Location: %s", a.Status, a.Location)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

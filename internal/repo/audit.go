package repo

import (
	"context"

	"github.com/solarops/soltrack/internal/models"
)

// AuditRepo persists audit log entries. Rows are append-only; there is no
// update or delete path.
type AuditRepo struct {
	db DBTX
}

func NewAuditRepo(db DBTX) *AuditRepo {
	return &AuditRepo{db: db}
}

// Create appends one audit entry.
func (r *AuditRepo) Create(ctx context.Context, e models.AuditEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (user_id, asset_id, action, old_values, new_values, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.UserID, e.AssetID, e.Action, e.OldValues, e.NewValues, e.CreatedAt,
	)
	return err
}

const auditColumns = `id, user_id, asset_id, action, old_values, new_values, created_at`

func (r *AuditRepo) scanEntries(ctx context.Context, query string, args ...any) ([]models.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.AssetID, &e.Action, &e.OldValues, &e.NewValues, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// List returns recent audit entries, newest first.
func (r *AuditRepo) List(ctx context.Context, limit, offset int) ([]models.AuditEntry, error) {
	return r.scanEntries(ctx,
		`SELECT `+auditColumns+` FROM audit_log ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
}

// ListByAsset returns recent audit entries for one asset, newest first.
func (r *AuditRepo) ListByAsset(ctx context.Context, assetID, limit int) ([]models.AuditEntry, error) {
	return r.scanEntries(ctx,
		`SELECT `+auditColumns+` FROM audit_log WHERE asset_id = $1 ORDER BY created_at DESC LIMIT $2`,
		assetID, limit)
}

// Count returns the total number of audit entries.
func (r *AuditRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log`).Scan(&n)
	return n, err
}

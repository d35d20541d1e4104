package models

import "time"

// Audit actions. The labels are part of the stored trail; keep them stable.
const (
	ActionCreatedAsset = "Created asset"
	ActionUpdatedAsset = "Updated asset"
)

// AuditEntry is one immutable audit log row. AssetID is nil for entries that
// do not reference an asset. OldValues/NewValues hold rendered field
// snapshots, not full diffs.
type AuditEntry struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	AssetID   *int      `json:"asset_id,omitempty"`
	Action    string    `json:"action"`
	OldValues string    `json:"old_values"`
	NewValues string    `json:"new_values"`
	CreatedAt time.Time `json:"created_at"`
}

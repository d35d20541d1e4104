package models

import "time"

// Asset statuses form a closed set. Anything outside it is rejected at the
// mutation workflow boundary.
const (
	StatusInService      = "In Service"
	StatusReturned       = "Returned"
	StatusUnderRepair    = "Under Repair"
	StatusInStorage      = "In Storage"
	StatusDecommissioned = "Decommissioned"
)

var assetStatuses = map[string]bool{
	StatusInService:      true,
	StatusReturned:       true,
	StatusUnderRepair:    true,
	StatusInStorage:      true,
	StatusDecommissioned: true,
}

// ValidStatus reports whether s is one of the recognized asset statuses.
func ValidStatus(s string) bool {
	return assetStatuses[s]
}

// AssetStatuses returns the recognized statuses in display order.
func AssetStatuses() []string {
	return []string{
		StatusInService,
		StatusReturned,
		StatusUnderRepair,
		StatusInStorage,
		StatusDecommissioned,
	}
}

// Asset is one tracked physical unit (panel, battery, inverter, ...).
// SerialNumber is globally unique; UpdatedAt increases on every mutation.
// Assets are never hard-deleted.
type Asset struct {
	ID             int        `json:"id"`
	SerialNumber   string     `json:"serial_number"`
	AssetType      string     `json:"asset_type"`
	Manufacturer   string     `json:"manufacturer"`
	Model          string     `json:"model"`
	Status         string     `json:"status"`
	Location       string     `json:"location"`
	InstallDate    *time.Time `json:"install_date,omitempty"`
	WarrantyExpiry *time.Time `json:"warranty_expiry,omitempty"`
	Notes          string     `json:"notes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

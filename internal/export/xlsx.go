// Package export renders the asset set to a spreadsheet. It is a thin
// adapter over excelize; all data comes from the asset repository.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/solarops/soltrack/internal/models"
)

const SheetName = "Assets"

const dateLayout = "2006-01-02"
const timestampLayout = "2006-01-02 15:04"

// Headers is the export column set, in order.
var Headers = []string{
	"Serial Number", "Type", "Manufacturer", "Model", "Status", "Location",
	"Install Date", "Warranty Expiry", "Notes", "Created", "Updated",
}

// Filename returns the attachment name for an export generated at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("solar_assets_%s.xlsx", t.Format("20060102"))
}

// BuildWorkbook renders assets into a single-sheet xlsx workbook.
func BuildWorkbook(assets []models.Asset) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i, a := range assets {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			a.SerialNumber,
			a.AssetType,
			a.Manufacturer,
			a.Model,
			a.Status,
			a.Location,
			formatDate(a.InstallDate),
			formatDate(a.WarrantyExpiry),
			a.Notes,
			a.CreatedAt.Format(timestampLayout),
			a.UpdatedAt.Format(timestampLayout),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

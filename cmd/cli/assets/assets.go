package assets

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/solarops/soltrack/cmd/cli/client"
	"github.com/solarops/soltrack/cmd/cli/output"
	"github.com/solarops/soltrack/internal/models"
)

// InitAssets registers the assets command group on the root command.
func InitAssets(rootCmd *cobra.Command) {
	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage solar equipment assets",
	}

	assetsCmd.AddCommand(
		listCmd(),
		getCmd(),
		createCmd(),
		updateCmd(),
		exportCmd(),
	)

	rootCmd.AddCommand(assetsCmd)
}

func assetRows(assets []models.Asset) [][]interface{} {
	rows := make([][]interface{}, 0, len(assets))
	for _, a := range assets {
		warranty := ""
		if a.WarrantyExpiry != nil {
			warranty = a.WarrantyExpiry.Format("2006-01-02")
		}
		rows = append(rows, []interface{}{
			a.ID, a.SerialNumber, a.AssetType, a.Manufacturer, a.Model,
			a.Status, a.Location, warranty,
		})
	}
	return rows
}

var assetTableHeaders = []string{"ID", "Serial", "Type", "Manufacturer", "Model", "Status", "Location", "Warranty"}

func listCmd() *cobra.Command {
	var search, status string
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if search != "" {
				q.Set("search", search)
			}
			if status != "" {
				q.Set("status", status)
			}
			q.Set("limit", strconv.Itoa(limit))
			q.Set("offset", strconv.Itoa(offset))

			var out struct {
				Items []models.Asset `json:"items"`
				Total int            `json:"total"`
			}
			if err := client.Do(http.MethodGet, "/v1/assets?"+q.Encode(), nil, true, &out); err != nil {
				return err
			}

			output.RenderTable(assetTableHeaders, assetRows(out.Items))
			fmt.Printf("%d of %d assets\n", len(out.Items), out.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "match serial, manufacturer or model")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().IntVar(&limit, "limit", 20, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "page offset")
	return cmd
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show one asset with its audit history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var asset models.Asset
			if err := client.Do(http.MethodGet, "/v1/assets/"+args[0], nil, true, &asset); err != nil {
				return err
			}
			output.RenderTable(assetTableHeaders, assetRows([]models.Asset{asset}))
			if asset.Notes != "" {
				fmt.Println("Notes:", asset.Notes)
			}

			var entries []models.AuditEntry
			if err := client.Do(http.MethodGet, "/v1/assets/"+args[0]+"/audit", nil, true, &entries); err != nil {
				return err
			}
			if len(entries) == 0 {
				return nil
			}
			rows := make([][]interface{}, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []interface{}{
					e.CreatedAt.Format("2006-01-02 15:04"), e.Action, e.OldValues, e.NewValues,
				})
			}
			fmt.Println("History:")
			output.RenderTable([]string{"When", "Action", "Old", "New"}, rows)
			return nil
		},
	}
}

func assetFlags(cmd *cobra.Command, payload *map[string]string) {
	for _, f := range []struct{ name, usage string }{
		{"serial", "serial number (unique)"},
		{"type", "asset type, e.g. 'Solar Panel'"},
		{"manufacturer", "manufacturer name"},
		{"model", "model name"},
		{"status", "status, e.g. 'In Service'"},
		{"location", "customer address or warehouse"},
		{"install-date", "install date (YYYY-MM-DD)"},
		{"warranty-expiry", "warranty expiry date (YYYY-MM-DD)"},
		{"notes", "free-text notes"},
	} {
		cmd.Flags().String(f.name, "", f.usage)
	}

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		*payload = map[string]string{
			"serial_number":   flagValue(cmd, "serial"),
			"asset_type":      flagValue(cmd, "type"),
			"manufacturer":    flagValue(cmd, "manufacturer"),
			"model":           flagValue(cmd, "model"),
			"status":          flagValue(cmd, "status"),
			"location":        flagValue(cmd, "location"),
			"install_date":    flagValue(cmd, "install-date"),
			"warranty_expiry": flagValue(cmd, "warranty-expiry"),
			"notes":           flagValue(cmd, "notes"),
		}
	}
}

func flagValue(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func createCmd() *cobra.Command {
	var payload map[string]string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			var asset models.Asset
			if err := client.Do(http.MethodPost, "/v1/assets", payload, true, &asset); err != nil {
				return err
			}
			fmt.Printf("Created asset %d (%s)\n", asset.ID, asset.SerialNumber)
			return nil
		},
	}

	assetFlags(cmd, &payload)
	return cmd
}

func updateCmd() *cobra.Command {
	var payload map[string]string

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var asset models.Asset
			if err := client.Do(http.MethodPut, "/v1/assets/"+args[0], payload, true, &asset); err != nil {
				return err
			}
			fmt.Printf("Updated asset %d (%s)\n", asset.ID, asset.SerialNumber)
			return nil
		},
	}

	assetFlags(cmd, &payload)
	return cmd
}

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the asset spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, _, err := client.Download("/v1/export")
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("Wrote %d bytes to %s\n", len(data), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "solar_assets.xlsx", "output file path")
	return cmd
}

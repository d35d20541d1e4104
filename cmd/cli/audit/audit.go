package audit

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/solarops/soltrack/cmd/cli/client"
	"github.com/solarops/soltrack/cmd/cli/output"
	"github.com/solarops/soltrack/internal/models"
)

// InitAudit registers the audit command on the root command. The endpoint is
// admin-only; non-admin tokens get a 403.
func InitAudit(rootCmd *cobra.Command) {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the audit trail (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("limit", strconv.Itoa(limit))
			q.Set("offset", strconv.Itoa(offset))

			var out struct {
				Items []models.AuditEntry `json:"items"`
				Total int                 `json:"total"`
			}
			if err := client.Do(http.MethodGet, "/v1/audit?"+q.Encode(), nil, true, &out); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(out.Items))
			for _, e := range out.Items {
				assetID := ""
				if e.AssetID != nil {
					assetID = strconv.Itoa(*e.AssetID)
				}
				rows = append(rows, []interface{}{
					e.ID, e.CreatedAt.Format("2006-01-02 15:04"), e.UserID, assetID,
					e.Action, e.OldValues, e.NewValues,
				})
			}
			output.RenderTable([]string{"ID", "When", "User", "Asset", "Action", "Old", "New"}, rows)
			fmt.Printf("%d of %d entries\n", len(out.Items), out.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "page offset")
	rootCmd.AddCommand(cmd)
}

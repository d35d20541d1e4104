package handlers

import (
	"net/http"

	"github.com/solarops/soltrack/internal/models"
	"github.com/solarops/soltrack/internal/repo"
)

type DashboardHandler struct {
	Repo *repo.AssetRepo
}

// Stats returns fleet totals per status plus the ten most recently updated
// assets.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Repo.CountByStatus(r.Context())
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	recent, err := h.Repo.RecentlyUpdated(r.Context(), 10)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if recent == nil {
		recent = []models.Asset{}
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_assets":  total,
		"in_service":    counts[models.StatusInService],
		"under_repair":  counts[models.StatusUnderRepair],
		"returned":      counts[models.StatusReturned],
		"by_status":     counts,
		"recent_assets": recent,
	})
}

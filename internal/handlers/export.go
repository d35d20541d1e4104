package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/solarops/soltrack/internal/export"
	"github.com/solarops/soltrack/internal/repo"
)

// ExportHandler streams the full asset set as an xlsx attachment.
type ExportHandler struct {
	Repo *repo.AssetRepo
}

func (h *ExportHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Repo.ListAll(r.Context())
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	f, err := export.BuildWorkbook(assets)
	if err != nil {
		slog.Error("export: build workbook failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())))
	if err := f.Write(w); err != nil {
		// Headers are already out; just log the broken stream.
		slog.Error("export: write workbook failed", "error", err)
	}
}

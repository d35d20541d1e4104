package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/solarops/soltrack/internal/middleware"
	"github.com/solarops/soltrack/internal/models"
	"github.com/solarops/soltrack/internal/repo"
	"github.com/solarops/soltrack/internal/service"
)

// AssetHandler serves asset CRUD endpoints. Mutations go through the
// workflow service so every create/update carries its audit entry; reads go
// straight to the repo.
type AssetHandler struct {
	Service   *service.AssetService
	Repo      *repo.AssetRepo
	AuditRepo *repo.AuditRepo
}

// assetInput mirrors service.AssetInput with validation tags. Date format is
// checked by the workflow, not here, so date errors share one taxonomy.
type assetInput struct {
	SerialNumber   string `json:"serial_number" validate:"required,max=100"`
	AssetType      string `json:"asset_type" validate:"required,max=50"`
	Manufacturer   string `json:"manufacturer" validate:"max=100"`
	Model          string `json:"model" validate:"max=100"`
	Status         string `json:"status" validate:"required,max=50"`
	Location       string `json:"location" validate:"max=200"`
	InstallDate    string `json:"install_date"`
	WarrantyExpiry string `json:"warranty_expiry"`
	Notes          string `json:"notes" validate:"max=5000"`
}

func (in assetInput) toServiceInput() service.AssetInput {
	return service.AssetInput{
		SerialNumber:   strings.TrimSpace(in.SerialNumber),
		AssetType:      in.AssetType,
		Manufacturer:   in.Manufacturer,
		Model:          in.Model,
		Status:         in.Status,
		Location:       in.Location,
		Notes:          in.Notes,
		InstallDate:    in.InstallDate,
		WarrantyExpiry: in.WarrantyExpiry,
	}
}

func decodeAssetInput(w http.ResponseWriter, r *http.Request) (assetInput, bool) {
	var input assetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return input, false
	}
	if err := validate.Struct(input); err != nil {
		fields := make(map[string]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return input, false
	}
	return input, true
}

// CreateAsset registers a new asset via the mutation workflow.
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeAssetInput(w, r)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	asset, err := h.Service.CreateAsset(r.Context(), input.toServiceInput(), userID)
	if err != nil {
		writeWorkflowError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, asset)
}

// UpdateAsset overwrites an existing asset via the mutation workflow.
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	input, ok := decodeAssetInput(w, r)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	asset, err := h.Service.UpdateAsset(r.Context(), id, input.toServiceInput(), userID)
	if err != nil {
		writeWorkflowError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, asset)
}

// ListAssets returns a page of assets. Query: limit (default 20), offset,
// search (serial/manufacturer/model substring), status (exact).
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	limit := 20
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= 200 {
			limit = val
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if val, err := strconv.Atoi(o); err == nil && val >= 0 {
			offset = val
		}
	}

	status := r.URL.Query().Get("status")
	if status != "" && !models.ValidStatus(status) {
		JSONError(w, "unrecognized asset status", http.StatusBadRequest)
		return
	}

	assets, total, err := h.Repo.Search(r.Context(), repo.SearchParams{
		Search: r.URL.Query().Get("search"),
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if assets == nil {
		assets = []models.Asset{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":  assets,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GetAsset returns one asset by id.
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	asset, err := h.Repo.GetByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		JSONError(w, "asset not found", http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, asset)
}

// GetAssetAudit returns the recent audit history for one asset, newest first.
func (h *AssetHandler) GetAssetAudit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	if _, err := h.Repo.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			JSONError(w, "asset not found", http.StatusNotFound)
			return
		}
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	entries, err := h.AuditRepo.ListByAsset(r.Context(), id, 20)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}

	writeJSON(w, http.StatusOK, entries)
}

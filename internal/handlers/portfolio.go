package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/services"
)

type PortfolioHandler struct {
	service services.PortfolioService
}

func NewPortfolioHandler(service services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

// HandleCategories lists categories.
// @Summary List categories
// @Tags portfolio
// @Produce json
// @Success 200 {array} models.Category
// @Failure 500 {string} string "Internal server error"
// @Router /categories [get]
func (h *PortfolioHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// HandleAssets lists assets or creates one.
// @Summary List or create assets
// @Description Currency defaults to CNY; the category must exist and the name must be unique within it
// @Tags portfolio
// @Accept json
// @Produce json
// @Param asset body models.Asset false "Asset to create (POST)"
// @Success 200 {array} models.Asset
// @Success 201 {object} models.Asset
// @Failure 400 {string} string "Invalid request"
// @Failure 404 {string} string "Category not found"
// @Failure 500 {string} string "Internal server error"
// @Router /assets [get]
// @Router /assets [post]
func (h *PortfolioHandler) HandleAssets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		assets, err := h.service.GetAssets(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, assets)
	case http.MethodPost:
		h.createAsset(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PortfolioHandler) createAsset(w http.ResponseWriter, r *http.Request) {
	var asset models.Asset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		writeError(w, &apperrors.ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()})
		return
	}
	asset.ID = 0

	if err := h.service.CreateAsset(r.Context(), &asset); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

// HandleAsset deletes an asset. Its historical values are kept.
// @Summary Delete asset
// @Tags portfolio
// @Param id path int true "Asset ID"
// @Success 204
// @Failure 400 {string} string "Invalid id"
// @Failure 404 {string} string "Not found"
// @Router /assets/{id} [delete]
func (h *PortfolioHandler) HandleAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.service.DeleteAsset(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSnapshots lists snapshots in date order.
// @Summary List snapshots
// @Tags portfolio
// @Produce json
// @Success 200 {array} models.Snapshot
// @Router /snapshots [get]
func (h *PortfolioHandler) HandleSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.service.GetSnapshots(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

// HandleAssetValues lists stored values.
// @Summary List asset values
// @Tags portfolio
// @Produce json
// @Param category_id query int false "Category ID"
// @Param snapshot_id query int false "Snapshot ID"
// @Success 200 {array} models.AssetValue
// @Failure 400 {string} string "Invalid request"
// @Router /asset-values [get]
func (h *PortfolioHandler) HandleAssetValues(w http.ResponseWriter, r *http.Request) {
	categoryID, err := queryUint(r, "category_id")
	if err != nil {
		writeError(w, err)
		return
	}
	snapshotID, err := queryUint(r, "snapshot_id")
	if err != nil {
		writeError(w, err)
		return
	}

	values, err := h.service.GetAssetValues(r.Context(), &models.AssetValueFilter{CategoryID: categoryID, SnapshotID: snapshotID})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

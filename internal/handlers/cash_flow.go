package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/services"
)

type CashFlowHandler struct {
	service services.CashFlowService
}

func NewCashFlowHandler(service services.CashFlowService) *CashFlowHandler {
	return &CashFlowHandler{service: service}
}

type cashFlowRequest struct {
	FlowDate       string          `json:"flow_date"`
	FlowType       string          `json:"flow_type"`
	SourceAccount  *string         `json:"source_account"`
	TargetAccount  *string         `json:"target_account"`
	AssetName      *string         `json:"asset_name"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	Currency       string          `json:"currency"`
	CNYAmount      decimal.Decimal `json:"cny_amount"`
	Description    *string         `json:"description"`
}

// HandleCashFlows lists or records cash flows.
// @Summary List or create cash flows
// @Description cny_amount is converted at the current rate when omitted
// @Tags cash-flows
// @Accept json
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Param flow_type query string false "inflow or outflow"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Param flow body cashFlowRequest false "Cash flow to create (POST)"
// @Success 200 {array} models.CashFlow
// @Success 201 {object} models.CashFlow
// @Failure 400 {string} string "Invalid request"
// @Failure 500 {string} string "Internal server error"
// @Router /cash-flows [get]
// @Router /cash-flows [post]
func (h *CashFlowHandler) HandleCashFlows(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CashFlowHandler) list(w http.ResponseWriter, r *http.Request) {
	filter := &models.CashFlowFilter{FlowType: r.URL.Query().Get("flow_type")}

	var err error
	if filter.StartDate, err = queryDate(r, "start_date"); err != nil {
		writeError(w, err)
		return
	}
	if filter.EndDate, err = queryDate(r, "end_date"); err != nil {
		writeError(w, err)
		return
	}
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		writeError(w, err)
		return
	}
	if filter.Offset, err = queryInt(r, "offset"); err != nil {
		writeError(w, err)
		return
	}

	flows, err := h.service.ListCashFlows(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, flows)
}

func (h *CashFlowHandler) create(w http.ResponseWriter, r *http.Request) {
	var req cashFlowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &apperrors.ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()})
		return
	}

	flow := &models.CashFlow{
		FlowType:       req.FlowType,
		SourceAccount:  req.SourceAccount,
		TargetAccount:  req.TargetAccount,
		AssetName:      req.AssetName,
		OriginalAmount: req.OriginalAmount,
		Currency:       req.Currency,
		CNYAmount:      req.CNYAmount,
		Description:    req.Description,
	}
	if req.FlowDate != "" {
		d, err := time.Parse(dateLayout, req.FlowDate)
		if err != nil {
			writeError(w, &apperrors.ErrValidation{Field: "flow_date", Message: "must be YYYY-MM-DD"})
			return
		}
		flow.FlowDate = d
	}

	if err := h.service.AddCashFlow(r.Context(), flow); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, flow)
}

// HandleCashFlow deletes a cash flow.
// @Summary Delete cash flow
// @Tags cash-flows
// @Param id path string true "Cash flow ID"
// @Success 204
// @Failure 404 {string} string "Not found"
// @Router /cash-flows/{id} [delete]
func (h *CashFlowHandler) HandleCashFlow(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCashFlow(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

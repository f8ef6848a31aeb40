package get_pricing_rules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MNT-BookingService/internal/api/handlers"
	"github.com/m04kA/MNT-BookingService/internal/service/pricingrules"
)

const (
	msgInvalidRuleID = "некорректный ID правила"
	msgRuleNotFound  = "правило ценообразования не найдено"
)

type Handler struct {
	service PricingRuleService
	logger  Logger
}

func NewHandler(service PricingRuleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/admin/pricing-rules
// Query параметры: activeOnly (опционально)
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("activeOnly") == "true"

	result, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("GET /admin/pricing-rules - Failed to list rules: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/pricing-rules - Returned %d rules", len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleByID GET /api/v1/admin/pricing-rules/{ruleId}
func (h *Handler) HandleByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ruleID, err := strconv.ParseInt(vars["ruleId"], 10, 64)
	if err != nil || ruleID <= 0 {
		h.logger.Warn("GET /admin/pricing-rules/{ruleId} - Invalid rule ID: %s", vars["ruleId"])
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	result, err := h.service.GetByID(r.Context(), ruleID)
	if err != nil {
		switch {
		case errors.Is(err, pricingrules.ErrRuleNotFound):
			h.logger.Warn("GET /admin/pricing-rules/%d - Rule not found", ruleID)
			handlers.RespondNotFound(w, msgRuleNotFound)

		default:
			h.logger.Error("GET /admin/pricing-rules/%d - Failed to get rule: %v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/pricing-rules/%d - Rule fetched successfully", ruleID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package delete_pricing_rule

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

// Handle DELETE /api/v1/admin/pricing-rules/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ruleID, err := strconv.ParseInt(vars["ruleId"], 10, 64)
	if err != nil || ruleID <= 0 {
		h.logger.Warn("DELETE /admin/pricing-rules/{ruleId} - Invalid rule ID: %s", vars["ruleId"])
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	if err := h.service.Deactivate(r.Context(), ruleID); err != nil {
		switch {
		case errors.Is(err, pricingrules.ErrRuleNotFound):
			h.logger.Warn("DELETE /admin/pricing-rules/%d - Rule not found", ruleID)
			handlers.RespondNotFound(w, msgRuleNotFound)

		default:
			h.logger.Error("DELETE /admin/pricing-rules/%d - Failed to deactivate rule: %v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/pricing-rules/%d - Rule deactivated successfully", ruleID)
	w.WriteHeader(http.StatusNoContent)
}

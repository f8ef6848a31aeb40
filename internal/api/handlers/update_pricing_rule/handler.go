package update_pricing_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MNT-BookingService/internal/api/handlers"
	"github.com/m04kA/MNT-BookingService/internal/service/pricingrules"
	"github.com/m04kA/MNT-BookingService/internal/service/pricingrules/models"
)

const (
	msgInvalidRuleID      = "некорректный ID правила"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgRuleNotFound       = "правило ценообразования не найдено"
	msgDuplicateRule      = "активное правило с такими условиями уже существует"
	msgInvalidFeeSplit    = "доли ментора и платформы должны в сумме давать 100%"
	msgInvalidRuleData    = "некорректные данные правила"
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

// Handle PATCH /api/v1/admin/pricing-rules/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ruleID, err := strconv.ParseInt(vars["ruleId"], 10, 64)
	if err != nil || ruleID <= 0 {
		h.logger.Warn("PATCH /admin/pricing-rules/{ruleId} - Invalid rule ID: %s", vars["ruleId"])
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	var req models.UpdatePricingRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/pricing-rules/%d - Invalid request body: %v", ruleID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), ruleID, &req)
	if err != nil {
		switch {
		case errors.Is(err, pricingrules.ErrRuleNotFound):
			h.logger.Warn("PATCH /admin/pricing-rules/%d - Rule not found", ruleID)
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, pricingrules.ErrDuplicateRule):
			h.logger.Warn("PATCH /admin/pricing-rules/%d - Duplicate rule", ruleID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateRule)

		case errors.Is(err, pricingrules.ErrInvalidFeeSplit):
			h.logger.Warn("PATCH /admin/pricing-rules/%d - Invalid fee split: %v", ruleID, err)
			handlers.RespondBadRequest(w, msgInvalidFeeSplit)

		case errors.Is(err, pricingrules.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/pricing-rules/%d - Invalid input: %v", ruleID, err)
			handlers.RespondBadRequest(w, msgInvalidRuleData)

		default:
			h.logger.Error("PATCH /admin/pricing-rules/%d - Failed to update rule: %v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/pricing-rules/%d - Rule updated successfully", ruleID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

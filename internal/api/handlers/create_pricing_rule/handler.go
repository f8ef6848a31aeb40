package create_pricing_rule

import (
	"errors"
	"net/http"

	"github.com/m04kA/MNT-BookingService/internal/api/handlers"
	"github.com/m04kA/MNT-BookingService/internal/service/pricingrules"
	"github.com/m04kA/MNT-BookingService/internal/service/pricingrules/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDuplicateRule      = "правило с такими параметрами уже существует"
	msgInvalidFeeSplit    = "доли ментора и платформы должны в сумме давать 100"
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

// Handle POST /api/v1/admin/pricing-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePricingRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/pricing-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, pricingrules.ErrDuplicateRule):
			h.logger.Warn("POST /admin/pricing-rules - Duplicate rule: materials=%v", req.MaterialIDs)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateRule)

		case errors.Is(err, pricingrules.ErrInvalidFeeSplit):
			h.logger.Warn("POST /admin/pricing-rules - Invalid fee split")
			handlers.RespondBadRequest(w, msgInvalidFeeSplit)

		case errors.Is(err, pricingrules.ErrInvalidInput):
			h.logger.Warn("POST /admin/pricing-rules - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /admin/pricing-rules - Failed to create rule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/pricing-rules - Rule created successfully: rule_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

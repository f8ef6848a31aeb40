package price_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/MNT-BookingService/internal/api/handlers"
	priceSession "github.com/m04kA/MNT-BookingService/internal/usecase/price_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMaterialNotFound   = "материал не найден в каталоге"
	msgMaterialInactive   = "материал снят с публикации"
	msgNoPricingRule      = "для указанных параметров не настроена цена"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	MaterialIDs     []int64 `json:"materialIds"`
	DurationMinutes int     `json:"durationMinutes"`
	MeetingType     string  `json:"meetingType"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	FinalPrice       string `json:"finalPrice"`
	MentorEarnings   string `json:"mentorEarnings"`
	PlatformEarnings string `json:"platformEarnings"`
	PricingRuleID    int64  `json:"pricingRuleId"`
	Level            string `json:"level,omitempty"`
}

type Handler struct {
	useCase PriceSessionUseCase
	logger  Logger
}

func NewHandler(useCase PriceSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/pricing/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pricing/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &priceSession.Request{
		MaterialIDs:     req.MaterialIDs,
		DurationMinutes: req.DurationMinutes,
		MeetingType:     req.MeetingType,
	})
	if err != nil {
		switch {
		case errors.Is(err, priceSession.ErrMaterialNotFound):
			h.logger.Warn("POST /pricing/quote - Material not found: %v", req.MaterialIDs)
			handlers.RespondNotFound(w, msgMaterialNotFound)

		case errors.Is(err, priceSession.ErrMaterialInactive):
			h.logger.Warn("POST /pricing/quote - Material inactive: %v", req.MaterialIDs)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgMaterialInactive)

		case errors.Is(err, priceSession.ErrNoApplicableRule):
			h.logger.Warn("POST /pricing/quote - No applicable rule: %v", req.MaterialIDs)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNoPricingRule)

		case errors.Is(err, priceSession.ErrInvalidInput):
			h.logger.Warn("POST /pricing/quote - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /pricing/quote - Failed to price session: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /pricing/quote - Quote computed, rule_id=%d", result.PricingRuleID)
	handlers.RespondJSON(w, http.StatusOK, &QuoteResponse{
		FinalPrice:       result.FinalPrice.StringFixed(2),
		MentorEarnings:   result.MentorEarnings.StringFixed(2),
		PlatformEarnings: result.PlatformEarnings.StringFixed(2),
		PricingRuleID:    result.PricingRuleID,
		Level:            result.Level,
	})
}

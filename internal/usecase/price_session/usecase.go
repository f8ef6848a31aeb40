package price_session

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	catalogClient "github.com/m04kA/MNT-BookingService/internal/integrations/catalogservice"
)

// levelRank порядок уровней для выбора множителя при смешанных материалах
var levelRank = map[string]int{
	"beginner":     1,
	"intermediate": 2,
	"advanced":     3,
}

// UseCase use case расчёта цены сессии без создания бронирования
type UseCase struct {
	pricingRepo   PricingRuleRepository
	catalogClient CatalogServiceClient
	defaults      domain.PricingDefaults
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	pricingRepo PricingRuleRepository,
	catalogClient CatalogServiceClient,
	defaults domain.PricingDefaults,
	logger Logger,
) *UseCase {
	return &UseCase{
		pricingRepo:   pricingRepo,
		catalogClient: catalogClient,
		defaults:      defaults,
		logger:        logger,
	}
}

// Execute выполняет расчёт цены сессии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PriceSession: materials=%v, duration=%d, meetingType=%s",
		req.MaterialIDs, req.DurationMinutes, req.MeetingType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PriceSession: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем материалы в каталоге и определяем уровень сессии -
	// максимальный уровень среди материалов. Недоступность каталога
	// не блокирует расчёт: цена считается без множителя уровня
	level := ""
	for _, id := range req.MaterialIDs {
		material, err := uc.catalogClient.GetMaterialWithGracefulDegradation(ctx, id)
		if err != nil {
			if errors.Is(err, catalogClient.ErrMaterialNotFound) {
				uc.logger.Warn("PriceSession: material id=%d not found in catalog", id)
				return nil, ErrMaterialNotFound
			}
			if errors.Is(err, catalogClient.ErrServiceDegraded) {
				continue
			}
			uc.logger.Error("PriceSession: failed to get material id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: failed to get material: %v", ErrInternal, err)
		}
		if !material.IsActive {
			uc.logger.Warn("PriceSession: material id=%d is inactive", material.ID)
			return nil, ErrMaterialInactive
		}
		if levelRank[material.Level] > levelRank[level] {
			level = material.Level
		}
	}

	// 3. Считаем цену по действующим правилам
	rules, err := uc.pricingRepo.GetActive(ctx)
	if err != nil {
		uc.logger.Error("PriceSession: failed to get pricing rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get pricing rules: %v", ErrInternal, err)
	}

	quote, err := domain.EvaluatePrice(rules, domain.PriceRequest{
		MaterialIDs:     req.MaterialIDs,
		DurationMinutes: req.DurationMinutes,
		MeetingType:     domain.MeetingType(req.MeetingType),
		Level:           level,
	}, uc.defaults)
	if err != nil {
		if errors.Is(err, domain.ErrNoApplicableRule) {
			uc.logger.Warn("PriceSession: no applicable pricing rule for materials=%v", req.MaterialIDs)
			return nil, ErrNoApplicableRule
		}
		uc.logger.Error("PriceSession: price evaluation failed: %v", err)
		return nil, fmt.Errorf("%w: price evaluation failed: %v", ErrInternal, err)
	}

	uc.logger.Info("PriceSession: rule id=%d, price=%s", quote.RuleID, quote.FinalPrice.StringFixed(2))

	return &Response{
		FinalPrice:       quote.FinalPrice,
		MentorEarnings:   quote.MentorEarnings,
		PlatformEarnings: quote.PlatformEarnings,
		PricingRuleID:    quote.RuleID,
		Level:            level,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if len(req.MaterialIDs) == 0 {
		return fmt.Errorf("%w: materialIDs are required", ErrInvalidInput)
	}

	for _, id := range req.MaterialIDs {
		if id <= 0 {
			return fmt.Errorf("%w: materialIDs must be positive", ErrInvalidInput)
		}
	}

	if req.DurationMinutes < domain.MinSessionDurationMinutes || req.DurationMinutes > domain.MaxSessionDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}

	if !domain.IsValidMeetingType(req.MeetingType) {
		return fmt.Errorf("%w: meetingType must be online or offline", ErrInvalidInput)
	}

	return nil
}

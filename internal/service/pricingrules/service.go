package pricingrules

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	pricingRepo "github.com/m04kA/MNT-BookingService/internal/infra/storage/pricingrule"
	"github.com/m04kA/MNT-BookingService/internal/service/pricingrules/models"
)

// Service сервис администрирования правил ценообразования
type Service struct {
	pricingRepo PricingRuleRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса правил ценообразования
func NewService(pricingRepo PricingRuleRepository, logger Logger) *Service {
	return &Service{
		pricingRepo: pricingRepo,
		logger:      logger,
	}
}

// Create создаёт новое правило ценообразования
// Правило, полностью совпадающее с действующим, отклоняется
func (s *Service) Create(ctx context.Context, req *models.CreatePricingRuleRequest) (*models.PricingRuleResponse, error) {
	s.logger.Info("Create: creating pricing rule, materials=%v, meetingType=%s, duration=%d-%d",
		req.MaterialIDs, req.MeetingType, req.MinDuration, req.MaxDuration)

	rule, err := toDomainRule(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkDuplicate(ctx, rule, 0); err != nil {
		return nil, err
	}

	created, err := s.pricingRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created pricing rule id=%d", created.ID)
	return models.FromDomainRule(created), nil
}

// GetByID получает правило по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.PricingRuleResponse, error) {
	s.logger.Info("GetByID: fetching pricing rule id=%d", id)

	rule, err := s.getRule(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainRule(rule), nil
}

// List получает все правила ценообразования
// activeOnly=true возвращает только действующие правила
func (s *Service) List(ctx context.Context, activeOnly bool) (*models.PricingRuleListResponse, error) {
	s.logger.Info("List: fetching pricing rules, activeOnly=%t", activeOnly)

	var (
		rules []*domain.PricingRule
		err   error
	)
	if activeOnly {
		rules, err = s.pricingRepo.GetActive(ctx)
	} else {
		rules, err = s.pricingRepo.GetAll(ctx)
	}
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d pricing rules", len(rules))
	return models.FromDomainRuleList(rules), nil
}

// Update обновляет правило ценообразования
// Обновляются только переданные поля
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdatePricingRuleRequest) (*models.PricingRuleResponse, error) {
	s.logger.Info("Update: updating pricing rule id=%d", id)

	rule, err := s.getRule(ctx, id, "Update")
	if err != nil {
		return nil, err
	}

	if err := applyUpdate(rule, req); err != nil {
		s.logger.Warn("Update: validation failed for rule id=%d: %v", id, err)
		return nil, err
	}

	if err := validateRule(rule); err != nil {
		s.logger.Warn("Update: validation failed for rule id=%d: %v", id, err)
		return nil, err
	}

	if rule.IsActive {
		if err := s.checkDuplicate(ctx, rule, id); err != nil {
			return nil, err
		}
	}

	updated, err := s.pricingRepo.Update(ctx, id, rule)
	if err != nil {
		if errors.Is(err, pricingRepo.ErrRuleNotFound) {
			s.logger.Warn("Update: pricing rule id=%d not found during update", id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("Update: repository error for rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated pricing rule id=%d", id)
	return models.FromDomainRule(updated), nil
}

// Deactivate деактивирует правило ценообразования
// Снимки цен в существующих бронированиях не затрагиваются
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	s.logger.Info("Deactivate: deactivating pricing rule id=%d", id)

	if err := s.pricingRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, pricingRepo.ErrRuleNotFound) {
			s.logger.Warn("Deactivate: pricing rule id=%d not found", id)
			return ErrRuleNotFound
		}
		s.logger.Error("Deactivate: repository error for rule id=%d: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: successfully deactivated pricing rule id=%d", id)
	return nil
}

// Вспомогательные методы

func (s *Service) getRule(ctx context.Context, id int64, op string) (*domain.PricingRule, error) {
	rule, err := s.pricingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pricingRepo.ErrRuleNotFound) {
			s.logger.Warn("%s: pricing rule id=%d not found", op, id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("%s: repository error for rule id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return rule, nil
}

// checkDuplicate отклоняет правило, совпадающее с действующим по материалам,
// типу встречи и диапазону длительности
func (s *Service) checkDuplicate(ctx context.Context, rule *domain.PricingRule, excludeID int64) error {
	active, err := s.pricingRepo.GetActive(ctx)
	if err != nil {
		s.logger.Error("checkDuplicate: repository error: %v", err)
		return fmt.Errorf("%w: checkDuplicate - repository error: %v", ErrInternal, err)
	}

	for _, existing := range active {
		if existing.ID == excludeID {
			continue
		}
		if existing.MeetingType == rule.MeetingType &&
			existing.MinDuration == rule.MinDuration &&
			existing.MaxDuration == rule.MaxDuration &&
			sameMaterialSet(existing.MaterialIDs, rule.MaterialIDs) {
			s.logger.Warn("checkDuplicate: rule duplicates active rule id=%d", existing.ID)
			return ErrDuplicateRule
		}
	}

	return nil
}

// sameMaterialSet сравнивает наборы материалов без учёта порядка и дублей
func sameMaterialSet(a, b []int64) bool {
	na := uniqueSorted(a)
	nb := uniqueSorted(b)

	if len(na) != len(nb) {
		return false
	}
	for i := range na {
		if na[i] != nb[i] {
			return false
		}
	}
	return true
}

func uniqueSorted(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func toDomainRule(req *models.CreatePricingRuleRequest) (*domain.PricingRule, error) {
	price, err := decimal.NewFromString(req.StudentPrice)
	if err != nil {
		return nil, fmt.Errorf("%w: studentPrice must be a decimal string", ErrInvalidInput)
	}

	rule := &domain.PricingRule{
		MaterialIDs:  req.MaterialIDs,
		MeetingType:  domain.MeetingType(req.MeetingType),
		MinDuration:  req.MinDuration,
		MaxDuration:  req.MaxDuration,
		StudentPrice: price,

		MentorFeePercentage: req.MentorFeePercentage,
		AdminFeePercentage:  req.AdminFeePercentage,

		IsActive: true,
	}

	if err := validateRule(rule); err != nil {
		return nil, err
	}

	return rule, nil
}

func applyUpdate(rule *domain.PricingRule, req *models.UpdatePricingRuleRequest) error {
	if req.MaterialIDs != nil {
		rule.MaterialIDs = *req.MaterialIDs
	}
	if req.MeetingType != nil {
		rule.MeetingType = domain.MeetingType(*req.MeetingType)
	}
	if req.MinDuration != nil {
		rule.MinDuration = *req.MinDuration
	}
	if req.MaxDuration != nil {
		rule.MaxDuration = *req.MaxDuration
	}
	if req.StudentPrice != nil {
		price, err := decimal.NewFromString(*req.StudentPrice)
		if err != nil {
			return fmt.Errorf("%w: studentPrice must be a decimal string", ErrInvalidInput)
		}
		rule.StudentPrice = price
	}
	if req.MentorFeePercentage != nil {
		rule.MentorFeePercentage = req.MentorFeePercentage
	}
	if req.AdminFeePercentage != nil {
		rule.AdminFeePercentage = req.AdminFeePercentage
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	return nil
}

func validateRule(rule *domain.PricingRule) error {
	if len(rule.MaterialIDs) == 0 {
		return fmt.Errorf("%w: materialIds are required", ErrInvalidInput)
	}

	for _, id := range rule.MaterialIDs {
		if id <= 0 {
			return fmt.Errorf("%w: materialIds must be positive", ErrInvalidInput)
		}
	}

	if !domain.IsValidMeetingType(string(rule.MeetingType)) {
		return fmt.Errorf("%w: meetingType must be online or offline", ErrInvalidInput)
	}

	if rule.MinDuration < domain.MinSessionDurationMinutes || rule.MaxDuration > domain.MaxSessionDurationMinutes {
		return fmt.Errorf("%w: duration range must be within %d-%d minutes",
			ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}

	if rule.MinDuration > rule.MaxDuration {
		return fmt.Errorf("%w: minDuration must not exceed maxDuration", ErrInvalidInput)
	}

	if !rule.StudentPrice.IsPositive() {
		return fmt.Errorf("%w: studentPrice must be positive", ErrInvalidInput)
	}

	// Доли задаются парой или не задаются вовсе
	if (rule.MentorFeePercentage == nil) != (rule.AdminFeePercentage == nil) {
		return fmt.Errorf("%w: mentorFeePercentage and adminFeePercentage must be set together", ErrInvalidInput)
	}

	if rule.MentorFeePercentage != nil {
		mentor, admin := *rule.MentorFeePercentage, *rule.AdminFeePercentage
		if mentor < 0 || mentor > 100 || admin < 0 || admin > 100 {
			return fmt.Errorf("%w: fee percentages must be 0-100", ErrInvalidInput)
		}
		if mentor+admin != 100 {
			return ErrInvalidFeeSplit
		}
	}

	return nil
}

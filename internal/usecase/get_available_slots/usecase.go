package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/MNT-BookingService/internal/infra/storage/schedule"
)

// UseCase use case для получения доступных слотов записи к ментору
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	pricingRepo  PricingRuleRepository
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	pricingRepo PricingRuleRepository,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		pricingRepo:  pricingRepo,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: mentor=%d", req.MentorID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Приводим период к границам горизонта бронирования
	startDate, endDate, err := resolveDateRange(req, now, uc.cfg.HorizonDays)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: date range rejected: %v", err)
		return nil, err
	}

	// 3. Получаем расписания ментора
	schedules, err := uc.resolveSchedules(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Активные правила ценообразования загружаем один раз на запрос
	rules, err := uc.pricingRepo.GetActive(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get pricing rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get pricing rules: %v", ErrInternal, err)
	}

	allSlots := make([]domain.AvailableSlot, 0)

	for _, schedule := range schedules {
		slots, err := uc.expandSchedule(ctx, schedule, rules, startDate, endDate, now)
		if err != nil {
			return nil, err
		}
		allSlots = append(allSlots, slots...)
	}

	sortSlots(allSlots)

	uc.logger.Info("GetAvailableSlots: generated %d slots for mentor=%d, period=%s..%s",
		len(allSlots), req.MentorID, startDate.Format(domain.DateFormat), endDate.Format(domain.DateFormat))

	return &Response{
		MentorID:  req.MentorID,
		StartDate: startDate,
		EndDate:   endDate,
		Slots:     allSlots,
	}, nil
}

// resolveSchedules возвращает расписания, по которым строятся слоты
func (uc *UseCase) resolveSchedules(ctx context.Context, req *Request) ([]*domain.Schedule, error) {
	if req.ScheduleID != nil {
		schedule, err := uc.scheduleRepo.GetScheduleByID(ctx, *req.ScheduleID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Warn("GetAvailableSlots: schedule id=%d not found", *req.ScheduleID)
				return nil, ErrScheduleNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get schedule id=%d: %v", *req.ScheduleID, err)
			return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		// Чужое или деактивированное расписание неотличимо от несуществующего
		if schedule.MentorID != req.MentorID || !schedule.IsActive {
			uc.logger.Warn("GetAvailableSlots: schedule id=%d not available for mentor=%d", *req.ScheduleID, req.MentorID)
			return nil, ErrScheduleNotFound
		}

		return []*domain.Schedule{schedule}, nil
	}

	schedules, err := uc.scheduleRepo.GetSchedulesByMentor(ctx, req.MentorID, false)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedules for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get schedules: %v", ErrInternal, err)
	}

	return schedules, nil
}

// expandSchedule строит слоты одного расписания: разворачивает окна,
// учитывает занятость и прикрепляет цену
func (uc *UseCase) expandSchedule(
	ctx context.Context,
	schedule *domain.Schedule,
	rules []*domain.PricingRule,
	startDate, endDate, now time.Time,
) ([]domain.AvailableSlot, error) {
	// Цена одинакова для всех слотов расписания, считаем её до расширения окон
	// Расписание без применимого правила не публикуется: забронировать его
	// всё равно нельзя
	quote, err := domain.EvaluatePrice(rules, priceRequestFor(schedule), uc.cfg.PricingDefaults)
	if err != nil {
		if errors.Is(err, domain.ErrNoApplicableRule) {
			uc.logger.Warn("GetAvailableSlots: no pricing rule for schedule id=%d, skipping", schedule.ID)
			return nil, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to price schedule id=%d: %v", schedule.ID, err)
		return nil, fmt.Errorf("%w: failed to price schedule: %v", ErrInternal, err)
	}

	windows, err := uc.scheduleRepo.GetWindowsBySchedule(ctx, schedule.ID, true)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get windows for schedule id=%d: %v", schedule.ID, err)
		return nil, fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
	}

	slots := expandWindows(schedule, windows, startDate, endDate, now, uc.cfg.MinBookingNoticeMinutes)
	if len(slots) == 0 {
		return nil, nil
	}

	bookings, err := uc.bookingRepo.GetActiveByScheduleAndPeriod(ctx, schedule.ID, startDate, endDate)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for schedule id=%d: %v", schedule.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	annotateCapacity(slots, bookings)

	for i := range slots {
		slots[i].Price = quote.FinalPrice
		slots[i].MentorEarnings = quote.MentorEarnings
		slots[i].PlatformEarnings = quote.PlatformEarnings
		slots[i].PricingRuleID = quote.RuleID
	}

	return slots, nil
}

// priceRequestFor собирает запрос на расчёт цены из параметров расписания
func priceRequestFor(schedule *domain.Schedule) domain.PriceRequest {
	level := ""
	if schedule.RequiredLevel != nil {
		level = *schedule.RequiredLevel
	}

	return domain.PriceRequest{
		MaterialIDs:     schedule.MaterialIDs,
		DurationMinutes: schedule.DurationMinutes,
		MeetingType:     schedule.MeetingType,
		Level:           level,
	}
}

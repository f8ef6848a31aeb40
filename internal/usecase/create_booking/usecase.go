package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/internal/infra/events"
	scheduleRepo "github.com/m04kA/MNT-BookingService/internal/infra/storage/schedule"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	pricingRepo  PricingRuleRepository
	txManager    TransactionManager
	publisher    EventPublisher
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	pricingRepo PricingRuleRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		pricingRepo:  pricingRepo,
		txManager:    txManager,
		publisher:    publisher,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка слота, пересчёт занятости и вставка выполняются в одной
// сериализуемой транзакции, чтобы исключить гонку за последнее место
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: student=%d, schedule=%d, date=%s, time=%s",
		req.StudentID, req.ScheduleID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем расписание
	schedule, err := uc.scheduleRepo.GetScheduleByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("CreateBooking: schedule id=%d not found", req.ScheduleID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("CreateBooking: failed to get schedule id=%d: %v", req.ScheduleID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	if !schedule.IsActive {
		uc.logger.Warn("CreateBooking: schedule id=%d is deactivated", req.ScheduleID)
		return nil, ErrScheduleNotFound
	}

	if schedule.MentorID == req.StudentID {
		uc.logger.Warn("CreateBooking: mentor id=%d attempted to book own schedule id=%d",
			req.StudentID, req.ScheduleID)
		return nil, ErrOwnSchedule
	}

	// 3. Валидация даты и времени
	if err := validateDate(req.Date, now, uc.cfg.HorizonDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	if err := validateBookingTime(req.Date, req.StartTime, now, uc.cfg.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Перечитываем окна доступности внутри транзакции
		windows, err := uc.scheduleRepo.GetWindowsBySchedule(txCtx, req.ScheduleID, true)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get windows for schedule id=%d: %v", req.ScheduleID, err)
			return fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
		}

		// 4.2. Проверяем, что слот всё ещё порождается окнами
		if !slotOffered(windows, req.Date, req.StartTime, schedule.DurationMinutes) {
			uc.logger.Warn("CreateBooking: slot %s %s is no longer offered for schedule id=%d",
				req.Date.Format(domain.DateFormat), req.StartTime, req.ScheduleID)
			return ErrSlotNoLongerOffered
		}

		// 4.3. Получаем активные бронирования на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetActiveByScheduleAndPeriod(txCtx, req.ScheduleID, req.Date, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 4.4. Проверяем вместимость слота по ключу (дата, время начала)
		occupied := countSlotBookings(req.Date, req.StartTime, bookings)
		if occupied >= schedule.MaxCapacity {
			uc.logger.Warn("CreateBooking: slot full, %d/%d spots taken", occupied, schedule.MaxCapacity)
			return ErrCapacityExceeded
		}

		uc.logger.Info("CreateBooking: slot available, %d/%d spots taken", occupied, schedule.MaxCapacity)

		// 4.5. Считаем цену по действующим правилам
		rules, err := uc.pricingRepo.GetActive(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get pricing rules: %v", err)
			return fmt.Errorf("%w: failed to get pricing rules: %v", ErrInternal, err)
		}

		quote, err := domain.EvaluatePrice(rules, priceRequestFor(schedule), uc.cfg.PricingDefaults)
		if err != nil {
			if errors.Is(err, domain.ErrNoApplicableRule) {
				uc.logger.Warn("CreateBooking: no pricing rule for schedule id=%d", req.ScheduleID)
				return ErrNoApplicablePricingRule
			}
			uc.logger.Error("CreateBooking: failed to price schedule id=%d: %v", req.ScheduleID, err)
			return fmt.Errorf("%w: failed to price schedule: %v", ErrInternal, err)
		}

		// 4.6. Создаём бронирование со снимком цены и данных расписания
		booking := &domain.Booking{
			MentorID:        schedule.MentorID,
			StudentID:       req.StudentID,
			ScheduleID:      schedule.ID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: schedule.DurationMinutes,
			Status:          domain.StatusPending,
			PaymentStatus:   domain.PaymentPending,

			Price:            quote.FinalPrice,
			MentorEarnings:   quote.MentorEarnings,
			PlatformEarnings: quote.PlatformEarnings,
			PricingRuleID:    quote.RuleID,

			ScheduleTitle: schedule.Title,
			MeetingType:   schedule.MeetingType,
			Notes:         req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 5. Публикуем событие после коммита транзакции
	uc.publisher.Publish(ctx, events.KeyBookingCreated, bookingEvent(result, now))

	return toResponse(result), nil
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

func bookingEvent(b *domain.Booking, now time.Time) events.BookingEvent {
	return events.BookingEvent{
		BookingID:     b.ID,
		MentorID:      b.MentorID,
		StudentID:     b.StudentID,
		ScheduleID:    b.ScheduleID,
		ScheduleTitle: b.ScheduleTitle,
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		StartTime:     string(b.StartTime),
		Status:        string(b.Status),
		Price:         b.Price.StringFixed(2),
		OccurredAt:    now.Format(time.RFC3339),
	}
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		MentorID:        b.MentorID,
		StudentID:       b.StudentID,
		ScheduleID:      b.ScheduleID,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),

		Price:            b.Price,
		MentorEarnings:   b.MentorEarnings,
		PlatformEarnings: b.PlatformEarnings,

		ScheduleTitle: b.ScheduleTitle,
		MeetingType:   string(b.MeetingType),
		Notes:         b.Notes,

		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/MNT-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/MNT-BookingService/internal/service/bookings/models"
)

// Причина отмены, записываемая при неуспешной оплате
const cancellationReasonPaymentFailed = "оплата не прошла"

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	txManager    TxManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TxManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Бронирование видят только его участники: студент и ментор
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if booking.StudentID != userID && booking.MentorID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetStudentBookings получает историю бронирований студента
// Опционально фильтрует по статусу
func (s *Service) GetStudentBookings(ctx context.Context, req *models.GetStudentBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetStudentBookings: fetching bookings for student=%d, status=%v", req.StudentID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetStudentBookings: invalid status=%s for student=%d", *req.Status, req.StudentID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByStudentID(ctx, req.StudentID, domainStatus)
	if err != nil {
		s.logger.Error("GetStudentBookings: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: GetStudentBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudentBookings: successfully fetched %d bookings for student=%d", len(bookings), req.StudentID)
	return models.FromDomainBookingList(bookings), nil
}

// GetMentorBookings получает бронирования ментора с гибкой фильтрацией
// Поддерживает фильтрацию по расписанию, периоду, статусу и включению отменённых
func (s *Service) GetMentorBookings(ctx context.Context, req *models.GetMentorBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetMentorBookings: fetching bookings for mentor=%d", req.MentorID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetMentorBookings: invalid filter for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByMentorWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetMentorBookings: repository error for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: GetMentorBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMentorBookings: successfully fetched %d bookings for mentor=%d", len(bookings), req.MentorID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Студент отменяет своё бронирование (cancelled_by_student),
// ментор - бронирование своего расписания (cancelled_by_mentor)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	var (
		booking      *domain.Booking
		cancelStatus domain.BookingStatus
	)

	// Чтение и обновление в одной транзакции: статус не успеет измениться
	// между проверкой и записью
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.getBooking(txCtx, bookingID, "Cancel")
		if err != nil {
			return err
		}
		booking = b

		if b.IsCancelled() {
			s.logger.Warn("Cancel: booking id=%d is already cancelled", bookingID)
			return ErrCannotCancel
		}

		if !b.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, b.Status)
			return ErrCannotCancel
		}

		switch req.UserID {
		case b.StudentID:
			cancelStatus = domain.StatusCancelledByStudent
		case b.MentorID:
			cancelStatus = domain.StatusCancelledByMentor
		default:
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}

		if err := s.bookingRepo.Cancel(txCtx, bookingID, cancelStatus, req.CancellationReason); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)

	booking.Status = cancelStatus
	s.publisher.Publish(ctx, events.KeyBookingCancelled, s.bookingEvent(booking))

	return nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только ментору расписания; переходы ограничены жизненным циклом
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Отмена идёт через Cancel, чтобы сохранялись причина и время отмены
	if newStatus == domain.StatusCancelledByStudent || newStatus == domain.StatusCancelledByMentor {
		s.logger.Warn("UpdateStatus: cancellation of booking id=%d must go through Cancel", bookingID)
		return fmt.Errorf("%w: use cancellation endpoint", ErrInvalidTransition)
	}

	var booking *domain.Booking

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.getBooking(txCtx, bookingID, "UpdateStatus")
		if err != nil {
			return err
		}
		booking = b

		if b.MentorID != req.UserID {
			s.logger.Warn("UpdateStatus: access denied for user=%d to booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}

		if !b.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: invalid transition %s -> %s for booking id=%d",
				b.Status, newStatus, bookingID)
			return ErrInvalidTransition
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)

	if newStatus == domain.StatusConfirmed {
		booking.Status = newStatus
		s.publisher.Publish(ctx, events.KeyBookingConfirmed, s.bookingEvent(booking))
	}

	return nil
}

// HandlePaymentEvent обрабатывает событие от платёжного шлюза
// Успешная оплата pending-бронирования подтверждает его, неуспешная отменяет
func (s *Service) HandlePaymentEvent(ctx context.Context, req *models.PaymentEventRequest) error {
	s.logger.Info("HandlePaymentEvent: booking id=%d, paymentStatus=%s", req.BookingID, req.PaymentStatus)

	paymentStatus, err := models.ToDomainPaymentStatus(req.PaymentStatus)
	if err != nil {
		s.logger.Warn("HandlePaymentEvent: invalid payment status=%s for booking id=%d", req.PaymentStatus, req.BookingID)
		return fmt.Errorf("%w: invalid payment status", ErrInvalidInput)
	}

	var (
		booking   *domain.Booking
		newStatus domain.BookingStatus
	)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.getBooking(txCtx, req.BookingID, "HandlePaymentEvent")
		if err != nil {
			return err
		}
		booking = b

		// Оплата pending-бронирования подтверждает его, неуспешная оплата
		// отменяет и освобождает место в слоте
		newStatus = b.Status
		if b.Status == domain.StatusPending {
			switch paymentStatus {
			case domain.PaymentPaid:
				newStatus = domain.StatusConfirmed
			case domain.PaymentFailed:
				newStatus = domain.StatusCancelledByStudent
			}
		}

		// Отмена фиксирует причину и время отмены, как и явный Cancel
		if newStatus != b.Status && newStatus == domain.StatusCancelledByStudent {
			if err := s.bookingRepo.Cancel(txCtx, req.BookingID, newStatus, cancellationReasonPaymentFailed); err != nil {
				if errors.Is(err, bookingRepo.ErrBookingNotFound) {
					s.logger.Warn("HandlePaymentEvent: booking id=%d not found during update", req.BookingID)
					return ErrBookingNotFound
				}
				s.logger.Error("HandlePaymentEvent: repository error for booking id=%d: %v", req.BookingID, err)
				return fmt.Errorf("%w: HandlePaymentEvent - repository error: %v", ErrInternal, err)
			}
		}

		if err := s.bookingRepo.UpdateStatusAndPayment(txCtx, req.BookingID, newStatus, paymentStatus); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("HandlePaymentEvent: booking id=%d not found during update", req.BookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("HandlePaymentEvent: repository error for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: HandlePaymentEvent - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("HandlePaymentEvent: booking id=%d updated to status=%s, paymentStatus=%s",
		req.BookingID, newStatus, paymentStatus)

	if newStatus != booking.Status {
		booking.Status = newStatus
		booking.PaymentStatus = paymentStatus
		switch newStatus {
		case domain.StatusConfirmed:
			s.publisher.Publish(ctx, events.KeyBookingConfirmed, s.bookingEvent(booking))
		case domain.StatusCancelledByStudent:
			s.publisher.Publish(ctx, events.KeyBookingCancelled, s.bookingEvent(booking))
		}
	}

	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) bookingEvent(b *domain.Booking) events.BookingEvent {
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
		OccurredAt:    s.timeProvider.Now().Format(time.RFC3339),
	}
}

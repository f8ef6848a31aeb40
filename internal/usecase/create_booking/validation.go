package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	if req.ScheduleID <= 0 {
		return fmt.Errorf("%w: scheduleID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime must be in HH:MM format", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не выходит за горизонт
func validateDate(requestDate, now time.Time, horizonDays int) error {
	dateOnly := truncateToDay(requestDate)
	today := truncateToDay(now)

	if dateOnly.Before(today) {
		return ErrInvalidDate
	}

	if dateOnly.After(today.AddDate(0, 0, horizonDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, horizonDays)
	}

	return nil
}

// validateBookingTime проверяет минимальное время до начала слота
// Действует только для бронирований на сегодня
func validateBookingTime(requestDate time.Time, startTime types.TimeString, now time.Time, minNoticeMinutes int) error {
	if !truncateToDay(requestDate).Equal(truncateToDay(now)) {
		return nil
	}

	minAllowed, err := types.NewTimeString(now).AddMinutes(minNoticeMinutes)
	if err != nil {
		return ErrTooLateToBook
	}

	if startTime.IsBefore(minAllowed) {
		return fmt.Errorf("%w: booking requires at least %d minutes notice", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}

// slotOffered проверяет, что запрошенное время начала порождается окнами
// доступности расписания на указанную дату
// Защита от устаревших слотов: окна могли измениться после показа списка
func slotOffered(windows []*domain.AvailabilityWindow, date time.Time, startTime types.TimeString, durationMinutes int) bool {
	if durationMinutes <= 0 {
		return false
	}

	for _, window := range windows {
		if !window.IsWellFormed() || !window.AppliesTo(date) {
			continue
		}

		current := window.StartTime
		for current.IsBefore(window.EndTime) {
			slotEnd, err := current.AddMinutes(durationMinutes)
			if err != nil || slotEnd.IsAfter(window.EndTime) {
				break
			}

			if current == startTime {
				return true
			}

			current, err = current.AddMinutes(durationMinutes)
			if err != nil {
				break
			}
		}
	}

	return false
}

// countSlotBookings подсчитывает активные бронирования слота по ключу (дата, время начала)
// Слоты смещённых окон пересекаются по времени, но места друг у друга не расходуют
func countSlotBookings(date time.Time, startTime types.TimeString, bookings []*domain.Booking) int {
	count := 0
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if !truncateToDay(booking.BookingDate).Equal(truncateToDay(date)) {
			continue
		}
		if booking.StartTime == startTime {
			count++
		}
	}

	return count
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package create_booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/pkg/types"
)

var testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func validRequest() *Request {
	return &Request{
		StudentID:  1,
		ScheduleID: 2,
		Date:       testMonday,
		StartTime:  types.TimeString("10:00"),
	}
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, validateRequest(validRequest()))

	req := validRequest()
	req.StudentID = 0
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	req.ScheduleID = -1
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	req.Date = time.Time{}
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	req.StartTime = types.TimeString("10am")
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	long := strings.Repeat("x", domain.MaxCancellationReasonLength+1)
	req.Notes = &long
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, validateDate(now, now, 30))
	assert.NoError(t, validateDate(now.AddDate(0, 0, 30), now, 30))

	assert.ErrorIs(t, validateDate(now.AddDate(0, 0, -1), now, 30), ErrInvalidDate)
	assert.ErrorIs(t, validateDate(now.AddDate(0, 0, 31), now, 30), ErrDateTooFarInFuture)
}

func TestValidateBookingTime(t *testing.T) {
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	// Будущие даты не ограничиваются
	assert.NoError(t, validateBookingTime(now.AddDate(0, 0, 1), "00:30", now, 60))

	// Сегодня: граница ровно now + 60 минут проходит
	assert.NoError(t, validateBookingTime(now, "11:00", now, 60))
	assert.ErrorIs(t, validateBookingTime(now, "10:30", now, 60), ErrTooLateToBook)

	// Порог за полночью - бронировать на сегодня уже поздно
	lateNow := time.Date(2026, 9, 7, 23, 30, 0, 0, time.UTC)
	assert.ErrorIs(t, validateBookingTime(lateNow, "23:45", lateNow, 60), ErrTooLateToBook)
}

func recurringWindow(day time.Weekday, start, end string) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		DayOfWeek:   day,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		IsRecurring: true,
		IsActive:    true,
	}
}

func TestSlotOffered(t *testing.T) {
	windows := []*domain.AvailabilityWindow{
		recurringWindow(time.Monday, "09:00", "12:00"),
	}

	// Слоты по 60 минут: 09:00, 10:00, 11:00
	assert.True(t, slotOffered(windows, testMonday, "09:00", 60))
	assert.True(t, slotOffered(windows, testMonday, "11:00", 60))

	// Время не на сетке слотов
	assert.False(t, slotOffered(windows, testMonday, "09:30", 60))

	// Слот не помещается в окно целиком
	assert.False(t, slotOffered(windows, testMonday, "11:00", 90))

	// Не тот день недели
	assert.False(t, slotOffered(windows, testMonday.AddDate(0, 0, 1), "09:00", 60))

	assert.False(t, slotOffered(windows, testMonday, "09:00", 0))
	assert.False(t, slotOffered(nil, testMonday, "09:00", 60))
}

func TestCountSlotBookings(t *testing.T) {
	mkBooking := func(start types.TimeString, status domain.BookingStatus) *domain.Booking {
		return &domain.Booking{
			BookingDate:     testMonday,
			StartTime:       start,
			DurationMinutes: 60,
			Status:          status,
		}
	}

	bookings := []*domain.Booking{
		mkBooking("09:00", domain.StatusPending),
		mkBooking("09:30", domain.StatusConfirmed),
		mkBooking("09:00", domain.StatusCancelledByMentor),
	}

	// Отменённые не считаются
	assert.Equal(t, 1, countSlotBookings(testMonday, "09:00", bookings))

	// Пересекающееся по времени бронирование 09:00 не занимает слот 09:30
	assert.Equal(t, 1, countSlotBookings(testMonday, "09:30", bookings))
	assert.Equal(t, 0, countSlotBookings(testMonday, "10:00", bookings))
	assert.Equal(t, 0, countSlotBookings(testMonday.AddDate(0, 0, 1), "09:00", bookings))
}

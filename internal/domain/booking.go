package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/MNT-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending            BookingStatus = "pending"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusCompleted          BookingStatus = "completed"
	StatusCancelledByStudent BookingStatus = "cancelled_by_student"
	StatusCancelledByMentor  BookingStatus = "cancelled_by_mentor"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// IsValidBookingStatus проверяет, что строка является допустимым статусом
func IsValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted,
		StatusCancelledByStudent, StatusCancelledByMentor:
		return true
	}
	return false
}

// Booking represents a mentoring session booking
type Booking struct {
	ID              int64
	MentorID        int64
	StudentID       int64
	ScheduleID      int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus
	PaymentStatus   PaymentStatus

	// Снимок цены на момент бронирования
	Price            decimal.Decimal
	MentorEarnings   decimal.Decimal
	PlatformEarnings decimal.Decimal
	PricingRuleID    int64

	// Denormalized data for history
	ScheduleTitle string
	MeetingType   MeetingType
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies a spot in its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByStudent && b.Status != StatusCancelledByMentor
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByStudent || b.Status == StatusCancelledByMentor
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransitionTo проверяет допустимость перехода статуса
// pending    -> confirmed | cancelled_by_*
// confirmed  -> completed | cancelled_by_*
// completed  -> (терминальный)
// cancelled_* -> (терминальный)
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed ||
			next == StatusCancelledByStudent ||
			next == StatusCancelledByMentor
	case StatusConfirmed:
		return next == StatusCompleted ||
			next == StatusCancelledByStudent ||
			next == StatusCancelledByMentor
	default:
		return false
	}
}

// MentorBookingsFilter фильтр для получения бронирований ментора
type MentorBookingsFilter struct {
	MentorID        int64          // Обязательный параметр
	ScheduleID      *int64         // Фильтр по расписанию (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
}

package models

import (
	"errors"
	"time"

	"github.com/m04kA/MNT-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidPaymentStatus возвращается при некорректном статусе оплаты
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// PaymentEventRequest событие от платёжного шлюза
type PaymentEventRequest struct {
	BookingID     int64  `json:"bookingId"`
	PaymentStatus string `json:"paymentStatus"` // paid | failed | refunded
}

// GetStudentBookingsRequest запрос на получение бронирований студента
type GetStudentBookingsRequest struct {
	StudentID int64   `json:"studentId"`
	Status    *string `json:"status,omitempty"`
}

// GetMentorBookingsRequest запрос на получение бронирований ментора
type GetMentorBookingsRequest struct {
	MentorID        int64      `json:"mentorId"`
	ScheduleID      *int64     `json:"scheduleId,omitempty"`      // Фильтр по расписанию (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetMentorBookingsRequest) ToDomainFilter() (domain.MentorBookingsFilter, error) {
	filter := domain.MentorBookingsFilter{
		MentorID:        r.MentorID,
		ScheduleID:      r.ScheduleID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	MentorID        int64  `json:"mentorId"`
	StudentID       int64  `json:"studentId"`
	ScheduleID      int64  `json:"scheduleId"`
	BookingDate     string `json:"bookingDate"` // "2025-10-15"
	StartTime       string `json:"startTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	PaymentStatus   string `json:"paymentStatus"`

	// Снимок цены на момент бронирования
	Price            string `json:"price"`
	MentorEarnings   string `json:"mentorEarnings"`
	PlatformEarnings string `json:"platformEarnings"`
	PricingRuleID    int64  `json:"pricingRuleId"`

	// Денормализованные данные расписания
	ScheduleTitle string  `json:"scheduleTitle"`
	MeetingType   string  `json:"meetingType"`
	Notes         *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		MentorID:        b.MentorID,
		StudentID:       b.StudentID,
		ScheduleID:      b.ScheduleID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),

		Price:            b.Price.StringFixed(2),
		MentorEarnings:   b.MentorEarnings.StringFixed(2),
		PlatformEarnings: b.PlatformEarnings.StringFixed(2),
		PricingRuleID:    b.PricingRuleID,

		ScheduleTitle: b.ScheduleTitle,
		MeetingType:   string(b.MeetingType),
		Notes:         b.Notes,

		CancellationReason: b.CancellationReason,

		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if resp := FromDomainBooking(b); resp != nil {
			result.Bookings = append(result.Bookings, *resp)
		}
	}

	return result
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	if !domain.IsValidBookingStatus(s) {
		return "", ErrInvalidStatus
	}
	return domain.BookingStatus(s), nil
}

// ToDomainPaymentStatus конвертирует строку в domain.PaymentStatus
func ToDomainPaymentStatus(s string) (domain.PaymentStatus, error) {
	switch domain.PaymentStatus(s) {
	case domain.PaymentPending, domain.PaymentPaid, domain.PaymentFailed, domain.PaymentRefunded:
		return domain.PaymentStatus(s), nil
	}
	return "", ErrInvalidPaymentStatus
}

package create_booking

import (
	"time"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	createBooking "github.com/m04kA/MNT-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/MNT-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ScheduleID  int64   `json:"scheduleId"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64  `json:"id"`
	MentorID        int64  `json:"mentorId"`
	StudentID       int64  `json:"studentId"`
	ScheduleID      int64  `json:"scheduleId"`
	BookingDate     string `json:"bookingDate"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	PaymentStatus   string `json:"paymentStatus"`

	Price            string `json:"price"`
	MentorEarnings   string `json:"mentorEarnings"`
	PlatformEarnings string `json:"platformEarnings"`

	ScheduleTitle string  `json:"scheduleTitle"`
	MeetingType   string  `json:"meetingType"`
	Notes         *string `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// studentID берётся из токена, а не из тела запроса
func (r *CreateBookingRequest) ToUseCaseRequest(studentID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		StudentID:  studentID,
		ScheduleID: r.ScheduleID,
		Date:       bookingDate,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		MentorID:        resp.MentorID,
		StudentID:       resp.StudentID,
		ScheduleID:      resp.ScheduleID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,

		Price:            resp.Price.StringFixed(2),
		MentorEarnings:   resp.MentorEarnings.StringFixed(2),
		PlatformEarnings: resp.PlatformEarnings.StringFixed(2),

		ScheduleTitle: resp.ScheduleTitle,
		MeetingType:   resp.MeetingType,
		Notes:         resp.Notes,

		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}

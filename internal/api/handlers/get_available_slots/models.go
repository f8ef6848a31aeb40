package get_available_slots

import (
	"github.com/m04kA/MNT-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/MNT-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель доступного слота
type SlotResponse struct {
	ScheduleID      int64  `json:"scheduleId"`
	Date            string `json:"date"`      // "2025-10-15"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`

	Price            string `json:"price"`
	MentorEarnings   string `json:"mentorEarnings"`
	PlatformEarnings string `json:"platformEarnings"`
}

// AvailableSlotsResponse HTTP модель ответа со списком слотов
type AvailableSlotsResponse struct {
	MentorID  int64          `json:"mentorId"`
	StartDate string         `json:"startDate"`
	EndDate   string         `json:"endDate"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			ScheduleID:      slot.ScheduleID,
			Date:            slot.Date.Format(domain.DateFormat),
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			AvailableSpots:  slot.AvailableSpots,
			TotalSpots:      slot.TotalSpots,

			Price:            slot.Price.StringFixed(2),
			MentorEarnings:   slot.MentorEarnings.StringFixed(2),
			PlatformEarnings: slot.PlatformEarnings.StringFixed(2),
		})
	}

	return &AvailableSlotsResponse{
		MentorID:  resp.MentorID,
		StartDate: resp.StartDate.Format(domain.DateFormat),
		EndDate:   resp.EndDate.Format(domain.DateFormat),
		Slots:     slots,
	}
}

package domain

import (
	"time"

	"github.com/m04kA/MNT-BookingService/pkg/types"
)

// MeetingType represents how a session is delivered
type MeetingType string

const (
	MeetingOnline  MeetingType = "online"
	MeetingOffline MeetingType = "offline"
)

// IsValidMeetingType проверяет, что строка является допустимым типом встречи
func IsValidMeetingType(s string) bool {
	return MeetingType(s) == MeetingOnline || MeetingType(s) == MeetingOffline
}

// Schedule defines the bookable "product" a mentor offers
type Schedule struct {
	ID              int64
	MentorID        int64
	Title           string
	Description     *string
	DurationMinutes int
	MaxCapacity     int
	MeetingType     MeetingType
	MaterialIDs     []int64
	RequiredLevel   *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AvailabilityWindow описывает окно доступности ментора для расписания
// Окно либо повторяется еженедельно (IsRecurring, DayOfWeek), либо
// действует на одну конкретную дату (SpecificDate)
type AvailabilityWindow struct {
	ID           int64
	MentorID     int64
	ScheduleID   int64
	DayOfWeek    time.Weekday // 0=Sunday ... 6=Saturday
	StartTime    types.TimeString
	EndTime      types.TimeString
	IsRecurring  bool
	SpecificDate *time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsWellFormed returns true if the window describes a non-empty time range
// Окно с EndTime <= StartTime не порождает ни одного слота
func (w *AvailabilityWindow) IsWellFormed() bool {
	if w.StartTime.Validate() != nil || w.EndTime.Validate() != nil {
		return false
	}
	if !w.StartTime.IsBefore(w.EndTime) {
		return false
	}
	if !w.IsRecurring && w.SpecificDate == nil {
		return false
	}
	return true
}

// AppliesTo проверяет, действует ли окно на указанную дату
func (w *AvailabilityWindow) AppliesTo(date time.Time) bool {
	if !w.IsActive {
		return false
	}
	if w.IsRecurring {
		return date.Weekday() == w.DayOfWeek
	}
	if w.SpecificDate == nil {
		return false
	}
	y1, m1, d1 := w.SpecificDate.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

package models

import (
	"time"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/pkg/types"
)

// Request модели

// CreateScheduleRequest запрос на создание расписания
type CreateScheduleRequest struct {
	MentorID        int64   `json:"mentorId"`
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	MaxCapacity     int     `json:"maxCapacity"`
	MeetingType     string  `json:"meetingType"`
	MaterialIDs     []int64 `json:"materialIds"`
	RequiredLevel   *string `json:"requiredLevel,omitempty"`
}

// UpdateScheduleRequest запрос на обновление расписания
// Обновляются только переданные поля
type UpdateScheduleRequest struct {
	UserID          int64    `json:"userId"`
	Title           *string  `json:"title,omitempty"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	MaxCapacity     *int     `json:"maxCapacity,omitempty"`
	MeetingType     *string  `json:"meetingType,omitempty"`
	MaterialIDs     *[]int64 `json:"materialIds,omitempty"`
	RequiredLevel   *string  `json:"requiredLevel,omitempty"`
}

// WindowInput окно доступности в запросе на замену окон
type WindowInput struct {
	DayOfWeek    int    `json:"dayOfWeek"` // 0=Sunday ... 6=Saturday
	StartTime    string `json:"startTime"` // "09:00"
	EndTime      string `json:"endTime"`   // "18:00"
	IsRecurring  bool   `json:"isRecurring"`
	SpecificDate *string `json:"specificDate,omitempty"` // "2025-10-15", для одноразовых окон
}

// ReplaceWindowsRequest запрос на полную замену окон доступности расписания
type ReplaceWindowsRequest struct {
	UserID  int64         `json:"userId"`
	Windows []WindowInput `json:"windows"`
}

// Response модели

// ScheduleResponse ответ с данными расписания
type ScheduleResponse struct {
	ID              int64   `json:"id"`
	MentorID        int64   `json:"mentorId"`
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	MaxCapacity     int     `json:"maxCapacity"`
	MeetingType     string  `json:"meetingType"`
	MaterialIDs     []int64 `json:"materialIds"`
	RequiredLevel   *string `json:"requiredLevel,omitempty"`
	IsActive        bool    `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ScheduleListResponse ответ со списком расписаний
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// WindowResponse ответ с данными окна доступности
type WindowResponse struct {
	ID           int64   `json:"id"`
	ScheduleID   int64   `json:"scheduleId"`
	DayOfWeek    int     `json:"dayOfWeek"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	IsRecurring  bool    `json:"isRecurring"`
	SpecificDate *string `json:"specificDate,omitempty"`
	IsActive     bool    `json:"isActive"`
}

// WindowListResponse ответ со списком окон доступности
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.Schedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	return &ScheduleResponse{
		ID:              s.ID,
		MentorID:        s.MentorID,
		Title:           s.Title,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		MaxCapacity:     s.MaxCapacity,
		MeetingType:     string(s.MeetingType),
		MaterialIDs:     s.MaterialIDs,
		RequiredLevel:   s.RequiredLevel,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainScheduleList конвертирует список domain моделей в DTO
func FromDomainScheduleList(schedules []*domain.Schedule) *ScheduleListResponse {
	result := &ScheduleListResponse{
		Schedules: make([]ScheduleResponse, 0, len(schedules)),
	}

	for _, s := range schedules {
		if resp := FromDomainSchedule(s); resp != nil {
			result.Schedules = append(result.Schedules, *resp)
		}
	}

	return result
}

// FromDomainWindow конвертирует domain модель окна в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	resp := &WindowResponse{
		ID:          w.ID,
		ScheduleID:  w.ScheduleID,
		DayOfWeek:   int(w.DayOfWeek),
		StartTime:   w.StartTime.String(),
		EndTime:     w.EndTime.String(),
		IsRecurring: w.IsRecurring,
		IsActive:    w.IsActive,
	}

	if w.SpecificDate != nil {
		date := w.SpecificDate.Format(domain.DateFormat)
		resp.SpecificDate = &date
	}

	return resp
}

// FromDomainWindowList конвертирует список domain моделей окон в DTO
func FromDomainWindowList(windows []*domain.AvailabilityWindow) *WindowListResponse {
	result := &WindowListResponse{
		Windows: make([]WindowResponse, 0, len(windows)),
	}

	for _, w := range windows {
		if resp := FromDomainWindow(w); resp != nil {
			result.Windows = append(result.Windows, *resp)
		}
	}

	return result
}

// ToDomainWindow конвертирует входное окно в domain модель
func (w *WindowInput) ToDomainWindow(mentorID, scheduleID int64) (*domain.AvailabilityWindow, error) {
	startTime, err := types.NewTimeStringFromString(w.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(w.EndTime)
	if err != nil {
		return nil, err
	}

	window := &domain.AvailabilityWindow{
		MentorID:    mentorID,
		ScheduleID:  scheduleID,
		DayOfWeek:   time.Weekday(w.DayOfWeek),
		StartTime:   startTime,
		EndTime:     endTime,
		IsRecurring: w.IsRecurring,
		IsActive:    true,
	}

	if w.SpecificDate != nil {
		date, err := time.Parse(domain.DateFormat, *w.SpecificDate)
		if err != nil {
			return nil, err
		}
		window.SpecificDate = &date
		window.DayOfWeek = date.Weekday()
	}

	return window, nil
}

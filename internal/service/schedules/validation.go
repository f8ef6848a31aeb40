package schedules

import (
	"fmt"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/internal/service/schedules/models"
)

// validLevels допустимые уровни материалов
var validLevels = map[string]struct{}{
	"beginner":     {},
	"intermediate": {},
	"advanced":     {},
}

// validateCreateRequest валидирует запрос на создание расписания
func validateCreateRequest(req *models.CreateScheduleRequest) error {
	if req.MentorID <= 0 {
		return fmt.Errorf("%w: mentorID must be positive", ErrInvalidInput)
	}

	schedule := &domain.Schedule{
		Title:           req.Title,
		DurationMinutes: req.DurationMinutes,
		MaxCapacity:     req.MaxCapacity,
		MeetingType:     domain.MeetingType(req.MeetingType),
		MaterialIDs:     req.MaterialIDs,
		RequiredLevel:   req.RequiredLevel,
	}

	return validateSchedule(schedule)
}

// validateSchedule валидирует параметры расписания
func validateSchedule(s *domain.Schedule) error {
	if s.Title == "" || len(s.Title) > domain.MaxScheduleTitleLength {
		return fmt.Errorf("%w: title must be 1-%d characters", ErrInvalidInput, domain.MaxScheduleTitleLength)
	}

	if s.DurationMinutes < domain.MinSessionDurationMinutes || s.DurationMinutes > domain.MaxSessionDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}

	if s.MaxCapacity < domain.MinScheduleCapacity || s.MaxCapacity > domain.MaxScheduleCapacity {
		return fmt.Errorf("%w: maxCapacity must be between %d and %d",
			ErrInvalidInput, domain.MinScheduleCapacity, domain.MaxScheduleCapacity)
	}

	if !domain.IsValidMeetingType(string(s.MeetingType)) {
		return fmt.Errorf("%w: meetingType must be online or offline", ErrInvalidInput)
	}

	if len(s.MaterialIDs) == 0 {
		return fmt.Errorf("%w: materialIds are required", ErrInvalidInput)
	}

	for _, id := range s.MaterialIDs {
		if id <= 0 {
			return fmt.Errorf("%w: materialIds must be positive", ErrInvalidInput)
		}
	}

	if s.RequiredLevel != nil {
		if _, ok := validLevels[*s.RequiredLevel]; !ok {
			return fmt.Errorf("%w: requiredLevel must be beginner, intermediate or advanced", ErrInvalidInput)
		}
	}

	return nil
}

// toValidatedWindow конвертирует и валидирует входное окно доступности
func toValidatedWindow(input *models.WindowInput, mentorID, scheduleID int64) (*domain.AvailabilityWindow, error) {
	if input.DayOfWeek < 0 || input.DayOfWeek > 6 {
		return nil, fmt.Errorf("%w: dayOfWeek must be 0-6", ErrInvalidWindow)
	}

	if !input.IsRecurring && input.SpecificDate == nil {
		return nil, fmt.Errorf("%w: non-recurring window requires specificDate", ErrInvalidWindow)
	}

	window, err := input.ToDomainWindow(mentorID, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}

	if !window.IsWellFormed() {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidWindow)
	}

	return window, nil
}

package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.MentorID <= 0 {
		return fmt.Errorf("%w: mentorID must be positive", ErrInvalidInput)
	}

	if req.ScheduleID != nil && *req.ScheduleID <= 0 {
		return fmt.Errorf("%w: scheduleID must be positive", ErrInvalidInput)
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidDateRange)
	}

	return nil
}

// resolveDateRange приводит запрошенный период к границам горизонта
// Возвращает ошибку, если период целиком за горизонтом или в прошлом
func resolveDateRange(req *Request, now time.Time, horizonDays int) (time.Time, time.Time, error) {
	today := truncateToDay(now)
	horizonEnd := today.AddDate(0, 0, horizonDays)

	start := today
	if req.StartDate != nil && truncateToDay(*req.StartDate).After(today) {
		start = truncateToDay(*req.StartDate)
	}

	end := horizonEnd
	if req.EndDate != nil {
		end = truncateToDay(*req.EndDate)
	}

	if start.After(horizonEnd) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, horizonDays)
	}

	// Конец периода обрезается по горизонту, а не отклоняется
	if end.After(horizonEnd) {
		end = horizonEnd
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: requested period is entirely in the past", ErrInvalidDateRange)
	}

	return start, end, nil
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

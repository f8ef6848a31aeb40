package get_mentor_schedules

import (
	"context"

	"github.com/m04kA/MNT-BookingService/internal/service/schedules/models"
)

type ScheduleService interface {
	GetMentorSchedules(ctx context.Context, mentorID int64, includeInactive bool) (*models.ScheduleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

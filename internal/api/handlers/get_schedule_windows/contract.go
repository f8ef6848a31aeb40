package get_schedule_windows

import (
	"context"

	"github.com/m04kA/MNT-BookingService/internal/service/schedules/models"
)

type ScheduleService interface {
	GetWindows(ctx context.Context, scheduleID int64) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package set_availability

import (
	"context"

	"github.com/m04kA/MNT-BookingService/internal/service/schedules/models"
)

type ScheduleService interface {
	ReplaceWindows(ctx context.Context, scheduleID int64, req *models.ReplaceWindowsRequest) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package delete_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MNT-BookingService/internal/api/handlers"
	"github.com/m04kA/MNT-BookingService/internal/api/middleware"
	"github.com/m04kA/MNT-BookingService/internal/service/schedules"
)

const (
	msgInvalidScheduleID = "некорректный ID расписания"
	msgScheduleNotFound  = "расписание не найдено"
	msgAccessDenied      = "нет доступа к этому расписанию"
	msgUnauthorized      = "требуется авторизация"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/schedules/{scheduleId}
// Расписание деактивируется, существующие бронирования сохраняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	scheduleID, err := strconv.ParseInt(vars["scheduleId"], 10, 64)
	if err != nil || scheduleID <= 0 {
		h.logger.Warn("DELETE /schedules/{scheduleId} - Invalid schedule ID: %s", vars["scheduleId"])
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	if err := h.service.Deactivate(r.Context(), scheduleID, userID); err != nil {
		switch {
		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("DELETE /schedules/%d - Schedule not found", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, schedules.ErrAccessDenied):
			h.logger.Warn("DELETE /schedules/%d - Access denied for user=%d", scheduleID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /schedules/%d - Failed to deactivate schedule: %v", scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedules/%d - Schedule deactivated successfully by user=%d", scheduleID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

package set_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MNT-BookingService/internal/api/handlers"
	"github.com/m04kA/MNT-BookingService/internal/api/middleware"
	"github.com/m04kA/MNT-BookingService/internal/service/schedules"
	"github.com/m04kA/MNT-BookingService/internal/service/schedules/models"
)

const (
	msgInvalidScheduleID  = "некорректный ID расписания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgScheduleNotFound   = "расписание не найдено"
	msgInvalidWindow      = "некорректное окно доступности"
	msgAccessDenied       = "нет доступа к этому расписанию"
	msgUnauthorized       = "требуется авторизация"
)

// ReplaceWindowsRequest HTTP request model
type ReplaceWindowsRequest struct {
	Windows []models.WindowInput `json:"windows"`
}

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

// Handle PUT /api/v1/schedules/{scheduleId}/windows
// Полная замена окон доступности расписания
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	scheduleID, err := strconv.ParseInt(vars["scheduleId"], 10, 64)
	if err != nil || scheduleID <= 0 {
		h.logger.Warn("PUT /schedules/{scheduleId}/windows - Invalid schedule ID: %s", vars["scheduleId"])
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	var req ReplaceWindowsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedules/%d/windows - Invalid request body: %v", scheduleID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceWindows(r.Context(), scheduleID, &models.ReplaceWindowsRequest{
		UserID:  userID,
		Windows: req.Windows,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("PUT /schedules/%d/windows - Schedule not found", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, schedules.ErrAccessDenied):
			h.logger.Warn("PUT /schedules/%d/windows - Access denied for user=%d", scheduleID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, schedules.ErrInvalidWindow):
			h.logger.Warn("PUT /schedules/%d/windows - Invalid window: %v", scheduleID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("PUT /schedules/%d/windows - Failed to replace windows: %v", scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedules/%d/windows - Windows replaced successfully by user=%d, count=%d",
		scheduleID, userID, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}

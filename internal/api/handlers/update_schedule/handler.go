package update_schedule

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
	msgMaterialNotFound   = "материал не найден в каталоге"
	msgAccessDenied       = "нет доступа к этому расписанию"
	msgUnauthorized       = "требуется авторизация"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	Title           *string  `json:"title,omitempty"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	MaxCapacity     *int     `json:"maxCapacity,omitempty"`
	MeetingType     *string  `json:"meetingType,omitempty"`
	MaterialIDs     *[]int64 `json:"materialIds,omitempty"`
	RequiredLevel   *string  `json:"requiredLevel,omitempty"`
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

// Handle PATCH /api/v1/schedules/{scheduleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	scheduleID, err := strconv.ParseInt(vars["scheduleId"], 10, 64)
	if err != nil || scheduleID <= 0 {
		h.logger.Warn("PATCH /schedules/{scheduleId} - Invalid schedule ID: %s", vars["scheduleId"])
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /schedules/%d - Invalid request body: %v", scheduleID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), scheduleID, &models.UpdateScheduleRequest{
		UserID:          userID,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		MaxCapacity:     req.MaxCapacity,
		MeetingType:     req.MeetingType,
		MaterialIDs:     req.MaterialIDs,
		RequiredLevel:   req.RequiredLevel,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("PATCH /schedules/%d - Schedule not found", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, schedules.ErrAccessDenied):
			h.logger.Warn("PATCH /schedules/%d - Access denied for user=%d", scheduleID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, schedules.ErrMaterialNotFound):
			h.logger.Warn("PATCH /schedules/%d - Material not found", scheduleID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgMaterialNotFound)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("PATCH /schedules/%d - Invalid input: %v", scheduleID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /schedules/%d - Failed to update schedule: %v", scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /schedules/%d - Schedule updated successfully by user=%d", scheduleID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

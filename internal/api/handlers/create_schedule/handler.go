package create_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/MNT-BookingService/internal/api/handlers"
	"github.com/m04kA/MNT-BookingService/internal/api/middleware"
	"github.com/m04kA/MNT-BookingService/internal/service/schedules"
	"github.com/m04kA/MNT-BookingService/internal/service/schedules/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMaterialNotFound   = "материал не найден в каталоге"
	msgUnauthorized       = "требуется авторизация"
)

// CreateScheduleRequest HTTP request model
type CreateScheduleRequest struct {
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	MaxCapacity     int     `json:"maxCapacity"`
	MeetingType     string  `json:"meetingType"`
	MaterialIDs     []int64 `json:"materialIds"`
	RequiredLevel   *string `json:"requiredLevel,omitempty"`
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

// Handle POST /api/v1/schedules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &models.CreateScheduleRequest{
		MentorID:        mentorID,
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
		case errors.Is(err, schedules.ErrMaterialNotFound):
			h.logger.Warn("POST /schedules - Material not found: mentor_id=%d, materials=%v", mentorID, req.MaterialIDs)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgMaterialNotFound)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("POST /schedules - Invalid input: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /schedules - Failed to create schedule: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedules - Schedule created successfully: schedule_id=%d, mentor_id=%d", result.ID, mentorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

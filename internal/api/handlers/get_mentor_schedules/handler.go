package get_mentor_schedules

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MNT-BookingService/internal/api/handlers"
	"github.com/m04kA/MNT-BookingService/internal/api/middleware"
)

const msgInvalidMentorID = "некорректный ID ментора"

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

// Handle GET /api/v1/mentors/{mentorId}/schedules
// Деактивированные расписания видит только сам ментор (includeInactive=true)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil || mentorID <= 0 {
		h.logger.Warn("GET /mentors/{mentorId}/schedules - Invalid mentor ID: %s", vars["mentorId"])
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	includeInactive := false
	if r.URL.Query().Get("includeInactive") == "true" {
		// Флаг действует только для владельца расписаний
		if userID, ok := middleware.GetUserID(r.Context()); ok && userID == mentorID {
			includeInactive = true
		}
	}

	result, err := h.service.GetMentorSchedules(r.Context(), mentorID, includeInactive)
	if err != nil {
		h.logger.Error("GET /mentors/%d/schedules - Failed to get schedules: %v", mentorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /mentors/%d/schedules - Returned %d schedules", mentorID, len(result.Schedules))
	handlers.RespondJSON(w, http.StatusOK, result)
}

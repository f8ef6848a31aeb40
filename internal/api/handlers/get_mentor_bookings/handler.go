package get_mentor_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/MNT-BookingService/internal/api/handlers"
	"github.com/m04kA/MNT-BookingService/internal/api/middleware"
	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/internal/service/bookings"
	"github.com/m04kA/MNT-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidMentorID   = "некорректный ID ментора"
	msgInvalidScheduleID = "некорректный ID расписания"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter     = "некорректные параметры фильтрации"
	msgAccessDenied      = "можно смотреть только свои бронирования"
	msgUnauthorized      = "требуется авторизация"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/mentors/{mentorId}/bookings
// Query параметры: scheduleId, startDate, endDate, status, includeInactive (все опциональные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil || mentorID <= 0 {
		h.logger.Warn("GET /mentors/{mentorId}/bookings - Invalid mentor ID: %s", vars["mentorId"])
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	// Бронирования расписаний видит только сам ментор
	if mentorID != userID {
		h.logger.Warn("GET /mentors/%d/bookings - Access denied for user=%d", mentorID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req := &models.GetMentorBookingsRequest{MentorID: mentorID}
	query := r.URL.Query()

	if raw := query.Get("scheduleId"); raw != "" {
		scheduleID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || scheduleID <= 0 {
			h.logger.Warn("GET /mentors/%d/bookings - Invalid schedule ID: %s", mentorID, raw)
			handlers.RespondBadRequest(w, msgInvalidScheduleID)
			return
		}
		req.ScheduleID = &scheduleID
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /mentors/%d/bookings - Invalid start date: %s", mentorID, raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /mentors/%d/bookings - Invalid end date: %s", mentorID, raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetMentorBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /mentors/%d/bookings - Invalid filter: %v", mentorID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /mentors/%d/bookings - Failed to get bookings: %v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /mentors/%d/bookings - Returned %d bookings", mentorID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}

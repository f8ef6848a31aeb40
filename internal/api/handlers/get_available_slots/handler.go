package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/MNT-BookingService/internal/api/handlers"
	"github.com/m04kA/MNT-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/MNT-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidMentorID   = "некорректный ID ментора"
	msgInvalidScheduleID = "некорректный ID расписания"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange  = "некорректный период запроса"
	msgDateTooFar        = "дата выходит за горизонт бронирования"
	msgScheduleNotFound  = "расписание не найдено"
	msgInvalidInput      = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/mentors/{mentorId}/available-slots
// Query параметры: scheduleId, startDate, endDate (все опциональные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil || mentorID <= 0 {
		h.logger.Warn("GET /mentors/{mentorId}/available-slots - Invalid mentor ID: %s", vars["mentorId"])
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	req := &getAvailableSlots.Request{MentorID: mentorID}

	query := r.URL.Query()

	if raw := query.Get("scheduleId"); raw != "" {
		scheduleID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || scheduleID <= 0 {
			h.logger.Warn("GET /mentors/%d/available-slots - Invalid schedule ID: %s", mentorID, raw)
			handlers.RespondBadRequest(w, msgInvalidScheduleID)
			return
		}
		req.ScheduleID = &scheduleID
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /mentors/%d/available-slots - Invalid start date: %s", mentorID, raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /mentors/%d/available-slots - Invalid end date: %s", mentorID, raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrScheduleNotFound):
			h.logger.Warn("GET /mentors/%d/available-slots - Schedule not found", mentorID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /mentors/%d/available-slots - Date too far in future", mentorID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidDateRange):
			h.logger.Warn("GET /mentors/%d/available-slots - Invalid date range", mentorID)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /mentors/%d/available-slots - Invalid input: %v", mentorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /mentors/%d/available-slots - Failed to get slots: %v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /mentors/%d/available-slots - Returned %d slots", mentorID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

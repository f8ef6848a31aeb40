package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/MNT-BookingService/internal/api/handlers"
	"github.com/m04kA/MNT-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/MNT-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgScheduleNotFound   = "расписание не найдено"
	msgOwnSchedule        = "нельзя забронировать собственное расписание"
	msgSlotNotOffered     = "выбранный слот больше не предлагается ментором"
	msgCapacityExceeded   = "все места в выбранном слоте заняты"
	msgNoPricingRule      = "для выбранной сессии не настроена цена"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgUnauthorized       = "требуется авторизация"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(studentID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrScheduleNotFound):
			h.logger.Warn("POST /bookings - Schedule not found: schedule_id=%d", req.ScheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, createBooking.ErrOwnSchedule):
			h.logger.Warn("POST /bookings - Own schedule: student_id=%d, schedule_id=%d", studentID, req.ScheduleID)
			handlers.RespondForbidden(w, msgOwnSchedule)

		case errors.Is(err, createBooking.ErrSlotNoLongerOffered):
			h.logger.Warn("POST /bookings - Slot no longer offered: student_id=%d, schedule_id=%d", studentID, req.ScheduleID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotOffered)

		case errors.Is(err, createBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: student_id=%d, schedule_id=%d", studentID, req.ScheduleID)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		case errors.Is(err, createBooking.ErrNoApplicablePricingRule):
			h.logger.Warn("POST /bookings - No pricing rule: schedule_id=%d", req.ScheduleID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNoPricingRule)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: student_id=%d", studentID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: student_id=%d", studentID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: student_id=%d", studentID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: student_id=%d, error=%v", studentID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: student_id=%d, schedule_id=%d, error=%v",
				studentID, req.ScheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, student_id=%d, schedule_id=%d",
		result.ID, studentID, req.ScheduleID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

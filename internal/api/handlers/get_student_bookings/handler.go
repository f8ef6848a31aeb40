package get_student_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MNT-BookingService/internal/api/handlers"
	"github.com/m04kA/MNT-BookingService/internal/api/middleware"
	"github.com/m04kA/MNT-BookingService/internal/service/bookings"
	"github.com/m04kA/MNT-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidStudentID = "некорректный ID студента"
	msgInvalidStatus    = "некорректный статус бронирования"
	msgAccessDenied     = "можно смотреть только свои бронирования"
	msgUnauthorized     = "требуется авторизация"
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

// Handle GET /api/v1/students/{studentId}/bookings
// Query параметры: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	studentID, err := strconv.ParseInt(vars["studentId"], 10, 64)
	if err != nil || studentID <= 0 {
		h.logger.Warn("GET /students/{studentId}/bookings - Invalid student ID: %s", vars["studentId"])
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	// Историю бронирований видит только сам студент
	if studentID != userID {
		h.logger.Warn("GET /students/%d/bookings - Access denied for user=%d", studentID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req := &models.GetStudentBookingsRequest{StudentID: studentID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetStudentBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /students/%d/bookings - Invalid status filter", studentID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /students/%d/bookings - Failed to get bookings: %v", studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /students/%d/bookings - Returned %d bookings", studentID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}

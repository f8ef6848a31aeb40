package payment_webhook

import (
	"errors"
	"net/http"

	"github.com/m04kA/MNT-BookingService/internal/api/handlers"
	"github.com/m04kA/MNT-BookingService/internal/service/bookings"
	"github.com/m04kA/MNT-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
)

// PaymentEventRequest HTTP request model
type PaymentEventRequest struct {
	BookingID     int64  `json:"bookingId"`
	PaymentStatus string `json:"paymentStatus"` // paid | failed | refunded
}

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

// Handle POST /api/v1/webhooks/payment
// Аутентификация общим секретом выполняется в middleware.WebhookAuth
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PaymentEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /webhooks/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.BookingID <= 0 {
		h.logger.Warn("POST /webhooks/payment - Invalid booking ID: %d", req.BookingID)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := h.service.HandlePaymentEvent(r.Context(), &models.PaymentEventRequest{
		BookingID:     req.BookingID,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /webhooks/payment - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /webhooks/payment - Invalid payment status: %s", req.PaymentStatus)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /webhooks/payment - Failed to handle event: booking_id=%d, error=%v",
				req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /webhooks/payment - Event processed: booking_id=%d, status=%s",
		req.BookingID, req.PaymentStatus)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

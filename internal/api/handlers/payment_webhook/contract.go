package payment_webhook

import (
	"context"

	"github.com/m04kA/MNT-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	HandlePaymentEvent(ctx context.Context, req *models.PaymentEventRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

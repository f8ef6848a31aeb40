package price_session

import (
	"context"

	priceSession "github.com/m04kA/MNT-BookingService/internal/usecase/price_session"
)

type PriceSessionUseCase interface {
	Execute(ctx context.Context, req *priceSession.Request) (*priceSession.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package bookings

import (
	"context"
	"time"

	"github.com/m04kA/MNT-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByStudentID(ctx context.Context, studentID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByMentorWithFilter(ctx context.Context, filter domain.MentorBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdateStatusAndPayment(ctx context.Context, id int64, status domain.BookingStatus, paymentStatus domain.PaymentStatus) error
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error
}

// TxManager интерфейс для управления транзакциями
// Переходы статусов выполняются атомарно: чтение и обновление в одной транзакции
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий для сервиса уведомлений
type EventPublisher interface {
	Publish(ctx context.Context, key string, payload interface{})
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

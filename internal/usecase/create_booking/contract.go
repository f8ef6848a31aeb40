package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/MNT-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetActiveByScheduleAndPeriod внутри транзакции блокирует строки (FOR UPDATE)
	GetActiveByScheduleAndPeriod(ctx context.Context, scheduleID int64, from, to time.Time) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписаний и окон доступности
type ScheduleRepository interface {
	GetScheduleByID(ctx context.Context, id int64) (*domain.Schedule, error)
	GetWindowsBySchedule(ctx context.Context, scheduleID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error)
}

// PricingRuleRepository интерфейс репозитория правил ценообразования
type PricingRuleRepository interface {
	GetActive(ctx context.Context) ([]*domain.PricingRule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

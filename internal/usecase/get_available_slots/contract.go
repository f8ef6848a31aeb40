package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/MNT-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByScheduleAndPeriod получает активные бронирования расписания за период
	GetActiveByScheduleAndPeriod(ctx context.Context, scheduleID int64, from, to time.Time) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписаний и окон доступности
type ScheduleRepository interface {
	GetScheduleByID(ctx context.Context, id int64) (*domain.Schedule, error)
	GetSchedulesByMentor(ctx context.Context, mentorID int64, includeInactive bool) ([]*domain.Schedule, error)
	GetWindowsBySchedule(ctx context.Context, scheduleID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error)
}

// PricingRuleRepository интерфейс репозитория правил ценообразования
type PricingRuleRepository interface {
	GetActive(ctx context.Context) ([]*domain.PricingRule, error)
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

package schedules

import (
	"context"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/internal/integrations/catalogservice"
)

// ScheduleRepository интерфейс репозитория расписаний и окон доступности
type ScheduleRepository interface {
	CreateSchedule(ctx context.Context, s *domain.Schedule) (*domain.Schedule, error)
	GetScheduleByID(ctx context.Context, id int64) (*domain.Schedule, error)
	GetSchedulesByMentor(ctx context.Context, mentorID int64, includeInactive bool) ([]*domain.Schedule, error)
	UpdateSchedule(ctx context.Context, id int64, s *domain.Schedule) (*domain.Schedule, error)
	DeactivateSchedule(ctx context.Context, id int64) error
	GetWindowsBySchedule(ctx context.Context, scheduleID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error)
	ReplaceWindows(ctx context.Context, scheduleID int64, windows []*domain.AvailabilityWindow) ([]*domain.AvailabilityWindow, error)
}

// TxManager интерфейс для управления транзакциями
// Замена окон деактивирует старые и вставляет новые в одной транзакции
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// CatalogServiceClient интерфейс клиента каталога материалов
type CatalogServiceClient interface {
	GetMaterials(ctx context.Context, ids []int64) ([]*catalogservice.Material, error)
}

// EventPublisher интерфейс публикации событий для сервиса уведомлений
type EventPublisher interface {
	Publish(ctx context.Context, key string, payload interface{})
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

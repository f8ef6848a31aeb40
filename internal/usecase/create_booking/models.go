package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/pkg/types"
)

// Config параметры бронирования, передаются из конфигурации сервиса
type Config struct {
	HorizonDays             int
	MinBookingNoticeMinutes int
	PricingDefaults         domain.PricingDefaults
}

// Request модель запроса на создание бронирования
type Request struct {
	StudentID  int64            // ID студента (из токена)
	ScheduleID int64            // ID расписания
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала слота (например, "10:00")
	Notes      *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	MentorID        int64
	StudentID       int64
	ScheduleID      int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	PaymentStatus   string

	// Снимок цены на момент бронирования
	Price            decimal.Decimal
	MentorEarnings   decimal.Decimal
	PlatformEarnings decimal.Decimal

	// Денормализованные данные расписания
	ScheduleTitle string
	MeetingType   string
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

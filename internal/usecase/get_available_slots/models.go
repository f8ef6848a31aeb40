package get_available_slots

import (
	"time"

	"github.com/m04kA/MNT-BookingService/internal/domain"
)

// Config параметры генерации слотов, передаются из конфигурации сервиса
type Config struct {
	HorizonDays             int // максимальная глубина расширения окон, в днях
	MinBookingNoticeMinutes int // минимальное время до начала слота сегодня
	PricingDefaults         domain.PricingDefaults
}

// Request модель запроса на получение доступных слотов
type Request struct {
	MentorID   int64      // ID ментора
	ScheduleID *int64     // ID расписания; nil = все активные расписания ментора
	StartDate  *time.Time // Начало периода; nil = сегодня
	EndDate    *time.Time // Конец периода; nil = конец горизонта
}

// Response модель ответа со списком доступных слотов
type Response struct {
	MentorID  int64
	StartDate time.Time
	EndDate   time.Time
	Slots     []domain.AvailableSlot
}

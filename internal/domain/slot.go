package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/MNT-BookingService/pkg/types"
)

// AvailableSlot кандидат на бронирование, вычисляется на каждый запрос
// и никогда не сохраняется
type AvailableSlot struct {
	ScheduleID      int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	AvailableSpots  int // Свободные места
	TotalSpots      int // Вместимость слота

	// Цена, рассчитанная для этого слота
	Price            decimal.Decimal
	MentorEarnings   decimal.Decimal
	PlatformEarnings decimal.Decimal
	PricingRuleID    int64
}

// IsFull проверяет, остались ли в слоте свободные места
func (s *AvailableSlot) IsFull() bool {
	return s.AvailableSpots <= 0
}

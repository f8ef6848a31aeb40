package price_session

import (
	"github.com/shopspring/decimal"
)

// Request модель запроса на расчёт цены сессии
type Request struct {
	MaterialIDs     []int64 // Материалы сессии
	DurationMinutes int     // Длительность сессии в минутах
	MeetingType     string  // online | offline
}

// Response модель ответа с расчётом цены
type Response struct {
	FinalPrice       decimal.Decimal
	MentorEarnings   decimal.Decimal
	PlatformEarnings decimal.Decimal
	PricingRuleID    int64
	Level            string // уровень, по которому применён множитель (если применён)
}

package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoApplicableRule возвращается, когда ни одно активное правило не
// покрывает запрос. Вызывающий код обязан пробросить ошибку - нулевую
// цену подставлять нельзя
var ErrNoApplicableRule = errors.New("no applicable pricing rule")

// PricingRule админское правило ценообразования
// Правило применимо, если тип встречи совпадает, длительность попадает в
// [MinDuration, MaxDuration] и множества материалов пересекаются
type PricingRule struct {
	ID          int64
	MaterialIDs []int64
	MeetingType MeetingType
	MinDuration int // minutes, inclusive
	MaxDuration int // minutes, inclusive
	StudentPrice decimal.Decimal

	// Доли выплат; nil = использовать дефолт из PricingDefaults
	// Инвариант (при заданных значениях): MentorFeePercentage + AdminFeePercentage == 100
	MentorFeePercentage *int
	AdminFeePercentage  *int

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Matches проверяет применимость правила к запросу
func (r *PricingRule) Matches(req PriceRequest) bool {
	if !r.IsActive {
		return false
	}
	if r.MeetingType != req.MeetingType {
		return false
	}
	if req.DurationMinutes < r.MinDuration || req.DurationMinutes > r.MaxDuration {
		return false
	}
	return r.intersectionSize(req.MaterialIDs) > 0
}

// intersectionSize размер пересечения материалов правила и запроса
func (r *PricingRule) intersectionSize(materialIDs []int64) int {
	ruleSet := make(map[int64]struct{}, len(r.MaterialIDs))
	for _, id := range r.MaterialIDs {
		ruleSet[id] = struct{}{}
	}

	seen := make(map[int64]struct{}, len(materialIDs))
	count := 0
	for _, id := range materialIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := ruleSet[id]; ok {
			count++
		}
	}
	return count
}

// PricingDefaults дефолты ценообразования, передаются явно из конфигурации
// (глобального мутабельного состояния нет)
type PricingDefaults struct {
	// MentorFeePercentage применяется, когда правило не задаёт свою долю
	MentorFeePercentage int

	// OfflineSurchargePercent наценка за офлайн-сессию, в процентах
	OfflineSurchargePercent int

	// LevelMultipliers множители цены по уровню материала ("beginner": 1.0, ...)
	// Пустая map или отсутствующий уровень = множитель не применяется
	LevelMultipliers map[string]float64
}

// PriceRequest запрос на расчёт цены сессии
type PriceRequest struct {
	MaterialIDs     []int64
	DurationMinutes int
	MeetingType     MeetingType
	Level           string // уровень материала; пустая строка = без множителя
}

// PriceQuote результат расчёта цены
// Инвариант: MentorEarnings + PlatformEarnings == FinalPrice (точно)
type PriceQuote struct {
	FinalPrice       decimal.Decimal
	MentorEarnings   decimal.Decimal
	PlatformEarnings decimal.Decimal
	RuleID           int64
}

// EvaluatePrice выбирает применимое правило и считает цену сессии
//
// Выбор правила: среди активных правил с совпадающим типом встречи,
// подходящей длительностью и непустым пересечением материалов берётся
// правило с наибольшим пересечением; при равенстве - самое новое по
// created_at, затем с наибольшим id (для детерминизма)
//
// Цена: StudentPrice * множитель уровня (если настроен) + наценка за
// офлайн. Доля ментора считается от скорректированной итоговой цены;
// доля платформы - вычитанием, чтобы сумма сходилась точно
func EvaluatePrice(rules []*PricingRule, req PriceRequest, defaults PricingDefaults) (*PriceQuote, error) {
	var (
		selected     *PricingRule
		selectedSize int
	)

	for _, rule := range rules {
		if !rule.Matches(req) {
			continue
		}

		size := rule.intersectionSize(req.MaterialIDs)
		if selected == nil || size > selectedSize ||
			(size == selectedSize && ruleNewerThan(rule, selected)) {
			selected = rule
			selectedSize = size
		}
	}

	if selected == nil {
		return nil, ErrNoApplicableRule
	}

	finalPrice := selected.StudentPrice

	// Множитель уровня
	if req.Level != "" {
		if mult, ok := defaults.LevelMultipliers[req.Level]; ok {
			finalPrice = finalPrice.Mul(decimal.NewFromFloat(mult))
		}
	}

	// Наценка за офлайн
	if req.MeetingType == MeetingOffline && defaults.OfflineSurchargePercent > 0 {
		surcharge := finalPrice.
			Mul(decimal.NewFromInt(int64(defaults.OfflineSurchargePercent))).
			Div(decimal.NewFromInt(100))
		finalPrice = finalPrice.Add(surcharge)
	}

	finalPrice = finalPrice.Round(2)

	feePct := defaults.MentorFeePercentage
	if selected.MentorFeePercentage != nil {
		feePct = *selected.MentorFeePercentage
	}

	mentorEarnings := finalPrice.
		Mul(decimal.NewFromInt(int64(feePct))).
		Div(decimal.NewFromInt(100)).
		Round(2)

	// Вычитанием, а не через admin fee - сумма долей всегда равна цене
	platformEarnings := finalPrice.Sub(mentorEarnings)

	return &PriceQuote{
		FinalPrice:       finalPrice,
		MentorEarnings:   mentorEarnings,
		PlatformEarnings: platformEarnings,
		RuleID:           selected.ID,
	}, nil
}

func ruleNewerThan(a, b *PricingRule) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

package pricingrules

import (
	"context"

	"github.com/m04kA/MNT-BookingService/internal/domain"
)

// PricingRuleRepository интерфейс репозитория правил ценообразования
type PricingRuleRepository interface {
	Create(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error)
	GetByID(ctx context.Context, id int64) (*domain.PricingRule, error)
	GetActive(ctx context.Context) ([]*domain.PricingRule, error)
	GetAll(ctx context.Context) ([]*domain.PricingRule, error)
	Update(ctx context.Context, id int64, rule *domain.PricingRule) (*domain.PricingRule, error)
	Deactivate(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

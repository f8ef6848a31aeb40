package get_pricing_rules

import (
	"context"

	"github.com/m04kA/MNT-BookingService/internal/service/pricingrules/models"
)

type PricingRuleService interface {
	GetByID(ctx context.Context, id int64) (*models.PricingRuleResponse, error)
	List(ctx context.Context, activeOnly bool) (*models.PricingRuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package create_pricing_rule

import (
	"context"

	"github.com/m04kA/MNT-BookingService/internal/service/pricingrules/models"
)

type PricingRuleService interface {
	Create(ctx context.Context, req *models.CreatePricingRuleRequest) (*models.PricingRuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package price_session

import (
	"context"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/internal/integrations/catalogservice"
)

// PricingRuleRepository интерфейс репозитория правил ценообразования
type PricingRuleRepository interface {
	GetActive(ctx context.Context) ([]*domain.PricingRule, error)
}

// CatalogServiceClient интерфейс клиента каталога материалов
type CatalogServiceClient interface {
	GetMaterialWithGracefulDegradation(ctx context.Context, id int64) (*catalogservice.Material, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

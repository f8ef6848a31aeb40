package price_session

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/internal/integrations/catalogservice"
)

type fakePricingRepo struct {
	rules []*domain.PricingRule
	err   error
}

func (f *fakePricingRepo) GetActive(ctx context.Context) ([]*domain.PricingRule, error) {
	return f.rules, f.err
}

type fakeCatalogClient struct {
	materials map[int64]*catalogservice.Material
	err       error
}

func (f *fakeCatalogClient) GetMaterialWithGracefulDegradation(ctx context.Context, id int64) (*catalogservice.Material, error) {
	if f.err != nil {
		return nil, f.err
	}
	material, ok := f.materials[id]
	if !ok {
		return nil, catalogservice.ErrMaterialNotFound
	}
	return material, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testDefaults() domain.PricingDefaults {
	return domain.PricingDefaults{
		MentorFeePercentage:     70,
		OfflineSurchargePercent: 20,
		LevelMultipliers: map[string]float64{
			"beginner":     1.0,
			"intermediate": 1.25,
			"advanced":     1.5,
		},
	}
}

func activeRule(materials []int64, price string) *domain.PricingRule {
	return &domain.PricingRule{
		ID:           1,
		MaterialIDs:  materials,
		MeetingType:  domain.MeetingOnline,
		MinDuration:  30,
		MaxDuration:  120,
		StudentPrice: decimal.RequireFromString(price),
		IsActive:     true,
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func material(id int64, level string) *catalogservice.Material {
	return &catalogservice.Material{ID: id, Level: level, IsActive: true}
}

func newTestUseCase(repo PricingRuleRepository, catalog CatalogServiceClient) *UseCase {
	return NewUseCase(repo, catalog, testDefaults(), nopLogger{})
}

func TestExecute_MaxLevelAmongMaterials(t *testing.T) {
	uc := newTestUseCase(
		&fakePricingRepo{rules: []*domain.PricingRule{activeRule([]int64{10, 20}, "100")}},
		&fakeCatalogClient{materials: map[int64]*catalogservice.Material{
			10: material(10, "beginner"),
			20: material(20, "advanced"),
		}},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		MaterialIDs:     []int64{10, 20},
		DurationMinutes: 60,
		MeetingType:     "online",
	})
	require.NoError(t, err)
	assert.Equal(t, "advanced", resp.Level)
	assert.Equal(t, "150.00", resp.FinalPrice.StringFixed(2))
	assert.Equal(t, int64(1), resp.PricingRuleID)
}

func TestExecute_EarningsSumToFinalPrice(t *testing.T) {
	uc := newTestUseCase(
		&fakePricingRepo{rules: []*domain.PricingRule{activeRule([]int64{10}, "99.99")}},
		&fakeCatalogClient{materials: map[int64]*catalogservice.Material{10: material(10, "beginner")}},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		MaterialIDs:     []int64{10},
		DurationMinutes: 60,
		MeetingType:     "online",
	})
	require.NoError(t, err)
	assert.True(t, resp.MentorEarnings.Add(resp.PlatformEarnings).Equal(resp.FinalPrice))
}

func TestExecute_MaterialNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakePricingRepo{},
		&fakeCatalogClient{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		MaterialIDs:     []int64{99},
		DurationMinutes: 60,
		MeetingType:     "online",
	})
	assert.ErrorIs(t, err, ErrMaterialNotFound)
}

func TestExecute_InactiveMaterial(t *testing.T) {
	inactive := material(10, "beginner")
	inactive.IsActive = false

	uc := newTestUseCase(
		&fakePricingRepo{rules: []*domain.PricingRule{activeRule([]int64{10}, "100")}},
		&fakeCatalogClient{materials: map[int64]*catalogservice.Material{10: inactive}},
	)

	_, err := uc.Execute(context.Background(), &Request{
		MaterialIDs:     []int64{10},
		DurationMinutes: 60,
		MeetingType:     "online",
	})
	assert.ErrorIs(t, err, ErrMaterialInactive)
}

func TestExecute_CatalogDegraded(t *testing.T) {
	uc := newTestUseCase(
		&fakePricingRepo{rules: []*domain.PricingRule{activeRule([]int64{10}, "100")}},
		&fakeCatalogClient{err: catalogservice.ErrServiceDegraded},
	)

	// каталог недоступен - цена считается без множителя уровня
	resp, err := uc.Execute(context.Background(), &Request{
		MaterialIDs:     []int64{10},
		DurationMinutes: 60,
		MeetingType:     "online",
	})
	require.NoError(t, err)
	assert.Equal(t, "", resp.Level)
	assert.Equal(t, "100.00", resp.FinalPrice.StringFixed(2))
}

func TestExecute_NoApplicableRule(t *testing.T) {
	uc := newTestUseCase(
		&fakePricingRepo{},
		&fakeCatalogClient{materials: map[int64]*catalogservice.Material{10: material(10, "beginner")}},
	)

	_, err := uc.Execute(context.Background(), &Request{
		MaterialIDs:     []int64{10},
		DurationMinutes: 60,
		MeetingType:     "online",
	})
	assert.ErrorIs(t, err, ErrNoApplicableRule)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakePricingRepo{}, &fakeCatalogClient{})

	_, err := uc.Execute(context.Background(), &Request{
		DurationMinutes: 60,
		MeetingType:     "online",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		MaterialIDs:     []int64{10},
		DurationMinutes: 5,
		MeetingType:     "online",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		MaterialIDs:     []int64{10},
		DurationMinutes: 60,
		MeetingType:     "hybrid",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

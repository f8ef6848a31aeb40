package pricingrules

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/internal/service/pricingrules/models"
	"github.com/m04kA/MNT-BookingService/pkg/ptr"
)

func validRule() *domain.PricingRule {
	return &domain.PricingRule{
		MaterialIDs:  []int64{1, 2},
		MeetingType:  domain.MeetingOnline,
		MinDuration:  30,
		MaxDuration:  120,
		StudentPrice: decimal.RequireFromString("100"),
		IsActive:     true,
	}
}

func TestValidateRule(t *testing.T) {
	assert.NoError(t, validateRule(validRule()))

	r := validRule()
	r.MaterialIDs = nil
	assert.ErrorIs(t, validateRule(r), ErrInvalidInput)

	r = validRule()
	r.MaterialIDs = []int64{1, -2}
	assert.ErrorIs(t, validateRule(r), ErrInvalidInput)

	r = validRule()
	r.MeetingType = "hybrid"
	assert.ErrorIs(t, validateRule(r), ErrInvalidInput)

	r = validRule()
	r.MinDuration = 5
	assert.ErrorIs(t, validateRule(r), ErrInvalidInput)

	r = validRule()
	r.MinDuration = 120
	r.MaxDuration = 30
	assert.ErrorIs(t, validateRule(r), ErrInvalidInput)

	r = validRule()
	r.StudentPrice = decimal.Zero
	assert.ErrorIs(t, validateRule(r), ErrInvalidInput)
}

func TestValidateRule_FeeSplit(t *testing.T) {
	// Доли задаются только парой
	r := validRule()
	r.MentorFeePercentage = ptr.Ptr(70)
	assert.ErrorIs(t, validateRule(r), ErrInvalidInput)

	// Сумма долей обязана быть ровно 100
	r = validRule()
	r.MentorFeePercentage = ptr.Ptr(70)
	r.AdminFeePercentage = ptr.Ptr(40)
	assert.ErrorIs(t, validateRule(r), ErrInvalidFeeSplit)

	r = validRule()
	r.MentorFeePercentage = ptr.Ptr(110)
	r.AdminFeePercentage = ptr.Ptr(-10)
	assert.ErrorIs(t, validateRule(r), ErrInvalidInput)

	r = validRule()
	r.MentorFeePercentage = ptr.Ptr(60)
	r.AdminFeePercentage = ptr.Ptr(40)
	assert.NoError(t, validateRule(r))
}

func TestSameMaterialSet(t *testing.T) {
	assert.True(t, sameMaterialSet([]int64{1, 2, 3}, []int64{3, 2, 1}))
	assert.True(t, sameMaterialSet([]int64{1, 1, 2}, []int64{2, 1}))
	assert.False(t, sameMaterialSet([]int64{1, 2}, []int64{1, 2, 3}))
	assert.False(t, sameMaterialSet([]int64{1}, []int64{2}))
	assert.True(t, sameMaterialSet(nil, nil))
}

func TestToDomainRule(t *testing.T) {
	req := &models.CreatePricingRuleRequest{
		MaterialIDs:  []int64{1},
		MeetingType:  "online",
		MinDuration:  30,
		MaxDuration:  60,
		StudentPrice: "149.99",
	}

	rule, err := toDomainRule(req)
	require.NoError(t, err)
	assert.True(t, rule.IsActive)
	assert.Equal(t, "149.99", rule.StudentPrice.StringFixed(2))

	req.StudentPrice = "not-a-number"
	_, err = toDomainRule(req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestApplyUpdate(t *testing.T) {
	rule := validRule()

	newPrice := "250.50"
	inactive := false
	require.NoError(t, applyUpdate(rule, &models.UpdatePricingRuleRequest{
		StudentPrice: &newPrice,
		IsActive:     &inactive,
	}))

	assert.Equal(t, "250.50", rule.StudentPrice.StringFixed(2))
	assert.False(t, rule.IsActive)
	// Незатронутые поля не меняются
	assert.Equal(t, []int64{1, 2}, rule.MaterialIDs)

	bad := "abc"
	assert.ErrorIs(t, applyUpdate(rule, &models.UpdatePricingRuleRequest{StudentPrice: &bad}), ErrInvalidInput)
}

package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefaults() PricingDefaults {
	return PricingDefaults{
		MentorFeePercentage:     70,
		OfflineSurchargePercent: 20,
		LevelMultipliers: map[string]float64{
			"beginner":     1.0,
			"intermediate": 1.25,
			"advanced":     1.5,
		},
	}
}

func rule(id int64, materials []int64, meetingType MeetingType, price string, createdAt time.Time) *PricingRule {
	return &PricingRule{
		ID:           id,
		MaterialIDs:  materials,
		MeetingType:  meetingType,
		MinDuration:  30,
		MaxDuration:  120,
		StudentPrice: decimal.RequireFromString(price),
		IsActive:     true,
		CreatedAt:    createdAt,
	}
}

func TestEvaluatePrice_NoApplicableRule(t *testing.T) {
	rules := []*PricingRule{
		rule(1, []int64{10}, MeetingOnline, "100", time.Now()),
	}

	req := PriceRequest{
		MaterialIDs:     []int64{99},
		DurationMinutes: 60,
		MeetingType:     MeetingOnline,
	}

	_, err := EvaluatePrice(rules, req, testDefaults())
	require.ErrorIs(t, err, ErrNoApplicableRule)
}

func TestEvaluatePrice_InactiveRuleIgnored(t *testing.T) {
	inactive := rule(1, []int64{10}, MeetingOnline, "100", time.Now())
	inactive.IsActive = false

	req := PriceRequest{
		MaterialIDs:     []int64{10},
		DurationMinutes: 60,
		MeetingType:     MeetingOnline,
	}

	_, err := EvaluatePrice([]*PricingRule{inactive}, req, testDefaults())
	require.ErrorIs(t, err, ErrNoApplicableRule)
}

func TestEvaluatePrice_DurationOutsideRange(t *testing.T) {
	rules := []*PricingRule{
		rule(1, []int64{10}, MeetingOnline, "100", time.Now()),
	}

	req := PriceRequest{
		MaterialIDs:     []int64{10},
		DurationMinutes: 180,
		MeetingType:     MeetingOnline,
	}

	_, err := EvaluatePrice(rules, req, testDefaults())
	require.ErrorIs(t, err, ErrNoApplicableRule)
}

func TestEvaluatePrice_PicksLargestIntersection(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rules := []*PricingRule{
		rule(1, []int64{10}, MeetingOnline, "100", base),
		rule(2, []int64{10, 20}, MeetingOnline, "200", base),
	}

	req := PriceRequest{
		MaterialIDs:     []int64{10, 20},
		DurationMinutes: 60,
		MeetingType:     MeetingOnline,
	}

	quote, err := EvaluatePrice(rules, req, testDefaults())
	require.NoError(t, err)
	assert.Equal(t, int64(2), quote.RuleID)
	assert.True(t, quote.FinalPrice.Equal(decimal.RequireFromString("200")))
}

func TestEvaluatePrice_TieBreakByCreatedAtThenID(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.AddDate(0, 0, 1)

	req := PriceRequest{
		MaterialIDs:     []int64{10},
		DurationMinutes: 60,
		MeetingType:     MeetingOnline,
	}

	// Равное пересечение - выигрывает более новое правило
	quote, err := EvaluatePrice([]*PricingRule{
		rule(1, []int64{10}, MeetingOnline, "100", newer),
		rule(2, []int64{10}, MeetingOnline, "200", older),
	}, req, testDefaults())
	require.NoError(t, err)
	assert.Equal(t, int64(1), quote.RuleID)

	// Равные created_at - выигрывает больший id
	quote, err = EvaluatePrice([]*PricingRule{
		rule(1, []int64{10}, MeetingOnline, "100", older),
		rule(2, []int64{10}, MeetingOnline, "200", older),
	}, req, testDefaults())
	require.NoError(t, err)
	assert.Equal(t, int64(2), quote.RuleID)
}

func TestEvaluatePrice_DuplicateMaterialsCountedOnce(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rules := []*PricingRule{
		rule(1, []int64{10}, MeetingOnline, "100", base.AddDate(0, 0, 1)),
		rule(2, []int64{10, 20}, MeetingOnline, "200", base),
	}

	// Дубли в запросе не увеличивают размер пересечения
	req := PriceRequest{
		MaterialIDs:     []int64{10, 10, 10},
		DurationMinutes: 60,
		MeetingType:     MeetingOnline,
	}

	quote, err := EvaluatePrice(rules, req, testDefaults())
	require.NoError(t, err)
	assert.Equal(t, int64(1), quote.RuleID)
}

func TestEvaluatePrice_LevelMultiplier(t *testing.T) {
	rules := []*PricingRule{
		rule(1, []int64{10}, MeetingOnline, "100", time.Now()),
	}

	req := PriceRequest{
		MaterialIDs:     []int64{10},
		DurationMinutes: 60,
		MeetingType:     MeetingOnline,
		Level:           "advanced",
	}

	quote, err := EvaluatePrice(rules, req, testDefaults())
	require.NoError(t, err)
	assert.Equal(t, "150.00", quote.FinalPrice.StringFixed(2))
}

func TestEvaluatePrice_UnknownLevelIgnored(t *testing.T) {
	rules := []*PricingRule{
		rule(1, []int64{10}, MeetingOnline, "100", time.Now()),
	}

	req := PriceRequest{
		MaterialIDs:     []int64{10},
		DurationMinutes: 60,
		MeetingType:     MeetingOnline,
		Level:           "expert",
	}

	quote, err := EvaluatePrice(rules, req, testDefaults())
	require.NoError(t, err)
	assert.Equal(t, "100.00", quote.FinalPrice.StringFixed(2))
}

func TestEvaluatePrice_OfflineSurcharge(t *testing.T) {
	rules := []*PricingRule{
		rule(1, []int64{10}, MeetingOffline, "100", time.Now()),
	}

	req := PriceRequest{
		MaterialIDs:     []int64{10},
		DurationMinutes: 60,
		MeetingType:     MeetingOffline,
	}

	quote, err := EvaluatePrice(rules, req, testDefaults())
	require.NoError(t, err)
	assert.Equal(t, "120.00", quote.FinalPrice.StringFixed(2))
}

func TestEvaluatePrice_EarningsSumExactly(t *testing.T) {
	// Цена, которая не делится на доли без остатка
	rules := []*PricingRule{
		rule(1, []int64{10}, MeetingOnline, "99.99", time.Now()),
	}

	req := PriceRequest{
		MaterialIDs:     []int64{10},
		DurationMinutes: 60,
		MeetingType:     MeetingOnline,
	}

	quote, err := EvaluatePrice(rules, req, testDefaults())
	require.NoError(t, err)

	sum := quote.MentorEarnings.Add(quote.PlatformEarnings)
	assert.True(t, sum.Equal(quote.FinalPrice),
		"mentor %s + platform %s != final %s",
		quote.MentorEarnings, quote.PlatformEarnings, quote.FinalPrice)
}

func TestEvaluatePrice_RuleFeeOverridesDefault(t *testing.T) {
	mentorFee := 50
	adminFee := 50

	r := rule(1, []int64{10}, MeetingOnline, "100", time.Now())
	r.MentorFeePercentage = &mentorFee
	r.AdminFeePercentage = &adminFee

	req := PriceRequest{
		MaterialIDs:     []int64{10},
		DurationMinutes: 60,
		MeetingType:     MeetingOnline,
	}

	quote, err := EvaluatePrice([]*PricingRule{r}, req, testDefaults())
	require.NoError(t, err)
	assert.Equal(t, "50.00", quote.MentorEarnings.StringFixed(2))
	assert.Equal(t, "50.00", quote.PlatformEarnings.StringFixed(2))
}

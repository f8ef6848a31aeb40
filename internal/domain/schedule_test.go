package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/MNT-BookingService/pkg/types"
)

func TestAvailabilityWindow_IsWellFormed(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		window AvailabilityWindow
		want   bool
	}{
		{
			name: "recurring window",
			window: AvailabilityWindow{
				StartTime:   types.TimeString("09:00"),
				EndTime:     types.TimeString("17:00"),
				IsRecurring: true,
			},
			want: true,
		},
		{
			name: "inverted range",
			window: AvailabilityWindow{
				StartTime:   types.TimeString("17:00"),
				EndTime:     types.TimeString("09:00"),
				IsRecurring: true,
			},
			want: false,
		},
		{
			name: "empty range",
			window: AvailabilityWindow{
				StartTime:   types.TimeString("09:00"),
				EndTime:     types.TimeString("09:00"),
				IsRecurring: true,
			},
			want: false,
		},
		{
			name: "non-recurring without date",
			window: AvailabilityWindow{
				StartTime:   types.TimeString("09:00"),
				EndTime:     types.TimeString("17:00"),
				IsRecurring: false,
			},
			want: false,
		},
		{
			name: "non-recurring with date",
			window: AvailabilityWindow{
				StartTime:    types.TimeString("09:00"),
				EndTime:      types.TimeString("17:00"),
				IsRecurring:  false,
				SpecificDate: &date,
			},
			want: true,
		},
		{
			name: "malformed time",
			window: AvailabilityWindow{
				StartTime:   types.TimeString("9am"),
				EndTime:     types.TimeString("17:00"),
				IsRecurring: true,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.window.IsWellFormed())
		})
	}
}

func TestAvailabilityWindow_AppliesTo(t *testing.T) {
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	recurring := AvailabilityWindow{
		DayOfWeek:   time.Monday,
		StartTime:   types.TimeString("09:00"),
		EndTime:     types.TimeString("17:00"),
		IsRecurring: true,
		IsActive:    true,
	}
	assert.True(t, recurring.AppliesTo(monday))
	assert.False(t, recurring.AppliesTo(tuesday))

	inactive := recurring
	inactive.IsActive = false
	assert.False(t, inactive.AppliesTo(monday))

	oneOff := AvailabilityWindow{
		StartTime:    types.TimeString("09:00"),
		EndTime:      types.TimeString("17:00"),
		IsRecurring:  false,
		SpecificDate: &tuesday,
		IsActive:     true,
	}
	assert.True(t, oneOff.AppliesTo(tuesday))
	assert.False(t, oneOff.AppliesTo(monday))
}

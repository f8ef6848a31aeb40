package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MNT-BookingService/pkg/ptr"
)

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, validateRequest(&Request{MentorID: 1}))

	err := validateRequest(&Request{MentorID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	badID := int64(-5)
	err = validateRequest(&Request{MentorID: 1, ScheduleID: &badID})
	assert.ErrorIs(t, err, ErrInvalidInput)

	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	err = validateRequest(&Request{MentorID: 1, StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestResolveDateRange(t *testing.T) {
	now := time.Date(2026, 9, 7, 10, 30, 0, 0, time.UTC)
	today := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	t.Run("defaults to full horizon", func(t *testing.T) {
		start, end, err := resolveDateRange(&Request{MentorID: 1}, now, 30)
		require.NoError(t, err)
		assert.True(t, start.Equal(today))
		assert.True(t, end.Equal(today.AddDate(0, 0, 30)))
	})

	t.Run("start in the past clamped to today", func(t *testing.T) {
		start, _, err := resolveDateRange(&Request{
			MentorID:  1,
			StartDate: ptr.Ptr(today.AddDate(0, 0, -5)),
		}, now, 30)
		require.NoError(t, err)
		assert.True(t, start.Equal(today))
	})

	t.Run("end beyond horizon trimmed", func(t *testing.T) {
		_, end, err := resolveDateRange(&Request{
			MentorID: 1,
			EndDate:  ptr.Ptr(today.AddDate(0, 0, 90)),
		}, now, 30)
		require.NoError(t, err)
		assert.True(t, end.Equal(today.AddDate(0, 0, 30)))
	})

	t.Run("start beyond horizon rejected", func(t *testing.T) {
		_, _, err := resolveDateRange(&Request{
			MentorID:  1,
			StartDate: ptr.Ptr(today.AddDate(0, 0, 31)),
		}, now, 30)
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("period entirely in the past rejected", func(t *testing.T) {
		_, _, err := resolveDateRange(&Request{
			MentorID: 1,
			EndDate:  ptr.Ptr(today.AddDate(0, 0, -1)),
		}, now, 30)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

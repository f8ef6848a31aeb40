package schedules

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MNT-BookingService/internal/service/schedules/models"
	"github.com/m04kA/MNT-BookingService/pkg/ptr"
)

func validCreateRequest() *models.CreateScheduleRequest {
	return &models.CreateScheduleRequest{
		MentorID:        1,
		Title:           "Подготовка к собеседованию",
		DurationMinutes: 60,
		MaxCapacity:     1,
		MeetingType:     "online",
		MaterialIDs:     []int64{10, 20},
	}
}

func TestValidateCreateRequest(t *testing.T) {
	assert.NoError(t, validateCreateRequest(validCreateRequest()))

	req := validCreateRequest()
	req.MentorID = 0
	assert.ErrorIs(t, validateCreateRequest(req), ErrInvalidInput)

	req = validCreateRequest()
	req.Title = ""
	assert.ErrorIs(t, validateCreateRequest(req), ErrInvalidInput)

	req = validCreateRequest()
	req.Title = strings.Repeat("a", 201)
	assert.ErrorIs(t, validateCreateRequest(req), ErrInvalidInput)

	req = validCreateRequest()
	req.DurationMinutes = 10
	assert.ErrorIs(t, validateCreateRequest(req), ErrInvalidInput)

	req = validCreateRequest()
	req.MaxCapacity = 0
	assert.ErrorIs(t, validateCreateRequest(req), ErrInvalidInput)

	req = validCreateRequest()
	req.MaxCapacity = 101
	assert.ErrorIs(t, validateCreateRequest(req), ErrInvalidInput)

	req = validCreateRequest()
	req.MeetingType = "hybrid"
	assert.ErrorIs(t, validateCreateRequest(req), ErrInvalidInput)

	req = validCreateRequest()
	req.MaterialIDs = nil
	assert.ErrorIs(t, validateCreateRequest(req), ErrInvalidInput)

	req = validCreateRequest()
	req.RequiredLevel = ptr.Ptr("expert")
	assert.ErrorIs(t, validateCreateRequest(req), ErrInvalidInput)

	req = validCreateRequest()
	req.RequiredLevel = ptr.Ptr("intermediate")
	assert.NoError(t, validateCreateRequest(req))
}

func TestToValidatedWindow(t *testing.T) {
	t.Run("recurring window", func(t *testing.T) {
		window, err := toValidatedWindow(&models.WindowInput{
			DayOfWeek:   1,
			StartTime:   "09:00",
			EndTime:     "17:00",
			IsRecurring: true,
		}, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, time.Monday, window.DayOfWeek)
		assert.Equal(t, int64(1), window.MentorID)
		assert.Equal(t, int64(2), window.ScheduleID)
	})

	t.Run("one-off window", func(t *testing.T) {
		window, err := toValidatedWindow(&models.WindowInput{
			StartTime:    "10:00",
			EndTime:      "12:00",
			IsRecurring:  false,
			SpecificDate: ptr.Ptr("2026-10-15"),
		}, 1, 2)
		require.NoError(t, err)
		require.NotNil(t, window.SpecificDate)
		// День недели выводится из даты
		assert.Equal(t, window.SpecificDate.Weekday(), window.DayOfWeek)
	})

	t.Run("invalid day of week", func(t *testing.T) {
		_, err := toValidatedWindow(&models.WindowInput{
			DayOfWeek:   7,
			StartTime:   "09:00",
			EndTime:     "17:00",
			IsRecurring: true,
		}, 1, 2)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("non-recurring without date", func(t *testing.T) {
		_, err := toValidatedWindow(&models.WindowInput{
			StartTime: "09:00",
			EndTime:   "17:00",
		}, 1, 2)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := toValidatedWindow(&models.WindowInput{
			DayOfWeek:   1,
			StartTime:   "17:00",
			EndTime:     "09:00",
			IsRecurring: true,
		}, 1, 2)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("malformed time", func(t *testing.T) {
		_, err := toValidatedWindow(&models.WindowInput{
			DayOfWeek:   1,
			StartTime:   "9am",
			EndTime:     "17:00",
			IsRecurring: true,
		}, 1, 2)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := toValidatedWindow(&models.WindowInput{
			StartTime:    "09:00",
			EndTime:      "17:00",
			SpecificDate: ptr.Ptr("15.10.2026"),
		}, 1, 2)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})
}

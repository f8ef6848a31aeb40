package get_available_slots

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/pkg/types"
)

// Понедельник, далеко впереди от now в тестах
var testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func testSchedule(duration, capacity int) *domain.Schedule {
	return &domain.Schedule{
		ID:              1,
		MentorID:        100,
		DurationMinutes: duration,
		MaxCapacity:     capacity,
		IsActive:        true,
	}
}

func recurringWindow(day time.Weekday, start, end string) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		DayOfWeek:   day,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		IsRecurring: true,
		IsActive:    true,
	}
}

func TestSlotStartsInWindow(t *testing.T) {
	// Окно 09:00-11:00, слоты по 60 минут: 09:00 и 10:00
	starts := slotStartsInWindow(recurringWindow(time.Monday, "09:00", "11:00"), 60)
	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, starts)

	// Слот, не помещающийся целиком, не создаётся
	starts = slotStartsInWindow(recurringWindow(time.Monday, "09:00", "10:30"), 60)
	assert.Equal(t, []types.TimeString{"09:00"}, starts)

	// Окно короче слота - пусто
	starts = slotStartsInWindow(recurringWindow(time.Monday, "09:00", "09:30"), 60)
	assert.Empty(t, starts)

	assert.Nil(t, slotStartsInWindow(recurringWindow(time.Monday, "09:00", "11:00"), 0))
}

func TestExpandWindows_SingleWindow(t *testing.T) {
	schedule := testSchedule(60, 3)
	windows := []*domain.AvailabilityWindow{
		recurringWindow(time.Monday, "09:00", "11:00"),
	}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	slots := expandWindows(schedule, windows, testMonday, testMonday, now, 60)

	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), slots[1].StartTime)
	assert.Equal(t, 3, slots[0].TotalSpots)
	assert.Equal(t, 3, slots[0].AvailableSpots)
}

func TestExpandWindows_OverlappingWindowsDeduplicated(t *testing.T) {
	schedule := testSchedule(60, 1)
	windows := []*domain.AvailabilityWindow{
		recurringWindow(time.Monday, "09:00", "11:00"),
		recurringWindow(time.Monday, "10:00", "12:00"),
	}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	slots := expandWindows(schedule, windows, testMonday, testMonday, now, 60)

	starts := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartTime)
	}
	assert.Equal(t, []types.TimeString{"09:00", "10:00", "11:00"}, starts)
}

func TestExpandWindows_MalformedWindowSkipped(t *testing.T) {
	schedule := testSchedule(60, 1)
	windows := []*domain.AvailabilityWindow{
		recurringWindow(time.Monday, "17:00", "09:00"),
	}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	slots := expandWindows(schedule, windows, testMonday, testMonday, now, 60)
	assert.Empty(t, slots)
}

func TestExpandWindows_SpecificDateWindow(t *testing.T) {
	schedule := testSchedule(60, 1)
	date := testMonday
	windows := []*domain.AvailabilityWindow{
		{
			StartTime:    types.TimeString("14:00"),
			EndTime:      types.TimeString("16:00"),
			IsRecurring:  false,
			SpecificDate: &date,
			IsActive:     true,
		},
	}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	// Окно действует только на свою дату
	slots := expandWindows(schedule, windows, testMonday, testMonday.AddDate(0, 0, 7), now, 60)

	require.Len(t, slots, 2)
	for _, s := range slots {
		assert.True(t, s.Date.Equal(testMonday))
	}
}

func TestSlotStartAllowed(t *testing.T) {
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	// Прошедшая дата
	assert.False(t, slotStartAllowed(now.AddDate(0, 0, -1), "12:00", now, 60))

	// Будущая дата проходит независимо от времени
	assert.True(t, slotStartAllowed(now.AddDate(0, 0, 1), "00:30", now, 60))

	// Сегодня: 11:00 ровно на границе now + 60 минут - проходит
	assert.True(t, slotStartAllowed(now, "11:00", now, 60))
	assert.False(t, slotStartAllowed(now, "10:59", now, 60))
	assert.True(t, slotStartAllowed(now, "11:01", now, 60))

	// Порог уходит за полночь - сегодня ничего не забронировать
	lateNow := time.Date(2026, 9, 7, 23, 30, 0, 0, time.UTC)
	assert.False(t, slotStartAllowed(lateNow, "23:45", lateNow, 60))
}

func booking(date time.Time, start types.TimeString, duration int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		BookingDate:     date,
		StartTime:       start,
		DurationMinutes: duration,
		Status:          status,
	}
}

func TestCountSlotBookings(t *testing.T) {
	bookings := []*domain.Booking{
		booking(testMonday, "09:00", 60, domain.StatusPending),
		booking(testMonday, "09:30", 60, domain.StatusConfirmed),
		booking(testMonday, "09:00", 60, domain.StatusCancelledByStudent),
		booking(testMonday.AddDate(0, 0, 1), "09:00", 60, domain.StatusPending),
	}

	// Отменённые и чужие даты не считаются
	assert.Equal(t, 1, countSlotBookings(testMonday, "09:00", bookings))

	// Считается только точное совпадение времени начала
	assert.Equal(t, 1, countSlotBookings(testMonday, "09:30", bookings))
	assert.Equal(t, 0, countSlotBookings(testMonday, "10:00", bookings))
}

func TestAnnotateCapacity(t *testing.T) {
	slots := []domain.AvailableSlot{
		{ScheduleID: 1, Date: testMonday, StartTime: "09:00", DurationMinutes: 60, TotalSpots: 2, AvailableSpots: 2},
		{ScheduleID: 1, Date: testMonday, StartTime: "10:00", DurationMinutes: 60, TotalSpots: 2, AvailableSpots: 2},
	}
	bookings := []*domain.Booking{
		booking(testMonday, "09:00", 60, domain.StatusPending),
		booking(testMonday, "09:00", 60, domain.StatusConfirmed),
		booking(testMonday, "09:00", 60, domain.StatusCompleted),
	}

	annotateCapacity(slots, bookings)

	// Переполненный слот остаётся в списке с нулём свободных мест
	assert.Equal(t, 0, slots[0].AvailableSpots)
	assert.True(t, slots[0].IsFull())
	assert.Equal(t, 2, slots[1].AvailableSpots)
}

func TestAnnotateCapacity_OffsetWindows(t *testing.T) {
	schedule := testSchedule(60, 1)
	windows := []*domain.AvailabilityWindow{
		recurringWindow(time.Monday, "09:00", "11:00"),
		recurringWindow(time.Monday, "09:30", "11:30"),
	}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	slots := expandWindows(schedule, windows, testMonday, testMonday, now, 60)
	bookings := []*domain.Booking{
		booking(testMonday, "09:30", 60, domain.StatusConfirmed),
	}

	annotateCapacity(slots, bookings)

	// Бронирование на 09:30 занимает место только в слоте 09:30,
	// пересекающиеся по времени слоты 09:00 и 10:00 остаются доступными
	spots := make(map[types.TimeString]int, len(slots))
	for _, s := range slots {
		spots[s.StartTime] = s.AvailableSpots
	}
	assert.Equal(t, map[types.TimeString]int{
		"09:00": 1,
		"09:30": 0,
		"10:00": 1,
		"10:30": 1,
	}, spots)
}

func TestExpandAndAnnotate_Idempotent(t *testing.T) {
	schedule := testSchedule(60, 2)
	schedule.MeetingType = domain.MeetingOnline
	schedule.MaterialIDs = []int64{10}
	windows := []*domain.AvailabilityWindow{
		recurringWindow(time.Monday, "09:00", "12:00"),
		recurringWindow(time.Wednesday, "14:00", "16:00"),
	}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	bookings := []*domain.Booking{
		booking(testMonday, "10:00", 60, domain.StatusConfirmed),
		booking(testMonday, "10:00", 60, domain.StatusPending),
	}

	rules := []*domain.PricingRule{
		{
			ID:           1,
			MeetingType:  domain.MeetingOnline,
			MaterialIDs:  []int64{10},
			MinDuration:  30,
			MaxDuration:  120,
			StudentPrice: decimal.RequireFromString("100"),
			IsActive:     true,
		},
	}
	defaults := domain.PricingDefaults{MentorFeePercentage: 70}

	run := func() []domain.AvailableSlot {
		slots := expandWindows(schedule, windows, testMonday, testMonday.AddDate(0, 0, 7), now, 60)
		annotateCapacity(slots, bookings)

		quote, err := domain.EvaluatePrice(rules, priceRequestFor(schedule), defaults)
		require.NoError(t, err)
		for i := range slots {
			slots[i].Price = quote.FinalPrice
			slots[i].MentorEarnings = quote.MentorEarnings
			slots[i].PlatformEarnings = quote.PlatformEarnings
			slots[i].PricingRuleID = quote.RuleID
		}
		return slots
	}

	// Повторный прогон на тех же данных даёт тот же результат
	first := run()
	second := run()
	assert.Equal(t, first, second)
}

func TestSortSlots(t *testing.T) {
	slots := []domain.AvailableSlot{
		{ScheduleID: 2, Date: testMonday, StartTime: "09:00"},
		{ScheduleID: 1, Date: testMonday, StartTime: "09:00"},
		{ScheduleID: 1, Date: testMonday.AddDate(0, 0, -1), StartTime: "15:00"},
		{ScheduleID: 1, Date: testMonday, StartTime: "08:00"},
	}

	sortSlots(slots)

	assert.Equal(t, types.TimeString("15:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("08:00"), slots[1].StartTime)
	assert.Equal(t, int64(1), slots[2].ScheduleID)
	assert.Equal(t, int64(2), slots[3].ScheduleID)
}

package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/pkg/types"
)

// expandWindows разворачивает окна доступности расписания в конкретные слоты
// за период [startDate, endDate] (включительно)
//
// Слоты генерируются от начала окна с шагом DurationMinutes расписания;
// слот, не помещающийся в окно целиком, не создаётся. Перекрывающиеся окна
// на одну дату дедуплицируются по времени начала. Слоты сегодняшнего дня,
// начинающиеся раньше now + minNoticeMinutes, исключаются
func expandWindows(
	schedule *domain.Schedule,
	windows []*domain.AvailabilityWindow,
	startDate, endDate time.Time,
	now time.Time,
	minNoticeMinutes int,
) []domain.AvailableSlot {
	slots := make([]domain.AvailableSlot, 0)

	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		seen := make(map[types.TimeString]struct{})

		for _, window := range windows {
			if !window.IsWellFormed() || !window.AppliesTo(date) {
				continue
			}

			for _, start := range slotStartsInWindow(window, schedule.DurationMinutes) {
				if _, dup := seen[start]; dup {
					continue
				}
				seen[start] = struct{}{}

				if !slotStartAllowed(date, start, now, minNoticeMinutes) {
					continue
				}

				slots = append(slots, domain.AvailableSlot{
					ScheduleID:      schedule.ID,
					Date:            date,
					StartTime:       start,
					DurationMinutes: schedule.DurationMinutes,
					TotalSpots:      schedule.MaxCapacity,
					AvailableSpots:  schedule.MaxCapacity,
				})
			}
		}
	}

	sortSlots(slots)
	return slots
}

// slotStartsInWindow генерирует времена начала слотов внутри одного окна
func slotStartsInWindow(window *domain.AvailabilityWindow, durationMinutes int) []types.TimeString {
	if durationMinutes <= 0 {
		return nil
	}

	starts := make([]types.TimeString, 0)
	current := window.StartTime

	for current.IsBefore(window.EndTime) {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(window.EndTime) {
			break
		}

		starts = append(starts, current)

		current, err = current.AddMinutes(durationMinutes)
		if err != nil {
			break
		}
	}

	return starts
}

// slotStartAllowed проверяет, что слот ещё можно забронировать
// Для прошедших дат - нельзя; для сегодняшнего дня действует минимальное
// время до начала; будущие даты проходят всегда
func slotStartAllowed(date time.Time, start types.TimeString, now time.Time, minNoticeMinutes int) bool {
	dateOnly := truncateToDay(date)
	todayOnly := truncateToDay(now)

	if dateOnly.Before(todayOnly) {
		return false
	}
	if dateOnly.After(todayOnly) {
		return true
	}

	minAllowed, err := types.NewTimeString(now).AddMinutes(minNoticeMinutes)
	if err != nil {
		// Порог ушёл за полночь - сегодня бронировать уже нечего
		return false
	}

	return !start.IsBefore(minAllowed)
}

// annotateCapacity вычисляет свободные места для каждого слота
// Место расходует активное бронирование с точно тем же ключом
// (дата, время начала); пересечение интервалов не учитывается, поэтому
// слоты смещённых окон не занимают места друг у друга
func annotateCapacity(slots []domain.AvailableSlot, bookings []*domain.Booking) {
	for i := range slots {
		occupied := countSlotBookings(slots[i].Date, slots[i].StartTime, bookings)

		available := slots[i].TotalSpots - occupied
		if available < 0 {
			available = 0
		}
		slots[i].AvailableSpots = available
	}
}

// countSlotBookings подсчитывает активные бронирования слота по ключу (дата, время начала)
func countSlotBookings(date time.Time, slotStart types.TimeString, bookings []*domain.Booking) int {
	count := 0
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if !sameDay(booking.BookingDate, date) {
			continue
		}
		if booking.StartTime == slotStart {
			count++
		}
	}

	return count
}

// sortSlots упорядочивает слоты по дате, времени начала и id расписания
func sortSlots(slots []domain.AvailableSlot) {
	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime.IsBefore(slots[j].StartTime)
		}
		return slots[i].ScheduleID < slots[j].ScheduleID
	})
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

package get_availability

import (
	"sort"
	"time"

	"github.com/m04kA/Turf-ReservationService/internal/domain"
	"github.com/m04kA/Turf-ReservationService/internal/integrations/turfcatalog"
	"github.com/m04kA/Turf-ReservationService/pkg/types"
)

// bookedIntervals возвращает интервалы активных бронирований в порядке времени начала
func bookedIntervals(reservations []*domain.Reservation) []Interval {
	active := make([]*domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.IsActive() {
			active = append(active, r)
		}
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].StartTime.Minutes() < active[j].StartTime.Minutes()
	})

	booked := make([]Interval, len(active))
	for i, r := range active {
		booked[i] = Interval{StartTime: r.StartTime, EndTime: r.EndTime}
	}

	return booked
}

// freeIntervals вычисляет зазоры между занятыми интервалами внутри часов работы
// booked должен быть отсортирован по времени начала; активные бронирования
// не пересекаются, поэтому слияние интервалов не требуется
func freeIntervals(open, close types.TimeString, booked []Interval) []Interval {
	free := make([]Interval, 0, len(booked)+1)
	cursor := open

	for _, b := range booked {
		// Бронирования за пределами часов работы (например, созданные до смены
		// расписания площадки) не порождают отрицательных зазоров
		if cursor.IsBefore(b.StartTime) && b.StartTime.IsAfter(open) {
			end := b.StartTime
			if end.IsAfter(close) {
				end = close
			}
			if cursor.IsBefore(end) {
				free = append(free, Interval{StartTime: cursor, EndTime: end})
			}
		}
		if b.EndTime.IsAfter(cursor) {
			cursor = b.EndTime
		}
	}

	if cursor.IsBefore(close) {
		free = append(free, Interval{StartTime: cursor, EndTime: close})
	}

	return free
}

// scheduleForDay возвращает расписание работы площадки на день недели указанной даты
func scheduleForDay(turf *turfcatalog.Turf, date time.Time) turfcatalog.DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return turf.Availability.Monday
	case time.Tuesday:
		return turf.Availability.Tuesday
	case time.Wednesday:
		return turf.Availability.Wednesday
	case time.Thursday:
		return turf.Availability.Thursday
	case time.Friday:
		return turf.Availability.Friday
	case time.Saturday:
		return turf.Availability.Saturday
	case time.Sunday:
		return turf.Availability.Sunday
	default:
		return turfcatalog.DaySchedule{Available: false}
	}
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

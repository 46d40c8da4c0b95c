package reschedule_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/Turf-ReservationService/internal/integrations/turfcatalog"
	"github.com/m04kA/Turf-ReservationService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (types.TimeRange, error) {
	if req.UserID <= 0 {
		return types.TimeRange{}, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ReservationID <= 0 {
		return types.TimeRange{}, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.NewDate.IsZero() {
		return types.TimeRange{}, fmt.Errorf("%w: new date is required", ErrInvalidInput)
	}

	interval, err := types.NewTimeRange(req.NewStartTime, req.NewEndTime)
	if err != nil {
		return types.TimeRange{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return interval, nil
}

// validateDate проверяет, что новая дата не в прошлом (по календарным дням)
func validateDate(newDate time.Time, now time.Time) error {
	dateOnly := time.Date(newDate.Year(), newDate.Month(), newDate.Day(), 0, 0, 0, 0, newDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrPastDate
	}
	return nil
}

// validateOperatingHours проверяет, что новый интервал попадает в часы работы
// площадки в день недели новой даты
func validateOperatingHours(turf *turfcatalog.Turf, date time.Time, interval types.TimeRange) error {
	schedule := scheduleForDay(turf, date)
	if !schedule.Available {
		return ErrTurfClosed
	}

	if schedule.OpenTime == nil || schedule.CloseTime == nil {
		return nil
	}

	openTime, err := types.NewTimeStringFromString(*schedule.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: invalid open time in turf schedule: %v", ErrInternal, err)
	}

	closeTime, err := types.NewTimeStringFromString(*schedule.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: invalid close time in turf schedule: %v", ErrInternal, err)
	}

	operatingWindow, err := types.NewTimeRange(openTime, closeTime)
	if err != nil {
		return fmt.Errorf("%w: invalid operating window in turf schedule: %v", ErrInternal, err)
	}

	if !operatingWindow.Contains(interval) {
		return ErrOutsideOperatingHours
	}

	return nil
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

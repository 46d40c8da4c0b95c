package types

import "errors"

// ErrNonPositiveDuration возвращается, когда конец интервала не позже начала
var ErrNonPositiveDuration = errors.New("types: interval end must be after start")

// TimeRange полуоткрытый временной интервал [Start, End) в рамках одного дня
type TimeRange struct {
	Start TimeString
	End   TimeString
}

// NewTimeRange создает TimeRange с валидацией формата и положительной длительности
func NewTimeRange(start, end TimeString) (TimeRange, error) {
	if err := start.Validate(); err != nil {
		return TimeRange{}, err
	}
	if err := end.Validate(); err != nil {
		return TimeRange{}, err
	}
	if end.Minutes() <= start.Minutes() {
		return TimeRange{}, ErrNonPositiveDuration
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps проверяет пересечение интервалов
// Используются строгие неравенства: граничащие интервалы НЕ пересекаются,
// бронирования "впритык" допустимы
//
// Примеры:
// - [09:00, 10:30) и [10:00, 11:00) → пересекаются
// - [09:00, 10:00) и [10:00, 11:00) → НЕ пересекаются (граничат)
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.IsBefore(other.End) && r.End.IsAfter(other.Start)
}

// DurationMinutes возвращает длительность интервала в минутах
func (r TimeRange) DurationMinutes() int {
	return r.End.Minutes() - r.Start.Minutes()
}

// DurationHours возвращает длительность интервала в часах
func (r TimeRange) DurationHours() float64 {
	return float64(r.DurationMinutes()) / 60
}

// Contains проверяет, что other целиком лежит внутри r
func (r TimeRange) Contains(other TimeRange) bool {
	return !other.Start.IsBefore(r.Start) && !other.End.IsAfter(r.End)
}

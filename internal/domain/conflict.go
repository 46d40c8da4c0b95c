package domain

import "github.com/m04kA/Turf-ReservationService/pkg/types"

// FindConflicts возвращает ID активных бронирований, пересекающихся с candidate
// Неактивные записи (отмененные, завершенные, вытесненные переносом) пропускаются.
// excludeID исключает бронирование из проверки - при переносе запись
// не конфликтует со своим прежним интервалом; 0 означает "не исключать ничего"
//
// Пересечение полуоткрытых интервалов: граничащие интервалы не конфликтуют,
// бронирования "впритык" допустимы
func FindConflicts(candidate types.TimeRange, excludeID int64, reservations []*Reservation) []int64 {
	conflicts := make([]int64, 0)

	for _, r := range reservations {
		if excludeID != 0 && r.ID == excludeID {
			continue
		}
		if !r.IsActive() {
			continue
		}
		if candidate.Overlaps(r.Interval()) {
			conflicts = append(conflicts, r.ID)
		}
	}

	return conflicts
}

// HasConflict возвращает true, если candidate пересекается хотя бы с одним
// активным бронированием
func HasConflict(candidate types.TimeRange, excludeID int64, reservations []*Reservation) bool {
	return len(FindConflicts(candidate, excludeID, reservations)) > 0
}

package reschedule_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reschedule_reservation: reservation not found")

	// ErrTurfNotFound возвращается, когда площадка бронирования не найдена
	ErrTurfNotFound = errors.New("reschedule_reservation: turf not found")

	// ErrNotOwner возвращается, когда пользователь не владеет бронированием
	ErrNotOwner = errors.New("reschedule_reservation: user does not own this reservation")

	// ErrCannotReschedule возвращается, когда бронирование в терминальном статусе
	ErrCannotReschedule = errors.New("reschedule_reservation: reservation cannot be rescheduled")

	// ErrPastDate возвращается при попытке переноса на прошедшую дату
	ErrPastDate = errors.New("reschedule_reservation: new date is in the past")

	// ErrTurfClosed возвращается, когда площадка не работает в новый день
	ErrTurfClosed = errors.New("reschedule_reservation: turf is closed on the new date")

	// ErrOutsideOperatingHours возвращается, когда новый интервал выходит за часы работы
	ErrOutsideOperatingHours = errors.New("reschedule_reservation: new interval is outside operating hours")

	// ErrSlotConflict возвращается, когда новый интервал пересекается с активным бронированием
	ErrSlotConflict = errors.New("reschedule_reservation: new slot conflicts with an existing reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_reservation: invalid input data")

	// ErrUnavailable возвращается, когда транзакция не прошла после всех повторов
	ErrUnavailable = errors.New("reschedule_reservation: storage temporarily unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_reservation: internal error")
)

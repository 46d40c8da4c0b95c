package create_reservation

import "errors"

var (
	// ErrTurfNotFound возвращается, когда площадка не найдена или отключена
	ErrTurfNotFound = errors.New("create_reservation: turf not found")

	// ErrSportNotOffered возвращается, когда площадка не поддерживает вид спорта
	ErrSportNotOffered = errors.New("create_reservation: sport is not offered at this turf")

	// ErrPastDate возвращается при попытке бронирования на прошедшую дату
	ErrPastDate = errors.New("create_reservation: reservation date is in the past")

	// ErrTurfClosed возвращается, когда площадка не работает в указанный день
	ErrTurfClosed = errors.New("create_reservation: turf is closed on this date")

	// ErrOutsideOperatingHours возвращается, когда интервал выходит за часы работы площадки
	ErrOutsideOperatingHours = errors.New("create_reservation: requested interval is outside operating hours")

	// ErrSlotConflict возвращается, когда интервал пересекается с активным бронированием
	ErrSlotConflict = errors.New("create_reservation: slot conflicts with an existing reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrUnavailable возвращается, когда транзакция не прошла после всех повторов
	ErrUnavailable = errors.New("create_reservation: storage temporarily unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

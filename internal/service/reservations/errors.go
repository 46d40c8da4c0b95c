package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrTurfNotFound возвращается, когда площадка не найдена
	ErrTurfNotFound = errors.New("turf not found")

	// ErrNotOwner возвращается, когда пользователь не владеет бронированием
	ErrNotOwner = errors.New("user does not own this reservation")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("reservation is already cancelled")

	// ErrCannotCancelCompleted возвращается при попытке отменить сыгранное бронирование
	ErrCannotCancelCompleted = errors.New("completed reservation cannot be cancelled")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	// (например, запись вытеснена переносом)
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrCannotComplete возвращается, когда бронирование нельзя отметить сыгранным
	ErrCannotComplete = errors.New("reservation cannot be completed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUnavailable возвращается, когда транзакция не прошла после всех повторов
	ErrUnavailable = errors.New("reservation storage temporarily unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

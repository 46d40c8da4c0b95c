package get_availability

import "errors"

var (
	// ErrTurfNotFound возвращается, когда площадка не найдена или отключена
	ErrTurfNotFound = errors.New("get_availability: turf not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)

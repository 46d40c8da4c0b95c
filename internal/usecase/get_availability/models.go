package get_availability

import (
	"time"

	"github.com/m04kA/Turf-ReservationService/pkg/types"
)

// Request модель запроса доступности площадки на дату
type Request struct {
	TurfID int64     // ID площадки
	Date   time.Time // Дата (без времени)
}

// Interval занятый или свободный интервал в рамках дня
type Interval struct {
	StartTime types.TimeString // Время начала (например, "10:00")
	EndTime   types.TimeString // Время конца (например, "12:00")
}

// Response модель ответа с доступностью площадки
// Booked содержит активные бронирования в порядке времени начала,
// Free - зазоры между ними внутри часов работы
type Response struct {
	TurfID    int64     // ID площадки
	Date      time.Time // Дата запроса
	Open      bool      // Работает ли площадка в этот день
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
	Booked    []Interval
	Free      []Interval
}

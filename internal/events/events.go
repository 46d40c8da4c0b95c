package events

import "time"

// Типы событий жизненного цикла бронирования
const (
	TypeReservationCreated     = "reservation_created"
	TypeReservationCancelled   = "reservation_cancelled"
	TypeReservationRescheduled = "reservation_rescheduled"
	TypeReservationCompleted   = "reservation_completed"
)

// ReservationEvent событие жизненного цикла бронирования
// Публикуется после коммита транзакции, best-effort: ошибка публикации
// не откатывает уже закоммиченное бронирование
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID int64     `json:"reservation_id"`
	UserID        int64     `json:"user_id"`
	TurfID        int64     `json:"turf_id"`
	Date          string    `json:"date"`       // YYYY-MM-DD
	StartTime     string    `json:"start_time"` // HH:MM
	EndTime       string    `json:"end_time"`   // HH:MM
	Sport         string    `json:"sport"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

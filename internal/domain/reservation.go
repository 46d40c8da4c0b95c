package domain

import (
	"time"

	"github.com/m04kA/Turf-ReservationService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
	// StatusRescheduled marks a superseded record: the reservation was moved and
	// a new record (see RescheduledFromID on the successor) took its slot
	StatusRescheduled ReservationStatus = "rescheduled"
)

// PaymentStatus represents the status of a payment snapshot
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment платежный снимок бронирования
// Платеж мокирован: всегда успешен при создании, переходит в refunded при отмене
type Payment struct {
	Amount        float64
	Method        string
	Status        PaymentStatus
	TransactionID string
	PaidAt        time.Time
}

// Receipt идентификатор чека, генерируется один раз и далее неизменяем
type Receipt struct {
	ReceiptID   string
	GeneratedAt time.Time
}

// WeatherSnapshot снимок погоды на момент бронирования
// Заполняется внешним провайдером, ядро его не вычисляет и не интерпретирует
type WeatherSnapshot struct {
	Condition   string  `json:"condition"`
	Temperature float64 `json:"temperature"`
	RainChance  float64 `json:"rainChance"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}

// ScheduleSnapshot снимок даты и интервала до переноса, сохраняется для аудита
type ScheduleSnapshot struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Reservation represents a turf slot reservation
type Reservation struct {
	ID     int64
	UserID int64
	TurfID int64

	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	DurationHours float64
	Sport         string

	Status  ReservationStatus
	Payment Payment
	Receipt Receipt
	Weather *WeatherSnapshot
	Notes   *string

	CancelledBy        *int64
	CancellationReason *string
	CancelledAt        *time.Time

	// Цепочка переносов: ссылка на вытесненную запись и снимок её расписания
	RescheduledFromID *int64
	RescheduledFrom   *ScheduleSnapshot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the reservation's time interval
func (r *Reservation) Interval() types.TimeRange {
	return types.TimeRange{Start: r.StartTime, End: r.EndTime}
}

// IsActive returns true if the reservation occupies its slot
// Only active reservations participate in conflict checks
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the reservation can be moved to a new slot
func (r *Reservation) CanBeRescheduled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeCompleted returns true if the turf owner can mark the reservation as played
func (r *Reservation) CanBeCompleted() bool {
	return r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// IsCompleted returns true if the reservation has been played
func (r *Reservation) IsCompleted() bool {
	return r.Status == StatusCompleted
}

// TurfReservationsFilter фильтр для получения бронирований площадки
type TurfReservationsFilter struct {
	TurfID          int64              // Обязательный параметр
	Date            *time.Time         // Фильтр по дате (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли неактивные бронирования
}

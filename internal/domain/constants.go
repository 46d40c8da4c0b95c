package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Payment constants
const (
	DefaultPaymentMethod = "card"
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// ActiveStatuses статусы, занимающие слот
// Только эти статусы учитываются при проверке конфликтов
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, освободившие слот
// Записи сохраняются для аудита и статистики, но не блокируют бронирование
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
	StatusCompleted,
	StatusRescheduled,
}

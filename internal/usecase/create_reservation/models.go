package create_reservation

import (
	"time"

	"github.com/m04kA/Turf-ReservationService/internal/domain"
	"github.com/m04kA/Turf-ReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя
	TurfID    int64            // ID площадки
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала интервала (например, "10:00")
	EndTime   types.TimeString // Время конца интервала (например, "12:00")
	Sport     string           // Вид спорта
	Notes     *string          // Дополнительные заметки (опционально)
}

// PaymentResult платежный снимок созданного бронирования
type PaymentResult struct {
	Amount        float64
	Method        string
	Status        string
	TransactionID string
	PaidAt        time.Time
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64            // ID созданного бронирования
	UserID        int64            // ID пользователя
	TurfID        int64            // ID площадки
	Date          time.Time        // Дата бронирования
	StartTime     types.TimeString // Время начала
	EndTime       types.TimeString // Время конца
	DurationHours float64          // Длительность в часах
	Sport         string           // Вид спорта
	Status        string           // Статус бронирования

	Payment   PaymentResult           // Снимок платежа
	ReceiptID string                  // Идентификатор чека
	Weather   *domain.WeatherSnapshot // Снимок погоды (может отсутствовать)
	Notes     *string                 // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

// toResponse конвертирует domain.Reservation в модель ответа
func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:            r.ID,
		UserID:        r.UserID,
		TurfID:        r.TurfID,
		Date:          r.Date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		DurationHours: r.DurationHours,
		Sport:         r.Sport,
		Status:        string(r.Status),
		Payment: PaymentResult{
			Amount:        r.Payment.Amount,
			Method:        r.Payment.Method,
			Status:        string(r.Payment.Status),
			TransactionID: r.Payment.TransactionID,
			PaidAt:        r.Payment.PaidAt,
		},
		ReceiptID: r.Receipt.ReceiptID,
		Weather:   r.Weather,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

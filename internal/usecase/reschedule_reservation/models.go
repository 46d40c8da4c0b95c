package reschedule_reservation

import (
	"time"

	"github.com/m04kA/Turf-ReservationService/internal/domain"
	"github.com/m04kA/Turf-ReservationService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	UserID        int64            // ID пользователя (владелец бронирования)
	ReservationID int64            // ID переносимого бронирования
	NewDate       time.Time        // Новая дата
	NewStartTime  types.TimeString // Новое время начала
	NewEndTime    types.TimeString // Новое время конца
}

// PaymentResult платежный снимок нового бронирования
type PaymentResult struct {
	Amount        float64
	Method        string
	Status        string
	TransactionID string
	PaidAt        time.Time
}

// PreviousSchedule прежнее расписание вытесненной записи
type PreviousSchedule struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Response модель ответа с новым бронированием
// Перенос порождает новую запись: старая остается в истории со статусом rescheduled
type Response struct {
	ID            int64
	UserID        int64
	TurfID        int64
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	DurationHours float64
	Sport         string
	Status        string

	Payment   PaymentResult
	ReceiptID string
	Weather   *domain.WeatherSnapshot
	Notes     *string

	RescheduledFromID int64            // ID вытесненной записи
	RescheduledFrom   PreviousSchedule // Её прежнее расписание

	CreatedAt time.Time
	UpdatedAt time.Time
}

// toResponse конвертирует созданную domain.Reservation в модель ответа
func toResponse(r *domain.Reservation) *Response {
	resp := &Response{
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

	if r.RescheduledFromID != nil {
		resp.RescheduledFromID = *r.RescheduledFromID
	}
	if r.RescheduledFrom != nil {
		resp.RescheduledFrom = PreviousSchedule{
			Date:      r.RescheduledFrom.Date,
			StartTime: r.RescheduledFrom.StartTime,
			EndTime:   r.RescheduledFrom.EndTime,
		}
	}

	return resp
}

package models

import (
	"fmt"
	"time"

	"github.com/m04kA/Turf-ReservationService/internal/domain"
)

// GetUserReservationsRequest запрос истории бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64
	Status *string
}

// GetTurfReservationsRequest запрос бронирований площадки (для владельца)
type GetTurfReservationsRequest struct {
	TurfID          int64
	UserID          int64 // Запрашивающий пользователь, должен владеть площадкой
	Date            *time.Time
	Status          *string
	IncludeInactive bool
}

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID int64
	Reason string
}

// CompleteReservationRequest запрос на отметку бронирования сыгранным
type CompleteReservationRequest struct {
	UserID int64 // Владелец площадки
}

// PaymentResponse платежный снимок бронирования
type PaymentResponse struct {
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transactionId"`
	PaidAt        time.Time `json:"paidAt"`
}

// ScheduleSnapshotResponse прежнее расписание бронирования до переноса
type ScheduleSnapshotResponse struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ReservationResponse модель бронирования для ответа сервиса
type ReservationResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	TurfID        int64   `json:"turfId"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	DurationHours float64 `json:"durationHours"`
	Sport         string  `json:"sport"`
	Status        string  `json:"status"`

	Payment   PaymentResponse         `json:"payment"`
	ReceiptID string                  `json:"receiptId"`
	Weather   *domain.WeatherSnapshot `json:"weather,omitempty"`
	Notes     *string                 `json:"notes,omitempty"`

	CancelledBy        *int64     `json:"cancelledBy,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	RescheduledFromID *int64                    `json:"rescheduledFromId,omitempty"`
	RescheduledFrom   *ScheduleSnapshotResponse `json:"rescheduledFrom,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// FromDomainReservation конвертирует domain.Reservation в модель ответа
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	resp := &ReservationResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		TurfID:        r.TurfID,
		Date:          r.Date.Format(domain.DateFormat),
		StartTime:     r.StartTime.String(),
		EndTime:       r.EndTime.String(),
		DurationHours: r.DurationHours,
		Sport:         r.Sport,
		Status:        string(r.Status),
		Payment: PaymentResponse{
			Amount:        r.Payment.Amount,
			Method:        r.Payment.Method,
			Status:        string(r.Payment.Status),
			TransactionID: r.Payment.TransactionID,
			PaidAt:        r.Payment.PaidAt,
		},
		ReceiptID:          r.Receipt.ReceiptID,
		Weather:            r.Weather,
		Notes:              r.Notes,
		CancelledBy:        r.CancelledBy,
		CancellationReason: r.CancellationReason,
		CancelledAt:        r.CancelledAt,
		RescheduledFromID:  r.RescheduledFromID,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.RescheduledFrom != nil {
		resp.RescheduledFrom = &ScheduleSnapshotResponse{
			Date:      r.RescheduledFrom.Date.Format(domain.DateFormat),
			StartTime: r.RescheduledFrom.StartTime.String(),
			EndTime:   r.RescheduledFrom.EndTime.String(),
		}
	}

	return resp
}

// FromDomainReservationList конвертирует список domain.Reservation
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	result := make([]*ReservationResponse, len(reservations))
	for i, r := range reservations {
		result[i] = FromDomainReservation(r)
	}
	return &ReservationListResponse{
		Reservations: result,
		Total:        len(result),
	}
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus
func ToDomainReservationStatus(s string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(s) {
	case domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusCompleted,
		domain.StatusRescheduled:
		return domain.ReservationStatus(s), nil
	default:
		return "", fmt.Errorf("unknown reservation status: %s", s)
	}
}

package reschedule_reservation

import (
	"time"

	"github.com/m04kA/Turf-ReservationService/internal/domain"
	rescheduleReservation "github.com/m04kA/Turf-ReservationService/internal/usecase/reschedule_reservation"
	"github.com/m04kA/Turf-ReservationService/pkg/types"
)

// RescheduleReservationRequest HTTP request model
type RescheduleReservationRequest struct {
	NewDate      string `json:"newDate"`      // "2026-09-20"
	NewStartTime string `json:"newStartTime"` // "14:00"
	NewEndTime   string `json:"newEndTime"`   // "16:00"
}

// PaymentResponse платежный снимок в HTTP ответе
type PaymentResponse struct {
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transactionId"`
	PaidAt        string  `json:"paidAt"`
}

// PreviousScheduleResponse прежнее расписание вытесненной записи
type PreviousScheduleResponse struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID                int64                    `json:"id"`
	UserID            int64                    `json:"userId"`
	TurfID            int64                    `json:"turfId"`
	Date              string                   `json:"date"`
	StartTime         string                   `json:"startTime"`
	EndTime           string                   `json:"endTime"`
	DurationHours     float64                  `json:"durationHours"`
	Sport             string                   `json:"sport"`
	Status            string                   `json:"status"`
	Payment           PaymentResponse          `json:"payment"`
	ReceiptID         string                   `json:"receiptId"`
	Weather           *domain.WeatherSnapshot  `json:"weather,omitempty"`
	Notes             *string                  `json:"notes,omitempty"`
	RescheduledFromID int64                    `json:"rescheduledFromId"`
	RescheduledFrom   PreviousScheduleResponse `json:"rescheduledFrom"`
	CreatedAt         string                   `json:"createdAt"`
	UpdatedAt         string                   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleReservationRequest) ToUseCaseRequest(userID, reservationID int64) (*rescheduleReservation.Request, error) {
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	newStartTime, err := types.NewTimeStringFromString(r.NewStartTime)
	if err != nil {
		return nil, err
	}

	newEndTime, err := types.NewTimeStringFromString(r.NewEndTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleReservation.Request{
		UserID:        userID,
		ReservationID: reservationID,
		NewDate:       newDate,
		NewStartTime:  newStartTime,
		NewEndTime:    newEndTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		TurfID:        resp.TurfID,
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		DurationHours: resp.DurationHours,
		Sport:         resp.Sport,
		Status:        resp.Status,
		Payment: PaymentResponse{
			Amount:        resp.Payment.Amount,
			Method:        resp.Payment.Method,
			Status:        resp.Payment.Status,
			TransactionID: resp.Payment.TransactionID,
			PaidAt:        resp.Payment.PaidAt.Format(time.RFC3339),
		},
		ReceiptID:         resp.ReceiptID,
		Weather:           resp.Weather,
		Notes:             resp.Notes,
		RescheduledFromID: resp.RescheduledFromID,
		RescheduledFrom: PreviousScheduleResponse{
			Date:      resp.RescheduledFrom.Date.Format(domain.DateFormat),
			StartTime: resp.RescheduledFrom.StartTime.String(),
			EndTime:   resp.RescheduledFrom.EndTime.String(),
		},
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}

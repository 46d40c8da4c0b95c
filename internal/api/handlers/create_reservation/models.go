package create_reservation

import (
	"time"

	"github.com/m04kA/Turf-ReservationService/internal/domain"
	createReservation "github.com/m04kA/Turf-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/Turf-ReservationService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	TurfID    int64   `json:"turfId"`
	Date      string  `json:"date"`      // "2026-09-15"
	StartTime string  `json:"startTime"` // "10:00"
	EndTime   string  `json:"endTime"`   // "12:00"
	Sport     string  `json:"sport"`
	Notes     *string `json:"notes,omitempty"`
}

// PaymentResponse платежный снимок в HTTP ответе
type PaymentResponse struct {
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transactionId"`
	PaidAt        string  `json:"paidAt"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            int64                   `json:"id"`
	UserID        int64                   `json:"userId"`
	TurfID        int64                   `json:"turfId"`
	Date          string                  `json:"date"`
	StartTime     string                  `json:"startTime"`
	EndTime       string                  `json:"endTime"`
	DurationHours float64                 `json:"durationHours"`
	Sport         string                  `json:"sport"`
	Status        string                  `json:"status"`
	Payment       PaymentResponse         `json:"payment"`
	ReceiptID     string                  `json:"receiptId"`
	Weather       *domain.WeatherSnapshot `json:"weather,omitempty"`
	Notes         *string                 `json:"notes,omitempty"`
	CreatedAt     string                  `json:"createdAt"`
	UpdatedAt     string                  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:    userID,
		TurfID:    r.TurfID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Sport:     r.Sport,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
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
		ReceiptID: resp.ReceiptID,
		Weather:   resp.Weather,
		Notes:     resp.Notes,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}

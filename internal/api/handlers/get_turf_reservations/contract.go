package get_turf_reservations

import (
	"context"

	"github.com/m04kA/Turf-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetTurfReservations(ctx context.Context, req *models.GetTurfReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

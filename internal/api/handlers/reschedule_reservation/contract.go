package reschedule_reservation

import (
	"context"

	rescheduleReservation "github.com/m04kA/Turf-ReservationService/internal/usecase/reschedule_reservation"
)

type RescheduleReservationUseCase interface {
	Execute(ctx context.Context, req *rescheduleReservation.Request) (*rescheduleReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

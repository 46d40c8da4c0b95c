package reschedule_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Turf-ReservationService/internal/api/handlers"
	"github.com/m04kA/Turf-ReservationService/internal/api/middleware"
	rescheduleReservation "github.com/m04kA/Turf-ReservationService/internal/usecase/reschedule_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронирование не найдено"
	msgTurfNotFound         = "площадка не найдена"
	msgNotOwner             = "перенести бронирование может только его владелец"
	msgCannotReschedule     = "бронирование не может быть перенесено"
	msgSlotConflict         = "новый интервал пересекается с существующим бронированием"
	msgPastDate             = "новая дата в прошлом"
	msgTurfClosed           = "площадка не работает в новую дату"
	msgOutsideHours         = "новый интервал выходит за часы работы площадки"
	msgInvalidInput         = "некорректные данные переноса"
	msgUnavailable          = "сервис временно недоступен, повторите попытку"
)

type Handler struct {
	useCase RescheduleReservationUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationIDStr := vars["reservationId"]

	reservationID, err := strconv.ParseInt(reservationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, reservationID)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleReservation.ErrTurfNotFound):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Turf not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, rescheduleReservation.ErrNotOwner):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Not owner: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondForbidden(w, msgNotOwner)

		case errors.Is(err, rescheduleReservation.ErrCannotReschedule):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Cannot reschedule: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgCannotReschedule)

		case errors.Is(err, rescheduleReservation.ErrSlotConflict):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Slot conflict: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, rescheduleReservation.ErrPastDate):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Past date: reservation_id=%d, date=%s",
				reservationID, req.NewDate)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, rescheduleReservation.ErrTurfClosed):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Turf closed: reservation_id=%d, date=%s",
				reservationID, req.NewDate)
			handlers.RespondBadRequest(w, msgTurfClosed)

		case errors.Is(err, rescheduleReservation.ErrOutsideOperatingHours):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Outside operating hours: reservation_id=%d, interval=%s-%s",
				reservationID, req.NewStartTime, req.NewEndTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, rescheduleReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid input: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, rescheduleReservation.ErrUnavailable):
			h.logger.Error("PATCH /reservations/{id}/reschedule - Storage unavailable: reservation_id=%d", reservationID)
			handlers.RespondServiceUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("PATCH /reservations/{id}/reschedule - Failed to reschedule: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/reschedule - Reservation rescheduled successfully: old_id=%d, new_id=%d, user_id=%d",
		reservationID, result.ID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

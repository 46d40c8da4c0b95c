package complete_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Turf-ReservationService/internal/api/handlers"
	"github.com/m04kA/Turf-ReservationService/internal/api/middleware"
	"github.com/m04kA/Turf-ReservationService/internal/service/reservations"
	"github.com/m04kA/Turf-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронирование не найдено"
	msgTurfNotFound         = "площадка не найдена"
	msgForbidden            = "отметить бронирование сыгранным может только владелец площадки"
	msgCannotComplete       = "бронирование не может быть отмечено сыгранным"
	msgUnavailable          = "сервис временно недоступен, повторите попытку"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationIDStr := vars["reservationId"]

	reservationID, err := strconv.ParseInt(reservationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/complete - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/complete - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Complete(r.Context(), reservationID, &models.CompleteReservationRequest{
		UserID: userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/complete - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrTurfNotFound):
			h.logger.Warn("PATCH /reservations/{id}/complete - Turf not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/complete - Access denied: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrCannotComplete):
			h.logger.Warn("PATCH /reservations/{id}/complete - Cannot complete: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgCannotComplete)

		case errors.Is(err, reservations.ErrUnavailable):
			h.logger.Error("PATCH /reservations/{id}/complete - Storage unavailable: reservation_id=%d", reservationID)
			handlers.RespondServiceUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("PATCH /reservations/{id}/complete - Failed to complete reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/complete - Reservation completed successfully: reservation_id=%d, user_id=%d",
		reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

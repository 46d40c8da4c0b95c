package get_turf_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Turf-ReservationService/internal/api/handlers"
	"github.com/m04kA/Turf-ReservationService/internal/api/middleware"
	"github.com/m04kA/Turf-ReservationService/internal/service/reservations"
)

const (
	msgInvalidTurfID = "некорректный ID площадки"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
	msgTurfNotFound  = "площадка не найдена"
	msgForbidden     = "бронирования площадки доступны только её владельцу"
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

// Handle GET /api/v1/turfs/{turfId}/reservations
// Query params: status, date, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	turfIDStr := vars["turfId"]

	turfID, err := strconv.ParseInt(turfIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/reservations - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /turfs/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	statusStr := r.URL.Query().Get("status")
	dateStr := r.URL.Query().Get("date")
	includeInactiveStr := r.URL.Query().Get("includeInactive")

	serviceReq, err := ToServiceRequest(turfID, userID, statusStr, dateStr, includeInactiveStr)
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит, что запрашивающий владеет площадкой
	result, err := h.service.GetTurfReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrTurfNotFound):
			h.logger.Warn("GET /turfs/{id}/reservations - Turf not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /turfs/{id}/reservations - Access denied: turf_id=%d, user_id=%d", turfID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /turfs/{id}/reservations - Invalid parameters: turf_id=%d", turfID)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /turfs/{id}/reservations - Failed to get reservations: turf_id=%d, error=%v",
				turfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /turfs/{id}/reservations - Reservations retrieved successfully: turf_id=%d, count=%d",
		turfID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

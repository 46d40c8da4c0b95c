package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/Turf-ReservationService/internal/api/handlers"
	"github.com/m04kA/Turf-ReservationService/internal/domain"
	getAvailability "github.com/m04kA/Turf-ReservationService/internal/usecase/get_availability"
)

const (
	msgInvalidTurfID = "некорректный ID площадки"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate   = "параметр date обязателен"
	msgTurfNotFound  = "площадка не найдена"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/turfs/{turfId}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	turfIDStr := vars["turfId"]

	turfID, err := strconv.ParseInt(turfIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/availability - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /turfs/{id}/availability - Missing date parameter: turf_id=%d", turfID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		TurfID: turfID,
		Date:   date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrTurfNotFound):
			h.logger.Warn("GET /turfs/{id}/availability - Turf not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /turfs/{id}/availability - Invalid input: turf_id=%d, error=%v", turfID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /turfs/{id}/availability - Failed to get availability: turf_id=%d, error=%v",
				turfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /turfs/{id}/availability - Availability retrieved successfully: turf_id=%d, date=%s",
		turfID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

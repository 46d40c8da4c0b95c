package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/Turf-ReservationService/internal/api/handlers"
	"github.com/m04kA/Turf-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/Turf-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotConflict       = "выбранный интервал пересекается с существующим бронированием"
	msgTurfNotFound       = "площадка не найдена"
	msgSportNotOffered    = "площадка не поддерживает выбранный вид спорта"
	msgPastDate           = "дата бронирования в прошлом"
	msgTurfClosed         = "площадка не работает в выбранную дату"
	msgOutsideHours       = "интервал выходит за часы работы площадки"
	msgInvalidInput       = "некорректные данные бронирования"
	msgUnavailable        = "сервис временно недоступен, повторите попытку"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: user_id=%d, turf_id=%d", userID, req.TurfID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createReservation.ErrTurfNotFound):
			h.logger.Warn("POST /reservations - Turf not found: turf_id=%d", req.TurfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, createReservation.ErrSportNotOffered):
			h.logger.Warn("POST /reservations - Sport not offered: turf_id=%d, sport=%s", req.TurfID, req.Sport)
			handlers.RespondBadRequest(w, msgSportNotOffered)

		case errors.Is(err, createReservation.ErrPastDate):
			h.logger.Warn("POST /reservations - Past date: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createReservation.ErrTurfClosed):
			h.logger.Warn("POST /reservations - Turf closed: turf_id=%d, date=%s", req.TurfID, req.Date)
			handlers.RespondBadRequest(w, msgTurfClosed)

		case errors.Is(err, createReservation.ErrOutsideOperatingHours):
			h.logger.Warn("POST /reservations - Outside operating hours: turf_id=%d, interval=%s-%s",
				req.TurfID, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrUnavailable):
			h.logger.Error("POST /reservations - Storage unavailable: user_id=%d, turf_id=%d", userID, req.TurfID)
			handlers.RespondServiceUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, turf_id=%d, error=%v",
				userID, req.TurfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, turf_id=%d",
		result.ID, userID, req.TurfID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

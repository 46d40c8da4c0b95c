package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Turf-ReservationService/internal/domain"
	turfClient "github.com/m04kA/Turf-ReservationService/internal/integrations/turfcatalog"
	"github.com/m04kA/Turf-ReservationService/pkg/types"
)

// UseCase use case для получения доступности площадки на дату
// Чистое чтение: без транзакций и блокировок, результат носит информационный
// характер и не резервирует слот
type UseCase struct {
	reservationRepo ReservationRepository
	turfClient      TurfCatalogClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	turfClient TurfCatalogClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		turfClient:      turfClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: turf=%d, date=%s", req.TurfID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем площадку из каталога
	turf, err := uc.turfClient.GetTurf(ctx, req.TurfID)
	if err != nil {
		if errors.Is(err, turfClient.ErrTurfNotFound) {
			uc.logger.Warn("GetAvailability: turf id=%d not found", req.TurfID)
			return nil, ErrTurfNotFound
		}
		uc.logger.Error("GetAvailability: failed to get turf id=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
	}

	// 3. Расписание работы на день недели запрошенной даты
	schedule := scheduleForDay(turf, req.Date)
	if !schedule.Available {
		uc.logger.Info("GetAvailability: turf id=%d is closed on %s", req.TurfID, req.Date.Format(domain.DateFormat))
		return &Response{
			TurfID: req.TurfID,
			Date:   req.Date,
			Open:   false,
			Booked: []Interval{},
			Free:   []Interval{},
		}, nil
	}

	// 4. Активные бронирования на эту дату
	filter := domain.TurfReservationsFilter{
		TurfID:          req.TurfID,
		Date:            &req.Date,
		IncludeInactive: false,
	}

	reservations, err := uc.reservationRepo.GetByTurfWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	booked := bookedIntervals(reservations)

	resp := &Response{
		TurfID: req.TurfID,
		Date:   req.Date,
		Open:   true,
		Booked: booked,
		Free:   []Interval{},
	}

	// 5. Свободные зазоры считаются только при явных часах работы
	// и только для сегодняшних и будущих дат
	if schedule.OpenTime == nil || schedule.CloseTime == nil {
		return resp, nil
	}

	openTime, err := types.NewTimeStringFromString(*schedule.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid open time in turf schedule: %v", ErrInternal, err)
	}

	closeTime, err := types.NewTimeStringFromString(*schedule.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid close time in turf schedule: %v", ErrInternal, err)
	}

	resp.OpenTime = &openTime
	resp.CloseTime = &closeTime

	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		return resp, nil
	}

	resp.Free = freeIntervals(openTime, closeTime, booked)

	uc.logger.Info("GetAvailability: turf=%d, date=%s, %d booked, %d free intervals",
		req.TurfID, req.Date.Format(domain.DateFormat), len(resp.Booked), len(resp.Free))

	return resp, nil
}

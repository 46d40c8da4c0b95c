package reschedule_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Turf-ReservationService/internal/domain"
	"github.com/m04kA/Turf-ReservationService/internal/events"
	repo "github.com/m04kA/Turf-ReservationService/internal/infra/storage/reservation"
	turfClient "github.com/m04kA/Turf-ReservationService/internal/integrations/turfcatalog"
	"github.com/m04kA/Turf-ReservationService/pkg/txmanager"
)

// UseCase use case для переноса бронирования на новый слот
//
// Перенос реализован цепочкой записей: старая запись переводится в терминальный
// статус rescheduled и навсегда остается в истории, новая подтвержденная запись
// создается с ссылкой на вытесненную (RescheduledFromID) и снимком её прежнего
// расписания. Обе операции выполняются в одной сериализуемой транзакции, поэтому
// внешний наблюдатель не увидит ни двух активных записей, ни нуля
type UseCase struct {
	reservationRepo ReservationRepository
	turfClient      TurfCatalogClient
	weatherClient   WeatherClient
	loyaltyClient   LoyaltyClient
	producer        EventPublisher
	receipts        ReceiptGenerator
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	turfClient TurfCatalogClient,
	weatherClient WeatherClient,
	loyaltyClient LoyaltyClient,
	producer EventPublisher,
	receipts ReceiptGenerator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		turfClient:      turfClient,
		weatherClient:   weatherClient,
		loyaltyClient:   loyaltyClient,
		producer:        producer,
		receipts:        receipts,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleReservation: user=%d, reservation=%d, new date=%s, new interval=%s-%s",
		req.UserID, req.ReservationID, req.NewDate.Format(domain.DateFormat), req.NewStartTime, req.NewEndTime)

	// 1. Валидация входных данных
	newInterval, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("RescheduleReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и проверяем новую дату
	now := uc.timeProvider.Now()
	if err := validateDate(req.NewDate, now); err != nil {
		uc.logger.Warn("RescheduleReservation: new date %s is in the past", req.NewDate.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Предварительное чтение без блокировки - только чтобы узнать площадку.
	// Все решающие проверки повторяются внутри транзакции по заблокированной строке
	existing, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, repo.ErrReservationNotFound) {
			uc.logger.Warn("RescheduleReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("RescheduleReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 4. Получаем площадку и проверяем часы работы на новую дату
	turf, err := uc.turfClient.GetTurf(ctx, existing.TurfID)
	if err != nil {
		if errors.Is(err, turfClient.ErrTurfNotFound) {
			uc.logger.Warn("RescheduleReservation: turf id=%d not found", existing.TurfID)
			return nil, ErrTurfNotFound
		}
		uc.logger.Error("RescheduleReservation: failed to get turf id=%d: %v", existing.TurfID, err)
		return nil, fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
	}

	if err := validateOperatingHours(turf, req.NewDate, newInterval); err != nil {
		uc.logger.Warn("RescheduleReservation: operating hours check failed: %v", err)
		return nil, err
	}

	// 5. Пересчитываем длительность и стоимость по текущему тарифу площадки
	newDurationHours := newInterval.DurationHours()
	newAmount := turf.PricePerHour * newDurationHours

	// 6. Снимок погоды для новой даты - best-effort, до транзакции
	var weatherSnapshot *domain.WeatherSnapshot
	if uc.weatherClient != nil {
		snapshot, err := uc.weatherClient.Snapshot(ctx, turf.City, req.NewDate)
		if err != nil {
			uc.logger.Warn("RescheduleReservation: weather snapshot unavailable for city=%s: %v", turf.City, err)
		} else {
			weatherSnapshot = &domain.WeatherSnapshot{
				Condition:   snapshot.Condition,
				Temperature: snapshot.Temperature,
				RainChance:  snapshot.RainChance,
				Humidity:    snapshot.Humidity,
				WindSpeed:   snapshot.WindSpeed,
			}
		}
	}

	var (
		result   *domain.Reservation
		oldHours float64
	)

	// 7. Перенос в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Повторно читаем запись уже с блокировкой (FOR UPDATE)
		old, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, repo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if old.UserID != req.UserID {
			return ErrNotOwner
		}

		if !old.CanBeRescheduled() {
			return ErrCannotReschedule
		}

		// 7.2. Получаем активные бронирования на новую дату с блокировкой
		filter := domain.TurfReservationsFilter{
			TurfID:          old.TurfID,
			Date:            &req.NewDate,
			IncludeInactive: false,
		}

		reservations, err := uc.reservationRepo.GetByTurfWithFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 7.3. Проверяем конфликты, исключая саму переносимую запись:
		// при сдвиге в рамках той же даты она не конфликтует со своим
		// прежним интервалом
		conflicts := domain.FindConflicts(newInterval, old.ID, reservations)
		if len(conflicts) > 0 {
			uc.logger.Warn("RescheduleReservation: new interval %s-%s conflicts with reservations %v",
				req.NewStartTime, req.NewEndTime, conflicts)
			return ErrSlotConflict
		}

		// 7.4. Старая запись вытесняется и освобождает слот
		if err := uc.reservationRepo.UpdateStatus(txCtx, old.ID, domain.StatusRescheduled); err != nil {
			return fmt.Errorf("%w: failed to mark reservation as rescheduled: %v", ErrInternal, err)
		}

		// 7.5. Новая запись с провенансом, свежим чеком и пересчитанным платежом
		replacement := &domain.Reservation{
			UserID:        old.UserID,
			TurfID:        old.TurfID,
			Date:          req.NewDate,
			StartTime:     req.NewStartTime,
			EndTime:       req.NewEndTime,
			DurationHours: newDurationHours,
			Sport:         old.Sport,
			Status:        domain.StatusConfirmed,
			Payment: domain.Payment{
				Amount:        newAmount,
				Method:        old.Payment.Method,
				Status:        domain.PaymentCompleted,
				TransactionID: uc.receipts.NewTransactionID(),
				PaidAt:        now,
			},
			Receipt: domain.Receipt{
				ReceiptID:   uc.receipts.NewReceiptID(),
				GeneratedAt: now,
			},
			Weather:           weatherSnapshot,
			Notes:             old.Notes,
			RescheduledFromID: &old.ID,
			RescheduledFrom: &domain.ScheduleSnapshot{
				Date:      old.Date,
				StartTime: old.StartTime,
				EndTime:   old.EndTime,
			},
		}

		created, err := uc.reservationRepo.Create(txCtx, replacement)
		if err != nil {
			return fmt.Errorf("%w: failed to create replacement reservation: %v", ErrInternal, err)
		}

		result = created
		oldHours = old.DurationHours
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Error("RescheduleReservation: serialization retries exhausted: %v", err)
			return nil, ErrUnavailable
		}
		return nil, err
	}

	uc.logger.Info("RescheduleReservation: reservation id=%d superseded by id=%d", req.ReservationID, result.ID)

	// 8. Корректировка часов лояльности на разницу длительностей - best-effort
	uc.adjustLoyaltyHours(ctx, result.UserID, oldHours, result.DurationHours)
	uc.publishRescheduled(ctx, result)

	return toResponse(result), nil
}

// adjustLoyaltyHours досчитывает или откатывает часы лояльности при изменении
// длительности, ошибки только логируются
func (uc *UseCase) adjustLoyaltyHours(ctx context.Context, userID int64, oldHours, newHours float64) {
	if uc.loyaltyClient == nil || oldHours == newHours {
		return
	}

	var err error
	if newHours > oldHours {
		err = uc.loyaltyClient.CreditHours(ctx, userID, newHours-oldHours)
	} else {
		err = uc.loyaltyClient.ReverseHours(ctx, userID, oldHours-newHours)
	}

	if err != nil {
		uc.logger.Warn("RescheduleReservation: failed to adjust loyalty hours for user=%d: %v", userID, err)
	}
}

// publishRescheduled публикует событие о переносе, ошибки только логируются
func (uc *UseCase) publishRescheduled(ctx context.Context, r *domain.Reservation) {
	if uc.producer == nil {
		return
	}

	event := events.ReservationEvent{
		Type:          events.TypeReservationRescheduled,
		ReservationID: r.ID,
		UserID:        r.UserID,
		TurfID:        r.TurfID,
		Date:          r.Date.Format(domain.DateFormat),
		StartTime:     r.StartTime.String(),
		EndTime:       r.EndTime.String(),
		Sport:         r.Sport,
		Status:        string(r.Status),
		OccurredAt:    time.Now(),
	}

	if err := uc.producer.Publish(ctx, event); err != nil {
		uc.logger.Warn("RescheduleReservation: failed to publish event for reservation id=%d: %v", r.ID, err)
	}
}

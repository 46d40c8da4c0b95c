package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Turf-ReservationService/internal/domain"
	"github.com/m04kA/Turf-ReservationService/internal/events"
	turfClient "github.com/m04kA/Turf-ReservationService/internal/integrations/turfcatalog"
	"github.com/m04kA/Turf-ReservationService/pkg/txmanager"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// два пересекающихся запроса на одну площадку и дату не могут пройти оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, turf=%d, date=%s, interval=%s-%s, sport=%s",
		req.UserID, req.TurfID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.Sport)

	// 1. Валидация входных данных
	interval, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и проверяем дату
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateReservation: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Получаем площадку из каталога
	turf, err := uc.turfClient.GetTurf(ctx, req.TurfID)
	if err != nil {
		if errors.Is(err, turfClient.ErrTurfNotFound) {
			uc.logger.Warn("CreateReservation: turf id=%d not found", req.TurfID)
			return nil, ErrTurfNotFound
		}
		uc.logger.Error("CreateReservation: failed to get turf id=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
	}

	// Отключенные площадки недоступны для бронирования
	if !turf.IsActive {
		uc.logger.Warn("CreateReservation: turf id=%d is inactive", req.TurfID)
		return nil, ErrTurfNotFound
	}

	// 4. Проверяем, что площадка поддерживает вид спорта
	if !turf.OffersSport(req.Sport) {
		uc.logger.Warn("CreateReservation: sport=%s not offered at turf id=%d", req.Sport, req.TurfID)
		return nil, ErrSportNotOffered
	}

	// 5. Проверяем часы работы площадки на указанный день
	if err := validateOperatingHours(turf, req.Date, interval); err != nil {
		uc.logger.Warn("CreateReservation: operating hours check failed: %v", err)
		return nil, err
	}

	// 6. Считаем длительность и стоимость
	durationHours := interval.DurationHours()
	amount := turf.PricePerHour * durationHours

	// 7. Снимок погоды - best-effort, до транзакции
	// Недоступность погодного сервиса не блокирует бронирование
	var weatherSnapshot *domain.WeatherSnapshot
	if uc.weatherClient != nil {
		snapshot, err := uc.weatherClient.Snapshot(ctx, turf.City, req.Date)
		if err != nil {
			uc.logger.Warn("CreateReservation: weather snapshot unavailable for city=%s: %v", turf.City, err)
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

	// Переменная для хранения результата
	var result *domain.Reservation

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Получаем все активные бронирования на эту площадку и дату
		// с блокировкой (FOR UPDATE)
		filter := domain.TurfReservationsFilter{
			TurfID:          req.TurfID,
			Date:            &req.Date,
			IncludeInactive: false, // Только активные бронирования
		}

		reservations, err := uc.reservationRepo.GetByTurfWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 8.2. Проверяем пересечения с активными бронированиями
		conflicts := domain.FindConflicts(interval, 0, reservations)
		if len(conflicts) > 0 {
			uc.logger.Warn("CreateReservation: interval %s-%s conflicts with reservations %v",
				req.StartTime, req.EndTime, conflicts)
			return ErrSlotConflict
		}

		// 8.3. Создаем бронирование с мокированным платежом и чеком
		reservation := &domain.Reservation{
			UserID:        req.UserID,
			TurfID:        req.TurfID,
			Date:          req.Date,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			DurationHours: durationHours,
			Sport:         req.Sport,
			Status:        domain.StatusConfirmed,
			Payment: domain.Payment{
				Amount:        amount,
				Method:        domain.DefaultPaymentMethod,
				Status:        domain.PaymentCompleted,
				TransactionID: uc.receipts.NewTransactionID(),
				PaidAt:        now,
			},
			Receipt: domain.Receipt{
				ReceiptID:   uc.receipts.NewReceiptID(),
				GeneratedAt: now,
			},
			Weather: weatherSnapshot,
			Notes:   req.Notes,
		}

		// 8.4. Сохраняем бронирование
		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Error("CreateReservation: serialization retries exhausted: %v", err)
			return nil, ErrUnavailable
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, amount=%.2f", result.ID, amount)

	// 9. Начисление часов лояльности и событие - best-effort после коммита
	if uc.loyaltyClient != nil {
		if err := uc.loyaltyClient.CreditHours(ctx, result.UserID, result.DurationHours); err != nil {
			uc.logger.Warn("CreateReservation: failed to credit loyalty hours for user=%d: %v", result.UserID, err)
		}
	}
	uc.publishCreated(ctx, result)

	return toResponse(result), nil
}

// publishCreated публикует событие о создании, ошибки только логируются
func (uc *UseCase) publishCreated(ctx context.Context, r *domain.Reservation) {
	if uc.producer == nil {
		return
	}

	event := events.ReservationEvent{
		Type:          events.TypeReservationCreated,
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
		uc.logger.Warn("CreateReservation: failed to publish event for reservation id=%d: %v", r.ID, err)
	}
}

package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Turf-ReservationService/internal/domain"
	"github.com/m04kA/Turf-ReservationService/internal/events"
	repo "github.com/m04kA/Turf-ReservationService/internal/infra/storage/reservation"
	turfClient "github.com/m04kA/Turf-ReservationService/internal/integrations/turfcatalog"
	"github.com/m04kA/Turf-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/Turf-ReservationService/pkg/txmanager"
)

// Service сервис для работы с бронированиями: чтение, отмена, завершение
// Создание и перенос - отдельные use case с собственной проверкой конфликтов
type Service struct {
	reservationRepo ReservationRepository
	turfClient      TurfCatalogClient
	loyaltyClient   LoyaltyClient
	producer        EventPublisher
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	turfClient TurfCatalogClient,
	loyaltyClient LoyaltyClient,
	producer EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		turfClient:      turfClient,
		loyaltyClient:   loyaltyClient,
		producer:        producer,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Доступ имеет владелец бронирования или владелец площадки
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, reservation, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetTurfReservations получает бронирования площадки
// Доступно только владельцу площадки
func (s *Service) GetTurfReservations(ctx context.Context, req *models.GetTurfReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetTurfReservations: fetching reservations for turf=%d, user=%d", req.TurfID, req.UserID)

	if err := s.checkTurfOwnerAccess(ctx, req.TurfID, req.UserID); err != nil {
		return nil, err
	}

	filter := domain.TurfReservationsFilter{
		TurfID:          req.TurfID,
		Date:            req.Date,
		IncludeInactive: req.IncludeInactive,
	}

	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetTurfReservations: invalid status=%s for turf=%d", *req.Status, req.TurfID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	reservations, err := s.reservationRepo.GetByTurfWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTurfReservations: repository error for turf=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: GetTurfReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTurfReservations: fetched %d reservations for turf=%d", len(reservations), req.TurfID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование владельца
// Статус и платеж меняются в той же сериализуемой транзакции, что и проверки:
// параллельный Create на эту дату не увидит промежуточного состояния.
// Освободившийся интервал сразу доступен для новых бронирований
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	var cancelled *domain.Reservation

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, reservationID)
		if err != nil {
			if errors.Is(err, repo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if reservation.UserID != req.UserID {
			return ErrNotOwner
		}

		switch {
		case reservation.IsCancelled():
			return ErrAlreadyCancelled
		case reservation.IsCompleted():
			return ErrCannotCancelCompleted
		case !reservation.CanBeCancelled():
			return ErrCannotCancel
		}

		if err := s.reservationRepo.Cancel(txCtx, reservationID, req.UserID, req.Reason); err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		cancelled = reservation
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			s.logger.Error("Cancel: serialization retries exhausted for reservation id=%d: %v", reservationID, err)
			return nil, ErrUnavailable
		}
		s.logger.Warn("Cancel: failed for reservation id=%d: %v", reservationID, err)
		return nil, err
	}

	// Отражаем изменения в ответе без повторного чтения из БД
	now := time.Now()
	cancelled.Status = domain.StatusCancelled
	cancelled.Payment.Status = domain.PaymentRefunded
	cancelled.CancelledBy = &req.UserID
	cancelled.CancellationReason = &req.Reason
	cancelled.CancelledAt = &now

	// Откат часов лояльности и событие - best-effort после коммита
	if err := s.loyaltyClient.ReverseHours(ctx, cancelled.UserID, cancelled.DurationHours); err != nil {
		s.logger.Warn("Cancel: failed to reverse loyalty hours for user=%d: %v", cancelled.UserID, err)
	}
	s.publishEvent(ctx, events.TypeReservationCancelled, cancelled)

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return models.FromDomainReservation(cancelled), nil
}

// Complete отмечает бронирование сыгранным ("turf marks as played")
// Доступно только владельцу площадки, переход разрешен только из confirmed
func (s *Service) Complete(ctx context.Context, reservationID int64, req *models.CompleteReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Complete: completing reservation id=%d by user=%d", reservationID, req.UserID)

	var completed *domain.Reservation

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, reservationID)
		if err != nil {
			if errors.Is(err, repo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
		}

		if err := s.checkTurfOwnerAccess(txCtx, reservation.TurfID, req.UserID); err != nil {
			return err
		}

		if !reservation.CanBeCompleted() {
			return ErrCannotComplete
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, reservationID, domain.StatusCompleted); err != nil {
			return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
		}

		completed = reservation
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			s.logger.Error("Complete: serialization retries exhausted for reservation id=%d: %v", reservationID, err)
			return nil, ErrUnavailable
		}
		s.logger.Warn("Complete: failed for reservation id=%d: %v", reservationID, err)
		return nil, err
	}

	completed.Status = domain.StatusCompleted
	s.publishEvent(ctx, events.TypeReservationCompleted, completed)

	s.logger.Info("Complete: successfully completed reservation id=%d", reservationID)
	return models.FromDomainReservation(completed), nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Доступ есть у владельца бронирования и у владельца площадки
func (s *Service) checkUserAccess(ctx context.Context, reservation *domain.Reservation, userID int64) error {
	if reservation.UserID == userID {
		return nil
	}

	if err := s.checkTurfOwnerAccess(ctx, reservation.TurfID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkTurfOwnerAccess проверяет, что пользователь владеет площадкой
func (s *Service) checkTurfOwnerAccess(ctx context.Context, turfID int64, userID int64) error {
	turf, err := s.turfClient.GetTurf(ctx, turfID)
	if err != nil {
		if errors.Is(err, turfClient.ErrTurfNotFound) {
			s.logger.Warn("checkTurfOwnerAccess: turf id=%d not found", turfID)
			return ErrTurfNotFound
		}
		s.logger.Error("checkTurfOwnerAccess: failed to get turf id=%d: %v", turfID, err)
		return fmt.Errorf("%w: checkTurfOwnerAccess - failed to get turf: %v", ErrInternal, err)
	}

	if turf.OwnerID != userID {
		s.logger.Warn("checkTurfOwnerAccess: user=%d is not the owner of turf=%d", userID, turfID)
		return ErrAccessDenied
	}

	return nil
}

// publishEvent публикует событие жизненного цикла, ошибки только логируются
func (s *Service) publishEvent(ctx context.Context, eventType string, r *domain.Reservation) {
	if s.producer == nil {
		return
	}

	event := events.ReservationEvent{
		Type:          eventType,
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

	if err := s.producer.Publish(ctx, event); err != nil {
		s.logger.Warn("publishEvent: failed to publish %s for reservation id=%d: %v", eventType, r.ID, err)
	}
}

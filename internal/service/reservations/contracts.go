package reservations

import (
	"context"

	"github.com/m04kA/Turf-ReservationService/internal/domain"
	"github.com/m04kA/Turf-ReservationService/internal/events"
	"github.com/m04kA/Turf-ReservationService/internal/integrations/turfcatalog"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetByTurfWithFilter(ctx context.Context, filter domain.TurfReservationsFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	Cancel(ctx context.Context, id int64, cancelledBy int64, reason string) error
}

// TurfCatalogClient интерфейс клиента каталога площадок
type TurfCatalogClient interface {
	GetTurf(ctx context.Context, turfID int64) (*turfcatalog.Turf, error)
}

// LoyaltyClient интерфейс клиента сервиса лояльности
type LoyaltyClient interface {
	ReverseHours(ctx context.Context, userID int64, hours float64) error
}

// EventPublisher интерфейс публикации событий жизненного цикла
type EventPublisher interface {
	Publish(ctx context.Context, event events.ReservationEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

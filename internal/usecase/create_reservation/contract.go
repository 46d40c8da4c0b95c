package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/Turf-ReservationService/internal/domain"
	"github.com/m04kA/Turf-ReservationService/internal/events"
	"github.com/m04kA/Turf-ReservationService/internal/integrations/turfcatalog"
	"github.com/m04kA/Turf-ReservationService/internal/integrations/weather"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetByTurfWithFilter(ctx context.Context, filter domain.TurfReservationsFilter) ([]*domain.Reservation, error)
}

// TurfCatalogClient интерфейс клиента каталога площадок
type TurfCatalogClient interface {
	GetTurf(ctx context.Context, turfID int64) (*turfcatalog.Turf, error)
}

// WeatherClient интерфейс погодного клиента
type WeatherClient interface {
	Snapshot(ctx context.Context, city string, date time.Time) (*weather.Snapshot, error)
}

// LoyaltyClient интерфейс клиента сервиса лояльности
type LoyaltyClient interface {
	CreditHours(ctx context.Context, userID int64, hours float64) error
}

// EventPublisher интерфейс публикации событий жизненного цикла
type EventPublisher interface {
	Publish(ctx context.Context, event events.ReservationEvent) error
}

// ReceiptGenerator интерфейс генератора идентификаторов чеков и транзакций
type ReceiptGenerator interface {
	NewReceiptID() string
	NewTransactionID() string
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

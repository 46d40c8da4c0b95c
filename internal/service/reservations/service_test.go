package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Turf-ReservationService/internal/domain"
	"github.com/m04kA/Turf-ReservationService/internal/events"
	repoErrs "github.com/m04kA/Turf-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/Turf-ReservationService/internal/integrations/turfcatalog"
	"github.com/m04kA/Turf-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/Turf-ReservationService/pkg/txmanager"
)

// Mock структуры

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	args := m.Called(ctx, userID, status)
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByTurfWithFilter(ctx context.Context, filter domain.TurfReservationsFilter) ([]*domain.Reservation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockReservationRepository) Cancel(ctx context.Context, id int64, cancelledBy int64, reason string) error {
	args := m.Called(ctx, id, cancelledBy, reason)
	return args.Error(0)
}

type MockTurfClient struct {
	mock.Mock
}

func (m *MockTurfClient) GetTurf(ctx context.Context, turfID int64) (*turfcatalog.Turf, error) {
	args := m.Called(ctx, turfID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*turfcatalog.Turf), args.Error(1)
}

type MockLoyaltyClient struct {
	mock.Mock
}

func (m *MockLoyaltyClient) ReverseHours(ctx context.Context, userID int64, hours float64) error {
	args := m.Called(ctx, userID, hours)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, event events.ReservationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// Фикстуры

func testTurf() *turfcatalog.Turf {
	return &turfcatalog.Turf{
		ID:       10,
		OwnerID:  99,
		City:     "Казань",
		IsActive: true,
	}
}

func confirmedReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:            5,
		UserID:        1,
		TurfID:        10,
		Date:          time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		EndTime:       "12:00",
		DurationHours: 2,
		Sport:         "football",
		Status:        domain.StatusConfirmed,
		Payment: domain.Payment{
			Amount: 4000,
			Status: domain.PaymentCompleted,
		},
	}
}

func newTestService(
	repo ReservationRepository,
	turfClient TurfCatalogClient,
	loyaltyClient LoyaltyClient,
	producer EventPublisher,
	txManager TransactionManager,
) *Service {
	return NewService(repo, turfClient, loyaltyClient, producer, txManager, noopLogger{})
}

// ============================ Тесты для GetByID ============================

// Тест 1: Владелец бронирования видит свою запись
func TestGetByID_Owner(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockRepo.On("GetByID", mock.Anything, int64(5)).Return(confirmedReservation(), nil)

	svc := newTestService(mockRepo, &MockTurfClient{}, &MockLoyaltyClient{}, &MockProducer{}, &fakeTxManager{})

	resp, err := svc.GetByID(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
}

// Тест 2: Владелец площадки тоже видит бронирование
func TestGetByID_TurfOwner(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockTurf := &MockTurfClient{}

	mockRepo.On("GetByID", mock.Anything, int64(5)).Return(confirmedReservation(), nil)
	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)

	svc := newTestService(mockRepo, mockTurf, &MockLoyaltyClient{}, &MockProducer{}, &fakeTxManager{})

	resp, err := svc.GetByID(context.Background(), 5, 99)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
}

// Тест 3: Посторонний пользователь доступа не имеет
func TestGetByID_AccessDenied(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockTurf := &MockTurfClient{}

	mockRepo.On("GetByID", mock.Anything, int64(5)).Return(confirmedReservation(), nil)
	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)

	svc := newTestService(mockRepo, mockTurf, &MockLoyaltyClient{}, &MockProducer{}, &fakeTxManager{})

	_, err := svc.GetByID(context.Background(), 5, 42)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// Тест 4: Бронирование не найдено
func TestGetByID_NotFound(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockRepo.On("GetByID", mock.Anything, int64(5)).Return(nil, repoErrs.ErrReservationNotFound)

	svc := newTestService(mockRepo, &MockTurfClient{}, &MockLoyaltyClient{}, &MockProducer{}, &fakeTxManager{})

	_, err := svc.GetByID(context.Background(), 5, 1)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

// ============================ Тесты для Cancel ============================

// Тест 5: Успешная отмена - статус, возврат платежа, откат часов, событие
func TestCancel_Success(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockLoyalty := &MockLoyaltyClient{}
	mockProducer := &MockProducer{}

	mockRepo.On("GetByID", mock.Anything, int64(5)).Return(confirmedReservation(), nil)
	mockRepo.On("Cancel", mock.Anything, int64(5), int64(1), "дождь").Return(nil)
	mockLoyalty.On("ReverseHours", mock.Anything, int64(1), 2.0).Return(nil)
	mockProducer.On("Publish", mock.Anything, mock.MatchedBy(func(e events.ReservationEvent) bool {
		return e.Type == events.TypeReservationCancelled && e.ReservationID == 5
	})).Return(nil)

	svc := newTestService(mockRepo, &MockTurfClient{}, mockLoyalty, mockProducer, &fakeTxManager{})

	resp, err := svc.Cancel(context.Background(), 5, &models.CancelReservationRequest{UserID: 1, Reason: "дождь"})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "refunded", resp.Payment.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "дождь", *resp.CancellationReason)
	require.NotNil(t, resp.CancelledBy)
	assert.Equal(t, int64(1), *resp.CancelledBy)

	mockLoyalty.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

// Тест 6: Повторная отмена
func TestCancel_AlreadyCancelled(t *testing.T) {
	mockRepo := &MockReservationRepository{}

	r := confirmedReservation()
	r.Status = domain.StatusCancelled
	mockRepo.On("GetByID", mock.Anything, int64(5)).Return(r, nil)

	svc := newTestService(mockRepo, &MockTurfClient{}, &MockLoyaltyClient{}, &MockProducer{}, &fakeTxManager{})

	_, err := svc.Cancel(context.Background(), 5, &models.CancelReservationRequest{UserID: 1, Reason: "дождь"})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	mockRepo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Тест 7: Сыгранное бронирование не отменяется
func TestCancel_Completed(t *testing.T) {
	mockRepo := &MockReservationRepository{}

	r := confirmedReservation()
	r.Status = domain.StatusCompleted
	mockRepo.On("GetByID", mock.Anything, int64(5)).Return(r, nil)

	svc := newTestService(mockRepo, &MockTurfClient{}, &MockLoyaltyClient{}, &MockProducer{}, &fakeTxManager{})

	_, err := svc.Cancel(context.Background(), 5, &models.CancelReservationRequest{UserID: 1, Reason: "дождь"})
	assert.ErrorIs(t, err, ErrCannotCancelCompleted)
}

// Тест 8: Вытесненная переносом запись не отменяется
func TestCancel_Rescheduled(t *testing.T) {
	mockRepo := &MockReservationRepository{}

	r := confirmedReservation()
	r.Status = domain.StatusRescheduled
	mockRepo.On("GetByID", mock.Anything, int64(5)).Return(r, nil)

	svc := newTestService(mockRepo, &MockTurfClient{}, &MockLoyaltyClient{}, &MockProducer{}, &fakeTxManager{})

	_, err := svc.Cancel(context.Background(), 5, &models.CancelReservationRequest{UserID: 1, Reason: "дождь"})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

// Тест 9: Отменять может только владелец бронирования
func TestCancel_NotOwner(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockRepo.On("GetByID", mock.Anything, int64(5)).Return(confirmedReservation(), nil)

	svc := newTestService(mockRepo, &MockTurfClient{}, &MockLoyaltyClient{}, &MockProducer{}, &fakeTxManager{})

	_, err := svc.Cancel(context.Background(), 5, &models.CancelReservationRequest{UserID: 2, Reason: "дождь"})
	assert.ErrorIs(t, err, ErrNotOwner)
}

// Тест 10: Исчерпание повторов сериализации - временная недоступность
func TestCancel_SerializationFailure(t *testing.T) {
	svc := newTestService(&MockReservationRepository{}, &MockTurfClient{}, &MockLoyaltyClient{}, &MockProducer{},
		&fakeTxManager{err: txmanager.ErrSerializationFailure})

	_, err := svc.Cancel(context.Background(), 5, &models.CancelReservationRequest{UserID: 1, Reason: "дождь"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

// Тест 11: Ошибка отката часов лояльности не ломает отмену
func TestCancel_LoyaltyFailureIgnored(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockLoyalty := &MockLoyaltyClient{}
	mockProducer := &MockProducer{}

	mockRepo.On("GetByID", mock.Anything, int64(5)).Return(confirmedReservation(), nil)
	mockRepo.On("Cancel", mock.Anything, int64(5), int64(1), "дождь").Return(nil)
	mockLoyalty.On("ReverseHours", mock.Anything, int64(1), 2.0).Return(assert.AnError)
	mockProducer.On("Publish", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(mockRepo, &MockTurfClient{}, mockLoyalty, mockProducer, &fakeTxManager{})

	resp, err := svc.Cancel(context.Background(), 5, &models.CancelReservationRequest{UserID: 1, Reason: "дождь"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
}

// ============================ Тесты для Complete ============================

// Тест 12: Владелец площадки отмечает бронирование сыгранным
func TestComplete_Success(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockTurf := &MockTurfClient{}
	mockProducer := &MockProducer{}

	mockRepo.On("GetByID", mock.Anything, int64(5)).Return(confirmedReservation(), nil)
	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)
	mockRepo.On("UpdateStatus", mock.Anything, int64(5), domain.StatusCompleted).Return(nil)
	mockProducer.On("Publish", mock.Anything, mock.MatchedBy(func(e events.ReservationEvent) bool {
		return e.Type == events.TypeReservationCompleted && e.Status == "completed"
	})).Return(nil)

	svc := newTestService(mockRepo, mockTurf, &MockLoyaltyClient{}, mockProducer, &fakeTxManager{})

	resp, err := svc.Complete(context.Background(), 5, &models.CompleteReservationRequest{UserID: 99})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	mockProducer.AssertExpectations(t)
}

// Тест 13: Отмечать может только владелец площадки
func TestComplete_AccessDenied(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockTurf := &MockTurfClient{}

	mockRepo.On("GetByID", mock.Anything, int64(5)).Return(confirmedReservation(), nil)
	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)

	svc := newTestService(mockRepo, mockTurf, &MockLoyaltyClient{}, &MockProducer{}, &fakeTxManager{})

	// Даже владелец самого бронирования не может отметить его сыгранным
	_, err := svc.Complete(context.Background(), 5, &models.CompleteReservationRequest{UserID: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)
	mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// Тест 14: Переход разрешен только из confirmed
func TestComplete_InvalidStatus(t *testing.T) {
	for _, status := range []domain.ReservationStatus{
		domain.StatusPending,
		domain.StatusCancelled,
		domain.StatusCompleted,
		domain.StatusRescheduled,
	} {
		t.Run(string(status), func(t *testing.T) {
			mockRepo := &MockReservationRepository{}
			mockTurf := &MockTurfClient{}

			r := confirmedReservation()
			r.Status = status
			mockRepo.On("GetByID", mock.Anything, int64(5)).Return(r, nil)
			mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)

			svc := newTestService(mockRepo, mockTurf, &MockLoyaltyClient{}, &MockProducer{}, &fakeTxManager{})

			_, err := svc.Complete(context.Background(), 5, &models.CompleteReservationRequest{UserID: 99})
			assert.ErrorIs(t, err, ErrCannotComplete)
		})
	}
}

// ============================ Тесты для списков ============================

// Тест 15: История пользователя с фильтром по статусу
func TestGetUserReservations(t *testing.T) {
	mockRepo := &MockReservationRepository{}

	status := "confirmed"
	confirmed := domain.StatusConfirmed
	mockRepo.On("GetByUserID", mock.Anything, int64(1), &confirmed).Return([]*domain.Reservation{confirmedReservation()}, nil)

	svc := newTestService(mockRepo, &MockTurfClient{}, &MockLoyaltyClient{}, &MockProducer{}, &fakeTxManager{})

	resp, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: 1, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Len(t, resp.Reservations, 1)
}

// Тест 16: Невалидный статус в фильтре
func TestGetUserReservations_InvalidStatus(t *testing.T) {
	svc := newTestService(&MockReservationRepository{}, &MockTurfClient{}, &MockLoyaltyClient{}, &MockProducer{}, &fakeTxManager{})

	status := "unknown"
	_, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: 1, Status: &status})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Тест 17: Бронирования площадки доступны только её владельцу
func TestGetTurfReservations_OwnerOnly(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockTurf := &MockTurfClient{}

	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)
	mockRepo.On("GetByTurfWithFilter", mock.Anything, mock.Anything).Return([]*domain.Reservation{confirmedReservation()}, nil)

	svc := newTestService(mockRepo, mockTurf, &MockLoyaltyClient{}, &MockProducer{}, &fakeTxManager{})

	resp, err := svc.GetTurfReservations(context.Background(), &models.GetTurfReservationsRequest{TurfID: 10, UserID: 99})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	_, err = svc.GetTurfReservations(context.Background(), &models.GetTurfReservationsRequest{TurfID: 10, UserID: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

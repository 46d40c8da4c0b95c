package create_reservation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Turf-ReservationService/internal/domain"
	"github.com/m04kA/Turf-ReservationService/internal/events"
	"github.com/m04kA/Turf-ReservationService/internal/integrations/turfcatalog"
	"github.com/m04kA/Turf-ReservationService/internal/integrations/weather"
	"github.com/m04kA/Turf-ReservationService/pkg/ptr"
	"github.com/m04kA/Turf-ReservationService/pkg/receipt"
)

// Mock структуры

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	args := m.Called(ctx, res)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	if args.Get(0) == nil {
		// Эхо: репозиторий возвращает ту же запись, ID присваивается через Run
		return res, nil
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByTurfWithFilter(ctx context.Context, filter domain.TurfReservationsFilter) ([]*domain.Reservation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Reservation), args.Error(1)
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

type MockWeatherClient struct {
	mock.Mock
}

func (m *MockWeatherClient) Snapshot(ctx context.Context, city string, date time.Time) (*weather.Snapshot, error) {
	args := m.Called(ctx, city, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*weather.Snapshot), args.Error(1)
}

type MockLoyaltyClient struct {
	mock.Mock
}

func (m *MockLoyaltyClient) CreditHours(ctx context.Context, userID int64, hours float64) error {
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

// fakeTxManager выполняет транзакционную функцию напрямую, сериализуя
// параллельные вызовы мьютексом - аналог сериализуемой изоляции в тестах
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

// fixedTimeProvider возвращает фиксированное время
type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// Фикстуры

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func testTurf() *turfcatalog.Turf {
	allDay := turfcatalog.DaySchedule{
		Available: true,
		OpenTime:  ptr.Ptr("08:00"),
		CloseTime: ptr.Ptr("22:00"),
	}
	return &turfcatalog.Turf{
		ID:           10,
		OwnerID:      99,
		Name:         "Центральный стадион",
		City:         "Казань",
		Sports:       []string{"football", "cricket"},
		PricePerHour: 2000,
		Availability: turfcatalog.WeekHours{
			Monday:    allDay,
			Tuesday:   allDay,
			Wednesday: allDay,
			Thursday:  allDay,
			Friday:    allDay,
			Saturday:  allDay,
			Sunday:    turfcatalog.DaySchedule{Available: false},
		},
		IsActive: true,
	}
}

func testRequest() *Request {
	return &Request{
		UserID:    1,
		TurfID:    10,
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), // вторник
		StartTime: "10:00",
		EndTime:   "12:00",
		Sport:     "football",
	}
}

func newTestUseCase(
	repo ReservationRepository,
	turfClient TurfCatalogClient,
	weatherClient WeatherClient,
	loyaltyClient LoyaltyClient,
	producer EventPublisher,
) *UseCase {
	uc := NewUseCase(repo, turfClient, weatherClient, loyaltyClient, producer, receipt.New(), &fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

// ============================ Тесты для CreateReservation ============================

// Тест 1: Создание бронирования - успешный сценарий
func TestCreateReservation_Success(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockTurf := &MockTurfClient{}
	mockWeather := &MockWeatherClient{}
	mockLoyalty := &MockLoyaltyClient{}
	mockProducer := &MockProducer{}

	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)
	mockWeather.On("Snapshot", mock.Anything, "Казань", mock.Anything).Return(&weather.Snapshot{
		Condition:   "sunny",
		Temperature: 24,
		RainChance:  10,
	}, nil)
	mockRepo.On("GetByTurfWithFilter", mock.Anything, mock.Anything).Return([]*domain.Reservation{}, nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		res := args.Get(1).(*domain.Reservation)
		res.ID = 42
		res.CreatedAt = testNow
		res.UpdatedAt = testNow
	}).Return(nil, nil)
	mockLoyalty.On("CreditHours", mock.Anything, int64(1), 2.0).Return(nil)
	mockProducer.On("Publish", mock.Anything, mock.Anything).Return(nil)

	uc := newTestUseCase(mockRepo, mockTurf, mockWeather, mockLoyalty, mockProducer)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, 2.0, resp.DurationHours)
	// 2 часа по тарифу 2000/час
	assert.Equal(t, 4000.0, resp.Payment.Amount)
	assert.Equal(t, string(domain.PaymentCompleted), resp.Payment.Status)
	assert.True(t, strings.HasPrefix(resp.Payment.TransactionID, "TXN-"))
	assert.True(t, strings.HasPrefix(resp.ReceiptID, "RCP-"))
	require.NotNil(t, resp.Weather)
	assert.Equal(t, "sunny", resp.Weather.Condition)

	mockLoyalty.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

// Тест 2: Дата в прошлом
func TestCreateReservation_PastDate(t *testing.T) {
	uc := newTestUseCase(&MockReservationRepository{}, &MockTurfClient{}, &MockWeatherClient{}, &MockLoyaltyClient{}, &MockProducer{})

	req := testRequest()
	req.Date = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPastDate)
}

// Тест 3: Площадка не поддерживает вид спорта
func TestCreateReservation_SportNotOffered(t *testing.T) {
	mockTurf := &MockTurfClient{}
	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)

	uc := newTestUseCase(&MockReservationRepository{}, mockTurf, &MockWeatherClient{}, &MockLoyaltyClient{}, &MockProducer{})

	req := testRequest()
	req.Sport = "hockey"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSportNotOffered)
}

// Тест 4: Площадка закрыта в выбранный день
func TestCreateReservation_TurfClosed(t *testing.T) {
	mockTurf := &MockTurfClient{}
	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)

	uc := newTestUseCase(&MockReservationRepository{}, mockTurf, &MockWeatherClient{}, &MockLoyaltyClient{}, &MockProducer{})

	req := testRequest()
	req.Date = time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC) // воскресенье

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTurfClosed)
}

// Тест 5: Интервал за пределами часов работы
func TestCreateReservation_OutsideOperatingHours(t *testing.T) {
	mockTurf := &MockTurfClient{}
	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)

	uc := newTestUseCase(&MockReservationRepository{}, mockTurf, &MockWeatherClient{}, &MockLoyaltyClient{}, &MockProducer{})

	req := testRequest()
	req.StartTime = "21:00"
	req.EndTime = "23:00"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)
}

// Тест 6: Пересечение с существующим бронированием
func TestCreateReservation_SlotConflict(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockTurf := &MockTurfClient{}
	mockWeather := &MockWeatherClient{}

	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)
	mockWeather.On("Snapshot", mock.Anything, mock.Anything, mock.Anything).Return(nil, weather.ErrInternal)
	mockRepo.On("GetByTurfWithFilter", mock.Anything, mock.Anything).Return([]*domain.Reservation{
		{
			ID:        7,
			Status:    domain.StatusConfirmed,
			StartTime: "11:00",
			EndTime:   "13:00",
		},
	}, nil)

	uc := newTestUseCase(mockRepo, mockTurf, mockWeather, &MockLoyaltyClient{}, &MockProducer{})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Тест 7: Бронирование "впритык" к существующему допустимо
func TestCreateReservation_TouchingIntervalsAllowed(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockTurf := &MockTurfClient{}
	mockWeather := &MockWeatherClient{}
	mockLoyalty := &MockLoyaltyClient{}
	mockProducer := &MockProducer{}

	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)
	mockWeather.On("Snapshot", mock.Anything, mock.Anything, mock.Anything).Return(nil, weather.ErrInternal)
	mockRepo.On("GetByTurfWithFilter", mock.Anything, mock.Anything).Return([]*domain.Reservation{
		{
			ID:        7,
			Status:    domain.StatusConfirmed,
			StartTime: "08:00",
			EndTime:   "10:00", // заканчивается ровно в начале нового
		},
	}, nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Reservation).ID = 43
	}).Return(nil, nil)
	mockLoyalty.On("CreditHours", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockProducer.On("Publish", mock.Anything, mock.Anything).Return(nil)

	uc := newTestUseCase(mockRepo, mockTurf, mockWeather, mockLoyalty, mockProducer)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(43), resp.ID)
	// Погодный сервис недоступен - бронирование все равно проходит
	assert.Nil(t, resp.Weather)
}

// Тест 8: Два параллельных пересекающихся запроса - проходит ровно один
func TestCreateReservation_ConcurrentOverlappingRequests(t *testing.T) {
	repo := newInMemoryRepo()
	mockTurf := &MockTurfClient{}
	mockWeather := &MockWeatherClient{}
	mockLoyalty := &MockLoyaltyClient{}
	mockProducer := &MockProducer{}

	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)
	mockWeather.On("Snapshot", mock.Anything, mock.Anything, mock.Anything).Return(nil, weather.ErrInternal)
	mockLoyalty.On("CreditHours", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockProducer.On("Publish", mock.Anything, mock.Anything).Return(nil)

	uc := NewUseCase(repo, mockTurf, mockWeather, mockLoyalty, mockProducer, receipt.New(), &fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	const attempts = 2
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			req := testRequest()
			req.UserID = userID
			_, err := uc.Execute(context.Background(), req)
			errs <- err
		}(int64(i + 1))
	}
	wg.Wait()
	close(errs)

	var successes, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
	assert.Len(t, repo.all(), 1)
}

// inMemoryRepo минимальный репозиторий в памяти для конкурентных тестов
type inMemoryRepo struct {
	mu           sync.Mutex
	nextID       int64
	reservations []*domain.Reservation
}

func newInMemoryRepo() *inMemoryRepo {
	return &inMemoryRepo{nextID: 1}
}

func (r *inMemoryRepo) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *res
	stored.ID = r.nextID
	r.nextID++
	r.reservations = append(r.reservations, &stored)
	return &stored, nil
}

func (r *inMemoryRepo) GetByTurfWithFilter(ctx context.Context, filter domain.TurfReservationsFilter) ([]*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Reservation, 0)
	for _, res := range r.reservations {
		if res.TurfID != filter.TurfID {
			continue
		}
		if filter.Date != nil && !res.Date.Equal(*filter.Date) {
			continue
		}
		if !filter.IncludeInactive && !res.IsActive() {
			continue
		}
		result = append(result, res)
	}
	return result, nil
}

func (r *inMemoryRepo) all() []*domain.Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.Reservation(nil), r.reservations...)
}

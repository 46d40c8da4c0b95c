package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Turf-ReservationService/internal/domain"
	"github.com/m04kA/Turf-ReservationService/internal/integrations/turfcatalog"
	"github.com/m04kA/Turf-ReservationService/pkg/ptr"
	"github.com/m04kA/Turf-ReservationService/pkg/types"
)

// Mock структуры

type MockReservationRepository struct {
	mock.Mock
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
	weekday := turfcatalog.DaySchedule{
		Available: true,
		OpenTime:  ptr.Ptr("08:00"),
		CloseTime: ptr.Ptr("22:00"),
	}
	return &turfcatalog.Turf{
		ID:      10,
		OwnerID: 99,
		City:    "Казань",
		Availability: turfcatalog.WeekHours{
			Monday:    weekday,
			Tuesday:   weekday,
			Wednesday: weekday,
			Thursday:  weekday,
			Friday:    weekday,
			Saturday:  weekday,
			Sunday:    turfcatalog.DaySchedule{Available: false},
		},
		IsActive: true,
	}
}

func activeReservation(id int64, start, end types.TimeString) *domain.Reservation {
	return &domain.Reservation{
		ID:        id,
		Status:    domain.StatusConfirmed,
		StartTime: start,
		EndTime:   end,
	}
}

func newTestUseCase(repo ReservationRepository, turfClient TurfCatalogClient) *UseCase {
	uc := NewUseCase(repo, turfClient, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

// ============================ Тесты для GetAvailability ============================

// Тест 1: День без бронирований - весь рабочий интервал свободен
func TestGetAvailability_EmptyDay(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockTurf := &MockTurfClient{}

	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)
	mockRepo.On("GetByTurfWithFilter", mock.Anything, mock.Anything).Return([]*domain.Reservation{}, nil)

	uc := newTestUseCase(mockRepo, mockTurf)

	resp, err := uc.Execute(context.Background(), &Request{
		TurfID: 10,
		Date:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), // вторник
	})
	require.NoError(t, err)

	assert.True(t, resp.Open)
	require.NotNil(t, resp.OpenTime)
	assert.Equal(t, types.TimeString("08:00"), *resp.OpenTime)
	assert.Empty(t, resp.Booked)
	assert.Equal(t, []Interval{{StartTime: "08:00", EndTime: "22:00"}}, resp.Free)
}

// Тест 2: Зазоры между бронированиями, сортировка по времени начала
func TestGetAvailability_GapsBetweenBookings(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockTurf := &MockTurfClient{}

	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)
	// Репозиторий возвращает записи в произвольном порядке
	mockRepo.On("GetByTurfWithFilter", mock.Anything, mock.Anything).Return([]*domain.Reservation{
		activeReservation(2, "14:00", "16:00"),
		activeReservation(1, "10:00", "12:00"),
	}, nil)

	uc := newTestUseCase(mockRepo, mockTurf)

	resp, err := uc.Execute(context.Background(), &Request{
		TurfID: 10,
		Date:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, []Interval{
		{StartTime: "10:00", EndTime: "12:00"},
		{StartTime: "14:00", EndTime: "16:00"},
	}, resp.Booked)
	assert.Equal(t, []Interval{
		{StartTime: "08:00", EndTime: "10:00"},
		{StartTime: "12:00", EndTime: "14:00"},
		{StartTime: "16:00", EndTime: "22:00"},
	}, resp.Free)
}

// Тест 3: Граничащие бронирования не порождают нулевых зазоров
func TestGetAvailability_AdjacentBookings(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockTurf := &MockTurfClient{}

	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)
	mockRepo.On("GetByTurfWithFilter", mock.Anything, mock.Anything).Return([]*domain.Reservation{
		activeReservation(1, "08:00", "10:00"),
		activeReservation(2, "10:00", "12:00"),
	}, nil)

	uc := newTestUseCase(mockRepo, mockTurf)

	resp, err := uc.Execute(context.Background(), &Request{
		TurfID: 10,
		Date:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, []Interval{{StartTime: "12:00", EndTime: "22:00"}}, resp.Free)
}

// Тест 4: Неактивные записи не занимают слоты
func TestGetAvailability_InactiveExcluded(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockTurf := &MockTurfClient{}

	cancelled := activeReservation(1, "10:00", "12:00")
	cancelled.Status = domain.StatusCancelled

	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)
	mockRepo.On("GetByTurfWithFilter", mock.Anything, mock.Anything).Return([]*domain.Reservation{cancelled}, nil)

	uc := newTestUseCase(mockRepo, mockTurf)

	resp, err := uc.Execute(context.Background(), &Request{
		TurfID: 10,
		Date:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Booked)
	assert.Equal(t, []Interval{{StartTime: "08:00", EndTime: "22:00"}}, resp.Free)
}

// Тест 5: Выходной день - площадка закрыта, интервалы не считаются
func TestGetAvailability_ClosedDay(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockTurf := &MockTurfClient{}

	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)

	uc := newTestUseCase(mockRepo, mockTurf)

	resp, err := uc.Execute(context.Background(), &Request{
		TurfID: 10,
		Date:   time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC), // воскресенье
	})
	require.NoError(t, err)

	assert.False(t, resp.Open)
	assert.Nil(t, resp.OpenTime)
	assert.Empty(t, resp.Booked)
	assert.Empty(t, resp.Free)
	mockRepo.AssertNotCalled(t, "GetByTurfWithFilter", mock.Anything, mock.Anything)
}

// Тест 6: Прошедшая дата - занятость показываем, свободные слоты нет
func TestGetAvailability_PastDate(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockTurf := &MockTurfClient{}

	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(testTurf(), nil)
	mockRepo.On("GetByTurfWithFilter", mock.Anything, mock.Anything).Return([]*domain.Reservation{
		activeReservation(1, "10:00", "12:00"),
	}, nil)

	uc := newTestUseCase(mockRepo, mockTurf)

	resp, err := uc.Execute(context.Background(), &Request{
		TurfID: 10,
		Date:   time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), // вторник до testNow
	})
	require.NoError(t, err)

	assert.True(t, resp.Open)
	assert.Equal(t, []Interval{{StartTime: "10:00", EndTime: "12:00"}}, resp.Booked)
	assert.Empty(t, resp.Free)
}

// Тест 7: Площадка не найдена
func TestGetAvailability_TurfNotFound(t *testing.T) {
	mockTurf := &MockTurfClient{}
	mockTurf.On("GetTurf", mock.Anything, int64(10)).Return(nil, turfcatalog.ErrTurfNotFound)

	uc := newTestUseCase(&MockReservationRepository{}, mockTurf)

	_, err := uc.Execute(context.Background(), &Request{
		TurfID: 10,
		Date:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrTurfNotFound)
}

// Тест 8: Невалидный запрос
func TestGetAvailability_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&MockReservationRepository{}, &MockTurfClient{})

	_, err := uc.Execute(context.Background(), &Request{TurfID: 0, Date: testNow})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{TurfID: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFreeIntervals_BookingOutsideWindow(t *testing.T) {
	// Бронирование, созданное до смены расписания, выходит за час закрытия
	free := freeIntervals("08:00", "20:00", []Interval{
		{StartTime: "19:00", EndTime: "21:00"},
	})
	assert.Equal(t, []Interval{{StartTime: "08:00", EndTime: "19:00"}}, free)
}

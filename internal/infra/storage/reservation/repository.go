package reservation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Turf-ReservationService/internal/domain"
	"github.com/m04kA/Turf-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/Turf-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/Turf-ReservationService/pkg/types"
)

var reservationColumns = []string{
	"id",
	"user_id",
	"turf_id",
	"reservation_date",
	"start_time",
	"end_time",
	"duration_hours",
	"sport",
	"status",
	"payment_amount",
	"payment_method",
	"payment_status",
	"payment_transaction_id",
	"payment_paid_at",
	"receipt_id",
	"receipt_generated_at",
	"weather",
	"notes",
	"cancelled_by",
	"cancellation_reason",
	"cancelled_at",
	"rescheduled_from_id",
	"rescheduled_from_date",
	"rescheduled_from_start",
	"rescheduled_from_end",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
//
// Таблица reservations - авторитетный индекс слотов: набор активных интервалов
// для пары (turf_id, reservation_date). Проверка конфликтов и вставка обязаны
// выполняться в одной сериализуемой транзакции, выборка на дату при этом
// блокируется через FOR UPDATE
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	weather, err := encodeWeather(res.Weather)
	if err != nil {
		return nil, err
	}

	var (
		fromID    *int64
		fromDate  interface{}
		fromStart interface{}
		fromEnd   interface{}
	)
	fromID = res.RescheduledFromID
	if res.RescheduledFrom != nil {
		fromDate = res.RescheduledFrom.Date
		fromStart = res.RescheduledFrom.StartTime
		fromEnd = res.RescheduledFrom.EndTime
	}

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"user_id",
			"turf_id",
			"reservation_date",
			"start_time",
			"end_time",
			"duration_hours",
			"sport",
			"status",
			"payment_amount",
			"payment_method",
			"payment_status",
			"payment_transaction_id",
			"payment_paid_at",
			"receipt_id",
			"receipt_generated_at",
			"weather",
			"notes",
			"rescheduled_from_id",
			"rescheduled_from_date",
			"rescheduled_from_start",
			"rescheduled_from_end",
		).
		Values(
			res.UserID,
			res.TurfID,
			res.Date,
			res.StartTime,
			res.EndTime,
			res.DurationHours,
			res.Sport,
			res.Status,
			res.Payment.Amount,
			res.Payment.Method,
			res.Payment.Status,
			res.Payment.TransactionID,
			res.Payment.PaidAt,
			res.Receipt.ReceiptID,
			res.Receipt.GeneratedAt,
			weather,
			res.Notes,
			fromID,
			fromDate,
			fromStart,
			fromEnd,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка дополнительно блокируется через FOR UPDATE,
// чтобы параллельные cancel/reschedule не работали с устаревшим статусом
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	res, err := scanReservation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByUserID получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("reservation_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByTurfWithFilter получает бронирования площадки с фильтрацией
// по дате, статусу и включению неактивных записей
//
// Это запрос к индексу слотов: для пары (turf_id, дата) без фильтра статуса
// и без IncludeInactive возвращается ровно набор активных интервалов.
// Внутри транзакции выборка на конкретную дату блокируется FOR UPDATE -
// на этом держится атомарность последовательности "проверить-вставить"
func (r *Repository) GetByTurfWithFilter(ctx context.Context, filter domain.TurfReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"turf_id": filter.TurfID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"reservation_date": *filter.Date})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("reservation_date DESC, start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTurfWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTurfWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Cancel отменяет бронирование: статус cancelled, платеж refunded,
// фиксируются инициатор, причина и время отмены
func (r *Repository) Cancel(ctx context.Context, id int64, cancelledBy int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("payment_status", domain.PaymentRefunded).
		Set("cancelled_by", cancelledBy).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// scanReservation сканирует одну строку в domain.Reservation
func scanReservation(scan func(dest ...interface{}) error) (*domain.Reservation, error) {
	var (
		res                  domain.Reservation
		weather              sql.NullString
		createdAt, updatedAt sql.NullTime
		fromDate             sql.NullTime
		fromStart, fromEnd   sql.NullString
	)

	err := scan(
		&res.ID,
		&res.UserID,
		&res.TurfID,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.DurationHours,
		&res.Sport,
		&res.Status,
		&res.Payment.Amount,
		&res.Payment.Method,
		&res.Payment.Status,
		&res.Payment.TransactionID,
		&res.Payment.PaidAt,
		&res.Receipt.ReceiptID,
		&res.Receipt.GeneratedAt,
		&weather,
		&res.Notes,
		&res.CancelledBy,
		&res.CancellationReason,
		&res.CancelledAt,
		&res.RescheduledFromID,
		&fromDate,
		&fromStart,
		&fromEnd,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	if weather.Valid && weather.String != "" {
		var snapshot domain.WeatherSnapshot
		if err := json.Unmarshal([]byte(weather.String), &snapshot); err == nil {
			res.Weather = &snapshot
		}
	}

	if fromDate.Valid {
		res.RescheduledFrom = &domain.ScheduleSnapshot{
			Date:      fromDate.Time,
			StartTime: types.TimeString(fromStart.String),
			EndTime:   types.TimeString(fromEnd.String),
		}
	}

	return &res, nil
}

// encodeWeather сериализует погодный снимок в JSON для записи в БД
func encodeWeather(w *domain.WeatherSnapshot) (interface{}, error) {
	if w == nil {
		return nil, nil
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeWeather, err)
	}
	return string(data), nil
}

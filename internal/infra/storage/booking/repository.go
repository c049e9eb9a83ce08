package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/psqlbuilder"
)

const (
	tableBookings      = "bookings"
	pqUniqueViolation  = "23505"
	activeSlotIndexKey = "bookings_active_slot_uidx"
)

var bookingColumns = []string{
	"id",
	"reference",
	"flow",
	"booking_date",
	"start_time",
	"end_time",
	"slot_label",
	"status",
	"customer_name",
	"customer_email",
	"guests",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Частичный уникальный индекс по (booking_date, start_time) для активных статусов
// отбивает двойное бронирование, даже если проверка пересечений была пропущена
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"reference",
			"flow",
			"booking_date",
			"start_time",
			"end_time",
			"slot_label",
			"status",
			"customer_name",
			"customer_email",
			"guests",
			"notes",
		).
		Values(
			booking.Reference,
			booking.Flow,
			booking.BookingDate,
			booking.StartTime,
			booking.EndTime,
			booking.SlotLabel,
			booking.Status,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.Guests,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: date=%s start=%s", ErrSlotNotAvailable,
				booking.BookingDate.Format(domain.DateFormat), booking.StartTime)
		}
		// %w на исходной ошибке сохраняет pq.Error для менеджера транзакций (40001)
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListByDate получает бронирования на дату, отсортированные по времени начала
// includeCancelled = false - только активные
func (r *Repository) ListByDate(ctx context.Context, date time.Time, includeCancelled bool) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"booking_date": date})

	if !includeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings()})
	}

	query, args, err := selectBuilder.OrderBy("start_time ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByDate - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDate - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// IntervalsForDate проекция активных бронирований на дату для расчёта доступности
func (r *Repository) IntervalsForDate(ctx context.Context, date time.Time) ([]domain.BookedInterval, error) {
	return r.intervalsForDate(ctx, date, false)
}

// LockIntervalsForDate то же, что IntervalsForDate, но с FOR UPDATE
// Вызывается только внутри транзакции создания бронирования
func (r *Repository) LockIntervalsForDate(ctx context.Context, date time.Time) ([]domain.BookedInterval, error) {
	return r.intervalsForDate(ctx, date, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) intervalsForDate(ctx context.Context, date time.Time, forUpdate bool) ([]domain.BookedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("booking_date", "start_time", "end_time", "status").
		From(tableBookings).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		OrderBy("start_time ASC")

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: IntervalsForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: IntervalsForDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.BookedInterval, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.BookingDate, &b.StartTime, &b.EndTime, &b.Status); err != nil {
			return nil, fmt.Errorf("%w: IntervalsForDate - scan row: %v", ErrScanRow, err)
		}
		intervals = append(intervals, b.ToInterval())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: IntervalsForDate - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// UpdateStatus переводит бронирование из статуса from в статус to
// Если бронирование уже не в статусе from, возвращает ErrInvalidStatus
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
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
		return ErrInvalidStatus
	}

	return nil
}

// Cancel отменяет активное бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": activeStatusStrings()}).
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
		return ErrCannotCancel
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку в бронирование (порядок - bookingColumns)
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.Flow,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.SlotLabel,
		&booking.Status,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.Guests,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func activeStatusStrings() []string {
	result := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		result[i] = string(s)
	}
	return result
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation && (pqErr.Constraint == "" || pqErr.Constraint == activeSlotIndexKey)
	}
	return false
}

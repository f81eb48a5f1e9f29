package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL при нарушении уникального ограничения
const pgUniqueViolation = "23505"

// uniqueVendorSlotConstraint имя ограничения уникальности (vendor_id, slot_start_utc)
const uniqueVendorSlotConstraint = "unique_vendor_slot"

// Repository репозиторий для работы с бронированиями и claim-строками слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Создание бронирования с claim-строками слотов ВСЕГДА должно выполняться в транзакции:
// бронирование и его claims — единая атомарная единица (см. usecase create_booking)
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"vendor_id",
			"buyer_id",
			"start_time_utc",
			"end_time_utc",
			"status",
		).
		Values(
			booking.VendorID,
			booking.BuyerID,
			booking.StartTimeUTC,
			booking.EndTimeUTC,
			booking.Status,
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
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// CreateSlotClaims вставляет claim-строки слотов бронирования одним запросом.
// Уникальное ограничение (vendor_id, slot_start_utc) проверяется СУБД атомарно
// с самой вставкой — это единственный механизм защиты от двойного бронирования.
// Никаких предварительных проверок доступности: check-then-write под конкурентной
// нагрузкой принципиально подвержен гонкам.
func (r *Repository) CreateSlotClaims(ctx context.Context, bookingID, vendorID int64, slotStarts []time.Time) error {
	if len(slotStarts) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("booking_slots").
		Columns("booking_id", "vendor_id", "slot_start_utc")

	for _, start := range slotStarts {
		insertBuilder = insertBuilder.Values(bookingID, vendorID, start)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateSlotClaims - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, uniqueVendorSlotConstraint) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: CreateSlotClaims - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"vendor_id",
		"buyer_id",
		"start_time_utc",
		"end_time_utc",
		"status",
		"created_at",
		"updated_at",
	).
		From("bookings").
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

// GetClaimedSlotStarts возвращает занятые instants вендора из переданного набора
// Используется read-path'ом доступности; не блокирует строки — окончательная
// проверка доступности выполняется атомарно ограничением уникальности при записи
func (r *Repository) GetClaimedSlotStarts(ctx context.Context, vendorID int64, slotStarts []time.Time) ([]time.Time, error) {
	if len(slotStarts) == 0 {
		return []time.Time{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_start_utc").
		From("booking_slots").
		Where(squirrel.Eq{"vendor_id": vendorID}).
		Where(squirrel.Eq{"slot_start_utc": slotStarts}).
		OrderBy("slot_start_utc ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetClaimedSlotStarts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetClaimedSlotStarts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	claimed := make([]time.Time, 0)
	for rows.Next() {
		var start time.Time
		if err := rows.Scan(&start); err != nil {
			return nil, fmt.Errorf("%w: GetClaimedSlotStarts - scan slot_start_utc: %v", ErrScanRow, err)
		}
		claimed = append(claimed, start.UTC())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetClaimedSlotStarts - rows error: %v", ErrScanRow, err)
	}

	return claimed, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
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
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking сканирует одну строку бронирования
func scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.VendorID,
		&booking.BuyerID,
		&booking.StartTimeUTC,
		&booking.EndTimeUTC,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.StartTimeUTC = booking.StartTimeUTC.UTC()
	booking.EndTimeUTC = booking.EndTimeUTC.UTC()
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// isUniqueViolation проверяет, что ошибка — нарушение указанного уникального ограничения
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pgUniqueViolation && pqErr.Constraint == constraint
}

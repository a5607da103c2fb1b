package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// exclusionViolation код ошибки Postgres при нарушении EXCLUDE ограничения
const exclusionViolation = "23P01"

var bookingColumns = []string{
	"id",
	"customer_id",
	"customer_name",
	"customer_phone",
	"email",
	"vendor_id",
	"registration_id",
	"service_id",
	"service_type",
	"service_name",
	"specialist_id",
	"add_ons",
	"booking_date",
	"time_range",
	"slot_start",
	"slot_end",
	"duration",
	"total_price",
	"images",
	"notes",
	"service_location",
	"status",
	"request",
	"booking_source",
	"queue_number",
	"qr_token",
	"is_paid",
	"is_deleted",
	"created_at",
	"updated_at",
}

// activeBookings условие "бронирование занимает слот"
// Должно совпадать с WHERE у EXCLUDE ограничений в миграциях
var activeBookings = squirrel.And{
	squirrel.Eq{"is_deleted": false},
	squirrel.NotEq{"status": domain.StatusCanceled},
	squirrel.NotEq{"request": domain.RequestDecline},
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
// Если в контексте есть транзакция, запрос выполняется в ней.
// Пересечение с активным бронированием того же исполнителя или специалиста
// отклоняется базой и возвращается как ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}

	addOns, err := encodeJSON(booking.AddOns)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - add_ons: %v", ErrEncode, err)
	}
	images, err := encodeJSON(booking.Images)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - images: %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"customer_id",
			"customer_name",
			"customer_phone",
			"email",
			"vendor_id",
			"registration_id",
			"service_id",
			"service_type",
			"service_name",
			"specialist_id",
			"add_ons",
			"booking_date",
			"time_range",
			"slot_start",
			"slot_end",
			"duration",
			"total_price",
			"images",
			"notes",
			"service_location",
			"status",
			"request",
			"booking_source",
			"queue_number",
			"qr_token",
			"is_paid",
		).
		Values(
			booking.ID,
			booking.CustomerID,
			booking.CustomerName,
			booking.CustomerPhone,
			booking.Email,
			booking.VendorID,
			booking.RegistrationID,
			booking.ServiceID,
			booking.ServiceType,
			booking.ServiceName,
			booking.SpecialistID,
			string(addOns),
			booking.Date,
			booking.TimeRange,
			booking.SlotStart,
			booking.SlotEnd,
			booking.Duration,
			booking.TotalPrice,
			string(images),
			booking.Notes,
			booking.ServiceLocation,
			booking.Status,
			booking.Request,
			booking.BookingSource,
			booking.QueueNumber,
			booking.QRToken,
			booking.IsPaid,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == exclusionViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает неудаленное бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrBookingNotFound
	}

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id, "is_deleted": false})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру
// Сортировка: по дате и началу слота, для истории можно развернуть через desc
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter, desc bool) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	order := "booking_date ASC, slot_start ASC"
	if desc {
		order = "booking_date DESC, slot_start DESC"
	}

	builder := applyFilter(psqlbuilder.Select(bookingColumns...).From("bookings"), filter).
		OrderBy(order)

	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// HasOverlap проверяет, есть ли активное бронирование в области scope на дату date,
// пересекающееся с [slotStart, slotEnd)
// Граничащие интервалы пересечением не считаются
func (r *Repository) HasOverlap(ctx context.Context, scope domain.ConflictScope, date string, slotStart, slotEnd int) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column, err := scopeColumn(scope)
	if err != nil {
		return false, err
	}

	inner, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{column: scope.ID, "booking_date": date}).
		Where(squirrel.Lt{"slot_start": slotEnd}).
		Where(squirrel.Gt{"slot_end": slotStart}).
		Where(activeBookings).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasOverlap - build query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, "SELECT EXISTS ("+inner+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: HasOverlap - execute query: %w", ErrExecQuery, err)
	}

	return exists, nil
}

// ListBusyIntervals возвращает занятые интервалы области scope на дату date
func (r *Repository) ListBusyIntervals(ctx context.Context, scope domain.ConflictScope, date string) ([]domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column, err := scopeColumn(scope)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Select("slot_start", "slot_end").
		From("bookings").
		Where(squirrel.Eq{column: scope.ID, "booking_date": date}).
		Where(activeBookings).
		OrderBy("slot_start ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusyIntervals - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusyIntervals - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.Interval, 0)
	for rows.Next() {
		var i domain.Interval
		if err := rows.Scan(&i.Start, &i.End); err != nil {
			return nil, fmt.Errorf("%w: ListBusyIntervals - scan: %v", ErrScanRow, err)
		}
		intervals = append(intervals, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBusyIntervals - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// CountByVendorAndDate считает все бронирования исполнителя на дату, включая удаленные
// Используется для выдачи номера в очереди, поэтому номер не уменьшается после удаления
func (r *Repository) CountByVendorAndDate(ctx context.Context, vendorID, date string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"vendor_id": vendorID, "booking_date": date}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByVendorAndDate - build query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByVendorAndDate - execute query: %w", ErrExecQuery, err)
	}

	return count, nil
}

// UpdateRequest меняет решение по заявке и, если передан, статус одним запросом
func (r *Repository) UpdateRequest(ctx context.Context, id string, request domain.RequestState, status *domain.BookingStatus) error {
	builder := psqlbuilder.Update("bookings").
		Set("request", request).
		Set("updated_at", squirrel.Expr("NOW()"))

	if status != nil {
		builder = builder.Set("status", *status)
	}

	return r.execUpdate(ctx, "UpdateRequest", builder.Where(squirrel.Eq{"id": id, "is_deleted": false}))
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	builder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_deleted": false})

	return r.execUpdate(ctx, "UpdateStatus", builder)
}

// MarkPaid отмечает бронирование оплаченным и возвращает статус в pending
func (r *Repository) MarkPaid(ctx context.Context, id string) error {
	builder := psqlbuilder.Update("bookings").
		Set("is_paid", true).
		Set("status", domain.StatusPending).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_deleted": false})

	return r.execUpdate(ctx, "MarkPaid", builder)
}

// SoftDelete помечает бронирование удаленным
// Физическое удаление не используется, чтобы сохранить историю и нумерацию очереди
func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	builder := psqlbuilder.Update("bookings").
		Set("is_deleted", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_deleted": false})

	return r.execUpdate(ctx, "SoftDelete", builder)
}

func (r *Repository) execUpdate(ctx context.Context, op string, builder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		// Возврат в активное состояние может пересечься с уже занятым слотом
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == exclusionViolation {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func applyFilter(builder squirrel.SelectBuilder, filter domain.BookingFilter) squirrel.SelectBuilder {
	if filter.VendorID != nil {
		builder = builder.Where(squirrel.Eq{"vendor_id": *filter.VendorID})
	}
	if filter.CustomerID != nil {
		builder = builder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.SpecialistID != nil {
		builder = builder.Where(squirrel.Eq{"specialist_id": *filter.SpecialistID})
	}
	if filter.DateFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"booking_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(squirrel.LtOrEq{"booking_date": *filter.DateTo})
	}
	if len(filter.Statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"status": filter.Statuses})
	}
	if len(filter.ExcludeStatuses) > 0 {
		builder = builder.Where(squirrel.NotEq{"status": filter.ExcludeStatuses})
	}
	if len(filter.Requests) > 0 {
		builder = builder.Where(squirrel.Eq{"request": filter.Requests})
	}
	if filter.Source != nil {
		builder = builder.Where(squirrel.Eq{"booking_source": *filter.Source})
	}
	if !filter.IncludeDeleted {
		builder = builder.Where(squirrel.Eq{"is_deleted": false})
	}
	return builder
}

func scopeColumn(scope domain.ConflictScope) (string, error) {
	switch scope.Kind {
	case domain.ScopeVendor:
		return "vendor_id", nil
	case domain.ScopeSpecialist:
		return "specialist_id", nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidScope, scope.Kind)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку с колонками bookingColumns
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking       domain.Booking
		customerID    sql.NullString
		customerName  sql.NullString
		customerPhone sql.NullString
		specialistID  sql.NullString
		queueNumber   sql.NullInt64
		qrToken       sql.NullString
		notes         sql.NullString
		email         sql.NullString
		location      sql.NullString
		bookingDate   time.Time
		addOns        []byte
		images        []byte
	)

	err := row.Scan(
		&booking.ID,
		&customerID,
		&customerName,
		&customerPhone,
		&email,
		&booking.VendorID,
		&booking.RegistrationID,
		&booking.ServiceID,
		&booking.ServiceType,
		&booking.ServiceName,
		&specialistID,
		&addOns,
		&bookingDate,
		&booking.TimeRange,
		&booking.SlotStart,
		&booking.SlotEnd,
		&booking.Duration,
		&booking.TotalPrice,
		&images,
		&notes,
		&location,
		&booking.Status,
		&booking.Request,
		&booking.BookingSource,
		&queueNumber,
		&qrToken,
		&booking.IsPaid,
		&booking.IsDeleted,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CustomerID = nullString(customerID)
	booking.CustomerName = nullString(customerName)
	booking.CustomerPhone = nullString(customerPhone)
	booking.SpecialistID = nullString(specialistID)
	booking.QRToken = nullString(qrToken)
	booking.Notes = nullString(notes)
	booking.Email = nullString(email)
	booking.ServiceLocation = nullString(location)
	booking.Date = bookingDate.Format(domain.DateFormat)

	if queueNumber.Valid {
		n := int(queueNumber.Int64)
		booking.QueueNumber = &n
	}

	if err := json.Unmarshal(addOns, &booking.AddOns); err != nil {
		return nil, fmt.Errorf("decode add_ons: %w", err)
	}
	if err := json.Unmarshal(images, &booking.Images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// encodeJSON сериализует слайс для JSONB колонки, nil превращается в []
func encodeJSON[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"barber-booking/internal/data/entity"
	"barber-booking/pkg/database"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// BookingState is the (status, payment status) pair a transition moves between.
type BookingState struct {
	Status        entity.BookingStatus
	PaymentStatus entity.PaymentStatus
}

// BookingFilter narrows List and Count. Nil fields are ignored.
type BookingFilter struct {
	Status   *entity.BookingStatus
	BarberID *int64
	ChairID  *int64
	From     *time.Time
	To       *time.Time
}

type BookingRepository interface {
	// CreateWithItems inserts booking and items atomically unless an active
	// booking already holds an overlapping interval on a resource guarded by
	// policy. In that case nothing is written and the colliding booking is
	// returned.
	CreateWithItems(ctx context.Context, booking *entity.Booking, items []*entity.BookingItem, policy entity.Exclusivity, now time.Time) (*entity.Booking, error)
	FindByID(ctx context.Context, id int64) (*entity.Booking, error)
	FindByReference(ctx context.Context, reference uuid.UUID) (*entity.Booking, error)
	// FindActiveBetween lists bookings active at now that overlap [from, to)
	// on the resources policy guards for barberID/chairID.
	FindActiveBetween(ctx context.Context, barberID, chairID int64, policy entity.Exclusivity, from, to, now time.Time) ([]*entity.Booking, error)
	List(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context, filter BookingFilter) (int64, error)
	// Transition moves booking id from one state to another. It returns nil
	// when the booking is no longer in the from state, or when confirming a
	// payment hold that expired by now.
	Transition(ctx context.Context, id int64, from, to BookingState, now time.Time) (*entity.Booking, error)
	// ExpireHolds cancels awaiting-payment bookings whose hold ended by now.
	ExpireHolds(ctx context.Context, now time.Time) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var bookingColumns = []string{
	"id", "reference", "barber_id", "chair_id", "start_time", "end_time", "duration_minutes",
	"customer_name", "phone_number", "total_amount", "payment_method", "payment_status",
	"status", "hold_expires_at", "created_at", "updated_at",
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.BarberID,
		&b.ChairID,
		&b.StartTime,
		&b.EndTime,
		&b.DurationMinutes,
		&b.CustomerName,
		&b.PhoneNumber,
		&b.TotalAmount,
		&b.PaymentMethod,
		&b.PaymentStatus,
		&b.Status,
		&b.HoldExpiresAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func resourcePredicate(policy entity.Exclusivity, barberID, chairID int64) squirrel.Sqlizer {
	switch policy {
	case entity.ExclusiveBarber:
		return squirrel.Eq{"barber_id": barberID}
	case entity.ExclusiveChair:
		return squirrel.Eq{"chair_id": chairID}
	case entity.ExclusivePair:
		return squirrel.Eq{"barber_id": barberID, "chair_id": chairID}
	default:
		return squirrel.Or{
			squirrel.Eq{"barber_id": barberID},
			squirrel.Eq{"chair_id": chairID},
		}
	}
}

// activePredicate matches bookings that hold their slot at now.
func activePredicate(now time.Time) squirrel.Sqlizer {
	return squirrel.Or{
		squirrel.Eq{"status": entity.BookingStatusConfirmed},
		squirrel.And{
			squirrel.Eq{"status": entity.BookingStatusAwaitingPayment},
			squirrel.Gt{"hold_expires_at": now},
		},
	}
}

func overlapQuery(policy entity.Exclusivity, barberID, chairID int64, start, end, now time.Time) squirrel.SelectBuilder {
	return psql.Select(bookingColumns...).
		From("bookings").
		Where(resourcePredicate(policy, barberID, chairID)).
		Where(activePredicate(now)).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time")
}

func (r *bookingRepository) CreateWithItems(ctx context.Context, booking *entity.Booking, items []*entity.BookingItem, policy entity.Exclusivity, now time.Time) (*entity.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin booking transaction", zap.Error(err))
		return nil, fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Keys come sorted so competing transactions lock in the same order.
	for _, key := range policy.LockKeys(booking.BarberID, booking.ChairID) {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
			r.log.Error("Failed to take booking lock", zap.Error(err), zap.String("key", key))
			return nil, fmt.Errorf("lock %s: %w", key, err)
		}
	}

	query, args, err := overlapQuery(policy, booking.BarberID, booking.ChairID, booking.StartTime, booking.EndTime, now).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overlap query: %w", err)
	}

	conflict, err := scanBooking(tx.QueryRow(ctx, query, args...))
	switch {
	case err == nil:
		r.log.Info("Booking rejected, interval taken",
			zap.Int64("conflicting_booking_id", conflict.ID),
			zap.Int64("barber_id", booking.BarberID),
			zap.Int64("chair_id", booking.ChairID),
			zap.Time("start_time", booking.StartTime),
		)
		return conflict, nil
	case !errors.Is(err, pgx.ErrNoRows):
		r.log.Error("Failed to check booking overlap", zap.Error(err))
		return nil, fmt.Errorf("check booking overlap: %w", err)
	}

	insert := `
		INSERT INTO bookings (reference, barber_id, chair_id, start_time, end_time, duration_minutes,
			customer_name, phone_number, total_amount, payment_method, payment_status, status,
			hold_expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(ctx, insert,
		booking.Reference,
		booking.BarberID,
		booking.ChairID,
		booking.StartTime,
		booking.EndTime,
		booking.DurationMinutes,
		booking.CustomerName,
		booking.PhoneNumber,
		booking.TotalAmount,
		booking.PaymentMethod,
		booking.PaymentStatus,
		booking.Status,
		booking.HoldExpiresAt,
		now,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return nil, r.insertError("create booking", booking, err)
	}

	for _, item := range items {
		item.BookingID = booking.ID
	}
	if err := insertBookingItems(ctx, tx, items); err != nil {
		return nil, r.insertError("create booking items", booking, err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit booking", zap.Error(err), zap.String("reference", booking.Reference.String()))
		return nil, fmt.Errorf("commit booking %s: %w", booking.Reference, err)
	}

	return nil, nil
}

func (r *bookingRepository) insertError(op string, booking *entity.Booking, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		r.log.Warn("Booking references missing record",
			zap.String("constraint", pgErr.ConstraintName),
			zap.String("reference", booking.Reference.String()),
		)
		return fmt.Errorf("%s: %w (%s)", op, ErrReferenceNotFound, pgErr.ConstraintName)
	}

	r.log.Error("Failed to "+op,
		zap.Error(err),
		zap.String("reference", booking.Reference.String()),
	)
	return fmt.Errorf("%s %s: %w", op, booking.Reference, err)
}

func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	query, args, err := psql.Select(bookingColumns...).From("bookings").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find booking query: %w", err)
	}

	booking, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID", zap.Error(err), zap.Int64("booking_id", id))
		return nil, fmt.Errorf("find booking by ID %d: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByReference(ctx context.Context, reference uuid.UUID) (*entity.Booking, error) {
	query, args, err := psql.Select(bookingColumns...).From("bookings").Where(squirrel.Eq{"reference": reference}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find booking query: %w", err)
	}

	booking, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by reference", zap.Error(err), zap.String("reference", reference.String()))
		return nil, fmt.Errorf("find booking by reference %s: %w", reference, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindActiveBetween(ctx context.Context, barberID, chairID int64, policy entity.Exclusivity, from, to, now time.Time) ([]*entity.Booking, error) {
	query, args, err := overlapQuery(policy, barberID, chairID, from, to, now).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build active bookings query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find active bookings",
			zap.Error(err),
			zap.Int64("barber_id", barberID),
			zap.Int64("chair_id", chairID),
			zap.Time("from", from),
		)
		return nil, fmt.Errorf("find active bookings: %w", err)
	}

	return collectBookings(rows)
}

func applyFilter(q squirrel.SelectBuilder, f BookingFilter) squirrel.SelectBuilder {
	if f.Status != nil {
		q = q.Where(squirrel.Eq{"status": *f.Status})
	}
	if f.BarberID != nil {
		q = q.Where(squirrel.Eq{"barber_id": *f.BarberID})
	}
	if f.ChairID != nil {
		q = q.Where(squirrel.Eq{"chair_id": *f.ChairID})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"start_time": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.Lt{"start_time": *f.To})
	}
	return q
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	query, args, err := applyFilter(psql.Select(bookingColumns...).From("bookings"), filter).
		OrderBy("start_time DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err), zap.Int("limit", limit), zap.Int("offset", offset))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return collectBookings(rows)
}

func (r *bookingRepository) Count(ctx context.Context, filter BookingFilter) (int64, error) {
	query, args, err := applyFilter(psql.Select("COUNT(*)").From("bookings"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count bookings query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) Transition(ctx context.Context, id int64, from, to BookingState, now time.Time) (*entity.Booking, error) {
	update := psql.Update("bookings").
		Set("status", to.Status).
		Set("payment_status", to.PaymentStatus).
		Set("hold_expires_at", nil).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": from.Status, "payment_status": from.PaymentStatus})
	if from.Status == entity.BookingStatusAwaitingPayment && to.Status == entity.BookingStatusConfirmed {
		// an expired hold may already have been rebooked by someone else
		update = update.Where(squirrel.Gt{"hold_expires_at": now})
	}

	query, args, err := update.
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build transition query: %w", err)
	}

	booking, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to transition booking",
			zap.Error(err),
			zap.Int64("booking_id", id),
			zap.String("from", string(from.Status)),
			zap.String("to", string(to.Status)),
		)
		return nil, fmt.Errorf("transition booking %d: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) ExpireHolds(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = $1, payment_status = $2, updated_at = $3
		WHERE status = $4 AND hold_expires_at <= $3
	`

	result, err := r.db.Exec(ctx, query,
		entity.BookingStatusCancelled,
		entity.PaymentStatusVoid,
		now,
		entity.BookingStatusAwaitingPayment,
	)
	if err != nil {
		r.log.Error("Failed to expire payment holds", zap.Error(err))
		return 0, fmt.Errorf("expire payment holds: %w", err)
	}

	return result.RowsAffected(), nil
}

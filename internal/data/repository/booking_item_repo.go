package repository

import (
	"context"
	"fmt"

	"barber-booking/internal/data/entity"
	"barber-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingItemRepository interface {
	FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.BookingItem, error)
	FindByBookingIDs(ctx context.Context, bookingIDs []int64) (map[int64][]*entity.BookingItem, error)
}

type bookingItemRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingItemRepository(db database.PgxIface, log *zap.Logger) BookingItemRepository {
	return &bookingItemRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_item")),
	}
}

// insertBookingItems batches the line inserts on q, normally the booking transaction.
func insertBookingItems(ctx context.Context, q querier, items []*entity.BookingItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO booking_services (booking_id, service_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	for _, item := range items {
		if err := q.QueryRow(ctx, query, item.BookingID, item.ServiceID, item.Quantity, item.Price).Scan(&item.ID); err != nil {
			return fmt.Errorf("insert service %d: %w", item.ServiceID, err)
		}
	}

	return nil
}

func (r *bookingItemRepository) FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.BookingItem, error) {
	byBooking, err := r.FindByBookingIDs(ctx, []int64{bookingID})
	if err != nil {
		return nil, err
	}
	return byBooking[bookingID], nil
}

func (r *bookingItemRepository) FindByBookingIDs(ctx context.Context, bookingIDs []int64) (map[int64][]*entity.BookingItem, error) {
	out := make(map[int64][]*entity.BookingItem, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT id, booking_id, service_id, quantity, price
		FROM booking_services
		WHERE booking_id = ANY($1)
		ORDER BY booking_id, id
	`

	rows, err := r.db.Query(ctx, query, bookingIDs)
	if err != nil {
		r.log.Error("Failed to find booking items", zap.Error(err), zap.Int("bookings", len(bookingIDs)))
		return nil, fmt.Errorf("find booking items: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.BookingItem, error) {
		var item entity.BookingItem
		err := row.Scan(&item.ID, &item.BookingID, &item.ServiceID, &item.Quantity, &item.Price)
		return &item, err
	})
	if err != nil {
		r.log.Error("Failed to scan booking items", zap.Error(err))
		return nil, fmt.Errorf("scan booking items: %w", err)
	}

	for _, item := range items {
		out[item.BookingID] = append(out[item.BookingID], item)
	}

	return out, nil
}

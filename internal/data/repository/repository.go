package repository

import (
	"context"
	"errors"

	"barber-booking/pkg/database"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrReferenceNotFound means an insert pointed at a barber, chair or
// service row that does not exist.
var ErrReferenceNotFound = errors.New("referenced record not found")

// querier is satisfied by both the pool and a pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository struct {
	Service     ServiceRepository
	Barber      BarberRepository
	Chair       ChairRepository
	Booking     BookingRepository
	BookingItem BookingItemRepository
	Draft       DraftRepository
}

func NewRepository(db database.PgxIface, cache *redis.Client, log *zap.Logger) *Repository {
	return &Repository{
		Service:     NewServiceRepository(db, log),
		Barber:      NewBarberRepository(db, log),
		Chair:       NewChairRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		BookingItem: NewBookingItemRepository(db, log),
		Draft:       NewDraftRepository(cache, log),
	}
}

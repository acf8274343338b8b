package repository

import (
	"context"
	"errors"
	"fmt"

	"barber-booking/internal/data/entity"
	"barber-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ServiceRepository interface {
	FindAllActive(ctx context.Context) ([]*entity.Service, error)
	FindByID(ctx context.Context, id int64) (*entity.Service, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*entity.Service, error)
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

const serviceColumns = `id, name, description, price, duration_minutes, is_active, created_at, updated_at`

func scanService(row pgx.Row) (*entity.Service, error) {
	var s entity.Service
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.Price,
		&s.DurationMinutes,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *serviceRepository) FindAllActive(ctx context.Context) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE is_active ORDER BY id`

	return r.list(ctx, "find active services", query)
}

func (r *serviceRepository) FindByID(ctx context.Context, id int64) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	service, err := scanService(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID", zap.Error(err), zap.Int64("service_id", id))
		return nil, fmt.Errorf("find service by ID %d: %w", id, err)
	}

	return service, nil
}

// FindByIDs returns the services that exist among ids, in id order.
func (r *serviceRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = ANY($1) ORDER BY id`

	return r.list(ctx, "find services by IDs", query, ids)
}

func (r *serviceRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.Service, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return services, nil
}

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

type BarberRepository interface {
	FindAllActive(ctx context.Context) ([]*entity.Barber, error)
	FindByID(ctx context.Context, id int64) (*entity.Barber, error)
}

type barberRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBarberRepository(db database.PgxIface, log *zap.Logger) BarberRepository {
	return &barberRepository{
		db:  db,
		log: log.With(zap.String("repository", "barber")),
	}
}

const barberColumns = `id, name, age, experience_years, phone, specialties, description, is_active, created_at, updated_at`

func scanBarber(row pgx.Row) (*entity.Barber, error) {
	var b entity.Barber
	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Age,
		&b.ExperienceYears,
		&b.Phone,
		&b.Specialties,
		&b.Description,
		&b.IsActive,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *barberRepository) FindAllActive(ctx context.Context) ([]*entity.Barber, error) {
	query := `SELECT ` + barberColumns + ` FROM barbers WHERE is_active ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find active barbers", zap.Error(err))
		return nil, fmt.Errorf("find active barbers: %w", err)
	}
	defer rows.Close()

	var barbers []*entity.Barber
	for rows.Next() {
		barber, err := scanBarber(rows)
		if err != nil {
			r.log.Error("Failed to scan barber row", zap.Error(err))
			return nil, fmt.Errorf("scan barber row: %w", err)
		}
		barbers = append(barbers, barber)
	}

	return barbers, rows.Err()
}

func (r *barberRepository) FindByID(ctx context.Context, id int64) (*entity.Barber, error) {
	query := `SELECT ` + barberColumns + ` FROM barbers WHERE id = $1`

	barber, err := scanBarber(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find barber by ID", zap.Error(err), zap.Int64("barber_id", id))
		return nil, fmt.Errorf("find barber by ID %d: %w", id, err)
	}

	return barber, nil
}

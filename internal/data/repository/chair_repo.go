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

type ChairRepository interface {
	FindAllActive(ctx context.Context) ([]*entity.Chair, error)
	FindByID(ctx context.Context, id int64) (*entity.Chair, error)
}

type chairRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewChairRepository(db database.PgxIface, log *zap.Logger) ChairRepository {
	return &chairRepository{
		db:  db,
		log: log.With(zap.String("repository", "chair")),
	}
}

func (r *chairRepository) FindAllActive(ctx context.Context) ([]*entity.Chair, error) {
	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM chairs
		WHERE is_active
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find active chairs", zap.Error(err))
		return nil, fmt.Errorf("find active chairs: %w", err)
	}
	defer rows.Close()

	var chairs []*entity.Chair
	for rows.Next() {
		var chair entity.Chair
		if err := rows.Scan(
			&chair.ID,
			&chair.Name,
			&chair.Description,
			&chair.IsActive,
			&chair.CreatedAt,
			&chair.UpdatedAt,
		); err != nil {
			r.log.Error("Failed to scan chair row", zap.Error(err))
			return nil, fmt.Errorf("scan chair row: %w", err)
		}
		chairs = append(chairs, &chair)
	}

	return chairs, rows.Err()
}

func (r *chairRepository) FindByID(ctx context.Context, id int64) (*entity.Chair, error) {
	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM chairs
		WHERE id = $1
	`

	var chair entity.Chair
	err := r.db.QueryRow(ctx, query, id).Scan(
		&chair.ID,
		&chair.Name,
		&chair.Description,
		&chair.IsActive,
		&chair.CreatedAt,
		&chair.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find chair by ID", zap.Error(err), zap.Int64("chair_id", id))
		return nil, fmt.Errorf("find chair by ID %d: %w", id, err)
	}

	return &chair, nil
}

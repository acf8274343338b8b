package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

//go:embed seed.sql
var seedSQL string

// Migrate creates the tables if missing and seeds the catalog once.
// Both scripts are idempotent.
func Migrate(ctx context.Context, db PgxIface) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	if _, err := db.Exec(ctx, seedSQL); err != nil {
		return fmt.Errorf("apply seed: %w", err)
	}
	return nil
}

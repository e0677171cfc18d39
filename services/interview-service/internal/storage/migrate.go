package storage

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/md-rashed-zaman/mockinterview/libs/db"
)

//go:embed schema.sql
var schema string

// Migrate applies the schema. Every statement is idempotent.
func Migrate(ctx context.Context, pool *db.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

package persistence

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/vuhoang/dev-connector/adapters/persistence/migrations"
	"github.com/vuhoang/dev-connector/pkg/logger"
)

// RunMigrations applies the embedded goose migrations. goose wants a
// *sql.DB, so this opens a short-lived stdlib connection next to the
// pgx pool.
func RunMigrations(ctx context.Context, dsn string, log logger.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect error: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Info("Database migrations applied.")
	return nil
}

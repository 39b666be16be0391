package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/udisondev/craftdex/internal/db/migrations"
)

// RunMigrations brings the items schema at dsn up to date.
func RunMigrations(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("opening sql connection for migrations: %w", err)
	}
	defer sqlDB.Close()

	version, err := migrations.Up(ctx, sqlDB)
	if err != nil {
		return err
	}
	slog.Info("item schema ready", "version", version)
	return nil
}

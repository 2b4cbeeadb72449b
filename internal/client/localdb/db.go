// Package localdb opens the client's sqlite database and applies the
// embedded schema migrations.
package localdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"sweetshop/internal/client/localdb/migrations"
	"sweetshop/internal/logging"
)

// Open opens (creating if needed) the sqlite database at dsn and runs all
// pending migrations.
func Open(ctx context.Context, dsn string, log logging.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}

	// sqlite allows a single writer; a second pooled connection would also
	// see a different database entirely for :memory: DSNs.
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Debug(ctx, "local database ready", "dsn", dsn)
	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

package database

import (
	"context"
	"database/sql"
	"fmt"

	"proxy-rotator/config"

	_ "modernc.org/sqlite"
)

func OpenSQLite(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("sqlite", cfg.Journal.DSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", cfg.Journal.DSN, err)
	}
	// one writer keeps SQLite away from "database is locked"
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite ping failed: %w", err)
	}
	return db, nil
}

func RunSQLiteMigrations(ctx context.Context, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS fetch_journal (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			proxy       TEXT NOT NULL,
			target      TEXT NOT NULL,
			country     TEXT NOT NULL DEFAULT '',
			ok          INTEGER NOT NULL,
			status_code INTEGER NOT NULL DEFAULT 0,
			bytes       INTEGER NOT NULL DEFAULT 0,
			latency_ms  INTEGER NOT NULL DEFAULT 0,
			error       TEXT NOT NULL DEFAULT '',
			created_at  INTEGER NOT NULL
		);
	`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("sqlite migration failed: %w", err)
	}
	return nil
}

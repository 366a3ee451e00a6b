package database

import (
	"context"
	"fmt"

	"proxy-rotator/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.Journal.DSN)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return pool, nil
}

func RunMigrations(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
	stmts := []string{
		fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, cfg.Journal.Schema),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.fetch_journal (
			id          BIGSERIAL PRIMARY KEY,
			proxy       TEXT NOT NULL,
			target      TEXT NOT NULL,
			country     TEXT NOT NULL DEFAULT '',
			ok          BOOLEAN NOT NULL,
			status_code INTEGER NOT NULL DEFAULT 0,
			bytes       INTEGER NOT NULL DEFAULT 0,
			latency_ms  BIGINT NOT NULL DEFAULT 0,
			error       TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT ck_latency_nonnegative CHECK (latency_ms >= 0)
		)`, cfg.Journal.Schema),
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

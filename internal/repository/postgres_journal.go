package repository

import (
	"context"
	"fmt"

	"proxy-rotator/config"
	"proxy-rotator/internal/errdefs"
	"proxy-rotator/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const chkLatencyNonNeg = "ck_latency_nonnegative"

type PostgresJournal struct {
	db  *pgxpool.Pool
	cfg *config.Config
}

func NewPostgresJournal(db *pgxpool.Pool, cfg *config.Config) *PostgresJournal {
	return &PostgresJournal{
		db:  db,
		cfg: cfg,
	}
}

func (pj *PostgresJournal) table() string {
	return fmt.Sprintf("%s.fetch_journal", pj.cfg.Journal.Schema)
}

func (pj *PostgresJournal) Record(ctx context.Context, rec *models.FetchRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			proxy, target, country, ok, status_code, bytes, latency_ms, error
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, pj.table())

	err := pj.db.QueryRow(ctx, query,
		rec.Proxy,
		rec.Target,
		rec.Country,
		rec.OK,
		rec.StatusCode,
		rec.Bytes,
		rec.LatencyMS,
		rec.Error,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errdefs.As(err, &pgErr) {
			switch {
			case pgErr.ConstraintName == chkLatencyNonNeg:
				return errdefs.Wrapf(errdefs.ErrInvalidInput, "latency must be non-negative: %d", rec.LatencyMS)
			case pgErr.Code == "42P01": // undefined_table
				return errdefs.Wrapf(errdefs.ErrDB, "journal table missing, run migrations: %v", pgErr.Message)
			}
		}
		return errdefs.Wrapf(errdefs.ErrDB, "failed to record fetch: %v", err)
	}
	return nil
}

func (pj *PostgresJournal) ListRecent(ctx context.Context, limit int) ([]models.FetchRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, proxy, target, country, ok, status_code, bytes, latency_ms, error, created_at
		FROM %s
		ORDER BY id DESC
		LIMIT $1
	`, pj.table())

	rows, err := pj.db.Query(ctx, query, limit)
	if err != nil {
		return nil, errdefs.Wrapf(errdefs.ErrDB, "failed to list journal: %v", err)
	}
	defer rows.Close()

	records := []models.FetchRecord{}
	for rows.Next() {
		var r models.FetchRecord
		if err := rows.Scan(&r.ID, &r.Proxy, &r.Target, &r.Country, &r.OK,
			&r.StatusCode, &r.Bytes, &r.LatencyMS, &r.Error, &r.CreatedAt); err != nil {
			return nil, errdefs.Wrapf(errdefs.ErrDB, "failed to scan journal row: %v", err)
		}
		records = append(records, r)
	}
	if rows.Err() != nil {
		return nil, errdefs.Wrapf(errdefs.ErrDB, "rows iteration error: %v", rows.Err())
	}
	return records, nil
}

func (pj *PostgresJournal) Close() error {
	pj.db.Close()
	return nil
}

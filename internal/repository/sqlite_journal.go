package repository

import (
	"context"
	"database/sql"
	"time"

	"proxy-rotator/internal/errdefs"
	"proxy-rotator/internal/models"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLiteJournal(db *sql.DB) *SQLiteJournal {
	return &SQLiteJournal{db: db}
}

func (sj *SQLiteJournal) Record(ctx context.Context, rec *models.FetchRecord) error {
	if rec.LatencyMS < 0 {
		return errdefs.Wrapf(errdefs.ErrInvalidInput, "latency must be non-negative: %d", rec.LatencyMS)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	res, err := sj.db.ExecContext(ctx, `
		INSERT INTO fetch_journal (
			proxy, target, country, ok, status_code, bytes, latency_ms, error, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.Proxy,
		rec.Target,
		rec.Country,
		rec.OK,
		rec.StatusCode,
		rec.Bytes,
		rec.LatencyMS,
		rec.Error,
		rec.CreatedAt.UnixNano(),
	)
	if err != nil {
		return errdefs.Wrapf(errdefs.ErrDB, "failed to record fetch: %v", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return errdefs.Wrapf(errdefs.ErrDB, "failed to read journal id: %v", err)
	}
	rec.ID = id
	return nil
}

func (sj *SQLiteJournal) ListRecent(ctx context.Context, limit int) ([]models.FetchRecord, error) {
	rows, err := sj.db.QueryContext(ctx, `
		SELECT id, proxy, target, country, ok, status_code, bytes, latency_ms, error, created_at
		FROM fetch_journal
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, errdefs.Wrapf(errdefs.ErrDB, "failed to list journal: %v", err)
	}
	defer rows.Close()

	records := []models.FetchRecord{}
	for rows.Next() {
		var (
			r       models.FetchRecord
			created int64
		)
		if err := rows.Scan(&r.ID, &r.Proxy, &r.Target, &r.Country, &r.OK,
			&r.StatusCode, &r.Bytes, &r.LatencyMS, &r.Error, &created); err != nil {
			return nil, errdefs.Wrapf(errdefs.ErrDB, "failed to scan journal row: %v", err)
		}
		r.CreatedAt = time.Unix(0, created).UTC()
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errdefs.Wrapf(errdefs.ErrDB, "rows iteration error: %v", err)
	}
	return records, nil
}

func (sj *SQLiteJournal) Close() error {
	return sj.db.Close()
}

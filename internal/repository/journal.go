package repository

import (
	"context"

	"proxy-rotator/config"
	"proxy-rotator/internal/database"
	"proxy-rotator/internal/errdefs"
	"proxy-rotator/internal/interfaces"
)

// OpenJournal connects the configured backend and migrates it. It returns
// (nil, nil) when the journal is disabled.
func OpenJournal(ctx context.Context, cfg *config.Config) (interfaces.IFetchJournal, error) {
	switch cfg.Journal.Driver {
	case config.JournalNone, "":
		return nil, nil

	case config.JournalPostgres:
		pool, err := database.Connect(ctx, cfg)
		if err != nil {
			return nil, errdefs.Wrap(errdefs.ErrDB, err.Error())
		}
		if err := database.RunMigrations(ctx, cfg, pool); err != nil {
			pool.Close()
			return nil, errdefs.Wrap(errdefs.ErrDB, err.Error())
		}
		return NewPostgresJournal(pool, cfg), nil

	case config.JournalSQLite:
		db, err := database.OpenSQLite(ctx, cfg)
		if err != nil {
			return nil, errdefs.Wrap(errdefs.ErrDB, err.Error())
		}
		if err := database.RunSQLiteMigrations(ctx, db); err != nil {
			db.Close()
			return nil, errdefs.Wrap(errdefs.ErrDB, err.Error())
		}
		return NewSQLiteJournal(db), nil
	}
	return nil, errdefs.Wrapf(errdefs.ErrInvalidInput, "unknown journal driver %q", cfg.Journal.Driver)
}

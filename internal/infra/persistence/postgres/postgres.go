package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"gatekeeper/config"
	"gatekeeper/internal/domain/lifecycle"
	"gatekeeper/internal/errors"
	"gatekeeper/internal/infra/persistence/model"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolWatchInterval = 5 * time.Second
	poolWaitWarnAfter = 50 * time.Millisecond
)

// authTables are created or updated when storage.autoMigrate is set.
//
//nolint:gochecknoglobals
var authTables = []any{&model.UserModel{}, &model.AuthEventModel{}}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the users database: primary plus replicas from config, pinged
// and optionally migrated on start, closed on stop.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "open users database")
	}
	db = db.Session(&gorm.Session{
		// Every write is a single statement.
		SkipDefaultTransaction: true,
		Logger:                 newQueryLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "users database handle")
	}

	watcher := &poolWatcher{logger: params.Logger, stats: sqlDB.Stats}
	stopWatch := func() {}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "ping users database")
			}
			if params.Config.Storage.AutoMigrate {
				if err := db.WithContext(ctx).AutoMigrate(authTables...); err != nil {
					return errors.Wrap(err, "migrate auth tables")
				}
				params.Logger.Info("Auth tables migrated")
			}

			watchCtx, cancelWatch := context.WithCancel(context.Background())
			stopWatch = cancelWatch
			go watcher.run(watchCtx, poolWatchInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			stopWatch()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// poolWatcher reports connection pool waits, which show up first as slow
// sign-ins when bcrypt-bound requests pile up behind a small pool.
type poolWatcher struct {
	logger *slog.Logger
	stats  func() sql.DBStats
	last   sql.DBStats
}

func (w *poolWatcher) run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	w.last = w.stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

// check logs the waits since the previous call: warn once they add up to
// poolWaitWarnAfter, debug below that, nothing when no caller waited.
func (w *poolWatcher) check(ctx context.Context) {
	cur := w.stats()
	waits := cur.WaitCount - w.last.WaitCount
	waited := cur.WaitDuration - w.last.WaitDuration
	w.last = cur
	if waits <= 0 {
		return
	}

	level := slog.LevelDebug
	if waited >= poolWaitWarnAfter {
		level = slog.LevelWarn
	}
	w.logger.LogAttrs(ctx, level, "Users database pool wait",
		slog.Int64("waits", waits),
		slog.Duration("waited", waited),
		slog.Duration("avgWait", waited/time.Duration(waits)),
		slog.Int("open", cur.OpenConnections),
		slog.Int("inUse", cur.InUse),
		slog.Int("idle", cur.Idle),
		slog.Int("maxOpen", cur.MaxOpenConnections),
	)
}

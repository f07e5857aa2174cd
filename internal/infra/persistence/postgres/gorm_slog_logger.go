package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gatekeeper/config"
	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// queryLogger routes gorm output into slog, preferring the request-scoped
// logger so statements carry the request_id of the auth call that ran them.
type queryLogger struct {
	base *slog.Logger
	mode logger.LogLevel
	slow time.Duration
}

func newQueryLogger(base *slog.Logger, cfg *config.Config) logger.Interface {
	ql := &queryLogger{base: base, mode: logger.Warn}
	if cfg == nil {
		return ql
	}
	if cfg.Env.Debug {
		ql.mode = logger.Info
	}
	ql.slow = cfg.Storage.SlowQueryThreshold

	return ql
}

func (q *queryLogger) LogMode(mode logger.LogLevel) logger.Interface {
	next := *q
	next.mode = mode

	return &next
}

func (q *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	q.printf(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (q *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	q.printf(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (q *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	q.printf(ctx, logger.Error, slog.LevelError, msg, args)
}

func (q *queryLogger) printf(ctx context.Context, need logger.LogLevel, level slog.Level, msg string, args []any) {
	if !q.enabled(need) {
		return
	}
	q.loggerFor(ctx).LogAttrs(ctx, level, "gorm", slog.String("message", fmt.Sprintf(msg, args...)))
}

// Trace logs failed statements at error, slow ones at warn, and everything
// else only in info mode. A missing row is a normal lookup miss for the user
// store, not a failure.
func (q *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)

	var (
		level slog.Level
		msg   string
		extra slog.Attr
	)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && q.enabled(logger.Error):
		level, msg, extra = slog.LevelError, "query failed", slog.String("error", err.Error())
	case q.slow > 0 && elapsed > q.slow && q.enabled(logger.Warn):
		level, msg, extra = slog.LevelWarn, "slow query", slog.Duration("threshold", q.slow)
	case q.enabled(logger.Info):
		level, msg = slog.LevelInfo, "query"
	default:
		return
	}

	sql, rows := fc()
	attrs := []slog.Attr{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}
	if extra.Key != "" {
		attrs = append(attrs, extra)
	}
	q.loggerFor(ctx).LogAttrs(ctx, level, msg, attrs...)
}

func (q *queryLogger) enabled(need logger.LogLevel) bool {
	return q.base != nil && q.mode != logger.Silent && q.mode >= need
}

func (q *queryLogger) loggerFor(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, q.base)
}

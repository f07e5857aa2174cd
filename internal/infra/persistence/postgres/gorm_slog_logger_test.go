package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gatekeeper/config"
	deliverycontext "gatekeeper/internal/delivery/context"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}

	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

func selectUser() (string, int64) {
	return `SELECT * FROM "users" WHERE email = 'ann@x.io'`, 1
}

func TestQueryLogger_Trace(t *testing.T) {
	slowCfg := &config.Config{Storage: config.StorageConfig{SlowQueryThreshold: 10 * time.Millisecond}}
	debugCfg := &config.Config{}
	debugCfg.Env.Debug = true

	tests := []struct {
		name    string
		cfg     *config.Config
		elapsed time.Duration
		err     error
		want    []string
	}{
		{
			name: "failed statement",
			err:  errors.New("connection reset"),
			want: []string{`"level":"ERROR"`, `"msg":"query failed"`, `"error":"connection reset"`, `"rows":1`},
		},
		{
			name: "missing row is not a failure",
			err:  gorm.ErrRecordNotFound,
		},
		{
			name:    "slow statement",
			cfg:     slowCfg,
			elapsed: time.Second,
			want:    []string{`"level":"WARN"`, `"msg":"slow query"`, `"threshold"`},
		},
		{
			name: "fast statement in warn mode",
			cfg:  slowCfg,
		},
		{
			name: "every statement in debug mode",
			cfg:  debugCfg,
			want: []string{`"level":"INFO"`, `"msg":"query"`, `users`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, buf := bufferLogger()
			ql := newQueryLogger(base, tt.cfg)

			ql.Trace(context.Background(), time.Now().Add(-tt.elapsed), selectUser, tt.err)

			if len(tt.want) == 0 {
				assert.Empty(t, buf.String())

				return
			}
			for _, fragment := range tt.want {
				assert.Contains(t, buf.String(), fragment)
			}
		})
	}
}

func TestQueryLogger_UsesRequestLogger(t *testing.T) {
	base, baseBuf := bufferLogger()
	reqLogger, reqBuf := bufferLogger()
	ctx := deliverycontext.WithLogger(context.Background(), reqLogger.With(slog.String("request_id", "req-7")))

	newQueryLogger(base, nil).Trace(ctx, time.Now(), selectUser, errors.New("boom"))

	assert.Empty(t, baseBuf.String())
	assert.Contains(t, reqBuf.String(), `"request_id":"req-7"`)
}

func TestQueryLogger_LogMode(t *testing.T) {
	base, buf := bufferLogger()
	ql := newQueryLogger(base, nil)

	ql.LogMode(logger.Silent).Error(context.Background(), "dropped %d", 1)
	assert.Empty(t, buf.String())

	ql.Info(context.Background(), "hidden in warn mode")
	assert.Empty(t, buf.String())

	ql.Warn(context.Background(), "replica %s lagging", "r1")
	assert.Contains(t, buf.String(), `"message":"replica r1 lagging"`)
}

func TestPoolWatcher_Check(t *testing.T) {
	stats := sql.DBStats{MaxOpenConnections: 4, OpenConnections: 4, InUse: 4}
	base, buf := bufferLogger()
	w := &poolWatcher{logger: base, stats: func() sql.DBStats { return stats }}
	ctx := context.Background()

	w.check(ctx)
	assert.Empty(t, buf.String(), "no waits yet")

	stats.WaitCount, stats.WaitDuration = 2, 10*time.Millisecond
	w.check(ctx)
	assert.Contains(t, buf.String(), `"level":"DEBUG"`)
	assert.Contains(t, buf.String(), `"waits":2`)

	buf.Reset()
	stats.WaitCount, stats.WaitDuration = 5, 210*time.Millisecond
	w.check(ctx)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"waits":3`)

	buf.Reset()
	w.check(ctx)
	assert.Empty(t, buf.String(), "unchanged stats")
}

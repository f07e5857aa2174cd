package persistence

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"gatekeeper/config"
)

func TestNewRepositories(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		storage config.StorageConfig
		wantErr bool
	}{
		{name: "memory", storage: config.StorageConfig{Driver: config.StorageDriverMemory}},
		{name: "postgres without section", storage: config.StorageConfig{Driver: config.StorageDriverPostgres}, wantErr: true},
		{name: "unknown driver", storage: config.StorageConfig{Driver: "sqlite"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos, err := NewRepositories(Params{
				Lifecycle: fxtest.NewLifecycle(t),
				Config:    &config.Config{Storage: tt.storage},
				Logger:    logger,
			})
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.NotNil(t, repos.Users)
			assert.NotNil(t, repos.AuthEvents)
		})
	}
}

// Package persistence selects the stores named by storage.driver.
package persistence

import (
	"log/slog"

	"go.uber.org/fx"

	"gatekeeper/config"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/errors"
	"gatekeeper/internal/infra/persistence/memory"
	"gatekeeper/internal/infra/persistence/postgres"
)

// Params holds dependencies for NewRepositories, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Repositories are the stores backed by the selected driver.
type Repositories struct {
	fx.Out

	Users      repository.UserRepository
	AuthEvents repository.AuthEventRepository
}

// NewRepositories opens the configured store. The Postgres connection is
// only created when the postgres driver is selected, and both repositories
// share it.
func NewRepositories(params Params) (Repositories, error) {
	switch params.Config.Storage.Driver {
	case config.StorageDriverMemory:
		params.Logger.Warn("Using in-memory stores; data is lost on restart")

		return Repositories{
			Users:      memory.NewUserRepository(),
			AuthEvents: memory.NewAuthEventRepository(),
		}, nil

	case config.StorageDriverPostgres, "":
		if params.Config.Postgres == nil {
			return Repositories{}, errors.New("postgres section is required for the postgres storage driver")
		}

		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Repositories{}, err
		}

		return Repositories{
			Users:      postgres.NewUserRepository(db),
			AuthEvents: postgres.NewAuthEventRepository(db),
		}, nil

	default:
		return Repositories{}, errors.Errorf("unknown storage driver: %s", params.Config.Storage.Driver)
	}
}

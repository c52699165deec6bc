// Package storage opens the budget store for the configured backend.
package storage

import (
	"fmt"
	"log/slog"

	"github.com/budget-ledger/backend/config"
	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/infra/cache"
	"github.com/budget-ledger/backend/internal/infra/db"
	"github.com/budget-ledger/backend/internal/integration/persistence"
	"github.com/budget-ledger/backend/internal/integration/persistence/model"
)

// connection is the lifecycle surface shared by the database and Redis clients.
type connection interface {
	HealthCheck() bool
	Close() error
}

// Storage is an open budget store together with its underlying connection.
type Storage struct {
	Store   adapter.BudgetStore
	Backend string
	conn    connection
}

// Open connects to the backend named by cfg.Storage.Backend. Relational backends
// are migrated before the store is returned.
func Open(cfg *config.Config) (*Storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client, err := cache.NewRedisConnection(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Store:   persistence.NewRedisStore(client.Client(), cfg.Redis.SnapshotKey),
			Backend: config.BackendRedis,
			conn:    client,
		}, nil

	case config.BackendPostgres, config.BackendSQLite:
		var (
			database *db.Database
			err      error
		)
		if cfg.Storage.Backend == config.BackendSQLite {
			database, err = db.NewSQLiteConnection(cfg.Database.SQLitePath)
		} else {
			database, err = db.NewPostgresConnection(&cfg.Database)
		}
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(model.All()...); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		slog.Info("Database migrations completed successfully", "dialect", database.Dialect())
		return &Storage{
			Store:   persistence.NewGormStore(database.DB()),
			Backend: database.Dialect(),
			conn:    database,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// HealthCheck reports whether the backend is reachable.
func (s *Storage) HealthCheck() bool {
	return s.conn.HealthCheck()
}

// Close releases the backend connection.
func (s *Storage) Close() error {
	return s.conn.Close()
}

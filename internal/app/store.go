package app

import (
	"context"
	"fmt"

	"github.com/bissquit/subscribers-api/internal/config"
	"github.com/bissquit/subscribers-api/internal/pkg/metrics"
	"github.com/bissquit/subscribers-api/internal/pkg/postgres"
	redisconn "github.com/bissquit/subscribers-api/internal/pkg/redis"
	"github.com/bissquit/subscribers-api/internal/subscribers"
	subscriberspostgres "github.com/bissquit/subscribers-api/internal/subscribers/postgres"
	subscribersredis "github.com/bissquit/subscribers-api/internal/subscribers/redis"
)

// Store is an opened record store together with its lifecycle hooks.
type Store struct {
	Repository subscribers.Repository

	ping          func(ctx context.Context) error
	recordMetrics func()
	close         func()
}

// Ping verifies the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// RecordMetrics publishes connection pool gauges.
func (s *Store) RecordMetrics() {
	s.recordMetrics()
}

// Close releases the store connections.
func (s *Store) Close() {
	s.close()
}

// OpenStore connects to the record store selected by cfg.Database.Driver.
// For PostgreSQL the embedded schema is applied once connected when
// AutoMigrate is set.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pool, err := postgres.Connect(connectCtx, postgres.Config{
			URL:             cfg.Database.URL,
			MaxConns:        cfg.Database.MaxOpenConns,
			MinConns:        cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnectAttempts: cfg.Database.ConnectAttempts,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}

		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(cfg.Database.URL); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrate database: %w", err)
			}
		}

		repo := subscriberspostgres.NewRepository(pool)
		return &Store{
			Repository:    repo,
			ping:          repo.Ping,
			recordMetrics: func() { metrics.RecordPgxPoolMetrics(pool) },
			close:         pool.Close,
		}, nil

	case config.DriverRedis:
		client, err := redisconn.Connect(connectCtx, redisconn.Config{
			URL:      cfg.Redis.URL,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}

		repo := subscribersredis.NewRepository(client, cfg.Redis.KeyPrefix)
		return &Store{
			Repository:    repo,
			ping:          repo.Ping,
			recordMetrics: func() { metrics.RecordRedisPoolMetrics(client) },
			close:         func() { _ = client.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// Package repositories opens the state store selected by configuration.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/community_currency/internal/core/ports/repositories"
	"github.com/SscSPs/community_currency/internal/platform/config"
	rediscache "github.com/SscSPs/community_currency/internal/repositories/cache/redis"
	"github.com/SscSPs/community_currency/internal/repositories/database/pgsql"
	"github.com/SscSPs/community_currency/internal/repositories/database/sqlite"
	"github.com/SscSPs/community_currency/internal/repositories/state/memory"
	"github.com/SscSPs/community_currency/pkg/database"
)

// Storage owns the opened state store and the connections behind it.
type Storage struct {
	Provider portsrepo.RepositoryProvider
	Driver   string
	closers  []func() error
}

// Close releases every connection held by the storage.
func (s *Storage) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open connects to the store named by cfg.StorageDriver.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Storage, error) {
	policy := portsrepo.TTLPolicy{LedgerDuration: cfg.StateTTLLedgerDuration}
	s := &Storage{Driver: cfg.StorageDriver}

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		s.closers = append(s.closers, func() error {
			database.ClosePgxPool(pool)
			return nil
		})
		s.Provider = pgsql.NewRepositoryProvider(pool, cfg.StateNamespace, policy)

	case config.StorageSQLite:
		store, err := sqlite.NewStore(cfg.SQLitePath, cfg.StateNamespace, policy)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		s.closers = append(s.closers, store.Close)
		s.Provider = portsrepo.RepositoryProvider{StateRepo: store}

	case config.StorageRedis:
		rdb, err := rediscache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		s.closers = append(s.closers, rdb.Close)
		s.Provider = portsrepo.RepositoryProvider{StateRepo: rediscache.NewStore(rdb, cfg.StateNamespace, policy)}

	case config.StorageMemory, "":
		s.Driver = config.StorageMemory
		s.Provider = portsrepo.RepositoryProvider{StateRepo: memory.NewStore(policy)}

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	logger.Info("State store opened", slog.String("driver", s.Driver), slog.String("namespace", cfg.StateNamespace))
	return s, nil
}

package main

import (
	"context"
	"database/sql"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/metrics"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/internal/repository/memory"
	mongorepo "github.com/jafarshop/storefront/internal/repository/mongo"
	"github.com/jafarshop/storefront/internal/repository/postgres"
	"github.com/jafarshop/storefront/internal/repository/rediscache"
)

// newLogger builds a development logger outside production, at LOG_LEVEL
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = level
	return zcfg.Build()
}

// stores holds the open connections behind a Repositories value
type stores struct {
	repos   *repository.Repositories
	db      *sql.DB
	mongoDB *mongo.Database
	close   []func()
}

func (s *stores) Close() {
	for i := len(s.close) - 1; i >= 0; i-- {
		s.close[i]()
	}
}

// openStores connects the storage driver selected by STORAGE_DRIVER. The
// persistent driver keeps products and countries in MongoDB, vendors and
// orders in PostgreSQL, and caches countries in Redis when REDIS_ADDR is set.
func openStores(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (*stores, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("Using in-memory storage; data is lost on exit")
		return &stores{repos: memory.NewRepositories()}, nil
	}

	s := &stores{}

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		return nil, err
	}
	s.db = db
	s.close = append(s.close, func() { db.Close() })

	client, err := mongorepo.Connect(ctx, cfg.Mongo)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.mongoDB = client.Database(cfg.Mongo.Database)
	s.close = append(s.close, func() { _ = client.Disconnect(context.Background()) })

	var countries repository.CountryRepository = mongorepo.NewCountryRepository(s.mongoDB, logger)
	if cfg.Redis.Addr != "" {
		rdb, err := rediscache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			logger.Warn("Redis unavailable, country cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			s.close = append(s.close, func() { _ = rdb.Close() })
			countries = rediscache.NewCountryRepository(countries, rdb, cfg.Redis.CountryCacheTTL, m, logger)
		}
	}

	s.repos = &repository.Repositories{
		Product:    mongorepo.NewProductRepository(s.mongoDB, logger),
		Vendor:     postgres.NewVendorRepository(db, logger),
		Country:    countries,
		Order:      postgres.NewOrderRepository(db, logger),
		OrderEvent: postgres.NewOrderEventRepository(db, logger),
	}
	return s, nil
}

// loadConfig loads configuration and a logger for a command
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

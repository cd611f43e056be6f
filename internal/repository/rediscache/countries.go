// Package rediscache wraps repositories with a Redis read-through cache.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/metrics"
	"github.com/jafarshop/storefront/internal/repository"
)

const countryCache = "country"

type countryRepository struct {
	next    repository.CountryRepository
	rdb     *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewCountryRepository caches GetByCode lookups of next in Redis. A nil
// client disables caching. Redis failures degrade to reading next.
func NewCountryRepository(next repository.CountryRepository, rdb *redis.Client, ttl time.Duration, m *metrics.Metrics, logger *zap.Logger) *countryRepository {
	return &countryRepository{
		next:    next,
		rdb:     rdb,
		ttl:     ttl,
		metrics: m,
		logger:  logger,
	}
}

func countryKey(code string) string {
	return "country:" + strings.ToUpper(code)
}

func (r *countryRepository) GetByCode(ctx context.Context, code string) (*domain.Country, error) {
	if r.rdb == nil {
		return r.next.GetByCode(ctx, code)
	}

	raw, err := r.rdb.Get(ctx, countryKey(code)).Bytes()
	switch {
	case err == nil:
		var country domain.Country
		if err := json.Unmarshal(raw, &country); err == nil {
			r.metrics.ObserveCache(countryCache, "hit")
			return &country, nil
		}
		r.logger.Warn("Discarding undecodable cached country", zap.String("code", code))
	case errors.Is(err, redis.Nil):
		r.metrics.ObserveCache(countryCache, "miss")
	default:
		r.metrics.ObserveCache(countryCache, "error")
		r.logger.Warn("Country cache read failed", zap.String("code", code), zap.Error(err))
	}

	country, err := r.next.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(country); err == nil {
		if err := r.rdb.Set(ctx, countryKey(code), data, r.ttl).Err(); err != nil {
			r.logger.Warn("Country cache write failed", zap.String("code", code), zap.Error(err))
		}
	}
	return country, nil
}

func (r *countryRepository) List(ctx context.Context) ([]*domain.Country, error) {
	return r.next.List(ctx)
}

// Upsert writes through and evicts the cached entry
func (r *countryRepository) Upsert(ctx context.Context, country *domain.Country) error {
	if err := r.next.Upsert(ctx, country); err != nil {
		return err
	}
	if r.rdb != nil {
		if err := r.rdb.Del(ctx, countryKey(country.Code)).Err(); err != nil {
			r.logger.Warn("Country cache eviction failed", zap.String("code", country.Code), zap.Error(err))
		}
	}
	return nil
}

// Connect creates a Redis client and pings it
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

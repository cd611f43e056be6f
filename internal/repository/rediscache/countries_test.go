package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/metrics"
	"github.com/jafarshop/storefront/internal/repository/memory"
)

func TestCountryRepository_DegradesWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	backing := memory.NewCountryRepository()
	require.NoError(t, backing.Upsert(ctx, &domain.Country{
		Code:     "FR",
		Name:     "France",
		Currency: domain.Currency{Code: "EUR", Symbol: "€", Rate: decimal.RequireFromString("0.92")},
		VAT:      decimal.RequireFromString("20"),
	}))

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	defer rdb.Close()

	repo := NewCountryRepository(backing, rdb, time.Minute, metrics.New(), zap.NewNop())

	country, err := repo.GetByCode(ctx, "fr")
	require.NoError(t, err)
	require.Equal(t, "France", country.Name)

	country.Name = "République française"
	require.NoError(t, repo.Upsert(ctx, country))

	updated, err := backing.GetByCode(ctx, "FR")
	require.NoError(t, err)
	require.Equal(t, "République française", updated.Name)
}

func TestCountryRepository_NilClientPassesThrough(t *testing.T) {
	ctx := context.Background()
	backing := memory.NewCountryRepository()
	repo := NewCountryRepository(backing, nil, time.Minute, nil, zap.NewNop())

	_, err := repo.GetByCode(ctx, "XX")
	require.Error(t, err)

	countries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, countries)
}

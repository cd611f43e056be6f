package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository"
	apperrors "github.com/jafarshop/storefront/pkg/errors"
)

func TestProductRepository_UpdateIsCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	p := &domain.Product{Name: "Lamp", Price: decimal.RequireFromString("30"), InStock: true}
	require.NoError(t, repo.Create(ctx, p))
	require.Equal(t, int64(1), p.Version)

	first, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)

	first.Name = "Desk lamp"
	require.NoError(t, repo.Update(ctx, first, 1))
	require.Equal(t, int64(2), first.Version)

	second.Name = "Floor lamp"
	err = repo.Update(ctx, second, 1)
	var conflict *apperrors.ErrConflict
	require.True(t, errors.As(err, &conflict))

	stored, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Desk lamp", stored.Name)
}

func TestProductRepository_UpdateMissing(t *testing.T) {
	err := NewProductRepository().Update(context.Background(), &domain.Product{ID: uuid.New()}, 1)

	var notFound *apperrors.ErrNotFound
	require.True(t, errors.As(err, &notFound))
}

func TestProductRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	vendorID := uuid.New()

	require.NoError(t, repo.Create(ctx, &domain.Product{Name: "a", Category: "tea", InStock: true, VendorID: vendorID}))
	require.NoError(t, repo.Create(ctx, &domain.Product{Name: "b", Category: "tea", InStock: false}))
	require.NoError(t, repo.Create(ctx, &domain.Product{Name: "c", Category: "coffee", InStock: true, VendorID: vendorID}))

	inStock := true
	tea, err := repo.List(ctx, repository.ProductFilter{Category: "tea", InStock: &inStock})
	require.NoError(t, err)
	require.Len(t, tea, 1)
	require.Equal(t, "a", tea[0].Name)

	all, err := repo.List(ctx, repository.ProductFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, all, 2)

	owned, err := repo.ListByVendor(ctx, vendorID)
	require.NoError(t, err)
	require.Len(t, owned, 2)
}

func TestOrderRepository_UpdateStatusRequiresExpectedStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	order := &domain.Order{Status: domain.OrderStatusPending}
	require.NoError(t, repo.Create(ctx, order))

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, domain.OrderStatusPending, domain.OrderStatusProcessing))

	err := repo.UpdateStatus(ctx, order.ID, domain.OrderStatusPending, domain.OrderStatusCancelled)
	var conflict *apperrors.ErrConflict
	require.True(t, errors.As(err, &conflict))

	stored, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusProcessing, stored.Status)
}

func TestOrderRepository_ShipStoresStatusAndTracking(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	order := &domain.Order{Status: domain.OrderStatusProcessing}
	require.NoError(t, repo.Create(ctx, order))

	err := repo.Ship(ctx, order.ID, domain.OrderStatusPending, nil, "TRK-0")
	var conflict *apperrors.ErrConflict
	require.True(t, errors.As(err, &conflict))

	carrier := "UPS"
	require.NoError(t, repo.Ship(ctx, order.ID, domain.OrderStatusProcessing, &carrier, "TRK-1"))

	stored, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusShipped, stored.Status)
	require.NotNil(t, stored.TrackingNumber)
	require.Equal(t, "TRK-1", *stored.TrackingNumber)
	require.Equal(t, "UPS", *stored.TrackingCarrier)
}

func TestVendorRepository_GetByAPIKey(t *testing.T) {
	ctx := context.Background()
	repo := NewVendorRepository()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-key"), bcrypt.MinCost)
	require.NoError(t, err)
	vendor := &domain.Vendor{Name: "Acme", Role: domain.RoleVendor, APIKeyHash: string(hash), IsActive: true}
	require.NoError(t, repo.Create(ctx, vendor))

	found, err := repo.GetByAPIKey(ctx, "secret-key")
	require.NoError(t, err)
	require.Equal(t, vendor.ID, found.ID)

	_, err = repo.GetByAPIKey(ctx, "wrong")
	var unauthorized *apperrors.ErrUnauthorized
	require.True(t, errors.As(err, &unauthorized))
}
